package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Error(1)
}

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Create(ctx context.Context, r *entity.Role) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRoleRepository) GetByName(ctx context.Context, companyID string, name entity.RoleName) (*entity.Role, error) {
	args := m.Called(ctx, companyID, name)
	r, _ := args.Get(0).(*entity.Role)
	return r, args.Error(1)
}

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) Create(ctx context.Context, d *entity.Department) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDepartmentRepository) GetByID(ctx context.Context, companyID, id string) (*entity.Department, error) {
	args := m.Called(ctx, companyID, id)
	d, _ := args.Get(0).(*entity.Department)
	return d, args.Error(1)
}

func (m *MockDepartmentRepository) GetByName(ctx context.Context, companyID, name string) (*entity.Department, error) {
	args := m.Called(ctx, companyID, name)
	d, _ := args.Get(0).(*entity.Department)
	return d, args.Error(1)
}

func (m *MockDepartmentRepository) ListByCompany(ctx context.Context, companyID string) ([]*entity.Department, error) {
	args := m.Called(ctx, companyID)
	list, _ := args.Get(0).([]*entity.Department)
	return list, args.Error(1)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *MockCompanyRepository) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

type MockStockAdder struct {
	mock.Mock
}

func (m *MockStockAdder) Add(ctx context.Context, actor entity.Actor, in stock.AddInput) (*entity.StockItem, error) {
	args := m.Called(ctx, actor, in)
	item, _ := args.Get(0).(*entity.StockItem)
	return item, args.Error(1)
}
