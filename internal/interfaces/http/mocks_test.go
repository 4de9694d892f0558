package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	apphttp "github.com/jhoicas/stock-api/internal/interfaces/http"
)

type MockLedger struct{ mock.Mock }

func (m *MockLedger) Add(ctx context.Context, actor entity.Actor, in stock.AddInput) (*entity.StockItem, error) {
	args := m.Called(ctx, actor, in)
	item, _ := args.Get(0).(*entity.StockItem)
	return item, args.Error(1)
}

func (m *MockLedger) Assign(ctx context.Context, actor entity.Actor, in stock.AssignInput) (*stock.AssignmentResult, error) {
	args := m.Called(ctx, actor, in)
	res, _ := args.Get(0).(*stock.AssignmentResult)
	return res, args.Error(1)
}

func (m *MockLedger) Return(ctx context.Context, actor entity.Actor, in stock.ReturnInput) (*stock.AssignmentResult, error) {
	args := m.Called(ctx, actor, in)
	res, _ := args.Get(0).(*stock.AssignmentResult)
	return res, args.Error(1)
}

func (m *MockLedger) MarkFaulty(ctx context.Context, actor entity.Actor, in stock.MarkFaultyInput) (*entity.StockItem, error) {
	args := m.Called(ctx, actor, in)
	item, _ := args.Get(0).(*entity.StockItem)
	return item, args.Error(1)
}

func (m *MockLedger) Transfer(ctx context.Context, actor entity.Actor, in stock.TransferInput) (*stock.TransferResult, error) {
	args := m.Called(ctx, actor, in)
	res, _ := args.Get(0).(*stock.TransferResult)
	return res, args.Error(1)
}

func (m *MockLedger) Delete(ctx context.Context, actor entity.Actor, in stock.DeleteInput) (*entity.StockItem, error) {
	args := m.Called(ctx, actor, in)
	item, _ := args.Get(0).(*entity.StockItem)
	return item, args.Error(1)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) ListItems(ctx context.Context, actor entity.Actor, q stock.ItemQuery) ([]*entity.StockItem, error) {
	args := m.Called(ctx, actor, q)
	items, _ := args.Get(0).([]*entity.StockItem)
	return items, args.Error(1)
}

func (m *MockCatalog) GetItem(ctx context.Context, actor entity.Actor, id string) (*entity.StockItem, error) {
	args := m.Called(ctx, actor, id)
	item, _ := args.Get(0).(*entity.StockItem)
	return item, args.Error(1)
}

func (m *MockCatalog) MyEquipment(ctx context.Context, actor entity.Actor, departmentID string) ([]*entity.EquipmentItem, error) {
	args := m.Called(ctx, actor, departmentID)
	items, _ := args.Get(0).([]*entity.EquipmentItem)
	return items, args.Error(1)
}

func (m *MockCatalog) ItemHistory(ctx context.Context, actor entity.Actor, itemID string, limit, offset int) ([]*entity.StockHistory, error) {
	args := m.Called(ctx, actor, itemID, limit, offset)
	logs, _ := args.Get(0).([]*entity.StockHistory)
	return logs, args.Error(1)
}

type MockAudit struct{ mock.Mock }

func (m *MockAudit) Logs(ctx context.Context, actor entity.Actor, q stock.AuditQuery) (*stock.AuditPage, error) {
	args := m.Called(ctx, actor, q)
	page, _ := args.Get(0).(*stock.AuditPage)
	return page, args.Error(1)
}

func (m *MockAudit) Report(ctx context.Context, actor entity.Actor, q stock.AuditQuery) ([]byte, error) {
	args := m.Called(ctx, actor, q)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

type MockAuth struct{ mock.Mock }

func (m *MockAuth) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dto.LoginResponse)
	return out, args.Error(1)
}

type MockDepartments struct{ mock.Mock }

func (m *MockDepartments) Create(ctx context.Context, actor entity.Actor, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	args := m.Called(ctx, actor, in)
	out, _ := args.Get(0).(*dto.DepartmentResponse)
	return out, args.Error(1)
}

func (m *MockDepartments) List(ctx context.Context, actor entity.Actor) ([]dto.DepartmentResponse, error) {
	args := m.Called(ctx, actor)
	out, _ := args.Get(0).([]dto.DepartmentResponse)
	return out, args.Error(1)
}

type MockUsers struct{ mock.Mock }

func (m *MockUsers) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor, in)
	out, _ := args.Get(0).(*dto.UserResponse)
	return out, args.Error(1)
}

func (m *MockUsers) List(ctx context.Context, actor entity.Actor, departmentID string, limit, offset int) (*dto.UserListResponse, error) {
	args := m.Called(ctx, actor, departmentID, limit, offset)
	out, _ := args.Get(0).(*dto.UserListResponse)
	return out, args.Error(1)
}

// testServer API completa sobre mocks; los claims del token son la identidad.
type testServer struct {
	app         *fiber.App
	ledger      *MockLedger
	catalog     *MockCatalog
	audit       *MockAudit
	auth        *MockAuth
	departments *MockDepartments
	users       *MockUsers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		ledger:      new(MockLedger),
		catalog:     new(MockCatalog),
		audit:       new(MockAudit),
		auth:        new(MockAuth),
		departments: new(MockDepartments),
		users:       new(MockUsers),
	}
	s.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(zerolog.Nop())})
	apphttp.Router(s.app, apphttp.RouterDeps{
		Auth:        s.auth,
		Ledger:      s.ledger,
		Catalog:     s.catalog,
		Audit:       s.audit,
		Departments: s.departments,
		Users:       s.users,
		JWTSecret:   testJWTSecret,
		Logger:      zerolog.Nop(),
	})
	t.Cleanup(func() {
		s.ledger.AssertExpectations(t)
		s.catalog.AssertExpectations(t)
		s.audit.AssertExpectations(t)
		s.auth.AssertExpectations(t)
		s.departments.AssertExpectations(t)
		s.users.AssertExpectations(t)
	})
	return s
}

// actorFor actor que el middleware arma desde tokenForRole.
func actorFor(role entity.RoleName) entity.Actor {
	return entity.Actor{UserID: testUserID, CompanyID: testCompanyID, DepartmentID: testDepartmentID, Role: role}
}

// call hace una petición con rol (vacío = sin token) y body JSON opcional.
func (s *testServer) call(t *testing.T, method, path string, role entity.RoleName, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, out
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}
