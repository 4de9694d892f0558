package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

var worker = &entity.User{ID: "u-w", CompanyID: "c-1", DepartmentID: "d-wh", RoleName: entity.RoleWarehouse, Username: "worker"}

func TestImport_FilaPorFilaSiguePorErrores(t *testing.T) {
	users, depts, adder := new(MockUserRepository), new(MockDepartmentRepository), new(MockStockAdder)
	ctx := context.Background()

	users.On("GetByUsername", ctx, "worker").Return(worker, nil).Once()
	depts.On("GetByName", ctx, "c-1", "Warehouse").Return(&entity.Department{ID: "d-wh", CompanyID: "c-1"}, nil).Once()
	depts.On("GetByName", ctx, "c-1", "Marte").Return(nil, nil).Once()

	actor := entity.Actor{UserID: "u-w", CompanyID: "c-1", DepartmentID: "d-wh", Role: entity.RoleWarehouse}
	adder.On("Add", ctx, actor, stock.AddInput{Name: "Laptop", Quantity: 2, DepartmentID: "d-wh"}).Return(&entity.StockItem{}, nil).Once()
	adder.On("Add", ctx, actor, stock.AddInput{Name: "Mouse", Quantity: 4, DepartmentID: "d-wh"}).Return(nil, domain.ErrDuplicate).Once()

	res, err := NewImportUseCase(users, depts, adder, zerolog.Nop()).Import(ctx, "worker", []StockRow{
		{Line: 2, Name: "Laptop", Quantity: 2, Department: "Warehouse"},
		{Line: 3, Name: "Cable", Quantity: 1, Department: "Marte"},
		{Line: 4, Name: "Mouse", Quantity: 4, Department: "Warehouse"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, 3, res.Failed[0].Line)
	assert.ErrorIs(t, res.Failed[0].Err, domain.ErrNotFound)
	assert.Equal(t, 4, res.Failed[1].Line)
	assert.ErrorIs(t, res.Failed[1].Err, domain.ErrConflict)

	// el departamento se resuelve una sola vez por nombre
	depts.AssertExpectations(t)
	adder.AssertExpectations(t)
}

func TestImport_UsuarioSinRolWarehouse(t *testing.T) {
	users := new(MockUserRepository)
	ctx := context.Background()
	users.On("GetByUsername", ctx, "ana").Return(&entity.User{ID: "u-a", CompanyID: "c-1", RoleName: entity.RoleAdmin}, nil).Once()
	users.On("GetByUsername", ctx, "nadie").Return(nil, nil).Once()

	uc := NewImportUseCase(users, new(MockDepartmentRepository), new(MockStockAdder), zerolog.Nop())
	_, err := uc.Import(ctx, "ana", []StockRow{{Line: 1, Name: "x", Quantity: 1, Department: "IT"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Import(ctx, "nadie", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users.AssertExpectations(t)
}

func TestRowError_Mensaje(t *testing.T) {
	e := RowError{Line: 7, Err: domain.Invalid("quantity")}
	assert.Contains(t, e.Error(), "línea 7")
}
