package http

import (
	"context"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// Contratos que consumen los handlers. Los cumplen los casos de uso de application.

// Authenticator login con credenciales.
type Authenticator interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// IdentityResolver resuelve el usuario del token contra la BD.
type IdentityResolver interface {
	ResolveActor(ctx context.Context, userID, companyID string) (*entity.Actor, error)
}

// StockLedger mutaciones de stock (*stock.Ledger).
type StockLedger interface {
	Add(ctx context.Context, actor entity.Actor, in stock.AddInput) (*entity.StockItem, error)
	Assign(ctx context.Context, actor entity.Actor, in stock.AssignInput) (*stock.AssignmentResult, error)
	Return(ctx context.Context, actor entity.Actor, in stock.ReturnInput) (*stock.AssignmentResult, error)
	MarkFaulty(ctx context.Context, actor entity.Actor, in stock.MarkFaultyInput) (*entity.StockItem, error)
	Transfer(ctx context.Context, actor entity.Actor, in stock.TransferInput) (*stock.TransferResult, error)
	Delete(ctx context.Context, actor entity.Actor, in stock.DeleteInput) (*entity.StockItem, error)
}

// StockCatalog consultas de stock (*stock.Catalog).
type StockCatalog interface {
	ListItems(ctx context.Context, actor entity.Actor, q stock.ItemQuery) ([]*entity.StockItem, error)
	GetItem(ctx context.Context, actor entity.Actor, id string) (*entity.StockItem, error)
	MyEquipment(ctx context.Context, actor entity.Actor, departmentID string) ([]*entity.EquipmentItem, error)
	ItemHistory(ctx context.Context, actor entity.Actor, itemID string, limit, offset int) ([]*entity.StockHistory, error)
}

// AuditService consultas de auditoría (*stock.AuditTrail).
type AuditService interface {
	Logs(ctx context.Context, actor entity.Actor, q stock.AuditQuery) (*stock.AuditPage, error)
	Report(ctx context.Context, actor entity.Actor, q stock.AuditQuery) ([]byte, error)
}

// DepartmentService alta y listado de departamentos.
type DepartmentService interface {
	Create(ctx context.Context, actor entity.Actor, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	List(ctx context.Context, actor entity.Actor) ([]dto.DepartmentResponse, error)
}

// UserService alta y listado de usuarios.
type UserService interface {
	Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context, actor entity.Actor, departmentID string, limit, offset int) (*dto.UserListResponse, error)
}
