package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// Valores de StockItemFilter.Status.
const (
	FaultStatusFaulty = "faulty"
	FaultStatusOK     = "ok"
)

// StockItemFilter filtros combinables (AND) del listado de ítems activos.
// AssignedToUserID tiene prioridad: si viene, solo se respeta DepartmentID.
type StockItemFilter struct {
	CompanyID        string
	DepartmentID     string
	AssignedToUserID string
	BelowPar         bool
	CreatedBefore    *time.Time
	Status           string // "", faulty, ok
}

// StockItemRepository puerto de persistencia de StockItem.
// Los métodos *ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo tienen sentido dentro de una transacción.
// Todas las lecturas aplican el predicado de ítem activo y el company_id.
type StockItemRepository interface {
	// CreateIfAbsent inserta el ítem salvo que ya exista uno activo con el mismo (empresa, departamento, nombre).
	// Devuelve false si otro lo creó antes; el llamador debe releerlo con FindByNameForUpdate.
	CreateIfAbsent(ctx context.Context, item *entity.StockItem) (bool, error)
	Update(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, companyID, id string) (*entity.StockItem, error)
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.StockItem, error)
	FindByNameForUpdate(ctx context.Context, companyID, departmentID, name string) (*entity.StockItem, error)
	// LockForTransfer bloquea el ítem de origen y el activo homónimo del departamento destino en orden de id.
	// Cualquiera de los dos puede volver nil.
	LockForTransfer(ctx context.Context, companyID, sourceID, departmentID, name string) (src, dst *entity.StockItem, err error)
	List(ctx context.Context, filter StockItemFilter) ([]*entity.StockItem, error)
}
