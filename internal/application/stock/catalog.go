package stock

import (
	"context"
	"time"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// Catalog vistas de solo lectura sobre ítems activos y asignaciones abiertas.
type Catalog struct {
	items       repository.StockItemRepository
	assignments repository.AssignmentRepository
	history     repository.StockHistoryRepository
	now         func() time.Time
}

// NewCatalog construye el caso de uso de consultas.
func NewCatalog(
	items repository.StockItemRepository,
	assignments repository.AssignmentRepository,
	history repository.StockHistoryRepository,
) *Catalog {
	return &Catalog{
		items:       items,
		assignments: assignments,
		history:     history,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ItemQuery filtros del listado. UserID anula el resto salvo DepartmentID.
type ItemQuery struct {
	DepartmentID   string
	UserID         string
	BelowPar       bool
	OlderThanDays  *int
	AcquiredBefore *time.Time
	Status         string
}

// ListItems lista los ítems activos de la empresa del actor.
func (c *Catalog) ListItems(ctx context.Context, actor entity.Actor, q ItemQuery) ([]*entity.StockItem, error) {
	filter := repository.StockItemFilter{
		CompanyID:    actor.CompanyID,
		DepartmentID: q.DepartmentID,
	}
	if q.UserID != "" {
		filter.AssignedToUserID = q.UserID
		return c.items.List(ctx, filter)
	}

	switch q.Status {
	case "", repository.FaultStatusFaulty, repository.FaultStatusOK:
		filter.Status = q.Status
	default:
		return nil, domain.Invalid("status debe ser faulty u ok")
	}
	filter.BelowPar = q.BelowPar
	switch {
	case q.AcquiredBefore != nil:
		t := q.AcquiredBefore.UTC()
		filter.CreatedBefore = &t
	case q.OlderThanDays != nil:
		if *q.OlderThanDays < 0 {
			return nil, domain.Invalid("older_than_days no puede ser negativo")
		}
		t := c.now().AddDate(0, 0, -*q.OlderThanDays)
		filter.CreatedBefore = &t
	}
	return c.items.List(ctx, filter)
}

// GetItem obtiene un ítem activo de la empresa del actor.
func (c *Catalog) GetItem(ctx context.Context, actor entity.Actor, id string) (*entity.StockItem, error) {
	item, err := c.items.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// MyEquipment asignaciones abiertas del propio actor; departmentID opcional.
func (c *Catalog) MyEquipment(ctx context.Context, actor entity.Actor, departmentID string) ([]*entity.EquipmentItem, error) {
	return c.OpenAssignments(ctx, actor, actor.UserID, departmentID)
}

// OpenAssignments asignaciones abiertas de userID dentro de la empresa del actor.
func (c *Catalog) OpenAssignments(ctx context.Context, actor entity.Actor, userID, departmentID string) ([]*entity.EquipmentItem, error) {
	if userID == "" {
		return nil, domain.Invalid("user_id es requerido")
	}
	return c.assignments.ListOpenByUser(ctx, actor.CompanyID, userID, departmentID)
}

// ItemHistory historial de un ítem (incluidos los eliminados), del más reciente al más antiguo.
func (c *Catalog) ItemHistory(ctx context.Context, actor entity.Actor, itemID string, limit, offset int) ([]*entity.StockHistory, error) {
	if itemID == "" {
		return nil, domain.Invalid("id es requerido")
	}
	limit, offset = clampPage(limit, offset)
	return c.history.List(ctx, repository.HistoryFilter{
		CompanyID:   actor.CompanyID,
		StockItemID: itemID,
		Limit:       limit,
		Offset:      offset,
	})
}
