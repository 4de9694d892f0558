package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// AssignmentRepository puerto de persistencia de asignaciones.
type AssignmentRepository interface {
	Create(ctx context.Context, a *entity.Assignment) error
	// GetOpenForUpdate devuelve la asignación abierta cuyo ítem no está eliminado, bloqueada.
	GetOpenForUpdate(ctx context.Context, companyID, id string) (*entity.Assignment, error)
	Close(ctx context.Context, a *entity.Assignment) error
	// ListOpenByUser asignaciones abiertas de un usuario sobre ítems activos; departmentID opcional.
	ListOpenByUser(ctx context.Context, companyID, userID, departmentID string) ([]*entity.EquipmentItem, error)
}
