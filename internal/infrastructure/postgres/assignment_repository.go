package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación de AssignmentRepository sobre PostgreSQL.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Create persiste una asignación abierta.
func (r *AssignmentRepo) Create(ctx context.Context, a *entity.Assignment) error {
	query := `
		INSERT INTO assignments (id, company_id, stock_item_id, assignee_id, assigned_by_id, assigned_at, returned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, a.ID, a.CompanyID, a.StockItemID, a.AssigneeID, a.AssignedByID, a.AssignedAt, a.ReturnedAt)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// GetOpenForUpdate asignación abierta sobre un ítem activo, con la fila bloqueada.
func (r *AssignmentRepo) GetOpenForUpdate(ctx context.Context, companyID, id string) (*entity.Assignment, error) {
	query := `
		SELECT a.id, a.company_id, a.stock_item_id, a.assignee_id, a.assigned_by_id, a.assigned_at, a.returned_at
		FROM assignments a
		JOIN stock_items s ON s.id = a.stock_item_id AND s.is_deleted = FALSE
		WHERE a.company_id = $1 AND a.id = $2 AND a.returned_at IS NULL
		FOR UPDATE OF a`
	var a entity.Assignment
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&a.ID, &a.CompanyID, &a.StockItemID, &a.AssigneeID, &a.AssignedByID, &a.AssignedAt, &a.ReturnedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}

// Close registra la devolución. Solo cierra asignaciones abiertas.
func (r *AssignmentRepo) Close(ctx context.Context, a *entity.Assignment) error {
	query := `
		UPDATE assignments SET returned_at = $3
		WHERE company_id = $1 AND id = $2 AND returned_at IS NULL`
	tag, err := r.q.Exec(ctx, query, a.CompanyID, a.ID, a.ReturnedAt)
	if err != nil {
		return fmt.Errorf("close assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListOpenByUser equipos que el usuario tiene asignados ahora, más reciente primero.
func (r *AssignmentRepo) ListOpenByUser(ctx context.Context, companyID, userID, departmentID string) ([]*entity.EquipmentItem, error) {
	query := `
		SELECT a.id, s.id, s.name, s.department_id, d.name, s.is_faulty, a.assigned_at
		FROM assignments a
		JOIN stock_items s ON s.id = a.stock_item_id AND s.is_deleted = FALSE
		JOIN departments d ON d.id = s.department_id
		WHERE a.company_id = $1 AND a.assignee_id = $2 AND a.returned_at IS NULL
		  AND ($3 = '' OR s.department_id::text = $3)
		ORDER BY a.assigned_at DESC`
	rows, err := r.q.Query(ctx, query, companyID, userID, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list open assignments: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.EquipmentItem, 0)
	for rows.Next() {
		var e entity.EquipmentItem
		if err := rows.Scan(&e.AssignmentID, &e.StockItemID, &e.Name, &e.DepartmentID, &e.DepartmentName, &e.IsFaulty, &e.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
