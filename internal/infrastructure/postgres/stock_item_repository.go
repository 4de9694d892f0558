package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, company_id, department_id, name, quantity, par_level, is_faulty, is_deleted, created_at, updated_at`

// CreateIfAbsent inserta un ítem. Si ya hay uno activo con el mismo nombre en el departamento
// (aunque lo haya insertado otra transacción concurrente) no inserta y devuelve false.
func (r *StockItemRepo) CreateIfAbsent(ctx context.Context, s *entity.StockItem) (bool, error) {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id, department_id, name) WHERE ` + activeItem + ` DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.DepartmentID, s.Name, s.Quantity, s.ParLevel,
		s.IsFaulty, s.IsDeleted, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return false, domain.Invalid("cantidad o par_level fuera de rango")
		}
		return false, fmt.Errorf("insert stock item: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Update persiste cantidad, par_level y flags. El CHECK de la tabla impide cantidades negativas.
func (r *StockItemRepo) Update(ctx context.Context, s *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET quantity = $3, par_level = $4, is_faulty = $5, is_deleted = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, s.CompanyID, s.ID, s.Quantity, s.ParLevel, s.IsFaulty, s.IsDeleted, s.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un ítem activo de la empresa.
func (r *StockItemRepo) GetByID(ctx context.Context, companyID, id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE company_id = $1 AND id = $2 AND ` + activeItem
	return scanStockItemRow(r.q.QueryRow(ctx, query, companyID, id))
}

// GetForUpdate obtiene el ítem activo y bloquea la fila (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE company_id = $1 AND id = $2 AND ` + activeItem + `
		FOR UPDATE`
	return scanStockItemRow(r.q.QueryRow(ctx, query, companyID, id))
}

// FindByNameForUpdate busca el ítem activo por nombre en el departamento y lo bloquea.
func (r *StockItemRepo) FindByNameForUpdate(ctx context.Context, companyID, departmentID, name string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE company_id = $1 AND department_id = $2 AND name = $3 AND ` + activeItem + `
		FOR UPDATE`
	return scanStockItemRow(r.q.QueryRow(ctx, query, companyID, departmentID, name))
}

// LockForTransfer bloquea origen y destino con una sola consulta ordenada por id,
// así dos traslados en sentidos opuestos toman los locks en el mismo orden.
func (r *StockItemRepo) LockForTransfer(ctx context.Context, companyID, sourceID, departmentID, name string) (*entity.StockItem, *entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE company_id = $1 AND ` + activeItem + `
		  AND (id = $2 OR (department_id = $3 AND name = $4))
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, companyID, sourceID, departmentID, name)
	if err != nil {
		return nil, nil, fmt.Errorf("lock transfer items: %w", err)
	}
	defer rows.Close()

	var src, dst *entity.StockItem
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("scan stock item: %w", err)
		}
		if s.ID == sourceID {
			src = s
		} else {
			dst = s
		}
	}
	return src, dst, rows.Err()
}

// List ítems activos con filtros combinables. Orden: nombre, luego antigüedad.
func (r *StockItemRepo) List(ctx context.Context, f repository.StockItemFilter) ([]*entity.StockItem, error) {
	query, args, err := stockItemListQuery(f).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stock items: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockItem, 0)
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func stockItemListQuery(f repository.StockItemFilter) *goqu.SelectDataset {
	ds := dialect.From(goqu.T("stock_items").As("s")).Prepared(true).
		Select(
			"s.id", "s.company_id", "s.department_id", "s.name", "s.quantity", "s.par_level",
			"s.is_faulty", "s.is_deleted", "s.created_at", "s.updated_at",
		).
		Where(goqu.Ex{"s.company_id": f.CompanyID, "s.is_deleted": false}).
		Order(goqu.I("s.name").Asc(), goqu.I("s.created_at").Asc())

	if f.DepartmentID != "" {
		ds = ds.Where(goqu.Ex{"s.department_id": f.DepartmentID})
	}
	// Filtrar por asignado ignora el resto de filtros salvo el departamento.
	if f.AssignedToUserID != "" {
		return ds.Where(goqu.L(
			"EXISTS (SELECT 1 FROM assignments a WHERE a.stock_item_id = s.id AND a.assignee_id = ? AND a.returned_at IS NULL)",
			f.AssignedToUserID,
		))
	}
	if f.BelowPar {
		ds = ds.Where(goqu.L("s.par_level IS NOT NULL AND s.quantity < s.par_level"))
	}
	if f.CreatedBefore != nil {
		ds = ds.Where(goqu.I("s.created_at").Lt(*f.CreatedBefore))
	}
	switch f.Status {
	case repository.FaultStatusFaulty:
		ds = ds.Where(goqu.Ex{"s.is_faulty": true})
	case repository.FaultStatusOK:
		ds = ds.Where(goqu.Ex{"s.is_faulty": false})
	}
	return ds
}

func scanStockItemRow(row pgx.Row) (*entity.StockItem, error) {
	s, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return s, nil
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.DepartmentID, &s.Name, &s.Quantity, &s.ParLevel,
		&s.IsFaulty, &s.IsDeleted, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
