package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo historial de stock. Solo INSERT y SELECT; un trigger rechaza UPDATE/DELETE.
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

// Append inserta un registro.
func (r *StockHistoryRepo) Append(ctx context.Context, h *entity.StockHistory) error {
	query := `
		INSERT INTO stock_history (id, company_id, stock_item_id, user_id, action, reason, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, h.ID, h.CompanyID, h.StockItemID, h.UserID, h.Action, h.Reason, h.Timestamp)
	if err != nil {
		return fmt.Errorf("insert stock history: %w", err)
	}
	return nil
}

// List registros filtrados, más reciente primero, con nombres de ítem, departamento y usuario.
func (r *StockHistoryRepo) List(ctx context.Context, f repository.HistoryFilter) ([]*entity.StockHistory, error) {
	ds := historyBase(f).
		Select(
			"h.id", "h.company_id", "h.stock_item_id", "h.user_id", "h.action", "h.reason", "h.logged_at",
			goqu.I("s.name"), goqu.I("s.department_id"), goqu.I("d.name"), goqu.I("u.username"),
		).
		Order(goqu.I("h.logged_at").Desc(), goqu.I("h.seq").Desc())
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit))
	}
	if f.Offset > 0 {
		ds = ds.Offset(uint(f.Offset))
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list history: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockHistory, 0)
	for rows.Next() {
		var h entity.StockHistory
		if err := rows.Scan(
			&h.ID, &h.CompanyID, &h.StockItemID, &h.UserID, &h.Action, &h.Reason, &h.Timestamp,
			&h.StockItemName, &h.DepartmentID, &h.DepartmentName, &h.Username,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// Count total de registros con los mismos filtros que List (ignora Limit/Offset).
func (r *StockHistoryRepo) Count(ctx context.Context, f repository.HistoryFilter) (int, error) {
	query, args, err := historyBase(f).Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count history: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func historyBase(f repository.HistoryFilter) *goqu.SelectDataset {
	ds := dialect.From(goqu.T("stock_history").As("h")).Prepared(true).
		Join(goqu.T("stock_items").As("s"), goqu.On(goqu.Ex{"s.id": goqu.I("h.stock_item_id")})).
		Join(goqu.T("departments").As("d"), goqu.On(goqu.Ex{"d.id": goqu.I("s.department_id")})).
		Join(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("h.user_id")})).
		Where(goqu.Ex{"h.company_id": f.CompanyID})

	if f.StockItemID != "" {
		ds = ds.Where(goqu.Ex{"h.stock_item_id": f.StockItemID})
	}
	if f.UserID != "" {
		ds = ds.Where(goqu.Ex{"h.user_id": f.UserID})
	}
	if f.DepartmentID != "" {
		ds = ds.Where(goqu.Ex{"s.department_id": f.DepartmentID})
	}
	if f.Action != "" {
		ds = ds.Where(goqu.Ex{"h.action": f.Action})
	}
	return ds
}
