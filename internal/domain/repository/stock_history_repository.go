package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// HistoryFilter filtros de la consulta de auditoría. Orden: timestamp descendente.
type HistoryFilter struct {
	CompanyID    string
	StockItemID  string
	UserID       string
	DepartmentID string
	Action       string
	Limit        int
	Offset       int
}

// StockHistoryRepository puerto del historial. Solo Append y lecturas: el historial es inmutable.
type StockHistoryRepository interface {
	Append(ctx context.Context, h *entity.StockHistory) error
	List(ctx context.Context, filter HistoryFilter) ([]*entity.StockHistory, error)
	Count(ctx context.Context, filter HistoryFilter) (int, error)
}
