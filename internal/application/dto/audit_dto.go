package dto

import (
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// StockHistoryResponse un registro del historial.
type StockHistoryResponse struct {
	ID             string    `json:"id"`
	StockItemID    string    `json:"stock_item_id"`
	StockItemName  string    `json:"stock_item_name,omitempty"`
	DepartmentID   string    `json:"department_id,omitempty"`
	DepartmentName string    `json:"department_name,omitempty"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"user_name,omitempty"`
	Action         string    `json:"action"`
	Reason         *string   `json:"reason"`
	Timestamp      time.Time `json:"timestamp"`
}

// AuditLogsResponse página de auditoría.
type AuditLogsResponse struct {
	Logs []StockHistoryResponse `json:"logs"`
	Page PageResponse           `json:"page"`
}

// NewStockHistoryList mapea registros del historial.
func NewStockHistoryList(list []*entity.StockHistory) []StockHistoryResponse {
	out := make([]StockHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, StockHistoryResponse{
			ID:             h.ID,
			StockItemID:    h.StockItemID,
			StockItemName:  h.StockItemName,
			DepartmentID:   h.DepartmentID,
			DepartmentName: h.DepartmentName,
			UserID:         h.UserID,
			Username:       h.Username,
			Action:         h.Action,
			Reason:         h.Reason,
			Timestamp:      h.Timestamp,
		})
	}
	return out
}

// ItemHistoryResponse historial de un ítem.
type ItemHistoryResponse struct {
	StockItemID string                 `json:"stock_item_id"`
	Logs        []StockHistoryResponse `json:"logs"`
}
