package entity

import "time"

// Acciones del historial de stock.
const (
	ActionCreate   = "create"
	ActionAdd      = "add"
	ActionAssign   = "assign"
	ActionReturn   = "return"
	ActionFaulty   = "faulty"
	ActionTransfer = "transfer"
	ActionDelete   = "delete"
)

// ValidAction informa si a es una acción conocida.
func ValidAction(a string) bool {
	switch a {
	case ActionCreate, ActionAdd, ActionAssign, ActionReturn, ActionFaulty, ActionTransfer, ActionDelete:
		return true
	}
	return false
}

// StockHistory registro de auditoría. Append-only: no existe update ni delete.
type StockHistory struct {
	ID          string
	CompanyID   string
	StockItemID string
	UserID      string
	Action      string
	Reason      *string
	Timestamp   time.Time

	// Solo lectura: resueltos por join en las consultas de auditoría.
	StockItemName  string
	DepartmentID   string
	DepartmentName string
	Username       string
}
