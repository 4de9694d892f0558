package entity

import "time"

// Assignment entrega de una unidad de un StockItem a un usuario.
// Abierta mientras ReturnedAt es nil; al devolverse se cierra y nunca se borra.
type Assignment struct {
	ID           string
	CompanyID    string
	StockItemID  string
	AssigneeID   string
	AssignedByID string
	AssignedAt   time.Time
	ReturnedAt   *time.Time
}

// IsOpen informa si la unidad sigue fuera del pool.
func (a *Assignment) IsOpen() bool {
	return a != nil && a.ReturnedAt == nil
}

// EquipmentItem vista de una asignación abierta con los nombres resueltos.
type EquipmentItem struct {
	AssignmentID   string
	StockItemID    string
	Name           string
	DepartmentID   string
	DepartmentName string
	IsFaulty       bool
	AssignedAt     time.Time
}
