package dto

import (
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// AddStockRequest body de POST /api/stock/add.
type AddStockRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Quantity     int     `json:"quantity" validate:"gt=0"`
	DepartmentID string  `json:"department_id" validate:"required,uuid"`
	ParLevel     *int    `json:"par_level,omitempty" validate:"omitempty,gte=0"`
	Reason       *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// AssignStockRequest body de POST /api/stock/assign.
type AssignStockRequest struct {
	StockItemID    string  `json:"stock_item_id" validate:"required,uuid"`
	AssigneeUserID string  `json:"assignee_user_id" validate:"required,uuid"`
	Reason         *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ReturnStockRequest body de POST /api/stock/return.
type ReturnStockRequest struct {
	AssignmentID string  `json:"assignment_id" validate:"required,uuid"`
	Reason       *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// FaultyStockRequest body de POST /api/stock/faulty.
type FaultyStockRequest struct {
	StockItemID string  `json:"stock_item_id" validate:"required,uuid"`
	Reason      *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// TransferStockRequest body de POST /api/stock/transfer.
type TransferStockRequest struct {
	StockItemID    string  `json:"stock_item_id" validate:"required,uuid"`
	ToDepartmentID string  `json:"to_department_id" validate:"required,uuid"`
	Quantity       int     `json:"quantity" validate:"gt=0"`
	Reason         *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// DeleteStockRequest body opcional de DELETE /api/stock/:id.
type DeleteStockRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// StockItemResponse salida de un ítem con los campos derivados de lectura.
type StockItemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	ParLevel     *int      `json:"par_level"`
	DepartmentID string    `json:"department_id"`
	IsFaulty     bool      `json:"is_faulty"`
	IsDeleted    bool      `json:"is_deleted"`
	BelowPar     bool      `json:"below_par"`
	AgeInDays    int       `json:"age_in_days"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewStockItemResponse mapea la entidad; now se usa para age_in_days.
func NewStockItemResponse(s *entity.StockItem, now time.Time) StockItemResponse {
	return StockItemResponse{
		ID:           s.ID,
		Name:         s.Name,
		Quantity:     s.Quantity,
		ParLevel:     s.ParLevel,
		DepartmentID: s.DepartmentID,
		IsFaulty:     s.IsFaulty,
		IsDeleted:    s.IsDeleted,
		BelowPar:     s.BelowPar(),
		AgeInDays:    s.AgeInDays(now),
		Status:       s.Status(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// NewStockItemList mapea una lista de ítems.
func NewStockItemList(items []*entity.StockItem, now time.Time) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewStockItemResponse(s, now))
	}
	return out
}

// AssignmentResponse salida de una asignación.
type AssignmentResponse struct {
	ID           string     `json:"id"`
	StockItemID  string     `json:"stock_item_id"`
	AssigneeID   string     `json:"assignee_user_id"`
	AssignedByID string     `json:"assigned_by_id"`
	AssignedAt   time.Time  `json:"assigned_at"`
	ReturnedAt   *time.Time `json:"returned_at"`
}

// AssignmentResultResponse asignación junto con el ítem actualizado.
type AssignmentResultResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	Item       StockItemResponse  `json:"item"`
}

// NewAssignmentResponse mapea la entidad.
func NewAssignmentResponse(a *entity.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:           a.ID,
		StockItemID:  a.StockItemID,
		AssigneeID:   a.AssigneeID,
		AssignedByID: a.AssignedByID,
		AssignedAt:   a.AssignedAt,
		ReturnedAt:   a.ReturnedAt,
	}
}

// TransferResponse resultado de un traslado.
type TransferResponse struct {
	Source             StockItemResponse `json:"source"`
	Destination        StockItemResponse `json:"destination"`
	DestinationCreated bool              `json:"destination_created"`
}

// EquipmentResponse un equipo asignado al usuario (vista "mi equipo").
type EquipmentResponse struct {
	AssignmentID   string    `json:"assignment_id"`
	StockItemID    string    `json:"stock_item_id"`
	Name           string    `json:"name"`
	DepartmentID   string    `json:"department_id"`
	DepartmentName string    `json:"department"`
	IsFaulty       bool      `json:"is_faulty"`
	AssignedAt     time.Time `json:"assigned_at"`
}

// NewEquipmentList mapea la vista de asignaciones abiertas.
func NewEquipmentList(items []*entity.EquipmentItem) []EquipmentResponse {
	out := make([]EquipmentResponse, 0, len(items))
	for _, e := range items {
		out = append(out, EquipmentResponse{
			AssignmentID:   e.AssignmentID,
			StockItemID:    e.StockItemID,
			Name:           e.Name,
			DepartmentID:   e.DepartmentID,
			DepartmentName: e.DepartmentName,
			IsFaulty:       e.IsFaulty,
			AssignedAt:     e.AssignedAt,
		})
	}
	return out
}

// StockItemListResponse listado de ítems.
type StockItemListResponse struct {
	Items []StockItemResponse `json:"items"`
}

// EquipmentListResponse equipos asignados.
type EquipmentListResponse struct {
	Items []EquipmentResponse `json:"items"`
}
