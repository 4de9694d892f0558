package dto

import (
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// CreateDepartmentRequest entrada para crear un departamento.
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// DepartmentResponse salida de un departamento.
type DepartmentResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDepartmentResponse mapea la entidad.
func NewDepartmentResponse(d *entity.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, CompanyID: d.CompanyID, Name: d.Name, CreatedAt: d.CreatedAt}
}
