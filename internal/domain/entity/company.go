package entity

import "time"

// Estados de una empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
)

// Company representa una organización/tenant del sistema. Todo lo demás cuelga de company_id.
type Company struct {
	ID        string
	Name      string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Department agrupa usuarios e ítems dentro de una Company.
type Department struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
}
