package entity

import "time"

// Estados derivados de un ítem para las vistas de lectura.
const (
	StockStatusAvailable = "available"
	StockStatusFaulty    = "faulty"
	StockStatusDeleted   = "deleted"
)

// StockItem existencias de un artículo en un departamento.
// Quantity modela las unidades en el pool; las asignadas ya fueron descontadas.
type StockItem struct {
	ID           string
	CompanyID    string
	DepartmentID string
	Name         string
	Quantity     int
	ParLevel     *int
	IsFaulty     bool
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive es el predicado único de "ítem activo" (no eliminado) que usan ledger y consultas.
// Su equivalente SQL vive en postgres.activeItem.
func (s *StockItem) IsActive() bool {
	return s != nil && !s.IsDeleted
}

// IsAvailable indica si se puede asignar una unidad.
func (s *StockItem) IsAvailable() bool {
	return s.IsActive() && !s.IsFaulty && s.Quantity > 0
}

// BelowPar quantity < par_level, solo si hay par_level.
func (s *StockItem) BelowPar() bool {
	return s.ParLevel != nil && s.Quantity < *s.ParLevel
}

// AgeInDays días completos desde la creación.
func (s *StockItem) AgeInDays(now time.Time) int {
	if now.Before(s.CreatedAt) {
		return 0
	}
	return int(now.Sub(s.CreatedAt).Hours() / 24)
}

// Status estado derivado: deleted > faulty > available.
func (s *StockItem) Status() string {
	switch {
	case s.IsDeleted:
		return StockStatusDeleted
	case s.IsFaulty:
		return StockStatusFaulty
	default:
		return StockStatusAvailable
	}
}
