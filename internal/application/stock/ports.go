package stock

import (
	"context"
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Items       repository.StockItemRepository
	Assignments repository.AssignmentRepository
	History     repository.StockHistoryRepository
	Users       repository.UserRepository
	Departments repository.DepartmentRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// ReportRenderer genera la representación PDF del historial de auditoría.
type ReportRenderer interface {
	RenderAuditReport(ctx context.Context, company *entity.Company, logs []*entity.StockHistory, generatedAt time.Time) ([]byte, error)
}
