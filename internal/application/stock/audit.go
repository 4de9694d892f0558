package stock

import (
	"context"
	"time"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	// maxReportRows tope de filas del reporte PDF.
	maxReportRows = 1000
)

// AuditTrail consultas sobre el historial de stock. No expone escritura:
// los registros solo se crean desde el Ledger.
type AuditTrail struct {
	history   repository.StockHistoryRepository
	companies repository.CompanyRepository
	renderer  ReportRenderer
	now       func() time.Time
}

// NewAuditTrail construye el caso de uso de auditoría.
func NewAuditTrail(history repository.StockHistoryRepository, companies repository.CompanyRepository, renderer ReportRenderer) *AuditTrail {
	return &AuditTrail{
		history:   history,
		companies: companies,
		renderer:  renderer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AuditQuery filtros de la consulta de auditoría.
type AuditQuery struct {
	StockItemID  string
	UserID       string
	DepartmentID string
	Action       string
	Limit        int
	Offset       int
}

// AuditPage página de resultados.
type AuditPage struct {
	Logs   []*entity.StockHistory
	Total  int
	Limit  int
	Offset int
}

// Logs devuelve el historial filtrado de la empresa del actor, más reciente primero.
func (a *AuditTrail) Logs(ctx context.Context, actor entity.Actor, q AuditQuery) (*AuditPage, error) {
	filter, err := a.filter(actor, q)
	if err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = clampPage(q.Limit, q.Offset)

	total, err := a.history.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	logs, err := a.history.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &AuditPage{Logs: logs, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Report genera el PDF del historial filtrado (sin paginar, hasta maxReportRows filas).
func (a *AuditTrail) Report(ctx context.Context, actor entity.Actor, q AuditQuery) ([]byte, error) {
	filter, err := a.filter(actor, q)
	if err != nil {
		return nil, err
	}
	filter.Limit = maxReportRows
	company, err := a.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	logs, err := a.history.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return a.renderer.RenderAuditReport(ctx, company, logs, a.now())
}

func (a *AuditTrail) filter(actor entity.Actor, q AuditQuery) (repository.HistoryFilter, error) {
	if q.Action != "" && !entity.ValidAction(q.Action) {
		return repository.HistoryFilter{}, domain.Invalid("action desconocida: " + q.Action)
	}
	return repository.HistoryFilter{
		CompanyID:    actor.CompanyID,
		StockItemID:  q.StockItemID,
		UserID:       q.UserID,
		DepartmentID: q.DepartmentID,
		Action:       q.Action,
	}, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
