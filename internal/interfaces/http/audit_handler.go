package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/stock"
)

// AuditHandler consulta del historial de la empresa (solo admin).
type AuditHandler struct {
	audit AuditService
	log   zerolog.Logger
}

// NewAuditHandler construye el handler.
func NewAuditHandler(audit AuditService, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, log: log}
}

// Logs godoc
// @Summary      Historial de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        stock_item_id  query  string  false  "Ítem"
// @Param        user_id        query  string  false  "Usuario que ejecutó la acción"
// @Param        department_id  query  string  false  "Departamento del ítem"
// @Param        action         query  string  false  "create | add | assign | return | faulty | transfer | delete"
// @Param        limit          query  int     false  "Límite"  default(50)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AuditLogsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit/logs [get]
func (h *AuditHandler) Logs(c *fiber.Ctx) error {
	q, err := auditQueryFromRequest(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	page, err := h.audit.Logs(c.UserContext(), GetActor(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.AuditLogsResponse{
		Logs: dto.NewStockHistoryList(page.Logs),
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: page.Total},
	})
}

// Report godoc
// @Summary      Reporte PDF de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      application/pdf
// @Param        stock_item_id  query  string  false  "Ítem"
// @Param        user_id        query  string  false  "Usuario"
// @Param        department_id  query  string  false  "Departamento"
// @Param        action         query  string  false  "Acción"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit/logs/report.pdf [get]
func (h *AuditHandler) Report(c *fiber.Ctx) error {
	q, err := auditQueryFromRequest(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	pdf, err := h.audit.Report(c.UserContext(), GetActor(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="audit-report.pdf"`)
	return c.Send(pdf)
}

func auditQueryFromRequest(c *fiber.Ctx) (stock.AuditQuery, error) {
	q := stock.AuditQuery{
		StockItemID:  c.Query("stock_item_id"),
		UserID:       c.Query("user_id"),
		DepartmentID: c.Query("department_id"),
		Action:       c.Query("action"),
		Limit:        c.QueryInt("limit", 50),
		Offset:       c.QueryInt("offset", 0),
	}
	for _, f := range [][2]string{
		{"stock_item_id", q.StockItemID},
		{"user_id", q.UserID},
		{"department_id", q.DepartmentID},
	} {
		if err := checkUUID(f[0], f[1]); err != nil {
			return q, err
		}
	}
	return q, nil
}
