package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/domain"
)

// StockHandler mutaciones y consultas de stock.
type StockHandler struct {
	ledger  StockLedger
	catalog StockCatalog
	log     zerolog.Logger
	now     func() time.Time
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger StockLedger, catalog StockCatalog, log zerolog.Logger) *StockHandler {
	return &StockHandler{
		ledger:  ledger,
		catalog: catalog,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Add godoc
// @Summary      Agregar stock
// @Description  Suma unidades a un ítem existente del departamento o lo crea.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "Ítem y cantidad"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	item, err := h.ledger.Add(c.UserContext(), GetActor(c), stock.AddInput{
		Name:         in.Name,
		Quantity:     in.Quantity,
		DepartmentID: in.DepartmentID,
		ParLevel:     in.ParLevel,
		Reason:       in.Reason,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockItemResponse(item, h.now()))
}

// Assign godoc
// @Summary      Asignar un equipo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignStockRequest  true  "Ítem y usuario destino"
// @Success      201   {object}  dto.AssignmentResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/assign [post]
func (h *StockHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	res, err := h.ledger.Assign(c.UserContext(), GetActor(c), stock.AssignInput{
		StockItemID: in.StockItemID,
		AssigneeID:  in.AssigneeUserID,
		Reason:      in.Reason,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.assignmentResult(res))
}

// Return godoc
// @Summary      Devolver un equipo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnStockRequest  true  "Asignación abierta"
// @Success      200   {object}  dto.AssignmentResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/return [post]
func (h *StockHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	res, err := h.ledger.Return(c.UserContext(), GetActor(c), stock.ReturnInput{
		AssignmentID: in.AssignmentID,
		Reason:       in.Reason,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.assignmentResult(res))
}

// Faulty godoc
// @Summary      Marcar ítem como defectuoso
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FaultyStockRequest  true  "Ítem"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/faulty [post]
func (h *StockHandler) Faulty(c *fiber.Ctx) error {
	var in dto.FaultyStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	item, err := h.ledger.MarkFaulty(c.UserContext(), GetActor(c), stock.MarkFaultyInput{
		StockItemID: in.StockItemID,
		Reason:      in.Reason,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewStockItemResponse(item, h.now()))
}

// Transfer godoc
// @Summary      Trasladar unidades entre departamentos
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "Ítem, destino y cantidad"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	res, err := h.ledger.Transfer(c.UserContext(), GetActor(c), stock.TransferInput{
		StockItemID:    in.StockItemID,
		ToDepartmentID: in.ToDepartmentID,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	now := h.now()
	return c.JSON(dto.TransferResponse{
		Source:             dto.NewStockItemResponse(res.Source, now),
		Destination:        dto.NewStockItemResponse(res.Destination, now),
		DestinationCreated: res.Created,
	})
}

// Delete godoc
// @Summary      Baja lógica de un ítem
// @Description  El motivo puede ir en el body o en ?reason=.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        reason  query  string  false  "Motivo"
// @Success      200     {object}  dto.StockItemResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.DeleteStockRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return writeError(c, h.log, err)
		}
	}
	if in.Reason == nil {
		if r := c.Query("reason"); r != "" {
			in.Reason = &r
		}
	}
	item, err := h.ledger.Delete(c.UserContext(), GetActor(c), stock.DeleteInput{
		StockItemID: id,
		Reason:      in.Reason,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewStockItemResponse(item, h.now()))
}

// List godoc
// @Summary      Listar stock
// @Description  user_id devuelve solo los ítems con asignación abierta a ese usuario e ignora los demás filtros salvo department_id.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        department_id    query  string  false  "Departamento"
// @Param        user_id          query  string  false  "Usuario con asignación abierta"
// @Param        below_par        query  bool    false  "Solo bajo nivel mínimo"
// @Param        older_than_days  query  int     false  "Antigüedad mínima en días"
// @Param        acquired_before  query  string  false  "Fecha RFC3339 o YYYY-MM-DD"
// @Param        status           query  string  false  "faulty | ok"
// @Success      200  {object}  dto.StockItemListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	q, err := itemQueryFromRequest(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	items, err := h.catalog.ListItems(c.UserContext(), GetActor(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.StockItemListResponse{Items: dto.NewStockItemList(items, h.now())})
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	item, err := h.catalog.GetItem(c.UserContext(), GetActor(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewStockItemResponse(item, h.now()))
}

// History godoc
// @Summary      Historial de un ítem
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ItemHistoryResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	logs, err := h.catalog.ItemHistory(c.UserContext(), GetActor(c), id, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ItemHistoryResponse{
		StockItemID: id,
		Logs:        dto.NewStockHistoryList(logs),
	})
}

// MyEquipment godoc
// @Summary      Equipos asignados al usuario autenticado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        department_id  query  string  false  "Departamento"
// @Success      200  {object}  dto.EquipmentListResponse
// @Router       /api/stock/my-equipment [get]
func (h *StockHandler) MyEquipment(c *fiber.Ctx) error {
	departmentID := c.Query("department_id")
	if err := checkUUID("department_id", departmentID); err != nil {
		return writeError(c, h.log, err)
	}
	items, err := h.catalog.MyEquipment(c.UserContext(), GetActor(c), departmentID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.EquipmentListResponse{Items: dto.NewEquipmentList(items)})
}

func (h *StockHandler) assignmentResult(res *stock.AssignmentResult) dto.AssignmentResultResponse {
	return dto.AssignmentResultResponse{
		Assignment: dto.NewAssignmentResponse(res.Assignment),
		Item:       dto.NewStockItemResponse(res.Item, h.now()),
	}
}

func itemQueryFromRequest(c *fiber.Ctx) (stock.ItemQuery, error) {
	q := stock.ItemQuery{
		DepartmentID: c.Query("department_id"),
		UserID:       c.Query("user_id"),
		BelowPar:     c.QueryBool("below_par", false),
		Status:       c.Query("status"),
	}
	if err := checkUUID("department_id", q.DepartmentID); err != nil {
		return q, err
	}
	if err := checkUUID("user_id", q.UserID); err != nil {
		return q, err
	}
	if raw := c.Query("older_than_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return q, domain.Invalid("older_than_days debe ser un entero")
		}
		q.OlderThanDays = &days
	}
	if raw := c.Query("acquired_before"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return q, domain.Invalid("acquired_before debe ser RFC3339 o YYYY-MM-DD")
		}
		q.AcquiredBefore = &t
	}
	return q, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, raw)
}
