package stock

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// Ledger aplica las mutaciones de stock. Cada operación corre en una sola transacción:
// lectura con bloqueo de fila, cambio de estado y registro en el historial se confirman juntos o no se confirman.
type Ledger struct {
	tx  TxRunner
	log zerolog.Logger
	now func() time.Time
}

// NewLedger construye el ledger.
func NewLedger(tx TxRunner, log zerolog.Logger) *Ledger {
	return &Ledger{
		tx:  tx,
		log: log,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// AddInput entrada de Add.
type AddInput struct {
	Name         string
	Quantity     int
	DepartmentID string
	ParLevel     *int
	Reason       *string
}

// AssignInput entrada de Assign.
type AssignInput struct {
	StockItemID string
	AssigneeID  string
	Reason      *string
}

// ReturnInput entrada de Return.
type ReturnInput struct {
	AssignmentID string
	Reason       *string
}

// MarkFaultyInput entrada de MarkFaulty.
type MarkFaultyInput struct {
	StockItemID string
	Reason      *string
}

// TransferInput entrada de Transfer.
type TransferInput struct {
	StockItemID    string
	ToDepartmentID string
	Quantity       int
	Reason         *string
}

// DeleteInput entrada de Delete.
type DeleteInput struct {
	StockItemID string
	Reason      *string
}

// AssignmentResult asignación creada o cerrada junto con el ítem ya actualizado.
type AssignmentResult struct {
	Assignment *entity.Assignment
	Item       *entity.StockItem
}

// TransferResult ítems de origen y destino tras el traslado.
type TransferResult struct {
	Source      *entity.StockItem
	Destination *entity.StockItem
	Created     bool // destino creado por el traslado
}

// Add suma unidades a un ítem existente (mismo nombre y departamento) o lo crea.
// Historial: "add" si existía, "create" si no.
func (l *Ledger) Add(ctx context.Context, actor entity.Actor, in AddInput) (*entity.StockItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity debe ser mayor que 0")
	}
	if in.ParLevel != nil && *in.ParLevel < 0 {
		return nil, domain.Invalid("par_level no puede ser negativo")
	}
	if in.DepartmentID == "" {
		return nil, domain.Invalid("department_id es requerido")
	}

	var out *entity.StockItem
	err := l.tx.Run(ctx, func(r Repos) error {
		dept, err := r.Departments.GetByID(ctx, actor.CompanyID, in.DepartmentID)
		if err != nil {
			return err
		}
		if dept == nil {
			return domain.ErrNotFound
		}

		now := l.now()
		item, created, err := lockOrCreate(ctx, r, &entity.StockItem{
			ID:           uuid.New().String(),
			CompanyID:    actor.CompanyID,
			DepartmentID: dept.ID,
			Name:         name,
			Quantity:     in.Quantity,
			ParLevel:     in.ParLevel,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		action := entity.ActionAdd
		if created {
			action = entity.ActionCreate
		} else {
			item.Quantity += in.Quantity
			if in.ParLevel != nil {
				item.ParLevel = in.ParLevel
			}
			item.UpdatedAt = now
			if err := r.Items.Update(ctx, item); err != nil {
				return err
			}
		}
		if err := l.record(ctx, r, actor, item.ID, action, in.Reason, now); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Assign entrega una unidad del ítem a un usuario de la misma empresa.
func (l *Ledger) Assign(ctx context.Context, actor entity.Actor, in AssignInput) (*AssignmentResult, error) {
	if in.StockItemID == "" || in.AssigneeID == "" {
		return nil, domain.Invalid("stock_item_id y assignee_user_id son requeridos")
	}

	var out *AssignmentResult
	err := l.tx.Run(ctx, func(r Repos) error {
		item, err := r.Items.GetForUpdate(ctx, actor.CompanyID, in.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.IsAvailable() {
			return domain.ErrItemNotAvailable
		}

		assignee, err := r.Users.GetByID(ctx, in.AssigneeID)
		if err != nil {
			return err
		}
		if assignee == nil {
			return domain.ErrNotFound
		}
		if assignee.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}

		now := l.now()
		item.Quantity--
		item.UpdatedAt = now
		if err := r.Items.Update(ctx, item); err != nil {
			return err
		}
		a := &entity.Assignment{
			ID:           uuid.New().String(),
			CompanyID:    actor.CompanyID,
			StockItemID:  item.ID,
			AssigneeID:   assignee.ID,
			AssignedByID: actor.UserID,
			AssignedAt:   now,
		}
		if err := r.Assignments.Create(ctx, a); err != nil {
			return err
		}
		if err := l.record(ctx, r, actor, item.ID, entity.ActionAssign, in.Reason, now); err != nil {
			return err
		}
		out = &AssignmentResult{Assignment: a, Item: item}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Return cierra una asignación abierta y devuelve la unidad al pool.
func (l *Ledger) Return(ctx context.Context, actor entity.Actor, in ReturnInput) (*AssignmentResult, error) {
	if in.AssignmentID == "" {
		return nil, domain.Invalid("assignment_id es requerido")
	}

	var out *AssignmentResult
	err := l.tx.Run(ctx, func(r Repos) error {
		a, err := r.Assignments.GetOpenForUpdate(ctx, actor.CompanyID, in.AssignmentID)
		if err != nil {
			return err
		}
		if !a.IsOpen() {
			return domain.ErrNotFound
		}
		item, err := r.Items.GetForUpdate(ctx, actor.CompanyID, a.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		now := l.now()
		a.ReturnedAt = &now
		if err := r.Assignments.Close(ctx, a); err != nil {
			return err
		}
		item.Quantity++
		item.UpdatedAt = now
		if err := r.Items.Update(ctx, item); err != nil {
			return err
		}
		if err := l.record(ctx, r, actor, item.ID, entity.ActionReturn, in.Reason, now); err != nil {
			return err
		}
		out = &AssignmentResult{Assignment: a, Item: item}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkFaulty marca el ítem como defectuoso. Repetirlo vuelve a registrar historial.
func (l *Ledger) MarkFaulty(ctx context.Context, actor entity.Actor, in MarkFaultyInput) (*entity.StockItem, error) {
	if in.StockItemID == "" {
		return nil, domain.Invalid("stock_item_id es requerido")
	}
	return l.flag(ctx, actor, in.StockItemID, entity.ActionFaulty, in.Reason, func(item *entity.StockItem) {
		item.IsFaulty = true
	})
}

// Delete hace soft delete. El ítem queda fuera del predicado activo, así que un segundo Delete es NotFound.
func (l *Ledger) Delete(ctx context.Context, actor entity.Actor, in DeleteInput) (*entity.StockItem, error) {
	if in.StockItemID == "" {
		return nil, domain.Invalid("stock_item_id es requerido")
	}
	return l.flag(ctx, actor, in.StockItemID, entity.ActionDelete, in.Reason, func(item *entity.StockItem) {
		item.IsDeleted = true
	})
}

func (l *Ledger) flag(ctx context.Context, actor entity.Actor, itemID, action string, reason *string, apply func(*entity.StockItem)) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := l.tx.Run(ctx, func(r Repos) error {
		item, err := r.Items.GetForUpdate(ctx, actor.CompanyID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		now := l.now()
		apply(item)
		item.UpdatedAt = now
		if err := r.Items.Update(ctx, item); err != nil {
			return err
		}
		if err := l.record(ctx, r, actor, item.ID, action, reason, now); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transfer mueve unidades a otro departamento. El destino se busca por nombre o se crea
// (sin copiar par_level). Solo el ítem de origen recibe registro "transfer".
func (l *Ledger) Transfer(ctx context.Context, actor entity.Actor, in TransferInput) (*TransferResult, error) {
	if in.StockItemID == "" || in.ToDepartmentID == "" {
		return nil, domain.Invalid("stock_item_id y to_department_id son requeridos")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity debe ser mayor que 0")
	}

	var out *TransferResult
	err := l.tx.Run(ctx, func(r Repos) error {
		// Nombre y departamento no cambian: se leen sin lock para saber qué filas bloquear.
		cur, err := r.Items.GetByID(ctx, actor.CompanyID, in.StockItemID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		dept, err := r.Departments.GetByID(ctx, actor.CompanyID, in.ToDepartmentID)
		if err != nil {
			return err
		}
		if dept == nil {
			return domain.ErrNotFound
		}
		if dept.ID == cur.DepartmentID {
			return domain.Invalid("el departamento destino debe ser distinto del de origen")
		}

		src, dst, err := r.Items.LockForTransfer(ctx, actor.CompanyID, cur.ID, dept.ID, cur.Name)
		if err != nil {
			return err
		}
		if src == nil {
			return domain.ErrNotFound
		}
		if src.IsFaulty {
			return domain.ErrItemNotAvailable
		}
		if in.Quantity > src.Quantity {
			return domain.ErrInsufficientStock
		}

		now := l.now()
		created := false
		if dst == nil {
			dst, created, err = lockOrCreate(ctx, r, &entity.StockItem{
				ID:           uuid.New().String(),
				CompanyID:    actor.CompanyID,
				DepartmentID: dept.ID,
				Name:         src.Name,
				Quantity:     in.Quantity,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
			if err != nil {
				return err
			}
		}
		if !created {
			dst.Quantity += in.Quantity
			dst.UpdatedAt = now
			if err := r.Items.Update(ctx, dst); err != nil {
				return err
			}
		}

		src.Quantity -= in.Quantity
		src.UpdatedAt = now
		if err := r.Items.Update(ctx, src); err != nil {
			return err
		}
		if err := l.record(ctx, r, actor, src.ID, entity.ActionTransfer, in.Reason, now); err != nil {
			return err
		}
		out = &TransferResult{Source: src, Destination: dst, Created: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lockOrCreate bloquea el ítem activo con el nombre y departamento de fresh, o inserta fresh.
// Si otra transacción lo inserta entre la búsqueda y el INSERT, lo relee bloqueado.
func lockOrCreate(ctx context.Context, r Repos, fresh *entity.StockItem) (*entity.StockItem, bool, error) {
	item, err := r.Items.FindByNameForUpdate(ctx, fresh.CompanyID, fresh.DepartmentID, fresh.Name)
	if err != nil || item != nil {
		return item, false, err
	}
	created, err := r.Items.CreateIfAbsent(ctx, fresh)
	if err != nil {
		return nil, false, err
	}
	if created {
		return fresh, true, nil
	}
	item, err = r.Items.FindByNameForUpdate(ctx, fresh.CompanyID, fresh.DepartmentID, fresh.Name)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		// El homónimo se borró antes de poder bloquearlo.
		return nil, false, domain.ErrConflict
	}
	return item, false, nil
}

// record agrega el registro de historial dentro de la transacción en curso.
func (l *Ledger) record(ctx context.Context, r Repos, actor entity.Actor, itemID, action string, reason *string, now time.Time) error {
	h := &entity.StockHistory{
		ID:          uuid.New().String(),
		CompanyID:   actor.CompanyID,
		StockItemID: itemID,
		UserID:      actor.UserID,
		Action:      action,
		Reason:      normalizeReason(reason),
		Timestamp:   now,
	}
	if err := r.History.Append(ctx, h); err != nil {
		return err
	}
	l.log.Debug().
		Str("action", action).
		Str("stock_item_id", itemID).
		Str("company_id", actor.CompanyID).
		Str("user_id", actor.UserID).
		Msg("movimiento de stock")
	return nil
}

func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	s := strings.TrimSpace(*reason)
	if s == "" {
		return nil
	}
	return &s
}
