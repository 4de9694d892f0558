package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// StockRow una fila del archivo de carga.
type StockRow struct {
	Line       int
	Name       string
	Quantity   int
	Department string
	ParLevel   *int
	Reason     *string
}

// RowError error de una fila; las demás siguen.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// ImportResult resumen de la carga.
type ImportResult struct {
	Imported int
	Failed   []RowError
}

// ImportUseCase carga masiva de stock a nombre de un usuario warehouse.
type ImportUseCase struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	stock       StockAdder
	log         zerolog.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(users repository.UserRepository, departments repository.DepartmentRepository, adder StockAdder, log zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{users: users, departments: departments, stock: adder, log: log}
}

// Import ejecuta un add del ledger por fila. El departamento se busca por nombre en la empresa del usuario.
func (uc *ImportUseCase) Import(ctx context.Context, username string, rows []StockRow) (*ImportResult, error) {
	user, err := uc.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %q: %w", username, domain.ErrNotFound)
	}
	if user.RoleName != entity.CapabilityRole[entity.CapMutateStock] {
		return nil, fmt.Errorf("usuario %q con rol %s: %w", username, user.RoleName, domain.ErrForbidden)
	}
	actor := entity.Actor{UserID: user.ID, CompanyID: user.CompanyID, DepartmentID: user.DepartmentID, Role: user.RoleName}

	res := &ImportResult{}
	depts := make(map[string]*entity.Department)
	for _, row := range rows {
		dept, ok := depts[row.Department]
		if !ok {
			dept, err = uc.departments.GetByName(ctx, actor.CompanyID, row.Department)
			if err != nil {
				return res, err
			}
			depts[row.Department] = dept
		}
		if dept == nil {
			res.Failed = append(res.Failed, RowError{Line: row.Line, Err: fmt.Errorf("departamento %q: %w", row.Department, domain.ErrNotFound)})
			continue
		}
		in := stock.AddInput{
			Name:         row.Name,
			Quantity:     row.Quantity,
			DepartmentID: dept.ID,
			ParLevel:     row.ParLevel,
			Reason:       row.Reason,
		}
		if _, err := uc.stock.Add(ctx, actor, in); err != nil {
			res.Failed = append(res.Failed, RowError{Line: row.Line, Err: err})
			continue
		}
		res.Imported++
	}

	uc.log.Info().
		Str("user", user.Username).
		Int("imported", res.Imported).
		Int("failed", len(res.Failed)).
		Msg("carga de stock finalizada")
	return res, nil
}
