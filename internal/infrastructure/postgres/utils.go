package postgres

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registra el dialecto
	"github.com/jackc/pgx/v5/pgconn"
)

// dialect builder de goqu para las consultas con filtros opcionales.
var dialect = goqu.Dialect("postgres")

// activeItem predicado SQL de ítem activo; equivale a entity.StockItem.IsActive.
const activeItem = "is_deleted = FALSE"

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isCheckViolation verifica si un error es una violación de CHECK (23514).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return false
}
