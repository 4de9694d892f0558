package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthenticated = errors.New("no autenticado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
)

// Variantes de conflicto: errors.Is(err, ErrConflict) sigue siendo verdadero.
var (
	ErrItemNotAvailable  = fmt.Errorf("%w: item not available", ErrConflict)
	ErrInsufficientStock = fmt.Errorf("%w: stock insuficiente", ErrConflict)
	ErrDuplicate         = fmt.Errorf("%w: recurso duplicado", ErrConflict)
)

// Invalid devuelve un error de validación con detalle para el cliente.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
