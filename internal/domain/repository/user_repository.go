package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// UserFilter filtros del listado de usuarios de una empresa.
type UserFilter struct {
	CompanyID    string
	DepartmentID string
	Limit        int
	Offset       int
}

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID no filtra por empresa: la comprobación de tenant la hace el caller
// para poder distinguir "no existe" de "otra empresa" donde se necesita.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
}
