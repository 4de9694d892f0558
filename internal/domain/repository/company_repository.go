package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
}

// DepartmentRepository puerto para Department. Todas las lecturas van acotadas por empresa.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *entity.Department) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Department, error)
	GetByName(ctx context.Context, companyID, name string) (*entity.Department, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Department, error)
}

// RoleRepository puerto para Role.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByName(ctx context.Context, companyID string, name entity.RoleName) (*entity.Role, error)
}
