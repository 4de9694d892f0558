package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// CompanyUseCase alta de empresas (tenants) con su catálogo de roles.
type CompanyUseCase struct {
	companies   repository.CompanyRepository
	departments repository.DepartmentRepository
	roles       repository.RoleRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(companies repository.CompanyRepository, departments repository.DepartmentRepository, roles repository.RoleRepository) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, departments: departments, roles: roles}
}

// ProvisionInput empresa nueva y sus departamentos iniciales.
type ProvisionInput struct {
	Name        string
	Departments []string
}

// Tenant empresa creada con sus departamentos indexados por nombre.
type Tenant struct {
	Company     *entity.Company
	Departments map[string]*entity.Department
	Roles       map[entity.RoleName]*entity.Role
}

// Provision crea la empresa, los tres roles y los departamentos pedidos.
// Devuelve domain.ErrDuplicate si ya existe una empresa con ese nombre.
func (uc *CompanyUseCase) Provision(ctx context.Context, in ProvisionInput) (*Tenant, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre de empresa requerido")
	}
	existing, err := uc.companies.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("crear empresa: %w", err)
	}

	tenant := &Tenant{
		Company:     company,
		Departments: make(map[string]*entity.Department, len(in.Departments)),
		Roles:       make(map[entity.RoleName]*entity.Role, 3),
	}
	for _, rn := range []entity.RoleName{entity.RoleAdmin, entity.RoleWarehouse, entity.RoleTechnicalSupport} {
		role := &entity.Role{ID: uuid.New().String(), CompanyID: company.ID, Name: rn}
		if err := uc.roles.Create(ctx, role); err != nil {
			return nil, fmt.Errorf("crear rol %s: %w", rn, err)
		}
		tenant.Roles[rn] = role
	}
	for _, dn := range in.Departments {
		dept := &entity.Department{ID: uuid.New().String(), CompanyID: company.ID, Name: strings.TrimSpace(dn), CreatedAt: now}
		if err := uc.departments.Create(ctx, dept); err != nil {
			return nil, fmt.Errorf("crear departamento %s: %w", dn, err)
		}
		tenant.Departments[dept.Name] = dept
	}
	return tenant, nil
}

// IsActive informa si la empresa existe y no está suspendida.
func (uc *CompanyUseCase) IsActive(ctx context.Context, companyID string) (bool, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return false, err
	}
	return company != nil && company.Status == entity.CompanyStatusActive, nil
}
