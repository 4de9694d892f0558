package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// StockAdder alta de stock por el ledger (cada llamada es su propia transacción).
type StockAdder interface {
	Add(ctx context.Context, actor entity.Actor, in stock.AddInput) (*entity.StockItem, error)
}

// Datos de la empresa de ejemplo.
const (
	SeedCompany          = "ExampleCorp"
	SeedDeptWarehouse    = "Warehouse"
	SeedDeptIT           = "IT"
	seedParLevel         = 2
	seedReason           = "carga inicial"
	seedAdminUser        = "admin"
	seedWarehouseUser    = "worker"
	seedTechnicalSupport = "tech"
)

// SeedResult lo creado por Seed.
type SeedResult struct {
	Tenant *Tenant
	Users  []dto.UserResponse
	Items  []*entity.StockItem
}

// SeedUseCase crea la empresa de ejemplo para desarrollo.
type SeedUseCase struct {
	companies *CompanyUseCase
	users     *UserUseCase
	stock     StockAdder
	log       zerolog.Logger
}

// NewSeedUseCase construye el caso de uso.
func NewSeedUseCase(companies *CompanyUseCase, users *UserUseCase, adder StockAdder, log zerolog.Logger) *SeedUseCase {
	return &SeedUseCase{companies: companies, users: users, stock: adder, log: log}
}

// Run crea ExampleCorp con departamentos Warehouse e IT, un usuario por rol
// (password = username) y dos ítems cargados por el ledger.
// Si la empresa ya existe devuelve domain.ErrDuplicate sin tocar nada.
func (uc *SeedUseCase) Run(ctx context.Context) (*SeedResult, error) {
	tenant, err := uc.companies.Provision(ctx, ProvisionInput{
		Name:        SeedCompany,
		Departments: []string{SeedDeptWarehouse, SeedDeptIT},
	})
	if err != nil {
		return nil, err
	}
	companyID := tenant.Company.ID
	warehouse := tenant.Departments[SeedDeptWarehouse]
	it := tenant.Departments[SeedDeptIT]

	res := &SeedResult{Tenant: tenant}
	system := entity.Actor{CompanyID: companyID, Role: entity.RoleAdmin}
	seedUsers := []struct {
		username string
		role     entity.RoleName
		dept     *entity.Department
	}{
		{seedAdminUser, entity.RoleAdmin, warehouse},
		{seedWarehouseUser, entity.RoleWarehouse, warehouse},
		{seedTechnicalSupport, entity.RoleTechnicalSupport, it},
	}
	var worker *dto.UserResponse
	for _, su := range seedUsers {
		u, err := uc.users.Create(ctx, system, dto.CreateUserRequest{
			Username:     su.username,
			Password:     su.username,
			Role:         string(su.role),
			DepartmentID: su.dept.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("crear usuario %s: %w", su.username, err)
		}
		res.Users = append(res.Users, *u)
		if su.role == entity.RoleWarehouse {
			worker = u
		}
	}

	actor := entity.Actor{UserID: worker.ID, CompanyID: companyID, DepartmentID: warehouse.ID, Role: entity.RoleWarehouse}
	par, reason := seedParLevel, seedReason
	for _, in := range []stock.AddInput{
		{Name: "Laptop", Quantity: 5, DepartmentID: warehouse.ID, ParLevel: &par, Reason: &reason},
		{Name: "Phone", Quantity: 3, DepartmentID: it.ID, ParLevel: &par, Reason: &reason},
	} {
		item, err := uc.stock.Add(ctx, actor, in)
		if err != nil {
			return nil, fmt.Errorf("cargar %s: %w", in.Name, err)
		}
		res.Items = append(res.Items, item)
	}

	uc.log.Info().
		Str("company_id", companyID).
		Int("users", len(res.Users)).
		Int("items", len(res.Items)).
		Msg("empresa de ejemplo creada")
	return res, nil
}
