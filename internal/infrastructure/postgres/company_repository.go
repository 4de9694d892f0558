package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.DepartmentRepository = (*DepartmentRepo)(nil)
	_ repository.RoleRepository       = (*RoleRepo)(nil)
)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `
		SELECT id, name, status, created_at, updated_at
		FROM companies WHERE id = $1`, id)
}

// GetByName obtiene una empresa por nombre.
func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return r.getOne(ctx, `
		SELECT id, name, status, created_at, updated_at
		FROM companies WHERE name = $1`, name)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// DepartmentRepo implementación de DepartmentRepository.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create persiste un departamento. Nombre repetido en la empresa -> ErrDuplicate.
func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	query := `
		INSERT INTO departments (id, company_id, name, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, d.ID, d.CompanyID, d.Name, d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// GetByID obtiene un departamento de la empresa.
func (r *DepartmentRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Department, error) {
	return r.getOne(ctx, `
		SELECT id, company_id, name, created_at
		FROM departments WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetByName obtiene un departamento por nombre dentro de la empresa.
func (r *DepartmentRepo) GetByName(ctx context.Context, companyID, name string) (*entity.Department, error) {
	return r.getOne(ctx, `
		SELECT id, company_id, name, created_at
		FROM departments WHERE company_id = $1 AND name = $2`, companyID, name)
}

func (r *DepartmentRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Department, error) {
	var d entity.Department
	err := r.q.QueryRow(ctx, query, args...).Scan(&d.ID, &d.CompanyID, &d.Name, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// ListByCompany departamentos de la empresa ordenados por nombre.
func (r *DepartmentRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Department, error) {
	query := `
		SELECT id, company_id, name, created_at
		FROM departments WHERE company_id = $1
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// RoleRepo implementación de RoleRepository.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create persiste un rol.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	_, err := r.q.Exec(ctx, `INSERT INTO roles (id, company_id, name) VALUES ($1, $2, $3)`,
		role.ID, role.CompanyID, string(role.Name))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByName obtiene el rol de la empresa con ese nombre.
func (r *RoleRepo) GetByName(ctx context.Context, companyID string, name entity.RoleName) (*entity.Role, error) {
	var (
		role entity.Role
		raw  string
	)
	err := r.q.QueryRow(ctx, `SELECT id, company_id, name FROM roles WHERE company_id = $1 AND name = $2`,
		companyID, string(name)).Scan(&role.ID, &role.CompanyID, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	role.Name = entity.RoleName(raw)
	return &role, nil
}
