package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `
	u.id, u.company_id, u.department_id, u.role_id, r.name, u.username,
	u.password_hash, u.full_name, u.email, u.created_at, u.updated_at`

// Create persiste un nuevo usuario. Username repetido -> ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, department_id, role_id, username, password_hash, full_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.DepartmentID, user.RoleID, user.Username,
		user.PasswordHash, user.FullName, user.Email, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID (cualquier empresa).
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT` + userColumns + `
		FROM users u JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByUsername obtiene un usuario por username (para login).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT` + userColumns + `
		FROM users u JOIN roles r ON r.id = u.role_id
		WHERE u.username = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, username))
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List usuarios de una empresa, por username.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	ds := dialect.From(goqu.T("users").As("u")).Prepared(true).
		Select(
			"u.id", "u.company_id", "u.department_id", "u.role_id", goqu.I("r.name"), "u.username",
			"u.password_hash", "u.full_name", "u.email", "u.created_at", "u.updated_at",
		).
		Join(goqu.T("roles").As("r"), goqu.On(goqu.Ex{"r.id": goqu.I("u.role_id")})).
		Where(goqu.Ex{"u.company_id": f.CompanyID}).
		Order(goqu.I("u.username").Asc())
	if f.DepartmentID != "" {
		ds = ds.Where(goqu.Ex{"u.department_id": f.DepartmentID})
	}
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit))
	}
	if f.Offset > 0 {
		ds = ds.Offset(uint(f.Offset))
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u    entity.User
		role string
	)
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.DepartmentID, &u.RoleID, &role, &u.Username,
		&u.PasswordHash, &u.FullName, &u.Email, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.RoleName = entity.RoleName(role)
	return &u, nil
}
