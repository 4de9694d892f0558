package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	departments repository.DepartmentRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(users repository.UserRepository, roles repository.RoleRepository, departments repository.DepartmentRepository) *UserUseCase {
	return &UserUseCase{users: users, roles: roles, departments: departments}
}

// Create da de alta un usuario en la empresa del actor. El username es global.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.Invalid("username y password son requeridos")
	}
	roleName := entity.RoleName(in.Role)
	if !roleName.Valid() {
		return nil, domain.Invalid("role desconocido: " + in.Role)
	}

	existing, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	dept, err := uc.departments.GetByID(ctx, actor.CompanyID, in.DepartmentID)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}
	role, err := uc.roles.GetByName(ctx, actor.CompanyID, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    actor.CompanyID,
		DepartmentID: dept.ID,
		RoleID:       role.ID,
		RoleName:     role.Name,
		Username:     username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Email:        in.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List usuarios de la empresa del actor; departmentID opcional.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor, departmentID string, limit, offset int) (*dto.UserListResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.users.List(ctx, repository.UserFilter{
		CompanyID:    actor.CompanyID,
		DepartmentID: departmentID,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// ToUserResponse mapea el usuario sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		CompanyID:    u.CompanyID,
		DepartmentID: u.DepartmentID,
		Username:     u.Username,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         string(u.RoleName),
		CreatedAt:    u.CreatedAt,
	}
}
