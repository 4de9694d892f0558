package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// DepartmentUseCase alta y consulta de departamentos de la empresa.
type DepartmentUseCase struct {
	repo repository.DepartmentRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(repo repository.DepartmentRepository) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo}
}

// Create crea un departamento. El nombre es único dentro de la empresa.
func (uc *DepartmentUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es requerido")
	}
	existing, err := uc.repo.GetByName(ctx, actor.CompanyID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	dept := &entity.Department{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, dept); err != nil {
		return nil, err
	}
	out := dto.NewDepartmentResponse(dept)
	return &out, nil
}

// List departamentos de la empresa del actor, por nombre.
func (uc *DepartmentUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.DepartmentResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.NewDepartmentResponse(d))
	}
	return out, nil
}
