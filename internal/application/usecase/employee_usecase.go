package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// EmployeeUseCase casos de uso para empleados.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
	now  func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, now: time.Now}
}

// Create da de alta un empleado activo.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	first := strings.TrimSpace(in.FirstName)
	if first == "" || in.Salary.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	e := &entity.Employee{
		ID:        uuid.New().String(),
		FirstName: first,
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Role:      in.Role,
		Salary:    in.Salary,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// GetByID obtiene un empleado.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// Update aplica los campos presentes.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		e.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		e.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		e.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Role != nil {
		e.Role = *in.Role
	}
	if in.Salary != nil {
		e.Salary = *in.Salary
	}
	if in.Active != nil {
		e.Active = *in.Active
	}
	if e.FirstName == "" || e.Salary.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// List filtra por nombre y estado (active/inactive).
func (uc *EmployeeUseCase) List(ctx context.Context, f repository.ListFilter) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return items, nil
}

func (uc *EmployeeUseCase) get(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		FullName:  e.FullName(),
		Phone:     e.Phone,
		Role:      e.Role,
		Salary:    e.Salary,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
	}
}
