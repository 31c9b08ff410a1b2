package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// DeliveryHandlerUseCase repartidores: empleado propio o agencia.
type DeliveryHandlerUseCase struct {
	repo         repository.DeliveryHandlerRepository
	employeeRepo repository.EmployeeRepository
	now          func() time.Time
}

// NewDeliveryHandlerUseCase construye el caso de uso.
func NewDeliveryHandlerUseCase(repo repository.DeliveryHandlerRepository, employeeRepo repository.EmployeeRepository) *DeliveryHandlerUseCase {
	return &DeliveryHandlerUseCase{repo: repo, employeeRepo: employeeRepo, now: time.Now}
}

// Create registra un repartidor. Un EMPLOYEE debe referir a un empleado activo.
func (uc *DeliveryHandlerUseCase) Create(ctx context.Context, in dto.DeliveryHandlerRequest) (*dto.DeliveryHandlerResponse, error) {
	kind, err := uc.kindFromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	h := &entity.DeliveryHandler{
		ID:        uuid.New().String(),
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, h)
}

// Update reemplaza el tipo y los datos del repartidor.
func (uc *DeliveryHandlerUseCase) Update(ctx context.Context, id string, in dto.DeliveryHandlerRequest) (*dto.DeliveryHandlerResponse, error) {
	h, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	kind, err := uc.kindFromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	h.Kind = kind
	h.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, h)
}

// GetByID obtiene un repartidor con los datos del empleado si corresponde.
func (uc *DeliveryHandlerUseCase) GetByID(ctx context.Context, id string) (*dto.DeliveryHandlerResponse, error) {
	h, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, h)
}

// List lista repartidores. ListFilter.Status filtra por tipo (EMPLOYEE/AGENCY).
func (uc *DeliveryHandlerUseCase) List(ctx context.Context, f repository.ListFilter) ([]dto.DeliveryHandlerResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryHandlerResponse, 0, len(list))
	for _, h := range list {
		resp, err := uc.toResponse(ctx, h)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

func (uc *DeliveryHandlerUseCase) get(ctx context.Context, id string) (*entity.DeliveryHandler, error) {
	h, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}
	return h, nil
}

func (uc *DeliveryHandlerUseCase) kindFromRequest(ctx context.Context, in dto.DeliveryHandlerRequest) (entity.DeliveryHandlerKind, error) {
	switch in.Type {
	case entity.DeliveryHandlerEmployee:
		if in.EmployeeID == "" || in.Agency != nil {
			return nil, fmt.Errorf("%w: EMPLOYEE requiere employee_id y no admite agency", domain.ErrInvalidInput)
		}
		e, err := uc.employeeRepo.GetByID(ctx, in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, domain.ErrNotFound
		}
		if !e.Active {
			return nil, fmt.Errorf("%w: el empleado está inactivo", domain.ErrConflict)
		}
		return entity.EmployeeHandler{EmployeeID: e.ID}, nil
	case entity.DeliveryHandlerAgency:
		if in.Agency == nil || in.EmployeeID != "" || strings.TrimSpace(in.Agency.Name) == "" {
			return nil, fmt.Errorf("%w: AGENCY requiere agency.name y no admite employee_id", domain.ErrInvalidInput)
		}
		return entity.AgencyHandler{
			Name:    strings.TrimSpace(in.Agency.Name),
			Phone:   strings.TrimSpace(in.Agency.Phone),
			Address: in.Agency.Address,
		}, nil
	}
	return nil, fmt.Errorf("%w: tipo de repartidor %q", domain.ErrInvalidInput, in.Type)
}

func (uc *DeliveryHandlerUseCase) toResponse(ctx context.Context, h *entity.DeliveryHandler) (*dto.DeliveryHandlerResponse, error) {
	resp := &dto.DeliveryHandlerResponse{
		ID:        h.ID,
		Type:      h.Type(),
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
	switch k := h.Kind.(type) {
	case entity.EmployeeHandler:
		resp.EmployeeID = k.EmployeeID
		e, err := uc.employeeRepo.GetByID(ctx, k.EmployeeID)
		if err != nil {
			return nil, err
		}
		if e != nil {
			resp.Employee = toEmployeeResponse(e)
		}
	case entity.AgencyHandler:
		resp.Agency = &dto.AgencyRequest{Name: k.Name, Phone: k.Phone, Address: k.Address}
	default:
		return nil, fmt.Errorf("repartidor %s sin tipo", h.ID)
	}
	return resp, nil
}
