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

// ExpenseUseCase registro de gastos operativos.
type ExpenseUseCase struct {
	repo         repository.ExpenseRepository
	locationRepo repository.LocationRepository
	now          func() time.Time
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, locationRepo repository.LocationRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, locationRepo: locationRepo, now: time.Now}
}

// Create registra un gasto. Sin SpentAt se toma el momento actual.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.LocationID != "" {
		loc, err := uc.locationRepo.GetByID(ctx, in.LocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := uc.now()
	spentAt := now
	if in.SpentAt != nil {
		spentAt = *in.SpentAt
	}
	e := &entity.Expense{
		ID:          uuid.New().String(),
		Category:    category,
		Description: in.Description,
		Amount:      in.Amount,
		LocationID:  in.LocationID,
		SpentAt:     spentAt,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// List filtra por categoría, ubicación y rango de fechas.
func (uc *ExpenseUseCase) List(ctx context.Context, f repository.ListFilter) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return items, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		LocationID:  e.LocationID,
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
	}
}
