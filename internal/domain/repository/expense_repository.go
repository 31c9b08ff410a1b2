package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context, f ListFilter) ([]*entity.Expense, error)
	Delete(ctx context.Context, id string) error
}
