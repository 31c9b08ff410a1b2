package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras (cabecera + ítems).
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Purchase, error)
}
