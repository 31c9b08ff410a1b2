package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para productos y variantes.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Product, error)
	CreateVariant(ctx context.Context, variant *entity.Variant) error
	GetVariant(ctx context.Context, id string) (*entity.Variant, error)
	UpdateVariantCost(ctx context.Context, variantID string, cost decimal.Decimal) error
}
