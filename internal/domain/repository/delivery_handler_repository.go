package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// DeliveryHandlerRepository define el puerto de persistencia para repartidores.
type DeliveryHandlerRepository interface {
	Create(ctx context.Context, handler *entity.DeliveryHandler) error
	GetByID(ctx context.Context, id string) (*entity.DeliveryHandler, error)
	Update(ctx context.Context, handler *entity.DeliveryHandler) error
	List(ctx context.Context, f ListFilter) ([]*entity.DeliveryHandler, error)
}
