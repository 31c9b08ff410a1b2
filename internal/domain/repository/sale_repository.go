package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas de los tres canales.
// Create y Update guardan cabecera, datos del canal, líneas y desglose por lote.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera de la venta (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, f ListFilter) ([]*entity.Sale, int, error)
}
