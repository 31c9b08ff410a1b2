package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockLotRepository puerto de los lotes de stock. Usado dentro de transacciones.
type StockLotRepository interface {
	List(ctx context.Context, f LotFilter) ([]entity.StockLot, error)
	// ListForUpdate bloquea los lotes de las variantes en la ubicación (SELECT FOR UPDATE).
	ListForUpdate(ctx context.Context, locationID string, variantIDs []string) ([]entity.StockLot, error)
	// ListByPurchaseItems bloquea los lotes referenciados por detalles de venta.
	ListByPurchaseItems(ctx context.Context, locationID string, purchaseItemIDs []string) ([]entity.StockLot, error)
	Create(ctx context.Context, lot *entity.StockLot) error
	UpdateQuantity(ctx context.Context, locationID, purchaseItemID string, quantity decimal.Decimal) error
}
