package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción con los repos de lotes y ventas.
// Si fn retorna error (ej: stock insuficiente) se hace rollback: no hay escrituras parciales.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// DraftStore guarda las sesiones de edición con vencimiento.
// Get devuelve (nil, nil) si el borrador no existe o venció.
type DraftStore interface {
	Save(ctx context.Context, d *Draft, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

// ReceiptRenderer genera el comprobante imprimible de una venta.
type ReceiptRenderer interface {
	RenderSaleReceipt(ctx context.Context, sale *entity.Sale, location *entity.Location) ([]byte, error)
}

// Config parámetros de negocio de ventas.
type Config struct {
	// DefaultCostPerKg tarifa de envío por kg cuando la compra del lote no definió una.
	DefaultCostPerKg decimal.Decimal
	DraftTTL         time.Duration
}
