package inventory

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que compra, ítems, lotes y costo promedio se guarden juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error) error
}
