package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot representa un lote de compra disponible en una ubicación ("stock actual").
// Quantity solo cambia por asignación (venta) o devolución; un lote en cero sigue visible
// pero no se puede asignar.
type StockLot struct {
	LocationID     string
	PurchaseItemID string
	VariantID      string
	ProductID      string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	CostPerKg      *decimal.Decimal // tarifa de envío por kg de la compra; nil = usar tarifa global
	CreatedAt      time.Time
}

// Available indica si el lote puede participar en una asignación.
func (l StockLot) Available() bool {
	return l.Quantity.GreaterThan(decimal.Zero)
}
