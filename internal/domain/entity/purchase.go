package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es una compra a proveedor recibida en una ubicación. Cada ítem genera un StockLot.
type Purchase struct {
	ID           string
	LocationID   string
	Supplier     string
	CostPerKg    *decimal.Decimal
	ShippingCost decimal.Decimal
	Notes        string
	Items        []PurchaseItem
	PurchasedAt  time.Time
	CreatedAt    time.Time
	CreatedBy    string
}

// PurchaseItem línea de compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	VariantID  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
}

// TotalCost suma cantidad × costo unitario de las líneas.
func (p *Purchase) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.Quantity.Mul(it.UnitCost))
	}
	return total
}
