package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLotResponse un lote de stock actual.
type StockLotResponse struct {
	LocationID     string           `json:"location_id"`
	PurchaseItemID string           `json:"purchase_item_id"`
	VariantID      string           `json:"variant_id"`
	ProductID      string           `json:"product_id"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitCost       decimal.Decimal  `json:"unit_cost"`
	CostPerKg      *decimal.Decimal `json:"cost_per_kg,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// StockSummaryResponse disponibilidad de una variante en una ubicación.
type StockSummaryResponse struct {
	LocationID  string          `json:"location_id"`
	VariantID   string          `json:"variant_id"`
	Available   decimal.Decimal `json:"available"`
	AverageCost decimal.Decimal `json:"average_cost"` // promedio ponderado de los lotes con stock
	Lots        int             `json:"lots"`
}

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	VariantID string          `json:"variant_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"gte=0"`
}

// CreatePurchaseRequest body para POST /api/purchases. CostPerKg es la tarifa de envío
// por kg que heredan los lotes creados.
type CreatePurchaseRequest struct {
	LocationID   string                `json:"location_id" validate:"required,uuid"`
	Supplier     string                `json:"supplier" validate:"max=200"`
	CostPerKg    *decimal.Decimal      `json:"cost_per_kg,omitempty"`
	ShippingCost decimal.Decimal       `json:"shipping_cost" validate:"gte=0"`
	Notes        string                `json:"notes"`
	PurchasedAt  *time.Time            `json:"purchased_at,omitempty"`
	Items        []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItemResponse salida de una línea de compra.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID           string                 `json:"id"`
	LocationID   string                 `json:"location_id"`
	Supplier     string                 `json:"supplier"`
	CostPerKg    *decimal.Decimal       `json:"cost_per_kg,omitempty"`
	ShippingCost decimal.Decimal        `json:"shipping_cost"`
	TotalCost    decimal.Decimal        `json:"total_cost"`
	Notes        string                 `json:"notes"`
	Items        []PurchaseItemResponse `json:"items"`
	PurchasedAt  time.Time              `json:"purchased_at"`
	CreatedAt    time.Time              `json:"created_at"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
