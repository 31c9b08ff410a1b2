package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea pedida. ID solo en edición: identifica una línea existente que se
// conserva con su asignación. Price vacío toma el precio de la variante.
type SaleItemRequest struct {
	ID        string           `json:"id,omitempty" validate:"omitempty,uuid"`
	VariantID string           `json:"variant_id" validate:"required,uuid"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"gt=0"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// SaleRequest sobre financiero común de los tres canales.
type SaleRequest struct {
	LocationID     string            `json:"location_id" validate:"required,uuid"`
	DiscountAmount decimal.Decimal   `json:"discount_amount" validate:"gte=0"`
	Items          []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateStoreSaleRequest body para POST /api/sales/store.
type CreateStoreSaleRequest struct {
	Sale   SaleRequest `json:"sale"`
	Status string      `json:"status" validate:"omitempty,oneof=COMPLETED"`
}

// CreateOnlineSaleRequest body para POST /api/sales/online.
type CreateOnlineSaleRequest struct {
	Sale              SaleRequest      `json:"sale"`
	DeliveryHandlerID string           `json:"delivery_handler_id" validate:"required,uuid"`
	TrackingNumber    string           `json:"tracking_number" validate:"max=100"`
	DeliveryCost      decimal.Decimal  `json:"delivery_cost" validate:"gte=0"`
	ReturnCost        *decimal.Decimal `json:"return_cost,omitempty"`
	Status            string           `json:"status" validate:"omitempty,oneof=PENDING COMPLETED"`
}

// CreateAdvanceSaleRequest body para POST /api/sales/advance.
type CreateAdvanceSaleRequest struct {
	Sale       SaleRequest     `json:"sale"`
	ClientID   string          `json:"client_id" validate:"required,uuid"`
	PaidAmount decimal.Decimal `json:"paid_amount" validate:"gte=0"`
	Status     string          `json:"status" validate:"omitempty,oneof=PENDING COMPLETED"`
}

// UpdateSaleRequest body para PATCH /api/sales/:id. Los campos nulos no cambian; Items nulo
// conserva las líneas actuales.
type UpdateSaleRequest struct {
	DiscountAmount    *decimal.Decimal  `json:"discount_amount,omitempty"`
	Items             []SaleItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	Status            *string           `json:"status,omitempty" validate:"omitempty,oneof=PENDING COMPLETED RETURNED CANCELED"`
	DeliveryHandlerID *string           `json:"delivery_handler_id,omitempty" validate:"omitempty,uuid"`
	TrackingNumber    *string           `json:"tracking_number,omitempty"`
	DeliveryCost      *decimal.Decimal  `json:"delivery_cost,omitempty"`
	ReturnCost        *decimal.Decimal  `json:"return_cost,omitempty"`
	ClientID          *string           `json:"client_id,omitempty" validate:"omitempty,uuid"`
	PaidAmount        *decimal.Decimal  `json:"paid_amount,omitempty"`
}

// ChangeStatusRequest body para POST /api/sales/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING COMPLETED RETURNED CANCELED"`
}

// AllocationDetailResponse aporte de un lote a una línea.
type AllocationDetailResponse struct {
	PurchaseItemID string           `json:"purchase_item_id"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitCost       decimal.Decimal  `json:"unit_cost"`
	CostPerKg      *decimal.Decimal `json:"cost_per_kg,omitempty"`
}

// SaleItemResponse línea de venta con su desglose FIFO.
type SaleItemResponse struct {
	ID          string                     `json:"id,omitempty"`
	ProductID   string                     `json:"product_id"`
	VariantID   string                     `json:"variant_id"`
	ProductName string                     `json:"product_name"`
	VariantName string                     `json:"variant_name"`
	Price       decimal.Decimal            `json:"price"`
	Weight      decimal.Decimal            `json:"weight"`
	Quantity    decimal.Decimal            `json:"quantity"`
	Details     []AllocationDetailResponse `json:"details"`
}

// SummaryResponse resumen financiero de una venta o borrador.
type SummaryResponse struct {
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	TotalCost       decimal.Decimal  `json:"total_cost"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	AmountPayable   decimal.Decimal  `json:"amount_payable"`
	NetProfit       decimal.Decimal  `json:"net_profit"`
	DeliveryCost    decimal.Decimal  `json:"delivery_cost"`
	ReturnCost      decimal.Decimal  `json:"return_cost"`
	PaidAmount      *decimal.Decimal `json:"paid_amount,omitempty"`
	RemainingAmount *decimal.Decimal `json:"remaining_amount,omitempty"`
	SuggestedStatus string           `json:"suggested_status,omitempty"`
}

// StoreSaleResponse campos de venta en tienda.
type StoreSaleResponse struct {
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`
}

// OnlineSaleResponse campos de venta en línea.
type OnlineSaleResponse struct {
	DeliveryHandlerID string          `json:"delivery_handler_id"`
	TrackingNumber    string          `json:"tracking_number"`
	DeliveryCost      decimal.Decimal `json:"delivery_cost"`
	ReturnCost        decimal.Decimal `json:"return_cost"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	CanceledAt        *time.Time      `json:"canceled_at,omitempty"`
	ReturnedAt        *time.Time      `json:"returned_at,omitempty"`
}

// AdvanceSaleResponse campos de venta por adelanto.
type AdvanceSaleResponse struct {
	ClientID    string          `json:"client_id"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CanceledAt  *time.Time      `json:"canceled_at,omitempty"`
}

// SaleResponse salida de una venta. Solo uno de Store/Online/Advance viene informado.
type SaleResponse struct {
	ID             string               `json:"id"`
	Channel        string               `json:"channel"`
	LocationID     string               `json:"location_id"`
	Status         string               `json:"status"`
	TotalAmount    decimal.Decimal      `json:"total_amount"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	TotalCost      decimal.Decimal      `json:"total_cost"`
	Summary        SummaryResponse      `json:"summary"`
	Items          []SaleItemResponse   `json:"items"`
	Store          *StoreSaleResponse   `json:"store,omitempty"`
	Online         *OnlineSaleResponse  `json:"online,omitempty"`
	Advance        *AdvanceSaleResponse `json:"advance,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// StartDraftRequest body para POST /api/drafts. SaleID para editar una venta existente.
type StartDraftRequest struct {
	LocationID string `json:"location_id" validate:"required,uuid"`
	SaleID     string `json:"sale_id,omitempty" validate:"omitempty,uuid"`
}

// DraftItemRequest línea agregada o reemplazada en un borrador.
type DraftItemRequest struct {
	VariantID string           `json:"variant_id" validate:"required,uuid"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"gt=0"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// DraftSummaryRequest montos para calcular el resumen del borrador.
type DraftSummaryRequest struct {
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	PaidAmount     *decimal.Decimal `json:"paid_amount,omitempty"`
	DeliveryCost   *decimal.Decimal `json:"delivery_cost,omitempty"`
	ReturnCost     *decimal.Decimal `json:"return_cost,omitempty"`
}

// DraftResponse estado de una sesión de edición.
type DraftResponse struct {
	ID          string             `json:"id"`
	LocationID  string             `json:"location_id"`
	SaleID      string             `json:"sale_id,omitempty"`
	Items       []SaleItemResponse `json:"items"`
	Lots        []StockLotResponse `json:"lots"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	ExpiresAt   time.Time          `json:"expires_at"`
}
