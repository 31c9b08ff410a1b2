package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Channel canal de venta.
type Channel string

const (
	ChannelStore   Channel = "STORE"
	ChannelOnline  Channel = "ONLINE"
	ChannelAdvance Channel = "ADVANCE"
)

// SaleStatus estado de una venta. Cada canal admite un subconjunto.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusReturned  SaleStatus = "RETURNED"
	SaleStatusCanceled  SaleStatus = "CANCELED"
)

// StockAllocationDetail aporte de un lote a una línea de venta. Inmutable después de la asignación.
type StockAllocationDetail struct {
	PurchaseItemID string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	CostPerKg      *decimal.Decimal
}

// SaleItem línea de venta con su desglose FIFO por lote.
// La suma de Details[].Quantity es la cantidad pedida al agregar la línea.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	VariantID   string
	ProductName string
	VariantName string
	Price       decimal.Decimal
	Weight      decimal.Decimal // gramos
	Details     []StockAllocationDetail
}

// Quantity cantidad total de la línea (suma del desglose).
func (i SaleItem) Quantity() decimal.Decimal {
	q := decimal.Zero
	for _, d := range i.Details {
		q = q.Add(d.Quantity)
	}
	return q
}

// Sale envoltorio financiero común a los tres canales. Channel lleva los campos propios
// del canal (StoreDetails, OnlineDetails o AdvanceDetails).
type Sale struct {
	ID             string
	LocationID     string
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalCost      decimal.Decimal
	Status         SaleStatus
	Items          []SaleItem
	Channel        SaleChannel
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      string
}

// ChannelType devuelve el canal de la venta; vacío si Channel es nil.
func (s *Sale) ChannelType() Channel {
	if s == nil || s.Channel == nil {
		return ""
	}
	return s.Channel.Channel()
}

// SaleChannel unión cerrada de los datos por canal.
type SaleChannel interface {
	Channel() Channel
	sealedSaleChannel()
}

// StoreDetails venta en tienda: COMPLETED o CANCELED, con la marca de tiempo del estado activo.
type StoreDetails struct {
	CompletedAt *time.Time
	CanceledAt  *time.Time
}

// OnlineDetails venta en línea con repartidor y costos de envío/devolución.
type OnlineDetails struct {
	DeliveryHandlerID string
	TrackingNumber    string
	DeliveryCost      decimal.Decimal
	ReturnCost        decimal.Decimal
	CompletedAt       *time.Time
	CanceledAt        *time.Time
	ReturnedAt        *time.Time
}

// AdvanceDetails venta por adelanto (apartado) con pagos parciales.
type AdvanceDetails struct {
	ClientID    string
	PaidAmount  decimal.Decimal
	CompletedAt *time.Time
	CanceledAt  *time.Time
}

func (*StoreDetails) Channel() Channel   { return ChannelStore }
func (*OnlineDetails) Channel() Channel  { return ChannelOnline }
func (*AdvanceDetails) Channel() Channel { return ChannelAdvance }

func (*StoreDetails) sealedSaleChannel()   {}
func (*OnlineDetails) sealedSaleChannel()  {}
func (*AdvanceDetails) sealedSaleChannel() {}
