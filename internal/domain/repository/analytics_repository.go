package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics agregados de ventas de un período.
type SalesMetrics struct {
	Revenue      decimal.Decimal // Σ (total - descuento)
	CostOfGoods  decimal.Decimal // Σ costo asignado por lote
	DeliveryCost decimal.Decimal
	ReturnCost   decimal.Decimal
	SalesCount   int
	UnitsSold    decimal.Decimal
	ItemsRevenue decimal.Decimal // Σ precio × cantidad de todas las líneas, antes del descuento
}

// ChannelCount ventas por canal en el período.
type ChannelCount struct {
	Channel string
	Count   int
	Revenue decimal.Decimal
}

// VariantSales ventas de una variante en el período (precio de lista, antes del descuento de la venta).
type VariantSales struct {
	VariantID   string
	ProductName string
	VariantName string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para los KPIs del tablero.
type AnalyticsRepository interface {
	GetSalesMetrics(ctx context.Context, from, to time.Time) (SalesMetrics, error)
	GetExpensesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	GetSalesByChannel(ctx context.Context, from, to time.Time) ([]ChannelCount, error)
	// GetTopVariants ordena por ingreso descendente.
	GetTopVariants(ctx context.Context, from, to time.Time, limit int) ([]VariantSales, error)
}
