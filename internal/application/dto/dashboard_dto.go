package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardDTO respuesta de GET /api/dashboard: tarjetas KPI del período.
type DashboardDTO struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Revenue         decimal.Decimal `json:"revenue"`          // Σ monto a pagar de ventas no canceladas
	CostOfGoods     decimal.Decimal `json:"cost_of_goods"`    // costo FIFO de lo vendido
	NetProfit       decimal.Decimal `json:"net_profit"`       // revenue - cost_of_goods
	Expenses        decimal.Decimal `json:"expenses"`         // gastos operativos
	NetAfterExpense decimal.Decimal `json:"net_after_expense"` // net_profit - expenses
	DeliveryCost    decimal.Decimal `json:"delivery_cost"`    // se muestra aparte, no resta a la ganancia
	ReturnCost      decimal.Decimal `json:"return_cost"`
	SalesCount      int             `json:"sales_count"`
	UnitsSold       decimal.Decimal `json:"units_sold"`

	Channels    []ChannelKPIDTO `json:"channels"`
	TopVariants []TopVariantDTO `json:"top_variants"`
}

// ChannelKPIDTO ventas por canal.
type ChannelKPIDTO struct {
	Channel string          `json:"channel"`
	Count   int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
	RevenuePct decimal.Decimal `json:"revenue_pct"`
}

// TopVariantDTO variante del ranking con su participación acumulada (curva Pareto).
type TopVariantDTO struct {
	Rank                 int             `json:"rank"`
	VariantID            string          `json:"variant_id"`
	ProductName          string          `json:"product_name"`
	VariantName          string          `json:"variant_name"`
	UnitsSold            decimal.Decimal `json:"units_sold"`
	Revenue              decimal.Decimal `json:"revenue"`
	GrossProfit          decimal.Decimal `json:"gross_profit"`
	MarginPct            decimal.Decimal `json:"margin_pct"`
	RevenuePct           decimal.Decimal `json:"revenue_pct"` // sobre el ingreso de todas las líneas del período
	CumulativeRevenuePct decimal.Decimal `json:"cumulative_revenue_pct"`
	IsTopPareto          bool            `json:"is_top_pareto"`
}
