package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para los KPIs del tablero.
type AnalyticsRepo struct {
	q                Querier
	defaultCostPerKg decimal.Decimal
}

// NewAnalyticsRepository construye el adaptador de analítica. defaultCostPerKg es la tarifa
// de envío por peso para lotes sin tarifa propia, la misma que usan las ventas.
func NewAnalyticsRepository(q Querier, defaultCostPerKg decimal.Decimal) *AnalyticsRepo {
	return &AnalyticsRepo{q: q, defaultCostPerKg: defaultCostPerKg}
}

// GetSalesMetrics agrega las ventas del período.
// Ingreso, costo y cantidad cuentan solo las vigentes (ni canceladas ni devueltas).
// El envío cuenta toda venta no cancelada y la devolución solo las devueltas.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (repository.SalesMetrics, error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total_amount - s.discount_amount)
	        FILTER (WHERE s.status NOT IN ('CANCELED', 'RETURNED')), 0) AS revenue,
	    COALESCE(SUM(s.total_cost)
	        FILTER (WHERE s.status NOT IN ('CANCELED', 'RETURNED')), 0) AS cost,
	    COALESCE(SUM(s.delivery_cost)
	        FILTER (WHERE s.status <> 'CANCELED'), 0)                  AS delivery_cost,
	    COALESCE(SUM(s.return_cost)
	        FILTER (WHERE s.status = 'RETURNED'), 0)                   AS return_cost,
	    COUNT(*) FILTER (WHERE s.status NOT IN ('CANCELED', 'RETURNED')) AS sales_count,
	    COALESCE((
	        SELECT SUM(d.quantity)
	        FROM sale_items i
	        JOIN sale_item_details d ON d.sale_item_id = i.id
	        JOIN sales s2 ON s2.id = i.sale_id
	        WHERE s2.created_at BETWEEN $1 AND $2
	          AND s2.status NOT IN ('CANCELED', 'RETURNED')
	    ), 0)                                                AS units_sold,
	    COALESCE((
	        SELECT SUM(d.quantity * i.price)
	        FROM sale_items i
	        JOIN sale_item_details d ON d.sale_item_id = i.id
	        JOIN sales s3 ON s3.id = i.sale_id
	        WHERE s3.created_at BETWEEN $1 AND $2
	          AND s3.status NOT IN ('CANCELED', 'RETURNED')
	    ), 0)                                                AS items_revenue
	FROM sales s
	WHERE s.created_at BETWEEN $1 AND $2`

	var m repository.SalesMetrics
	err := r.q.QueryRow(ctx, query, from, to).Scan(
		&m.Revenue, &m.CostOfGoods, &m.DeliveryCost, &m.ReturnCost, &m.SalesCount, &m.UnitsSold, &m.ItemsRevenue,
	)
	if err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return m, nil
}

// GetExpensesTotal suma de gastos con spent_at en el período.
func (r *AnalyticsRepo) GetExpensesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE spent_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetExpensesTotal: %w", err)
	}
	return total, nil
}

// GetSalesByChannel cantidad e ingreso por canal; incluye todas las ventas del período
// y el ingreso solo de las vigentes.
func (r *AnalyticsRepo) GetSalesByChannel(ctx context.Context, from, to time.Time) ([]repository.ChannelCount, error) {
	const query = `
	SELECT
	    channel,
	    COUNT(*) AS sales_count,
	    COALESCE(SUM(total_amount - discount_amount)
	        FILTER (WHERE status NOT IN ('CANCELED', 'RETURNED')), 0) AS revenue
	FROM sales
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY channel
	ORDER BY channel`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByChannel: %w", err)
	}
	defer rows.Close()

	results := []repository.ChannelCount{}
	for rows.Next() {
		var row repository.ChannelCount
		if err := rows.Scan(&row.Channel, &row.Count, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetSalesByChannel scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByChannel rows: %w", err)
	}
	return results, nil
}

// GetTopVariants ranking de variantes por ingreso. El ingreso de cada línea es precio × cantidad
// asignada; el costo sale del desglose por lote e incluye el envío por peso, igual que total_cost.
func (r *AnalyticsRepo) GetTopVariants(ctx context.Context, from, to time.Time, limit int) ([]repository.VariantSales, error) {
	const query = `
	SELECT
	    i.variant_id,
	    MIN(i.product_name)             AS product_name,
	    MIN(i.variant_name)             AS variant_name,
	    SUM(d.quantity)                 AS units_sold,
	    SUM(d.quantity * i.price)       AS revenue,
	    SUM(d.quantity * (d.unit_cost
	        + i.weight * COALESCE(d.cost_per_kg, $4) / 1000)) AS cost
	FROM sale_items i
	JOIN sale_item_details d ON d.sale_item_id = i.id
	JOIN sales s ON s.id = i.sale_id
	WHERE s.created_at BETWEEN $1 AND $2
	  AND s.status NOT IN ('CANCELED', 'RETURNED')
	GROUP BY i.variant_id
	ORDER BY revenue DESC
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit, r.defaultCostPerKg)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopVariants: %w", err)
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByPos[repository.VariantSales])
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopVariants scan: %w", err)
	}
	return results, nil
}
