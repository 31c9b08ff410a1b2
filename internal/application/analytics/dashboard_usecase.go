// Package analytics contiene el caso de uso del tablero de KPIs financieros.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

const (
	dashboardTopVariants = 10
	paretoThreshold      = 80 // el primer ~20% de variantes suele generar el 80% del ingreso
)

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// DashboardUseCase genera las tarjetas KPI de un período.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Las ventas canceladas o
// devueltas no suman ingreso ni costo.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// Dashboard arma el DashboardDTO para [from, to]. Con ambos en cero toma el mes en curso.
//
// Cuatro consultas en paralelo:
//  1. GetSalesMetrics     → ingreso, costo, envío, devolución, cantidad
//  2. GetExpensesTotal    → gastos
//  3. GetSalesByChannel   → tarjetas por canal
//  4. GetTopVariants      → ranking y curva Pareto
func (uc *DashboardUseCase) Dashboard(ctx context.Context, from, to time.Time) (*dto.DashboardDTO, error) {
	from, to = uc.period(from, to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: el rango termina antes de empezar", domain.ErrInvalidInput)
	}

	var (
		metrics  repository.SalesMetrics
		expenses decimal.Decimal
		channels []repository.ChannelCount
		variants []repository.VariantSales
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if metrics, err = uc.analyticsRepo.GetSalesMetrics(gctx, from, to); err != nil {
			return fmt.Errorf("dashboard: métricas de ventas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if expenses, err = uc.analyticsRepo.GetExpensesTotal(gctx, from, to); err != nil {
			return fmt.Errorf("dashboard: gastos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if channels, err = uc.analyticsRepo.GetSalesByChannel(gctx, from, to); err != nil {
			return fmt.Errorf("dashboard: canales: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if variants, err = uc.analyticsRepo.GetTopVariants(gctx, from, to, dashboardTopVariants); err != nil {
			return fmt.Errorf("dashboard: variantes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	netProfit := metrics.Revenue.Sub(metrics.CostOfGoods)
	return &dto.DashboardDTO{
		From:            from,
		To:              to,
		Revenue:         metrics.Revenue.Round(2),
		CostOfGoods:     metrics.CostOfGoods.Round(2),
		NetProfit:       netProfit.Round(2),
		Expenses:        expenses.Round(2),
		NetAfterExpense: netProfit.Sub(expenses).Round(2),
		DeliveryCost:    metrics.DeliveryCost.Round(2),
		ReturnCost:      metrics.ReturnCost.Round(2),
		SalesCount:      metrics.SalesCount,
		UnitsSold:       metrics.UnitsSold,
		Channels:        buildChannels(channels),
		TopVariants:     buildVariantRanking(variants, metrics.ItemsRevenue),
	}, nil
}

// period completa el rango: sin fechas, del día 1 del mes a ahora; sin fin, hasta ahora.
func (uc *DashboardUseCase) period(from, to time.Time) (time.Time, time.Time) {
	now := uc.now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	}
	return from, to
}

func buildChannels(rows []repository.ChannelCount) []dto.ChannelKPIDTO {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Revenue)
	}
	out := make([]dto.ChannelKPIDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ChannelKPIDTO{
			Channel:    r.Channel,
			Count:      r.Count,
			Revenue:    r.Revenue.Round(2),
			RevenuePct: pct(r.Revenue, total),
		})
	}
	return out
}

// buildVariantRanking agrega margen, participación y acumulado. La participación se mide sobre
// itemsRevenue (todas las líneas del período), no solo sobre las variantes del ranking; sin ese
// total cae a la suma del ranking. IsTopPareto marca las variantes hasta que el acumulado supera
// el 80%; la primera siempre entra.
func buildVariantRanking(rows []repository.VariantSales, itemsRevenue decimal.Decimal) []dto.TopVariantDTO {
	total := itemsRevenue
	if !total.IsPositive() {
		for _, r := range rows {
			total = total.Add(r.Revenue)
		}
	}

	ranking := make([]dto.TopVariantDTO, 0, len(rows))
	cumulative := decimal.Zero
	for i, r := range rows {
		profit := r.Revenue.Sub(r.Cost)
		share := pct(r.Revenue, total)
		cumulative = cumulative.Add(share)
		ranking = append(ranking, dto.TopVariantDTO{
			Rank:                 i + 1,
			VariantID:            r.VariantID,
			ProductName:          r.ProductName,
			VariantName:          r.VariantName,
			UnitsSold:            r.UnitsSold,
			Revenue:              r.Revenue.Round(2),
			GrossProfit:          profit.Round(2),
			MarginPct:            pct(profit, r.Revenue),
			RevenuePct:           share,
			CumulativeRevenuePct: cumulative,
			IsTopPareto:          i == 0 || cumulative.LessThanOrEqual(pareto80),
		})
	}
	return ranking
}

func pct(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
