package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

type fakeAnalytics struct {
	metrics  repository.SalesMetrics
	expenses decimal.Decimal
	channels []repository.ChannelCount
	variants []repository.VariantSales
	failOn   string

	from, to time.Time
}

func (f *fakeAnalytics) GetSalesMetrics(_ context.Context, from, to time.Time) (repository.SalesMetrics, error) {
	f.from, f.to = from, to
	if f.failOn == "metrics" {
		return repository.SalesMetrics{}, errors.New("db caída")
	}
	return f.metrics, nil
}

func (f *fakeAnalytics) GetExpensesTotal(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return f.expenses, nil
}

func (f *fakeAnalytics) GetSalesByChannel(context.Context, time.Time, time.Time) ([]repository.ChannelCount, error) {
	return f.channels, nil
}

func (f *fakeAnalytics) GetTopVariants(_ context.Context, _, _ time.Time, _ int) ([]repository.VariantSales, error) {
	if f.failOn == "variants" {
		return nil, errors.New("timeout")
	}
	return f.variants, nil
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDashboard_KPIs(t *testing.T) {
	repo := &fakeAnalytics{
		metrics: repository.SalesMetrics{
			Revenue: dec(1000), CostOfGoods: dec(600), DeliveryCost: dec(30), SalesCount: 4, UnitsSold: dec(12),
		},
		expenses: dec(150),
		channels: []repository.ChannelCount{
			{Channel: "ONLINE", Count: 1, Revenue: dec(250)},
			{Channel: "STORE", Count: 3, Revenue: dec(750)},
		},
		variants: []repository.VariantSales{
			{VariantID: "a", Revenue: dec(700), Cost: dec(400)},
			{VariantID: "b", Revenue: dec(200), Cost: dec(150)},
			{VariantID: "c", Revenue: dec(100), Cost: dec(50)},
		},
	}
	uc := analytics.NewDashboardUseCase(repo)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	d, err := uc.Dashboard(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, d.NetProfit.Equal(dec(400)))
	assert.True(t, d.NetAfterExpense.Equal(dec(250)))
	assert.True(t, d.DeliveryCost.Equal(dec(30)), "el envío se muestra aparte")
	assert.Equal(t, 4, d.SalesCount)

	require.Len(t, d.Channels, 2)
	assert.True(t, d.Channels[1].RevenuePct.Equal(dec(75)))

	require.Len(t, d.TopVariants, 3)
	assert.True(t, d.TopVariants[0].IsTopPareto)
	assert.False(t, d.TopVariants[1].IsTopPareto, "acumulado 90% supera el umbral")
	assert.False(t, d.TopVariants[2].IsTopPareto)
	assert.True(t, d.TopVariants[2].CumulativeRevenuePct.Equal(dec(100)))
	assert.True(t, d.TopVariants[0].MarginPct.Equal(decimal.RequireFromString("42.86")))
}

// Las participaciones se miden sobre el ingreso de todas las líneas, no solo del ranking.
func TestDashboard_ParetoSobreIngresoTotal(t *testing.T) {
	repo := &fakeAnalytics{
		metrics: repository.SalesMetrics{Revenue: dec(1900), ItemsRevenue: dec(2000)},
		variants: []repository.VariantSales{
			{VariantID: "a", Revenue: dec(700), Cost: dec(400)},
			{VariantID: "b", Revenue: dec(200), Cost: dec(150)},
			{VariantID: "c", Revenue: dec(100), Cost: dec(50)},
		},
	}
	uc := analytics.NewDashboardUseCase(repo)

	d, err := uc.Dashboard(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, d.TopVariants, 3)

	assert.True(t, d.TopVariants[0].RevenuePct.Equal(dec(35)))
	assert.True(t, d.TopVariants[2].CumulativeRevenuePct.Equal(dec(50)))
	for _, v := range d.TopVariants {
		assert.True(t, v.IsTopPareto, "variante %s bajo el 80%% del total", v.VariantID)
	}
}

func TestDashboard_PeriodoPorDefecto(t *testing.T) {
	repo := &fakeAnalytics{}
	uc := analytics.NewDashboardUseCase(repo)

	d, err := uc.Dashboard(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, d.From.Day())
	assert.Equal(t, repo.to, d.To)
	assert.Empty(t, d.TopVariants)
}

func TestDashboard_RangoInvertido(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAnalytics{})
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := uc.Dashboard(context.Background(), from, from.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboard_PropagaErrorDeConsulta(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAnalytics{failOn: "variants"})

	_, err := uc.Dashboard(context.Background(), time.Time{}, time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard: variantes")
}
