package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

func TestMoney_AgrupacionPorLocale(t *testing.T) {
	fr := NewReceiptGenerator("Tienda", "EUR", "fr")
	assert.Equal(t, "1 234,50 EUR", fr.money(decimal.RequireFromString("1234.5")))

	en := NewReceiptGenerator("Tienda", "USD", "en")
	assert.Equal(t, "1,234.50 USD", en.money(decimal.RequireFromString("1234.5")))

	invalid := NewReceiptGenerator("Tienda", "EUR", "??")
	assert.Equal(t, fr.money(decimal.NewFromInt(10)), invalid.money(decimal.NewFromInt(10)))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("12345678-aaaa-bbbb"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestRenderSaleReceipt_GeneraPDF(t *testing.T) {
	g := NewReceiptGenerator("Tienda", "EUR", "fr")
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sale := &entity.Sale{
		ID:          "0d5c6f0e-0000-4000-8000-000000000001",
		LocationID:  "loc",
		TotalAmount: decimal.NewFromInt(400),
		Status:      entity.SaleStatusPending,
		Channel:     &entity.AdvanceDetails{ClientID: "c1", PaidAmount: decimal.NewFromInt(100)},
		CreatedAt:   now,
		Items: []entity.SaleItem{{
			ProductName: "Camiseta", VariantName: "M", Price: decimal.NewFromInt(200),
			Details: []entity.StockAllocationDetail{{PurchaseItemID: "A", Quantity: decimal.NewFromInt(2)}},
		}},
	}

	out, err := g.RenderSaleReceipt(context.Background(), sale, &entity.Location{Name: "Centro"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
