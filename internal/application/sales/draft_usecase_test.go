package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
)

func draftItem(variantID string, qty int64) dto.DraftItemRequest {
	return dto.DraftItemRequest{VariantID: variantID, Quantity: dec(qty)}
}

func TestDraft_AgregarConsumeLaCopiaNoLaBase(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	d, err := e.draftUC.StartDraft(ctx, dto.StartDraftRequest{LocationID: locID})
	require.NoError(t, err)
	assert.Empty(t, d.Items)
	assert.False(t, d.ExpiresAt.IsZero())

	d, err = e.draftUC.AddItem(ctx, d.ID, draftItem(varID, 5))
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.True(t, d.TotalAmount.Equal(dec(1000)))

	// la base no cambia
	assert.True(t, e.lots.qty("A").Equal(dec(3)))
	assert.Equal(t, 0, e.lots.updates)

	// la copia sí: quedan 8 en B
	_, err = e.draftUC.AddItem(ctx, d.ID, draftItem(varID, 9))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	d, err = e.draftUC.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, d.Items, 1, "un fallo no altera la sesión")
}

func TestDraft_QuitarDevuelveYPermiteReasignar(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	d, err := e.draftUC.StartDraft(ctx, dto.StartDraftRequest{LocationID: locID})
	require.NoError(t, err)
	_, err = e.draftUC.AddItem(ctx, d.ID, draftItem(varID, 13))
	require.NoError(t, err)

	_, err = e.draftUC.AddItem(ctx, d.ID, draftItem(varID, 1))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	d, err = e.draftUC.RemoveItem(ctx, d.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, d.Items)

	d, err = e.draftUC.AddItem(ctx, d.ID, draftItem(varID, 4))
	require.NoError(t, err)
	assert.Equal(t, "A", d.Items[0].Details[0].PurchaseItemID, "FIFO vuelve a empezar por el lote más antiguo")

	_, err = e.draftUC.RemoveItem(ctx, d.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDraft_ReemplazarEsAtomico(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	d, err := e.draftUC.StartDraft(ctx, dto.StartDraftRequest{LocationID: locID})
	require.NoError(t, err)
	_, err = e.draftUC.AddItem(ctx, d.ID, draftItem(var2ID, 1))
	require.NoError(t, err)
	_, err = e.draftUC.AddItem(ctx, d.ID, draftItem(varID, 10))
	require.NoError(t, err)

	// reemplazar la línea 1 por 13 unidades: se libera la línea y alcanza justo
	d, err = e.draftUC.ReplaceItem(ctx, d.ID, 1, draftItem(varID, 13))
	require.NoError(t, err)
	require.Len(t, d.Items, 2)
	assert.Equal(t, var2ID, d.Items[0].VariantID)
	assert.True(t, d.Items[1].Quantity.Equal(dec(13)))

	_, err = e.draftUC.ReplaceItem(ctx, d.ID, 0, draftItem(var2ID, 5))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	d, err = e.draftUC.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, d.Items, 2)
	assert.True(t, d.Items[0].Quantity.Equal(dec(1)))
}

func TestDraft_EditarVentaExistente(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	sale, err := e.saleUC.CreateStoreSale(ctx, "u1", dto.CreateStoreSaleRequest{Sale: saleReq(item(varID, 13))})
	require.NoError(t, err)

	d, err := e.draftUC.StartDraft(ctx, dto.StartDraftRequest{LocationID: locID, SaleID: sale.ID})
	require.NoError(t, err)
	require.Len(t, d.Items, 1)

	// sin stock en la base, pero al quitar la línea la copia recupera las 13 unidades
	d, err = e.draftUC.RemoveItem(ctx, d.ID, 0)
	require.NoError(t, err)
	d, err = e.draftUC.AddItem(ctx, d.ID, draftItem(varID, 13))
	require.NoError(t, err)
	assert.Len(t, d.Items[0].Details, 2)
	assert.True(t, e.lots.qty("B").IsZero(), "la base sigue sin tocar")

	_, err = e.draftUC.StartDraft(ctx, dto.StartDraftRequest{LocationID: "otra", SaleID: sale.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraft_ResumenYDescartar(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	d, err := e.draftUC.StartDraft(ctx, dto.StartDraftRequest{LocationID: locID})
	require.NoError(t, err)
	_, err = e.draftUC.AddItem(ctx, d.ID, draftItem(varID, 5))
	require.NoError(t, err)

	paid := dec(600)
	s, err := e.draftUC.Summary(ctx, d.ID, dto.DraftSummaryRequest{DiscountAmount: dec(100), PaidAmount: &paid})
	require.NoError(t, err)
	assert.True(t, s.AmountPayable.Equal(dec(900)))
	assert.True(t, s.NetProfit.Equal(dec(360)))
	require.NotNil(t, s.RemainingAmount)
	assert.True(t, s.RemainingAmount.Equal(dec(300)))
	assert.Equal(t, "PENDING", s.SuggestedStatus)

	_, err = e.draftUC.Summary(ctx, d.ID, dto.DraftSummaryRequest{DiscountAmount: dec(1001)})
	assert.ErrorIs(t, err, domain.ErrDiscountExceedsTotal)

	require.NoError(t, e.draftUC.Discard(ctx, d.ID))
	_, err = e.draftUC.GetDraft(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
