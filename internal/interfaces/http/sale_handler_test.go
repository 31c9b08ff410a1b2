package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/cache"
	apphttp "github.com/jhoicas/Backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

const (
	shopLocID  = "11111111-1111-1111-1111-111111111111"
	shopProdID = "22222222-2222-2222-2222-222222222222"
	shopVarID  = "33333333-3333-3333-3333-333333333333"
	shopClient = "55555555-5555-5555-5555-555555555555"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de ventas
// ──────────────────────────────────────────────────────────────────────────────

type shopLots struct {
	mu   sync.Mutex
	lots []entity.StockLot
}

func (m *shopLots) List(_ context.Context, f repository.LotFilter) ([]entity.StockLot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.StockLot
	for _, l := range m.lots {
		if f.LocationID != "" && l.LocationID != f.LocationID {
			continue
		}
		if f.VariantID != "" && l.VariantID != f.VariantID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *shopLots) ListForUpdate(ctx context.Context, locationID string, _ []string) ([]entity.StockLot, error) {
	return m.List(ctx, repository.LotFilter{LocationID: locationID})
}

func (m *shopLots) ListByPurchaseItems(ctx context.Context, locationID string, _ []string) ([]entity.StockLot, error) {
	return m.List(ctx, repository.LotFilter{LocationID: locationID})
}

func (m *shopLots) Create(_ context.Context, l *entity.StockLot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lots = append(m.lots, *l)
	return nil
}

func (m *shopLots) UpdateQuantity(_ context.Context, locationID, purchaseItemID string, q decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lots {
		if m.lots[i].LocationID == locationID && m.lots[i].PurchaseItemID == purchaseItemID {
			m.lots[i].Quantity = q
		}
	}
	return nil
}

type shopSales struct {
	mu    sync.Mutex
	sales map[string]entity.Sale
}

func (m *shopSales) Create(_ context.Context, s *entity.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[s.ID] = copySale(s)
	return nil
}

func (m *shopSales) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sales[id]
	if !ok {
		return nil, nil
	}
	c := copySale(&s)
	return &c, nil
}

func (m *shopSales) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return m.GetByID(ctx, id)
}

func (m *shopSales) Update(ctx context.Context, s *entity.Sale) error {
	return m.Create(ctx, s)
}

func (m *shopSales) List(context.Context, repository.ListFilter) ([]*entity.Sale, int, error) {
	return nil, 0, nil
}

func copySale(s *entity.Sale) entity.Sale {
	c := *s
	c.Items = append([]entity.SaleItem(nil), s.Items...)
	switch ch := s.Channel.(type) {
	case *entity.StoreDetails:
		cp := *ch
		c.Channel = &cp
	case *entity.OnlineDetails:
		cp := *ch
		c.Channel = &cp
	case *entity.AdvanceDetails:
		cp := *ch
		c.Channel = &cp
	}
	return c
}

// shopTx deshace lotes y ventas si la función falla.
type shopTx struct {
	lots  *shopLots
	sales *shopSales
}

func (tx *shopTx) RunSales(_ context.Context, fn func(repository.StockLotRepository, repository.SaleRepository) error) error {
	tx.lots.mu.Lock()
	lotsBefore := append([]entity.StockLot(nil), tx.lots.lots...)
	tx.lots.mu.Unlock()
	tx.sales.mu.Lock()
	salesBefore := make(map[string]entity.Sale, len(tx.sales.sales))
	for k, v := range tx.sales.sales {
		salesBefore[k] = v
	}
	tx.sales.mu.Unlock()

	if err := fn(tx.lots, tx.sales); err != nil {
		tx.lots.mu.Lock()
		tx.lots.lots = lotsBefore
		tx.lots.mu.Unlock()
		tx.sales.mu.Lock()
		tx.sales.sales = salesBefore
		tx.sales.mu.Unlock()
		return err
	}
	return nil
}

type shopCatalog struct {
	products map[string]*entity.Product
	variants map[string]*entity.Variant
}

func (m *shopCatalog) Create(context.Context, *entity.Product) error { return nil }
func (m *shopCatalog) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.products[id], nil
}
func (m *shopCatalog) List(context.Context, repository.ListFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (m *shopCatalog) CreateVariant(context.Context, *entity.Variant) error { return nil }
func (m *shopCatalog) GetVariant(_ context.Context, id string) (*entity.Variant, error) {
	return m.variants[id], nil
}
func (m *shopCatalog) UpdateVariantCost(context.Context, string, decimal.Decimal) error { return nil }

type shopClients struct{ clients map[string]*entity.Client }

func (m *shopClients) Create(context.Context, *entity.Client) error { return nil }
func (m *shopClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return m.clients[id], nil
}
func (m *shopClients) Update(context.Context, *entity.Client) error { return nil }
func (m *shopClients) List(context.Context, repository.ListFilter) ([]*entity.Client, error) {
	return nil, nil
}

type shopHandlers struct{}

func (shopHandlers) Create(context.Context, *entity.DeliveryHandler) error { return nil }
func (shopHandlers) GetByID(context.Context, string) (*entity.DeliveryHandler, error) {
	return nil, nil
}
func (shopHandlers) Update(context.Context, *entity.DeliveryHandler) error { return nil }
func (shopHandlers) List(context.Context, repository.ListFilter) ([]*entity.DeliveryHandler, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de ventas
// ──────────────────────────────────────────────────────────────────────────────

// Lotes de shopVarID en la tienda: A (3 @ 100, el más antiguo) y B (4 @ 120).
func newSalesAPI(t *testing.T) (*fiber.App, *shopLots) {
	t.Helper()
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	lots := &shopLots{lots: []entity.StockLot{
		{LocationID: shopLocID, PurchaseItemID: "A", VariantID: shopVarID, ProductID: shopProdID, Quantity: decimal.NewFromInt(3), UnitCost: decimal.NewFromInt(100), CreatedAt: t0},
		{LocationID: shopLocID, PurchaseItemID: "B", VariantID: shopVarID, ProductID: shopProdID, Quantity: decimal.NewFromInt(4), UnitCost: decimal.NewFromInt(120), CreatedAt: t0.Add(time.Hour)},
	}}
	saleRepo := &shopSales{sales: map[string]entity.Sale{}}
	catalog := &shopCatalog{
		products: map[string]*entity.Product{shopProdID: {ID: shopProdID, Name: "Camiseta"}},
		variants: map[string]*entity.Variant{shopVarID: {ID: shopVarID, ProductID: shopProdID, Name: "M", Price: decimal.NewFromInt(200)}},
	}
	locations := &memLocations{byID: map[string]entity.Location{shopLocID: {ID: shopLocID, Name: "Centro"}}}
	clients := &shopClients{clients: map[string]*entity.Client{shopClient: {ID: shopClient, Name: "Ana"}}}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := sales.Config{DefaultCostPerKg: decimal.Zero, DraftTTL: 30 * time.Minute}
	saleUC := sales.NewSaleUseCase(&shopTx{lots: lots, sales: saleRepo}, saleRepo, catalog, locations, clients, shopHandlers{}, nil, cfg, logger.Nop())
	draftUC := sales.NewDraftUseCase(cache.NewDraftStore(rdb), lots, catalog, saleRepo, locations, cfg, logger.Nop())

	app := fiber.New()
	app.Use(apphttp.AccessLog(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{SaleUC: saleUC, DraftUC: draftUC, JWTSecret: testJWTSecret})
	return app, lots
}

func storeSale(qty int64) dto.CreateStoreSaleRequest {
	return dto.CreateStoreSaleRequest{Sale: dto.SaleRequest{
		LocationID: shopLocID,
		Items:      []dto.SaleItemRequest{{VariantID: shopVarID, Quantity: decimal.NewFromInt(qty)}},
	}}
}

type submitEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeSubmit(t *testing.T, body []byte) (submitEnvelope, dto.SaleResponse) {
	t.Helper()
	var env submitEnvelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	var sale dto.SaleResponse
	if env.Status == dto.SubmitStatusSuccess {
		require.NoError(t, json.Unmarshal(env.Data, &sale))
	}
	return env, sale
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleHandler_CrearTiendaDevuelveSobreDeExito(t *testing.T) {
	app, lots := newSalesAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/sales/store", tokenForRole(t, entity.RoleSeller), storeSale(5))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	env, sale := decodeSubmit(t, body)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "venta registrada", env.Message)
	assert.Equal(t, "COMPLETED", sale.Status)
	require.Len(t, sale.Items, 1)
	require.Len(t, sale.Items[0].Details, 2)
	assert.Equal(t, "A", sale.Items[0].Details[0].PurchaseItemID)
	assert.True(t, sale.TotalCost.Equal(decimal.NewFromInt(540)))

	remaining, _ := lots.List(context.Background(), repository.LotFilter{LocationID: shopLocID})
	assert.True(t, remaining[1].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestSaleHandler_StockInsuficienteDevuelve409(t *testing.T) {
	app, lots := newSalesAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/sales/store", tokenForRole(t, entity.RoleSeller), storeSale(8))
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	env, _ := decodeSubmit(t, body)
	assert.Equal(t, "error", env.Status)
	var detail dto.ErrorResponse
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "INSUFFICIENT_STOCK", detail.Code)

	remaining, _ := lots.List(context.Background(), repository.LotFilter{LocationID: shopLocID})
	assert.True(t, remaining[0].Quantity.Equal(decimal.NewFromInt(3)), "sin escrituras parciales")
}

func TestSaleHandler_AdelantoEstadoQueNoCorrespondeAlPago(t *testing.T) {
	app, _ := newSalesAPI(t)
	token := tokenForRole(t, entity.RoleSeller)

	in := dto.CreateAdvanceSaleRequest{
		Sale:       storeSale(1).Sale,
		ClientID:   shopClient,
		PaidAmount: decimal.NewFromInt(50),
	}
	resp, body := call(t, app, http.MethodPost, "/api/sales/advance", token, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	_, sale := decodeSubmit(t, body)
	assert.Equal(t, "PENDING", sale.Status)

	completed := "COMPLETED"
	resp, body = call(t, app, http.MethodPatch, "/api/sales/"+sale.ID, token, dto.UpdateSaleRequest{Status: &completed})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(body))
	env, _ := decodeSubmit(t, body)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, string(env.Data), "ADVANCE_STATUS_MISMATCH")

	paid := decimal.NewFromInt(200)
	resp, body = call(t, app, http.MethodPatch, "/api/sales/"+sale.ID, token, dto.UpdateSaleRequest{PaidAmount: &paid})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	env, sale = decodeSubmit(t, body)
	assert.Equal(t, "venta actualizada", env.Message)
	assert.Equal(t, "COMPLETED", sale.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borradores
// ──────────────────────────────────────────────────────────────────────────────

func TestDraftHandler_AgregarReemplazarQuitar(t *testing.T) {
	app, lots := newSalesAPI(t)
	token := tokenForRole(t, entity.RoleSeller)

	resp, body := call(t, app, http.MethodPost, "/api/drafts", token, dto.StartDraftRequest{LocationID: shopLocID})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var draft dto.DraftResponse
	require.NoError(t, json.Unmarshal(body, &draft))
	base := "/api/drafts/" + draft.ID + "/items"

	resp, body = call(t, app, http.MethodPost, base, token, dto.DraftItemRequest{VariantID: shopVarID, Quantity: decimal.NewFromInt(5)})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &draft))
	require.Len(t, draft.Items, 1)
	assert.True(t, draft.TotalAmount.Equal(decimal.NewFromInt(1000)))

	// con 7 en total la sesión ya tiene 5 tomados: 3 más no alcanzan
	resp, body = call(t, app, http.MethodPost, base, token, dto.DraftItemRequest{VariantID: shopVarID, Quantity: decimal.NewFromInt(3)})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")

	resp, body = call(t, app, http.MethodPut, base+"/0", token, dto.DraftItemRequest{VariantID: shopVarID, Quantity: decimal.NewFromInt(7)})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &draft))
	require.Len(t, draft.Items, 1)
	assert.True(t, draft.Items[0].Quantity.Equal(decimal.NewFromInt(7)))

	resp, body = call(t, app, http.MethodDelete, base+"/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_INDEX")

	resp, body = call(t, app, http.MethodDelete, base+"/0", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &draft))
	assert.Empty(t, draft.Items)

	stored, _ := lots.List(context.Background(), repository.LotFilter{LocationID: shopLocID})
	assert.True(t, stored[0].Quantity.Equal(decimal.NewFromInt(3)), "el borrador no toca los lotes guardados")

	resp, _ = call(t, app, http.MethodDelete, "/api/drafts/"+draft.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, app, http.MethodGet, "/api/drafts/"+draft.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
