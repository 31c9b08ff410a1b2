package sales_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memLots struct {
	lots    []entity.StockLot
	updates int
	locked  []string // último pedido de ListByPurchaseItems
}

func (m *memLots) List(_ context.Context, f repository.LotFilter) ([]entity.StockLot, error) {
	var out []entity.StockLot
	for _, l := range m.lots {
		if f.LocationID != "" && l.LocationID != f.LocationID {
			continue
		}
		if f.VariantID != "" && l.VariantID != f.VariantID {
			continue
		}
		if f.OnlyAvailable && !l.Available() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *memLots) ListForUpdate(_ context.Context, locationID string, variantIDs []string) ([]entity.StockLot, error) {
	var out []entity.StockLot
	for _, l := range m.lots {
		if l.LocationID != locationID {
			continue
		}
		for _, v := range variantIDs {
			if l.VariantID == v {
				out = append(out, l)
				break
			}
		}
	}
	return out, nil
}

func (m *memLots) ListByPurchaseItems(_ context.Context, locationID string, ids []string) ([]entity.StockLot, error) {
	m.locked = ids
	var out []entity.StockLot
	for _, l := range m.lots {
		for _, id := range ids {
			if l.LocationID == locationID && l.PurchaseItemID == id {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

func (m *memLots) Create(_ context.Context, lot *entity.StockLot) error {
	m.lots = append(m.lots, *lot)
	return nil
}

func (m *memLots) UpdateQuantity(_ context.Context, locationID, purchaseItemID string, q decimal.Decimal) error {
	for i := range m.lots {
		if m.lots[i].LocationID == locationID && m.lots[i].PurchaseItemID == purchaseItemID {
			m.lots[i].Quantity = q
			m.updates++
		}
	}
	return nil
}

func (m *memLots) qty(purchaseItemID string) decimal.Decimal {
	for _, l := range m.lots {
		if l.PurchaseItemID == purchaseItemID {
			return l.Quantity
		}
	}
	return decimal.NewFromInt(-1)
}

type memSales struct {
	sales map[string]*entity.Sale
}

func newMemSales() *memSales { return &memSales{sales: map[string]*entity.Sale{}} }

func (m *memSales) Create(_ context.Context, s *entity.Sale) error {
	m.sales[s.ID] = cloneSale(s)
	return nil
}

func (m *memSales) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(s), nil
}

func (m *memSales) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return m.GetByID(ctx, id)
}

func (m *memSales) Update(_ context.Context, s *entity.Sale) error {
	m.sales[s.ID] = cloneSale(s)
	return nil
}

func (m *memSales) List(_ context.Context, f repository.ListFilter) ([]*entity.Sale, int, error) {
	var out []*entity.Sale
	for _, s := range m.sales {
		if f.Channel != "" && string(s.ChannelType()) != f.Channel {
			continue
		}
		out = append(out, cloneSale(s))
	}
	return out, len(out), nil
}

func cloneSale(s *entity.Sale) *entity.Sale {
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
	return &c
}

// memTx simula la transacción: si fn falla se restauran lotes y ventas.
type memTx struct {
	lots  *memLots
	sales *memSales
}

func (tx *memTx) RunSales(_ context.Context, fn func(repository.StockLotRepository, repository.SaleRepository) error) error {
	lotsBefore := append([]entity.StockLot(nil), tx.lots.lots...)
	salesBefore := make(map[string]*entity.Sale, len(tx.sales.sales))
	for k, v := range tx.sales.sales {
		salesBefore[k] = v
	}
	if err := fn(tx.lots, tx.sales); err != nil {
		tx.lots.lots = lotsBefore
		tx.sales.sales = salesBefore
		return err
	}
	return nil
}

type memProducts struct {
	products map[string]*entity.Product
	variants map[string]*entity.Variant
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.products[p.ID] = p
	return nil
}
func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.products[id], nil
}
func (m *memProducts) List(context.Context, repository.ListFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (m *memProducts) CreateVariant(_ context.Context, v *entity.Variant) error {
	m.variants[v.ID] = v
	return nil
}
func (m *memProducts) GetVariant(_ context.Context, id string) (*entity.Variant, error) {
	return m.variants[id], nil
}
func (m *memProducts) UpdateVariantCost(_ context.Context, id string, c decimal.Decimal) error {
	m.variants[id].AverageCost = c
	return nil
}

type memLocations struct{ locs map[string]*entity.Location }

func (m *memLocations) Create(_ context.Context, l *entity.Location) error {
	m.locs[l.ID] = l
	return nil
}
func (m *memLocations) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return m.locs[id], nil
}
func (m *memLocations) Update(context.Context, *entity.Location) error { return nil }
func (m *memLocations) List(context.Context, int, int) ([]*entity.Location, error) {
	return nil, nil
}
func (m *memLocations) Delete(context.Context, string) error { return nil }

type memClients struct{ clients map[string]*entity.Client }

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	m.clients[c.ID] = c
	return nil
}
func (m *memClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return m.clients[id], nil
}
func (m *memClients) Update(_ context.Context, c *entity.Client) error {
	m.clients[c.ID] = c
	return nil
}
func (m *memClients) List(context.Context, repository.ListFilter) ([]*entity.Client, error) {
	return nil, nil
}

type memHandlers struct{ handlers map[string]*entity.DeliveryHandler }

func (m *memHandlers) Create(_ context.Context, h *entity.DeliveryHandler) error {
	m.handlers[h.ID] = h
	return nil
}
func (m *memHandlers) GetByID(_ context.Context, id string) (*entity.DeliveryHandler, error) {
	return m.handlers[id], nil
}
func (m *memHandlers) Update(context.Context, *entity.DeliveryHandler) error { return nil }
func (m *memHandlers) List(context.Context, repository.ListFilter) ([]*entity.DeliveryHandler, error) {
	return nil, nil
}

type memDrafts struct {
	mu     sync.Mutex
	drafts map[string]sales.Draft
}

func (m *memDrafts) Save(_ context.Context, d *sales.Draft, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	cp.Items = append([]entity.SaleItem(nil), d.Items...)
	cp.Lots = append([]entity.StockLot(nil), d.Lots...)
	m.drafts[d.ID] = cp
	return nil
}

func (m *memDrafts) Get(_ context.Context, id string) (*sales.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return nil, nil
	}
	d.Items = append([]entity.SaleItem(nil), d.Items...)
	d.Lots = append([]entity.StockLot(nil), d.Lots...)
	return &d, nil
}

func (m *memDrafts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

type fakeRenderer struct{ calls int }

func (f *fakeRenderer) RenderSaleReceipt(_ context.Context, s *entity.Sale, _ *entity.Location) ([]byte, error) {
	f.calls++
	return []byte("%PDF-" + s.ID), nil
}
