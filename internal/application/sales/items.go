package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	inv "github.com/jhoicas/Backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// Draft sesión de edición de una venta: líneas en curso y copia local de los lotes de la
// ubicación. Las asignaciones se hacen contra Lots, nunca contra la base.
type Draft struct {
	ID         string
	LocationID string
	SaleID     string
	Items      []entity.SaleItem
	Lots       []entity.StockLot
	// Variants variantes cuyos lotes ya se cargaron en Lots.
	Variants  []string
	ExpiresAt time.Time
}

func (d *Draft) hasVariant(id string) bool {
	for _, v := range d.Variants {
		if v == id {
			return true
		}
	}
	return false
}

type variantInfo struct {
	variant     *entity.Variant
	productName string
}

// catalog resuelve variantes y nombres de producto con caché por llamada.
type catalog struct {
	productRepo repository.ProductRepository
	variants    map[string]variantInfo
	products    map[string]string
}

func newCatalog(productRepo repository.ProductRepository) *catalog {
	return &catalog{
		productRepo: productRepo,
		variants:    make(map[string]variantInfo),
		products:    make(map[string]string),
	}
}

func (c *catalog) lookup(ctx context.Context, variantID string) (variantInfo, error) {
	if vi, ok := c.variants[variantID]; ok {
		return vi, nil
	}
	v, err := c.productRepo.GetVariant(ctx, variantID)
	if err != nil {
		return variantInfo{}, err
	}
	if v == nil {
		return variantInfo{}, domain.ErrNotFound
	}
	name, ok := c.products[v.ProductID]
	if !ok {
		p, err := c.productRepo.GetByID(ctx, v.ProductID)
		if err != nil {
			return variantInfo{}, err
		}
		if p == nil {
			return variantInfo{}, domain.ErrNotFound
		}
		name = p.Name
		c.products[v.ProductID] = name
	}
	vi := variantInfo{variant: v, productName: name}
	c.variants[variantID] = vi
	return vi, nil
}

// allocateItem asigna FIFO la cantidad pedida sobre los lotes de la variante y devuelve la
// línea resultante junto al snapshot ya consumido.
func allocateItem(
	lots []entity.StockLot,
	locationID string,
	vi variantInfo,
	qty decimal.Decimal,
	price *decimal.Decimal,
) (entity.SaleItem, []entity.StockLot, error) {
	alloc, err := inv.Allocate(lotsOfVariant(lots, vi.variant.ID), locationID, qty)
	if err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			stockErr.VariantID = vi.variant.ID
		}
		return entity.SaleItem{}, lots, err
	}
	item := entity.SaleItem{
		ID:          uuid.New().String(),
		ProductID:   vi.variant.ProductID,
		VariantID:   vi.variant.ID,
		ProductName: vi.productName,
		VariantName: vi.variant.Name,
		Price:       vi.variant.Price,
		Weight:      vi.variant.Weight,
		Details:     alloc.StockDetails,
	}
	if price != nil {
		item.Price = *price
	}
	return item, inv.Consume(lots, locationID, alloc.StockDetails), nil
}

func lotsOfVariant(lots []entity.StockLot, variantID string) []entity.StockLot {
	out := make([]entity.StockLot, 0, len(lots))
	for _, l := range lots {
		if l.VariantID == variantID {
			out = append(out, l)
		}
	}
	return out
}

// persistLots escribe solo los lotes cuya cantidad cambió respecto de before.
func persistLots(ctx context.Context, lotRepo repository.StockLotRepository, before, after []entity.StockLot) error {
	prev := make(map[string]decimal.Decimal, len(before))
	for _, l := range before {
		prev[l.LocationID+"/"+l.PurchaseItemID] = l.Quantity
	}
	for _, l := range after {
		if q, ok := prev[l.LocationID+"/"+l.PurchaseItemID]; ok && q.Equal(l.Quantity) {
			continue
		}
		if err := lotRepo.UpdateQuantity(ctx, l.LocationID, l.PurchaseItemID, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func itemVariantIDs(items []entity.SaleItem, extra ...string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, it := range items {
		add(it.VariantID)
	}
	for _, id := range extra {
		add(id)
	}
	return out
}

// detailLotIDs lotes de origen referenciados por el desglose de las líneas, sin repetir.
func detailLotIDs(items []entity.SaleItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		for _, d := range it.Details {
			if !seen[d.PurchaseItemID] {
				seen[d.PurchaseItemID] = true
				out = append(out, d.PurchaseItemID)
			}
		}
	}
	return out
}
