// Package inventory contiene la lógica pura de lotes: asignación FIFO, devolución de
// cantidades a un snapshot y costo promedio ponderado.
package inventory

import (
	"sort"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Allocation resultado de una asignación: desglose por lote en orden de consumo.
type Allocation struct {
	StockDetails []entity.StockAllocationDetail
}

// Quantity suma de las cantidades asignadas.
func (a Allocation) Quantity() decimal.Decimal {
	q := decimal.Zero
	for _, d := range a.StockDetails {
		q = q.Add(d.Quantity)
	}
	return q
}

// Allocate elige de qué lotes de locationID sale la cantidad pedida, del más antiguo al más
// reciente (FIFO por CreatedAt). Los lotes en cero se ignoran. No modifica lots.
// Si la cantidad disponible no alcanza devuelve *domain.InsufficientStockError y ningún detalle.
func Allocate(lots []entity.StockLot, locationID string, requested decimal.Decimal) (Allocation, error) {
	if !requested.GreaterThan(decimal.Zero) {
		return Allocation{}, domain.ErrInvalidInput
	}

	candidates := make([]entity.StockLot, 0, len(lots))
	available := decimal.Zero
	for _, l := range lots {
		if l.LocationID != locationID || !l.Available() {
			continue
		}
		candidates = append(candidates, l)
		available = available.Add(l.Quantity)
	}
	if available.LessThan(requested) {
		e := &domain.InsufficientStockError{LocationID: locationID, Requested: requested, Available: available}
		if len(lots) > 0 {
			e.VariantID = lots[0].VariantID
		}
		return Allocation{}, e
	}

	// Empates en fecha conservan el orden de entrada.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	remaining := requested
	details := make([]entity.StockAllocationDetail, 0, len(candidates))
	for _, l := range candidates {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(l.Quantity, remaining)
		details = append(details, entity.StockAllocationDetail{
			PurchaseItemID: l.PurchaseItemID,
			Quantity:       take,
			UnitCost:       l.UnitCost,
			CostPerKg:      copyRate(l.CostPerKg),
		})
		remaining = remaining.Sub(take)
	}
	return Allocation{StockDetails: details}, nil
}

// Consume devuelve una copia de lots con las cantidades de details descontadas de los
// lotes de locationID correspondientes.
func Consume(lots []entity.StockLot, locationID string, details []entity.StockAllocationDetail) []entity.StockLot {
	out := CloneLots(lots)
	for _, d := range details {
		if i := findLot(out, locationID, d.PurchaseItemID); i >= 0 {
			out[i].Quantity = out[i].Quantity.Sub(d.Quantity)
		}
	}
	return out
}

// AvailableQuantity suma la cantidad de los lotes asignables de locationID.
func AvailableQuantity(lots []entity.StockLot, locationID string) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		if l.LocationID == locationID && l.Available() {
			total = total.Add(l.Quantity)
		}
	}
	return total
}

// CloneLots copia profunda del snapshot de lotes.
func CloneLots(lots []entity.StockLot) []entity.StockLot {
	if lots == nil {
		return nil
	}
	out := make([]entity.StockLot, len(lots))
	for i, l := range lots {
		l.CostPerKg = copyRate(l.CostPerKg)
		out[i] = l
	}
	return out
}

func findLot(lots []entity.StockLot, locationID, purchaseItemID string) int {
	for i := range lots {
		if lots[i].LocationID == locationID && lots[i].PurchaseItemID == purchaseItemID {
			return i
		}
	}
	return -1
}

func copyRate(r *decimal.Decimal) *decimal.Decimal {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
