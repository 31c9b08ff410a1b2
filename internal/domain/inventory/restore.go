package inventory

import "github.com/jhoicas/Backoffice-api/internal/domain/entity"

// Restore devuelve al snapshot las cantidades asignadas a líneas quitadas durante una edición,
// para que una asignación posterior en la misma sesión vea el stock correcto.
// Trabaja sobre una copia; los detalles cuyo lote ya no está en el snapshot se descartan
// (ver Unmatched).
func Restore(lots []entity.StockLot, removedItems []entity.SaleItem, locationID string) []entity.StockLot {
	out := CloneLots(lots)
	for _, item := range removedItems {
		for _, d := range item.Details {
			if i := findLot(out, locationID, d.PurchaseItemID); i >= 0 {
				out[i].Quantity = out[i].Quantity.Add(d.Quantity)
			}
		}
	}
	return out
}

// Unmatched lista los detalles de removedItems que Restore no puede devolver porque su lote
// no existe en el snapshot de locationID.
func Unmatched(lots []entity.StockLot, removedItems []entity.SaleItem, locationID string) []entity.StockAllocationDetail {
	var missing []entity.StockAllocationDetail
	for _, item := range removedItems {
		for _, d := range item.Details {
			if findLot(lots, locationID, d.PurchaseItemID) < 0 {
				missing = append(missing, d)
			}
		}
	}
	return missing
}
