package inventory

import (
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CostCalculator costo promedio ponderado de una variante al recibir una compra.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// AverageLotCost costo unitario promedio de los lotes asignables de locationID,
// ponderado por cantidad. Cero si no hay stock.
func AverageLotCost(lots []entity.StockLot, locationID string) decimal.Decimal {
	qty, cost := decimal.Zero, decimal.Zero
	for _, l := range lots {
		if l.LocationID != locationID || !l.Available() {
			continue
		}
		cost = CostCalculator(qty, cost, l.Quantity, l.UnitCost)
		qty = qty.Add(l.Quantity)
	}
	return cost
}
