// Package sales reúne las reglas financieras de las ventas: totales de líneas, resumen
// (monto a pagar, saldo, ganancia neta) y las máquinas de estado por canal.
package sales

import (
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var gramsPerKg = decimal.NewFromInt(1000)

// TotalAmount Σ precio × cantidad, con cantidad = Σ details[].quantity.
func TotalAmount(items []entity.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(it.Quantity()))
	}
	return total
}

// TotalCost Σ por línea y por lote: cantidad × (costo unitario + costo de envío por peso).
// El costo de envío es peso(g) × tarifa(por kg) / 1000; si el lote no trae tarifa se usa
// defaultCostPerKg. Sin redondeo: el formateo es responsabilidad de quien muestra.
func TotalCost(items []entity.SaleItem, defaultCostPerKg decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		for _, d := range it.Details {
			unit := d.UnitCost.Add(WeightShippingCost(it.Weight, d.CostPerKg, defaultCostPerKg))
			total = total.Add(d.Quantity.Mul(unit))
		}
	}
	return total
}

// WeightShippingCost costo de envío por unidad atribuible al peso.
func WeightShippingCost(weightGrams decimal.Decimal, costPerKg *decimal.Decimal, defaultCostPerKg decimal.Decimal) decimal.Decimal {
	rate := defaultCostPerKg
	if costPerKg != nil {
		rate = *costPerKg
	}
	return weightGrams.Mul(rate).Div(gramsPerKg)
}

// TotalQuantity unidades vendidas en todas las líneas.
func TotalQuantity(items []entity.SaleItem) decimal.Decimal {
	q := decimal.Zero
	for _, it := range items {
		q = q.Add(it.Quantity())
	}
	return q
}
