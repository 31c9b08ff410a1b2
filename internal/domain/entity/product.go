package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product agrupa variantes vendibles (talla, color, presentación...).
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant es la unidad vendible. Weight en gramos; AverageCost es el costo promedio ponderado
// de las compras registradas (inicia en 0).
type Variant struct {
	ID          string
	ProductID   string
	Name        string
	SKU         string
	Price       decimal.Decimal
	Weight      decimal.Decimal
	AverageCost decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
