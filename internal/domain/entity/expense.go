package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto operativo (alquiler, servicios, publicidad...).
type Expense struct {
	ID          string
	Category    string
	Description string
	Amount      decimal.Decimal
	LocationID  string // vacío = gasto general
	SpentAt     time.Time
	CreatedAt   time.Time
	CreatedBy   string
}
