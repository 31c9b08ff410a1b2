package entity

import "time"

// Location representa una tienda o depósito donde viven los lotes de stock.
type Location struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
