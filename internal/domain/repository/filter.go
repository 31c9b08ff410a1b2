package repository

import "time"

// ListFilter criterios comunes de los listados. Los campos vacíos no filtran.
type ListFilter struct {
	Limit      int
	Offset     int
	Search     string
	LocationID string
	Status     string
	Channel    string
	Category   string
	From       *time.Time
	To         *time.Time
}

// LotFilter consulta de stock actual (lotes) por producto/variante/ubicación.
type LotFilter struct {
	LocationID    string
	ProductID     string
	VariantID     string
	OnlyAvailable bool
}
