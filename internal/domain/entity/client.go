package entity

import "time"

// Client cliente de ventas por adelanto (apartado).
type Client struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
