package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee empleado de la tienda; puede actuar como repartidor.
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Role      string
	Salary    decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre para mostrar.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
