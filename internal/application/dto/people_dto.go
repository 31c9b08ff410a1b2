package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=300"`
}

// UpdateClientRequest actualización parcial de un cliente.
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEmployeeRequest entrada para crear un empleado.
type CreateEmployeeRequest struct {
	FirstName string          `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string          `json:"last_name" validate:"max=100"`
	Phone     string          `json:"phone" validate:"max=50"`
	Role      string          `json:"role" validate:"max=100"`
	Salary    decimal.Decimal `json:"salary" validate:"gte=0"`
}

// UpdateEmployeeRequest actualización parcial de un empleado. Active=false lo da de baja.
type UpdateEmployeeRequest struct {
	FirstName *string          `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string          `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string          `json:"phone" validate:"omitempty,max=50"`
	Role      *string          `json:"role" validate:"omitempty,max=100"`
	Salary    *decimal.Decimal `json:"salary,omitempty"`
	Active    *bool            `json:"active,omitempty"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID        string          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	FullName  string          `json:"full_name"`
	Phone     string          `json:"phone"`
	Role      string          `json:"role"`
	Salary    decimal.Decimal `json:"salary"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// AgencyRequest datos de una agencia de reparto.
type AgencyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=300"`
}

// DeliveryHandlerRequest body para crear/actualizar un repartidor.
// type=EMPLOYEE exige employee_id; type=AGENCY exige agency.
type DeliveryHandlerRequest struct {
	Type       string         `json:"type" validate:"required,oneof=EMPLOYEE AGENCY"`
	EmployeeID string         `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	Agency     *AgencyRequest `json:"agency,omitempty"`
}

// DeliveryHandlerResponse salida de un repartidor.
type DeliveryHandlerResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	EmployeeID string            `json:"employee_id,omitempty"`
	Employee   *EmployeeResponse `json:"employee,omitempty"`
	Agency     *AgencyRequest    `json:"agency,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	Category    string          `json:"category" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	LocationID  string          `json:"location_id,omitempty" validate:"omitempty,uuid"`
	SpentAt     *time.Time      `json:"spent_at,omitempty"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	LocationID  string          `json:"location_id,omitempty"`
	SpentAt     time.Time       `json:"spent_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListResponse lista paginada genérica para catálogos simples.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}
