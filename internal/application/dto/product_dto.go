package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVariantRequest entrada para crear una variante. Weight en gramos.
type CreateVariantRequest struct {
	Name   string          `json:"name" validate:"required,min=1,max=200"`
	SKU    string          `json:"sku" validate:"max=100"`
	Price  decimal.Decimal `json:"price" validate:"gte=0"`
	Weight decimal.Decimal `json:"weight" validate:"gte=0"`
}

// CreateProductRequest entrada para crear un producto con sus variantes iniciales.
type CreateProductRequest struct {
	Name        string                 `json:"name" validate:"required,min=1,max=200"`
	Description string                 `json:"description"`
	Category    string                 `json:"category" validate:"max=100"`
	Variants    []CreateVariantRequest `json:"variants" validate:"dive"`
}

// VariantResponse salida de una variante.
type VariantResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Weight      decimal.Decimal `json:"weight"`
	AverageCost decimal.Decimal `json:"average_cost"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
