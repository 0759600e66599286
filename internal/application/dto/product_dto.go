package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto de seguro.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Type        string          `json:"type" validate:"required"`
	Premium     decimal.Decimal `json:"premium"`
	Coverage    decimal.Decimal `json:"coverage"`
	Description string          `json:"description" validate:"max=2000"`
	Active      *bool           `json:"active"` // nil = true
}

// UpdateProductRequest entrada para actualización parcial de un producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Type        *string          `json:"type"`
	Premium     *decimal.Decimal `json:"premium"`
	Coverage    *decimal.Decimal `json:"coverage"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Active      *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Premium     decimal.Decimal `json:"premium"`
	Coverage    decimal.Decimal `json:"coverage"`
	Description string          `json:"description"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
