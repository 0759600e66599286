package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClaimRequest entrada para radicar una reclamación. ClaimNumber vacío = se genera CLM-...
type CreateClaimRequest struct {
	ClientID    string          `json:"client_id" validate:"required"`
	ProductID   string          `json:"product_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=4000"`
	ClaimNumber string          `json:"claim_number" validate:"max=50"`
}

// UpdateClaimStatusRequest decisión sobre una reclamación. ProcessorID vacío = usuario autenticado.
type UpdateClaimStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	Notes       string `json:"notes" validate:"max=4000"`
	ProcessorID string `json:"processor_id"`
}

// UpdateClaimRequest edición de campos. Amount y Description solo mientras está pendiente.
type UpdateClaimRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" validate:"omitempty,min=1,max=4000"`
	Notes       *string          `json:"notes" validate:"omitempty,max=4000"`
}

// ClaimResponse salida de una reclamación.
type ClaimResponse struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name,omitempty"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	ClaimNumber   string          `json:"claim_number"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	SubmittedDate string          `json:"submitted_date"`
	ProcessedDate *string         `json:"processed_date"`
	ProcessedBy   *string         `json:"processed_by"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ClaimListResponse lista paginada de reclamaciones.
type ClaimListResponse struct {
	Items []ClaimResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
