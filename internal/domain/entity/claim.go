package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatus estado de una reclamación.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// Valid informa si el estado pertenece al flujo pending/approved/rejected.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}

// Claim solicitud monetaria contra la cobertura de un producto que el cliente tiene asegurado.
// Referencia Client y Product directamente (no la póliza).
type Claim struct {
	ID            string
	ClientID      string
	ProductID     string
	ClaimNumber   string
	Amount        decimal.Decimal
	Description   string
	Status        ClaimStatus
	SubmittedDate time.Time
	ProcessedDate *time.Time
	ProcessedBy   *string // ID del usuario que decidió la reclamación
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClaimDetail reclamación enriquecida con datos del cliente y del producto.
type ClaimDetail struct {
	Claim
	ClientName      string
	ProductName     string
	ProductCoverage decimal.Decimal
}
