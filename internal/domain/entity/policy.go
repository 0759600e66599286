package entity

import "time"

// PolicyStatus estado almacenado de una póliza.
type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusInactive  PolicyStatus = "inactive"
	PolicyStatusCancelled PolicyStatus = "cancelled"
	PolicyStatusExpired   PolicyStatus = "expired"
	PolicyStatusSuspended PolicyStatus = "suspended"
)

// Valid informa si el estado pertenece al conjunto permitido.
func (s PolicyStatus) Valid() bool {
	switch s {
	case PolicyStatusActive, PolicyStatusInactive, PolicyStatusCancelled,
		PolicyStatusExpired, PolicyStatusSuspended:
		return true
	}
	return false
}

// Policy vincula un cliente con un producto. El par (ClientID, ProductID) es único.
// Status es el valor almacenado; el estado efectivo se deriva al leer (ver insurance.EffectivePolicyStatus).
type Policy struct {
	ID           string
	ClientID     string
	ProductID    string
	PolicyNumber string
	StartDate    time.Time
	EndDate      *time.Time // nil = sin vencimiento
	Status       PolicyStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PolicyDetail póliza junto con los nombres del cliente y del producto (listados).
type PolicyDetail struct {
	Policy
	ClientName  string
	ProductName string
	ProductType ProductType
}
