package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType ramo del seguro ofrecido.
type ProductType string

// Ramos válidos (deben coincidir con el CHECK de la tabla products).
const (
	ProductTypeLife   ProductType = "life"
	ProductTypeHealth ProductType = "health"
	ProductTypeAuto   ProductType = "auto"
	ProductTypeHome   ProductType = "home"
	ProductTypeTravel ProductType = "travel"
)

// Valid informa si el ramo pertenece al catálogo.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeLife, ProductTypeHealth, ProductTypeAuto, ProductTypeHome, ProductTypeTravel:
		return true
	}
	return false
}

// Product representa un producto de seguro del catálogo.
// Premium es mensual; Coverage es el máximo pagable por reclamación.
type Product struct {
	ID          string
	Name        string
	Type        ProductType
	Premium     decimal.Decimal
	Coverage    decimal.Decimal
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
