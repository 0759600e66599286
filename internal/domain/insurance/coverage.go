package insurance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Seguros-api/internal/domain"
)

// MoneyPlaces decimales de los montos persistidos (NUMERIC(14,2)).
const MoneyPlaces = 2

// ValidateClaimAmount exige 0 < amount <= coverage, con a lo sumo dos decimales.
// Si se excede la cobertura, el error lleva max_coverage en sus detalles.
func ValidateClaimAmount(amount, coverage decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.NewError(domain.ErrInvalidArgument,
			"el monto de la reclamación debe ser mayor que cero",
			map[string]any{"field": "amount"},
		)
	}
	if !hasMoneyPrecision(amount) {
		return domain.NewError(domain.ErrInvalidArgument,
			"el monto admite como máximo dos decimales",
			map[string]any{"field": "amount", "max_decimals": MoneyPlaces},
		)
	}
	if amount.GreaterThan(coverage) {
		return domain.NewError(domain.ErrInvalidArgument,
			"el monto excede la cobertura máxima del producto ("+coverage.StringFixed(2)+")",
			map[string]any{"field": "amount", "max_coverage": coverage.StringFixed(2)},
		)
	}
	return nil
}

// ValidateProduct valida los invariantes de un producto: nombre requerido, prima y cobertura no negativas.
// El ramo se valida con ParseProductType.
func ValidateProduct(name string, premium, coverage decimal.Decimal) error {
	if name == "" {
		return domain.NewError(domain.ErrInvalidArgument, "name es requerido", map[string]any{"field": "name"})
	}
	if premium.IsNegative() {
		return domain.NewError(domain.ErrInvalidArgument, "premium no puede ser negativo", map[string]any{"field": "premium"})
	}
	if coverage.IsNegative() {
		return domain.NewError(domain.ErrInvalidArgument, "coverage no puede ser negativo", map[string]any{"field": "coverage"})
	}
	if !hasMoneyPrecision(premium) {
		return domain.NewError(domain.ErrInvalidArgument, "premium admite como máximo dos decimales",
			map[string]any{"field": "premium", "max_decimals": MoneyPlaces})
	}
	if !hasMoneyPrecision(coverage) {
		return domain.NewError(domain.ErrInvalidArgument, "coverage admite como máximo dos decimales",
			map[string]any{"field": "coverage", "max_decimals": MoneyPlaces})
	}
	return nil
}

// hasMoneyPrecision es falso si v pierde información al redondear a centavos ("1.500" es válido).
func hasMoneyPrecision(v decimal.Decimal) bool {
	return v.Equal(v.Round(MoneyPlaces))
}
