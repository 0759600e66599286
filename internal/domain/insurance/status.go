package insurance

import (
	"strings"

	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// ParseProductType normaliza y valida el ramo de un producto.
func ParseProductType(s string) (entity.ProductType, error) {
	t := entity.ProductType(normalize(s))
	if !t.Valid() {
		return "", invalidEnum("type", s, "life, health, auto, home, travel")
	}
	return t, nil
}

// ParseClientStatus solo admite active e inactive.
func ParseClientStatus(s string) (entity.ClientStatus, error) {
	st := entity.ClientStatus(normalize(s))
	if !st.Valid() {
		return "", invalidEnum("status", s, "active, inactive")
	}
	return st, nil
}

// ParsePolicyStatus valida el estado destino de una póliza.
func ParsePolicyStatus(s string) (entity.PolicyStatus, error) {
	st := entity.PolicyStatus(normalize(s))
	if !st.Valid() {
		return "", invalidEnum("status", s, "active, inactive, cancelled, expired, suspended")
	}
	return st, nil
}

// ParseClaimStatus valida el estado destino de una reclamación.
func ParseClaimStatus(s string) (entity.ClaimStatus, error) {
	st := entity.ClaimStatus(normalize(s))
	if !st.Valid() {
		return "", invalidEnum("status", s, "pending, approved, rejected")
	}
	return st, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func invalidEnum(field, got, allowed string) error {
	return domain.NewError(domain.ErrInvalidArgument,
		field+" inválido: '"+got+"' (valores permitidos: "+allowed+")",
		map[string]any{"field": field, "value": got},
	)
}
