package insurance

import (
	"fmt"

	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// CheckClientDeletion bloquea el borrado de un cliente con pólizas activas o reclamaciones pendientes.
// El error de conflicto reporta ambos conteos.
func CheckClientDeletion(activePolicies, pendingClaims int) error {
	if activePolicies == 0 && pendingClaims == 0 {
		return nil
	}
	return domain.NewError(domain.ErrConflict,
		fmt.Sprintf("el cliente tiene %d póliza(s) activa(s) y %d reclamación(es) pendiente(s)", activePolicies, pendingClaims),
		map[string]any{"active_policies": activePolicies, "pending_claims": pendingClaims},
	)
}

// CheckProductDeletion bloquea el borrado de un producto referenciado por pólizas activas.
func CheckProductDeletion(activePolicies int) error {
	if activePolicies == 0 {
		return nil
	}
	return domain.NewError(domain.ErrConflict,
		fmt.Sprintf("el producto tiene %d póliza(s) activa(s)", activePolicies),
		map[string]any{"active_policies": activePolicies},
	)
}

// CheckClaimDeletion solo permite borrar reclamaciones pendientes.
func CheckClaimDeletion(status entity.ClaimStatus) error {
	if status == entity.ClaimStatusPending {
		return nil
	}
	return domain.NewError(domain.ErrInvalidState,
		"solo se pueden eliminar reclamaciones pendientes (estado actual: "+string(status)+")",
		map[string]any{"status": string(status)},
	)
}

// CheckClaimEditable solo permite editar monto y descripción mientras la reclamación está pendiente.
func CheckClaimEditable(status entity.ClaimStatus) error {
	if status == entity.ClaimStatusPending {
		return nil
	}
	return domain.NewError(domain.ErrInvalidState,
		"una reclamación procesada no admite cambios de monto ni descripción (estado actual: "+string(status)+")",
		map[string]any{"status": string(status)},
	)
}
