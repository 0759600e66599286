package insurance

import (
	"time"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// ApplyClaimStatus aplica el estado destino a la reclamación y devuelve el estado anterior.
//
//   - approved/rejected: sella ProcessedDate (fecha actual) y, si vienen, ProcessedBy y Notes.
//   - pending: reabre la reclamación y limpia los datos de procesamiento.
//
// No hay bloqueo contra volver a pending desde un estado decidido.
func ApplyClaimStatus(c *entity.Claim, target entity.ClaimStatus, processorID, notes string, now time.Time) entity.ClaimStatus {
	old := c.Status
	switch target {
	case entity.ClaimStatusApproved, entity.ClaimStatusRejected:
		processed := DateOf(now)
		c.ProcessedDate = &processed
		if processorID != "" {
			p := processorID
			c.ProcessedBy = &p
		}
	case entity.ClaimStatusPending:
		c.ProcessedDate = nil
		c.ProcessedBy = nil
	}
	if notes != "" {
		c.Notes = notes
	}
	c.Status = target
	c.UpdatedAt = now
	return old
}

// ApplyPolicyStatus cambia el estado almacenado de la póliza. Cualquier estado puede pasar a cualquier otro.
func ApplyPolicyStatus(p *entity.Policy, target entity.PolicyStatus, now time.Time) entity.PolicyStatus {
	old := p.Status
	p.Status = target
	p.UpdatedAt = now
	return old
}

// ApplyClientStatus activa o desactiva un cliente. Desactivar no depende de sus pólizas.
func ApplyClientStatus(c *entity.Client, target entity.ClientStatus, now time.Time) entity.ClientStatus {
	old := c.Status
	c.Status = target
	c.UpdatedAt = now
	return old
}
