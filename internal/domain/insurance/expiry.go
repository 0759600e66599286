package insurance

import (
	"time"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// EffectivePolicyStatus aplica el vencimiento perezoso: una póliza almacenada como active
// cuya fecha fin es estrictamente anterior a la fecha actual se reporta como expired.
// El valor almacenado no se modifica.
func EffectivePolicyStatus(stored entity.PolicyStatus, endDate *time.Time, now time.Time) entity.PolicyStatus {
	if stored != entity.PolicyStatusActive || endDate == nil {
		return stored
	}
	if DateOf(*endDate).Before(DateOf(now)) {
		return entity.PolicyStatusExpired
	}
	return stored
}

// PolicyInForce informa si la póliza está efectivamente activa en now.
func PolicyInForce(p *entity.Policy, now time.Time) bool {
	if p == nil {
		return false
	}
	return EffectivePolicyStatus(p.Status, p.EndDate, now) == entity.PolicyStatusActive
}

// DateOf trunca t a su fecha calendario (medianoche UTC), conservando año/mes/día de su zona.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
