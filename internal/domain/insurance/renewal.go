package insurance

import (
	"time"

	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// DefaultRenewalMonths período de renovación cuando no se indica uno.
const DefaultRenewalMonths = 12

// MaxRenewalMonths tope de meses admitido en una renovación.
const MaxRenewalMonths = 120

// RenewalEndDate calcula la nueva fecha fin: la explícita si viene, si no hoy + months.
// months <= 0 usa defaultMonths (o DefaultRenewalMonths si este también es <= 0).
func RenewalEndDate(now time.Time, months int, explicit *time.Time, defaultMonths int) (time.Time, error) {
	today := DateOf(now)
	if explicit != nil {
		end := DateOf(*explicit)
		if end.Before(today) {
			return time.Time{}, domain.NewError(domain.ErrInvalidArgument,
				"la nueva fecha fin no puede ser anterior a hoy",
				map[string]any{"field": "new_end_date"},
			)
		}
		return end, nil
	}
	if months <= 0 {
		months = defaultMonths
	}
	if months <= 0 {
		months = DefaultRenewalMonths
	}
	if months > MaxRenewalMonths {
		return time.Time{}, domain.NewError(domain.ErrInvalidArgument,
			"months excede el máximo permitido",
			map[string]any{"field": "months", "max": MaxRenewalMonths},
		)
	}
	return today.AddDate(0, months, 0), nil
}

// ApplyRenewal deja la póliza activa con la nueva fecha fin, sin importar su estado previo
// (incluye cancelled y suspended). Devuelve el estado anterior.
func ApplyRenewal(p *entity.Policy, newEnd time.Time, now time.Time) entity.PolicyStatus {
	old := p.Status
	end := newEnd
	p.EndDate = &end
	p.Status = entity.PolicyStatusActive
	p.UpdatedAt = now
	return old
}

// ValidatePolicyDates exige que la fecha fin, si existe, no preceda a la de inicio.
func ValidatePolicyDates(start time.Time, end *time.Time) error {
	if end == nil {
		return nil
	}
	if DateOf(*end).Before(DateOf(start)) {
		return domain.NewError(domain.ErrInvalidArgument,
			"end_date no puede ser anterior a start_date",
			map[string]any{"field": "end_date"},
		)
	}
	return nil
}
