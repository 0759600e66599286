package usecase

import (
	"context"

	"github.com/jhoicas/Seguros-api/internal/domain/insurance"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
	"github.com/jhoicas/Seguros-api/pkg/clock"
	"github.com/jhoicas/Seguros-api/pkg/logger"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Clients       repository.ClientRepository
	Policies      repository.PolicyRepository
	Claims        repository.ClaimRepository
	StatusChanges repository.StatusChangeRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD; Commit si fn no devuelve error, Rollback si sí.
// Se usa para que el cambio de estado y su registro en la bitácora sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// EventRecorder recibe eventos de dominio para métricas. Lo implementa infrastructure/metrics.
type EventRecorder interface {
	ClaimCreated(productType string)
	ClaimDecided(status string)
	PolicyCreated(productType string)
	PolicyStatusChanged(from, to string)
	PolicyRenewed(from string)
	DeletionBlocked(entityType string)
}

// NopRecorder descarta los eventos.
type NopRecorder struct{}

func (NopRecorder) ClaimCreated(string)                {}
func (NopRecorder) ClaimDecided(string)                {}
func (NopRecorder) PolicyCreated(string)               {}
func (NopRecorder) PolicyStatusChanged(string, string) {}
func (NopRecorder) PolicyRenewed(string)               {}
func (NopRecorder) DeletionBlocked(string)             {}

// Deps dependencias compartidas por los casos de uso del back-office.
type Deps struct {
	Products      repository.ProductRepository
	Clients       repository.ClientRepository
	Policies      repository.PolicyRepository
	Claims        repository.ClaimRepository
	StatusChanges repository.StatusChangeRepository
	Tx            TxRunner

	Clock   clock.Clock
	IDs     *insurance.IdentifierGenerator
	Metrics EventRecorder
	Log     *logger.Logger

	// DefaultRenewalMonths meses de renovación cuando el request no los indica (0 = 12).
	DefaultRenewalMonths int
}

// withDefaults completa reloj, generador, métricas y logger si no vienen.
func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.IDs == nil {
		d.IDs = insurance.NewIdentifierGenerator(d.Clock)
	}
	if d.Metrics == nil {
		d.Metrics = NopRecorder{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.DefaultRenewalMonths <= 0 {
		d.DefaultRenewalMonths = insurance.DefaultRenewalMonths
	}
	return d
}
