// Package metrics expone contadores Prometheus de los eventos del back-office.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Seguros-api/internal/application/usecase"
)

var _ usecase.EventRecorder = (*Metrics)(nil)

// Metrics contadores de pólizas, reclamaciones y borrados bloqueados.
type Metrics struct {
	registry *prometheus.Registry

	ClaimsCreated  *prometheus.CounterVec
	ClaimDecisions *prometheus.CounterVec

	PoliciesCreated   *prometheus.CounterVec
	PolicyTransitions *prometheus.CounterVec
	PolicyRenewals    *prometheus.CounterVec

	DeletionsBlocked *prometheus.CounterVec
}

// New registra los contadores en un registry propio (más los collectors de Go y proceso).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ClaimsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seguros_claims_created_total",
			Help: "Reclamaciones radicadas por ramo del producto",
		}, []string{"product_type"}),
		ClaimDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seguros_claim_decisions_total",
			Help: "Cambios de estado de reclamaciones por estado destino",
		}, []string{"status"}),
		PoliciesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seguros_policies_created_total",
			Help: "Pólizas emitidas por ramo del producto",
		}, []string{"product_type"}),
		PolicyTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seguros_policy_status_changes_total",
			Help: "Cambios administrativos de estado de pólizas",
		}, []string{"from", "to"}),
		PolicyRenewals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seguros_policy_renewals_total",
			Help: "Renovaciones de pólizas por estado previo",
		}, []string{"from"}),
		DeletionsBlocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seguros_deletions_blocked_total",
			Help: "Borrados rechazados por dependientes o estado",
		}, []string{"entity"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ClaimsCreated, m.ClaimDecisions,
		m.PoliciesCreated, m.PolicyTransitions, m.PolicyRenewals,
		m.DeletionsBlocked,
	)
	return m
}

// Registry devuelve el registry (tests, exportadores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone /metrics como handler Fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) ClaimCreated(productType string) {
	if m != nil {
		m.ClaimsCreated.WithLabelValues(productType).Inc()
	}
}

func (m *Metrics) ClaimDecided(status string) {
	if m != nil {
		m.ClaimDecisions.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) PolicyCreated(productType string) {
	if m != nil {
		m.PoliciesCreated.WithLabelValues(productType).Inc()
	}
}

func (m *Metrics) PolicyStatusChanged(from, to string) {
	if m != nil {
		m.PolicyTransitions.WithLabelValues(from, to).Inc()
	}
}

func (m *Metrics) PolicyRenewed(from string) {
	if m != nil {
		m.PolicyRenewals.WithLabelValues(from).Inc()
	}
}

func (m *Metrics) DeletionBlocked(entityType string) {
	if m != nil {
		m.DeletionsBlocked.WithLabelValues(entityType).Inc()
	}
}
