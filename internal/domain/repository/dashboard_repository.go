package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatusTotal conteo y suma de montos por estado de reclamación.
type ClaimStatusTotal struct {
	Status string
	Count  int
	Amount decimal.Decimal
}

// PolicyStatusCount conteo de pólizas por estado efectivo.
type PolicyStatusCount struct {
	Status string
	Count  int
}

// DashboardRepository consultas de solo lectura para el resumen del back-office.
type DashboardRepository interface {
	// CountPoliciesByEffectiveStatus agrupa por estado efectivo evaluado a la fecha today.
	CountPoliciesByEffectiveStatus(ctx context.Context, today time.Time) ([]PolicyStatusCount, error)
	ClaimTotalsByStatus(ctx context.Context) ([]ClaimStatusTotal, error)
	CountActiveClients(ctx context.Context) (int, error)
	CountActiveProducts(ctx context.Context) (int, error)
}
