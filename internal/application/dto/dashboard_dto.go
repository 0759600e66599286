package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ActiveClients  int `json:"active_clients"`
	ActiveProducts int `json:"active_products"`

	// Pólizas por estado efectivo (active, expired, cancelled, ...)
	PoliciesByStatus map[string]int `json:"policies_by_status"`

	// Reclamaciones por estado con el monto acumulado
	Claims []ClaimStatusSummaryDTO `json:"claims"`

	PendingClaimsAmount decimal.Decimal `json:"pending_claims_amount"`
	ApprovedAmount      decimal.Decimal `json:"approved_amount"`

	AsOf string `json:"as_of"` // fecha de evaluación YYYY-MM-DD
}

// ClaimStatusSummaryDTO conteo y monto por estado de reclamación.
type ClaimStatusSummaryDTO struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}
