// Package analytics contiene el resumen del back-office de seguros para el dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/insurance"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
	"github.com/jhoicas/Seguros-api/pkg/clock"
)

// DashboardUseCase genera el resumen de cartera: pólizas por estado efectivo,
// reclamaciones por estado con montos y conteo de clientes y productos activos.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo  repository.DashboardRepository
	clock clock.Clock
}

// NewDashboardUseCase construye el caso de uso. clock nil usa el reloj del sistema.
func NewDashboardUseCase(repo repository.DashboardRepository, c clock.Clock) *DashboardUseCase {
	if c == nil {
		c = clock.Real()
	}
	return &DashboardUseCase{repo: repo, clock: c}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. CountPoliciesByEffectiveStatus(hoy)
//  2. ClaimTotalsByStatus
//  3. CountActiveClients
//  4. CountActiveProducts
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	today := insurance.DateOf(uc.clock.Now())

	type policiesResult struct {
		counts []repository.PolicyStatusCount
		err    error
	}
	type claimsResult struct {
		totals []repository.ClaimStatusTotal
		err    error
	}
	type countResult struct {
		n   int
		err error
	}

	policiesCh := make(chan policiesResult, 1)
	claimsCh := make(chan claimsResult, 1)
	clientsCh := make(chan countResult, 1)
	productsCh := make(chan countResult, 1)

	go func() {
		counts, err := uc.repo.CountPoliciesByEffectiveStatus(ctx, today)
		policiesCh <- policiesResult{counts, err}
	}()
	go func() {
		totals, err := uc.repo.ClaimTotalsByStatus(ctx)
		claimsCh <- claimsResult{totals, err}
	}()
	go func() {
		n, err := uc.repo.CountActiveClients(ctx)
		clientsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountActiveProducts(ctx)
		productsCh <- countResult{n, err}
	}()

	policies := <-policiesCh
	claims := <-claimsCh
	clients := <-clientsCh
	products := <-productsCh

	if policies.err != nil {
		return nil, fmt.Errorf("dashboard: pólizas por estado: %w", policies.err)
	}
	if claims.err != nil {
		return nil, fmt.Errorf("dashboard: reclamaciones por estado: %w", claims.err)
	}
	if clients.err != nil {
		return nil, fmt.Errorf("dashboard: clientes activos: %w", clients.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos activos: %w", products.err)
	}

	byStatus := make(map[string]int, len(policies.counts))
	for _, c := range policies.counts {
		byStatus[c.Status] += c.Count
	}

	out := &dto.DashboardSummaryDTO{
		ActiveClients:       clients.n,
		ActiveProducts:      products.n,
		PoliciesByStatus:    byStatus,
		Claims:              make([]dto.ClaimStatusSummaryDTO, 0, len(claims.totals)),
		PendingClaimsAmount: decimal.Zero,
		ApprovedAmount:      decimal.Zero,
		AsOf:                today.Format(dto.DateLayout),
	}
	for _, t := range claims.totals {
		out.Claims = append(out.Claims, dto.ClaimStatusSummaryDTO{Status: t.Status, Count: t.Count, Amount: t.Amount.Round(2)})
		switch entity.ClaimStatus(t.Status) {
		case entity.ClaimStatusPending:
			out.PendingClaimsAmount = t.Amount.Round(2)
		case entity.ClaimStatusApproved:
			out.ApprovedAmount = t.Amount.Round(2)
		}
	}
	return out, nil
}
