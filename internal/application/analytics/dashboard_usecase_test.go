package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Seguros-api/internal/application/analytics"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
	"github.com/jhoicas/Seguros-api/pkg/clock"
)

type stubDashboardRepo struct {
	policies []repository.PolicyStatusCount
	claims   []repository.ClaimStatusTotal
	claimErr error
	today    time.Time
}

func (s *stubDashboardRepo) CountPoliciesByEffectiveStatus(_ context.Context, today time.Time) ([]repository.PolicyStatusCount, error) {
	s.today = today
	return s.policies, nil
}

func (s *stubDashboardRepo) ClaimTotalsByStatus(context.Context) ([]repository.ClaimStatusTotal, error) {
	return s.claims, s.claimErr
}

func (s *stubDashboardRepo) CountActiveClients(context.Context) (int, error)  { return 7, nil }
func (s *stubDashboardRepo) CountActiveProducts(context.Context) (int, error) { return 3, nil }

func TestGetSummary(t *testing.T) {
	repo := &stubDashboardRepo{
		policies: []repository.PolicyStatusCount{{Status: "active", Count: 4}, {Status: "expired", Count: 2}},
		claims: []repository.ClaimStatusTotal{
			{Status: "pending", Count: 2, Amount: decimal.RequireFromString("150.505")},
			{Status: "approved", Count: 1, Amount: decimal.NewFromInt(900)},
		},
	}
	now := time.Date(2025, 1, 15, 18, 30, 0, 0, time.UTC)
	uc := analytics.NewDashboardUseCase(repo, clock.Fixed(now))

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), repo.today)
	assert.Equal(t, 7, out.ActiveClients)
	assert.Equal(t, 3, out.ActiveProducts)
	assert.Equal(t, map[string]int{"active": 4, "expired": 2}, out.PoliciesByStatus)
	assert.Len(t, out.Claims, 2)
	assert.Equal(t, "150.51", out.PendingClaimsAmount.StringFixed(2))
	assert.True(t, out.ApprovedAmount.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, "2025-01-15", out.AsOf)
}

func TestGetSummary_PropagaError(t *testing.T) {
	repo := &stubDashboardRepo{claimErr: errors.New("db caída")}
	uc := analytics.NewDashboardUseCase(repo, clock.Fixed(time.Now()))

	_, err := uc.GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reclamaciones por estado")
}
