package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Seguros-api/internal/application/report"
	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/infrastructure/memory"
	"github.com/jhoicas/Seguros-api/pkg/clock"
)

type captureGenerator struct {
	got *report.ClaimReport
}

func (g *captureGenerator) GenerateClaimPDF(_ context.Context, r *report.ClaimReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}

func TestDownloadClaimPDF(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Clients().Create(ctx, &entity.Client{ID: "c1", Name: "Pedro", Email: "p@example.com", Status: entity.ClientStatusActive}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Viaje", Type: entity.ProductTypeTravel, Coverage: decimal.NewFromInt(3000)}))
	require.NoError(t, store.Claims().Create(ctx, &entity.Claim{
		ID: "k1", ClientID: "c1", ProductID: "p1", ClaimNumber: "CLM-77", Amount: decimal.NewFromInt(250), Status: entity.ClaimStatusPending,
	}))
	require.NoError(t, store.StatusChanges().Append(ctx, &entity.StatusChange{ID: "s1", EntityType: entity.AuditEntityClaim, EntityID: "k1", NewStatus: "pending"}))

	gen := &captureGenerator{}
	uc := report.NewClaimReportUseCase(store.Claims(), store.Clients(), store.Products(), store.Policies(), store.StatusChanges(), gen, clock.Fixed(now))

	pdf, filename, err := uc.DownloadClaimPDF(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "reclamacion_CLM-77.pdf", filename)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	require.NotNil(t, gen.got)
	assert.Equal(t, "Pedro", gen.got.Client.Name)
	assert.Nil(t, gen.got.Policy)
	assert.Len(t, gen.got.History, 1)
	assert.Equal(t, now, gen.got.GeneratedAt)

	_, _, err = uc.DownloadClaimPDF(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
