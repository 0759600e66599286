package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Seguros-api/internal/application/report"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

func TestMoney_FormatoLocal(t *testing.T) {
	g := NewMarotoPDFGenerator("")
	assert.Equal(t, "$1.234.567,50", g.money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "$0,00", g.money(decimal.Zero))
}

func TestSplitEvery(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, splitEvery("abcdefg", 3))
	assert.Equal(t, []string{"ñá", "é"}, splitEvery("ñáé", 2))
	assert.Nil(t, splitEvery("", 3))
}

func TestGenerateClaimPDF(t *testing.T) {
	processed := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	by := "00000000-0000-0000-0000-0000000000aa"
	r := &report.ClaimReport{
		Claim: entity.Claim{
			ClaimNumber: "CLM-1736935200000", Amount: decimal.NewFromInt(450), Description: "Rotura de vidrio",
			Status: entity.ClaimStatusApproved, SubmittedDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			ProcessedDate: &processed, ProcessedBy: &by, Notes: "aprobada por peritaje",
		},
		Client:  entity.Client{Name: "Laura Gómez", Email: "laura@example.com", Status: entity.ClientStatusActive},
		Product: entity.Product{Name: "Auto Plus", Type: entity.ProductTypeAuto, Coverage: decimal.NewFromInt(20000)},
		History: []*entity.StatusChange{
			{OldStatus: "", NewStatus: "pending", ChangedAt: time.Now()},
			{OldStatus: "pending", NewStatus: "approved", ChangedBy: by, ChangedAt: time.Now(), Notes: "ok"},
		},
		GeneratedAt: time.Now(),
	}

	out, err := NewMarotoPDFGenerator("Seguros API").GenerateClaimPDF(context.Background(), r)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
