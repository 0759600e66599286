// Package report genera el reporte PDF de una reclamación para el expediente del ajustador.
package report

import (
	"context"
	"time"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// ClaimReport datos consolidados que se imprimen en el reporte.
type ClaimReport struct {
	Claim   entity.Claim
	Client  entity.Client
	Product entity.Product
	// Policy puede ser nil si la póliza fue eliminada después de radicar.
	Policy      *entity.Policy
	History     []*entity.StatusChange
	GeneratedAt time.Time
}

// ClaimPDFGenerator puerto para renderizar el reporte. Lo implementa infrastructure/pdf.
type ClaimPDFGenerator interface {
	GenerateClaimPDF(ctx context.Context, r *ClaimReport) ([]byte, error)
}
