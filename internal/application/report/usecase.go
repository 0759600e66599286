package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
	"github.com/jhoicas/Seguros-api/pkg/clock"
)

// ClaimReportUseCase arma los datos de una reclamación y delega el render en el generador.
type ClaimReportUseCase struct {
	claims        repository.ClaimRepository
	clients       repository.ClientRepository
	products      repository.ProductRepository
	policies      repository.PolicyRepository
	statusChanges repository.StatusChangeRepository
	generator     ClaimPDFGenerator
	clock         clock.Clock
}

// NewClaimReportUseCase construye el caso de uso inyectando sus dependencias.
func NewClaimReportUseCase(
	claims repository.ClaimRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	policies repository.PolicyRepository,
	statusChanges repository.StatusChangeRepository,
	generator ClaimPDFGenerator,
	c clock.Clock,
) *ClaimReportUseCase {
	if c == nil {
		c = clock.Real()
	}
	return &ClaimReportUseCase{
		claims:        claims,
		clients:       clients,
		products:      products,
		policies:      policies,
		statusChanges: statusChanges,
		generator:     generator,
		clock:         c,
	}
}

// DownloadClaimPDF devuelve el PDF y el nombre de archivo sugerido.
//
// Retorna domain.ErrNotFound si la reclamación, su cliente o su producto no existen.
func (uc *ClaimReportUseCase) DownloadClaimPDF(ctx context.Context, claimID string) (pdfBytes []byte, filename string, err error) {
	claim, err := uc.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener reclamación: %w", err)
	}
	if claim == nil {
		return nil, "", domain.NewError(domain.ErrNotFound, "reclamación no encontrada", nil)
	}

	client, err := uc.clients.GetByID(ctx, claim.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener cliente: %w", err)
	}
	if client == nil {
		return nil, "", domain.NewError(domain.ErrNotFound, "cliente de la reclamación no encontrado", nil)
	}
	product, err := uc.products.GetByID(ctx, claim.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener producto: %w", err)
	}
	if product == nil {
		return nil, "", domain.NewError(domain.ErrNotFound, "producto de la reclamación no encontrado", nil)
	}
	policy, err := uc.policies.GetByClientAndProduct(ctx, claim.ClientID, claim.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener póliza: %w", err)
	}
	history, err := uc.statusChanges.ListByEntity(ctx, entity.AuditEntityClaim, claim.ID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener bitácora: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateClaimPDF(ctx, &ClaimReport{
		Claim:       *claim,
		Client:      *client,
		Product:     *product,
		Policy:      policy,
		History:     history,
		GeneratedAt: uc.clock.Now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("reclamacion_%s.pdf", claim.ClaimNumber), nil
}
