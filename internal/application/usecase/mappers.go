package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/insurance"
)

// parseDate convierte YYYY-MM-DD; nil o vacío devuelve nil.
func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, domain.NewError(domain.ErrInvalidArgument,
			field+" debe tener formato YYYY-MM-DD",
			map[string]any{"field": field},
		)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}

func notFound(what string) error {
	return domain.NewError(domain.ErrNotFound, what+" no encontrado", nil)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        string(p.Type),
		Premium:     p.Premium,
		Coverage:    p.Coverage,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		DateOfBirth: formatDate(c.DateOfBirth),
		Address:     c.Address,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// toPolicyResponse aplica el vencimiento derivado a la fecha now.
func toPolicyResponse(d *entity.PolicyDetail, now time.Time) *dto.PolicyResponse {
	if d == nil {
		return nil
	}
	p := d.Policy
	return &dto.PolicyResponse{
		ID:           p.ID,
		ClientID:     p.ClientID,
		ClientName:   d.ClientName,
		ProductID:    p.ProductID,
		ProductName:  d.ProductName,
		ProductType:  string(d.ProductType),
		PolicyNumber: p.PolicyNumber,
		StartDate:    p.StartDate.Format(dto.DateLayout),
		EndDate:      formatDate(p.EndDate),
		Status:       string(insurance.EffectivePolicyStatus(p.Status, p.EndDate, now)),
		StoredStatus: string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toClaimResponse(d *entity.ClaimDetail) *dto.ClaimResponse {
	if d == nil {
		return nil
	}
	c := d.Claim
	return &dto.ClaimResponse{
		ID:            c.ID,
		ClientID:      c.ClientID,
		ClientName:    d.ClientName,
		ProductID:     c.ProductID,
		ProductName:   d.ProductName,
		ClaimNumber:   c.ClaimNumber,
		Amount:        c.Amount,
		Description:   c.Description,
		Status:        string(c.Status),
		SubmittedDate: c.SubmittedDate.Format(dto.DateLayout),
		ProcessedDate: formatDate(c.ProcessedDate),
		ProcessedBy:   c.ProcessedBy,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toStatusChangeResponses(list []*entity.StatusChange) []dto.StatusChangeResponse {
	out := make([]dto.StatusChangeResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StatusChangeResponse{
			ID:         s.ID,
			EntityType: s.EntityType,
			EntityID:   s.EntityID,
			OldStatus:  s.OldStatus,
			NewStatus:  s.NewStatus,
			Notes:      s.Notes,
			ChangedBy:  s.ChangedBy,
			ChangedAt:  s.ChangedAt,
		})
	}
	return out
}
