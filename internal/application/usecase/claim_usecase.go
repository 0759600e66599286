package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/insurance"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
)

// ClaimUseCase radicación, decisión, edición y borrado de reclamaciones.
type ClaimUseCase struct {
	d Deps
}

// NewClaimUseCase construye el caso de uso.
func NewClaimUseCase(d Deps) *ClaimUseCase {
	return &ClaimUseCase{d: d.withDefaults()}
}

// Create radica una reclamación pendiente.
//
// Orden de validación: cliente y producto existen (NotFound), el cliente tiene póliza
// efectivamente activa para el producto (PreconditionFailed), monto <= cobertura
// (InvalidArgument con max_coverage), descripción no vacía (InvalidArgument).
// La lectura y la escritura no se serializan contra una cancelación concurrente de la póliza.
func (uc *ClaimUseCase) Create(ctx context.Context, in dto.CreateClaimRequest, actorID string) (*dto.ClaimResponse, error) {
	client, err := uc.d.Clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, notFound("cliente")
	}
	product, err := uc.d.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("producto")
	}

	now := uc.d.Clock.Now()
	policy, err := uc.d.Policies.GetByClientAndProduct(ctx, client.ID, product.ID)
	if err != nil {
		return nil, err
	}
	if !insurance.PolicyInForce(policy, now) {
		return nil, domain.NewError(domain.ErrPreconditionFailed,
			"el cliente no tiene una póliza activa para este producto",
			map[string]any{"client_id": client.ID, "product_id": product.ID},
		)
	}
	if err := insurance.ValidateClaimAmount(in.Amount, product.Coverage); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, domain.NewError(domain.ErrInvalidArgument, "description es requerida", map[string]any{"field": "description"})
	}

	claim := &entity.Claim{
		ID:            uuid.New().String(),
		ClientID:      client.ID,
		ProductID:     product.ID,
		ClaimNumber:   insurance.ResolveIdentifier(in.ClaimNumber, uc.d.IDs.ClaimNumber),
		Amount:        in.Amount,
		Description:   description,
		Status:        entity.ClaimStatusPending,
		SubmittedDate: insurance.DateOf(now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.d.Tx.Run(ctx, func(r TxRepos) error {
		if err := r.Claims.Create(ctx, claim); err != nil {
			return err
		}
		return r.StatusChanges.Append(ctx, uc.audit(claim.ID, "", entity.ClaimStatusPending, "radicación", actorID))
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewError(domain.ErrConflict, "el número de reclamación ya existe",
				map[string]any{"claim_number": claim.ClaimNumber})
		}
		return nil, err
	}
	uc.d.Metrics.ClaimCreated(string(product.Type))
	uc.d.Log.Info().Str("claim_id", claim.ID).Str("claim_number", claim.ClaimNumber).
		Str("amount", claim.Amount.String()).Msg("reclamación radicada")

	detail, err := uc.d.Claims.GetDetailByID(ctx, claim.ID)
	if err != nil || detail == nil {
		uc.d.Log.Warn().Err(err).Str("claim_id", claim.ID).Msg("reclamación creada sin datos enriquecidos")
		return toClaimResponse(&entity.ClaimDetail{Claim: *claim}), incomplete(err)
	}
	return toClaimResponse(detail), nil
}

// GetByID obtiene una reclamación con nombres de cliente y producto.
func (uc *ClaimUseCase) GetByID(ctx context.Context, id string) (*dto.ClaimResponse, error) {
	detail, err := uc.d.Claims.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, notFound("reclamación")
	}
	return toClaimResponse(detail), nil
}

// List lista reclamaciones filtrando opcionalmente por estado y cliente.
func (uc *ClaimUseCase) List(ctx context.Context, status, clientID string, page dto.PageRequest) (*dto.ClaimListResponse, error) {
	page.DefaultPage()
	filter := repository.ClaimFilter{ClientID: strings.TrimSpace(clientID), Limit: page.Limit, Offset: page.Offset}
	if strings.TrimSpace(status) != "" {
		st, err := insurance.ParseClaimStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	list, err := uc.d.Claims.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClaimResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClaimResponse(c))
	}
	return &dto.ClaimListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus mueve la reclamación a pending, approved o rejected.
// Para approved/rejected sella la fecha de proceso; el procesador por defecto es el usuario autenticado.
func (uc *ClaimUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateClaimStatusRequest, actorID string) (*dto.ClaimResponse, error) {
	target, err := insurance.ParseClaimStatus(in.Status)
	if err != nil {
		return nil, err
	}
	claim, err := uc.d.Claims.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, notFound("reclamación")
	}
	processor := strings.TrimSpace(in.ProcessorID)
	if processor == "" {
		processor = actorID
	}
	notes := strings.TrimSpace(in.Notes)
	now := uc.d.Clock.Now()
	old := insurance.ApplyClaimStatus(claim, target, processor, notes, now)
	err = uc.d.Tx.Run(ctx, func(r TxRepos) error {
		if err := r.Claims.Update(ctx, claim); err != nil {
			return err
		}
		return r.StatusChanges.Append(ctx, uc.audit(claim.ID, old, target, notes, actorID))
	})
	if err != nil {
		return nil, err
	}
	uc.d.Metrics.ClaimDecided(string(target))
	uc.d.Log.Info().Str("claim_id", claim.ID).Str("from", string(old)).Str("to", string(target)).
		Str("processor", processor).Msg("estado de reclamación actualizado")
	return uc.reload(ctx, claim)
}

// UpdateFields edita monto, descripción y notas. Monto y descripción solo cambian mientras la
// reclamación está pendiente (InvalidState si no); un monto nuevo se revalida contra la cobertura.
func (uc *ClaimUseCase) UpdateFields(ctx context.Context, id string, in dto.UpdateClaimRequest) (*dto.ClaimResponse, error) {
	claim, err := uc.d.Claims.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, notFound("reclamación")
	}
	amountChanged := in.Amount != nil && !in.Amount.Equal(claim.Amount)
	var description string
	descriptionChanged := false
	if in.Description != nil {
		description = strings.TrimSpace(*in.Description)
		descriptionChanged = description != claim.Description
	}
	if amountChanged || descriptionChanged {
		if err := insurance.CheckClaimEditable(claim.Status); err != nil {
			return nil, err
		}
	}
	if amountChanged {
		product, err := uc.d.Products.GetByID(ctx, claim.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, notFound("producto")
		}
		if err := insurance.ValidateClaimAmount(*in.Amount, product.Coverage); err != nil {
			return nil, err
		}
		claim.Amount = *in.Amount
	}
	if descriptionChanged {
		if description == "" {
			return nil, domain.NewError(domain.ErrInvalidArgument, "description no puede quedar vacía", map[string]any{"field": "description"})
		}
		claim.Description = description
	}
	if in.Notes != nil {
		claim.Notes = strings.TrimSpace(*in.Notes)
	}
	claim.UpdatedAt = uc.d.Clock.Now()
	if err := uc.d.Claims.Update(ctx, claim); err != nil {
		return nil, err
	}
	return uc.reload(ctx, claim)
}

// Delete elimina una reclamación pendiente. Las decididas son inmutables (InvalidState).
func (uc *ClaimUseCase) Delete(ctx context.Context, id string) error {
	claim, err := uc.d.Claims.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if claim == nil {
		return notFound("reclamación")
	}
	if err := insurance.CheckClaimDeletion(claim.Status); err != nil {
		uc.d.Metrics.DeletionBlocked("claim")
		return err
	}
	return uc.d.Claims.Delete(ctx, id)
}

// History devuelve la bitácora de cambios de estado de la reclamación.
func (uc *ClaimUseCase) History(ctx context.Context, id string) ([]dto.StatusChangeResponse, error) {
	claim, err := uc.d.Claims.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, notFound("reclamación")
	}
	list, err := uc.d.StatusChanges.ListByEntity(ctx, entity.AuditEntityClaim, id)
	if err != nil {
		return nil, err
	}
	return toStatusChangeResponses(list), nil
}

func (uc *ClaimUseCase) reload(ctx context.Context, claim *entity.Claim) (*dto.ClaimResponse, error) {
	detail, err := uc.d.Claims.GetDetailByID(ctx, claim.ID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		detail = &entity.ClaimDetail{Claim: *claim}
	}
	return toClaimResponse(detail), nil
}

func (uc *ClaimUseCase) audit(claimID string, old, target entity.ClaimStatus, notes, actorID string) *entity.StatusChange {
	return &entity.StatusChange{
		ID:         uuid.New().String(),
		EntityType: entity.AuditEntityClaim,
		EntityID:   claimID,
		OldStatus:  string(old),
		NewStatus:  string(target),
		Notes:      notes,
		ChangedBy:  actorID,
		ChangedAt:  uc.d.Clock.Now(),
	}
}
