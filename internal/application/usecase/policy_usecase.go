package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/insurance"
)

// PolicyUseCase emisión, cambio de estado, renovación y borrado de pólizas.
// Todas las respuestas reportan el estado efectivo (vencimiento derivado) y el almacenado.
type PolicyUseCase struct {
	d Deps
}

// NewPolicyUseCase construye el caso de uso.
func NewPolicyUseCase(d Deps) *PolicyUseCase {
	return &PolicyUseCase{d: d.withDefaults()}
}

// Create emite una póliza activa para el par (cliente, producto).
//
// Errores: NotFound si cliente o producto no existen; InvalidArgument por fechas;
// Conflict si el par ya tiene póliza o el número suministrado ya existe.
// Si la póliza quedó persistida pero no se pudo leer enriquecida, devuelve la respuesta
// básica junto con domain.ErrCreatedIncomplete.
func (uc *PolicyUseCase) Create(ctx context.Context, in dto.CreatePolicyRequest, actorID string) (*dto.PolicyResponse, error) {
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
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	if start == nil {
		today := insurance.DateOf(now)
		start = &today
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	if err := insurance.ValidatePolicyDates(*start, end); err != nil {
		return nil, err
	}

	existing, err := uc.d.Policies.GetByClientAndProduct(ctx, client.ID, product.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewError(domain.ErrConflict,
			"el cliente ya tiene una póliza para este producto",
			map[string]any{"policy_id": existing.ID, "policy_number": existing.PolicyNumber},
		)
	}

	number := insurance.ResolveIdentifier(in.PolicyNumber, uc.d.IDs.PolicyNumber)
	if supplied := strings.TrimSpace(in.PolicyNumber); supplied != "" {
		dup, err := uc.d.Policies.GetByNumber(ctx, supplied)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, policyNumberConflict(supplied)
		}
	}

	policy := &entity.Policy{
		ID:           uuid.New().String(),
		ClientID:     client.ID,
		ProductID:    product.ID,
		PolicyNumber: number,
		StartDate:    *start,
		EndDate:      end,
		Status:       entity.PolicyStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.d.Tx.Run(ctx, func(r TxRepos) error {
		if err := r.Policies.Create(ctx, policy); err != nil {
			return err
		}
		return r.StatusChanges.Append(ctx, uc.audit(policy.ID, "", entity.PolicyStatusActive, "emisión", actorID))
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewError(domain.ErrConflict, "la póliza ya existe (número o par cliente-producto duplicado)", nil)
		}
		return nil, err
	}
	uc.d.Metrics.PolicyCreated(string(product.Type))
	uc.d.Log.Info().Str("policy_id", policy.ID).Str("policy_number", policy.PolicyNumber).Msg("póliza emitida")

	detail, err := uc.d.Policies.GetDetailByID(ctx, policy.ID)
	if err != nil || detail == nil {
		uc.d.Log.Warn().Err(err).Str("policy_id", policy.ID).Msg("póliza creada sin datos enriquecidos")
		basic := &entity.PolicyDetail{Policy: *policy, ClientName: client.Name, ProductName: product.Name, ProductType: product.Type}
		return toPolicyResponse(basic, now), incomplete(err)
	}
	return toPolicyResponse(detail, now), nil
}

// GetByID obtiene una póliza con su estado efectivo.
func (uc *PolicyUseCase) GetByID(ctx context.Context, id string) (*dto.PolicyResponse, error) {
	detail, err := uc.d.Policies.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, notFound("póliza")
	}
	return toPolicyResponse(detail, uc.d.Clock.Now()), nil
}

// List lista pólizas; cada una con el estado efectivo evaluado ahora.
func (uc *PolicyUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PolicyListResponse, error) {
	page.DefaultPage()
	list, err := uc.d.Policies.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.PolicyListResponse{
		Items: uc.toResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListByClient lista las pólizas de un cliente.
func (uc *PolicyUseCase) ListByClient(ctx context.Context, clientID string) ([]dto.PolicyResponse, error) {
	client, err := uc.d.Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, notFound("cliente")
	}
	list, err := uc.d.Policies.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// UpdateStatus cambia el estado almacenado (cualquier estado hacia cualquier otro) y registra
// las notas en la bitácora dentro de la misma transacción.
func (uc *PolicyUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdatePolicyStatusRequest, actorID string) (*dto.PolicyResponse, error) {
	target, err := insurance.ParsePolicyStatus(in.Status)
	if err != nil {
		return nil, err
	}
	policy, err := uc.d.Policies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, notFound("póliza")
	}
	now := uc.d.Clock.Now()
	old := insurance.ApplyPolicyStatus(policy, target, now)
	err = uc.d.Tx.Run(ctx, func(r TxRepos) error {
		if err := r.Policies.UpdateStatus(ctx, policy.ID, target, now); err != nil {
			return err
		}
		return r.StatusChanges.Append(ctx, uc.audit(policy.ID, old, target, in.Notes, actorID))
	})
	if err != nil {
		return nil, err
	}
	uc.d.Metrics.PolicyStatusChanged(string(old), string(target))
	uc.d.Log.Info().Str("policy_id", policy.ID).Str("from", string(old)).Str("to", string(target)).Msg("estado de póliza actualizado")
	return uc.reload(ctx, policy)
}

// Renew fija la nueva fecha fin (explícita u hoy + months, por defecto 12) y deja la póliza
// activa sin importar su estado previo, incluso cancelled o suspended.
func (uc *PolicyUseCase) Renew(ctx context.Context, id string, in dto.RenewPolicyRequest, actorID string) (*dto.PolicyResponse, error) {
	policy, err := uc.d.Policies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, notFound("póliza")
	}
	explicit, err := parseDate("new_end_date", in.NewEndDate)
	if err != nil {
		return nil, err
	}
	months := 0
	if in.Months != nil {
		months = *in.Months
	}
	now := uc.d.Clock.Now()
	newEnd, err := insurance.RenewalEndDate(now, months, explicit, uc.d.DefaultRenewalMonths)
	if err != nil {
		return nil, err
	}
	if err := insurance.ValidatePolicyDates(policy.StartDate, &newEnd); err != nil {
		return nil, err
	}
	old := insurance.ApplyRenewal(policy, newEnd, now)
	notes := "renovación hasta " + newEnd.Format(dto.DateLayout)
	if n := strings.TrimSpace(in.Notes); n != "" {
		notes += ": " + n
	}
	err = uc.d.Tx.Run(ctx, func(r TxRepos) error {
		if err := r.Policies.UpdateRenewal(ctx, policy.ID, newEnd, now); err != nil {
			return err
		}
		return r.StatusChanges.Append(ctx, uc.audit(policy.ID, old, entity.PolicyStatusActive, notes, actorID))
	})
	if err != nil {
		return nil, err
	}
	uc.d.Metrics.PolicyRenewed(string(old))
	if old != entity.PolicyStatusActive {
		uc.d.Log.Warn().Str("policy_id", policy.ID).Str("from", string(old)).Msg("renovación reactivó una póliza no activa")
	}
	return uc.reload(ctx, policy)
}

// Delete elimina la póliza sin guardas: las reclamaciones referencian cliente y producto, no la póliza.
func (uc *PolicyUseCase) Delete(ctx context.Context, id string) error {
	policy, err := uc.d.Policies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if policy == nil {
		return notFound("póliza")
	}
	return uc.d.Policies.Delete(ctx, id)
}

// History devuelve la bitácora de cambios de estado de la póliza.
func (uc *PolicyUseCase) History(ctx context.Context, id string) ([]dto.StatusChangeResponse, error) {
	policy, err := uc.d.Policies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, notFound("póliza")
	}
	list, err := uc.d.StatusChanges.ListByEntity(ctx, entity.AuditEntityPolicy, id)
	if err != nil {
		return nil, err
	}
	return toStatusChangeResponses(list), nil
}

// reload relee la póliza enriquecida tras una escritura.
func (uc *PolicyUseCase) reload(ctx context.Context, policy *entity.Policy) (*dto.PolicyResponse, error) {
	detail, err := uc.d.Policies.GetDetailByID(ctx, policy.ID)
	if err != nil {
		return nil, fmt.Errorf("releer póliza: %w", err)
	}
	if detail == nil {
		detail = &entity.PolicyDetail{Policy: *policy}
	}
	return toPolicyResponse(detail, uc.d.Clock.Now()), nil
}

func (uc *PolicyUseCase) toResponses(list []*entity.PolicyDetail) []dto.PolicyResponse {
	now := uc.d.Clock.Now()
	items := make([]dto.PolicyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPolicyResponse(p, now))
	}
	return items
}

func (uc *PolicyUseCase) audit(policyID string, old, target entity.PolicyStatus, notes, actorID string) *entity.StatusChange {
	return &entity.StatusChange{
		ID:         uuid.New().String(),
		EntityType: entity.AuditEntityPolicy,
		EntityID:   policyID,
		OldStatus:  string(old),
		NewStatus:  string(target),
		Notes:      strings.TrimSpace(notes),
		ChangedBy:  actorID,
		ChangedAt:  uc.d.Clock.Now(),
	}
}

func policyNumberConflict(number string) error {
	return domain.NewError(domain.ErrConflict, "el número de póliza ya existe", map[string]any{"policy_number": number})
}

// incomplete envuelve la causa de la lectura fallida en ErrCreatedIncomplete.
func incomplete(cause error) error {
	if cause == nil {
		return domain.ErrCreatedIncomplete
	}
	return fmt.Errorf("%w: %v", domain.ErrCreatedIncomplete, cause)
}
