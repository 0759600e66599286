package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/insurance"
)

// ClientUseCase casos de uso para asegurados: CRUD, cambio de estado y borrado protegido.
type ClientUseCase struct {
	d Deps
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(d Deps) *ClientUseCase {
	return &ClientUseCase{d: d.withDefaults()}
}

// Create crea un cliente activo. Devuelve Conflict si el email ya existe.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" {
		return nil, domain.NewError(domain.ErrInvalidArgument, "name y email son requeridos", nil)
	}
	dob, err := parseDate("date_of_birth", in.DateOfBirth)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}
	now := uc.d.Clock.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(in.Phone),
		DateOfBirth: dob,
		Address:     strings.TrimSpace(in.Address),
		Status:      entity.ClientStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.d.Clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.d.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, notFound("cliente")
	}
	return toClientResponse(client), nil
}

// List lista clientes; search filtra por nombre o email (contiene, sin distinguir mayúsculas).
func (uc *ClientUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, err := uc.d.Clients.List(ctx, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza datos de contacto. El estado se cambia con UpdateStatus.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.d.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, notFound("cliente")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewError(domain.ErrInvalidArgument, "name no puede quedar vacío", map[string]any{"field": "name"})
		}
		client.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.NewError(domain.ErrInvalidArgument, "email no puede quedar vacío", map[string]any{"field": "email"})
		}
		if email != client.Email {
			if err := uc.ensureEmailFree(ctx, email, client.ID); err != nil {
				return nil, err
			}
			client.Email = email
		}
	}
	if in.Phone != nil {
		client.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.DateOfBirth != nil {
		dob, err := parseDate("date_of_birth", in.DateOfBirth)
		if err != nil {
			return nil, err
		}
		client.DateOfBirth = dob
	}
	if in.Address != nil {
		client.Address = strings.TrimSpace(*in.Address)
	}
	client.UpdatedAt = uc.d.Clock.Now()
	if err := uc.d.Clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// UpdateStatus activa o desactiva el cliente. Desactivar no se bloquea por pólizas activas.
func (uc *ClientUseCase) UpdateStatus(ctx context.Context, id, status, actorID string) (*dto.ClientResponse, error) {
	target, err := insurance.ParseClientStatus(status)
	if err != nil {
		return nil, err
	}
	client, err := uc.d.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, notFound("cliente")
	}
	now := uc.d.Clock.Now()
	old := insurance.ApplyClientStatus(client, target, now)
	err = uc.d.Tx.Run(ctx, func(r TxRepos) error {
		if err := r.Clients.UpdateStatus(ctx, client.ID, target); err != nil {
			return err
		}
		return r.StatusChanges.Append(ctx, &entity.StatusChange{
			ID:         uuid.New().String(),
			EntityType: entity.AuditEntityClient,
			EntityID:   client.ID,
			OldStatus:  string(old),
			NewStatus:  string(target),
			ChangedBy:  actorID,
			ChangedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina el cliente si no tiene pólizas activas ni reclamaciones pendientes.
// El error de conflicto reporta active_policies y pending_claims.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	client, err := uc.d.Clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return notFound("cliente")
	}
	activePolicies, err := uc.d.Policies.CountActiveByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("contar pólizas activas del cliente: %w", err)
	}
	pendingClaims, err := uc.d.Claims.CountPendingByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("contar reclamaciones pendientes del cliente: %w", err)
	}
	if err := insurance.CheckClientDeletion(activePolicies, pendingClaims); err != nil {
		uc.d.Metrics.DeletionBlocked("client")
		uc.d.Log.Warn().Str("client_id", id).
			Int("active_policies", activePolicies).Int("pending_claims", pendingClaims).
			Msg("borrado de cliente bloqueado")
		return err
	}
	return uc.d.Clients.Delete(ctx, id)
}

func (uc *ClientUseCase) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := uc.d.Clients.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewError(domain.ErrConflict, "ya existe un cliente con ese email", map[string]any{"field": "email"})
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
