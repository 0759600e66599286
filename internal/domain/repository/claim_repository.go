package repository

import (
	"context"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// ClaimFilter filtros opcionales del listado de reclamaciones.
type ClaimFilter struct {
	Status   entity.ClaimStatus // vacío = todos
	ClientID string
	Limit    int
	Offset   int
}

// ClaimRepository define el puerto de persistencia para Claim.
type ClaimRepository interface {
	Create(ctx context.Context, claim *entity.Claim) error
	GetByID(ctx context.Context, id string) (*entity.Claim, error)
	GetDetailByID(ctx context.Context, id string) (*entity.ClaimDetail, error)
	List(ctx context.Context, filter ClaimFilter) ([]*entity.ClaimDetail, error)
	// Update persiste monto, descripción, estado, datos de procesamiento y notas.
	Update(ctx context.Context, claim *entity.Claim) error
	CountPendingByClient(ctx context.Context, clientID string) (int, error)
	Delete(ctx context.Context, id string) error
}
