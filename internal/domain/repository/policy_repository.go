package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// PolicyRepository define el puerto de persistencia para Policy.
// Create devuelve domain.ErrConflict si el número o el par (cliente, producto) ya existen.
type PolicyRepository interface {
	Create(ctx context.Context, policy *entity.Policy) error
	GetByID(ctx context.Context, id string) (*entity.Policy, error)
	GetDetailByID(ctx context.Context, id string) (*entity.PolicyDetail, error)
	GetByNumber(ctx context.Context, number string) (*entity.Policy, error)
	GetByClientAndProduct(ctx context.Context, clientID, productID string) (*entity.Policy, error)
	List(ctx context.Context, limit, offset int) ([]*entity.PolicyDetail, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.PolicyDetail, error)
	UpdateStatus(ctx context.Context, id string, status entity.PolicyStatus, updatedAt time.Time) error
	UpdateRenewal(ctx context.Context, id string, endDate time.Time, updatedAt time.Time) error
	// CountActiveByClient y CountActiveByProduct cuentan pólizas con estado almacenado active.
	CountActiveByClient(ctx context.Context, clientID string) (int, error)
	CountActiveByProduct(ctx context.Context, productID string) (int, error)
	Delete(ctx context.Context, id string) error
}
