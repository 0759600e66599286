package repository

import (
	"context"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// Los Get* devuelven (nil, nil) si no hay coincidencia; Create/Update devuelven domain.ErrConflict
// ante email duplicado.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	UpdateStatus(ctx context.Context, id string, status entity.ClientStatus) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Client, error)
	Delete(ctx context.Context, id string) error
}
