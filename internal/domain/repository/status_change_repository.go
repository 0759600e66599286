package repository

import (
	"context"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// StatusChangeRepository bitácora append-only de cambios de estado.
type StatusChangeRepository interface {
	Append(ctx context.Context, change *entity.StatusChange) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.StatusChange, error)
}
