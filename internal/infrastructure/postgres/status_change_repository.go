package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
)

var _ repository.StatusChangeRepository = (*StatusChangeRepo)(nil)

// StatusChangeRepo bitácora append-only sobre PostgreSQL; no expone update ni delete.
type StatusChangeRepo struct {
	q Querier
}

// NewStatusChangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatusChangeRepository(q Querier) *StatusChangeRepo {
	return &StatusChangeRepo{q: q}
}

// Append inserta un cambio de estado.
func (r *StatusChangeRepo) Append(ctx context.Context, c *entity.StatusChange) error {
	query := `
		INSERT INTO status_changes (id, entity_type, entity_id, old_status, new_status, notes, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.EntityType, c.EntityID, c.OldStatus, c.NewStatus, c.Notes, c.ChangedBy, c.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert status change: %w", err)
	}
	return nil
}

// ListByEntity devuelve la bitácora de una entidad en orden de inserción.
func (r *StatusChangeRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.StatusChange, error) {
	if !isUUID(entityID) {
		return nil, nil
	}
	query := `
		SELECT id, entity_type, entity_id, old_status, new_status, notes, changed_by, changed_at
		FROM status_changes WHERE entity_type = $1 AND entity_id = $2 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list status changes: %w", err)
	}
	defer rows.Close()
	var list []*entity.StatusChange
	for rows.Next() {
		var c entity.StatusChange
		if err := rows.Scan(&c.ID, &c.EntityType, &c.EntityID, &c.OldStatus, &c.NewStatus, &c.Notes, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
