package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Seguros-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas read-only para el dashboard.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// CountPoliciesByEffectiveStatus aplica en SQL la misma regla de vencimiento que el dominio:
// active con end_date anterior a today se cuenta como expired.
func (r *DashboardRepo) CountPoliciesByEffectiveStatus(ctx context.Context, today time.Time) ([]repository.PolicyStatusCount, error) {
	query := `
		SELECT CASE
				WHEN status = 'active' AND end_date IS NOT NULL AND end_date < $1::date THEN 'expired'
				ELSE status
			END AS effective, COUNT(*)
		FROM policies
		GROUP BY effective
		ORDER BY effective`
	rows, err := r.pool.Query(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("dashboard policies: %w", err)
	}
	defer rows.Close()
	var out []repository.PolicyStatusCount
	for rows.Next() {
		var c repository.PolicyStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan dashboard policies: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ClaimTotalsByStatus conteo y suma de montos por estado de reclamación.
func (r *DashboardRepo) ClaimTotalsByStatus(ctx context.Context) ([]repository.ClaimStatusTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM claims GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("dashboard claims: %w", err)
	}
	defer rows.Close()
	var out []repository.ClaimStatusTotal
	for rows.Next() {
		var t repository.ClaimStatusTotal
		if err := rows.Scan(&t.Status, &t.Count, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan dashboard claims: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountActiveClients clientes con estado active.
func (r *DashboardRepo) CountActiveClients(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE status = 'active'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard clients: %w", err)
	}
	return n, nil
}

// CountActiveProducts productos marcados como activos.
func (r *DashboardRepo) CountActiveProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard products: %w", err)
	}
	return n, nil
}
