package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
)

var _ repository.ClaimRepository = (*ClaimRepo)(nil)

const claimColumns = `k.id, k.client_id, k.product_id, k.claim_number, k.amount, k.description, k.status,
	k.submitted_date, k.processed_date, k.processed_by, k.notes, k.created_at, k.updated_at`

const claimDetailSelect = `
	SELECT ` + claimColumns + `, c.name, pr.name, pr.coverage
	FROM claims k
	JOIN clients c ON c.id = k.client_id
	JOIN products pr ON pr.id = k.product_id`

// ClaimRepo implementación del puerto ClaimRepository sobre PostgreSQL.
type ClaimRepo struct {
	q Querier
}

// NewClaimRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClaimRepository(q Querier) *ClaimRepo {
	return &ClaimRepo{q: q}
}

// Create persiste la reclamación. Número duplicado devuelve Conflict.
func (r *ClaimRepo) Create(ctx context.Context, c *entity.Claim) error {
	query := `
		INSERT INTO claims (id, client_id, product_id, claim_number, amount, description, status,
			submitted_date, processed_date, processed_by, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.ClientID, c.ProductID, c.ClaimNumber, c.Amount, c.Description, c.Status,
		c.SubmittedDate, c.ProcessedDate, c.ProcessedBy, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert claim", err)
	}
	return nil
}

// GetByID obtiene una reclamación por ID.
func (r *ClaimRepo) GetByID(ctx context.Context, id string) (*entity.Claim, error) {
	var c entity.Claim
	err := r.q.QueryRow(ctx, `SELECT `+claimColumns+` FROM claims k WHERE k.id = $1`, id).Scan(claimDest(&c)...)
	if err != nil {
		if isNoMatch(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get claim: %w", err)
	}
	return &c, nil
}

// GetDetailByID obtiene la reclamación con nombres y cobertura del producto.
func (r *ClaimRepo) GetDetailByID(ctx context.Context, id string) (*entity.ClaimDetail, error) {
	d, err := scanClaimDetail(r.q.QueryRow(ctx, claimDetailSelect+` WHERE k.id = $1`, id))
	if err != nil {
		if isNoMatch(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get claim detail: %w", err)
	}
	return d, nil
}

// List lista reclamaciones enriquecidas aplicando los filtros presentes.
func (r *ClaimRepo) List(ctx context.Context, f repository.ClaimFilter) ([]*entity.ClaimDetail, error) {
	if f.ClientID != "" && !isUUID(f.ClientID) {
		return nil, nil
	}
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("k.status = $%d", len(args)))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where = append(where, fmt.Sprintf("k.client_id = $%d", len(args)))
	}
	query := claimDetailSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY k.created_at DESC, k.id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()
	var list []*entity.ClaimDetail
	for rows.Next() {
		d, err := scanClaimDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update persiste monto, descripción, estado, datos de procesamiento y notas.
func (r *ClaimRepo) Update(ctx context.Context, c *entity.Claim) error {
	query := `
		UPDATE claims SET amount = $2, description = $3, status = $4, processed_date = $5,
			processed_by = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Amount, c.Description, c.Status, c.ProcessedDate, c.ProcessedBy, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("update claim", err)
	}
	return expectOne(tag, "reclamación")
}

// CountPendingByClient cuenta reclamaciones pendientes del cliente.
func (r *ClaimRepo) CountPendingByClient(ctx context.Context, clientID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM claims WHERE client_id = $1 AND status = 'pending'`, clientID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending claims: %w", err)
	}
	return n, nil
}

// Delete elimina la reclamación.
func (r *ClaimRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM claims WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	return expectOne(tag, "reclamación")
}

func claimDest(c *entity.Claim) []any {
	return []any{
		&c.ID, &c.ClientID, &c.ProductID, &c.ClaimNumber, &c.Amount, &c.Description, &c.Status,
		&c.SubmittedDate, &c.ProcessedDate, &c.ProcessedBy, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	}
}

func scanClaimDetail(row pgx.Row) (*entity.ClaimDetail, error) {
	var d entity.ClaimDetail
	dest := append(claimDest(&d.Claim), &d.ClientName, &d.ProductName, &d.ProductCoverage)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &d, nil
}
