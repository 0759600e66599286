package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
)

var _ repository.PolicyRepository = (*PolicyRepo)(nil)

const policyColumns = `p.id, p.client_id, p.product_id, p.policy_number, p.start_date, p.end_date, p.status, p.created_at, p.updated_at`

const policyDetailSelect = `
	SELECT ` + policyColumns + `, c.name, pr.name, pr.type
	FROM policies p
	JOIN clients c ON c.id = p.client_id
	JOIN products pr ON pr.id = p.product_id`

// PolicyRepo implementación del puerto PolicyRepository sobre PostgreSQL.
type PolicyRepo struct {
	q Querier
}

// NewPolicyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPolicyRepository(q Querier) *PolicyRepo {
	return &PolicyRepo{q: q}
}

// Create persiste la póliza. Número o par (cliente, producto) repetido devuelve Conflict.
func (r *PolicyRepo) Create(ctx context.Context, p *entity.Policy) error {
	query := `
		INSERT INTO policies (id, client_id, product_id, policy_number, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ClientID, p.ProductID, p.PolicyNumber, p.StartDate, p.EndDate, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert policy", err)
	}
	return nil
}

// GetByID obtiene una póliza por ID.
func (r *PolicyRepo) GetByID(ctx context.Context, id string) (*entity.Policy, error) {
	return r.getOne(ctx, `SELECT `+policyColumns+` FROM policies p WHERE p.id = $1`, id)
}

// GetByNumber obtiene una póliza por número.
func (r *PolicyRepo) GetByNumber(ctx context.Context, number string) (*entity.Policy, error) {
	return r.getOne(ctx, `SELECT `+policyColumns+` FROM policies p WHERE p.policy_number = $1`, number)
}

// GetByClientAndProduct obtiene la póliza del par (a lo sumo una por la restricción única).
func (r *PolicyRepo) GetByClientAndProduct(ctx context.Context, clientID, productID string) (*entity.Policy, error) {
	return r.getOne(ctx, `SELECT `+policyColumns+` FROM policies p WHERE p.client_id = $1 AND p.product_id = $2`, clientID, productID)
}

func (r *PolicyRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Policy, error) {
	var p entity.Policy
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.ClientID, &p.ProductID, &p.PolicyNumber, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoMatch(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get policy: %w", err)
	}
	return &p, nil
}

// GetDetailByID obtiene la póliza con nombres de cliente y producto.
func (r *PolicyRepo) GetDetailByID(ctx context.Context, id string) (*entity.PolicyDetail, error) {
	d, err := scanPolicyDetail(r.q.QueryRow(ctx, policyDetailSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoMatch(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get policy detail: %w", err)
	}
	return d, nil
}

// List lista pólizas enriquecidas, más recientes primero.
func (r *PolicyRepo) List(ctx context.Context, limit, offset int) ([]*entity.PolicyDetail, error) {
	return r.listDetails(ctx, policyDetailSelect+` ORDER BY p.created_at DESC, p.id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByClient lista las pólizas de un cliente.
func (r *PolicyRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.PolicyDetail, error) {
	if !isUUID(clientID) {
		return nil, nil
	}
	return r.listDetails(ctx, policyDetailSelect+` WHERE p.client_id = $1 ORDER BY p.created_at DESC, p.id`, clientID)
}

func (r *PolicyRepo) listDetails(ctx context.Context, query string, args ...any) ([]*entity.PolicyDetail, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()
	var list []*entity.PolicyDetail
	for rows.Next() {
		d, err := scanPolicyDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado almacenado.
func (r *PolicyRepo) UpdateStatus(ctx context.Context, id string, status entity.PolicyStatus, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE policies SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update policy status: %w", err)
	}
	return expectOne(tag, "póliza")
}

// UpdateRenewal fija la nueva fecha fin y deja la póliza activa.
func (r *PolicyRepo) UpdateRenewal(ctx context.Context, id string, endDate time.Time, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE policies SET end_date = $2, status = 'active', updated_at = $3 WHERE id = $1`,
		id, endDate, updatedAt,
	)
	if err != nil {
		return wrapWrite("renew policy", err)
	}
	return expectOne(tag, "póliza")
}

// CountActiveByClient cuenta pólizas con estado almacenado active.
func (r *PolicyRepo) CountActiveByClient(ctx context.Context, clientID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM policies WHERE client_id = $1 AND status = 'active'`, clientID)
}

// CountActiveByProduct cuenta pólizas con estado almacenado active.
func (r *PolicyRepo) CountActiveByProduct(ctx context.Context, productID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM policies WHERE product_id = $1 AND status = 'active'`, productID)
}

func (r *PolicyRepo) count(ctx context.Context, query string, arg any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("count policies: %w", err)
	}
	return n, nil
}

// Delete elimina la póliza.
func (r *PolicyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	return expectOne(tag, "póliza")
}

func scanPolicyDetail(row pgx.Row) (*entity.PolicyDetail, error) {
	var d entity.PolicyDetail
	err := row.Scan(
		&d.ID, &d.ClientID, &d.ProductID, &d.PolicyNumber, &d.StartDate, &d.EndDate, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.ClientName, &d.ProductName, &d.ProductType,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
