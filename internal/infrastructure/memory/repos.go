package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/insurance"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
)

// newestFirst ordena por fecha de creación descendente; a igual fecha, por ID.
func newestFirst(a, b time.Time, idA, idB string) int {
	if c := b.Compare(a); c != 0 {
		return c
	}
	return cmp.Compare(idA, idB)
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return conflict("producto")
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return notFound("producto")
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) List(_ context.Context, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if onlyActive && !p.Active {
			continue
		}
		out = append(out, &p)
	}
	slices.SortFunc(out, func(a, b *entity.Product) int { return cmp.Compare(a.Name, b.Name) })
	return page(out, limit, offset), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return notFound("producto")
	}
	delete(r.s.products, id)
	r.s.cascade(func(_, productID string) bool { return productID == id })
	return nil
}

// ClientRepo implementa repository.ClientRepository.
type ClientRepo struct{ s *Store }

func (r *ClientRepo) emailTaken(email, selfID string) bool {
	for _, c := range r.s.clients {
		if c.ID != selfID && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(c.Email, c.ID) {
		return conflict("email de cliente")
	}
	r.s.clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clients {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; !ok {
		return notFound("cliente")
	}
	if r.emailTaken(c.Email, c.ID) {
		return conflict("email de cliente")
	}
	r.s.clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) UpdateStatus(_ context.Context, id string, status entity.ClientStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return notFound("cliente")
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	r.s.clients[id] = c
	return nil
}

func (r *ClientRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(search)
	out := make([]*entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
			continue
		}
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *entity.Client) int { return cmp.Compare(a.Name, b.Name) })
	return page(out, limit, offset), nil
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[id]; !ok {
		return notFound("cliente")
	}
	delete(r.s.clients, id)
	r.s.cascade(func(clientID, _ string) bool { return clientID == id })
	return nil
}

// PolicyRepo implementa repository.PolicyRepository.
type PolicyRepo struct{ s *Store }

func (r *PolicyRepo) Create(_ context.Context, p *entity.Policy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.policies {
		if existing.PolicyNumber == p.PolicyNumber {
			return conflict("número de póliza")
		}
		if existing.ClientID == p.ClientID && existing.ProductID == p.ProductID {
			return conflict("póliza para el par cliente-producto")
		}
	}
	r.s.policies[p.ID] = *p
	return nil
}

func (r *PolicyRepo) GetByID(_ context.Context, id string) (*entity.Policy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.policies[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PolicyRepo) detail(p entity.Policy) *entity.PolicyDetail {
	d := &entity.PolicyDetail{Policy: p}
	if c, ok := r.s.clients[p.ClientID]; ok {
		d.ClientName = c.Name
	}
	if pr, ok := r.s.products[p.ProductID]; ok {
		d.ProductName = pr.Name
		d.ProductType = pr.Type
	}
	return d
}

func (r *PolicyRepo) GetDetailByID(_ context.Context, id string) (*entity.PolicyDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.policies[id]
	if !ok {
		return nil, nil
	}
	return r.detail(p), nil
}

func (r *PolicyRepo) GetByNumber(_ context.Context, number string) (*entity.Policy, error) {
	return r.find(func(p entity.Policy) bool { return p.PolicyNumber == number })
}

func (r *PolicyRepo) GetByClientAndProduct(_ context.Context, clientID, productID string) (*entity.Policy, error) {
	return r.find(func(p entity.Policy) bool { return p.ClientID == clientID && p.ProductID == productID })
}

func (r *PolicyRepo) find(match func(entity.Policy) bool) (*entity.Policy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.policies {
		if match(p) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PolicyRepo) list(match func(entity.Policy) bool) []*entity.PolicyDetail {
	out := make([]*entity.PolicyDetail, 0)
	for _, p := range r.s.policies {
		if match(p) {
			out = append(out, r.detail(p))
		}
	}
	slices.SortFunc(out, func(a, b *entity.PolicyDetail) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out
}

func (r *PolicyRepo) List(_ context.Context, limit, offset int) ([]*entity.PolicyDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.list(func(entity.Policy) bool { return true }), limit, offset), nil
}

func (r *PolicyRepo) ListByClient(_ context.Context, clientID string) ([]*entity.PolicyDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.list(func(p entity.Policy) bool { return p.ClientID == clientID }), nil
}

func (r *PolicyRepo) UpdateStatus(_ context.Context, id string, status entity.PolicyStatus, updatedAt time.Time) error {
	return r.mutate(id, func(p *entity.Policy) {
		p.Status = status
		p.UpdatedAt = updatedAt
	})
}

func (r *PolicyRepo) UpdateRenewal(_ context.Context, id string, endDate time.Time, updatedAt time.Time) error {
	return r.mutate(id, func(p *entity.Policy) {
		end := endDate
		p.EndDate = &end
		p.Status = entity.PolicyStatusActive
		p.UpdatedAt = updatedAt
	})
}

func (r *PolicyRepo) mutate(id string, fn func(*entity.Policy)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.policies[id]
	if !ok {
		return notFound("póliza")
	}
	fn(&p)
	r.s.policies[id] = p
	return nil
}

func (r *PolicyRepo) countActive(match func(entity.Policy) bool) int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.policies {
		if p.Status == entity.PolicyStatusActive && match(p) {
			n++
		}
	}
	return n
}

func (r *PolicyRepo) CountActiveByClient(_ context.Context, clientID string) (int, error) {
	return r.countActive(func(p entity.Policy) bool { return p.ClientID == clientID }), nil
}

func (r *PolicyRepo) CountActiveByProduct(_ context.Context, productID string) (int, error) {
	return r.countActive(func(p entity.Policy) bool { return p.ProductID == productID }), nil
}

func (r *PolicyRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.policies[id]; !ok {
		return notFound("póliza")
	}
	delete(r.s.policies, id)
	return nil
}

// ClaimRepo implementa repository.ClaimRepository.
type ClaimRepo struct{ s *Store }

func (r *ClaimRepo) Create(_ context.Context, c *entity.Claim) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.claims {
		if existing.ClaimNumber == c.ClaimNumber {
			return conflict("número de reclamación")
		}
	}
	r.s.claims[c.ID] = *c
	return nil
}

func (r *ClaimRepo) GetByID(_ context.Context, id string) (*entity.Claim, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.claims[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClaimRepo) detail(c entity.Claim) *entity.ClaimDetail {
	d := &entity.ClaimDetail{Claim: c}
	if cl, ok := r.s.clients[c.ClientID]; ok {
		d.ClientName = cl.Name
	}
	if p, ok := r.s.products[c.ProductID]; ok {
		d.ProductName = p.Name
		d.ProductCoverage = p.Coverage
	}
	return d
}

func (r *ClaimRepo) GetDetailByID(_ context.Context, id string) (*entity.ClaimDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.claims[id]
	if !ok {
		return nil, nil
	}
	return r.detail(c), nil
}

func (r *ClaimRepo) List(_ context.Context, f repository.ClaimFilter) ([]*entity.ClaimDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.ClaimDetail, 0)
	for _, c := range r.s.claims {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.ClientID != "" && c.ClientID != f.ClientID {
			continue
		}
		out = append(out, r.detail(c))
	}
	slices.SortFunc(out, func(a, b *entity.ClaimDetail) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return page(out, f.Limit, f.Offset), nil
}

func (r *ClaimRepo) Update(_ context.Context, c *entity.Claim) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.claims[c.ID]; !ok {
		return notFound("reclamación")
	}
	r.s.claims[c.ID] = *c
	return nil
}

func (r *ClaimRepo) CountPendingByClient(_ context.Context, clientID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, c := range r.s.claims {
		if c.ClientID == clientID && c.Status == entity.ClaimStatusPending {
			n++
		}
	}
	return n, nil
}

func (r *ClaimRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.claims[id]; !ok {
		return notFound("reclamación")
	}
	delete(r.s.claims, id)
	return nil
}

// StatusChangeRepo implementa repository.StatusChangeRepository.
type StatusChangeRepo struct{ s *Store }

func (r *StatusChangeRepo) Append(_ context.Context, c *entity.StatusChange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.changes = append(r.s.changes, *c)
	return nil
}

// ListByEntity devuelve los cambios en orden de inserción.
func (r *StatusChangeRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]*entity.StatusChange, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StatusChange, 0)
	for _, c := range r.s.changes {
		if c.EntityType == entityType && c.EntityID == entityID {
			out = append(out, &c)
		}
	}
	return out, nil
}

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return conflict("email de usuario")
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// DashboardRepo implementa repository.DashboardRepository.
type DashboardRepo struct{ s *Store }

func (r *DashboardRepo) CountPoliciesByEffectiveStatus(_ context.Context, today time.Time) ([]repository.PolicyStatusCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[entity.PolicyStatus]int)
	for _, p := range r.s.policies {
		counts[insurance.EffectivePolicyStatus(p.Status, p.EndDate, today)]++
	}
	out := make([]repository.PolicyStatusCount, 0, len(counts))
	for st, n := range counts {
		out = append(out, repository.PolicyStatusCount{Status: string(st), Count: n})
	}
	slices.SortFunc(out, func(a, b repository.PolicyStatusCount) int { return cmp.Compare(a.Status, b.Status) })
	return out, nil
}

func (r *DashboardRepo) ClaimTotalsByStatus(_ context.Context) ([]repository.ClaimStatusTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	totals := make(map[entity.ClaimStatus]*repository.ClaimStatusTotal)
	for _, c := range r.s.claims {
		t, ok := totals[c.Status]
		if !ok {
			t = &repository.ClaimStatusTotal{Status: string(c.Status)}
			totals[c.Status] = t
		}
		t.Count++
		t.Amount = t.Amount.Add(c.Amount)
	}
	out := make([]repository.ClaimStatusTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b repository.ClaimStatusTotal) int { return cmp.Compare(a.Status, b.Status) })
	return out, nil
}

func (r *DashboardRepo) CountActiveClients(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, c := range r.s.clients {
		if c.Status == entity.ClientStatusActive {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) CountActiveProducts(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if p.Active {
			n++
		}
	}
	return n, nil
}

var (
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.ClientRepository       = (*ClientRepo)(nil)
	_ repository.PolicyRepository       = (*PolicyRepo)(nil)
	_ repository.ClaimRepository        = (*ClaimRepo)(nil)
	_ repository.StatusChangeRepository = (*StatusChangeRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.DashboardRepository    = (*DashboardRepo)(nil)
)
