// Package memory implementa los puertos de persistencia en memoria.
// Sirve para desarrollo local (STORAGE_DRIVER=memory) y para las pruebas de casos de uso y HTTP.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/Seguros-api/internal/application/usecase"
	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	products map[string]entity.Product
	clients  map[string]entity.Client
	policies map[string]entity.Policy
	claims   map[string]entity.Claim
	changes  []entity.StatusChange
	users    map[string]entity.User
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		products: make(map[string]entity.Product),
		clients:  make(map[string]entity.Client),
		policies: make(map[string]entity.Policy),
		claims:   make(map[string]entity.Claim),
		users:    make(map[string]entity.User),
	}
}

func (s *Store) Products() *ProductRepo           { return &ProductRepo{s: s} }
func (s *Store) Clients() *ClientRepo             { return &ClientRepo{s: s} }
func (s *Store) Policies() *PolicyRepo            { return &PolicyRepo{s: s} }
func (s *Store) Claims() *ClaimRepo               { return &ClaimRepo{s: s} }
func (s *Store) StatusChanges() *StatusChangeRepo { return &StatusChangeRepo{s: s} }
func (s *Store) Users() *UserRepo                 { return &UserRepo{s: s} }
func (s *Store) Dashboard() *DashboardRepo        { return &DashboardRepo{s: s} }

type snapshot struct {
	products map[string]entity.Product
	clients  map[string]entity.Client
	policies map[string]entity.Policy
	claims   map[string]entity.Claim
	changes  []entity.StatusChange
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		products: maps.Clone(s.products),
		clients:  maps.Clone(s.clients),
		policies: maps.Clone(s.policies),
		claims:   maps.Clone(s.claims),
		changes:  slices.Clone(s.changes),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.clients = snap.clients
	s.policies = snap.policies
	s.claims = snap.claims
	s.changes = snap.changes
}

// TxRunner serializa las transacciones y descarta sus escrituras si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner transaccional sobre s.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run implementa usecase.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(repos usecase.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	err := fn(usecase.TxRepos{
		Clients:       t.s.Clients(),
		Policies:      t.s.Policies(),
		Claims:        t.s.Claims(),
		StatusChanges: t.s.StatusChanges(),
	})
	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// cascade borra pólizas y reclamaciones del cliente o producto eliminado (ON DELETE CASCADE).
// Requiere mu tomado en escritura.
func (s *Store) cascade(match func(clientID, productID string) bool) {
	maps.DeleteFunc(s.policies, func(_ string, p entity.Policy) bool { return match(p.ClientID, p.ProductID) })
	maps.DeleteFunc(s.claims, func(_ string, c entity.Claim) bool { return match(c.ClientID, c.ProductID) })
}

func conflict(what string) error {
	return fmt.Errorf("memory: %s duplicado: %w", what, domain.ErrConflict)
}

func notFound(what string) error {
	return fmt.Errorf("memory: %s: %w", what, domain.ErrNotFound)
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
