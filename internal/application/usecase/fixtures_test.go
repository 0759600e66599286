package usecase_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/application/usecase"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
	"github.com/jhoicas/Seguros-api/internal/infrastructure/memory"
	"github.com/jhoicas/Seguros-api/pkg/clock"
)

const actorID = "00000000-0000-0000-0000-0000000000aa"

// backOfficeSuite arma los casos de uso sobre el store en memoria con reloj fijo.
type backOfficeSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	clock *clock.FixedClock
	deps  usecase.Deps

	products *usecase.ProductUseCase
	clients  *usecase.ClientUseCase
	policies *usecase.PolicyUseCase
	claims   *usecase.ClaimUseCase
}

func (s *backOfficeSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.clock = clock.Fixed(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC))
	s.deps = usecase.Deps{
		Products:      s.store.Products(),
		Clients:       s.store.Clients(),
		Policies:      s.store.Policies(),
		Claims:        s.store.Claims(),
		StatusChanges: s.store.StatusChanges(),
		Tx:            memory.NewTxRunner(s.store),
		Clock:         s.clock,
	}
	s.rebuild()
}

func (s *backOfficeSuite) rebuild() {
	s.products = usecase.NewProductUseCase(s.deps)
	s.clients = usecase.NewClientUseCase(s.deps)
	s.policies = usecase.NewPolicyUseCase(s.deps)
	s.claims = usecase.NewClaimUseCase(s.deps)
}

func (s *backOfficeSuite) mustProduct(coverage int64) *dto.ProductResponse {
	p, err := s.products.Create(s.ctx, dto.CreateProductRequest{
		Name:     "Hogar Seguro",
		Type:     "home",
		Premium:  decimal.NewFromInt(50),
		Coverage: decimal.NewFromInt(coverage),
	})
	s.Require().NoError(err)
	return p
}

func (s *backOfficeSuite) mustClient(email string) *dto.ClientResponse {
	c, err := s.clients.Create(s.ctx, dto.CreateClientRequest{Name: "Laura Gómez", Email: email})
	s.Require().NoError(err)
	return c
}

func (s *backOfficeSuite) mustPolicy(clientID, productID string) *dto.PolicyResponse {
	p, err := s.policies.Create(s.ctx, dto.CreatePolicyRequest{ClientID: clientID, ProductID: productID}, actorID)
	s.Require().NoError(err)
	return p
}

func (s *backOfficeSuite) mustClaim(clientID, productID string, amount int64) *dto.ClaimResponse {
	c, err := s.claims.Create(s.ctx, dto.CreateClaimRequest{
		ClientID: clientID, ProductID: productID,
		Amount: decimal.NewFromInt(amount), Description: "daño por agua",
	}, actorID)
	s.Require().NoError(err)
	return c
}

func str(s string) *string { return &s }

// failingClaimDetails simula que la lectura enriquecida falla tras el commit.
type failingClaimDetails struct {
	repository.ClaimRepository
}

func (failingClaimDetails) GetDetailByID(context.Context, string) (*entity.ClaimDetail, error) {
	return nil, errors.New("conexión perdida")
}

// failingPolicyDetails simula lo mismo para pólizas.
type failingPolicyDetails struct {
	repository.PolicyRepository
}

func (failingPolicyDetails) GetDetailByID(context.Context, string) (*entity.PolicyDetail, error) {
	return nil, errors.New("conexión perdida")
}

// recorder cuenta los eventos emitidos por los casos de uso.
type recorder struct {
	usecase.NopRecorder
	claimsDecided []string
	blocked       []string
	renewedFrom   []string
}

func (r *recorder) ClaimDecided(status string)  { r.claimsDecided = append(r.claimsDecided, status) }
func (r *recorder) DeletionBlocked(kind string) { r.blocked = append(r.blocked, kind) }
func (r *recorder) PolicyRenewed(from string)   { r.renewedFrom = append(r.renewedFrom, from) }
