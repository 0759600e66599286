package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Seguros-api/internal/application/usecase"
	"github.com/jhoicas/Seguros-api/internal/domain"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
	now   time.Time
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) newClient(email string) *entity.Client {
	c := &entity.Client{ID: uuid.NewString(), Name: "Ana", Email: email, Status: entity.ClientStatusActive, CreatedAt: s.now}
	s.Require().NoError(s.store.Clients().Create(s.ctx, c))
	return c
}

func (s *StoreSuite) newProduct() *entity.Product {
	p := &entity.Product{ID: uuid.NewString(), Name: "Auto Plus", Type: entity.ProductTypeAuto, Coverage: decimal.NewFromInt(1000), Active: true}
	s.Require().NoError(s.store.Products().Create(s.ctx, p))
	return p
}

func (s *StoreSuite) newPolicy(clientID, productID, number string) *entity.Policy {
	return &entity.Policy{
		ID: uuid.NewString(), ClientID: clientID, ProductID: productID, PolicyNumber: number,
		StartDate: s.now, Status: entity.PolicyStatusActive, CreatedAt: s.now,
	}
}

func (s *StoreSuite) TestUniqueness() {
	s.Run("email de cliente duplicado sin distinguir mayúsculas", func() {
		s.newClient("ana@example.com")
		err := s.store.Clients().Create(s.ctx, &entity.Client{ID: uuid.NewString(), Email: "ANA@example.com"})
		s.Require().ErrorIs(err, domain.ErrConflict)
	})

	s.Run("par cliente-producto y número de póliza", func() {
		c := s.newClient("pair@example.com")
		p := s.newProduct()
		s.Require().NoError(s.store.Policies().Create(s.ctx, s.newPolicy(c.ID, p.ID, "POL-1")))

		err := s.store.Policies().Create(s.ctx, s.newPolicy(c.ID, p.ID, "POL-2"))
		s.Require().ErrorIs(err, domain.ErrConflict)

		other := s.newProduct()
		err = s.store.Policies().Create(s.ctx, s.newPolicy(c.ID, other.ID, "POL-1"))
		s.Require().ErrorIs(err, domain.ErrConflict)
	})
}

func (s *StoreSuite) TestLookupsReturnNilWhenMissing() {
	p, err := s.store.Products().GetByID(s.ctx, "nope")
	s.Require().NoError(err)
	s.Nil(p)

	c, err := s.store.Clients().GetByEmail(s.ctx, "nope@example.com")
	s.Require().NoError(err)
	s.Nil(c)

	pol, err := s.store.Policies().GetByClientAndProduct(s.ctx, "a", "b")
	s.Require().NoError(err)
	s.Nil(pol)
}

func (s *StoreSuite) TestCopiesAreIsolated() {
	c := s.newClient("iso@example.com")
	c.Name = "cambiado fuera del store"

	got, err := s.store.Clients().GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Ana", got.Name)
}

func (s *StoreSuite) TestTxRollback() {
	c := s.newClient("tx@example.com")
	p := s.newProduct()
	runner := NewTxRunner(s.store)
	boom := errors.New("boom")

	err := runner.Run(s.ctx, func(r usecase.TxRepos) error {
		s.Require().NoError(r.Policies.Create(s.ctx, s.newPolicy(c.ID, p.ID, "POL-TX")))
		s.Require().NoError(r.StatusChanges.Append(s.ctx, &entity.StatusChange{EntityType: entity.AuditEntityPolicy, EntityID: "x"}))
		return boom
	})
	s.Require().ErrorIs(err, boom)

	got, err := s.store.Policies().GetByNumber(s.ctx, "POL-TX")
	s.Require().NoError(err)
	s.Nil(got, "la póliza no debe sobrevivir al rollback")

	changes, err := s.store.StatusChanges().ListByEntity(s.ctx, entity.AuditEntityPolicy, "x")
	s.Require().NoError(err)
	s.Empty(changes)
}

func (s *StoreSuite) TestCountsUseStoredStatus() {
	c := s.newClient("count@example.com")
	p := s.newProduct()
	expired := s.newPolicy(c.ID, p.ID, "POL-OLD")
	end := s.now.AddDate(-1, 0, 0)
	expired.EndDate = &end
	s.Require().NoError(s.store.Policies().Create(s.ctx, expired))

	n, err := s.store.Policies().CountActiveByClient(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(1, n, "el conteo usa el estado almacenado, no el efectivo")

	byStatus, err := s.store.Dashboard().CountPoliciesByEffectiveStatus(s.ctx, s.now)
	s.Require().NoError(err)
	s.Equal([]repository.PolicyStatusCount{{Status: "expired", Count: 1}}, byStatus)
}

func (s *StoreSuite) TestClaimListFilters() {
	c := s.newClient("claims@example.com")
	p := s.newProduct()
	for i, st := range []entity.ClaimStatus{entity.ClaimStatusPending, entity.ClaimStatusApproved, entity.ClaimStatusPending} {
		s.Require().NoError(s.store.Claims().Create(s.ctx, &entity.Claim{
			ID: uuid.NewString(), ClientID: c.ID, ProductID: p.ID,
			ClaimNumber: "CLM-" + string(rune('A'+i)), Amount: decimal.NewFromInt(100), Status: st,
			CreatedAt: s.now.Add(time.Duration(i) * time.Minute),
		}))
	}

	pending, err := s.store.Claims().List(s.ctx, repository.ClaimFilter{Status: entity.ClaimStatusPending})
	s.Require().NoError(err)
	s.Len(pending, 2)
	s.Equal("CLM-C", pending[0].ClaimNumber, "más reciente primero")
	s.Equal("Ana", pending[0].ClientName)
	s.True(pending[0].ProductCoverage.Equal(decimal.NewFromInt(1000)))

	n, err := s.store.Claims().CountPendingByClient(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(2, n)

	totals, err := s.store.Dashboard().ClaimTotalsByStatus(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(totals, 2)
	s.Equal("approved", totals[0].Status)
	s.True(totals[1].Amount.Equal(decimal.NewFromInt(200)))
}

func (s *StoreSuite) TestDeleteCascades() {
	c := s.newClient("cascade@example.com")
	other := s.newClient("keep@example.com")
	p := s.newProduct()
	s.Require().NoError(s.store.Policies().Create(s.ctx, s.newPolicy(c.ID, p.ID, "POL-C1")))
	s.Require().NoError(s.store.Policies().Create(s.ctx, s.newPolicy(other.ID, p.ID, "POL-K1")))
	s.Require().NoError(s.store.Claims().Create(s.ctx, &entity.Claim{
		ID: uuid.NewString(), ClientID: c.ID, ProductID: p.ID, ClaimNumber: "CLM-C1",
		Amount: decimal.NewFromInt(10), Status: entity.ClaimStatusApproved, CreatedAt: s.now,
	}))

	s.Require().NoError(s.store.Clients().Delete(s.ctx, c.ID))

	policies, err := s.store.Policies().List(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(policies, 1)
	s.Equal("POL-K1", policies[0].PolicyNumber)

	claims, err := s.store.Claims().List(s.ctx, repository.ClaimFilter{})
	s.Require().NoError(err)
	s.Empty(claims)

	totals, err := s.store.Dashboard().ClaimTotalsByStatus(s.ctx)
	s.Require().NoError(err)
	s.Empty(totals)

	s.Require().NoError(s.store.Products().Delete(s.ctx, p.ID))
	policies, err = s.store.Policies().List(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Empty(policies)
}
