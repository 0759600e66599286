package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/domain"
)

type PolicyUseCaseSuite struct {
	backOfficeSuite
}

func TestPolicyUseCaseSuite(t *testing.T) {
	suite.Run(t, new(PolicyUseCaseSuite))
}

func (s *PolicyUseCaseSuite) TestCreate() {
	product := s.mustProduct(5000)
	client := s.mustClient("policy@example.com")

	s.Run("emite activa con número generado e inicio hoy", func() {
		p := s.mustPolicy(client.ID, product.ID)
		s.Regexp(`^POL-\d+$`, p.PolicyNumber)
		s.Equal("active", p.Status)
		s.Equal("active", p.StoredStatus)
		s.Equal("2025-01-15", p.StartDate)
		s.Nil(p.EndDate)
		s.Equal("Laura Gómez", p.ClientName)
		s.Equal("home", p.ProductType)
	})

	s.Run("segunda póliza para el mismo par falla con Conflict", func() {
		_, err := s.policies.Create(s.ctx, dto.CreatePolicyRequest{ClientID: client.ID, ProductID: product.ID}, actorID)
		s.Require().ErrorIs(err, domain.ErrConflict)
		s.Contains(domain.Details(err), "policy_number")
	})

	s.Run("número suministrado duplicado", func() {
		other := s.mustClient("other@example.com")
		_, err := s.policies.Create(s.ctx, dto.CreatePolicyRequest{ClientID: other.ID, ProductID: product.ID, PolicyNumber: "POL-X"}, actorID)
		s.Require().NoError(err)

		third := s.mustClient("third@example.com")
		_, err = s.policies.Create(s.ctx, dto.CreatePolicyRequest{ClientID: third.ID, ProductID: product.ID, PolicyNumber: "POL-X"}, actorID)
		s.Require().ErrorIs(err, domain.ErrConflict)
	})

	s.Run("fin anterior al inicio", func() {
		c := s.mustClient("dates@example.com")
		_, err := s.policies.Create(s.ctx, dto.CreatePolicyRequest{
			ClientID: c.ID, ProductID: product.ID, StartDate: str("2025-02-01"), EndDate: str("2025-01-31"),
		}, actorID)
		s.Require().ErrorIs(err, domain.ErrInvalidArgument)
	})

	s.Run("fecha mal formada", func() {
		c := s.mustClient("baddate@example.com")
		_, err := s.policies.Create(s.ctx, dto.CreatePolicyRequest{ClientID: c.ID, ProductID: product.ID, StartDate: str("15/01/2025")}, actorID)
		s.Require().ErrorIs(err, domain.ErrInvalidArgument)
	})

	s.Run("cliente inexistente", func() {
		_, err := s.policies.Create(s.ctx, dto.CreatePolicyRequest{ClientID: "nope", ProductID: product.ID}, actorID)
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})
}

func (s *PolicyUseCaseSuite) TestCreateIncomplete() {
	product := s.mustProduct(5000)
	client := s.mustClient("partial@example.com")
	s.deps.Policies = failingPolicyDetails{PolicyRepository: s.store.Policies()}
	s.rebuild()

	p, err := s.policies.Create(s.ctx, dto.CreatePolicyRequest{ClientID: client.ID, ProductID: product.ID}, actorID)
	s.Require().ErrorIs(err, domain.ErrCreatedIncomplete)
	s.Require().NotNil(p)
	s.Equal("Laura Gómez", p.ClientName)
}

func (s *PolicyUseCaseSuite) TestDerivedExpiry() {
	product := s.mustProduct(5000)
	client := s.mustClient("expiry@example.com")
	p, err := s.policies.Create(s.ctx, dto.CreatePolicyRequest{
		ClientID: client.ID, ProductID: product.ID, StartDate: str("2023-01-01"), EndDate: str("2024-01-01"),
	}, actorID)
	s.Require().NoError(err)

	s.clock.Set(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	got, err := s.policies.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("expired", got.Status)
	s.Equal("active", got.StoredStatus, "el vencimiento no se escribe")

	s.clock.Set(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))
	got, err = s.policies.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("active", got.Status)

	s.clock.Set(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC))
	list, err := s.policies.List(s.ctx, dto.PageRequest{})
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal("active", list.Items[0].Status, "el día de fin la póliza sigue vigente")
}

func (s *PolicyUseCaseSuite) TestUpdateStatus() {
	product := s.mustProduct(5000)
	client := s.mustClient("ustatus@example.com")
	p := s.mustPolicy(client.ID, product.ID)

	for _, target := range []string{"suspended", "cancelled", "inactive", "expired", "active"} {
		got, err := s.policies.UpdateStatus(s.ctx, p.ID, dto.UpdatePolicyStatusRequest{Status: target, Notes: "cambio a " + target}, actorID)
		s.Require().NoError(err)
		s.Equal(target, got.StoredStatus)
	}

	_, err := s.policies.UpdateStatus(s.ctx, p.ID, dto.UpdatePolicyStatusRequest{Status: "archived"}, actorID)
	s.Require().ErrorIs(err, domain.ErrInvalidArgument)

	_, err = s.policies.UpdateStatus(s.ctx, "nope", dto.UpdatePolicyStatusRequest{Status: "active"}, actorID)
	s.Require().ErrorIs(err, domain.ErrNotFound)

	history, err := s.policies.History(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 6)
	s.Equal("", history[0].OldStatus)
	s.Equal("cambio a suspended", history[1].Notes)
	s.Equal(actorID, history[1].ChangedBy)
}

func (s *PolicyUseCaseSuite) TestRenew() {
	rec := &recorder{}
	s.deps.Metrics = rec
	s.rebuild()
	product := s.mustProduct(5000)

	s.Run("doce meses desde hoy", func() {
		client := s.mustClient("renew@example.com")
		p := s.mustPolicy(client.ID, product.ID)
		months := 12
		got, err := s.policies.Renew(s.ctx, p.ID, dto.RenewPolicyRequest{Months: &months}, actorID)
		s.Require().NoError(err)
		s.Equal("active", got.StoredStatus)
		s.Require().NotNil(got.EndDate)
		s.Equal("2026-01-15", *got.EndDate)
	})

	s.Run("renovar una cancelada la reactiva", func() {
		client := s.mustClient("renew-cancelled@example.com")
		p := s.mustPolicy(client.ID, product.ID)
		_, err := s.policies.UpdateStatus(s.ctx, p.ID, dto.UpdatePolicyStatusRequest{Status: "cancelled"}, actorID)
		s.Require().NoError(err)

		got, err := s.policies.Renew(s.ctx, p.ID, dto.RenewPolicyRequest{NewEndDate: str("2025-06-30")}, actorID)
		s.Require().NoError(err)
		s.Equal("active", got.Status)
		s.Equal("2025-06-30", *got.EndDate)
		s.Contains(rec.renewedFrom, "cancelled")

		history, err := s.policies.History(s.ctx, p.ID)
		s.Require().NoError(err)
		last := history[len(history)-1]
		s.Equal("cancelled", last.OldStatus)
		s.Equal("renovación hasta 2025-06-30", last.Notes)
	})

	s.Run("fecha explícita en el pasado", func() {
		client := s.mustClient("renew-past@example.com")
		p := s.mustPolicy(client.ID, product.ID)
		_, err := s.policies.Renew(s.ctx, p.ID, dto.RenewPolicyRequest{NewEndDate: str("2025-01-14")}, actorID)
		s.Require().ErrorIs(err, domain.ErrInvalidArgument)
	})

	s.Run("fin anterior al inicio de una póliza futura", func() {
		client := s.mustClient("renew-future@example.com")
		p, err := s.policies.Create(s.ctx, dto.CreatePolicyRequest{
			ClientID: client.ID, ProductID: product.ID, StartDate: str("2025-12-01"),
		}, actorID)
		s.Require().NoError(err)

		_, err = s.policies.Renew(s.ctx, p.ID, dto.RenewPolicyRequest{NewEndDate: str("2025-02-01")}, actorID)
		s.Require().ErrorIs(err, domain.ErrInvalidArgument)
		s.Equal("end_date", domain.Details(err)["field"])

		months := 3
		_, err = s.policies.Renew(s.ctx, p.ID, dto.RenewPolicyRequest{Months: &months}, actorID)
		s.Require().ErrorIs(err, domain.ErrInvalidArgument)

		got, err := s.policies.GetByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Nil(got.EndDate)
	})

	s.Run("sin parámetros usa el período por defecto", func() {
		client := s.mustClient("renew-default@example.com")
		p := s.mustPolicy(client.ID, product.ID)
		got, err := s.policies.Renew(s.ctx, p.ID, dto.RenewPolicyRequest{}, actorID)
		s.Require().NoError(err)
		s.Equal("2026-01-15", *got.EndDate)
	})

	s.Run("póliza inexistente", func() {
		_, err := s.policies.Renew(s.ctx, "nope", dto.RenewPolicyRequest{}, actorID)
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})
}

func (s *PolicyUseCaseSuite) TestDeleteIsUnconditional() {
	product := s.mustProduct(5000)
	client := s.mustClient("pdel@example.com")
	p := s.mustPolicy(client.ID, product.ID)
	s.mustClaim(client.ID, product.ID, 100)

	s.Require().NoError(s.policies.Delete(s.ctx, p.ID))
	s.Require().ErrorIs(s.policies.Delete(s.ctx, p.ID), domain.ErrNotFound)

	list, err := s.policies.ListByClient(s.ctx, client.ID)
	s.Require().NoError(err)
	s.Empty(list)

	claims, err := s.claims.List(s.ctx, "", client.ID, dto.PageRequest{})
	s.Require().NoError(err)
	s.Len(claims.Items, 1, "las reclamaciones sobreviven al borrado de la póliza")
}
