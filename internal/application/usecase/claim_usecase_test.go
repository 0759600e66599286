package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/domain"
)

type ClaimUseCaseSuite struct {
	backOfficeSuite
}

func TestClaimUseCaseSuite(t *testing.T) {
	suite.Run(t, new(ClaimUseCaseSuite))
}

func (s *ClaimUseCaseSuite) TestCreate() {
	s.Run("radica pendiente con número generado y fecha de hoy", func() {
		product := s.mustProduct(1000)
		client := s.mustClient("ok@example.com")
		s.mustPolicy(client.ID, product.ID)

		claim := s.mustClaim(client.ID, product.ID, 400)
		s.Equal("pending", claim.Status)
		s.Regexp(`^CLM-\d+$`, claim.ClaimNumber)
		s.Equal("2025-01-15", claim.SubmittedDate)
		s.Nil(claim.ProcessedDate)
		s.Equal("Laura Gómez", claim.ClientName)
		s.Equal("Hogar Seguro", claim.ProductName)

		history, err := s.claims.History(s.ctx, claim.ID)
		s.Require().NoError(err)
		s.Require().Len(history, 1)
		s.Equal("pending", history[0].NewStatus)
	})

	s.Run("monto igual a la cobertura es válido", func() {
		product := s.mustProduct(1000)
		client := s.mustClient("limit@example.com")
		s.mustPolicy(client.ID, product.ID)
		s.mustClaim(client.ID, product.ID, 1000)
	})

	s.Run("monto sobre la cobertura reporta el máximo", func() {
		product := s.mustProduct(1000)
		client := s.mustClient("over@example.com")
		s.mustPolicy(client.ID, product.ID)

		_, err := s.claims.Create(s.ctx, dto.CreateClaimRequest{
			ClientID: client.ID, ProductID: product.ID,
			Amount: decimal.RequireFromString("1000.01"), Description: "x",
		}, actorID)
		s.Require().ErrorIs(err, domain.ErrInvalidArgument)
		s.Equal("1000.00", domain.Details(err)["max_coverage"])
	})

	s.Run("sin póliza activa falla con PreconditionFailed sin importar monto ni descripción", func() {
		product := s.mustProduct(1000)
		client := s.mustClient("nopolicy@example.com")

		for _, in := range []dto.CreateClaimRequest{
			{Amount: decimal.NewFromInt(10), Description: "ok"},
			{Amount: decimal.NewFromInt(999999), Description: ""},
			{Amount: decimal.NewFromInt(-5)},
		} {
			in.ClientID, in.ProductID = client.ID, product.ID
			_, err := s.claims.Create(s.ctx, in, actorID)
			s.Require().ErrorIs(err, domain.ErrPreconditionFailed)
		}
	})

	s.Run("póliza cancelada o vencida no habilita reclamaciones", func() {
		product := s.mustProduct(1000)
		client := s.mustClient("cancelled@example.com")
		policy := s.mustPolicy(client.ID, product.ID)
		_, err := s.policies.UpdateStatus(s.ctx, policy.ID, dto.UpdatePolicyStatusRequest{Status: "cancelled"}, actorID)
		s.Require().NoError(err)

		_, err = s.claims.Create(s.ctx, dto.CreateClaimRequest{
			ClientID: client.ID, ProductID: product.ID, Amount: decimal.NewFromInt(10), Description: "x",
		}, actorID)
		s.Require().ErrorIs(err, domain.ErrPreconditionFailed)

		other := s.mustClient("expired@example.com")
		_, err = s.policies.Create(s.ctx, dto.CreatePolicyRequest{
			ClientID: other.ID, ProductID: product.ID,
			StartDate: str("2023-01-01"), EndDate: str("2024-01-01"),
		}, actorID)
		s.Require().NoError(err)
		_, err = s.claims.Create(s.ctx, dto.CreateClaimRequest{
			ClientID: other.ID, ProductID: product.ID, Amount: decimal.NewFromInt(10), Description: "x",
		}, actorID)
		s.Require().ErrorIs(err, domain.ErrPreconditionFailed)
	})

	s.Run("cliente o producto inexistente", func() {
		product := s.mustProduct(1000)
		_, err := s.claims.Create(s.ctx, dto.CreateClaimRequest{ClientID: "nope", ProductID: product.ID}, actorID)
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})

	s.Run("descripción vacía con póliza activa", func() {
		product := s.mustProduct(1000)
		client := s.mustClient("nodesc@example.com")
		s.mustPolicy(client.ID, product.ID)
		_, err := s.claims.Create(s.ctx, dto.CreateClaimRequest{
			ClientID: client.ID, ProductID: product.ID, Amount: decimal.NewFromInt(10), Description: "  ",
		}, actorID)
		s.Require().ErrorIs(err, domain.ErrInvalidArgument)
	})

	s.Run("número suministrado duplicado", func() {
		product := s.mustProduct(1000)
		client := s.mustClient("dup@example.com")
		s.mustPolicy(client.ID, product.ID)
		in := dto.CreateClaimRequest{
			ClientID: client.ID, ProductID: product.ID, Amount: decimal.NewFromInt(10),
			Description: "x", ClaimNumber: "CLM-MANUAL",
		}
		_, err := s.claims.Create(s.ctx, in, actorID)
		s.Require().NoError(err)
		_, err = s.claims.Create(s.ctx, in, actorID)
		s.Require().ErrorIs(err, domain.ErrConflict)
	})
}

func (s *ClaimUseCaseSuite) TestCreateIncomplete() {
	product := s.mustProduct(1000)
	client := s.mustClient("partial@example.com")
	s.mustPolicy(client.ID, product.ID)

	s.deps.Claims = failingClaimDetails{ClaimRepository: s.store.Claims()}
	s.rebuild()

	claim, err := s.claims.Create(s.ctx, dto.CreateClaimRequest{
		ClientID: client.ID, ProductID: product.ID, Amount: decimal.NewFromInt(10), Description: "x",
	}, actorID)
	s.Require().ErrorIs(err, domain.ErrCreatedIncomplete)
	s.Require().NotNil(claim)
	s.Equal("pending", claim.Status)

	stored, err := s.store.Claims().GetByID(s.ctx, claim.ID)
	s.Require().NoError(err)
	s.NotNil(stored, "la reclamación queda persistida")
}

func (s *ClaimUseCaseSuite) TestUpdateStatus() {
	rec := &recorder{}
	s.deps.Metrics = rec
	s.rebuild()

	product := s.mustProduct(1000)
	client := s.mustClient("status@example.com")
	s.mustPolicy(client.ID, product.ID)
	claim := s.mustClaim(client.ID, product.ID, 100)

	s.Run("aprobar sella fecha y procesador por defecto", func() {
		got, err := s.claims.UpdateStatus(s.ctx, claim.ID, dto.UpdateClaimStatusRequest{Status: "Approved", Notes: "ok"}, actorID)
		s.Require().NoError(err)
		s.Equal("approved", got.Status)
		s.Require().NotNil(got.ProcessedDate)
		s.Equal("2025-01-15", *got.ProcessedDate)
		s.Require().NotNil(got.ProcessedBy)
		s.Equal(actorID, *got.ProcessedBy)
		s.Equal("ok", got.Notes)
	})

	s.Run("volver a pending limpia el procesamiento", func() {
		got, err := s.claims.UpdateStatus(s.ctx, claim.ID, dto.UpdateClaimStatusRequest{Status: "pending"}, actorID)
		s.Require().NoError(err)
		s.Equal("pending", got.Status)
		s.Nil(got.ProcessedDate)
		s.Nil(got.ProcessedBy)
	})

	s.Run("estado desconocido", func() {
		_, err := s.claims.UpdateStatus(s.ctx, claim.ID, dto.UpdateClaimStatusRequest{Status: "closed"}, actorID)
		s.Require().ErrorIs(err, domain.ErrInvalidArgument)
	})

	s.Run("reclamación inexistente", func() {
		_, err := s.claims.UpdateStatus(s.ctx, "nope", dto.UpdateClaimStatusRequest{Status: "approved"}, actorID)
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})

	history, err := s.claims.History(s.ctx, claim.ID)
	s.Require().NoError(err)
	s.Len(history, 3)
	s.Equal([]string{"approved", "pending"}, rec.claimsDecided)
}

func (s *ClaimUseCaseSuite) TestDecidedClaimsAreImmutable() {
	product := s.mustProduct(1000)
	client := s.mustClient("immutable@example.com")
	s.mustPolicy(client.ID, product.ID)

	for _, status := range []string{"approved", "rejected"} {
		claim := s.mustClaim(client.ID, product.ID, 100)
		_, err := s.claims.UpdateStatus(s.ctx, claim.ID, dto.UpdateClaimStatusRequest{Status: status}, actorID)
		s.Require().NoError(err)

		amount := decimal.NewFromInt(200)
		_, err = s.claims.UpdateFields(s.ctx, claim.ID, dto.UpdateClaimRequest{Amount: &amount})
		s.Require().ErrorIs(err, domain.ErrInvalidState)

		_, err = s.claims.UpdateFields(s.ctx, claim.ID, dto.UpdateClaimRequest{Description: str("otra")})
		s.Require().ErrorIs(err, domain.ErrInvalidState)

		err = s.claims.Delete(s.ctx, claim.ID)
		s.Require().ErrorIs(err, domain.ErrInvalidState)

		got, err := s.claims.UpdateFields(s.ctx, claim.ID, dto.UpdateClaimRequest{Notes: str("nota posterior")})
		s.Require().NoError(err, "las notas se pueden editar en cualquier estado")
		s.Equal("nota posterior", got.Notes)
	}
}

func (s *ClaimUseCaseSuite) TestUpdateFieldsPending() {
	product := s.mustProduct(1000)
	client := s.mustClient("edit@example.com")
	s.mustPolicy(client.ID, product.ID)
	claim := s.mustClaim(client.ID, product.ID, 100)

	s.Run("monto dentro de la cobertura", func() {
		amount := decimal.NewFromInt(900)
		got, err := s.claims.UpdateFields(s.ctx, claim.ID, dto.UpdateClaimRequest{Amount: &amount, Description: str("nueva")})
		s.Require().NoError(err)
		s.True(got.Amount.Equal(amount))
		s.Equal("nueva", got.Description)
	})

	s.Run("monto sobre la cobertura", func() {
		amount := decimal.NewFromInt(1001)
		_, err := s.claims.UpdateFields(s.ctx, claim.ID, dto.UpdateClaimRequest{Amount: &amount})
		s.Require().ErrorIs(err, domain.ErrInvalidArgument)
		s.Equal("1000.00", domain.Details(err)["max_coverage"])
	})
}

func (s *ClaimUseCaseSuite) TestDeletePending() {
	product := s.mustProduct(1000)
	client := s.mustClient("del@example.com")
	s.mustPolicy(client.ID, product.ID)
	claim := s.mustClaim(client.ID, product.ID, 100)

	s.Require().NoError(s.claims.Delete(s.ctx, claim.ID))
	_, err := s.claims.GetByID(s.ctx, claim.ID)
	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.Require().ErrorIs(s.claims.Delete(s.ctx, claim.ID), domain.ErrNotFound)
}

func (s *ClaimUseCaseSuite) TestListFilters() {
	product := s.mustProduct(1000)
	client := s.mustClient("list@example.com")
	s.mustPolicy(client.ID, product.ID)
	first := s.mustClaim(client.ID, product.ID, 100)
	s.mustClaim(client.ID, product.ID, 200)
	_, err := s.claims.UpdateStatus(s.ctx, first.ID, dto.UpdateClaimStatusRequest{Status: "rejected"}, actorID)
	s.Require().NoError(err)

	pending, err := s.claims.List(s.ctx, "pending", client.ID, dto.PageRequest{})
	s.Require().NoError(err)
	s.Len(pending.Items, 1)
	s.Equal(20, pending.Page.Limit)

	_, err = s.claims.List(s.ctx, "unknown", "", dto.PageRequest{})
	s.Require().ErrorIs(err, domain.ErrInvalidArgument)
}
