package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	appanalytics "github.com/jhoicas/Seguros-api/internal/application/analytics"
	"github.com/jhoicas/Seguros-api/internal/application/auth"
	"github.com/jhoicas/Seguros-api/internal/application/report"
	"github.com/jhoicas/Seguros-api/internal/application/usecase"
	"github.com/jhoicas/Seguros-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Seguros-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Seguros-api/internal/interfaces/http"
	"github.com/jhoicas/Seguros-api/pkg/clock"
	pkgjwt "github.com/jhoicas/Seguros-api/pkg/jwt"
)

// RouterSuite ejercita la API completa sobre el store en memoria.
type RouterSuite struct {
	suite.Suite
	app   *fiber.App
	store *memory.Store
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.store = memory.New()
	clk := clock.Fixed(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC))
	deps := usecase.Deps{
		Products:      s.store.Products(),
		Clients:       s.store.Clients(),
		Policies:      s.store.Policies(),
		Claims:        s.store.Claims(),
		StatusChanges: s.store.StatusChanges(),
		Tx:            memory.NewTxRunner(s.store),
		Clock:         clk,
	}
	s.app = fiber.New()
	apphttp.Router(s.app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(s.store.Users(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		ProductUC:   usecase.NewProductUseCase(deps),
		ClientUC:    usecase.NewClientUseCase(deps),
		PolicyUC:    usecase.NewPolicyUseCase(deps),
		ClaimUC:     usecase.NewClaimUseCase(deps),
		DashboardUC: appanalytics.NewDashboardUseCase(s.store.Dashboard(), clk),
		ClaimReport: report.NewClaimReportUseCase(
			s.store.Claims(), s.store.Clients(), s.store.Products(), s.store.Policies(), s.store.StatusChanges(),
			infrapdf.NewMarotoPDFGenerator("Seguros API"), clk,
		),
		JWTSecret: testJWTSecret,
	})
}

func (s *RouterSuite) token(role string) string {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	s.Require().NoError(err)
	return "Bearer " + tok
}

// call envía la petición y decodifica el cuerpo JSON (si lo hay) en un mapa.
func (s *RouterSuite) call(method, path, role string, body any) (int, map[string]any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", s.token(role))
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

// seed crea producto de cobertura 1000, cliente y póliza; devuelve sus IDs.
func (s *RouterSuite) seed() (productID, clientID, policyID string) {
	status, p := s.call(http.MethodPost, "/api/products", "agent", map[string]any{
		"name": "Auto Total", "type": "auto", "premium": "80", "coverage": "1000",
	})
	s.Require().Equal(http.StatusCreated, status)
	status, c := s.call(http.MethodPost, "/api/clients", "agent", map[string]any{
		"name": "Laura Gómez", "email": "laura@example.com",
	})
	s.Require().Equal(http.StatusCreated, status)
	status, pol := s.call(http.MethodPost, "/api/policies", "agent", map[string]any{
		"client_id": c["id"], "product_id": p["id"],
	})
	s.Require().Equal(http.StatusCreated, status)
	return p["id"].(string), c["id"].(string), pol["id"].(string)
}

func (s *RouterSuite) TestRegisterAndLogin() {
	status, _ := s.call(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "Ana@Example.com", "password": "super-secreta", "role": "adjuster",
	})
	s.Equal(http.StatusCreated, status)

	status, out := s.call(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "super-secreta",
	})
	s.Require().Equal(http.StatusOK, status)
	s.NotEmpty(out["token"])

	status, out = s.call(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "incorrecta",
	})
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("UNAUTHORIZED", out["code"])
}

func (s *RouterSuite) TestProtectedRoutesRequireToken() {
	status, out := s.call(http.MethodGet, "/api/products", "", nil)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("MISSING_TOKEN", out["code"])
}

func (s *RouterSuite) TestValidationErrorsUseJSONFieldNames() {
	status, out := s.call(http.MethodPost, "/api/clients", "agent", map[string]any{
		"name": "Sin Email", "email": "no-es-un-email",
	})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("VALIDATION", out["code"])
	s.Equal(map[string]any{"email": "email"}, out["details"])
}

func (s *RouterSuite) TestUnknownPolicyIsNotFound() {
	status, out := s.call(http.MethodGet, "/api/policies/00000000-0000-0000-0000-00000000dead", "agent", nil)
	s.Equal(http.StatusNotFound, status)
	s.Equal("NOT_FOUND", out["code"])
}

func (s *RouterSuite) TestClaimLifecycle() {
	productID, clientID, _ := s.seed()

	status, out := s.call(http.MethodPost, "/api/claims", "agent", map[string]any{
		"client_id": clientID, "product_id": productID, "amount": "1500", "description": "Choque",
	})
	s.Equal(http.StatusBadRequest, status, "monto sobre la cobertura")
	s.Equal("INVALID_ARGUMENT", out["code"])
	s.Equal("1000.00", out["details"].(map[string]any)["max_coverage"])

	status, claim := s.call(http.MethodPost, "/api/claims", "agent", map[string]any{
		"client_id": clientID, "product_id": productID, "amount": "400", "description": "Choque leve",
	})
	s.Require().Equal(http.StatusCreated, status)
	s.Equal("pending", claim["status"])
	claimPath := "/api/claims/" + claim["id"].(string)

	status, out = s.call(http.MethodPatch, claimPath+"/status", "agent", map[string]any{"status": "approved"})
	s.Equal(http.StatusForbidden, status)
	s.Equal("FORBIDDEN", out["code"])

	status, out = s.call(http.MethodPatch, claimPath+"/status", "adjuster", map[string]any{
		"status": "approved", "notes": "peritaje ok",
	})
	s.Require().Equal(http.StatusOK, status)
	s.Equal("approved", out["status"])
	s.Equal(testUserID, out["processed_by"])
	s.Equal("2025-01-15", out["processed_date"])

	status, out = s.call(http.MethodPut, claimPath, "agent", map[string]any{"amount": "10"})
	s.Equal(http.StatusConflict, status)
	s.Equal("INVALID_STATE", out["code"])

	status, out = s.call(http.MethodDelete, claimPath, "admin", nil)
	s.Equal(http.StatusConflict, status)
	s.Equal("INVALID_STATE", out["code"])

	req := httptest.NewRequest(http.MethodGet, claimPath+"/history", nil)
	req.Header.Set("Authorization", s.token("agent"))
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()
	var history []map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&history))
	s.Require().Len(history, 2)
	s.Equal("pending", history[1]["old_status"])
	s.Equal("approved", history[1]["new_status"])
}

func (s *RouterSuite) TestClaimRequiresPolicyInForce() {
	productID, clientID, policyID := s.seed()

	status, _ := s.call(http.MethodPatch, "/api/policies/"+policyID+"/status", "agent", map[string]any{
		"status": "cancelled", "notes": "solicitud del cliente",
	})
	s.Require().Equal(http.StatusOK, status)

	status, out := s.call(http.MethodPost, "/api/claims", "agent", map[string]any{
		"client_id": clientID, "product_id": productID, "amount": "100", "description": "Robo",
	})
	s.Equal(http.StatusPreconditionFailed, status)
	s.Equal("PRECONDITION_FAILED", out["code"])
}

func (s *RouterSuite) TestClientDeletionGuarded() {
	_, clientID, _ := s.seed()

	status, _ := s.call(http.MethodDelete, "/api/clients/"+clientID, "agent", nil)
	s.Equal(http.StatusForbidden, status, "solo admin elimina clientes")

	status, out := s.call(http.MethodDelete, "/api/clients/"+clientID, "admin", nil)
	s.Equal(http.StatusConflict, status)
	s.Equal("CONFLICT", out["code"])
	s.Equal(float64(1), out["details"].(map[string]any)["active_policies"])
}

func (s *RouterSuite) TestRenewPolicyWithoutBody() {
	_, _, policyID := s.seed()

	status, out := s.call(http.MethodPost, "/api/policies/"+policyID+"/renew", "agent", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal("2026-01-15", out["end_date"])
	s.Equal("active", out["status"])
}

func (s *RouterSuite) TestDashboardAndReport() {
	productID, clientID, _ := s.seed()
	status, claim := s.call(http.MethodPost, "/api/claims", "agent", map[string]any{
		"client_id": clientID, "product_id": productID, "amount": "250.50", "description": "Granizo",
	})
	s.Require().Equal(http.StatusCreated, status)

	status, out := s.call(http.MethodGet, "/api/dashboard/summary", "agent", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(float64(1), out["active_clients"])
	s.Equal(float64(1), out["policies_by_status"].(map[string]any)["active"])

	req := httptest.NewRequest(http.MethodGet, "/api/claims/"+claim["id"].(string)+"/report", nil)
	req.Header.Set("Authorization", s.token("agent"))
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	s.True(bytes.HasPrefix(raw, []byte("%PDF")))
}
