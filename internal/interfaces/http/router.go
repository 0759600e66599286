package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	appanalytics "github.com/jhoicas/Seguros-api/internal/application/analytics"
	"github.com/jhoicas/Seguros-api/internal/application/auth"
	"github.com/jhoicas/Seguros-api/internal/application/report"
	"github.com/jhoicas/Seguros-api/internal/application/usecase"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	ClientUC    *usecase.ClientUseCase
	PolicyUC    *usecase.PolicyUseCase
	ClaimUC     *usecase.ClaimUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ClaimReport *report.ClaimReportUseCase
	JWTSecret   string

	// LoginRateLimit intentos de login por minuto y IP (0 = 10).
	LoginRateLimit int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	if deps.LoginRateLimit <= 0 {
		deps.LoginRateLimit = 10
	}
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", limiter.New(limiter.Config{
		Max:        deps.LoginRateLimit,
		Expiration: time.Minute,
	}), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	deciders := RequireRole(entity.RoleAdmin, entity.RoleAdjuster)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.PolicyUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Patch("/:id/status", clientHandler.UpdateStatus)
	clients.Get("/:id/policies", clientHandler.Policies)
	clients.Delete("/:id", adminOnly, clientHandler.Delete)

	policies := protected.Group("/policies")
	policyHandler := NewPolicyHandler(deps.PolicyUC)
	policies.Post("/", policyHandler.Create)
	policies.Get("/", policyHandler.List)
	policies.Get("/:id", policyHandler.GetByID)
	policies.Patch("/:id/status", policyHandler.UpdateStatus)
	policies.Post("/:id/renew", policyHandler.Renew)
	policies.Get("/:id/history", policyHandler.History)
	policies.Delete("/:id", adminOnly, policyHandler.Delete)

	claims := protected.Group("/claims")
	claimHandler := NewClaimHandler(deps.ClaimUC, deps.ClaimReport)
	claims.Post("/", claimHandler.Create)
	claims.Get("/", claimHandler.List)
	claims.Get("/:id", claimHandler.GetByID)
	claims.Put("/:id", claimHandler.Update)
	claims.Patch("/:id/status", deciders, claimHandler.UpdateStatus)
	claims.Get("/:id/history", claimHandler.History)
	if deps.ClaimReport != nil {
		claims.Get("/:id/report", claimHandler.Report)
	}
	claims.Delete("/:id", deciders, claimHandler.Delete)

	if deps.DashboardUC != nil {
		protected.Get("/dashboard/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)
	}
}
