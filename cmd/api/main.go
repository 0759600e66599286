// @title           Seguros API
// @version         1.0
// @description     Back-office de seguros: productos, clientes, pólizas y reclamaciones.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Seguros-api/docs"
	appanalytics "github.com/jhoicas/Seguros-api/internal/application/analytics"
	"github.com/jhoicas/Seguros-api/internal/application/auth"
	"github.com/jhoicas/Seguros-api/internal/application/report"
	"github.com/jhoicas/Seguros-api/internal/application/usecase"
	"github.com/jhoicas/Seguros-api/internal/domain/repository"
	"github.com/jhoicas/Seguros-api/internal/infrastructure/memory"
	"github.com/jhoicas/Seguros-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Seguros-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Seguros-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Seguros-api/internal/interfaces/http"
	"github.com/jhoicas/Seguros-api/pkg/clock"
	"github.com/jhoicas/Seguros-api/pkg/config"
	"github.com/jhoicas/Seguros-api/pkg/logger"
)

// storage repositorios del backend elegido por STORAGE_DRIVER.
type storage struct {
	products      repository.ProductRepository
	clients       repository.ClientRepository
	policies      repository.PolicyRepository
	claims        repository.ClaimRepository
	statusChanges repository.StatusChangeRepository
	users         repository.UserRepository
	dashboard     repository.DashboardRepository
	tx            usecase.TxRunner
	close         func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.New()
		return &storage{
			products:      s.Products(),
			clients:       s.Clients(),
			policies:      s.Policies(),
			claims:        s.Claims(),
			statusChanges: s.StatusChanges(),
			users:         s.Users(),
			dashboard:     s.Dashboard(),
			tx:            memory.NewTxRunner(s),
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		products:      postgres.NewProductRepository(pool),
		clients:       postgres.NewClientRepository(pool),
		policies:      postgres.NewPolicyRepository(pool),
		claims:        postgres.NewClaimRepository(pool),
		statusChanges: postgres.NewStatusChangeRepository(pool),
		users:         postgres.NewUserRepository(pool),
		dashboard:     postgres.NewDashboardRepository(pool),
		tx:            postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	clk := clock.Real()
	m := metrics.New()
	deps := usecase.Deps{
		Products:             store.products,
		Clients:              store.clients,
		Policies:             store.policies,
		Claims:               store.claims,
		StatusChanges:        store.statusChanges,
		Tx:                   store.tx,
		Clock:                clk,
		Metrics:              m,
		Log:                  log.Component("usecase"),
		DefaultRenewalMonths: cfg.Policy.DefaultRenewalMonths,
	}

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(store.dashboard, clk)

	// PDF: reporte de reclamación con historial de estados
	claimReportUC := report.NewClaimReportUseCase(
		store.claims, store.clients, store.products, store.policies, store.statusChanges,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name), clk,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Seguros API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   usecase.NewProductUseCase(deps),
		ClientUC:    usecase.NewClientUseCase(deps),
		PolicyUC:    usecase.NewPolicyUseCase(deps),
		ClaimUC:     usecase.NewClaimUseCase(deps),
		DashboardUC: dashboardUC,
		ClaimReport: claimReportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
