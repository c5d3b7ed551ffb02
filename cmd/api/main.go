// @title                       Dental Inventory API
// @version                     1.0
// @description                 Inventario multi-clínica de materiales odontológicos y libro de ingresos y egresos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo "Bearer "
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/dental-inventory-api/docs"
	appanalytics "github.com/jhoicas/dental-inventory-api/internal/application/analytics"
	"github.com/jhoicas/dental-inventory-api/internal/application/auth"
	"github.com/jhoicas/dental-inventory-api/internal/application/finance"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/dental-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/dental-inventory-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/dental-inventory-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/dental-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/dental-inventory-api/pkg/config"
	"github.com/jhoicas/dental-inventory-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: no se podrán emitir ni validar tokens")
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clinicRepo := postgres.NewClinicRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	stockRepo := postgres.NewClinicStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	transactionRepo := postgres.NewFinancialTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool, log)

	stockUC := inventory.NewStockUseCase(txRunner, clinicRepo, movementRepo)
	clinicUC := usecase.NewClinicUseCase(clinicRepo, stockRepo, movementRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo, stockRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(clinicRepo, stockRepo, movementRepo)

	// Reportes: PDF del balance diario y exportación XLSX
	financeUC := finance.NewTransactionUseCase(
		transactionRepo, clinicRepo,
		infrapdf.NewDailyBalanceGenerator(),
		infraxlsx.NewTransactionExporter(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
			Path:        "docs",
			Title:       "Dental Inventory API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClinicUC:    clinicUC,
		MaterialUC:  materialUC,
		StockUC:     stockUC,
		FinanceUC:   financeUC,
		DashboardUC: dashboardUC,
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
