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

	"github.com/jhoicas/tacom-api/internal/application/auth"
	"github.com/jhoicas/tacom-api/internal/application/catalog"
	appmovement "github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/internal/application/usecase"
	"github.com/jhoicas/tacom-api/internal/bootstrap"
	"github.com/jhoicas/tacom-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/tacom-api/internal/interfaces/http"
	"github.com/jhoicas/tacom-api/pkg/config"
	"github.com/jhoicas/tacom-api/pkg/logger"
	"github.com/jhoicas/tacom-api/pkg/validation"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	policy, err := bootstrap.Policy(cfg.Movement, store.Classification)
	if err != nil {
		log.Fatal().Err(err).Msg("política de movimientos")
	}

	catalogCache, closeCache, err := bootstrap.OpenCache(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la caché")
	}
	defer closeCache()

	ttl := bootstrap.CacheTTL(cfg)
	companies := catalog.NewCompanies(store.Companies, catalogCache, ttl, log)
	defects := catalog.NewDefects(store.Defects, catalogCache, ttl, log)

	registerMovementUC := appmovement.NewRegisterMovementUseCase(
		store.TxRunner, store.Equipment, companies, defects,
		policy, bootstrap.BatchMode(cfg.Movement), log,
	)
	movementQueryUC := appmovement.NewQueryUseCase(store.Movements, policy)
	slipUC := appmovement.NewSlipUseCase(store.Movements, store.Equipment, companies, defects, pdf.NewMarotoSlipGenerator(cfg.App.Name))
	companyUC := usecase.NewCompanyUseCase(store.Companies, companies, policy)
	equipmentUC := usecase.NewEquipmentUseCase(store.Equipment, store.Movements, companies)
	defectTypeUC := usecase.NewDefectTypeUseCase(defects)
	userUC := usecase.NewUserUseCase(store.Users)
	authUC := auth.NewAuthUseCase(store.Users, store.Companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log.Component("access")))

	// Swagger UI: http://localhost:<port>/docs (solo si el documento existe)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "TACOM API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "ok",
			"service":        cfg.App.Name,
			"storage":        store.Driver,
			"classification": policy.SupportsDefectClassification,
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		CompanyUC:        companyUC,
		EquipmentUC:      equipmentUC,
		DefectTypeUC:     defectTypeUC,
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		MovementSlip:     slipUC,
		Validator:        validation.New(),
		Log:              log,
		JWTSecret:        cfg.JWT.Secret,
		RateLimitRPS:     cfg.HTTP.RateLimitRPS,
		RateLimitBurst:   cfg.HTTP.RateLimitBurst,
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
