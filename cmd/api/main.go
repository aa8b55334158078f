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

	"github.com/jhoicas/Valoracion-api/internal/application/analytics"
	"github.com/jhoicas/Valoracion-api/internal/domain/valuation"
	infrapdf "github.com/jhoicas/Valoracion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Valoracion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Valoracion-api/internal/infrastructure/rediscache"
	httpRouter "github.com/jhoicas/Valoracion-api/internal/interfaces/http"
	"github.com/jhoicas/Valoracion-api/pkg/config"
	"github.com/jhoicas/Valoracion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	metricsRepo := postgres.NewMetricsRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)

	// Caché opcional: sin REDIS_ADDR el caso de uso calcula siempre en vivo.
	var cache analytics.MetricsCache
	if cfg.Cache.Addr != "" {
		redisCache := rediscache.New(
			cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, métricas sin caché")
		} else {
			cache = redisCache
			defer redisCache.Close()
		}
	}

	metricsUC := analytics.NewMetricsUseCase(metricsRepo, cache, log, analytics.ValuationParams{
		Ratios: valuation.NewFallbackRatios(
			cfg.Valuation.RatioWithPurchases,
			cfg.Valuation.RatioWithoutPurchases,
		),
		RecentPurchases: cfg.Valuation.RecentPurchases,
	})
	reportGen := infrapdf.NewMetricsReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el PDF puede tardar más que el JSON
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Valoracion API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MetricsUC:       metricsUC,
		ReportGenerator: reportGen,
		CompanyRepo:     companyRepo,
		JWTSecret:       cfg.JWT.Secret,
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
