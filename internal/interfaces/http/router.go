package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Valoracion-api/internal/application/analytics"
	"github.com/jhoicas/Valoracion-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MetricsUC       *analytics.MetricsUseCase
	ReportGenerator reportGenerator
	CompanyRepo     repository.CompanyRepository
	JWTSecret       string
}

// Router registra las rutas de la API. Todo el módulo de métricas exige
// Bearer Token: el company_id del token delimita el tenant.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	metricsHandler := NewMetricsHandler(deps.MetricsUC, deps.ReportGenerator, deps.CompanyRepo)

	metrics := api.Group("/metrics", AuthMiddleware(deps.JWTSecret))
	metrics.Get("/business", metricsHandler.GetBusiness)
	metrics.Get("/business/report", metricsHandler.GetBusinessReport)
}
