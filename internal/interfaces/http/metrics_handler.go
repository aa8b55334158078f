package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Valoracion-api/internal/application/analytics"
	"github.com/jhoicas/Valoracion-api/internal/application/dto"
	"github.com/jhoicas/Valoracion-api/internal/domain"
	"github.com/jhoicas/Valoracion-api/internal/domain/repository"
)

// reportGenerator contrato mínimo del generador de PDF (lo implementa
// pdf.MetricsReportGenerator; la interfaz evita acoplar el handler a Maroto).
type reportGenerator interface {
	Generate(companyName string, m *dto.BusinessMetricsDTO) ([]byte, error)
}

// MetricsHandler maneja los endpoints del módulo de métricas de negocio.
type MetricsHandler struct {
	uc        *analytics.MetricsUseCase
	reports   reportGenerator
	companies repository.CompanyRepository
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(
	uc *analytics.MetricsUseCase,
	reports reportGenerator,
	companies repository.CompanyRepository,
) *MetricsHandler {
	return &MetricsHandler{uc: uc, reports: reports, companies: companies}
}

// GetBusiness devuelve el registro plano de métricas del período.
// GET /api/metrics/business?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
//
// Fechas vacías: día 1 del mes en curso hasta hoy. Un fallo de datos no es
// un 500: el caso de uso degrada al registro en cero.
func (h *MetricsHandler) GetBusiness(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}

	var req dto.MetricsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	metrics, err := h.uc.GetBusinessMetrics(c.Context(), companyID, req)
	if err != nil {
		// Solo fechas mal formadas llegan aquí
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	}
	return c.JSON(metrics)
}

// GetBusinessReport genera el PDF descargable del mismo registro.
// GET /api/metrics/business/report?start_date&end_date
func (h *MetricsHandler) GetBusinessReport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}

	var req dto.MetricsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	metrics, err := h.uc.GetBusinessMetrics(c.Context(), companyID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	}

	companyName, err := h.companies.GetName(c.Context(), companyID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudo consultar la empresa",
		})
	}
	if companyName == "" {
		companyName = "Empresa"
	}

	pdfBytes, err := h.reports.Generate(companyName, metrics)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "PDF_GENERATION", Message: "no se pudo generar el reporte",
		})
	}

	filename := fmt.Sprintf("metricas_%s_%s.pdf", metrics.StartDate, metrics.EndDate)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
