// Package analytics contiene el motor de Valoración de Inventario y
// Métricas de Negocio: snapshot de lecturas en paralelo, costeo FIFO con
// cadena de fallbacks y ensamblado del registro de métricas del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Valoracion-api/internal/application/dto"
	"github.com/jhoicas/Valoracion-api/internal/domain/repository"
	"github.com/jhoicas/Valoracion-api/internal/domain/valuation"
	"github.com/jhoicas/Valoracion-api/pkg/logger"
)

const defaultRecentPurchases = 10 // N compras recientes para el promedio del COGS ponderado

// MetricsCache memoiza el registro final por (empresa, período). Un fallo de
// caché nunca es un fallo de la petición: las implementaciones devuelven
// error solo para que el caller lo registre.
type MetricsCache interface {
	// Get devuelve (nil, nil) en caso de miss.
	Get(ctx context.Context, companyID string, start, end time.Time) (*dto.BusinessMetricsDTO, error)
	Set(ctx context.Context, companyID string, start, end time.Time, m *dto.BusinessMetricsDTO) error
}

// ValuationParams parámetros de negocio del motor, inyectados desde config.
type ValuationParams struct {
	Ratios valuation.FallbackRatios
	// RecentPurchases cuántas compras recientes promedia el fallback del
	// COGS ponderado. <= 0 usa el default.
	RecentPurchases int
}

// MetricsUseCase calcula el registro de métricas de negocio para un período.
//
// Flujo: expandir ventana → caché → snapshot (7 consultas en paralelo) →
// BuildMetrics → caché. Si el snapshot falla, se registra la causa y se
// devuelve el registro en cero (el dashboard muestra estado vacío, nunca
// cifras inventadas ni un error 500).
type MetricsUseCase struct {
	repo   repository.MetricsRepository
	cache  MetricsCache // puede ser nil: la caché es opcional
	log    *logger.Logger
	params ValuationParams
}

// NewMetricsUseCase construye el caso de uso. cache puede ser nil.
func NewMetricsUseCase(
	repo repository.MetricsRepository,
	cache MetricsCache,
	log *logger.Logger,
	params ValuationParams,
) *MetricsUseCase {
	if params.Ratios.WithPurchases.IsZero() {
		params.Ratios = valuation.DefaultFallbackRatios()
	}
	if params.RecentPurchases <= 0 {
		params.RecentPurchases = defaultRecentPurchases
	}
	return &MetricsUseCase{repo: repo, cache: cache, log: log, params: params}
}

// GetBusinessMetrics devuelve el registro de métricas de la empresa para el
// período pedido. Solo retorna error ante parámetros inválidos del cliente;
// los fallos de datos degradan al registro en cero.
func (uc *MetricsUseCase) GetBusinessMetrics(
	ctx context.Context,
	companyID string,
	req dto.MetricsRequest,
) (*dto.BusinessMetricsDTO, error) {
	start, end, err := expandWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	startLabel := start.Format("2006-01-02")
	endLabel := end.Format("2006-01-02")

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, companyID, start, end); err != nil {
			uc.logWarn(err, companyID, "leer caché de métricas")
		} else if cached != nil {
			return cached, nil
		}
	}

	snap, err := fetchSnapshot(ctx, uc.repo, companyID, start, end, uc.params.RecentPurchases)
	if err != nil {
		// Snapshot inválido: estado degradado, nunca cifras parciales.
		uc.logWarn(err, companyID, "snapshot de métricas")
		return dto.ZeroBusinessMetrics(startLabel, endLabel), nil
	}

	metrics := BuildMetrics(snap, startLabel, endLabel, uc.params.Ratios)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, companyID, start, end, metrics); err != nil {
			uc.logWarn(err, companyID, "guardar caché de métricas")
		}
	}
	return metrics, nil
}

func (uc *MetricsUseCase) logWarn(err error, companyID, msg string) {
	if uc.log == nil {
		return
	}
	uc.log.Warn().Err(err).Str("company_id", companyID).Msg(msg)
}

// expandWindow convierte las fechas de calendario en los límites inclusivos
// del período: [start 00:00:00.000, end 23:59:59.999…]. Fechas vacías caen
// al día 1 del mes actual y a hoy.
func expandWindow(startStr, endStr string) (start, end time.Time, err error) {
	now := time.Now()

	if endStr == "" {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	} else {
		end, err = time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date inválido: %w", err)
		}
	}
	// Fin de día inclusive: último instante antes de la medianoche siguiente
	end = end.Add(24*time.Hour - time.Nanosecond)

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		start, err = time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date inválido: %w", err)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date no puede ser posterior a end_date")
	}
	return start, end, nil
}
