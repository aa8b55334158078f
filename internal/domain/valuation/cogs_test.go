package valuation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Valoracion-api/internal/domain/entity"
	"github.com/jhoicas/Valoracion-api/internal/domain/valuation"
)

func line(qty, unitPrice, costPrice string) entity.SaleLineItem {
	return entity.SaleLineItem{
		Quantity:         d(qty),
		UnitPrice:        d(unitPrice),
		ProductCostPrice: d(costPrice),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección de método de COGS
// ──────────────────────────────────────────────────────────────────────────────

// Con al menos un costo registrado gana la suma de costos reales, aunque
// las líneas sin costo la dejen por debajo de la estimación ponderada.
func TestComputeCOGS_CostoRealGanaSiEsPositivo(t *testing.T) {
	items := []entity.SaleLineItem{
		line("2", "150", "100"), // 2×100 = 200 real
		line("3", "50", "0"),    // sin costo: solo aporta a la ponderada
	}

	res := valuation.ComputeCOGS(items, decimal.Zero, valuation.DefaultFallbackRatios())

	assert.Equal(t, valuation.CostMethodActual, res.Method)
	assert.True(t, res.Total.Equal(d("200")),
		"el costo real se usa tal cual, sin completar líneas faltantes; dio %s", res.Total)
}

// Sin ningún costo registrado se usa la estimación ponderada con el
// promedio de compras recientes del tenant.
func TestComputeCOGS_PonderadoUsaPromedioDeCompras(t *testing.T) {
	items := []entity.SaleLineItem{
		line("2", "150", "0"),
		line("1", "80", "0"),
	}

	res := valuation.ComputeCOGS(items, d("40"), valuation.DefaultFallbackRatios())

	assert.Equal(t, valuation.CostMethodWeightedAverage, res.Method)
	assert.True(t, res.Total.Equal(d("120")), "(2+1)×40 = 120, dio %s", res.Total)
}

// Sin costo y sin historial de compras: 70% del precio de venta por línea.
func TestComputeCOGS_PonderadoCaeAl70DelPrecio(t *testing.T) {
	items := []entity.SaleLineItem{
		line("2", "100", "0"),
	}

	res := valuation.ComputeCOGS(items, decimal.Zero, valuation.DefaultFallbackRatios())

	assert.Equal(t, valuation.CostMethodWeightedAverage, res.Method)
	assert.True(t, res.Total.Equal(d("140")), "2×(100×0.7) = 140, dio %s", res.Total)
}

// El fallback es por línea: cada una usa la mejor fuente que tenga.
func TestComputeCOGS_FallbackLineaALinea(t *testing.T) {
	items := []entity.SaleLineItem{
		line("1", "200", "0"), // → avgRecent 50
		line("1", "100", "0"), // → avgRecent 50
	}

	res := valuation.ComputeCOGS(items, d("50"), valuation.DefaultFallbackRatios())

	assert.True(t, res.Total.Equal(d("100")), "1×50 + 1×50 = 100, dio %s", res.Total)
}

func TestComputeCOGS_SinLineasDevuelveCeroPonderado(t *testing.T) {
	res := valuation.ComputeCOGS(nil, d("50"), valuation.DefaultFallbackRatios())

	assert.True(t, res.Total.IsZero())
	assert.Equal(t, valuation.CostMethodWeightedAverage, res.Method)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingresos y utilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRevenue_ExcluyeCanceladasYDevueltas(t *testing.T) {
	sales := []entity.Sale{
		{TotalAmount: d("500"), Status: entity.SaleStatusCompleted},
		{TotalAmount: d("200"), Status: entity.SaleStatusPending},
		{TotalAmount: d("900"), Status: entity.SaleStatusCancelled},
		{TotalAmount: d("300"), Status: entity.SaleStatusRefunded},
	}

	assert.True(t, valuation.Revenue(sales).Equal(d("700")),
		"solo completadas y pendientes cuentan, dio %s", valuation.Revenue(sales))
}

func TestGrossProfit_CalculaMargenPorcentual(t *testing.T) {
	profit, margin := valuation.GrossProfit(d("500"), d("200"))

	assert.True(t, profit.Equal(d("300")))
	assert.True(t, margin.Equal(d("60")), "300/500×100 = 60, dio %s", margin)
}

func TestGrossProfit_RevenueCeroNoDividePorCero(t *testing.T) {
	profit, margin := valuation.GrossProfit(decimal.Zero, d("200"))

	assert.True(t, profit.Equal(d("-200")), "la utilidad puede ser negativa")
	assert.True(t, margin.IsZero(), "con revenue 0 el margen es 0, dio %s", margin)
}
