package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Valoracion-api/internal/application/dto"
	"github.com/jhoicas/Valoracion-api/internal/domain/valuation"
)

// BuildMetrics combina el snapshot en el registro plano de métricas.
// Función pura: el mismo snapshot con los mismos ratios produce siempre el
// mismo registro.
func BuildMetrics(snap *Snapshot, startDate, endDate string, ratios valuation.FallbackRatios) *dto.BusinessMetricsDTO {
	// ── Ventas del período ─────────────────────────────────────────────────────
	revenue := valuation.Revenue(snap.Sales)
	salesCount := 0
	for _, s := range snap.Sales {
		if s.IsCountable() {
			salesCount++
		}
	}

	// ── Valoración del stock y salud del inventario ────────────────────────────
	hasPurchases := snap.HasPurchases()
	stockByPurchase := decimal.Zero
	stockBySale := decimal.Zero
	lowStock, outOfStock, withStock, profitable := 0, 0, 0, 0

	for _, p := range snap.Products {
		total := valuation.TotalStock(p)

		if total.IsPositive() {
			withStock++
			alloc := valuation.AllocateCost(
				p.ID, total, snap.Batches,
				p.CostPrice, p.Price,
				hasPurchases, ratios,
			)
			stockByPurchase = stockByPurchase.Add(alloc.CostValue)
			stockBySale = stockBySale.Add(total.Mul(p.Price))
		}

		// Clasificación de salud sobre el stock propio, sin variantes
		// (comportamiento heredado del sistema original).
		if p.StockQuantity.IsZero() {
			outOfStock++
		}
		if p.MinStockLevel.IsPositive() && p.StockQuantity.LessThanOrEqual(p.MinStockLevel) {
			lowStock++
		}
		if p.CostPrice.IsPositive() && p.Price.GreaterThan(p.CostPrice) {
			profitable++
		}
	}

	// ── COGS y rentabilidad ────────────────────────────────────────────────────
	cogs := valuation.ComputeCOGS(snap.SoldItems, snap.AvgRecentPurchase, ratios)
	profit, marginPct := valuation.GrossProfit(revenue, cogs.Total)

	return &dto.BusinessMetricsDTO{
		StartDate: startDate,
		EndDate:   endDate,

		Revenue:    revenue.Round(2),
		SalesCount: salesCount,

		TotalCustomers:  snap.Customers.TotalCustomers,
		ActiveCustomers: snap.Customers.ActiveCustomers,

		TotalPurchases: len(snap.Purchases),

		StockByPurchasePrice: stockByPurchase.Round(2),
		StockBySalePrice:     stockBySale.Round(2),
		PotentialStockValue:  stockBySale.Sub(stockByPurchase).Round(2),

		Profit:       profit.Round(2),
		ProfitMargin: marginPct.Round(2),
		COGS:         cogs.Total.Round(2),
		COGSMethod:   string(cogs.Method),

		LowStockCount:   lowStock,
		OutOfStockCount: outOfStock,

		TotalProducts:      len(snap.Products),
		ProductsWithStock:  withStock,
		ProfitableProducts: profitable,
	}
}
