package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Valoracion-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// CostMethod identifica qué fórmula produjo el COGS del período.
// Se expone en la respuesta para que el consumidor sepa si la cifra viene
// de costos reales o de una estimación ponderada.
type CostMethod string

const (
	// CostMethodActual: Σ(cantidad × costo registrado del producto).
	CostMethodActual CostMethod = "actual_cost"
	// CostMethodWeightedAverage: estimación línea a línea con fallback al
	// promedio de compras recientes o al 70% del precio de venta.
	CostMethodWeightedAverage CostMethod = "weighted_average"
)

// COGSResult es el costo de la mercancía vendida en el período.
type COGSResult struct {
	Total  decimal.Decimal
	Method CostMethod
}

// ComputeCOGS calcula el costo de la mercancía vendida del período a partir
// de las líneas vendidas.
//
// Se calculan dos estimaciones y se elige una:
//   - Costo real: Σ(qty × cost_price del producto). Si es positivo, gana.
//   - Promedio ponderado: por línea, cost_price si existe; si no, el promedio
//     de compras recientes del tenant (avgRecentPurchase); si tampoco,
//     precio unitario de venta × ratio (mismo 0.70 de la cadena FIFO).
//
// El costo real solo es cero cuando ningún producto vendido tiene costo
// registrado; en ese caso la estimación ponderada es la única cifra útil.
func ComputeCOGS(
	items []entity.SaleLineItem,
	avgRecentPurchase decimal.Decimal,
	ratios FallbackRatios,
) COGSResult {
	byActual := decimal.Zero
	byWeighted := decimal.Zero

	for _, it := range items {
		byActual = byActual.Add(it.Quantity.Mul(it.ProductCostPrice))

		unitCost := it.ProductCostPrice
		if !unitCost.IsPositive() {
			unitCost = avgRecentPurchase
		}
		if !unitCost.IsPositive() {
			unitCost = it.UnitPrice.Mul(ratios.WithPurchases)
		}
		byWeighted = byWeighted.Add(it.Quantity.Mul(unitCost))
	}

	if byActual.IsPositive() {
		return COGSResult{Total: byActual, Method: CostMethodActual}
	}
	return COGSResult{Total: byWeighted, Method: CostMethodWeightedAverage}
}

// Revenue suma el total de las ventas contables del período (excluye
// canceladas y devueltas).
func Revenue(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		if s.IsCountable() {
			total = total.Add(s.TotalAmount)
		}
	}
	return total
}

// GrossProfit devuelve utilidad bruta y margen porcentual.
// Con revenue cero el margen es cero, nunca una división inválida.
func GrossProfit(revenue, cogs decimal.Decimal) (profit, marginPct decimal.Decimal) {
	profit = revenue.Sub(cogs)
	if revenue.IsPositive() {
		marginPct = profit.Div(revenue).Mul(hundred)
	} else {
		marginPct = decimal.Zero
	}
	return profit, marginPct
}
