package valuation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Valoracion-api/internal/domain/entity"
)

// CostSource indica de dónde salió el costo asignado a un producto.
type CostSource string

const (
	// SourceBatches: costeo real contra lotes de compra (FIFO).
	SourceBatches CostSource = "batches"
	// SourceCostPrice: sin lotes; se usó el costo estático del producto.
	SourceCostPrice CostSource = "cost_price"
	// SourceEstimated: sin lotes ni costo; precio de venta × ratio (hay
	// historial de compras en el tenant).
	SourceEstimated CostSource = "estimated"
	// SourceBaseline: sin lotes, sin costo y sin historial de compras;
	// precio de venta × ratio conservador.
	SourceBaseline CostSource = "baseline"
)

// Allocation es el resultado de valorar el stock de un producto.
type Allocation struct {
	CostValue   decimal.Decimal // valor total del stock a costo
	AvgUnitCost decimal.Decimal // CostValue / cantidad (0 si cantidad 0)
	Source      CostSource
}

// AllocateCost valora requiredQty unidades del producto contra sus lotes de
// compra, del más antiguo al más reciente (FIFO por fecha de la orden,
// empates en orden de llegada).
//
// Cadena de fallback cuando el historial no alcanza:
//  1. Lotes agotados con cantidad pendiente → el resto se valora al costo
//     unitario del lote más reciente.
//  2. Sin ningún lote para el producto → costo estático del producto si es
//     positivo.
//  3. Si tampoco hay costo estático → precio de venta × ratio: 0.70 si el
//     tenant tiene compras recibidas (hasPurchases), 0.60 si no.
//
// La cadena prefiere siempre el dato más real disponible: un producto con
// stock nunca queda valorado en cero.
func AllocateCost(
	productID string,
	requiredQty decimal.Decimal,
	batches []entity.PurchaseBatch,
	costPrice, salePrice decimal.Decimal,
	hasPurchases bool,
	ratios FallbackRatios,
) Allocation {
	if !requiredQty.IsPositive() {
		return Allocation{CostValue: decimal.Zero, AvgUnitCost: decimal.Zero, Source: SourceBatches}
	}

	own := make([]entity.PurchaseBatch, 0, len(batches))
	for _, b := range batches {
		if b.ProductID == productID {
			own = append(own, b)
		}
	}
	// Orden FIFO estable: fecha de la orden ascendente, empates por llegada.
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].ReceivedAt.Before(own[j].ReceivedAt)
	})

	costValue := decimal.Zero

	if len(own) > 0 {
		remaining := requiredQty
		for _, b := range own {
			if !b.QuantityReceived.IsPositive() || !b.UnitCost.IsPositive() {
				continue
			}
			take := decimal.Min(b.QuantityReceived, remaining)
			costValue = costValue.Add(take.Mul(b.UnitCost))
			remaining = remaining.Sub(take)
			if remaining.IsZero() {
				break
			}
		}
		// Stock que excede el historial: se valora al costo del lote más
		// reciente (mejor aproximación del costo de reposición).
		if remaining.IsPositive() {
			last := own[len(own)-1]
			costValue = costValue.Add(remaining.Mul(last.UnitCost))
		}
		return Allocation{
			CostValue:   costValue,
			AvgUnitCost: costValue.Div(requiredQty),
			Source:      SourceBatches,
		}
	}

	// Sin lotes para este producto: cadena de fallback.
	switch {
	case costPrice.IsPositive():
		costValue = requiredQty.Mul(costPrice)
		return Allocation{CostValue: costValue, AvgUnitCost: costPrice, Source: SourceCostPrice}
	case hasPurchases:
		unit := salePrice.Mul(ratios.WithPurchases)
		return Allocation{CostValue: requiredQty.Mul(unit), AvgUnitCost: unit, Source: SourceEstimated}
	default:
		unit := salePrice.Mul(ratios.WithoutPurchases)
		return Allocation{CostValue: requiredQty.Mul(unit), AvgUnitCost: unit, Source: SourceBaseline}
	}
}
