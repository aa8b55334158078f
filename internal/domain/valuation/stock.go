package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Valoracion-api/internal/domain/entity"
)

// TotalStock devuelve el stock total de un producto: su stock propio más la
// suma del stock de todas sus variantes. No ajusta valores negativos; las
// entradas se asumen no negativas y el resultado las propaga tal cual.
func TotalStock(p entity.Product) decimal.Decimal {
	total := p.StockQuantity
	for _, v := range p.Variants {
		total = total.Add(v.StockQuantity)
	}
	return total
}
