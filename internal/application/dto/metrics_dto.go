package dto

import "github.com/shopspring/decimal"

// BusinessMetricsDTO respuesta de GET /api/metrics/business.
// Registro plano con la valoración de inventario y las métricas del período.
//
// Acotadas al período: revenue, sales_count, total_purchases, cogs, profit,
// profit_margin. Globales del tenant: clientes y clasificaciones de stock.
type BusinessMetricsDTO struct {
	// Período consultado (YYYY-MM-DD, ambos inclusive)
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Ventas del período
	Revenue    decimal.Decimal `json:"revenue"`     // ingresos (sin canceladas/devueltas)
	SalesCount int             `json:"sales_count"` // ventas contables del período

	// Clientes (globales, no acotados al período)
	TotalCustomers  int `json:"total_customers"`
	ActiveCustomers int `json:"active_customers"` // clientes distintos con alguna venta

	// Compras del período
	TotalPurchases int `json:"total_purchases"`

	// Valoración del stock actual
	StockByPurchasePrice decimal.Decimal `json:"stock_by_purchase_price"` // Σ valor FIFO por producto
	StockBySalePrice     decimal.Decimal `json:"stock_by_sale_price"`     // Σ stock total × precio de venta
	PotentialStockValue  decimal.Decimal `json:"potential_stock_value"`   // utilidad potencial del stock

	// Rentabilidad del período
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"` // porcentaje, 0 si revenue es 0
	COGS         decimal.Decimal `json:"cogs"`
	COGSMethod   string          `json:"cogs_method"` // actual_cost | weighted_average

	// Salud del inventario (sobre el stock propio del producto)
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`

	// Catálogo
	TotalProducts      int `json:"total_products"`
	ProductsWithStock  int `json:"products_with_stock"`  // stock total (con variantes) > 0
	ProfitableProducts int `json:"profitable_products"` // price > cost_price > 0
}

// ZeroBusinessMetrics devuelve el registro degradado (todo en cero) con el
// período informado. Se usa cuando el snapshot no pudo obtenerse: el
// dashboard muestra un estado vacío en lugar de romperse.
func ZeroBusinessMetrics(startDate, endDate string) *BusinessMetricsDTO {
	return &BusinessMetricsDTO{
		StartDate:            startDate,
		EndDate:              endDate,
		Revenue:              decimal.Zero,
		StockByPurchasePrice: decimal.Zero,
		StockBySalePrice:     decimal.Zero,
		PotentialStockValue:  decimal.Zero,
		Profit:               decimal.Zero,
		ProfitMargin:         decimal.Zero,
		COGS:                 decimal.Zero,
		COGSMethod:           "",
	}
}

// MetricsRequest parámetros de consulta del endpoint de métricas.
type MetricsRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; default: día 1 del mes
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; default: hoy
}
