// Package pdf genera el reporte descargable de Valoración de Inventario y
// Métricas de Negocio (página A4, una tabla por sección).
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Valoracion-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MetricsReportGenerator genera el PDF del registro de métricas usando Maroto v2.
type MetricsReportGenerator struct{}

// NewMetricsReportGenerator construye el generador.
func NewMetricsReportGenerator() *MetricsReportGenerator { return &MetricsReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *MetricsReportGenerator) Generate(companyName string, m *dto.BusinessMetricsDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Métricas de Negocio", true).
		WithAuthor(companyName, true).
		Build()

	mt := maroto.New(cfg)

	mt.AddRows(headerRow(companyName, m))
	mt.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	mt.AddRows(sectionRow("VENTAS DEL PERÍODO"))
	mt.AddRows(
		metricRow("Ingresos", money(m.Revenue)),
		metricRow("Ventas", fmt.Sprintf("%d", m.SalesCount)),
		metricRow("COGS ("+cogsMethodLabel(m.COGSMethod)+")", money(m.COGS)),
		metricRow("Utilidad bruta", money(m.Profit)),
		metricRow("Margen bruto", m.ProfitMargin.StringFixed(2)+" %"),
	)

	mt.AddRows(sectionRow("VALORACIÓN DEL INVENTARIO"))
	mt.AddRows(
		metricRow("Stock a precio de compra (FIFO)", money(m.StockByPurchasePrice)),
		metricRow("Stock a precio de venta", money(m.StockBySalePrice)),
		metricRow("Utilidad potencial del stock", money(m.PotentialStockValue)),
	)

	mt.AddRows(sectionRow("SALUD DEL CATÁLOGO"))
	mt.AddRows(
		metricRow("Productos", fmt.Sprintf("%d", m.TotalProducts)),
		metricRow("Con stock", fmt.Sprintf("%d", m.ProductsWithStock)),
		metricRow("Rentables", fmt.Sprintf("%d", m.ProfitableProducts)),
		metricRow("Stock bajo", fmt.Sprintf("%d", m.LowStockCount)),
		metricRow("Agotados", fmt.Sprintf("%d", m.OutOfStockCount)),
	)

	mt.AddRows(sectionRow("CLIENTES Y COMPRAS"))
	mt.AddRows(
		metricRow("Clientes registrados", fmt.Sprintf("%d", m.TotalCustomers)),
		metricRow("Clientes con compras", fmt.Sprintf("%d", m.ActiveCustomers)),
		metricRow("Órdenes de compra del período", fmt.Sprintf("%d", m.TotalPurchases)),
	)

	mt.AddRows(line.NewRow(3))
	mt.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	mt.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(
			"Los valores de stock sin historial de compras se estiman con la cadena "+
				"de fallback de costos (costo registrado o fracción del precio de venta).",
			props.Text{Size: 6.5, Color: colorGray, Top: 1},
		),
	)))

	doc, err := mt.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la empresa (izq) y período del reporte (der).
func headerRow(companyName string, m *dto.BusinessMetricsDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Valoración de Inventario y Métricas de Negocio", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(m.StartDate+" — "+m.EndDate, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// sectionRow: título de sección.
func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		}),
	))
}

// metricRow: etiqueta a la izquierda, valor a la derecha.
func metricRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 8.5, Top: 1, Left: 2})),
		col.New(4).Add(text.New(value, props.Text{
			Size: 8.5, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

func cogsMethodLabel(method string) string {
	if method == "weighted_average" {
		return "promedio ponderado"
	}
	return "costo real"
}

// money formatea un decimal como moneda sin decimales con puntos de miles.
func money(d decimal.Decimal) string {
	return "$" + formatMoney(d.StringFixed(0))
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}
