// Package valuation implementa el motor de valoración de inventario y
// métricas de negocio: agregación de stock, costeo FIFO con cadena de
// fallbacks, COGS y rentabilidad del período.
//
// Todo el paquete es puro: sin I/O, sin reloj, sin logging. Las mismas
// entradas producen siempre las mismas salidas.
package valuation

import "github.com/shopspring/decimal"

// Ratios por defecto de la cadena de estimación de costos.
// Cuando un producto no tiene lotes de compra ni costo registrado, el costo
// se estima como fracción del precio de venta: 70% si el tenant tiene algún
// historial de compras (margen típico de retail), 60% si no hay historial
// alguno (estimación más conservadora para no inflar la valoración).
const (
	defaultRatioWithPurchases    = "0.7"
	defaultRatioWithoutPurchases = "0.6"
)

// FallbackRatios agrupa los ratios de estimación de la cadena de fallback.
// Se construye desde configuración para que operaciones pueda ajustarlos
// sin tocar código.
type FallbackRatios struct {
	// WithPurchases: costo estimado = precio de venta × ratio, cuando el
	// tenant tiene al menos un lote de compra recibido (aunque sea de otro
	// producto).
	WithPurchases decimal.Decimal
	// WithoutPurchases: igual, pero cuando no existe ningún lote recibido.
	WithoutPurchases decimal.Decimal
}

// DefaultFallbackRatios devuelve los ratios estándar (0.70 / 0.60).
func DefaultFallbackRatios() FallbackRatios {
	return FallbackRatios{
		WithPurchases:    decimal.RequireFromString(defaultRatioWithPurchases),
		WithoutPurchases: decimal.RequireFromString(defaultRatioWithoutPurchases),
	}
}

// NewFallbackRatios construye los ratios desde valores de configuración.
// Valores no positivos caen al default correspondiente.
func NewFallbackRatios(withPurchases, withoutPurchases float64) FallbackRatios {
	r := DefaultFallbackRatios()
	if withPurchases > 0 {
		r.WithPurchases = decimal.NewFromFloat(withPurchases)
	}
	if withoutPurchases > 0 {
		r.WithoutPurchases = decimal.NewFromFloat(withoutPurchases)
	}
	return r
}
