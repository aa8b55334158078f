package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock propio.
// CostPrice es el costo estático registrado al crear el producto; puede ser
// cero si nunca se capturó (la valoración FIFO lo usa solo como fallback).
// El stock total del producto es StockQuantity + la suma de sus variantes.
type Product struct {
	ID            string
	CompanyID     string
	Name          string
	StockQuantity decimal.Decimal // stock propio (sin variantes)
	MinStockLevel decimal.Decimal // umbral de stock bajo; 0 = sin umbral
	CostPrice     decimal.Decimal // costo estático registrado (puede ser 0)
	Price         decimal.Decimal // precio de venta
	IsActive      bool
	Variants      []Variant
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Variant representa una variante del producto (talla, color, etc.).
// Las variantes no tienen costo propio: heredan el contexto de costo del padre.
type Variant struct {
	ID            string
	ProductID     string
	Name          string
	StockQuantity decimal.Decimal
}
