package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
	SaleStatusCancelled = "cancelled"
	SaleStatusRefunded  = "refunded"
)

// Sale representa la cabecera de una venta.
type Sale struct {
	ID          string
	CompanyID   string
	TotalAmount decimal.Decimal
	Status      string
	CustomerID  *string // nil en ventas de mostrador sin cliente registrado
	CreatedAt   time.Time
}

// IsCountable indica si la venta suma a los ingresos del período.
// Las ventas canceladas o devueltas no generan revenue.
func (s Sale) IsCountable() bool {
	return s.Status != SaleStatusCancelled && s.Status != SaleStatusRefunded
}

// SaleLineItem es una línea de venta con los datos del producto ya unidos
// (JOIN en la consulta). ProductCostPrice y ProductPrice vienen del catálogo
// al momento de la consulta, no del momento de la venta.
type SaleLineItem struct {
	ID               string
	SaleID           string
	ProductID        string
	VariantID        *string
	ProductName      string
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	ProductCostPrice decimal.Decimal
	ProductPrice     decimal.Decimal
}
