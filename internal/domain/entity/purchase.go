package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseStatusDraft     = "draft"
	PurchaseStatusOrdered   = "ordered"
	PurchaseStatusReceived  = "received"
	PurchaseStatusCancelled = "cancelled"
)

// Purchase representa la cabecera de una orden de compra a proveedor.
type Purchase struct {
	ID          string
	CompanyID   string
	TotalAmount decimal.Decimal
	Status      string
	SupplierID  *string
	CreatedAt   time.Time
}

// PurchaseBatch es un lote de compra: una línea de una orden recibida.
// Solo las órdenes en estado "received" generan lotes; borradores y
// canceladas no aportan historial de costos.
// ReceivedAt es el created_at de la cabecera y es la clave de orden FIFO.
type PurchaseBatch struct {
	ID               string
	PurchaseID       string
	ProductID        string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitCost         decimal.Decimal
	ReceivedAt       time.Time
}
