package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Valoracion-api/internal/domain/entity"
)

// CustomerStats conteos de clientes del tenant (no acotados al período).
type CustomerStats struct {
	// TotalCustomers clientes registrados en la empresa.
	TotalCustomers int
	// ActiveCustomers clientes distintos con al menos una venta (customer_id
	// no nulo en cualquier venta histórica).
	ActiveCustomers int
}

// MetricsRepository define las consultas de solo lectura que alimentan el
// snapshot del motor de valoración. Las implementaciones no modifican datos.
//
// Acotadas al período: ventas, líneas vendidas y compras. Globales del
// tenant: productos, lotes (el FIFO necesita el historial completo),
// clientes y promedio de compras recientes.
type MetricsRepository interface {
	// GetSales devuelve las cabeceras de venta del período (todas, incluidas
	// canceladas; el motor decide cuáles suman revenue).
	GetSales(ctx context.Context, companyID string, start, end time.Time) ([]entity.Sale, error)

	// GetSoldLineItems devuelve las líneas de las ventas contables del
	// período con costo y precio del producto ya unidos. Las líneas cuyo
	// producto fue eliminado desaparecen del JOIN.
	GetSoldLineItems(ctx context.Context, companyID string, start, end time.Time) ([]entity.SaleLineItem, error)

	// GetProducts devuelve todos los productos de la empresa con sus
	// variantes cargadas.
	GetProducts(ctx context.Context, companyID string) ([]entity.Product, error)

	// GetPurchases devuelve las cabeceras de compra del período.
	GetPurchases(ctx context.Context, companyID string, start, end time.Time) ([]entity.Purchase, error)

	// GetPurchaseBatches devuelve los lotes disponibles para costeo FIFO:
	// líneas de órdenes en estado "received", ordenadas por fecha de la
	// orden ascendente. No se filtra por período.
	GetPurchaseBatches(ctx context.Context, companyID string) ([]entity.PurchaseBatch, error)

	// GetCustomerStats devuelve los conteos de clientes del tenant.
	GetCustomerStats(ctx context.Context, companyID string) (CustomerStats, error)

	// GetRecentPurchaseAverage devuelve el promedio de total_amount de las
	// `limit` compras recibidas más recientes; cero si no hay ninguna.
	GetRecentPurchaseAverage(ctx context.Context, companyID string, limit int) (decimal.Decimal, error)
}
