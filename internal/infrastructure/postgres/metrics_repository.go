package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Valoracion-api/internal/domain/entity"
	"github.com/jhoicas/Valoracion-api/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo consultas de solo lectura que alimentan el motor de valoración.
type MetricsRepo struct {
	pool *pgxpool.Pool
}

// NewMetricsRepository construye el adaptador de métricas.
func NewMetricsRepository(pool *pgxpool.Pool) *MetricsRepo {
	return &MetricsRepo{pool: pool}
}

// GetSales devuelve las cabeceras de venta del período, de cualquier estado.
func (r *MetricsRepo) GetSales(
	ctx context.Context,
	companyID string,
	start, end time.Time,
) ([]entity.Sale, error) {
	const query = `
	SELECT id, company_id, total_amount, status, customer_id, created_at
	FROM sales
	WHERE company_id = $1
	  AND created_at BETWEEN $2 AND $3
	ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("metrics.GetSales: %w", err)
	}
	defer rows.Close()

	var sales []entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.TotalAmount, &s.Status, &s.CustomerID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("metrics.GetSales scan: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// GetSoldLineItems devuelve las líneas de las ventas contables del período
// con costo y precio actuales del producto unidos. El INNER JOIN a products
// descarta líneas huérfanas (producto eliminado) sin abortar el cálculo.
func (r *MetricsRepo) GetSoldLineItems(
	ctx context.Context,
	companyID string,
	start, end time.Time,
) ([]entity.SaleLineItem, error) {
	const query = `
	SELECT
	    li.id, li.sale_id, li.product_id, li.variant_id,
	    li.quantity, li.unit_price,
	    p.cost_price, p.price, p.name
	FROM sale_items li
	JOIN sales    s ON s.id = li.sale_id
	JOIN products p ON p.id = li.product_id
	WHERE s.company_id = $1
	  AND s.created_at BETWEEN $2 AND $3
	  AND s.status NOT IN ('cancelled', 'refunded')
	ORDER BY s.created_at, li.id`

	rows, err := r.pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("metrics.GetSoldLineItems: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleLineItem
	for rows.Next() {
		var it entity.SaleLineItem
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.VariantID,
			&it.Quantity, &it.UnitPrice,
			&it.ProductCostPrice, &it.ProductPrice, &it.ProductName,
		); err != nil {
			return nil, fmt.Errorf("metrics.GetSoldLineItems scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetProducts devuelve el catálogo completo de la empresa con las variantes
// cargadas (segunda consulta agrupada en memoria).
func (r *MetricsRepo) GetProducts(ctx context.Context, companyID string) ([]entity.Product, error) {
	const productQuery = `
	SELECT id, company_id, name, stock_quantity, min_stock_level,
	       cost_price, price, is_active, created_at, updated_at
	FROM products
	WHERE company_id = $1
	ORDER BY created_at`

	rows, err := r.pool.Query(ctx, productQuery, companyID)
	if err != nil {
		return nil, fmt.Errorf("metrics.GetProducts: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	index := make(map[string]int)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Name, &p.StockQuantity, &p.MinStockLevel,
			&p.CostPrice, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("metrics.GetProducts scan: %w", err)
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("metrics.GetProducts rows: %w", err)
	}

	const variantQuery = `
	SELECT v.id, v.product_id, v.name, v.stock_quantity
	FROM product_variants v
	JOIN products p ON p.id = v.product_id
	WHERE p.company_id = $1
	ORDER BY v.product_id, v.id`

	vrows, err := r.pool.Query(ctx, variantQuery, companyID)
	if err != nil {
		return nil, fmt.Errorf("metrics.GetProducts variantes: %w", err)
	}
	defer vrows.Close()

	for vrows.Next() {
		var v entity.Variant
		if err := vrows.Scan(&v.ID, &v.ProductID, &v.Name, &v.StockQuantity); err != nil {
			return nil, fmt.Errorf("metrics.GetProducts scan variante: %w", err)
		}
		if i, ok := index[v.ProductID]; ok {
			products[i].Variants = append(products[i].Variants, v)
		}
	}
	return products, vrows.Err()
}

// GetPurchases devuelve las cabeceras de compra del período.
func (r *MetricsRepo) GetPurchases(
	ctx context.Context,
	companyID string,
	start, end time.Time,
) ([]entity.Purchase, error) {
	const query = `
	SELECT id, company_id, total_amount, status, supplier_id, created_at
	FROM purchases
	WHERE company_id = $1
	  AND created_at BETWEEN $2 AND $3
	ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("metrics.GetPurchases: %w", err)
	}
	defer rows.Close()

	var purchases []entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.TotalAmount, &p.Status, &p.SupplierID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("metrics.GetPurchases scan: %w", err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// GetPurchaseBatches devuelve los lotes de costeo: líneas de órdenes en
// estado "received" con la fecha de la cabecera como clave de orden FIFO.
// No se filtra por período: el FIFO camina el historial completo.
func (r *MetricsRepo) GetPurchaseBatches(ctx context.Context, companyID string) ([]entity.PurchaseBatch, error) {
	const query = `
	SELECT pi.id, pi.purchase_id, pi.product_id,
	       pi.quantity_ordered, pi.quantity_received, pi.unit_cost,
	       pu.created_at
	FROM purchase_items pi
	JOIN purchases pu ON pu.id = pi.purchase_id
	WHERE pu.company_id = $1
	  AND pu.status = 'received'
	ORDER BY pu.created_at, pi.id`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("metrics.GetPurchaseBatches: %w", err)
	}
	defer rows.Close()

	var batches []entity.PurchaseBatch
	for rows.Next() {
		var b entity.PurchaseBatch
		if err := rows.Scan(
			&b.ID, &b.PurchaseID, &b.ProductID,
			&b.QuantityOrdered, &b.QuantityReceived, &b.UnitCost,
			&b.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("metrics.GetPurchaseBatches scan: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// GetCustomerStats devuelve el total de clientes y los clientes distintos
// con alguna venta. Ambos conteos son globales del tenant, no del período.
func (r *MetricsRepo) GetCustomerStats(ctx context.Context, companyID string) (repository.CustomerStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM customers WHERE company_id = $1)                             AS total,
	    (SELECT COUNT(DISTINCT customer_id) FROM sales
	      WHERE company_id = $1 AND customer_id IS NOT NULL)                               AS active`

	var stats repository.CustomerStats
	err := r.pool.QueryRow(ctx, query, companyID).Scan(&stats.TotalCustomers, &stats.ActiveCustomers)
	if err != nil {
		return repository.CustomerStats{}, fmt.Errorf("metrics.GetCustomerStats: %w", err)
	}
	return stats, nil
}

// GetRecentPurchaseAverage devuelve el promedio de total_amount de las
// `limit` compras recibidas más recientes; cero si no hay ninguna.
func (r *MetricsRepo) GetRecentPurchaseAverage(
	ctx context.Context,
	companyID string,
	limit int,
) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(AVG(total_amount), 0)
	FROM (
	    SELECT total_amount
	    FROM purchases
	    WHERE company_id = $1 AND status = 'received'
	    ORDER BY created_at DESC
	    LIMIT $2
	) recent`

	var avg decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, companyID, limit).Scan(&avg); err != nil {
		return decimal.Zero, fmt.Errorf("metrics.GetRecentPurchaseAverage: %w", err)
	}
	return avg, nil
}
