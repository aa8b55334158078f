package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Valoracion-api/internal/domain/entity"
	"github.com/jhoicas/Valoracion-api/internal/domain/repository"
)

// Snapshot es el conjunto inmutable de resultados de consulta sobre el que
// se calculan todas las métricas de una invocación. Se construye una vez por
// petición y no se modifica después.
type Snapshot struct {
	Sales     []entity.Sale          // cabeceras de venta del período
	SoldItems []entity.SaleLineItem  // líneas vendidas del período
	Products  []entity.Product       // catálogo completo, con variantes
	Purchases []entity.Purchase      // cabeceras de compra del período
	Batches   []entity.PurchaseBatch // lotes recibidos (historial completo)
	Customers repository.CustomerStats
	// AvgRecentPurchase promedio de total_amount de las compras recibidas
	// más recientes del tenant; fallback del COGS ponderado.
	AvgRecentPurchase decimal.Decimal
}

// HasPurchases indica si existe algún lote recibido en el tenant, aunque sea
// de otro producto. Decide entre los dos ratios de estimación.
func (s *Snapshot) HasPurchases() bool {
	return len(s.Batches) > 0
}

// fetchSnapshot lanza las siete consultas de lectura en paralelo y espera a
// que terminen todas. Si cualquiera falla, el snapshot completo se descarta:
// nunca se calcula sobre datos parciales.
func fetchSnapshot(
	ctx context.Context,
	repo repository.MetricsRepository,
	companyID string,
	start, end time.Time,
	recentPurchaseLimit int,
) (*Snapshot, error) {
	type salesResult struct {
		rows []entity.Sale
		err  error
	}
	type itemsResult struct {
		rows []entity.SaleLineItem
		err  error
	}
	type productsResult struct {
		rows []entity.Product
		err  error
	}
	type purchasesResult struct {
		rows []entity.Purchase
		err  error
	}
	type batchesResult struct {
		rows []entity.PurchaseBatch
		err  error
	}
	type customersResult struct {
		stats repository.CustomerStats
		err   error
	}
	type avgResult struct {
		avg decimal.Decimal
		err error
	}

	salesCh := make(chan salesResult, 1)
	itemsCh := make(chan itemsResult, 1)
	productsCh := make(chan productsResult, 1)
	purchasesCh := make(chan purchasesResult, 1)
	batchesCh := make(chan batchesResult, 1)
	customersCh := make(chan customersResult, 1)
	avgCh := make(chan avgResult, 1)

	go func() {
		rows, err := repo.GetSales(ctx, companyID, start, end)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := repo.GetSoldLineItems(ctx, companyID, start, end)
		itemsCh <- itemsResult{rows, err}
	}()
	go func() {
		rows, err := repo.GetProducts(ctx, companyID)
		productsCh <- productsResult{rows, err}
	}()
	go func() {
		rows, err := repo.GetPurchases(ctx, companyID, start, end)
		purchasesCh <- purchasesResult{rows, err}
	}()
	go func() {
		rows, err := repo.GetPurchaseBatches(ctx, companyID)
		batchesCh <- batchesResult{rows, err}
	}()
	go func() {
		stats, err := repo.GetCustomerStats(ctx, companyID)
		customersCh <- customersResult{stats, err}
	}()
	go func() {
		avg, err := repo.GetRecentPurchaseAverage(ctx, companyID, recentPurchaseLimit)
		avgCh <- avgResult{avg, err}
	}()

	sales := <-salesCh
	items := <-itemsCh
	products := <-productsCh
	purchases := <-purchasesCh
	batches := <-batchesCh
	customers := <-customersCh
	avg := <-avgCh

	if sales.err != nil {
		return nil, fmt.Errorf("snapshot: ventas: %w", sales.err)
	}
	if items.err != nil {
		return nil, fmt.Errorf("snapshot: líneas vendidas: %w", items.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("snapshot: productos: %w", products.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("snapshot: compras: %w", purchases.err)
	}
	if batches.err != nil {
		return nil, fmt.Errorf("snapshot: lotes: %w", batches.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("snapshot: clientes: %w", customers.err)
	}
	if avg.err != nil {
		return nil, fmt.Errorf("snapshot: promedio de compras: %w", avg.err)
	}

	return &Snapshot{
		Sales:             sales.rows,
		SoldItems:         items.rows,
		Products:          products.rows,
		Purchases:         purchases.rows,
		Batches:           batches.rows,
		Customers:         customers.stats,
		AvgRecentPurchase: avg.avg,
	}, nil
}
