package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Valoracion-api/internal/application/analytics"
	"github.com/jhoicas/Valoracion-api/internal/application/dto"
	"github.com/jhoicas/Valoracion-api/internal/domain/entity"
	"github.com/jhoicas/Valoracion-api/internal/domain/repository"
	"github.com/jhoicas/Valoracion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeMetricsRepo sirve el snapshot desde memoria. Las ventas respetan la
// ventana de fechas para poder probar los límites inclusivos del período.
type fakeMetricsRepo struct {
	sales     []entity.Sale
	items     []entity.SaleLineItem
	products  []entity.Product
	purchases []entity.Purchase
	batches   []entity.PurchaseBatch
	customers repository.CustomerStats
	avgRecent decimal.Decimal

	productsErr error // si no es nil, GetProducts falla
}

func (f *fakeMetricsRepo) GetSales(_ context.Context, _ string, start, end time.Time) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range f.sales {
		if !s.CreatedAt.Before(start) && !s.CreatedAt.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeMetricsRepo) GetSoldLineItems(_ context.Context, _ string, _, _ time.Time) ([]entity.SaleLineItem, error) {
	return f.items, nil
}

func (f *fakeMetricsRepo) GetProducts(_ context.Context, _ string) ([]entity.Product, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return f.products, nil
}

func (f *fakeMetricsRepo) GetPurchases(_ context.Context, _ string, _, _ time.Time) ([]entity.Purchase, error) {
	return f.purchases, nil
}

func (f *fakeMetricsRepo) GetPurchaseBatches(_ context.Context, _ string) ([]entity.PurchaseBatch, error) {
	return f.batches, nil
}

func (f *fakeMetricsRepo) GetCustomerStats(_ context.Context, _ string) (repository.CustomerStats, error) {
	return f.customers, nil
}

func (f *fakeMetricsRepo) GetRecentPurchaseAverage(_ context.Context, _ string, _ int) (decimal.Decimal, error) {
	return f.avgRecent, nil
}

// fakeCache caché en memoria con errores inyectables.
type fakeCache struct {
	store  map[string]*dto.BusinessMetricsDTO
	getErr error
	setErr error
	hits   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]*dto.BusinessMetricsDTO)}
}

func cacheKey(companyID string, start, end time.Time) string {
	return companyID + "|" + start.Format(time.RFC3339Nano) + "|" + end.Format(time.RFC3339Nano)
}

func (c *fakeCache) Get(_ context.Context, companyID string, start, end time.Time) (*dto.BusinessMetricsDTO, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if m, ok := c.store[cacheKey(companyID, start, end)]; ok {
		c.hits++
		return m, nil
	}
	return nil, nil
}

func (c *fakeCache) Set(_ context.Context, companyID string, start, end time.Time, m *dto.BusinessMetricsDTO) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.store[cacheKey(companyID, start, end)] = m
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "empresa-1"

var testPeriod = dto.MetricsRequest{StartDate: "2026-01-01", EndDate: "2026-01-31"}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// repoEscenarioBase: una venta completada de $500 con una línea de 2 unidades
// (costo 100) y un producto con stock 10 a costo 100 / precio 150.
func repoEscenarioBase() *fakeMetricsRepo {
	productID := uuid.NewString()
	saleID := uuid.NewString()

	return &fakeMetricsRepo{
		sales: []entity.Sale{
			{
				ID:          saleID,
				CompanyID:   testCompanyID,
				TotalAmount: dec("500"),
				Status:      entity.SaleStatusCompleted,
				CreatedAt:   time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
			},
		},
		items: []entity.SaleLineItem{
			{
				ID:               uuid.NewString(),
				SaleID:           saleID,
				ProductID:        productID,
				Quantity:         dec("2"),
				UnitPrice:        dec("250"),
				ProductCostPrice: dec("100"),
				ProductPrice:     dec("150"),
			},
		},
		products: []entity.Product{
			{
				ID:            productID,
				CompanyID:     testCompanyID,
				Name:          "Camiseta básica",
				StockQuantity: dec("10"),
				CostPrice:     dec("100"),
				Price:         dec("150"),
				IsActive:      true,
			},
		},
		customers: repository.CustomerStats{TotalCustomers: 4, ActiveCustomers: 2},
	}
}

func newUseCase(repo repository.MetricsRepository, cache analytics.MetricsCache) *analytics.MetricsUseCase {
	return analytics.NewMetricsUseCase(repo, cache, logger.Nop(), analytics.ValuationParams{})
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos
// ──────────────────────────────────────────────────────────────────────────────

func TestGetBusinessMetrics_EscenarioCompleto(t *testing.T) {
	uc := newUseCase(repoEscenarioBase(), nil)

	m, err := uc.GetBusinessMetrics(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "2026-01-01", m.StartDate)
	assert.Equal(t, "2026-01-31", m.EndDate)

	assert.True(t, m.Revenue.Equal(dec("500")), "revenue dio %s", m.Revenue)
	assert.Equal(t, 1, m.SalesCount)

	// COGS real: 2 × 100. Revenue 500 → utilidad 300, margen 60%.
	assert.True(t, m.COGS.Equal(dec("200")), "cogs dio %s", m.COGS)
	assert.Equal(t, "actual_cost", m.COGSMethod)
	assert.True(t, m.Profit.Equal(dec("300")), "profit dio %s", m.Profit)
	assert.True(t, m.ProfitMargin.Equal(dec("60")), "margen dio %s", m.ProfitMargin)

	// Sin lotes, el stock se valora al costo registrado: 10×100 y 10×150.
	assert.True(t, m.StockByPurchasePrice.Equal(dec("1000")), "stock a compra dio %s", m.StockByPurchasePrice)
	assert.True(t, m.StockBySalePrice.Equal(dec("1500")), "stock a venta dio %s", m.StockBySalePrice)
	assert.True(t, m.PotentialStockValue.Equal(dec("500")), "valor potencial dio %s", m.PotentialStockValue)

	assert.Equal(t, 4, m.TotalCustomers)
	assert.Equal(t, 2, m.ActiveCustomers)
	assert.Equal(t, 1, m.TotalProducts)
	assert.Equal(t, 1, m.ProductsWithStock)
	assert.Equal(t, 1, m.ProfitableProducts)
	assert.Equal(t, 0, m.OutOfStockCount)
}

// El mismo snapshot debe producir siempre el mismo registro.
func TestGetBusinessMetrics_EsIdempotente(t *testing.T) {
	uc := newUseCase(repoEscenarioBase(), nil)

	primero, err := uc.GetBusinessMetrics(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)
	segundo, err := uc.GetBusinessMetrics(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)

	assert.Equal(t, primero, segundo)
}

// Si una consulta del snapshot falla, el registro sale todo en cero y la
// petición NO devuelve error: el dashboard muestra estado vacío.
func TestGetBusinessMetrics_FalloDeConsultaDegradaACero(t *testing.T) {
	repo := repoEscenarioBase()
	repo.productsErr = errors.New("conexión perdida")
	uc := newUseCase(repo, nil)

	m, err := uc.GetBusinessMetrics(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err, "un fallo de datos nunca es un error de la petición")
	require.NotNil(t, m)

	assert.Equal(t, "2026-01-01", m.StartDate)
	assert.Equal(t, "2026-01-31", m.EndDate)
	assert.True(t, m.Revenue.IsZero())
	assert.True(t, m.StockByPurchasePrice.IsZero())
	assert.Equal(t, 0, m.SalesCount)
	assert.Equal(t, 0, m.TotalProducts)
}

// El período es inclusivo hasta el último instante del end_date: una venta a
// las 23:59:59.999… del 31 entra, una a las 00:00:00 del 1 de febrero no.
func TestGetBusinessMetrics_VentanaIncluyeElFinDeDia(t *testing.T) {
	repo := repoEscenarioBase()
	repo.sales = []entity.Sale{
		{
			TotalAmount: dec("100"),
			Status:      entity.SaleStatusCompleted,
			CreatedAt:   time.Date(2026, 1, 31, 23, 59, 59, 999999999, time.Local),
		},
		{
			TotalAmount: dec("999"),
			Status:      entity.SaleStatusCompleted,
			CreatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local),
		},
		{
			TotalAmount: dec("999"),
			Status:      entity.SaleStatusCompleted,
			CreatedAt:   time.Date(2025, 12, 31, 23, 0, 0, 0, time.Local),
		},
	}
	uc := newUseCase(repo, nil)

	m, err := uc.GetBusinessMetrics(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)

	assert.Equal(t, 1, m.SalesCount)
	assert.True(t, m.Revenue.Equal(dec("100")),
		"solo la venta del 31 a fin de día entra, dio %s", m.Revenue)
}

func TestGetBusinessMetrics_FechaInvalidaDevuelveError(t *testing.T) {
	uc := newUseCase(repoEscenarioBase(), nil)

	_, err := uc.GetBusinessMetrics(context.Background(), testCompanyID,
		dto.MetricsRequest{StartDate: "31-01-2026"})
	assert.Error(t, err)

	_, err = uc.GetBusinessMetrics(context.Background(), testCompanyID,
		dto.MetricsRequest{StartDate: "2026-02-01", EndDate: "2026-01-01"})
	assert.Error(t, err, "start posterior a end es inválido")
}

// La segunda lectura del mismo período sale de la caché: un cambio en los
// datos de origen no se refleja hasta que la entrada expire.
func TestGetBusinessMetrics_SegundaLecturaSaleDeCache(t *testing.T) {
	repo := repoEscenarioBase()
	cache := newFakeCache()
	uc := newUseCase(repo, cache)

	primero, err := uc.GetBusinessMetrics(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)

	// Una venta nueva en el origen no debe verse todavía
	repo.sales = append(repo.sales, entity.Sale{
		TotalAmount: dec("800"),
		Status:      entity.SaleStatusCompleted,
		CreatedAt:   time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC),
	})

	segundo, err := uc.GetBusinessMetrics(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, primero, segundo, "la segunda lectura debe ser la entrada cacheada")
}

// Un fallo de caché (lectura o escritura) nunca rompe la petición.
func TestGetBusinessMetrics_ErrorDeCacheNoRompeLaPeticion(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis caído")
	cache.setErr = errors.New("redis caído")
	uc := newUseCase(repoEscenarioBase(), cache)

	m, err := uc.GetBusinessMetrics(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)
	assert.True(t, m.Revenue.Equal(dec("500")), "debe calcular en vivo, dio %s", m.Revenue)
}
