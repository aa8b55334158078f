// Package rediscache implementa la memoización del registro de métricas en
// Redis, con TTL corto. La caché nunca es autoritativa: si Redis no está
// disponible el caso de uso recalcula desde la base de datos.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Valoracion-api/internal/application/analytics"
	"github.com/jhoicas/Valoracion-api/internal/application/dto"
)

var _ analytics.MetricsCache = (*MetricsCache)(nil)

// MetricsCache adaptador Redis del puerto analytics.MetricsCache.
type MetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New construye el cliente y el adaptador.
func New(addr, password string, db int, ttl time.Duration) *MetricsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &MetricsCache{client: client, ttl: ttl}
}

// Ping verifica la conexión (usado al arrancar para loguear el estado).
func (c *MetricsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *MetricsCache) Close() error {
	return c.client.Close()
}

// Get devuelve el registro memoizado o (nil, nil) en caso de miss.
func (c *MetricsCache) Get(
	ctx context.Context,
	companyID string,
	start, end time.Time,
) (*dto.BusinessMetricsDTO, error) {
	val, err := c.client.Get(ctx, cacheKey(companyID, start, end)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rediscache: get: %w", err)
	}

	var m dto.BusinessMetricsDTO
	if err := json.Unmarshal([]byte(val), &m); err != nil {
		// Entrada corrupta: tratarla como miss
		return nil, fmt.Errorf("rediscache: decodificar: %w", err)
	}
	return &m, nil
}

// Set guarda el registro con el TTL configurado.
func (c *MetricsCache) Set(
	ctx context.Context,
	companyID string,
	start, end time.Time,
	m *dto.BusinessMetricsDTO,
) error {
	if m == nil {
		return nil
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("rediscache: codificar: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(companyID, start, end), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("rediscache: set: %w", err)
	}
	return nil
}

// cacheKey construye la clave por empresa y período.
func cacheKey(companyID string, start, end time.Time) string {
	return fmt.Sprintf("metrics:%s:%s:%s",
		companyID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
