// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
	"analyst_app/internal/feature/oxtmetrics/usecase"
)

// CachingMetricRepository decorates a MetricRepository with Redis caching.
//
// Query results are stored under a key that embeds a generation number.
// Add bumps the generation with a single INCR, so every cached query becomes
// unreachable at once without scanning keys; stale entries expire with the TTL.
// Metrics are immutable, so lookups by id are cached independently.
type CachingMetricRepository struct {
	inner     usecase.MetricRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.MetricRepository = (*CachingMetricRepository)(nil)

// NewCachingMetricRepository decorates a MetricRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "oxt_metrics".
// A nil client disables caching.
func NewCachingMetricRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MetricRepository, namespace string) *CachingMetricRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "oxt_metrics"
	}
	return &CachingMetricRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Add stores the metric and invalidates cached queries.
func (c *CachingMetricRepository) Add(ctx context.Context, m entity.Metric) (entity.Metric, error) {
	out, err := c.inner.Add(ctx, m)
	if err != nil {
		return entity.Metric{}, err
	}
	if c.rdb != nil {
		_ = c.rdb.Incr(ctx, c.generationKey()).Err() // Best effort
	}
	return out, nil
}

// GetByID checks the cache first, then falls back to the inner repository.
// Misses are not cached.
func (c *CachingMetricRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Metric, error) {
	if c.rdb == nil {
		return c.inner.GetByID(ctx, id)
	}

	key := c.idKey(id)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Metric
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetByID(ctx, id)
	if err != nil || out == nil {
		return out, err
	}
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// GetMetrics retrieves metrics, checking the cache first then falling back to the inner repository.
func (c *CachingMetricRepository) GetMetrics(ctx context.Context, filter entity.MetricFilter) ([]entity.Metric, error) {
	if c.rdb == nil {
		return c.inner.GetMetrics(ctx, filter)
	}

	gen, err := c.generation(ctx)
	if err != nil {
		// Redis is unhealthy; serve from the store without touching the cache.
		return c.inner.GetMetrics(ctx, filter)
	}
	key := c.queryKey(gen, filter)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Metric
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := c.inner.GetMetrics(ctx, filter)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// generation returns the current invalidation counter; a missing key is generation 0.
func (c *CachingMetricRepository) generation(ctx context.Context) (int64, error) {
	s, err := c.rdb.Get(ctx, c.generationKey()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}

func (c *CachingMetricRepository) generationKey() string {
	return c.namespace + ":gen"
}

func (c *CachingMetricRepository) idKey(id uuid.UUID) string {
	return c.namespace + ":id:" + id.String()
}

// queryKey generates a cache key for a specific filter at a generation.
func (c *CachingMetricRepository) queryKey(gen int64, f entity.MetricFilter) string {
	typ := "all"
	if f.MetricType != nil {
		typ = f.MetricType.String()
	}
	return fmt.Sprintf("%s:q:%d:%s:%s:%s", c.namespace, gen, typ, timePart(f.Start), timePart(f.End))
}

// timePart はストアの比較精度と揃えるためナノ秒で表します。
func timePart(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return strconv.FormatInt(t.UTC().UnixNano(), 10)
}
