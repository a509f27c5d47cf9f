package di

import (
	"time"

	"analyst_app/internal/app/config"
	"analyst_app/internal/feature/oxtmetrics/adapters"
	"analyst_app/internal/feature/oxtmetrics/usecase"
	"analyst_app/internal/platform/cache"
	"analyst_app/internal/platform/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewMetricRepository creates a MetricRepository implementation.
// The GORM repository is wrapped with Prometheus instrumentation when m is non-nil,
// and with the Redis query cache when rdb is non-nil.
func NewMetricRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration, m *metrics.Metrics) usecase.MetricRepository {
	var repo usecase.MetricRepository = adapters.NewMetricRepository(db)
	if m != nil {
		repo = m.WrapMetricRepository(repo)
	}
	if rdb != nil {
		repo = cache.NewCachingMetricRepository(rdb, ttl, repo, "oxt_metrics")
	}
	return repo
}

// NewIngestUsecase wires the ingestion use case from configuration.
func NewIngestUsecase(cfg config.CoinGeckoConfig, market usecase.MarketDataClient, repo usecase.MetricRepository) *usecase.IngestUsecase {
	return usecase.NewIngestUsecase(market, repo, usecase.IngestConfig{
		AssetID:    cfg.AssetID,
		VsCurrency: cfg.VsCurrency,
		Days:       cfg.Days,
	})
}
