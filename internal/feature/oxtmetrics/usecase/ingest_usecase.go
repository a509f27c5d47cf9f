package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
)

const (
	// IngestSuccessMessage は取り込み成功時に返すステータス文言です。
	IngestSuccessMessage = "OXT metrics ingested successfully"

	DefaultAssetID    = "orchid"
	DefaultVsCurrency = "usd"
	DefaultDays       = "max"
	DefaultSource     = "CoinGecko"
)

// MarketDataClient は外部のマーケットデータAPIを抽象化します。
type MarketDataClient interface {
	GetMarketChart(ctx context.Context, assetID, vsCurrency, days string) (entity.MarketChart, error)
}

// IngestConfig は取り込み対象の銘柄と期間を指定します。
type IngestConfig struct {
	AssetID    string // CoinGecko のアセットID（例: "orchid"）
	VsCurrency string // 建て通貨（例: "usd"）
	Days       string // 取得期間（例: "max", "30"）
	Source     string // 保存時の出典名
}

func (c IngestConfig) withDefaults() IngestConfig {
	if c.AssetID == "" {
		c.AssetID = DefaultAssetID
	}
	if c.VsCurrency == "" {
		c.VsCurrency = DefaultVsCurrency
	}
	if c.Days == "" {
		c.Days = DefaultDays
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
	return c
}

// IngestResult は取り込み結果です。
type IngestResult struct {
	Status   string
	Ingested int
}

// seriesMapping はマーケットチャートの各系列をどのメトリクス種別で保存するかを表します。
// 価格を NETWORK_ACTIVITY、時価総額と出来高を TRANSACTION_VOLUME に割り当てるのは暫定的な分類で、
// 既存データとの互換性のために維持しています。
type seriesMapping struct {
	name       string
	metricType entity.MetricType
	points     func(entity.MarketChart) []entity.DataPoint
}

var ingestSeries = []seriesMapping{
	{"prices", entity.NetworkActivity, func(c entity.MarketChart) []entity.DataPoint { return c.Prices }},
	{"market_caps", entity.TransactionVolume, func(c entity.MarketChart) []entity.DataPoint { return c.MarketCaps }},
	{"total_volumes", entity.TransactionVolume, func(c entity.MarketChart) []entity.DataPoint { return c.TotalVolumes }},
}

// IngestUsecase は外部APIからOXTのマーケットチャートを取得し、メトリクスとして永続化します。
type IngestUsecase struct {
	market MarketDataClient
	metric MetricRepository
	cfg    IngestConfig
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market MarketDataClient, metric MetricRepository, cfg IngestConfig) *IngestUsecase {
	return &IngestUsecase{market: market, metric: metric, cfg: cfg.withDefaults()}
}

// Execute はマーケットチャートを1回取得し、価格・時価総額・出来高の順に1点ずつ保存します。
// 保存はトランザクションを使わないため、途中で失敗した場合はそれまでの分が残ります。
// 重複排除は行わないので、再実行すると同じデータが再度保存されます。
func (iu *IngestUsecase) Execute(ctx context.Context) (IngestResult, error) {
	chart, err := iu.market.GetMarketChart(ctx, iu.cfg.AssetID, iu.cfg.VsCurrency, iu.cfg.Days)
	if err != nil {
		return IngestResult{}, fmt.Errorf("fetch market chart for %s: %w", iu.cfg.AssetID, err)
	}

	unit := strings.ToUpper(iu.cfg.VsCurrency)
	ingested := 0
	for _, s := range ingestSeries {
		for _, p := range s.points(chart) {
			m := entity.NewMetric(s.metricType, entity.TimeFromMillis(p.TimestampMs), p.Value, unit, iu.cfg.Source)
			if _, err := iu.metric.Add(ctx, m); err != nil {
				slog.Error("failed to store metric",
					"series", s.name, "timestamp", m.Timestamp, "stored", ingested, "error", err)
				return IngestResult{}, fmt.Errorf("store %s point: %w", s.name, err)
			}
			ingested++
		}
	}

	slog.Info("oxt metrics ingested", "asset", iu.cfg.AssetID, "count", ingested)
	return IngestResult{Status: IngestSuccessMessage, Ingested: ingested}, nil
}
