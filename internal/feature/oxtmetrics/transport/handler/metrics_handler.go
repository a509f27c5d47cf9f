// Package handler はoxtmetricsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
	"analyst_app/internal/feature/oxtmetrics/transport/http/dto"
	"analyst_app/internal/feature/oxtmetrics/usecase"
	"analyst_app/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

const (
	pingFailedDetail   = "Failed to ping CoinGecko API"
	ingestFailedDetail = "Failed to ingest OXT metrics"
	queryFailedDetail  = "Failed to retrieve OXT metrics"
)

// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type (
	// PingUsecase は外部APIの疎通確認ユースケースです。
	PingUsecase interface {
		Ping(ctx context.Context) (json.RawMessage, error)
	}
	// IngestUsecase はメトリクス取り込みユースケースです。
	IngestUsecase interface {
		Execute(ctx context.Context) (usecase.IngestResult, error)
	}
	// MetricsUsecase はメトリクス検索ユースケースです。
	MetricsUsecase interface {
		GetMetrics(ctx context.Context, filter entity.MetricFilter) ([]entity.Metric, error)
	}
)

// MetricsHandler はOXTメトリクス関連のHTTPリクエストを処理します。
type MetricsHandler struct {
	ping    PingUsecase
	ingest  IngestUsecase
	metrics MetricsUsecase
}

// NewMetricsHandler はMetricsHandlerの新しいインスタンスを生成します。
func NewMetricsHandler(ping PingUsecase, ingest IngestUsecase, metrics MetricsUsecase) *MetricsHandler {
	return &MetricsHandler{ping: ping, ingest: ingest, metrics: metrics}
}

// Ping は外部APIのステータスJSONをそのまま返します。
//
// エンドポイント: GET /ping
func (h *MetricsHandler) Ping(c *gin.Context) {
	raw, err := h.ping.Ping(c.Request.Context())
	if err != nil {
		respondError(c, apperror.Classify(err, apperror.KindExternalAPI, pingFailedDetail), pingFailedDetail)
		return
	}
	slog.Info("CoinGecko ping successful")
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// Ingest はマーケットチャートを取得してメトリクスとして保存します。
//
// エンドポイント: POST /api/v1/data/ingest/oxt
func (h *MetricsHandler) Ingest(c *gin.Context) {
	res, err := h.ingest.Execute(c.Request.Context())
	if err != nil {
		respondError(c, apperror.Classify(err, apperror.KindDatabase, ingestFailedDetail), ingestFailedDetail)
		return
	}
	slog.Info("OXT metrics ingestion successful", "count", res.Ingested)
	c.JSON(http.StatusOK, dto.IngestResponse{Status: res.Status})
}

// GetMetrics は保存済みメトリクスをフィルタして返します。
//
// エンドポイント例:
// GET /api/v1/oxt/metrics?metric_type=network_activity&start_date=2024-01-01T00:00:00&end_date=2024-01-31
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	ms, err := h.metrics.GetMetrics(c.Request.Context(), filter)
	if err != nil {
		respondError(c, apperror.Classify(err, apperror.KindDatabase, queryFailedDetail), queryFailedDetail)
		return
	}

	out := make([]dto.MetricResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.NewMetricResponse(m))
	}
	slog.Info("retrieved OXT metrics", "count", len(out))
	c.JSON(http.StatusOK, out)
}

// parseFilter はクエリパラメータを検索条件に変換します。空の値は未指定として扱います。
func parseFilter(c *gin.Context) (entity.MetricFilter, error) {
	var f entity.MetricFilter

	if s := strings.TrimSpace(c.Query("metric_type")); s != "" {
		t, err := entity.ParseMetricType(s)
		if err != nil {
			return f, apperror.InvalidInput(fmt.Sprintf("invalid metric_type %q: expected one of %s", s, metricTypeNames()))
		}
		f.MetricType = &t
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{"start_date", &f.Start},
		{"end_date", &f.End},
	} {
		s := strings.TrimSpace(c.Query(p.name))
		if s == "" {
			continue
		}
		t, err := ParseTimestamp(s)
		if err != nil {
			return f, apperror.InvalidInput(fmt.Sprintf("invalid %s %q: expected ISO-8601 datetime", p.name, s))
		}
		*p.dst = &t
	}
	return f, nil
}

// metricTypeNames は有効なmetric_typeをカンマ区切りで返します。
func metricTypeNames() string {
	names := make([]string, len(entity.MetricTypes))
	for i, t := range entity.MetricTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// timestampLayouts は受け付ける日時フォーマットです。タイムゾーンがない場合はUTCとみなします。
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp はISO-8601の日時文字列をUTCのtime.Timeに変換します。
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// respondError はエラー種別に応じたステータスとログレベルでレスポンスを返します。
// NotFound と InvalidInput はエラー自身の詳細を、それ以外は publicDetail を返します。
func respondError(c *gin.Context, err error, publicDetail string) {
	var ae *apperror.Error
	kind := apperror.KindOf(err)
	detail := publicDetail

	switch kind {
	case apperror.KindNotFound, apperror.KindInvalidInput:
		if errors.As(err, &ae) && ae.Detail != "" {
			detail = ae.Detail
		}
		slog.Warn("request rejected", "path", c.FullPath(), "kind", kind.String(), "detail", detail)
	case apperror.KindUnknown:
		detail = "An unexpected error occurred."
		slog.Error("unhandled error", "path", c.FullPath(), "error", err)
	default:
		slog.Error("request failed", "path", c.FullPath(), "kind", kind.String(), "error", err)
	}
	if detail == "" {
		detail = http.StatusText(kind.Status())
	}
	c.JSON(kind.Status(), dto.ErrorResponse{Detail: detail})
}
