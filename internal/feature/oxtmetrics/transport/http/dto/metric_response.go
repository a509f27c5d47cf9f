package dto

import "analyst_app/internal/feature/oxtmetrics/domain/entity"

// TimestampLayout はタイムゾーンなしのISO-8601表記です（マイクロ秒は0なら省略）。
const TimestampLayout = "2006-01-02T15:04:05.999999"

// MetricResponse はメトリクスのレスポンスDTOです。
type MetricResponse struct {
	ID         string  `json:"id"`          // UUID
	MetricType string  `json:"metric_type"` // 種別
	Timestamp  string  `json:"timestamp"`   // 観測日時（UTC、タイムゾーン表記なし）
	Value      float64 `json:"value"`       // 値
	Unit       string  `json:"unit"`        // 単位
	Source     string  `json:"source"`      // 出典
}

// NewMetricResponse はエンティティをレスポンスDTOに変換します。
func NewMetricResponse(m entity.Metric) MetricResponse {
	return MetricResponse{
		ID:         m.ID.String(),
		MetricType: m.MetricType.String(),
		Timestamp:  m.Timestamp.UTC().Format(TimestampLayout),
		Value:      m.Value,
		Unit:       m.Unit,
		Source:     m.Source,
	}
}

// IngestResponse は取り込み結果のレスポンスDTOです。
type IngestResponse struct {
	Status string `json:"status"`
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Detail string `json:"detail"`
}
