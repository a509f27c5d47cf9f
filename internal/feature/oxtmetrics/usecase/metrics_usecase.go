package usecase

import (
	"context"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
)

// metricsUsecase は保存済みメトリクスの検索ユースケースを定義します。
type metricsUsecase struct {
	metric MetricRepository
}

// NewMetricsUsecase はmetricsUsecaseの新しいインスタンスを生成します。
func NewMetricsUsecase(metric MetricRepository) *metricsUsecase {
	return &metricsUsecase{metric: metric}
}

// GetMetrics はフィルタ条件（種別・開始日時・終了日時、いずれも任意）に一致するメトリクスを返します。
func (mu *metricsUsecase) GetMetrics(ctx context.Context, filter entity.MetricFilter) ([]entity.Metric, error) {
	ms, err := mu.metric.GetMetrics(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ms, nil
}
