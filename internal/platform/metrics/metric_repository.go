package metrics

import (
	"context"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
	"analyst_app/internal/feature/oxtmetrics/usecase"

	"github.com/google/uuid"
)

// InstrumentedMetricRepository counts writes and failures of the wrapped repository.
type InstrumentedMetricRepository struct {
	inner usecase.MetricRepository
	m     *Metrics
}

var _ usecase.MetricRepository = (*InstrumentedMetricRepository)(nil)

func (m *Metrics) WrapMetricRepository(inner usecase.MetricRepository) *InstrumentedMetricRepository {
	return &InstrumentedMetricRepository{inner: inner, m: m}
}

func (r *InstrumentedMetricRepository) Add(ctx context.Context, metric entity.Metric) (entity.Metric, error) {
	out, err := r.inner.Add(ctx, metric)
	if err != nil {
		r.m.storeErrors.WithLabelValues("add").Inc()
		return out, err
	}
	r.m.metricsStored.WithLabelValues(out.MetricType.String()).Inc()
	return out, nil
}

func (r *InstrumentedMetricRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Metric, error) {
	out, err := r.inner.GetByID(ctx, id)
	if err != nil {
		r.m.storeErrors.WithLabelValues("get_by_id").Inc()
	}
	return out, err
}

func (r *InstrumentedMetricRepository) GetMetrics(ctx context.Context, filter entity.MetricFilter) ([]entity.Metric, error) {
	out, err := r.inner.GetMetrics(ctx, filter)
	if err != nil {
		r.m.storeErrors.WithLabelValues("get_metrics").Inc()
	}
	return out, err
}
