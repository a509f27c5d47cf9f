package adapters

import (
	"context"
	"sort"
	"sync"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
	"analyst_app/internal/feature/oxtmetrics/usecase"

	"github.com/google/uuid"
)

// MemoryMetricRepository keeps metrics in a map guarded by a mutex.
// Queries are a linear scan; it is meant for tests and local runs.
type MemoryMetricRepository struct {
	mu      sync.RWMutex
	metrics map[uuid.UUID]entity.Metric
}

var _ usecase.MetricRepository = (*MemoryMetricRepository)(nil)

func NewMemoryMetricRepository() *MemoryMetricRepository {
	return &MemoryMetricRepository{metrics: make(map[uuid.UUID]entity.Metric)}
}

func (r *MemoryMetricRepository) Add(_ context.Context, m entity.Metric) (entity.Metric, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Timestamp = m.Timestamp.UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics[m.ID] = m
	return m, nil
}

func (r *MemoryMetricRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Metric, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.metrics[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MemoryMetricRepository) GetMetrics(_ context.Context, filter entity.MetricFilter) ([]entity.Metric, error) {
	r.mu.RLock()
	out := make([]entity.Metric, 0, len(r.metrics))
	for _, m := range r.metrics {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	r.mu.RUnlock()

	// Same ordering as the relational store: timestamp, then type, then id.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.MetricType != b.MetricType {
			return a.MetricType < b.MetricType
		}
		return a.ID.String() < b.ID.String()
	})
	return out, nil
}

// Len returns the number of stored metrics.
func (r *MemoryMetricRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.metrics)
}
