package adapters

import (
	"context"
	"errors"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
	"analyst_app/internal/feature/oxtmetrics/usecase"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type metricGorm struct {
	db *gorm.DB
}

var _ usecase.MetricRepository = (*metricGorm)(nil)

// NewMetricRepository returns a GORM-backed MetricRepository. Each call opens
// a request-scoped session through WithContext.
func NewMetricRepository(db *gorm.DB) *metricGorm {
	return &metricGorm{db: db}
}

func (r *metricGorm) Add(ctx context.Context, m entity.Metric) (entity.Metric, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	row := toMetricModel(m)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entity.Metric{}, dbError("insert metric", err)
	}

	// Re-read so the caller sees exactly what the store holds.
	var stored MetricModel
	if err := r.db.WithContext(ctx).First(&stored, "id = ?", row.ID).Error; err != nil {
		return entity.Metric{}, dbError("reload metric", err)
	}
	out, err := toMetricEntity(stored)
	if err != nil {
		return entity.Metric{}, dbError("decode metric", err)
	}
	return out, nil
}

func (r *metricGorm) GetByID(ctx context.Context, id uuid.UUID) (*entity.Metric, error) {
	var row MetricModel
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("get metric", err)
	}
	out, err := toMetricEntity(row)
	if err != nil {
		return nil, dbError("decode metric", err)
	}
	return &out, nil
}

func (r *metricGorm) GetMetrics(ctx context.Context, filter entity.MetricFilter) ([]entity.Metric, error) {
	q := r.db.WithContext(ctx).Model(&MetricModel{})
	if filter.MetricType != nil {
		q = q.Where(clause.Eq{Column: clause.Column{Name: "metric_type"}, Value: filter.MetricType.String()})
	}
	// "timestamp" is a keyword in Postgres, so the column goes through clause quoting.
	if filter.Start != nil {
		q = q.Where(clause.Gte{Column: clause.Column{Name: "timestamp"}, Value: filter.Start.UTC()})
	}
	if filter.End != nil {
		q = q.Where(clause.Lte{Column: clause.Column{Name: "timestamp"}, Value: filter.End.UTC()})
	}

	var rows []MetricModel
	err := q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "timestamp"}},
		{Column: clause.Column{Name: "metric_type"}},
		{Column: clause.Column{Name: "id"}},
	}}).Find(&rows).Error
	if err != nil {
		return nil, dbError("query metrics", err)
	}

	out := make([]entity.Metric, 0, len(rows))
	for _, row := range rows {
		m, err := toMetricEntity(row)
		if err != nil {
			return nil, dbError("decode metric", err)
		}
		out = append(out, m)
	}
	return out, nil
}
