package adapters

import (
	"fmt"
	"time"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"

	"github.com/google/uuid"
)

// MetricModel is the persisted row for entity.Metric.
type MetricModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MetricType string    `gorm:"size:32;not null;index"`
	Timestamp  time.Time `gorm:"type:timestamp;not null;index"`
	Value      float64   `gorm:"type:double precision;not null"`
	Unit       string    `gorm:"size:16;not null"`
	Source     string    `gorm:"size:64;not null"`
}

func (MetricModel) TableName() string {
	return "metrics"
}

// ProviderModel is the persisted row for entity.Provider.
type ProviderModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Address     string    `gorm:"size:128;not null;uniqueIndex"`
	Status      string    `gorm:"size:16;not null"`
	LastSeen    time.Time `gorm:"type:timestamp;not null"`
	StakeAmount float64   `gorm:"type:double precision;not null"`
}

func (ProviderModel) TableName() string {
	return "providers"
}

// Models lists every table owned by this feature, for migrations.
func Models() []any {
	return []any{&MetricModel{}, &ProviderModel{}}
}

func toMetricModel(e entity.Metric) MetricModel {
	return MetricModel{
		ID:         e.ID,
		MetricType: e.MetricType.String(),
		Timestamp:  e.Timestamp.UTC(),
		Value:      e.Value,
		Unit:       e.Unit,
		Source:     e.Source,
	}
}

// toMetricEntity rejects rows whose type tag is outside the enum.
func toMetricEntity(m MetricModel) (entity.Metric, error) {
	t, err := entity.ParseMetricType(m.MetricType)
	if err != nil {
		return entity.Metric{}, fmt.Errorf("metric %s: %w", m.ID, err)
	}
	return entity.Metric{
		ID:         m.ID,
		MetricType: t,
		Timestamp:  m.Timestamp.UTC(),
		Value:      m.Value,
		Unit:       m.Unit,
		Source:     m.Source,
	}, nil
}

func toProviderModel(e entity.Provider) ProviderModel {
	return ProviderModel{
		ID:          e.ID,
		Address:     e.Address,
		Status:      string(e.Status),
		LastSeen:    e.LastSeen.UTC(),
		StakeAmount: e.StakeAmount,
	}
}

func toProviderEntity(m ProviderModel) (entity.Provider, error) {
	st, err := entity.ParseProviderStatus(m.Status)
	if err != nil {
		return entity.Provider{}, fmt.Errorf("provider %s: %w", m.ID, err)
	}
	return entity.Provider{
		ID:          m.ID,
		Address:     m.Address,
		Status:      st,
		LastSeen:    m.LastSeen.UTC(),
		StakeAmount: m.StakeAmount,
	}, nil
}
