package adapters

import (
	"context"
	"testing"
	"time"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
	"analyst_app/internal/feature/oxtmetrics/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMetricRepositoryContract checks the behaviour every MetricRepository must share.
func runMetricRepositoryContract(t *testing.T, newRepo func(t *testing.T) usecase.MetricRepository) {
	t.Helper()

	ctx := context.Background()
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	seed := func(t *testing.T, repo usecase.MetricRepository) []entity.Metric {
		t.Helper()
		in := []entity.Metric{
			entity.NewMetric(entity.TransactionVolume, t3, 300, "USD", "CoinGecko"),
			entity.NewMetric(entity.NetworkActivity, t1, 0.1, "USD", "CoinGecko"),
			entity.NewMetric(entity.NetworkActivity, t2, 0.2, "USD", "CoinGecko"),
			entity.NewMetric(entity.TransactionVolume, t1, 100, "USD", "CoinGecko"),
		}
		for _, m := range in {
			_, err := repo.Add(ctx, m)
			require.NoError(t, err, "failed to seed metric")
		}
		return in
	}

	t.Run("Add returns the stored metric", func(t *testing.T) {
		repo := newRepo(t)
		m := entity.NewMetric(entity.NetworkActivity, time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC), 0.5, "USD", "CoinGecko")

		got, err := repo.Add(ctx, m)
		require.NoError(t, err)
		assert.Equal(t, m.ID, got.ID)
		assert.Equal(t, m.MetricType, got.MetricType)
		assert.True(t, m.Timestamp.Equal(got.Timestamp))
		assert.Equal(t, m.Value, got.Value)
		assert.Equal(t, m.Unit, got.Unit)
		assert.Equal(t, m.Source, got.Source)
	})

	t.Run("GetByID finds an added metric", func(t *testing.T) {
		repo := newRepo(t)
		m := entity.NewMetric(entity.Providers, t1, 7, "count", "test")
		_, err := repo.Add(ctx, m)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, m.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, m.ID, got.ID)
		assert.Equal(t, entity.Providers, got.MetricType)
	})

	t.Run("GetByID returns nil for an unknown id", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetMetrics on an empty store", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.GetMetrics(ctx, entity.MetricFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("GetMetrics filters", func(t *testing.T) {
		na := entity.NetworkActivity
		tv := entity.TransactionVolume
		pr := entity.Providers

		tests := []struct {
			name       string
			filter     entity.MetricFilter
			wantTimes  []time.Time
			wantValues []float64
		}{
			{
				name:       "no filter returns everything in timestamp order",
				filter:     entity.MetricFilter{},
				wantTimes:  []time.Time{t1, t1, t2, t3},
				wantValues: []float64{0.1, 100, 0.2, 300},
			},
			{
				name:       "type filter",
				filter:     entity.MetricFilter{MetricType: &na},
				wantTimes:  []time.Time{t1, t2},
				wantValues: []float64{0.1, 0.2},
			},
			{
				name:       "start bound is inclusive",
				filter:     entity.MetricFilter{Start: &t2},
				wantTimes:  []time.Time{t2, t3},
				wantValues: []float64{0.2, 300},
			},
			{
				name:       "end bound is inclusive",
				filter:     entity.MetricFilter{End: &t2},
				wantTimes:  []time.Time{t1, t1, t2},
				wantValues: []float64{0.1, 100, 0.2},
			},
			{
				name:       "start equals end selects exactly that instant",
				filter:     entity.MetricFilter{Start: &t2, End: &t2},
				wantTimes:  []time.Time{t2},
				wantValues: []float64{0.2},
			},
			{
				name:       "all filters combine with AND",
				filter:     entity.MetricFilter{MetricType: &tv, Start: &t1, End: &t2},
				wantTimes:  []time.Time{t1},
				wantValues: []float64{100},
			},
			{
				name:   "type with no rows",
				filter: entity.MetricFilter{MetricType: &pr},
			},
			{
				name:   "inverted window is empty",
				filter: entity.MetricFilter{Start: &t3, End: &t1},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newRepo(t)
				seed(t, repo)

				got, err := repo.GetMetrics(ctx, tt.filter)
				require.NoError(t, err)
				require.Len(t, got, len(tt.wantTimes))
				for i := range got {
					assert.True(t, tt.wantTimes[i].Equal(got[i].Timestamp), "row %d timestamp: got %v", i, got[i].Timestamp)
					assert.Equal(t, tt.wantValues[i], got[i].Value, "row %d value", i)
					assert.True(t, tt.filter.Matches(got[i]), "row %d does not satisfy the filter", i)
				}
			})
		}
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		repo := newRepo(t)
		for i := 0; i < 2; i++ {
			_, err := repo.Add(ctx, entity.NewMetric(entity.NetworkActivity, t1, 0.5, "USD", "CoinGecko"))
			require.NoError(t, err)
		}
		got, err := repo.GetMetrics(ctx, entity.MetricFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
