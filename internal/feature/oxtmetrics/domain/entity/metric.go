// Package entity defines the domain models for the oxtmetrics feature.
package entity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MetricType classifies a stored metric. The set is closed.
type MetricType string

const (
	NetworkActivity   MetricType = "network_activity"
	Providers         MetricType = "providers"
	TransactionVolume MetricType = "transaction_volume"
)

// MetricTypes lists every valid MetricType in declaration order.
var MetricTypes = []MetricType{NetworkActivity, Providers, TransactionVolume}

// Valid reports whether t is one of the declared metric types.
func (t MetricType) Valid() bool {
	switch t {
	case NetworkActivity, Providers, TransactionVolume:
		return true
	}
	return false
}

func (t MetricType) String() string {
	return string(t)
}

// ParseMetricType accepts either the canonical tag ("network_activity")
// or the upper-case name ("NETWORK_ACTIVITY").
func ParseMetricType(s string) (MetricType, error) {
	t := MetricType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown metric type %q", s)
	}
	return t, nil
}

// Metric is a single typed observation for the OXT asset.
type Metric struct {
	ID         uuid.UUID  // Assigned at creation, never changes
	MetricType MetricType // Classification of the observation
	Timestamp  time.Time  // UTC wall clock of the observation
	Value      float64    // Observed value
	Unit       string     // Unit of Value (e.g., "USD")
	Source     string     // Origin of the data (e.g., "CoinGecko")
}

// NewMetric builds a Metric with a freshly generated id.
func NewMetric(t MetricType, ts time.Time, value float64, unit, source string) Metric {
	return Metric{
		ID:         uuid.New(),
		MetricType: t,
		Timestamp:  ts,
		Value:      value,
		Unit:       unit,
		Source:     source,
	}
}

// TimeFromMillis converts epoch milliseconds to a UTC time with microsecond precision.
func TimeFromMillis(ms float64) time.Time {
	return time.UnixMicro(int64(math.Round(ms * 1000))).UTC()
}

// MetricFilter narrows a metric query. Nil fields do not constrain the result;
// the time bounds are inclusive.
type MetricFilter struct {
	MetricType *MetricType
	Start      *time.Time
	End        *time.Time
}

// Matches reports whether m satisfies every set constraint of f.
func (f MetricFilter) Matches(m Metric) bool {
	if f.MetricType != nil && m.MetricType != *f.MetricType {
		return false
	}
	if f.Start != nil && m.Timestamp.Before(*f.Start) {
		return false
	}
	if f.End != nil && m.Timestamp.After(*f.End) {
		return false
	}
	return true
}
