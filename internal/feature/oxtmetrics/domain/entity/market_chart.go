package entity

// DataPoint is one [timestamp_ms, value] pair from a market chart series.
type DataPoint struct {
	TimestampMs float64
	Value       float64
}

// MarketChart holds the three series returned by the market chart endpoint,
// in upstream order. Any series may be empty.
type MarketChart struct {
	Prices       []DataPoint
	MarketCaps   []DataPoint
	TotalVolumes []DataPoint
}

// Len returns the total number of data points across all series.
func (c MarketChart) Len() int {
	return len(c.Prices) + len(c.MarketCaps) + len(c.TotalVolumes)
}
