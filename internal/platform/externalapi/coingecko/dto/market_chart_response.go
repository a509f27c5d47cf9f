package dto

// MarketChartResponse はCoinGecko /coins/{id}/market_chart のレスポンスDTOです。
// 各要素は [timestamp_ms, value] の2要素配列です。
// CoinGeckoは欠損値を null で返すことがあるため、要素はポインタで受けます。
type MarketChartResponse struct {
	Prices       [][]*float64 `json:"prices"`        // 価格
	MarketCaps   [][]*float64 `json:"market_caps"`   // 時価総額
	TotalVolumes [][]*float64 `json:"total_volumes"` // 出来高
}

// ErrorResponse はCoinGeckoがエラー時に返すボディです。
type ErrorResponse struct {
	Error  string `json:"error"`
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}
