// Package coingecko provides a client for the CoinGecko public market data API.
package coingecko

import "time"

// DefaultBaseURL is the public v3 API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Config holds configuration for the CoinGecko API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://api.coingecko.com/api/v3")
	APIKey  string        // Optional demo API key, sent as x-cg-demo-api-key
	Timeout time.Duration // HTTP request timeout, used when NewClient builds its own client
}
