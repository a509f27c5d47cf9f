// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"analyst_app/internal/app/config"
	"analyst_app/internal/platform/externalapi/coingecko"
	infrahttp "analyst_app/internal/platform/http"
	"analyst_app/internal/platform/metrics"
	"analyst_app/internal/shared/ratelimiter"
)

// NewMarketClient creates a fully configured CoinGecko client with HTTP client.
// When m is non-nil, outbound requests are counted and timed.
// Requests are throttled to cfg.RateLimit calls per minute only when it is positive.
func NewMarketClient(cfg config.CoinGeckoConfig, m *metrics.Metrics) *coingecko.Client {
	var wrappers []infrahttp.RoundTripperWrapper
	if m != nil {
		wrappers = append(wrappers, m.InstrumentRoundTripper)
	}
	if cfg.RateLimit > 0 {
		rl := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
		wrappers = append(wrappers, rl.RoundTripper)
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, wrappers...)
	return coingecko.NewClient(coingecko.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	}, httpClient)
}
