package coingecko

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
	"analyst_app/internal/feature/oxtmetrics/usecase"
	"analyst_app/internal/platform/externalapi/coingecko/dto"
	"analyst_app/internal/shared/apperror"
)

// maxErrorBody caps how much of a failed response is read into the error.
const maxErrorBody = 512

// Client はCoinGecko APIからマーケットデータを取得するクライアントです。
// リトライや429の扱いは行いません。呼び出し頻度の制限は渡されたHTTPクライアントに任せます。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがMarketDataClientとPingerを実装していることをコンパイル時に検証します。
var (
	_ usecase.MarketDataClient = (*Client)(nil)
	_ usecase.Pinger           = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
// client が nil の場合は cfg.Timeout を持つ標準のクライアントを使います。
func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, client: client}
}

// Ping は /ping のJSONを加工せずに返します。
func (c *Client) Ping(ctx context.Context) (json.RawMessage, error) {
	body, err := c.get(ctx, "/ping", nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, apperror.ExternalAPI("coingecko ping returned invalid JSON", nil)
	}
	return json.RawMessage(body), nil
}

// GetMarketChart は指定アセットの価格・時価総額・出来高の時系列を取得します。
func (c *Client) GetMarketChart(ctx context.Context, assetID, vsCurrency, days string) (entity.MarketChart, error) {
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	if days == "" {
		days = "max"
	}
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("days", days)

	body, err := c.get(ctx, "/coins/"+url.PathEscape(assetID)+"/market_chart", q)
	if err != nil {
		return entity.MarketChart{}, err
	}

	// JSONレスポンスをDTOにデコード
	var res dto.MarketChartResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return entity.MarketChart{}, apperror.ExternalAPI("decode coingecko market chart", err)
	}

	prices, err := toPoints("prices", res.Prices)
	if err != nil {
		return entity.MarketChart{}, err
	}
	caps, err := toPoints("market_caps", res.MarketCaps)
	if err != nil {
		return entity.MarketChart{}, err
	}
	vols, err := toPoints("total_volumes", res.TotalVolumes)
	if err != nil {
		return entity.MarketChart{}, err
	}
	return entity.MarketChart{Prices: prices, MarketCaps: caps, TotalVolumes: vols}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperror.ExternalAPI("build coingecko request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.cfg.APIKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, apperror.ExternalAPI("coingecko request failed", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, apperror.ExternalAPI(statusDetail(res), nil)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperror.ExternalAPI("read coingecko response", err)
	}
	return body, nil
}

// statusDetail describes a non-2xx response, preferring CoinGecko's own message.
func statusDetail(res *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	var e dto.ErrorResponse
	if err := json.Unmarshal(raw, &e); err == nil {
		switch {
		case e.Status.ErrorMessage != "":
			return fmt.Sprintf("coingecko http %d: %s", res.StatusCode, e.Status.ErrorMessage)
		case e.Error != "":
			return fmt.Sprintf("coingecko http %d: %s", res.StatusCode, e.Error)
		}
	}
	if msg := string(bytes.TrimSpace(raw)); msg != "" && !strings.HasPrefix(msg, "<") {
		return fmt.Sprintf("coingecko http %d: %s", res.StatusCode, msg)
	}
	return fmt.Sprintf("coingecko http %d", res.StatusCode)
}

// toPoints rejects short pairs and null elements rather than storing zeros.
func toPoints(series string, pairs [][]*float64) ([]entity.DataPoint, error) {
	out := make([]entity.DataPoint, 0, len(pairs))
	for i, p := range pairs {
		if len(p) < 2 || p[0] == nil || p[1] == nil {
			return nil, apperror.ExternalAPI(fmt.Sprintf("malformed %s pair at index %d", series, i), nil)
		}
		out = append(out, entity.DataPoint{TimestampMs: *p[0], Value: *p[1]})
	}
	return out, nil
}
