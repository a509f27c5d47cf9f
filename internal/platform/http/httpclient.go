package http

import (
	"net"
	"net/http"
	"time"
)

// RoundTripperWrapper decorates the transport, e.g. with metrics.
type RoundTripperWrapper func(http.RoundTripper) http.RoundTripper

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Dialer.Timeout: TCP接続タイムアウト（5秒）
//   - MaxIdleConns / MaxIdleConnsPerHost: 同一ホスト（CoinGecko）への接続を再利用するため明示
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// wrappers は内側から順に適用されます。
func NewHTTPClient(timeout time.Duration, wrappers ...RoundTripperWrapper) *http.Client {
	var rt http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	for _, w := range wrappers {
		if w != nil {
			rt = w(rt)
		}
	}
	return &http.Client{Timeout: timeout, Transport: rt}
}
