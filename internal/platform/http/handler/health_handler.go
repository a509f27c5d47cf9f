// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CheckFunc は依存先（DBなど）の疎通を確認します。nil は常に正常とみなします。
type CheckFunc func(ctx context.Context) error

// Root は / のあいさつレスポンスを返します。
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Hello": "World"})
}

// Health は /healthz エンドポイントのハンドラーを返します。
// check が失敗した場合は 503 を返し、キャッシュは常に防止します。
func Health(check CheckFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status := http.StatusOK
		body := gin.H{"status": "ok"}
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				slog.Warn("health check failed", "error", err)
				status = http.StatusServiceUnavailable
				body = gin.H{"status": "unavailable"}
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		c.JSON(status, body)
	}
}
