package router

import (
	"net/http"

	metricshandler "analyst_app/internal/feature/oxtmetrics/transport/handler"
	"analyst_app/internal/platform/http/handler"
	"analyst_app/internal/platform/http/middleware"
	"analyst_app/internal/platform/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options はルーターの任意設定です。
type Options struct {
	CORSEnabled bool
	Metrics     *metrics.Metrics // nil なら /metrics を公開しない
	HealthCheck handler.CheckFunc
}

func NewRouter(h *metricshandler.MetricsHandler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.GinMiddleware())
	}
	if opts.CORSEnabled {
		r.Use(cors.Default())
	}

	// 導通確認用
	r.GET("/", handler.Root)
	health := handler.Health(opts.HealthCheck)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// CoinGecko の疎通確認
	r.GET("/ping", h.Ping)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/data/ingest/oxt", h.Ingest)
		v1.GET("/oxt/metrics", h.GetMetrics)
	}

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	return r
}
