package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"analyst_app/internal/app/config"
	"analyst_app/internal/app/di"
	"analyst_app/internal/app/router"
	"analyst_app/internal/feature/oxtmetrics/adapters"
	metricshandler "analyst_app/internal/feature/oxtmetrics/transport/handler"
	"analyst_app/internal/feature/oxtmetrics/usecase"
	infradb "analyst_app/internal/platform/db"
	"analyst_app/internal/platform/logging"
	"analyst_app/internal/platform/metrics"
	infraredis "analyst_app/internal/platform/redis"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// logger
	logger, closer := logging.New(logging.Config(cfg.Log))
	defer closer.Close()
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.Config{
		URL:            cfg.Database.URL,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		RunMigrations:  cfg.Database.RunMigrations,
		Debug:          cfg.Database.Debug,
	}, adapters.Models()...)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis.URL); err != nil {
		if !errors.Is(err, infraredis.ErrDisabled) {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// Repository
	metricRepo := di.NewMetricRepository(db, rdb, cfg.Redis.CacheTTL, m)
	market := di.NewMarketClient(cfg.CoinGecko, m)

	// Usecase
	pingUC := usecase.NewPingUsecase(market)
	ingestUC := di.NewIngestUsecase(cfg.CoinGecko, market, metricRepo)
	metricsUC := usecase.NewMetricsUsecase(metricRepo)

	// Handler
	h := metricshandler.NewMetricsHandler(pingUC, ingestUC, metricsUC)

	// ルータ生成
	r := router.NewRouter(h, router.Options{
		CORSEnabled: cfg.Server.CORSEnabled,
		Metrics:     m,
		HealthCheck: func(ctx context.Context) error { return infradb.Ping(ctx, db) },
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
