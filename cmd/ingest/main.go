package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"analyst_app/internal/app/config"
	"analyst_app/internal/app/di"
	"analyst_app/internal/feature/oxtmetrics/adapters"
	infradb "analyst_app/internal/platform/db"
	"analyst_app/internal/platform/logging"
	infraredis "analyst_app/internal/platform/redis"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

// run はマーケットチャートを一度だけ取り込みます。フラグは設定値より優先されます。
func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if v := c.String("asset"); v != "" {
		cfg.CoinGecko.AssetID = v
	}
	if v := c.String("vs-currency"); v != "" {
		cfg.CoinGecko.VsCurrency = v
	}
	if v := c.String("days"); v != "" {
		cfg.CoinGecko.Days = v
	}

	logger, closer := logging.New(logging.Config(cfg.Log))
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	db, err := infradb.OpenDB(infradb.Config{
		URL:            cfg.Database.URL,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		RunMigrations:  cfg.Database.RunMigrations,
		Debug:          cfg.Database.Debug,
	}, adapters.Models()...)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	// 取り込み後にキャッシュを無効化するため、Redisがあればキャッシュ層も通す
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis.URL); err == nil {
		rdb = tmp
		defer rdb.Close()
	} else if !errors.Is(err, infraredis.ErrDisabled) {
		slog.Warn("Redis unavailable. Cached queries may be stale until TTL expiry.", "error", err)
	}

	repo := di.NewMetricRepository(db, rdb, cfg.Redis.CacheTTL, nil)
	market := di.NewMarketClient(cfg.CoinGecko, nil)
	uc := di.NewIngestUsecase(cfg.CoinGecko, market, repo)

	res, err := uc.Execute(ctx)
	if err != nil {
		return err
	}
	slog.Info("ingest ok", "asset", cfg.CoinGecko.AssetID, "count", res.Ingested)
	return nil
}

func main() {
	app := &cli.App{
		Name:  "ingest",
		Usage: "fetch the CoinGecko market chart once and store it as metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "asset",
				Aliases: []string{"a"},
				Usage:   "CoinGecko asset `id` (default from COINGECKO_ASSET_ID)",
			},
			&cli.StringFlag{
				Name:  "vs-currency",
				Usage: "quote `currency` (default from COINGECKO_VS_CURRENCY)",
			},
			&cli.StringFlag{
				Name:  "days",
				Usage: "history window, a number of days or \"max\"",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 5 * time.Minute,
				Usage: "overall time limit of the run",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
