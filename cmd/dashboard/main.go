package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gamecharts/leaderboard-dashboard/internal/config"
	"github.com/gamecharts/leaderboard-dashboard/internal/handlers"
	"github.com/gamecharts/leaderboard-dashboard/internal/logic"
	"github.com/gamecharts/leaderboard-dashboard/internal/render"
	"github.com/gamecharts/leaderboard-dashboard/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, logger)
	if err != nil {
		logger.Error("server exited", zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()

	categories, err := logic.NewCategories(cfg.CategoryVintage)
	if err != nil {
		return err
	}

	cache := logic.NewLayeredCache().With("memory", logic.NewMemoryCache(cfg.CacheEntries))
	hcfg := handlers.Config{
		Logger:         logger,
		MaxUploadBytes: cfg.UploadMaxBytes,
	}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		cache = cache.With("redis", logic.NewRedisCache(rdb, cfg.CacheTTL, sugar))
		hcfg.Redis = rdb
		sugar.Infow("redis table cache enabled", "addr", opts.Addr, "ttl", cfg.CacheTTL)
	}

	catalog := logic.NewCatalog(cfg.DataDir)
	loader := logic.NewLoader(catalog, cache, sugar)
	uploads := logic.NewUploadStore(cfg.UploadEntries)
	hcfg.Uploads = uploads
	hcfg.Dashboard = logic.NewDashboardService(logic.DashboardConfig{
		Loader:     loader,
		Uploads:    uploads,
		Catalog:    catalog,
		Categories: categories,
		Theme:      render.DarkTheme(),
		BuildInfo:  cfg.BuildInfo,
		Logger:     sugar,
	})

	h := handlers.New(hcfg)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h.Router(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WarmWorkers > 0 {
		pool := worker.NewPool(worker.PoolConfig{WorkerCount: cfg.WarmWorkers, Loader: loader, Logger: logger})
		pool.Start(ctx)
		sugar.Infow("warming default tables", "jobs", worker.WarmCatalog(pool, catalog))
		defer pool.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("dashboard listening", "port", cfg.Port, "data_dir", cfg.DataDir, "vintage", categories.Vintage)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	sugar.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
