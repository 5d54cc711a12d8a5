package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"bollette/internal/backend"
	"bollette/internal/cache"
	"bollette/internal/cli"
	apphttp "bollette/internal/http"
	applog "bollette/internal/log"
	"bollette/internal/metrics"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:           backend.Type(cfg.DataBackend),
		APIBaseURL:     cfg.APIBaseURL,
		APIToken:       cfg.APIToken,
		RequestTimeout: cfg.RequestTimeout,
		SeedFile:       cfg.SeedFile,
	})
	if err != nil {
		logger.Error("Failed to initialize bills backend", applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", applog.FieldError, err)
			}
		}()
	}

	prefs := cli.InitPreferences(logger, cfg.SQLiteDBPath)
	defer func() {
		if err := prefs.Close(); err != nil {
			logger.Error("Preference store close failed", applog.FieldError, err)
		}
	}()

	appMetrics := metrics.New()

	srv := apphttp.NewServer(":"+cfg.Port, result.Store, prefs, apphttp.Options{
		UserID:          cfg.UserID,
		DefaultCurrency: cfg.DefaultCurrency,
		CacheTTL:        cfg.CacheTTL,
		CacheSize:       cfg.CacheSize,
		Metrics:         appMetrics,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	cacheManager := cache.NewManager()
	cacheManager.Register(srv.Cache())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting bollette server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return cacheManager.Run(gctx, time.Minute)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
