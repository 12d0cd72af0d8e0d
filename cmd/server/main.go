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

	"geo-pricing-service/internal/api"
	"geo-pricing-service/internal/app"
	"geo-pricing-service/internal/config"
	"geo-pricing-service/internal/platform/logging"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (geolocation, exchange rates, site files) behind ports and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, envFound, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !envFound {
		logger.Info("no .env file found (using environment variables)")
	}

	if info, err := os.Stat(cfg.SiteDir); err != nil || !info.IsDir() {
		return fmt.Errorf("SITE_DIR %q is not a directory", cfg.SiteDir)
	}

	pipeline, err := app.Build(cfg, logger, nil)
	if err != nil {
		return err
	}

	router := api.NewRouter(pipeline.Converter, os.DirFS(cfg.SiteDir), logger, time.Now)

	// Write timeout covers a cold geolocation chain plus the rate fetch.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("site_dir", cfg.SiteDir),
			zap.Strings("location_strategies", cfg.LocationStrategies),
			zap.Int("catalog_countries", pipeline.Catalog.Countries()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
