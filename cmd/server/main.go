// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/api"
	"github.com/tomtom215/halaqa-discovery/internal/config"
	"github.com/tomtom215/halaqa-discovery/internal/discovery"
	"github.com/tomtom215/halaqa-discovery/internal/history"
	"github.com/tomtom215/halaqa-discovery/internal/logging"
	"github.com/tomtom215/halaqa-discovery/internal/middleware"
	"github.com/tomtom215/halaqa-discovery/internal/query"
	"github.com/tomtom215/halaqa-discovery/internal/supervisor"
	"github.com/tomtom215/halaqa-discovery/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

//nolint:gocyclo // sequential setup steps
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	logger := logging.Logger()
	logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Msg("starting halaqa discovery")

	if cfg.ShouldWarnAboutCORS() {
		logger.Warn().Msg("CORS allows every origin (CORS_ORIGINS=*) in production")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := openContentStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if stores.db != nil {
		defer func() {
			if err := stores.db.Close(); err != nil {
				logger.Error().Err(err).Msg("error closing content store")
			}
		}()
	}

	historyStore, err := openHistoryStore(&cfg.History)
	if err != nil {
		return err
	}
	defer func() {
		if err := historyStore.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing history store")
		}
	}()

	recorder, err := history.NewRecorder(historyStore, recorderConfig(&cfg.History), logger)
	if err != nil {
		return err
	}
	defer func() { _ = recorder.Close() }()

	processor, err := query.New(queryConfig(&cfg.Query), stores.synonyms, historyStore, logger)
	if err != nil {
		return err
	}
	engine, err := newEngine(&cfg.Recommend, stores.content, logger)
	if err != nil {
		return err
	}
	svc, err := discovery.New(processor, engine, recorder, logger)
	if err != nil {
		return err
	}
	logger.Info().Strs("strategies", engine.Strategies()).Msg("recommendation engine ready")

	perf := middleware.NewPerformanceMonitor(1000, middleware.DefaultSlowThreshold)
	opts := api.Options{
		Perf:           perf,
		Version:        version,
		RequestTimeout: cfg.Server.Timeout,
	}
	if stores.db != nil {
		opts.Store = stores.db
	}
	if stores.breaker != nil {
		opts.Breaker = stores.breaker
	}
	router := api.NewRouter(
		api.NewHandler(svc, opts),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
		perf,
		cfg.Security.MaxBodyBytes,
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFromServer(&cfg.Server))
	if err != nil {
		return err
	}
	tree.AddDataService(recorder)
	if stores.db != nil {
		tree.AddDataService(services.NewStoreMonitorService(stores.db, services.DefaultStoreMonitorConfig(), logger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("supervisor tree stopped with error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, u := range unstopped {
			logger.Warn().Str("service", u.Name).Msg("service failed to stop within timeout")
		}
	}

	logger.Info().Msg("halaqa discovery stopped")
	return nil
}
