// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/lumiere/internal/api"
	"github.com/tomtom215/lumiere/internal/cache"
	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/config"
	"github.com/tomtom215/lumiere/internal/database"
	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/recommend"
	"github.com/tomtom215/lumiere/internal/supervisor"
	"github.com/tomtom215/lumiere/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: cfg.Logging.Timestamp,
	})
	logging.Info().Str("version", api.Version).Msg("Starting Lumiere")

	if err := cfg.RequireCatalogCredentials(); err != nil {
		logging.Fatal().Err(err).Msg("Catalog credentials missing")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === STORAGE ===

	store, err := cache.OpenStore(ctx, cache.Options{
		Backend:       cfg.Cache.Backend,
		Dir:           cfg.Cache.Dir,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		MemoryEntries: cfg.Cache.MemoryEntries,
	})
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Cache.Backend).Msg("Failed to open response cache")
	}
	responses := cache.NewResponseCache(store, cfg.Cache.MemoryEntries, logging.WithComponent("cache"))
	defer func() {
		if err := responses.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing response cache")
		}
	}()
	logging.Info().Str("backend", store.Name()).Msg("Response cache opened")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("path", db.Path()).Msg("Database initialized")

	// === CATALOG ===

	fetcher := catalog.NewFetcherFromConfig(&cfg.Catalog, logging.WithComponent("catalog"))
	gateway := catalog.NewGateway(fetcher, responses, cfg.Catalog.Language, logging.WithComponent("catalog"))

	// A missing keyword table only disables keyword tags.
	keywords, err := catalog.LoadKeywordIndex(cfg.Keywords.CSVPath)
	if err != nil {
		logging.Warn().Err(err).Str("path", cfg.Keywords.CSVPath).Msg("Keyword index unavailable, keyword tags disabled")
		keywords = nil
	} else {
		logging.Info().Int("keywords", keywords.Len()).Msg("Keyword index loaded")
	}
	resolver := catalog.NewResolver(keywords)

	// === RECOMMENDATION ENGINE ===

	engine, err := recommend.NewEngine(recommend.ConfigFromSettings(&cfg.Recommend), gateway, resolver, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetHistoryStore(db)
	engine.SetPreferenceStore(db)

	// === HTTP ===

	handler := api.NewHandler(engine, db, keywords, api.HandlerConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})
	registerHealthChecks(handler, db, store, fetcher)

	chiMiddleware := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, chiMiddleware).SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	addMaintenanceServices(tree, cfg, store, db)

	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.Logger()))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel delivers exactly one result when the tree stops.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	stop()
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
