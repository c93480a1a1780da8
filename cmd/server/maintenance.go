// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/lumiere/internal/api"
	"github.com/tomtom215/lumiere/internal/cache"
	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/config"
	"github.com/tomtom215/lumiere/internal/database"
	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/supervisor"
	"github.com/tomtom215/lumiere/internal/supervisor/services"
)

// checkpointInterval is how often the DuckDB WAL is folded into the file.
const checkpointInterval = 15 * time.Minute

// healthProbeKey is read by the cache health check. A miss is healthy.
const healthProbeKey = "health:probe"

// addMaintenanceServices registers the periodic background tasks and
// returns their names.
func addMaintenanceServices(tree *supervisor.SupervisorTree, cfg *config.Config, store cache.Store, db *database.DB) []string {
	var added []string
	// Only the Badger backend keeps a value log; Redis and memory have no GC.
	if badgerStore, ok := store.(*cache.BadgerStore); ok {
		gc := services.NewMaintenanceService(
			func(context.Context) error { return badgerStore.RunGC() },
			services.MaintenanceConfig{Name: "cache-gc", Interval: cfg.Cache.GCInterval},
			logging.Logger(),
		)
		tree.AddMaintenanceService(gc)
		added = append(added, gc.String())
		logging.Info().Dur("interval", cfg.Cache.GCInterval).Msg("Cache GC service added")
	}

	checkpoint := services.NewMaintenanceService(
		db.Checkpoint,
		services.MaintenanceConfig{Name: "db-checkpoint", Interval: checkpointInterval},
		logging.Logger(),
	)
	tree.AddMaintenanceService(checkpoint)
	added = append(added, checkpoint.String())
	logging.Info().Dur("interval", checkpointInterval).Msg("Database checkpoint service added")
	return added
}

// breakerState is implemented by the circuit-breaking fetcher.
type breakerState interface {
	State() string
}

// registerHealthChecks wires component probes into /health. The keyword
// index is optional and reported by /keywords/status instead.
func registerHealthChecks(h *api.Handler, db *database.DB, store cache.Store, fetcher catalog.Fetcher) {
	h.AddHealthCheck("database", db.Ping)

	h.AddHealthCheck("cache", func(ctx context.Context) error {
		_, _, err := store.Get(ctx, healthProbeKey)
		return err
	})

	if breaker, ok := fetcher.(breakerState); ok {
		h.AddHealthCheck("catalog", func(context.Context) error {
			if state := breaker.State(); state == "open" {
				return fmt.Errorf("circuit breaker %s", state)
			}
			return nil
		})
	}
}
