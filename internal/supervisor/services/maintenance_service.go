// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// MaintenanceFunc is one run of a periodic maintenance task.
type MaintenanceFunc func(ctx context.Context) error

// MaintenanceConfig configures a MaintenanceService.
type MaintenanceConfig struct {
	// Name identifies the task in logs and suture events.
	Name string

	// Interval between runs. Default: 10m.
	Interval time.Duration

	// Timeout bounds a single run. Default: Interval.
	Timeout time.Duration

	// RunOnStart runs the task once before the first tick.
	RunOnStart bool
}

// MaintenanceService runs a task on a fixed interval, for example Badger
// value-log GC or a DuckDB checkpoint. A failed run is logged and retried
// on the next tick; it does not restart the service.
type MaintenanceService struct {
	task   MaintenanceFunc
	config MaintenanceConfig
	logger zerolog.Logger
}

// NewMaintenanceService creates a maintenance service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(task MaintenanceFunc, cfg MaintenanceConfig, logger zerolog.Logger) *MaintenanceService {
	if cfg.Name == "" {
		cfg.Name = "maintenance"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &MaintenanceService{
		task:   task,
		config: cfg,
		logger: logger.With().Str("service", cfg.Name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.config.Interval).Msg("maintenance service starting")

	if s.config.RunOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *MaintenanceService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.task(runCtx); err != nil {
		s.logger.Warn().Err(err).Msg("maintenance run failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("maintenance run complete")
}

// String returns the task name for suture event logs.
func (s *MaintenanceService) String() string {
	return s.config.Name
}
