// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*MaintenanceService)(nil)

func TestNewMaintenanceService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewMaintenanceService(func(context.Context) error { return nil }, MaintenanceConfig{}, zerolog.Nop())
	if svc.config.Interval != 10*time.Minute || svc.config.Timeout != 10*time.Minute {
		t.Errorf("config = %+v", svc.config)
	}
	if svc.String() != "maintenance" {
		t.Errorf("String() = %q", svc.String())
	}

	named := NewMaintenanceService(nil, MaintenanceConfig{Name: "cache-gc", Interval: time.Minute, Timeout: time.Second}, zerolog.Nop())
	if named.String() != "cache-gc" || named.config.Timeout != time.Second {
		t.Errorf("named config = %+v", named.config)
	}
}

func TestMaintenanceService_Serve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		runOnStart bool
		taskErr    error
		minRuns    int32
	}{
		{"ticks", false, nil, 3},
		{"runs on start", true, nil, 1},
		{"failures do not stop the loop", false, errors.New("value log busy"), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var runs atomic.Int32
			task := func(ctx context.Context) error {
				if _, ok := ctx.Deadline(); !ok {
					t.Error("task context has no deadline")
				}
				runs.Add(1)
				return tt.taskErr
			}
			interval := 10 * time.Millisecond
			if tt.runOnStart {
				interval = time.Hour
			}
			svc := NewMaintenanceService(task, MaintenanceConfig{
				Name:       "test",
				Interval:   interval,
				RunOnStart: tt.runOnStart,
			}, zerolog.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() { errCh <- svc.Serve(ctx) }()

			deadline := time.After(2 * time.Second)
			for runs.Load() < tt.minRuns {
				select {
				case <-deadline:
					t.Fatalf("runs = %d, want at least %d", runs.Load(), tt.minRuns)
				case <-time.After(5 * time.Millisecond):
				}
			}
			cancel()

			if err := <-errCh; !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		})
	}
}
