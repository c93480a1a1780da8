// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"context"
	"net/http"
	"time"
)

// healthCheckTimeout bounds each dependency probe.
const healthCheckTimeout = 2 * time.Second

// Version is reported by /health. Set at build time with -ldflags.
var Version = "dev"

// HealthStatus is returned by /health.
type HealthStatus struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Uptime     float64           `json:"uptime_seconds"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health
// Reports each registered dependency. The status is "degraded" when any
// probe fails; the endpoint itself always answers 200.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	components, healthy := h.runChecks(r.Context())

	status := "healthy"
	if !healthy {
		status = "degraded"
	}
	respondJSON(w, r, http.StatusOK, &HealthStatus{
		Status:     status,
		Version:    Version,
		Uptime:     time.Since(h.startTime).Seconds(),
		Components: components,
	}, start)
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if every dependency probe passes, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	components, healthy := h.runChecks(r.Context())
	if !healthy {
		apiErr := &APIError{
			Code:    CodeServiceUnavailable,
			Message: "Service is not ready",
			Details: map[string]any{"components": components},
		}
		respondAPIError(w, r, http.StatusServiceUnavailable, apiErr, nil)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"ready":      true,
		"components": components,
	}, start)
}

// runChecks probes every registered dependency. Components map to "ok" or
// the probe's error message.
func (h *Handler) runChecks(ctx context.Context) (map[string]string, bool) {
	components := make(map[string]string, len(h.checks))
	healthy := true
	for _, c := range h.checks {
		checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		err := c.Check(checkCtx)
		cancel()
		if err != nil {
			components[c.Name] = err.Error()
			healthy = false
			continue
		}
		components[c.Name] = "ok"
	}
	return components, healthy
}
