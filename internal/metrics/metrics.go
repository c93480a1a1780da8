// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Package metrics provides Prometheus instrumentation for Lumiere.

Metrics are registered on the default registry at package init through
promauto and exposed by the API router at /metrics:

	curl http://localhost:8080/metrics

Covered areas:
  - catalog (TMDB) requests, latency and rate-limit waits
  - circuit breaker state around the catalog transport
  - response cache lookups per tier
  - recommendation pipeline stages and candidate counts
  - taste score runs and history imports
  - HTTP API latency and throughput
*/
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog Metrics
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumiere_catalog_requests_total",
			Help: "Total number of catalog API requests",
		},
		[]string{"endpoint", "status"}, // status: HTTP code, "error", or "rate_limited"
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lumiere_catalog_request_duration_seconds",
			Help:    "Catalog API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	CatalogRateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lumiere_catalog_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the outbound catalog rate limiter",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 5},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Response Cache Metrics
	ResponseCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumiere_response_cache_lookups_total",
			Help: "Response cache lookups by tier and result",
		},
		[]string{"tier", "result"}, // tier: "memory", "store"; result: "hit", "miss", "error"
	)

	ResponseCacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumiere_response_cache_writes_total",
			Help: "Response cache writes by backend and result",
		},
		[]string{"backend", "result"},
	)

	// Recommendation Pipeline Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumiere_recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "error"
	)

	RecommendationStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lumiere_recommendation_stage_duration_seconds",
			Help:    "Duration of each recommendation pipeline stage",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"},
	)

	RecommendationCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lumiere_recommendation_candidates",
			Help:    "Candidate counts after each pipeline stage",
			Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"stage"},
	)

	FamiliarityBandBypassed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lumiere_familiarity_band_bypassed_total",
			Help: "Times the familiarity band would have removed every candidate and was skipped",
		},
	)

	UnresolvedTags = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lumiere_unresolved_tags_total",
			Help: "Selected tags that could not be resolved to a genre or keyword",
		},
	)

	// Taste Score / History Metrics
	TasteScoreRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumiere_taste_score_runs_total",
			Help: "Taste score computations by result",
		},
		[]string{"result"},
	)

	TasteScoreRecords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lumiere_taste_score_records",
			Help:    "Number of watch records scored per run",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		},
	)

	HistoryImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumiere_history_imports_total",
			Help: "Watch history imports by source and result",
		},
		[]string{"source", "result"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordCatalogRequest records one outbound catalog call.
func RecordCatalogRequest(endpoint string, statusCode int, duration time.Duration, err error) {
	status := strconv.Itoa(statusCode)
	if statusCode == 0 && err != nil {
		status = "error"
	}
	CatalogRequestsTotal.WithLabelValues(endpoint, status).Inc()
	CatalogRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCatalogRateLimited counts a 429 response from the catalog.
func RecordCatalogRateLimited(endpoint string) {
	CatalogRequestsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
}

// RecordCacheLookup records a response cache lookup for the given tier.
func RecordCacheLookup(tier string, hit bool, err error) {
	switch {
	case err != nil:
		ResponseCacheLookups.WithLabelValues(tier, "error").Inc()
	case hit:
		ResponseCacheLookups.WithLabelValues(tier, "hit").Inc()
	default:
		ResponseCacheLookups.WithLabelValues(tier, "miss").Inc()
	}
}

// RecordCacheWrite records a response cache write.
func RecordCacheWrite(backend string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ResponseCacheWrites.WithLabelValues(backend, result).Inc()
}

// RecordStage records the duration and resulting candidate count of a pipeline stage.
// A negative count skips the candidate histogram.
func RecordStage(stage string, duration time.Duration, candidates int) {
	RecommendationStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if candidates >= 0 {
		RecommendationCandidates.WithLabelValues(stage).Observe(float64(candidates))
	}
}

// RecordRecommendation records the outcome of a recommendation request.
func RecordRecommendation(results int, err error) {
	switch {
	case err != nil:
		RecommendationsTotal.WithLabelValues("error").Inc()
	case results == 0:
		RecommendationsTotal.WithLabelValues("empty").Inc()
	default:
		RecommendationsTotal.WithLabelValues("ok").Inc()
	}
}

// RecordTasteScoreRun records a taste score computation.
func RecordTasteScoreRun(records int, err error) {
	if err != nil {
		TasteScoreRuns.WithLabelValues("error").Inc()
		return
	}
	TasteScoreRuns.WithLabelValues("success").Inc()
	TasteScoreRecords.Observe(float64(records))
}

// RecordHistoryImport records a history import.
func RecordHistoryImport(source string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	HistoryImportsTotal.WithLabelValues(source, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}
