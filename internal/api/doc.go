// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Package api provides the HTTP API for Lumiere.

Routes (Chi router):

	GET    /api/v1/health              dependency checks
	GET    /api/v1/health/live         liveness probe
	GET    /api/v1/health/ready        readiness probe (503 when a check fails)
	GET    /api/v1/tags                tag vocabulary by category
	GET    /api/v1/keywords/search     keyword index search (q, limit)
	GET    /api/v1/keywords/status     keyword index size
	POST   /api/v1/taste/scores        rank posted or stored history
	POST   /api/v1/recommendations/tags run the recommendation pipeline
	POST   /api/v1/imports/letterboxd  upload a Letterboxd export zip
	GET    /api/v1/history             stored history ranked by taste score
	GET    /api/v1/preferences         saved preference document
	PUT    /api/v1/preferences         replace the preference document
	DELETE /api/v1/preferences         remove the preference document
	GET    /metrics                    Prometheus metrics

Every JSON response uses the APIResponse envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {...}},
	  "metadata": {"timestamp": "...", "request_id": "...", "query_time_ms": 12}
	}

Middleware order: request ID, real IP, panic recovery, CORS, Prometheus
metrics, then per-group security headers, gzip compression and per-IP
rate limits. Pipeline runs and uploads have their own stricter limits.

Request bodies are decoded with goccy/go-json and validated with
go-playground/validator through the validation package.
*/
package api
