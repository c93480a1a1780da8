// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package catalog

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/lumiere/internal/config"
)

// NewFetcherFromConfig builds the HTTP client and, when enabled, wraps it
// in the circuit breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFetcherFromConfig(cfg *config.CatalogConfig, logger zerolog.Logger) Fetcher {
	client := NewClient(ClientConfig{
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		ReadToken:         cfg.ReadToken,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		MaxRetries:        cfg.MaxRetries,
		RetryBaseDelay:    cfg.RetryBaseDelay,
	})
	if !cfg.BreakerEnabled {
		return client
	}
	return NewBreakerFetcher(client, logger)
}
