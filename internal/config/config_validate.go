// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/lumiere/internal/logging"
)

// ErrMissingCatalogCredentials is returned by RequireCatalogCredentials.
var ErrMissingCatalogCredentials = errors.New("TMDB_API_KEY or TMDB_READ_TOKEN is required")

// Validate checks that configuration values are in range.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateCatalog,
		c.validateCache,
		c.validateDatabase,
		c.validateRecommend,
		c.validateSecurity,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

// RequireCatalogCredentials fails when no catalog credential is set. Only
// commands that call the live catalog need one.
func (c *Config) RequireCatalogCredentials() error {
	if !c.Catalog.HasCredentials() {
		return ErrMissingCatalogCredentials
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP read and write timeouts must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive, got %v", c.Server.RequestTimeout)
	}
	if c.Server.MaxUploadBytes < 1<<20 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least 1MiB, got %d", c.Server.MaxUploadBytes)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateCatalog() error {
	if !strings.HasPrefix(c.Catalog.BaseURL, "http://") && !strings.HasPrefix(c.Catalog.BaseURL, "https://") {
		return fmt.Errorf("TMDB_BASE_URL must be an http(s) URL, got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive, got %v", c.Catalog.Timeout)
	}
	if c.Catalog.RequestsPerSecond <= 0 || c.Catalog.RequestsPerSecond > 1000 {
		return fmt.Errorf("CATALOG_REQUESTS_PER_SECOND must be between 0 and 1000, got %v", c.Catalog.RequestsPerSecond)
	}
	if c.Catalog.Burst < 1 {
		return fmt.Errorf("CATALOG_BURST must be at least 1, got %d", c.Catalog.Burst)
	}
	if c.Catalog.MaxRetries < 0 || c.Catalog.MaxRetries > 20 {
		return fmt.Errorf("CATALOG_MAX_RETRIES must be between 0 and 20, got %d", c.Catalog.MaxRetries)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "badger":
		if c.Cache.Dir == "" {
			return fmt.Errorf("CACHE_DIR is required when CACHE_BACKEND=badger")
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	case "memory":
	default:
		return fmt.Errorf("CACHE_BACKEND must be badger, redis, or memory, got %q", c.Cache.Backend)
	}
	if c.Cache.MemoryEntries < 1 {
		return fmt.Errorf("CACHE_MEMORY_ENTRIES must be at least 1, got %d", c.Cache.MemoryEntries)
	}
	if c.Cache.GCInterval < time.Minute {
		return fmt.Errorf("CACHE_GC_INTERVAL must be at least 1m, got %v", c.Cache.GCInterval)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	switch {
	case r.DefaultResults < 1:
		return fmt.Errorf("recommend.default_results must be positive, got %d", r.DefaultResults)
	case r.MaxResults < r.DefaultResults:
		return fmt.Errorf("recommend.max_results must be >= default_results, got %d", r.MaxResults)
	case r.MaxTags < 1:
		return fmt.Errorf("recommend.max_tags must be positive, got %d", r.MaxTags)
	case r.DiscoverPages < 1 || r.DiscoverPages > 20:
		return fmt.Errorf("recommend.discover_pages must be between 1 and 20, got %d", r.DiscoverPages)
	case r.SimilarPages < 0 || r.SimilarPages > 20:
		return fmt.Errorf("recommend.similar_pages must be between 0 and 20, got %d", r.SimilarPages)
	case r.SimilarSeedTitles < 0:
		return fmt.Errorf("recommend.similar_seed_titles must not be negative, got %d", r.SimilarSeedTitles)
	case r.EnrichTopN < 0:
		return fmt.Errorf("recommend.enrich_top_n must not be negative, got %d", r.EnrichTopN)
	case r.ProfileMinRating < 0 || r.ProfileMinRating > 5:
		return fmt.Errorf("recommend.profile_min_rating must be between 0 and 5, got %v", r.ProfileMinRating)
	case r.Workers < 1 || r.Workers > 64:
		return fmt.Errorf("recommend.workers must be between 1 and 64, got %d", r.Workers)
	}
	return nil
}

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}
