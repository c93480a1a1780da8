// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Cache     CacheConfig     `koanf:"cache"`
	Database  DatabaseConfig  `koanf:"database"`
	Keywords  KeywordsConfig  `koanf:"keywords"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"` // Per-request context deadline
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxUploadBytes  int64         `koanf:"max_upload_bytes"` // Letterboxd export upload limit
}

// Addr returns host:port for http.Server.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level     string `koanf:"level"`  // trace, debug, info, warn, error, fatal, panic
	Format    string `koanf:"format"` // json or console
	Caller    bool   `koanf:"caller"`
	Timestamp bool   `koanf:"timestamp"`
}

// CatalogConfig holds the movie catalog API settings
type CatalogConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	ReadToken         string        `koanf:"read_token"` // v4 bearer token, preferred over APIKey when set
	Language          string        `koanf:"language"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	MaxRetries        int           `koanf:"max_retries"`
	RetryBaseDelay    time.Duration `koanf:"retry_base_delay"`
	BreakerEnabled    bool          `koanf:"breaker_enabled"`
}

// HasCredentials reports whether an API key or read token is configured.
func (c *CatalogConfig) HasCredentials() bool {
	return c.APIKey != "" || c.ReadToken != ""
}

// CacheConfig holds response cache settings
type CacheConfig struct {
	Backend       string        `koanf:"backend"` // badger, redis, or memory
	Dir           string        `koanf:"dir"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	MemoryEntries int           `koanf:"memory_entries"` // In-process LRU front tier size
	GCInterval    time.Duration `koanf:"gc_interval"`    // Badger value-log GC period
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// KeywordsConfig points at the keyword name/id CSV.
type KeywordsConfig struct {
	CSVPath string `koanf:"csv_path"`
}

// RecommendConfig holds pipeline sizing. Scorer weights are not exposed.
type RecommendConfig struct {
	DefaultResults    int     `koanf:"default_results"`
	MaxResults        int     `koanf:"max_results"`
	MaxTags           int     `koanf:"max_tags"`
	DiscoverPages     int     `koanf:"discover_pages"`
	SimilarPages      int     `koanf:"similar_pages"`
	SimilarSeedTitles int     `koanf:"similar_seed_titles"`
	EnrichTopN        int     `koanf:"enrich_top_n"`
	ProfileMinRating  float64 `koanf:"profile_min_rating"`
	Workers           int     `koanf:"workers"`
}

// SecurityConfig holds CORS and API rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}
