// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"context"
	"time"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/database"
	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/recommend"
	"github.com/tomtom215/lumiere/internal/recommend/profile"
	"github.com/tomtom215/lumiere/internal/recommend/taste"
)

// Recommender is the part of the recommendation engine the API calls.
type Recommender interface {
	ComputeTasteScores(records []history.WatchRecord, favoriteURLs []string) []taste.Score
	GetRecommendations(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// Store persists imported history and the preference document.
type Store interface {
	ListWatchRecords(ctx context.Context) ([]history.WatchRecord, error)
	CountWatchRecords(ctx context.Context) (int, error)
	SaveImport(ctx context.Context, source string, records []history.WatchRecord, favorites []string) (*database.ImportRun, error)
	LatestImport(ctx context.Context) (run *database.ImportRun, ok bool, err error)
	FavoriteURLs(ctx context.Context) ([]string, error)
	GetPreferences(ctx context.Context) (prefs *profile.Preferences, ok bool, err error)
	SavePreferences(ctx context.Context, prefs *profile.Preferences) error
	DeletePreferences(ctx context.Context) error
	Ping(ctx context.Context) error
}

// KeywordSearcher searches the catalog keyword index.
type KeywordSearcher interface {
	Search(query string, limit int) []catalog.KeywordMatch
	Len() int
}

// HealthCheck probes one dependency for /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HandlerConfig holds request limits for the handlers.
type HandlerConfig struct {
	// RequestTimeout bounds a single recommendation run.
	RequestTimeout time.Duration

	// MaxUploadBytes bounds export uploads.
	MaxUploadBytes int64
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_health.go: health and probe endpoints
//   - handlers_taste.go: taste-score ranking
//   - handlers_recommend.go: the recommendation pipeline
//   - handlers_tags.go: tag vocabulary and keyword search
//   - handlers_import.go: Letterboxd export upload
//   - handlers_history.go: stored history and preferences
type Handler struct {
	engine    Recommender
	store     Store
	keywords  KeywordSearcher
	checks    []HealthCheck
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a new API handler. store and keywords may be nil;
// endpoints that need them answer 503.
func NewHandler(engine Recommender, store Store, keywords KeywordSearcher, cfg HandlerConfig) *Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 50 << 20
	}
	return &Handler{
		engine:    engine,
		store:     store,
		keywords:  keywords,
		config:    cfg,
		startTime: time.Now(),
	}
}

// AddHealthCheck registers a dependency probe reported by /health and
// /health/ready.
func (h *Handler) AddHealthCheck(name string, check func(ctx context.Context) error) {
	h.checks = append(h.checks, HealthCheck{Name: name, Check: check})
}
