// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package recommend

import (
	"fmt"

	"github.com/tomtom215/lumiere/internal/config"
	"github.com/tomtom215/lumiere/internal/recommend/algorithms"
	"github.com/tomtom215/lumiere/internal/recommend/profile"
	"github.com/tomtom215/lumiere/internal/recommend/reranking"
	"github.com/tomtom215/lumiere/internal/recommend/taste"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultResults is used when a request does not ask for a count.
	DefaultResults int `json:"default_results"`

	// MaxResults caps the requested count.
	MaxResults int `json:"max_results"`

	// MaxTags caps the number of selected tags per request.
	MaxTags int `json:"max_tags"`

	// DiscoverPages is how many discover pages are read per tag.
	DiscoverPages int `json:"discover_pages"`

	// SimilarPages is how many similar-title pages are read per seed title.
	SimilarPages int `json:"similar_pages"`

	// SimilarSeedTitles is how many top history titles seed the
	// similar-title annotation. Zero disables it.
	SimilarSeedTitles int `json:"similar_seed_titles"`

	// EnrichTopN is how many top history titles are resolved against the
	// catalog to build the profile.
	EnrichTopN int `json:"enrich_top_n"`

	// ProfileMinRating is the rating a title needs to feed the profile.
	ProfileMinRating float64 `json:"profile_min_rating"`

	// Workers bounds concurrent catalog calls per request.
	Workers int `json:"workers"`

	// Weights hold the scorer and ranking weights.
	Taste       taste.Weights                 `json:"taste"`
	Familiarity algorithms.FamiliarityWeights `json:"familiarity"`
	Similarity  algorithms.SimilarityWeights  `json:"similarity"`
	Ranking     reranking.Weights             `json:"ranking"`
	Limits      profile.Limits                `json:"limits"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultResults:    20,
		MaxResults:        100,
		MaxTags:           25,
		DiscoverPages:     3,
		SimilarPages:      2,
		SimilarSeedTitles: 40,
		EnrichTopN:        60,
		ProfileMinRating:  profile.DefaultMinRating,
		Workers:           4,
		Taste:             taste.DefaultWeights(),
		Familiarity:       algorithms.DefaultFamiliarityWeights(),
		Similarity:        algorithms.DefaultSimilarityWeights(),
		Ranking:           reranking.DefaultWeights(),
		Limits:            profile.DefaultLimits(),
	}
}

// ConfigFromSettings overlays the operator settings on DefaultConfig.
// Scorer weights always keep their defaults.
func ConfigFromSettings(rc *config.RecommendConfig) *Config {
	cfg := DefaultConfig()
	if rc == nil {
		return cfg
	}
	cfg.DefaultResults = rc.DefaultResults
	cfg.MaxResults = rc.MaxResults
	cfg.MaxTags = rc.MaxTags
	cfg.DiscoverPages = rc.DiscoverPages
	cfg.SimilarPages = rc.SimilarPages
	cfg.SimilarSeedTitles = rc.SimilarSeedTitles
	cfg.EnrichTopN = rc.EnrichTopN
	cfg.ProfileMinRating = rc.ProfileMinRating
	cfg.Workers = rc.Workers
	return cfg
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultResults <= 0 {
		return fmt.Errorf("default_results must be positive, got %d", c.DefaultResults)
	}
	if c.MaxResults < c.DefaultResults {
		return fmt.Errorf("max_results must be >= default_results, got %d < %d", c.MaxResults, c.DefaultResults)
	}
	if c.MaxTags <= 0 {
		return fmt.Errorf("max_tags must be positive, got %d", c.MaxTags)
	}
	if c.DiscoverPages <= 0 {
		return fmt.Errorf("discover_pages must be positive, got %d", c.DiscoverPages)
	}
	if c.SimilarPages < 0 {
		return fmt.Errorf("similar_pages must be non-negative, got %d", c.SimilarPages)
	}
	if c.SimilarSeedTitles < 0 {
		return fmt.Errorf("similar_seed_titles must be non-negative, got %d", c.SimilarSeedTitles)
	}
	if c.EnrichTopN < 0 {
		return fmt.Errorf("enrich_top_n must be non-negative, got %d", c.EnrichTopN)
	}
	if c.ProfileMinRating < 0 || c.ProfileMinRating > 5 {
		return fmt.Errorf("profile_min_rating must be in [0, 5], got %g", c.ProfileMinRating)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Ranking.Similarity < 0 || c.Ranking.Familiarity < 0 {
		return fmt.Errorf("ranking weights must be non-negative, got %g/%g", c.Ranking.Similarity, c.Ranking.Familiarity)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
