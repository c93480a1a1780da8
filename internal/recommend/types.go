// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package recommend

import (
	"errors"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/history"
)

// ErrInvalidRequest is returned for requests that fail validation.
var ErrInvalidRequest = errors.New("recommend: invalid request")

// SimilarProvenance is the source tag added to candidates that are also
// similar to one of the user's top titles.
const SimilarProvenance = "similar_to_user_favorite"

// Calibration holds the user's slider settings. Each axis is 1..10 and
// can be disabled independently.
type Calibration struct {
	Era                int  `json:"era" validate:"min=1,max=10"`
	EraEnabled         bool `json:"era_enabled"`
	Runtime            int  `json:"runtime" validate:"min=1,max=10"`
	RuntimeEnabled     bool `json:"runtime_enabled"`
	Popularity         int  `json:"popularity" validate:"min=1,max=10"`
	PopularityEnabled  bool `json:"popularity_enabled"`
	Familiarity        int  `json:"familiarity" validate:"min=1,max=10"`
	FamiliarityEnabled bool `json:"familiarity_enabled"`
}

// DefaultCalibration returns every axis at 5 and enabled.
func DefaultCalibration() Calibration {
	return Calibration{
		Era: 5, EraEnabled: true,
		Runtime: 5, RuntimeEnabled: true,
		Popularity: 5, PopularityEnabled: true,
		Familiarity: 5, FamiliarityEnabled: true,
	}
}

// Request is a recommendation request.
type Request struct {
	// RequestID is propagated to logs. Generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// Tags are the selected tag names, in selection order.
	Tags []string `json:"tags" validate:"required,min=1,max=25,dive,required,max=100"`

	Calibration Calibration `json:"calibration"`

	// History is the user's watch history. When empty and
	// UseStoredHistory is set, the stored history is used.
	History          []history.WatchRecord `json:"history,omitempty" validate:"omitempty,dive"`
	UseStoredHistory bool                  `json:"use_stored_history,omitempty"`

	// FavoriteURLs feed the taste score used to pick the top titles.
	FavoriteURLs []string `json:"favorite_urls,omitempty"`

	// MaxResults is the number of recommendations to return.
	MaxResults int `json:"max_results,omitempty" validate:"omitempty,min=1"`
}

// Candidate is one recommended movie.
type Candidate struct {
	CatalogID    int      `json:"catalog_id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	ReleaseDate  string   `json:"release_date"`
	PosterPath   string   `json:"poster_path,omitempty"`
	BackdropPath string   `json:"backdrop_path,omitempty"`
	Genres       []string `json:"genres"`
	Runtime      int      `json:"runtime"`
	VoteAverage  float64  `json:"vote_average"`
	VoteCount    int      `json:"vote_count"`

	Final       float64 `json:"final_score"`
	Similarity  float64 `json:"similarity_score"`
	Familiarity float64 `json:"familiarity_score"`

	// SourceTags lists the tags that surfaced the movie, in first-seen
	// order, without duplicates.
	SourceTags []string `json:"source_tags"`

	// DetailsMissing is set when the detail fetch failed and both scores
	// are zero.
	DetailsMissing bool `json:"details_missing,omitempty"`

	year int
}

func newCandidate(s *catalog.Summary) *Candidate {
	return &Candidate{
		CatalogID:    s.ID,
		Title:        s.Title,
		Overview:     s.Overview,
		ReleaseDate:  s.ReleaseDate,
		PosterPath:   s.PosterPath,
		BackdropPath: s.BackdropPath,
		Genres:       catalog.GenreNames(s.GenreIDs),
		VoteAverage:  s.VoteAverage,
		VoteCount:    s.VoteCount,
		SourceTags:   []string{},
		year:         s.Year(),
	}
}

// applyDetail refreshes display fields from a detail record.
func (c *Candidate) applyDetail(d *catalog.Detail) {
	if d.Title != "" {
		c.Title = d.Title
	}
	c.Overview = d.Overview
	if d.ReleaseDate != "" {
		c.ReleaseDate = d.ReleaseDate
		c.year = d.Year()
	}
	c.PosterPath = d.PosterPath
	c.BackdropPath = d.BackdropPath
	c.Genres = d.GenreNames()
	c.Runtime = d.Runtime
	c.VoteAverage = d.VoteAverage
	c.VoteCount = d.VoteCount
}

// addSource appends tag unless already present.
func (c *Candidate) addSource(tag string) {
	for _, t := range c.SourceTags {
		if t == tag {
			return
		}
	}
	c.SourceTags = append(c.SourceTags, tag)
}

// Year returns the release year, or 0 when unknown.
func (c *Candidate) Year() int { return c.year }

// FamiliarityScore implements reranking.Scored.
func (c *Candidate) FamiliarityScore() float64 { return c.Familiarity }

// SimilarityScore implements reranking.Scored.
func (c *Candidate) SimilarityScore() float64 { return c.Similarity }

// FinalScore implements reranking.Scored.
func (c *Candidate) FinalScore() float64 { return c.Final }

// SetFinalScore implements reranking.Scored.
func (c *Candidate) SetFinalScore(s float64) { c.Final = s }

// Response is the ranked result of a request.
type Response struct {
	Recommendations []Candidate `json:"recommendations"`
	Metadata        Metadata    `json:"metadata"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	RequestID        string         `json:"request_id"`
	TotalFound       int            `json:"total_found"`
	ProcessingTimeMS int64          `json:"processing_time_ms"`
	ProfileSummary   ProfileSummary `json:"user_profile_summary"`
	Stages           StageCounts    `json:"stages"`

	// UnresolvedTags lists selected tags with no catalog genre or keyword.
	UnresolvedTags []string `json:"unresolved_tags"`

	// Reason explains an empty or degraded result.
	Reason string `json:"reason,omitempty"`
}

// Values of Metadata.Reason.
const (
	ReasonNoTagsResolved     = "none of the selected tags matched a catalog genre or keyword"
	ReasonCatalogUnavailable = "the catalog is unavailable, every discover request failed"
	ReasonNoCandidates       = "the catalog returned no movies for the selected tags and calibration"
	ReasonAllWatched         = "every candidate has already been watched"
	ReasonBandIgnored        = "no candidate matched the familiarity setting, so it was ignored"
)

// ProfileSummary describes the user data behind a response.
type ProfileSummary struct {
	TagsSelected    int              `json:"tags_selected"`
	Tags            []string         `json:"tags"`
	Calibration     Calibration      `json:"calibration_settings"`
	MoviesAnalyzed  int              `json:"movies_analyzed"`
	UserDataLoaded  bool             `json:"user_data_loaded"`
	ProfileSource   string           `json:"profile_source"`
	UserPreferences PreferenceCounts `json:"user_preferences"`
}

// Profile sources.
const (
	ProfileSourceNone        = "none"
	ProfileSourceHistory     = "history"
	ProfileSourcePreferences = "preferences"
)

// PreferenceCounts counts the names the profile matches against.
type PreferenceCounts struct {
	Actors    int `json:"actors"`
	Directors int `json:"directors"`
	Writers   int `json:"writers"`
	Keywords  int `json:"keywords"`
	Genres    int `json:"genres"`
}

// StageCounts are the candidate counts after each stage.
type StageCounts struct {
	Superlist               int  `json:"superlist_size"`
	SimilarAnnotated        int  `json:"similar_annotated"`
	AfterWatchedFilter      int  `json:"after_watched_filter"`
	DetailFailures          int  `json:"detail_failures"`
	AfterFamiliarityBand    int  `json:"after_familiarity_band"`
	FamiliarityBandBypassed bool `json:"familiarity_band_bypassed"`
}
