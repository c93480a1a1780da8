// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"github.com/tomtom215/lumiere/internal/database"
	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/recommend/taste"
)

// History sources reported in responses.
const (
	sourceRequest = "request"
	sourceStored  = "stored"
)

// TasteScoresRequest is the body of POST /taste/scores. When History is
// omitted the stored history and favorites are ranked.
type TasteScoresRequest struct {
	History      []history.WatchRecord `json:"history,omitempty" validate:"omitempty,max=50000,dive"`
	FavoriteURLs []string              `json:"favorite_urls,omitempty" validate:"omitempty,max=100,dive,max=2048"`
	Limit        int                   `json:"limit,omitempty" validate:"omitempty,min=1,max=50000"`
}

// TasteScoresResponse lists records ranked by taste score.
type TasteScoresResponse struct {
	Source string        `json:"source"`
	Total  int           `json:"total"`
	Scores []taste.Score `json:"scores"`
}

// ImportResponse is returned by POST /imports/letterboxd.
type ImportResponse struct {
	Import *database.ImportRun `json:"import"`
	Stats  history.MergeStats  `json:"stats"`
	Scores []taste.Score       `json:"scores"`
}

// KeywordSearchResponse is returned by GET /keywords/search.
type KeywordSearchResponse struct {
	Query   string                 `json:"query"`
	Matches []keywordMatchResponse `json:"matches"`
}

type keywordMatchResponse struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// KeywordStatusResponse is returned by GET /keywords/status.
type KeywordStatusResponse struct {
	Loaded   bool `json:"loaded"`
	Keywords int  `json:"keywords"`
}

// HistoryResponse is returned by GET /history.
type HistoryResponse struct {
	Total      int                 `json:"total"`
	LastImport *database.ImportRun `json:"last_import,omitempty"`
	Scores     []taste.Score       `json:"scores"`
}

// PreferencesResponse is returned by the preferences endpoints.
type PreferencesResponse struct {
	Saved       bool `json:"saved"`
	Preferences any  `json:"preferences"`
}
