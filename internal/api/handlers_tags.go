// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/lumiere/internal/recommend/algorithms"
)

const (
	defaultKeywordLimit = 20
	maxKeywordLimit     = 100
	maxKeywordQuery     = 100
)

// Tags handles GET /api/v1/tags
// Returns the selectable tag vocabulary grouped by category.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondJSON(w, r, http.StatusOK, map[string]any{
		"categories": algorithms.VocabularyByCategory(),
		"total":      len(algorithms.Vocabulary()),
	}, start)
}

// KeywordSearch handles GET /api/v1/keywords/search?q=&limit=
func (h *Handler) KeywordSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.keywords == nil || h.keywords.Len() == 0 {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "Keyword index is not loaded", nil)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "q is required", nil)
		return
	}
	if len(q) > maxKeywordQuery {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "q is too long", nil)
		return
	}
	limit := clamp(getIntParam(r, "limit", defaultKeywordLimit), 1, maxKeywordLimit)

	found := h.keywords.Search(q, limit)
	matches := make([]keywordMatchResponse, len(found))
	for i, m := range found {
		matches[i] = keywordMatchResponse{Name: m.Name, ID: m.ID}
	}
	respondJSON(w, r, http.StatusOK, &KeywordSearchResponse{Query: q, Matches: matches}, start)
}

// KeywordStatus handles GET /api/v1/keywords/status
func (h *Handler) KeywordStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := KeywordStatusResponse{}
	if h.keywords != nil {
		status.Keywords = h.keywords.Len()
		status.Loaded = status.Keywords > 0
	}
	respondJSON(w, r, http.StatusOK, &status, start)
}
