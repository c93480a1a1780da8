// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/lumiere/internal/recommend/profile"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 10000
)

// History handles GET /api/v1/history?limit=
// Returns the stored history ranked by taste score.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.store == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "History store is not configured", nil)
		return
	}
	limit := clamp(getIntParam(r, "limit", defaultHistoryLimit), 1, maxHistoryLimit)

	records, favorites, err := h.storedHistory(r.Context(), nil)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to load stored history", err)
		return
	}
	run, _, err := h.store.LatestImport(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to load import history", err)
		return
	}

	scores := h.engine.ComputeTasteScores(records, favorites)
	respondJSON(w, r, http.StatusOK, &HistoryResponse{
		Total:      len(scores),
		LastImport: run,
		Scores:     truncateScores(scores, limit),
	}, start)
}

// GetPreferences handles GET /api/v1/preferences
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.store == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "History store is not configured", nil)
		return
	}

	prefs, ok, err := h.store.GetPreferences(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to load preferences", err)
		return
	}
	if !ok {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "No preferences have been saved", nil)
		return
	}
	respondJSON(w, r, http.StatusOK, &PreferencesResponse{Saved: true, Preferences: prefs}, start)
}

// PutPreferences handles PUT /api/v1/preferences
// Replaces the saved preference document. Later recommendation requests
// seed the profile from it instead of enriching the history.
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.store == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "History store is not configured", nil)
		return
	}

	var prefs profile.Preferences
	if err := decodeJSON(w, r, &prefs, false); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&prefs); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if prefs.IsEmpty() {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "At least one preference list must be non-empty", nil)
		return
	}

	if err := h.store.SavePreferences(r.Context(), &prefs); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to save preferences", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &PreferencesResponse{Saved: true, Preferences: &prefs}, start)
}

// DeletePreferences handles DELETE /api/v1/preferences
// Later requests fall back to history enrichment.
func (h *Handler) DeletePreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.store == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "History store is not configured", nil)
		return
	}
	if err := h.store.DeletePreferences(r.Context()); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to delete preferences", err)
		return
	}
	respondJSON(w, r, http.StatusOK, &PreferencesResponse{Saved: false}, start)
}
