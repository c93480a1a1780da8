// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/recommend/taste"
)

// TasteScores handles POST /api/v1/taste/scores
// Ranks the posted history, or the stored history when none is posted.
func (h *Handler) TasteScores(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req TasteScoresRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	records, favorites, source := req.History, req.FavoriteURLs, sourceRequest
	if len(records) == 0 {
		if h.store == nil {
			respondError(w, r, http.StatusBadRequest, CodeValidation, "history is required when no history store is configured", nil)
			return
		}
		var err error
		records, favorites, err = h.storedHistory(r.Context(), favorites)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to load stored history", err)
			return
		}
		source = sourceStored
	}

	scores := h.engine.ComputeTasteScores(records, favorites)
	respondJSON(w, r, http.StatusOK, &TasteScoresResponse{
		Source: source,
		Total:  len(scores),
		Scores: truncateScores(scores, req.Limit),
	}, start)
}

// storedHistory loads the persisted history. favorites wins over the
// persisted favorites when non-empty.
func (h *Handler) storedHistory(ctx context.Context, favorites []string) ([]history.WatchRecord, []string, error) {
	records, err := h.store.ListWatchRecords(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list watch records: %w", err)
	}
	if len(favorites) == 0 {
		favorites, err = h.store.FavoriteURLs(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load favorites: %w", err)
		}
	}
	return records, favorites, nil
}

func truncateScores(scores []taste.Score, limit int) []taste.Score {
	if scores == nil {
		return []taste.Score{}
	}
	if limit > 0 && len(scores) > limit {
		return scores[:limit]
	}
	return scores
}
