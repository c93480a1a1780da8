// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/recommend"
)

// RecommendByTags handles POST /api/v1/recommendations/tags
// Runs the full pipeline for the selected tags and calibration.
func (h *Handler) RecommendByTags(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// Calibration axes absent from the body keep their defaults.
	req := recommend.Request{Calibration: recommend.DefaultCalibration()}
	if err := decodeJSON(w, r, &req, false); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(r.Context())
	}

	if req.UseStoredHistory && len(req.History) == 0 && len(req.FavoriteURLs) == 0 && h.store != nil {
		favorites, err := h.store.FavoriteURLs(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("stored favorites unavailable")
		} else {
			req.FavoriteURLs = favorites
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	resp, err := h.engine.GetRecommendations(ctx, req)
	if err != nil {
		status, code, message := classifyPipelineError(err)
		respondError(w, r, status, code, message, err)
		return
	}
	respondJSON(w, r, http.StatusOK, resp, start)
}

// classifyPipelineError maps a pipeline failure to a response status.
func classifyPipelineError(err error) (status int, code, message string) {
	var statusErr *catalog.StatusError
	switch {
	case errors.Is(err, recommend.ErrInvalidRequest):
		return http.StatusBadRequest, CodeValidation, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, CodeServiceUnavailable, "Recommendation timed out"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable, CodeServiceUnavailable, "Movie catalog is temporarily unavailable"
	case errors.As(err, &statusErr):
		return http.StatusBadGateway, CodeExternalService, "Movie catalog request failed"
	default:
		return http.StatusInternalServerError, CodeInternal, "Failed to generate recommendations"
	}
}
