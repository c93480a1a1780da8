// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/metrics"
)

// importSourceLetterboxd labels uploaded Letterboxd exports.
const importSourceLetterboxd = "letterboxd"

// multipartMemory is the part of a multipart body kept in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// ImportLetterboxd handles POST /api/v1/imports/letterboxd
// Accepts a Letterboxd export zip in the multipart field "file", merges it,
// persists the records and returns them ranked by taste score.
func (h *Handler) ImportLetterboxd(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.store == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "History store is not configured", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, CodeBadRequest, "Upload exceeds the size limit", err)
			return
		}
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Failed to parse upload", err)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "No export file provided in field \"file\"", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Failed to read upload", err)
		return
	}

	logger := logging.Ctx(r.Context())
	export, err := mergeUpload(data, *logger)
	if err != nil {
		metrics.RecordHistoryImport(importSourceLetterboxd, err)
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Invalid Letterboxd export: "+err.Error(), err)
		return
	}

	run, err := h.store.SaveImport(r.Context(), importSourceLetterboxd, export.Records, export.Favorites)
	metrics.RecordHistoryImport(importSourceLetterboxd, err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to save imported history", err)
		return
	}

	logger.Info().
		Str("import_id", run.ID).
		Int("records", run.Records).
		Int("favorites", len(export.Favorites)).
		Msg("Letterboxd export imported")

	scores := h.engine.ComputeTasteScores(export.Records, export.Favorites)
	respondJSON(w, r, http.StatusCreated, &ImportResponse{
		Import: run,
		Stats:  export.Stats,
		Scores: truncateScores(scores, 0),
	}, start)
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func mergeUpload(data []byte, logger zerolog.Logger) (*history.Export, error) {
	fsys, err := history.OpenExportArchive(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return history.MergeExport(fsys, logger)
}
