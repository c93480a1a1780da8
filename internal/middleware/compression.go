// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// compressionLevel trades a little CPU for roughly 80% smaller
// recommendation payloads.
const compressionLevel = 5

// compressibleTypes lists the response types the API emits in bulk.
var compressibleTypes = []string{
	"application/json",
	"application/problem+json",
	"text/csv",
	"text/plain",
}

var compress = chimiddleware.Compress(compressionLevel, compressibleTypes...)

// Compression gzips or deflates JSON and CSV responses for clients that
// accept it. Responses without a listed Content-Type pass through untouched.
// The Prometheus exposition handler negotiates its own encoding and is
// mounted outside this middleware.
func Compression(next http.Handler) http.Handler {
	return compress(next)
}
