// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Package catalog is the gateway to the external movie metadata catalog (TMDB).

The recommendation pipeline depends on exactly four operations:

	DiscoverByFilter(ref, filters, page)  discover/movie by genre or keyword
	GetSimilar(id, page)                  movie/{id}/similar
	GetDetails(id)                        movie/{id} with credits and keywords
	SearchByTitle(title, year)            search/movie

Gateway implements them on top of three layers:

  - Client: HTTP transport. Outbound requests are throttled by a token
    bucket (golang.org/x/time/rate, ~10 req/s), HTTP 429 is retried with
    exponential backoff honoring Retry-After, and error bodies are read
    through a size limit.
  - BreakerFetcher: a sony/gobreaker circuit breaker so a failing catalog
    is rejected fast instead of stalling every request.
  - cache.ResponseCache: every raw response is stored under a deterministic
    fingerprint and never refetched.

Payloads are decoded into typed records and validated here, at the boundary.
Scoring code downstream never sees a record without an ID or title.

The package also owns tag resolution: a static genre table plus the keyword
name index loaded from all_keywords.csv.
*/
package catalog
