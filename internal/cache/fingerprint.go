// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package cache

import (
	"net/url"
	"sort"
	"strings"
)

// secretParams never contribute to a fingerprint.
var secretParams = map[string]struct{}{
	"api_key":      {},
	"access_token": {},
}

// Fingerprint derives the cache key for a catalog call.
//
// The endpoint's slashes become underscores, followed by every non-secret
// parameter as key_value in key order:
//
//	Fingerprint("discover/movie", {with_genres: 35, page: 2, api_key: x})
//	  == "discover_movie_page_2_with_genres_35"
//
// Multi-valued parameters join their values with commas. The result depends
// only on the endpoint and parameter set, never on map iteration order.
func Fingerprint(endpoint string, params url.Values) string {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(strings.Trim(endpoint, "/"), "/", "_"))

	keys := make([]string, 0, len(params))
	for k := range params {
		if _, secret := secretParams[k]; secret {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteByte('_')
		b.WriteString(k)
		b.WriteByte('_')
		b.WriteString(strings.Join(params[k], ","))
	}
	return b.String()
}
