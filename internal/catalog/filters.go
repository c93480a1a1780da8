// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package catalog

import (
	"net/url"
	"strconv"
)

// Sort orders accepted by discover.
const (
	SortPopularityAsc   = "popularity.asc"
	SortPopularityDesc  = "popularity.desc"
	SortVoteAverageDesc = "vote_average.desc"
)

// Filters narrows a discover query. Zero fields are not sent.
type Filters struct {
	// ReleaseFrom and ReleaseTo bound primary_release_date (YYYY-MM-DD).
	ReleaseFrom string `json:"release_from,omitempty"`
	ReleaseTo   string `json:"release_to,omitempty"`

	// RuntimeMin and RuntimeMax bound with_runtime in minutes.
	RuntimeMin int `json:"runtime_min,omitempty"`
	RuntimeMax int `json:"runtime_max,omitempty"`

	// SortBy is one of the Sort* constants. Empty leaves the catalog's own
	// ordering and keeps sort_by out of the query and its cache key.
	SortBy string `json:"sort_by,omitempty"`
}

// apply writes the filter parameters into params.
func (f Filters) apply(params url.Values) {
	if f.ReleaseFrom != "" {
		params.Set("primary_release_date.gte", f.ReleaseFrom)
	}
	if f.ReleaseTo != "" {
		params.Set("primary_release_date.lte", f.ReleaseTo)
	}
	if f.RuntimeMin > 0 {
		params.Set("with_runtime.gte", strconv.Itoa(f.RuntimeMin))
	}
	if f.RuntimeMax > 0 {
		params.Set("with_runtime.lte", strconv.Itoa(f.RuntimeMax))
	}
	if f.SortBy != "" {
		params.Set("sort_by", f.SortBy)
	}
}
