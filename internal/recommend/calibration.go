// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package recommend

import (
	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/recommend/reranking"
)

// Filters maps the enabled calibration axes to discover filters. Each axis
// has three buckets: 1..3, 4..7 and 8..10.
func (c Calibration) Filters() catalog.Filters {
	var f catalog.Filters

	if c.EraEnabled {
		switch bucket(c.Era) {
		case low:
			f.ReleaseFrom, f.ReleaseTo = "1920-01-01", "1980-12-31"
		case mid:
			f.ReleaseFrom, f.ReleaseTo = "1980-01-01", "2010-12-31"
		default:
			f.ReleaseFrom, f.ReleaseTo = "2010-01-01", "2030-12-31"
		}
	}

	if c.RuntimeEnabled {
		switch bucket(c.Runtime) {
		case low:
			f.RuntimeMax = 90
		case mid:
			f.RuntimeMin, f.RuntimeMax = 90, 150
		default:
			f.RuntimeMin = 150
		}
	}

	if c.PopularityEnabled {
		switch bucket(c.Popularity) {
		case low:
			f.SortBy = catalog.SortPopularityAsc
		case mid:
			f.SortBy = catalog.SortPopularityDesc
		default:
			f.SortBy = catalog.SortVoteAverageDesc
		}
	}

	return f
}

// Band returns the familiarity band, or false when the axis is disabled.
func (c Calibration) Band() (reranking.Band, bool) {
	if !c.FamiliarityEnabled {
		return reranking.Band{}, false
	}
	return reranking.FamiliarityBand(c.Familiarity), true
}

type level int

const (
	low level = iota
	mid
	high
)

func bucket(v int) level {
	switch {
	case v <= 3:
		return low
	case v <= 7:
		return mid
	default:
		return high
	}
}
