// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package recommend

import (
	"testing"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/recommend/reranking"
)

func TestCalibrationFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cal  Calibration
		want catalog.Filters
	}{
		{
			name: "all disabled",
			cal:  Calibration{Era: 1, Runtime: 1, Popularity: 1, Familiarity: 1},
			want: catalog.Filters{},
		},
		{
			name: "low buckets",
			cal:  Calibration{Era: 3, EraEnabled: true, Runtime: 1, RuntimeEnabled: true, Popularity: 2, PopularityEnabled: true},
			want: catalog.Filters{ReleaseFrom: "1920-01-01", ReleaseTo: "1980-12-31", RuntimeMax: 90, SortBy: catalog.SortPopularityAsc},
		},
		{
			name: "mid buckets",
			cal:  Calibration{Era: 4, EraEnabled: true, Runtime: 7, RuntimeEnabled: true, Popularity: 5, PopularityEnabled: true},
			want: catalog.Filters{ReleaseFrom: "1980-01-01", ReleaseTo: "2010-12-31", RuntimeMin: 90, RuntimeMax: 150, SortBy: catalog.SortPopularityDesc},
		},
		{
			name: "high buckets",
			cal:  Calibration{Era: 8, EraEnabled: true, Runtime: 10, RuntimeEnabled: true, Popularity: 9, PopularityEnabled: true},
			want: catalog.Filters{ReleaseFrom: "2010-01-01", ReleaseTo: "2030-12-31", RuntimeMin: 150, SortBy: catalog.SortVoteAverageDesc},
		},
		{
			name: "only runtime",
			cal:  Calibration{Era: 9, Runtime: 5, RuntimeEnabled: true, Popularity: 9},
			want: catalog.Filters{RuntimeMin: 90, RuntimeMax: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cal.Filters(); got != tt.want {
				t.Errorf("Filters() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalibrationBand(t *testing.T) {
	t.Parallel()

	if _, ok := (Calibration{Familiarity: 2}).Band(); ok {
		t.Error("disabled familiarity must not produce a band")
	}
	band, ok := Calibration{Familiarity: 2, FamiliarityEnabled: true}.Band()
	if !ok || band != reranking.FamiliarityBand(2) {
		t.Errorf("Band() = %v, %v", band, ok)
	}
}
