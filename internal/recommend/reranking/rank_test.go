// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package reranking

import (
	"math"
	"testing"
)

type item struct {
	id    int
	sim   float64
	fam   float64
	final float64
}

func (i *item) FamiliarityScore() float64 { return i.fam }
func (i *item) SimilarityScore() float64  { return i.sim }
func (i *item) SetFinalScore(s float64)   { i.final = s }
func (i *item) FinalScore() float64       { return i.final }

func ids(items []*item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFamiliarityBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level int
		want  Band
	}{
		{1, Band{0, 50}},
		{3, Band{0, 50}},
		{4, Band{0, 80}},
		{7, Band{0, 80}},
		{8, Band{20, 100}},
		{10, Band{20, 100}},
	}

	for _, tt := range tests {
		if got := FamiliarityBand(tt.level); got != tt.want {
			t.Errorf("FamiliarityBand(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestFilterBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		level        int
		fams         []float64
		wantIDs      []int
		wantBypassed bool
	}{
		{"unfamiliar keeps low", 2, []float64{10, 60, 50}, []int{0, 2}, false},
		{"medium keeps up to 80", 5, []float64{0, 80, 81}, []int{0, 1}, false},
		{"familiar keeps high", 9, []float64{19, 20, 100}, []int{1, 2}, false},
		{"fails open", 9, []float64{0, 5, 10}, []int{0, 1, 2}, true},
		{"empty input", 5, nil, []int{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items := make([]*item, len(tt.fams))
			for i, f := range tt.fams {
				items[i] = &item{id: i, fam: f}
			}
			kept, bypassed := FilterBand(items, FamiliarityBand(tt.level))
			if bypassed != tt.wantBypassed {
				t.Errorf("bypassed = %v, want %v", bypassed, tt.wantBypassed)
			}
			if got := ids(kept); !equalInts(got, tt.wantIDs) {
				t.Errorf("kept = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	items := []*item{
		{id: 1, sim: 50, fam: 0},   // 30
		{id: 2, sim: 0, fam: 100},  // 40
		{id: 3, sim: 50, fam: 0},   // 30, tie with 1
		{id: 4, sim: 100, fam: 50}, // 80
	}

	got := Rank(items, DefaultWeights(), 3)
	if want := []int{4, 2, 1}; !equalInts(ids(got), want) {
		t.Fatalf("Rank order = %v, want %v", ids(got), want)
	}
	if math.Abs(got[0].final-80) > 1e-9 {
		t.Errorf("final[0] = %v, want 80", got[0].final)
	}
}

func TestRankStableTies(t *testing.T) {
	t.Parallel()

	var items []*item
	for i := 0; i < 10; i++ {
		items = append(items, &item{id: i, sim: 40})
	}
	got := Rank(items, DefaultWeights(), 0)
	if want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}; !equalInts(ids(got), want) {
		t.Errorf("ties reordered: %v", ids(got))
	}
}
