// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package reranking

import (
	"fmt"
	"sort"
)

// Scored is a candidate carrying both component scores.
type Scored interface {
	FamiliarityScore() float64
	SimilarityScore() float64
	SetFinalScore(score float64)
	FinalScore() float64
}

// Band is an inclusive range of acceptable familiarity scores.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether score lies in the band.
func (b Band) Contains(score float64) bool {
	return score >= b.Min && score <= b.Max
}

func (b Band) String() string {
	return fmt.Sprintf("[%g, %g]", b.Min, b.Max)
}

// FamiliarityBand maps a calibration level to its band.
func FamiliarityBand(level int) Band {
	switch {
	case level <= 3:
		return Band{Min: 0, Max: 50}
	case level <= 7:
		return Band{Min: 0, Max: 80}
	default:
		return Band{Min: 20, Max: 100}
	}
}

// FilterBand keeps the items whose familiarity lies in band. When nothing
// survives, it returns items unchanged and bypassed=true.
func FilterBand[T Scored](items []T, band Band) (kept []T, bypassed bool) {
	kept = make([]T, 0, len(items))
	for _, it := range items {
		if band.Contains(it.FamiliarityScore()) {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 && len(items) > 0 {
		return items, true
	}
	return kept, false
}

// Weights blend the component scores into the final score.
type Weights struct {
	Similarity  float64
	Familiarity float64
}

// DefaultWeights returns 0.6 similarity, 0.4 familiarity.
func DefaultWeights() Weights {
	return Weights{Similarity: 0.6, Familiarity: 0.4}
}

// Final computes the blended score.
func (w Weights) Final(similarity, familiarity float64) float64 {
	return similarity*w.Similarity + familiarity*w.Familiarity
}

// Rank sets every item's final score, sorts descending (stable) and keeps
// the first limit items. A limit <= 0 keeps all. items is reordered in
// place.
func Rank[T Scored](items []T, w Weights, limit int) []T {
	for _, it := range items {
		it.SetFinalScore(w.Final(it.SimilarityScore(), it.FamiliarityScore()))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].FinalScore() > items[j].FinalScore()
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
