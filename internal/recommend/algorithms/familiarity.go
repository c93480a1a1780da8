// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package algorithms

import (
	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/recommend/profile"
)

// FamiliarityWeights are the per-match points of the familiarity score.
type FamiliarityWeights struct {
	Actor    float64
	Director float64
	Writer   float64
	Keyword  float64
	Genre    float64
}

// DefaultFamiliarityWeights returns the standard weights.
func DefaultFamiliarityWeights() FamiliarityWeights {
	return FamiliarityWeights{
		Actor:    5,
		Director: 10,
		Writer:   7,
		Keyword:  2,
		Genre:    3,
	}
}

// Familiarity scores how much of a candidate's cast, crew, keywords and
// genres the user already knows.
type Familiarity struct {
	profile *profile.Profile
	weights FamiliarityWeights
}

// NewFamiliarity creates a familiarity scorer over p. A nil profile scores
// every candidate 0.
func NewFamiliarity(p *profile.Profile, w FamiliarityWeights) *Familiarity {
	if p == nil {
		p = profile.Empty()
	}
	return &Familiarity{profile: p, weights: w}
}

// Name implements Scorer.
func (f *Familiarity) Name() string {
	return "familiarity"
}

// Score implements Scorer.
func (f *Familiarity) Score(d *catalog.Detail) float64 {
	if d == nil || f.profile.IsEmpty() {
		return 0
	}

	var score float64
	for _, name := range d.TopCast(catalog.TopCastLimit) {
		if f.profile.KnowsActor(name) {
			score += f.weights.Actor
		}
	}
	for _, name := range d.Directors() {
		if f.profile.KnowsDirector(name) {
			score += f.weights.Director
		}
	}
	for _, name := range d.Writers() {
		if f.profile.KnowsWriter(name) {
			score += f.weights.Writer
		}
	}
	for _, kw := range d.KeywordNames() {
		if f.profile.KnowsKeyword(kw) {
			score += f.weights.Keyword
		}
	}
	for _, g := range d.GenreNames() {
		if f.profile.PrefersGenre(g) {
			score += f.weights.Genre
		}
	}
	return capScore(score)
}
