// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package algorithms

import (
	"github.com/tomtom215/lumiere/internal/catalog"
)

// SimilarityWeights are the per-phrase points of the similarity score.
type SimilarityWeights struct {
	Keyword  float64
	Overview float64
	Genre    float64
}

// DefaultSimilarityWeights returns the standard weights.
func DefaultSimilarityWeights() SimilarityWeights {
	return SimilarityWeights{
		Keyword:  8,
		Overview: 3,
		Genre:    5,
	}
}

// Similarity scores how strongly a candidate echoes the synonym phrases of
// the selected tags. A phrase shared by two selected tags counts once per
// tag. Unknown tags contribute nothing.
type Similarity struct {
	tags    []string
	phrases [][]int // per selected tag, indices into phraseMatcher
	weights SimilarityWeights
}

// NewSimilarity creates a similarity scorer for the selected tags.
func NewSimilarity(tags []string, w SimilarityWeights) *Similarity {
	s := &Similarity{weights: w}
	for _, tag := range tags {
		t, ok := LookupTag(tag)
		if !ok {
			continue
		}
		s.tags = append(s.tags, t.ID)
		s.phrases = append(s.phrases, tagPhrases[t.ID])
	}
	return s
}

// Name implements Scorer.
func (s *Similarity) Name() string {
	return "similarity"
}

// KnownTags returns the selected tags that have synonym phrases.
func (s *Similarity) KnownTags() []string {
	return append([]string(nil), s.tags...)
}

// Score implements Scorer.
func (s *Similarity) Score(d *catalog.Detail) float64 {
	if d == nil || len(s.phrases) == 0 {
		return 0
	}

	inKeywords := phraseMatcher.Present(d.KeywordNames()...)
	inOverview := phraseMatcher.Present(d.Overview)
	inGenres := phraseMatcher.Present(d.GenreNames()...)

	var score float64
	for _, idx := range s.phrases {
		for _, p := range idx {
			if inKeywords[p] {
				score += s.weights.Keyword
			}
			if inOverview[p] {
				score += s.weights.Overview
			}
			if inGenres[p] {
				score += s.weights.Genre
			}
		}
	}
	return capScore(score)
}
