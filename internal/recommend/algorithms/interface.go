// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package algorithms implements the candidate scorers.
//
// Each scorer maps one catalog detail record to a score in [0, 100]:
//
//   - Familiarity: overlap of cast, crew, keywords and genres with the
//     user's profile
//   - Similarity: how strongly keywords, overview and genres echo the
//     synonym phrases of the selected tags
//
// Scores are additive and truncated at MaxScore, never rescaled.
//
// # Thread Safety
//
// Scorers are immutable after construction and safe for concurrent use.
package algorithms

import (
	"github.com/tomtom215/lumiere/internal/catalog"
)

// MaxScore caps every scorer.
const MaxScore = 100.0

// Scorer scores one candidate.
type Scorer interface {
	// Name identifies the scorer in logs and metrics.
	Name() string

	// Score returns a value in [0, MaxScore]. A nil detail scores 0.
	Score(d *catalog.Detail) float64
}

// capScore truncates s at MaxScore.
func capScore(s float64) float64 {
	if s > MaxScore {
		return MaxScore
	}
	if s < 0 {
		return 0
	}
	return s
}

// Ensure all scorers implement the interface.
var (
	_ Scorer = (*Familiarity)(nil)
	_ Scorer = (*Similarity)(nil)
)
