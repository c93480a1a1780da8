// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package reranking turns scored candidates into the final ranking.
//
// Two steps run after the scorers:
//
//	scored candidates -> familiarity band -> weighted final score -> stable sort -> top N
//
// # Familiarity Band
//
// The familiarity calibration value (1..10) selects a band of acceptable
// familiarity scores:
//
//	level <= 3   keep familiarity <= 50   (favor the unfamiliar)
//	level 4..7   keep familiarity <= 80
//	level >= 8   keep familiarity >= 20   (favor the familiar)
//
// If the band would remove every candidate it is bypassed and all
// candidates are kept. An empty result is worse than a loose one.
//
// # Final Score
//
//	final = 0.6 * similarity + 0.4 * familiarity
//
// Ties keep the incoming order, so a caller that presents candidates in
// aggregation order gets a deterministic ranking.
//
// # Thread Safety
//
// All functions are pure apart from SetFinalScore on the items passed in.
package reranking
