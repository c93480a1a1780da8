// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package recommend implements the tag-driven recommendation pipeline.
//
// # Architecture
//
// One request runs these stages in order:
//
//	history -> taste scores -> profile (or saved preferences)
//	tags    -> resolve -> discover pages -> superlist
//	top titles -> similar pages -> provenance annotation (never adds)
//	superlist -> watched filter -> details -> familiarity + similarity
//	          -> familiarity band (fails open) -> 0.6/0.4 blend -> top N
//
// The scorers live in subpackages:
//
//   - taste: normalized 0-100 taste score per watched title
//   - profile: frequency profile of cast, crew, keywords and genres
//   - matching: fuzzy title/year matcher for the watched filter
//   - algorithms: familiarity and similarity scorers, tag vocabulary
//   - reranking: familiarity band and final ranking
//
// # Determinism
//
// Catalog calls run concurrently (bounded by Config.Workers) but results
// are merged in tag and page order, so identical inputs over a warm cache
// produce identical source tags and scores.
//
// # Failure Semantics
//
// Invalid requests return ErrInvalidRequest. An unresolved tag, a failed
// discover or similar page, or a failed detail fetch is logged and the
// run continues; a candidate without details scores zero. Empty results
// carry Metadata.Reason. Only context cancellation aborts a run midway.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), gateway, resolver, logger)
//	resp, err := engine.GetRecommendations(ctx, recommend.Request{
//	    Tags:        []string{"feel-good", "comedy"},
//	    Calibration: recommend.DefaultCalibration(),
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use after construction.
package recommend
