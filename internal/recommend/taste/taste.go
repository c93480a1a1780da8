// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package taste converts watch history into a normalized 0-100 taste score.
//
// The raw score of a title is a weighted sum of its signals:
//
//	raw = rating*2 (x1.5 when reviewed)
//	    + 10 if liked
//	    + 20 per rewatch
//	    + 2 per list membership
//	    + 15 pantheon  (liked and rating >= 4.5)
//	    + 10 obsession (liked and watched more than once)
//	    + 30 favorite  (URL listed as a profile favorite)
//
// The raw score is decayed by 1 / (1 + 0.2*years) where years counts whole
// days since the title was last watched divided by 365.25, then min-max
// normalized across the whole history. When every decayed score is equal,
// every taste score is 100.
package taste

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/lumiere/internal/history"
)

// MaxScore is the upper bound of a normalized taste score.
const MaxScore = 100.0

const daysPerYear = 365.25

// Weights holds the scoring constants.
type Weights struct {
	Rating           float64 `json:"rating"`
	ReviewMultiplier float64 `json:"review_multiplier"`
	Liked            float64 `json:"liked"`
	Rewatch          float64 `json:"rewatch"`
	List             float64 `json:"list"`

	Pantheon          float64 `json:"pantheon"`
	PantheonMinRating float64 `json:"pantheon_min_rating"`
	Obsession         float64 `json:"obsession"`
	Favorite          float64 `json:"favorite"`

	// DecayPerYear is the recency decay rate.
	DecayPerYear float64 `json:"decay_per_year"`
}

// DefaultWeights returns the standard scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Rating:            2,
		ReviewMultiplier:  1.5,
		Liked:             10,
		Rewatch:           20,
		List:              2,
		Pantheon:          15,
		PantheonMinRating: 4.5,
		Obsession:         10,
		Favorite:          30,
		DecayPerYear:      0.2,
	}
}

// Score is a watch record with its computed taste score.
type Score struct {
	history.WatchRecord

	Favorite    bool         `json:"favorite"`
	RawScore    float64      `json:"raw_score"`
	FinalScore  float64      `json:"final_score"`
	TasteScore  float64      `json:"taste_score"`
	LastWatched history.Date `json:"last_watched_date"`
}

// Engine computes taste scores. It holds no mutable state.
type Engine struct {
	weights Weights
	now     func() time.Time
}

// NewEngine creates an engine with the given weights.
func NewEngine(w Weights) *Engine {
	return &Engine{weights: w, now: time.Now}
}

// WithClock returns a copy of the engine that reads the current time from now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	c := *e
	c.now = now
	return &c
}

// Compute scores every record and returns them sorted by taste score,
// highest first. The sort is stable so ties keep input order.
func (e *Engine) Compute(records []history.WatchRecord, favoriteURLs []string) []Score {
	if len(records) == 0 {
		return []Score{}
	}

	favorites := make(map[string]struct{}, len(favoriteURLs))
	for _, u := range favoriteURLs {
		favorites[u] = struct{}{}
	}

	now := e.now()
	scores := make([]Score, len(records))
	for i := range records {
		rec := records[i]
		_, fav := favorites[rec.URL]
		if rec.URL == "" {
			fav = false
		}
		last := rec.LastWatched()
		raw := RawScore(&rec, fav, e.weights)
		scores[i] = Score{
			WatchRecord: rec,
			Favorite:    fav,
			RawScore:    raw,
			FinalScore:  raw * RecencyMultiplier(last, now, e.weights.DecayPerYear),
			LastWatched: last,
		}
	}

	normalize(scores)

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TasteScore > scores[j].TasteScore
	})
	return scores
}

// RawScore is the undecayed weighted sum of a record's signals.
func RawScore(rec *history.WatchRecord, favorite bool, w Weights) float64 {
	rating := rec.RatingValue()
	liked := bool(rec.Liked)

	score := rating * w.Rating
	if rec.Reviewed {
		score *= w.ReviewMultiplier
	}
	if liked {
		score += w.Liked
	}
	if rewatches := rec.Watches - 1; rewatches > 0 {
		score += float64(rewatches) * w.Rewatch
	}
	score += float64(rec.ListCount) * w.List

	if liked && rec.Rating != nil && rating >= w.PantheonMinRating {
		score += w.Pantheon
	}
	if liked && rec.Watches > 1 {
		score += w.Obsession
	}
	if favorite {
		score += w.Favorite
	}
	return score
}

// RecencyMultiplier returns 1 / (1 + rate*years) for the whole days between
// last and now. A zero last date or a date in the future yields 1.
func RecencyMultiplier(last history.Date, now time.Time, rate float64) float64 {
	if last.IsZero() {
		return 1
	}
	days := math.Floor(now.Sub(last.Time).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return 1 / (1 + rate*days/daysPerYear)
}

// normalize rescales FinalScore into TasteScore over [0, MaxScore].
func normalize(scores []Score) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range scores {
		lo = math.Min(lo, scores[i].FinalScore)
		hi = math.Max(hi, scores[i].FinalScore)
	}
	span := hi - lo
	for i := range scores {
		if span > 0 {
			scores[i].TasteScore = MaxScore * (scores[i].FinalScore - lo) / span
		} else {
			scores[i].TasteScore = MaxScore
		}
	}
}

// Records returns the watch records of scores in their current order.
func Records(scores []Score) []history.WatchRecord {
	out := make([]history.WatchRecord, len(scores))
	for i := range scores {
		out[i] = scores[i].WatchRecord
	}
	return out
}
