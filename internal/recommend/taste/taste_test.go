// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package taste

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/lumiere/internal/history"
)

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(DefaultWeights()).WithClock(func() time.Time { return fixedNow })
}

func date(s string) history.Date {
	d, err := history.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRawScore(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	tests := []struct {
		name     string
		rec      history.WatchRecord
		favorite bool
		want     float64
	}{
		{
			name: "unrated single watch",
			rec:  history.WatchRecord{Watches: 1},
			want: 0,
		},
		{
			name: "rating only",
			rec:  history.WatchRecord{Rating: history.Rated(3), Watches: 1},
			want: 6,
		},
		{
			name: "reviewed amplifies rating",
			rec:  history.WatchRecord{Rating: history.Rated(4), Reviewed: true},
			want: 12,
		},
		{
			name: "liked high rating earns pantheon",
			rec:  history.WatchRecord{Rating: history.Rated(4.5), Liked: true, Watches: 1},
			want: 9 + 10 + 15,
		},
		{
			name: "liked rewatch earns obsession",
			rec:  history.WatchRecord{Rating: history.Rated(4), Liked: true, Watches: 3},
			want: 8 + 10 + 40 + 10,
		},
		{
			name: "lists",
			rec:  history.WatchRecord{ListCount: 4},
			want: 8,
		},
		{
			name:     "favorite",
			rec:      history.WatchRecord{URL: "u"},
			favorite: true,
			want:     30,
		},
		{
			name: "zero watches contributes nothing",
			rec:  history.WatchRecord{Watches: 0},
			want: 0,
		},
		{
			name: "everything",
			rec: history.WatchRecord{
				Rating: history.Rated(5), Reviewed: true, Liked: true, Watches: 2, ListCount: 1,
			},
			favorite: true,
			want:     15 + 10 + 20 + 2 + 15 + 10 + 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := tt.rec
			if got := RawScore(&rec, tt.favorite, w); !approx(got, tt.want) {
				t.Errorf("RawScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecencyMultiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		last history.Date
		want float64
	}{
		{name: "zero date", last: history.Date{}, want: 1},
		{name: "same day", last: date("2025-01-01"), want: 1},
		{name: "future date clamps", last: date("2026-06-01"), want: 1},
		{name: "one year", last: date("2024-01-01"), want: 1 / (1 + 0.2*366/daysPerYear)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RecencyMultiplier(tt.last, fixedNow, 0.2); !approx(got, tt.want) {
				t.Errorf("RecencyMultiplier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeRangeAndOrder(t *testing.T) {
	t.Parallel()

	records := []history.WatchRecord{
		{Name: "Low", Year: 2000, URL: "a", DateAdded: date("2024-06-01"), Rating: history.Rated(1)},
		{Name: "High", Year: 2001, URL: "b", DateAdded: date("2024-06-01"), Rating: history.Rated(5), Liked: true},
		{Name: "Mid", Year: 2002, URL: "c", DateAdded: date("2024-06-01"), Rating: history.Rated(3)},
	}
	scores := newTestEngine().Compute(records, nil)

	if len(scores) != 3 {
		t.Fatalf("got %d scores", len(scores))
	}
	wantOrder := []string{"High", "Mid", "Low"}
	for i, s := range scores {
		if s.Name != wantOrder[i] {
			t.Errorf("position %d = %s, want %s", i, s.Name, wantOrder[i])
		}
		if s.TasteScore < 0 || s.TasteScore > MaxScore {
			t.Errorf("%s taste score %v outside [0,100]", s.Name, s.TasteScore)
		}
	}
	if !approx(scores[0].TasteScore, 100) || !approx(scores[2].TasteScore, 0) {
		t.Errorf("extremes = %v / %v, want 100 / 0", scores[0].TasteScore, scores[2].TasteScore)
	}
}

func TestComputeDegenerateRange(t *testing.T) {
	t.Parallel()

	records := []history.WatchRecord{
		{Name: "A", Year: 2000, Rating: history.Rated(3)},
		{Name: "B", Year: 2001, Rating: history.Rated(3)},
		{Name: "C", Year: 2002, Rating: history.Rated(3)},
	}
	scores := newTestEngine().Compute(records, nil)
	for i, s := range scores {
		if s.TasteScore != 100.0 {
			t.Errorf("%s taste score = %v, want 100", s.Name, s.TasteScore)
		}
		if s.Name != records[i].Name {
			t.Errorf("stable sort moved %s to position %d", s.Name, i)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	t.Parallel()

	if got := newTestEngine().Compute(nil, nil); len(got) != 0 {
		t.Errorf("Compute(nil) = %v", got)
	}
}

func TestComputePrefersRecentWatch(t *testing.T) {
	t.Parallel()

	records := []history.WatchRecord{
		{Name: "Old", Year: 1990, Rating: history.Rated(4), DatesWatched: []history.Date{date("2015-01-01")}},
		{Name: "New", Year: 1990, Rating: history.Rated(4), DatesWatched: []history.Date{date("2024-12-01")}},
		{Name: "Floor", Year: 1991},
	}
	scores := newTestEngine().Compute(records, nil)
	if scores[0].Name != "New" {
		t.Fatalf("first = %s, want New", scores[0].Name)
	}
	if !(scores[0].FinalScore > scores[1].FinalScore) {
		t.Errorf("recent final %v should exceed older %v", scores[0].FinalScore, scores[1].FinalScore)
	}
	if scores[0].LastWatched.String() != "2024-12-01" {
		t.Errorf("last watched = %s", scores[0].LastWatched)
	}
}

func TestComputeMonotonicSignals(t *testing.T) {
	t.Parallel()

	base := history.WatchRecord{Name: "Base", Year: 2000, URL: "base", DateAdded: date("2023-01-01"), Rating: history.Rated(3), Watches: 1}
	floor := history.WatchRecord{Name: "Floor", Year: 1999, DateAdded: date("2023-01-01")}

	bumps := map[string]func(r *history.WatchRecord) (fav bool){
		"rating":    func(r *history.WatchRecord) bool { r.Rating = history.Rated(4); return false },
		"liked":     func(r *history.WatchRecord) bool { r.Liked = true; return false },
		"watches":   func(r *history.WatchRecord) bool { r.Watches = 2; return false },
		"lists":     func(r *history.WatchRecord) bool { r.ListCount = 1; return false },
		"favorites": func(r *history.WatchRecord) bool { return true },
	}

	engine := newTestEngine()
	baseline := engine.Compute([]history.WatchRecord{base, floor}, nil)[0].FinalScore

	for name, bump := range bumps {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := base
			var favs []string
			if bump(&rec) {
				favs = []string{rec.URL}
			}
			got := engine.Compute([]history.WatchRecord{rec, floor}, favs)[0].FinalScore
			if got < baseline {
				t.Errorf("%s decreased the score: %v < %v", name, got, baseline)
			}
		})
	}
}

func TestFavoriteRequiresURL(t *testing.T) {
	t.Parallel()

	records := []history.WatchRecord{{Name: "No URL", Year: 2000}}
	scores := newTestEngine().Compute(records, []string{""})
	if scores[0].Favorite {
		t.Error("a record without URL must not match an empty favorite entry")
	}
}
