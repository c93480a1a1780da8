// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package matching

// Title is a title/year pair. Year 0 is unknown.
type Title struct {
	Name string
	Year int
}

type indexed struct {
	norm string
	name string
	year int
}

// WatchedIndex answers "has the user watched this title" against a whole
// history. Entries are bucketed by year so a lookup with a known year only
// compares against that year plus the entries whose year is unknown.
// It is immutable after construction and safe for concurrent use.
type WatchedIndex struct {
	byYear    map[int][]indexed
	noYear    []indexed
	all       []indexed
	threshold float64
}

// NewWatchedIndex indexes titles.
func NewWatchedIndex(titles []Title) *WatchedIndex {
	idx := &WatchedIndex{
		byYear:    make(map[int][]indexed),
		all:       make([]indexed, 0, len(titles)),
		threshold: DefaultThreshold,
	}
	for _, t := range titles {
		e := indexed{norm: Normalize(t.Name), name: t.Name, year: t.Year}
		if e.norm == "" {
			continue
		}
		idx.all = append(idx.all, e)
		if t.Year > 0 {
			idx.byYear[t.Year] = append(idx.byYear[t.Year], e)
		} else {
			idx.noYear = append(idx.noYear, e)
		}
	}
	return idx
}

// Len returns the number of indexed titles.
func (w *WatchedIndex) Len() int {
	return len(w.all)
}

// Contains reports whether name/year matches any indexed title.
func (w *WatchedIndex) Contains(name string, year int) bool {
	_, ok := w.Find(name, year)
	return ok
}

// Find returns the first indexed title matching name/year.
func (w *WatchedIndex) Find(name string, year int) (Title, bool) {
	norm := Normalize(name)
	if norm == "" || len(w.all) == 0 {
		return Title{}, false
	}

	candidates := [][]indexed{w.all}
	if year > 0 {
		candidates = [][]indexed{w.byYear[year], w.noYear}
	}
	for _, bucket := range candidates {
		for _, e := range bucket {
			if normalizedMatch(norm, e.norm, w.threshold) {
				return Title{Name: e.name, Year: e.year}, true
			}
		}
	}
	return Title{}, false
}
