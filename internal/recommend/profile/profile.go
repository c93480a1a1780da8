// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package profile builds the familiarity profile: the actors, directors,
// writers, keywords and genres a user keeps coming back to.
//
// Only highly rated titles contribute. Each category is counted by
// frequency and truncated to its top K; ties keep first-seen order. All
// names are lower-cased for matching.
package profile

import (
	"sort"
	"strings"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/history"
)

// Limits is the top-K per category.
type Limits struct {
	Genres    int `json:"genres"`
	Directors int `json:"directors"`
	Actors    int `json:"actors"`
	Writers   int `json:"writers"`
	Keywords  int `json:"keywords"`
	Decades   int `json:"decades"`
	Languages int `json:"languages"`
}

// DefaultLimits returns the standard category sizes.
func DefaultLimits() Limits {
	return Limits{
		Genres:    10,
		Directors: 20,
		Actors:    25,
		Writers:   20,
		Keywords:  30,
		Decades:   7,
		Languages: 8,
	}
}

// DefaultMinRating is the rating at which a title counts as highly rated.
const DefaultMinRating = 4.0

// Entry is a name with its frequency in the profile.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DecadeEntry is a decade (1990 for the 1990s) with its frequency.
type DecadeEntry struct {
	Decade int `json:"decade"`
	Count  int `json:"count"`
}

// Enriched pairs a watch record with its catalog detail.
type Enriched struct {
	Record history.WatchRecord
	Detail *catalog.Detail
}

// Profile is a user's familiarity profile. Build or FromPreferences
// produce one; it is read-only afterwards.
type Profile struct {
	Genres    []Entry       `json:"genres"`
	Directors []Entry       `json:"directors"`
	Actors    []Entry       `json:"actors"`
	Writers   []Entry       `json:"writers"`
	Keywords  []Entry       `json:"keywords"`
	Decades   []DecadeEntry `json:"decades"`
	Languages []Entry       `json:"languages"`

	// MoviesAnalyzed counts the titles that contributed.
	MoviesAnalyzed int `json:"movies_analyzed"`

	actors    map[string]struct{}
	directors map[string]struct{}
	writers   map[string]struct{}
	keywords  map[string]struct{}
	genres    map[string]struct{}
}

// Builder aggregates enriched history into a Profile.
type Builder struct {
	limits    Limits
	minRating float64
}

// NewBuilder creates a builder. A zero minRating uses DefaultMinRating.
func NewBuilder(limits Limits, minRating float64) *Builder {
	if minRating <= 0 {
		minRating = DefaultMinRating
	}
	return &Builder{limits: limits, minRating: minRating}
}

// Build aggregates the highly rated titles in items. Items without a
// detail record are skipped.
func (b *Builder) Build(items []Enriched) *Profile {
	var (
		genres    = newCounter[string]()
		directors = newCounter[string]()
		actors    = newCounter[string]()
		writers   = newCounter[string]()
		keywords  = newCounter[string]()
		languages = newCounter[string]()
		decades   = newCounter[int]()
		analyzed  int
	)

	for i := range items {
		it := &items[i]
		if it.Detail == nil || it.Record.RatingValue() < b.minRating {
			continue
		}
		analyzed++
		d := it.Detail

		addNames(actors, d.TopCast(catalog.TopCastLimit))
		addNames(directors, d.Directors())
		addNames(writers, d.Writers())
		addNames(keywords, d.KeywordNames())
		addNames(genres, d.GenreNames())
		addNames(languages, d.LanguageNames())

		year := d.Year()
		if year == 0 {
			year = it.Record.Year
		}
		if year > 0 {
			decades.add(year / 10 * 10)
		}
	}

	p := &Profile{
		Genres:         entries(genres, b.limits.Genres),
		Directors:      entries(directors, b.limits.Directors),
		Actors:         entries(actors, b.limits.Actors),
		Writers:        entries(writers, b.limits.Writers),
		Keywords:       entries(keywords, b.limits.Keywords),
		Languages:      entries(languages, b.limits.Languages),
		MoviesAnalyzed: analyzed,
	}
	for _, key := range decades.top(b.limits.Decades) {
		p.Decades = append(p.Decades, DecadeEntry{Decade: key, Count: decades.counts[key]})
	}
	p.index()
	return p
}

// Empty returns a profile that knows nothing.
func Empty() *Profile {
	p := &Profile{}
	p.index()
	return p
}

func (p *Profile) index() {
	p.actors = nameSet(p.Actors)
	p.directors = nameSet(p.Directors)
	p.writers = nameSet(p.Writers)
	p.keywords = nameSet(p.Keywords)
	p.genres = nameSet(p.Genres)
}

func nameSet(entries []Entry) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[e.Name] = struct{}{}
	}
	return set
}

// KnowsActor reports whether name (any case) is a known actor.
func (p *Profile) KnowsActor(name string) bool { return has(p.actors, name) }

// KnowsDirector reports whether name is a known director.
func (p *Profile) KnowsDirector(name string) bool { return has(p.directors, name) }

// KnowsWriter reports whether name is a known writer.
func (p *Profile) KnowsWriter(name string) bool { return has(p.writers, name) }

// KnowsKeyword reports whether name is a known keyword.
func (p *Profile) KnowsKeyword(name string) bool { return has(p.keywords, name) }

// PrefersGenre reports whether name is a preferred genre.
func (p *Profile) PrefersGenre(name string) bool { return has(p.genres, name) }

func has(set map[string]struct{}, name string) bool {
	_, ok := set[fold(name)]
	return ok
}

// IsEmpty reports whether the profile has nothing to match against.
func (p *Profile) IsEmpty() bool {
	return len(p.actors)+len(p.directors)+len(p.writers)+len(p.keywords)+len(p.genres) == 0
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// counter counts keys, remembering the order they were first seen.
type counter[K comparable] struct {
	counts map[K]int
	order  []K
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(key K) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns the k most frequent keys. Equal counts keep first-seen order.
func (c *counter[K]) top(k int) []K {
	keys := make([]K, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if k >= 0 && len(keys) > k {
		keys = keys[:k]
	}
	return keys
}

func addNames(c *counter[string], names []string) {
	for _, n := range names {
		if n = fold(n); n != "" {
			c.add(n)
		}
	}
}

func entries(c *counter[string], k int) []Entry {
	keys := c.top(k)
	out := make([]Entry, len(keys))
	for i, key := range keys {
		out[i] = Entry{Name: key, Count: c.counts[key]}
	}
	return out
}
