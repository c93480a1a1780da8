// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package profile

import (
	"fmt"
	"testing"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/history"
)

func detail(id int, release string, cast []string, director string, genres ...string) *catalog.Detail {
	d := &catalog.Detail{ID: id, Title: fmt.Sprintf("Movie %d", id), ReleaseDate: release}
	for i, name := range cast {
		d.Credits.Cast = append(d.Credits.Cast, catalog.CastMember{Name: name, Order: i})
	}
	if director != "" {
		d.Credits.Crew = append(d.Credits.Crew, catalog.CrewMember{Name: director, Job: "Director"})
	}
	for _, g := range genres {
		d.Genres = append(d.Genres, catalog.Genre{Name: g})
	}
	return d
}

func rated(name string, rating float64) history.WatchRecord {
	return history.WatchRecord{Name: name, Year: 2000, Rating: history.Rated(rating)}
}

func TestBuildFiltersHighlyRated(t *testing.T) {
	t.Parallel()

	items := []Enriched{
		{Record: rated("Loved", 4.5), Detail: detail(1, "1995-01-01", []string{"Al Pacino"}, "Michael Mann", "Crime")},
		{Record: rated("Meh", 3.5), Detail: detail(2, "2001-01-01", []string{"Nobody"}, "Someone", "Comedy")},
		{Record: rated("No Detail", 5), Detail: nil},
		{Record: history.WatchRecord{Name: "Unrated"}, Detail: detail(3, "2010-01-01", []string{"Ghost"}, "", "Horror")},
	}

	p := NewBuilder(DefaultLimits(), 0).Build(items)

	if p.MoviesAnalyzed != 1 {
		t.Errorf("MoviesAnalyzed = %d, want 1", p.MoviesAnalyzed)
	}
	if !p.KnowsActor("AL PACINO") || !p.KnowsDirector("michael mann") || !p.PrefersGenre("crime") {
		t.Errorf("profile missing highly rated title: %+v", p)
	}
	if p.KnowsActor("nobody") || p.PrefersGenre("comedy") || p.PrefersGenre("horror") {
		t.Error("profile includes titles rated below the threshold")
	}
	if len(p.Decades) != 1 || p.Decades[0].Decade != 1990 {
		t.Errorf("decades = %+v, want [1990]", p.Decades)
	}
}

func TestBuildTopKTieBreak(t *testing.T) {
	t.Parallel()

	limits := DefaultLimits()
	limits.Genres = 2

	items := []Enriched{
		{Record: rated("A", 5), Detail: detail(1, "2000-01-01", nil, "", "Drama", "Thriller")},
		{Record: rated("B", 5), Detail: detail(2, "2000-01-01", nil, "", "Comedy", "Thriller")},
		{Record: rated("C", 5), Detail: detail(3, "2000-01-01", nil, "", "Action")},
	}
	p := NewBuilder(limits, 4).Build(items)

	want := []Entry{{Name: "thriller", Count: 2}, {Name: "drama", Count: 1}}
	if len(p.Genres) != len(want) {
		t.Fatalf("genres = %+v, want %+v", p.Genres, want)
	}
	for i := range want {
		if p.Genres[i] != want[i] {
			t.Errorf("genres[%d] = %+v, want %+v", i, p.Genres[i], want[i])
		}
	}
	if p.PrefersGenre("comedy") {
		t.Error("comedy tied with drama but was seen later and should be truncated")
	}
}

func TestBuildTopCastLimit(t *testing.T) {
	t.Parallel()

	cast := make([]string, 15)
	for i := range cast {
		cast[i] = fmt.Sprintf("Actor %02d", i)
	}
	p := NewBuilder(DefaultLimits(), 4).Build([]Enriched{{Record: rated("A", 5), Detail: detail(1, "", cast, "")}})

	if len(p.Actors) != catalog.TopCastLimit {
		t.Errorf("got %d actors, want %d", len(p.Actors), catalog.TopCastLimit)
	}
	if p.KnowsActor("actor 12") {
		t.Error("cast beyond the top 10 should not be known")
	}
}

func TestWritersAndKeywords(t *testing.T) {
	t.Parallel()

	d := detail(1, "1999-03-31", nil, "")
	d.Credits.Crew = append(d.Credits.Crew,
		catalog.CrewMember{Name: "Lana Wachowski", Job: "Writer"},
		catalog.CrewMember{Name: "Someone Else", Job: "Producer"},
	)
	d.Keywords.Keywords = []catalog.Keyword{{ID: 1, Name: "Simulation"}}
	d.SpokenLanguages = []catalog.SpokenLanguage{{EnglishName: "English"}}

	p := NewBuilder(DefaultLimits(), 4).Build([]Enriched{{Record: rated("Matrix", 5), Detail: d}})
	if !p.KnowsWriter("lana wachowski") || p.KnowsWriter("someone else") {
		t.Errorf("writers = %+v", p.Writers)
	}
	if !p.KnowsKeyword("simulation") {
		t.Errorf("keywords = %+v", p.Keywords)
	}
	if len(p.Languages) != 1 || p.Languages[0].Name != "english" {
		t.Errorf("languages = %+v", p.Languages)
	}
}

func TestEmptyProfile(t *testing.T) {
	t.Parallel()

	p := Empty()
	if !p.IsEmpty() || p.KnowsActor("anyone") {
		t.Error("empty profile should know nothing")
	}
	if built := NewBuilder(DefaultLimits(), 4).Build(nil); !built.IsEmpty() {
		t.Error("profile from no history should be empty")
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	t.Parallel()

	prefs := Preferences{
		Actors:    []string{"Tom Hanks", "tom hanks", " Meryl Streep "},
		Directors: []string{"Greta Gerwig"},
		Genres:    []string{"Drama"},
	}
	p := FromPreferences(prefs)

	if !p.KnowsActor("meryl streep") || !p.KnowsDirector("GRETA GERWIG") || !p.PrefersGenre("drama") {
		t.Errorf("profile from preferences = %+v", p)
	}

	back := p.Preferences()
	if len(back.Actors) != 2 {
		t.Errorf("actors = %v, want duplicates folded", back.Actors)
	}
	if len(back.Writers) != 0 || back.IsEmpty() {
		t.Errorf("preferences = %+v", back)
	}
}
