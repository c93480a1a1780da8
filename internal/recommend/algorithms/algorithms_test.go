// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package algorithms

import (
	"fmt"
	"testing"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/recommend/profile"
)

func detail(overview string, genres []string, keywords []string) *catalog.Detail {
	d := &catalog.Detail{ID: 1, Title: "Test", Overview: overview}
	for i, g := range genres {
		d.Genres = append(d.Genres, catalog.Genre{ID: i + 1, Name: g})
	}
	for i, k := range keywords {
		d.Keywords.Keywords = append(d.Keywords.Keywords, catalog.Keyword{ID: i + 1, Name: k})
	}
	return d
}

func TestPhraseMatcher(t *testing.T) {
	t.Parallel()

	m := NewPhraseMatcher([]string{"love", "Love Story", "story", "", "love"})
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}

	tests := []struct {
		name  string
		texts []string
		want  map[string]bool
	}{
		{"overlapping", []string{"A LOVE STORY for all"}, map[string]bool{"love": true, "love story": true, "story": true}},
		{"suffix via failure link", []string{"glove storybook"}, map[string]bool{"love": true, "love story": true, "story": true}},
		{"partial", []string{"lovely"}, map[string]bool{"love": true}},
		{"none", []string{"heist"}, map[string]bool{}},
		{"no match across texts", []string{"love st", "ory"}, map[string]bool{"love": true}},
		{"empty", nil, map[string]bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			found := m.Present(tt.texts...)
			for _, p := range []string{"love", "love story", "story"} {
				i, ok := m.Index(p)
				if !ok {
					t.Fatalf("Index(%q) missing", p)
				}
				if found[i] != tt.want[p] {
					t.Errorf("%q found = %v, want %v", p, found[i], tt.want[p])
				}
			}
		})
	}
}

func TestVocabulary(t *testing.T) {
	t.Parallel()

	tags := Vocabulary()
	if len(tags) != 20 {
		t.Fatalf("len(Vocabulary()) = %d, want 20", len(tags))
	}
	for _, tag := range tags {
		if len(tag.Synonyms) == 0 {
			t.Errorf("tag %q has no synonyms", tag.ID)
		}
		if len(tagPhrases[tag.ID]) != len(tag.Synonyms) {
			t.Errorf("tag %q indexed %d phrases, want %d", tag.ID, len(tagPhrases[tag.ID]), len(tag.Synonyms))
		}
	}

	byCat := VocabularyByCategory()
	if len(byCat[CategoryEmotion]) != 5 || len(byCat[CategoryMood]) != 5 || len(byCat[CategoryGenre]) != 10 {
		t.Errorf("category sizes = %d/%d/%d, want 5/5/10",
			len(byCat[CategoryEmotion]), len(byCat[CategoryMood]), len(byCat[CategoryGenre]))
	}

	tags[0].Synonyms[0] = "mutated"
	if Synonyms(tags[0].ID)[0] == "mutated" {
		t.Error("Vocabulary() must return a copy")
	}

	if _, ok := LookupTag(" Feel-Good "); !ok {
		t.Error("LookupTag should be case-insensitive")
	}
	if Synonyms("not-a-tag") != nil {
		t.Error("unknown tag should have no synonyms")
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tags []string
		d    *catalog.Detail
		want float64
	}{
		{
			name: "nil detail",
			tags: []string{"comedy"},
			want: 0,
		},
		{
			name: "no known tags",
			tags: []string{"unknown"},
			d:    detail("a funny comedy", []string{"Comedy"}, []string{"comedy"}),
			want: 0,
		},
		{
			// comedy phrases: comedy, funny, humor, joke
			// keyword "dark comedy": comedy +8
			// overview "funny ... humor": funny +3, humor +3
			// genre "Comedy": comedy +5
			name: "comedy",
			tags: []string{"comedy"},
			d:    detail("A funny tale full of humor", []string{"Comedy"}, []string{"dark comedy"}),
			want: 19,
		},
		{
			// a phrase counts once per source even when it occurs twice
			name: "phrase counted once per source",
			tags: []string{"horror"},
			d:    detail("scary scary scary", nil, []string{"scary clown", "scary house"}),
			want: 11,
		},
		{
			// comedy scores 8+5 for "comedy"; funny scores 8+5 for its
			// own "comedy" phrase
			name: "shared phrase counts per tag",
			tags: []string{"comedy", "funny"},
			d:    detail("", []string{"Comedy"}, []string{"comedy"}),
			want: 26,
		},
		{
			name: "capped",
			tags: []string{"comedy", "funny", "romantic", "romance", "feel-good"},
			d: detail("a funny hilarious humorous romantic love story, heartwarming and uplifting, a joke of passion",
				[]string{"Comedy", "Romance"},
				[]string{"comedy", "funny", "humor", "joke", "love", "romance", "romantic", "love story",
					"feel good", "uplifting", "heartwarming", "positive", "passion", "hilarious", "humorous"}),
			want: MaxScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewSimilarity(tt.tags, DefaultSimilarityWeights())
			if got := s.Score(tt.d); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarityKnownTags(t *testing.T) {
	t.Parallel()

	s := NewSimilarity([]string{"Comedy", "nope", "sad"}, DefaultSimilarityWeights())
	got := fmt.Sprint(s.KnownTags())
	if got != "[comedy sad]" {
		t.Errorf("KnownTags() = %s", got)
	}
	if s.Name() != "similarity" {
		t.Errorf("Name() = %q", s.Name())
	}
}

func TestFamiliarity(t *testing.T) {
	t.Parallel()

	prefs := profile.FromPreferences(profile.Preferences{
		Actors:    []string{"Al Pacino", "Robert De Niro"},
		Directors: []string{"Michael Mann"},
		Writers:   []string{"Michael Mann"},
		Keywords:  []string{"heist", "los angeles"},
		Genres:    []string{"Crime"},
	})

	heat := detail("", []string{"Crime", "Drama"}, []string{"heist", "los angeles", "bank"})
	heat.Credits = catalog.Credits{
		Cast: []catalog.CastMember{{Name: "Al Pacino"}, {Name: "Robert De Niro"}, {Name: "Val Kilmer"}},
		Crew: []catalog.CrewMember{{Name: "Michael Mann", Job: "Director"}, {Name: "Michael Mann", Job: "Screenplay"}},
	}

	tests := []struct {
		name string
		p    *profile.Profile
		d    *catalog.Detail
		want float64
	}{
		// 2 actors*5 + director 10 + writer 7 + 2 keywords*2 + genre 3
		{"full overlap", prefs, heat, 34},
		{"nil profile", nil, heat, 0},
		{"empty profile", profile.Empty(), heat, 0},
		{"nil detail", prefs, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewFamiliarity(tt.p, DefaultFamiliarityWeights())
			if got := f.Score(tt.d); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFamiliarityCap(t *testing.T) {
	t.Parallel()

	var actors []string
	d := &catalog.Detail{ID: 1, Title: "Ensemble"}
	for i := 0; i < 30; i++ {
		name := fmt.Sprintf("Actor %d", i)
		actors = append(actors, name)
		d.Credits.Cast = append(d.Credits.Cast, catalog.CastMember{Name: name, Order: i})
	}
	var directors []string
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("Director %d", i)
		directors = append(directors, name)
		d.Credits.Crew = append(d.Credits.Crew, catalog.CrewMember{Name: name, Job: "Director"})
	}

	f := NewFamiliarity(profile.FromPreferences(profile.Preferences{Actors: actors, Directors: directors}),
		DefaultFamiliarityWeights())
	if got := f.Score(d); got != MaxScore {
		t.Errorf("Score() = %v, want %v", got, MaxScore)
	}
}

func TestFamiliarityTopCastOnly(t *testing.T) {
	t.Parallel()

	d := &catalog.Detail{ID: 1, Title: "Long Cast"}
	for i := 0; i < 12; i++ {
		d.Credits.Cast = append(d.Credits.Cast, catalog.CastMember{Name: fmt.Sprintf("Actor %d", i)})
	}
	f := NewFamiliarity(profile.FromPreferences(profile.Preferences{Actors: []string{"actor 11"}}),
		DefaultFamiliarityWeights())
	if got := f.Score(d); got != 0 {
		t.Errorf("Score() = %v, want 0 for an actor billed 12th", got)
	}
}
