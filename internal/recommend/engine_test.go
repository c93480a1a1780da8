// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/recommend/profile"
)

type fakeCatalog struct {
	mu       sync.Mutex
	discover map[int][]catalog.Summary // ref ID -> page 1
	similar  map[int][]catalog.Summary // seed ID -> page 1
	details  map[int]*catalog.Detail
	search   map[string]*catalog.Summary

	discoverErr error // returned by every discover call when set

	filters      []catalog.Filters
	similarCalls []int
	detailCalls  int
}

func (f *fakeCatalog) DiscoverByFilter(ctx context.Context, ref catalog.TagRef, filters catalog.Filters, page int) ([]catalog.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.filters = append(f.filters, filters)
	f.mu.Unlock()
	if f.discoverErr != nil {
		return nil, f.discoverErr
	}
	if page != 1 {
		return nil, nil
	}
	return append([]catalog.Summary(nil), f.discover[ref.ID]...), nil
}

func (f *fakeCatalog) GetSimilar(_ context.Context, id, page int) ([]catalog.Summary, error) {
	f.mu.Lock()
	f.similarCalls = append(f.similarCalls, id)
	f.mu.Unlock()
	if page != 1 {
		return nil, nil
	}
	return append([]catalog.Summary(nil), f.similar[id]...), nil
}

func (f *fakeCatalog) GetDetails(_ context.Context, id int) (*catalog.Detail, error) {
	f.mu.Lock()
	f.detailCalls++
	f.mu.Unlock()
	d, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("details %d: %w", id, catalog.ErrNotFound)
	}
	return d, nil
}

func (f *fakeCatalog) FindByTitle(_ context.Context, title string, _ int) (*catalog.Summary, error) {
	s, ok := f.search[title]
	if !ok {
		return nil, fmt.Errorf("search %q: %w", title, catalog.ErrNotFound)
	}
	return s, nil
}

type fakeResolver map[string]catalog.TagRef

func (r fakeResolver) Resolve(tag string) (catalog.TagRef, bool) {
	ref, ok := r[tag]
	if ok {
		ref.Tag = tag
	}
	return ref, ok
}

type fakePrefs struct {
	prefs *profile.Preferences
	err   error
}

func (f fakePrefs) GetPreferences(context.Context) (*profile.Preferences, bool, error) {
	return f.prefs, f.prefs != nil, f.err
}

type fakeHistory []history.WatchRecord

func (h fakeHistory) ListWatchRecords(context.Context) ([]history.WatchRecord, error) {
	return h, nil
}

func summary(id int, title, date string) catalog.Summary {
	return catalog.Summary{ID: id, Title: title, ReleaseDate: date}
}

func movie(id int, title, date, overview string, genres, keywords []string) *catalog.Detail {
	d := &catalog.Detail{ID: id, Title: title, ReleaseDate: date, Overview: overview, Runtime: 95}
	for i, g := range genres {
		d.Genres = append(d.Genres, catalog.Genre{ID: i + 1, Name: g})
	}
	for i, k := range keywords {
		d.Keywords.Keywords = append(d.Keywords.Keywords, catalog.Keyword{ID: i + 1, Name: k})
	}
	return d
}

// newFixture returns a catalog where:
//
//	feel-good (keyword 100) -> Paddington, Grave
//	comedy    (genre 35)    -> Airplane!, Paddington
//
// Similarity for [feel-good, comedy]: Paddington 19, Airplane! 16, Grave 0.
func newFixture() (*fakeCatalog, fakeResolver) {
	cat := &fakeCatalog{
		discover: map[int][]catalog.Summary{
			100: {summary(1, "Paddington", "2014-11-28"), summary(3, "Grave", "2016-05-14")},
			35:  {summary(2, "Airplane!", "1980-07-02"), summary(1, "Paddington", "2014-11-28")},
		},
		similar: map[int][]catalog.Summary{},
		details: map[int]*catalog.Detail{
			1: movie(1, "Paddington", "2014-11-28", "A funny and uplifting bear",
				[]string{"Comedy", "Family"}, []string{"heartwarming", "bear"}),
			2: movie(2, "Airplane!", "1980-07-02", "A disaster parody full of humor",
				[]string{"Comedy"}, []string{"spoof", "joke"}),
			3: movie(3, "Grave", "2016-05-14", "A vegetarian student changes.",
				[]string{"Horror", "Drama"}, []string{"cannibalism"}),
		},
		search: map[string]*catalog.Summary{},
	}
	resolver := fakeResolver{
		"feel-good": {Kind: catalog.KindKeyword, ID: 100},
		"comedy":    {Kind: catalog.KindGenre, ID: 35},
	}
	return cat, resolver
}

func newTestEngine(t *testing.T, cat Catalog, resolver TagResolver) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), cat, resolver, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func scenarioCalibration() Calibration {
	return Calibration{Era: 5, Runtime: 5, Popularity: 5, Familiarity: 5, FamiliarityEnabled: true}
}

func resultIDs(resp *Response) []int {
	ids := make([]int, len(resp.Recommendations))
	for i := range resp.Recommendations {
		ids[i] = resp.Recommendations[i].CatalogID
	}
	return ids
}

func TestGetRecommendations_EmptyHistoryRanksBySimilarity(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	resp, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"feel-good", "comedy"},
		Calibration: scenarioCalibration(),
	})
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}

	if got, want := resultIDs(resp), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for _, c := range resp.Recommendations {
		if c.Familiarity != 0 {
			t.Errorf("%s familiarity = %v, want 0", c.Title, c.Familiarity)
		}
		if math.Abs(c.Final-c.Similarity*0.6) > 1e-9 {
			t.Errorf("%s final = %v, want similarity*0.6 = %v", c.Title, c.Final, c.Similarity*0.6)
		}
	}
	if resp.Recommendations[0].Similarity != 19 || resp.Recommendations[1].Similarity != 16 {
		t.Errorf("similarities = %v, %v, want 19, 16",
			resp.Recommendations[0].Similarity, resp.Recommendations[1].Similarity)
	}
	if got := resp.Recommendations[0].SourceTags; !reflect.DeepEqual(got, []string{"feel-good", "comedy"}) {
		t.Errorf("Paddington source tags = %v", got)
	}

	md := resp.Metadata
	if md.Stages.Superlist != 3 || md.Stages.AfterWatchedFilter != 3 || md.Stages.AfterFamiliarityBand != 3 {
		t.Errorf("stages = %+v", md.Stages)
	}
	if md.Stages.FamiliarityBandBypassed {
		t.Error("band <= 80 must keep zero-familiarity candidates without bypass")
	}
	if md.TotalFound != 3 || md.RequestID == "" {
		t.Errorf("metadata = %+v", md)
	}
	if md.ProfileSummary.UserDataLoaded || md.ProfileSummary.ProfileSource != ProfileSourceNone {
		t.Errorf("profile summary = %+v", md.ProfileSummary)
	}

	for _, f := range cat.filters {
		if f != (catalog.Filters{}) {
			t.Errorf("disabled axes sent filters %+v", f)
		}
	}
}

func TestGetRecommendations_Idempotent(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)
	req := Request{
		Tags:        []string{"feel-good", "comedy"},
		Calibration: DefaultCalibration(),
	}

	first, err := e.GetRecommendations(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.GetRecommendations(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first.Recommendations, again.Recommendations) {
			t.Fatalf("run %d differs:\n%+v\n%+v", i, first.Recommendations, again.Recommendations)
		}
	}
}

func TestGetRecommendations_CalibrationFilters(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	cal := Calibration{
		Era: 2, EraEnabled: true,
		Runtime: 9, RuntimeEnabled: true,
		Popularity: 5, PopularityEnabled: true,
		Familiarity: 5,
	}
	if _, err := e.GetRecommendations(context.Background(), Request{Tags: []string{"comedy"}, Calibration: cal}); err != nil {
		t.Fatal(err)
	}

	want := catalog.Filters{
		ReleaseFrom: "1920-01-01",
		ReleaseTo:   "1980-12-31",
		RuntimeMin:  150,
		SortBy:      catalog.SortPopularityDesc,
	}
	if len(cat.filters) == 0 || cat.filters[0] != want {
		t.Errorf("filters = %+v, want %+v", cat.filters, want)
	}
}

func TestGetRecommendations_WatchedFilter(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	resp, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"feel-good", "comedy"},
		Calibration: scenarioCalibration(),
		History: []history.WatchRecord{
			{Name: "paddington", Year: 2014, Rating: history.Rated(4)},
			{Name: "Grave", Year: 0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := resultIDs(resp); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("ids = %v, want [2]", got)
	}
	if resp.Metadata.Stages.AfterWatchedFilter != 1 {
		t.Errorf("after watched = %d", resp.Metadata.Stages.AfterWatchedFilter)
	}
}

func TestGetRecommendations_AllWatched(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	resp, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"comedy"},
		Calibration: scenarioCalibration(),
		History: []history.WatchRecord{
			{Name: "Airplane!", Year: 1980},
			{Name: "Paddington", Year: 2014},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("got %d recommendations, want 0", len(resp.Recommendations))
	}
	if resp.Metadata.Reason != ReasonAllWatched {
		t.Errorf("reason = %q, want %q", resp.Metadata.Reason, ReasonAllWatched)
	}
	if cat.detailCalls != 0 {
		t.Errorf("detail calls = %d, want 0 after everything was filtered", cat.detailCalls)
	}
}

func TestGetRecommendations_SimilarOnlyAnnotates(t *testing.T) {
	cat, resolver := newFixture()
	cat.similar[949] = []catalog.Summary{
		summary(2, "Airplane!", "1980-07-02"),
		summary(999, "Not Discovered", "2001-01-01"),
	}
	cat.details[949] = movie(949, "Heat", "1995-12-15", "", []string{"Crime"}, []string{"heist"})
	e := newTestEngine(t, cat, resolver)

	resp, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"feel-good", "comedy"},
		Calibration: scenarioCalibration(),
		History: []history.WatchRecord{
			{Name: "Heat", Year: 1995, CatalogID: 949, Rating: history.Rated(5), Liked: true},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range resp.Recommendations {
		if c.CatalogID == 999 {
			t.Fatal("similar-title expansion introduced a new candidate")
		}
		if c.CatalogID == 2 {
			want := []string{"comedy", SimilarProvenance}
			if !reflect.DeepEqual(c.SourceTags, want) {
				t.Errorf("Airplane! source tags = %v, want %v", c.SourceTags, want)
			}
		}
	}
	if resp.Metadata.Stages.SimilarAnnotated != 1 {
		t.Errorf("similar annotated = %d, want 1", resp.Metadata.Stages.SimilarAnnotated)
	}
	if resp.Metadata.ProfileSummary.ProfileSource != ProfileSourceHistory {
		t.Errorf("profile source = %q, want history", resp.Metadata.ProfileSummary.ProfileSource)
	}
	if resp.Metadata.ProfileSummary.UserPreferences.Genres != 1 {
		t.Errorf("profile genres = %d, want 1", resp.Metadata.ProfileSummary.UserPreferences.Genres)
	}
}

func TestGetRecommendations_DetailFailureScoresZero(t *testing.T) {
	cat, resolver := newFixture()
	delete(cat.details, 2)
	e := newTestEngine(t, cat, resolver)

	resp, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"comedy"},
		Calibration: scenarioCalibration(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(resp.Recommendations))
	}
	last := resp.Recommendations[1]
	if last.CatalogID != 2 || !last.DetailsMissing || last.Final != 0 {
		t.Errorf("failed candidate = %+v", last)
	}
	if resp.Metadata.Stages.DetailFailures != 1 {
		t.Errorf("detail failures = %d, want 1", resp.Metadata.Stages.DetailFailures)
	}
}

func TestGetRecommendations_FamiliarityBandFailsOpen(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	cal := scenarioCalibration()
	cal.Familiarity = 9
	resp, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"feel-good", "comedy"},
		Calibration: cal,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Metadata.Stages.FamiliarityBandBypassed {
		t.Error("band should have been bypassed")
	}
	if len(resp.Recommendations) != 3 {
		t.Errorf("got %d recommendations, want all 3", len(resp.Recommendations))
	}
}

func TestGetRecommendations_SavedPreferences(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)
	e.SetPreferenceStore(fakePrefs{prefs: &profile.Preferences{Genres: []string{"Comedy"}}})

	resp, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"comedy"},
		Calibration: scenarioCalibration(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Metadata.ProfileSummary.ProfileSource != ProfileSourcePreferences {
		t.Errorf("profile source = %q", resp.Metadata.ProfileSummary.ProfileSource)
	}
	for _, c := range resp.Recommendations {
		if c.Familiarity != 3 {
			t.Errorf("%s familiarity = %v, want 3 for a preferred genre", c.Title, c.Familiarity)
		}
	}
}

func TestGetRecommendations_PreferenceErrorFallsBack(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)
	e.SetPreferenceStore(fakePrefs{err: errors.New("disk on fire")})

	if _, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"comedy"},
		Calibration: scenarioCalibration(),
	}); err != nil {
		t.Errorf("preference load failure should not fail the request: %v", err)
	}
}

func TestGetRecommendations_StoredHistory(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	req := Request{Tags: []string{"comedy"}, Calibration: scenarioCalibration(), UseStoredHistory: true}
	if _, err := e.GetRecommendations(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("without a store: error = %v, want ErrInvalidRequest", err)
	}

	e.SetHistoryStore(fakeHistory{{Name: "Airplane!", Year: 1980}})
	resp, err := e.GetRecommendations(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if got := resultIDs(resp); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("ids = %v, want [1]", got)
	}
	if resp.Metadata.ProfileSummary.MoviesAnalyzed != 1 {
		t.Errorf("movies analyzed = %d", resp.Metadata.ProfileSummary.MoviesAnalyzed)
	}
}

func TestGetRecommendations_UnresolvedTags(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	resp, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"comedy", "zzz-unknown"},
		Calibration: scenarioCalibration(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(resp.Metadata.UnresolvedTags, []string{"zzz-unknown"}) {
		t.Errorf("unresolved = %v", resp.Metadata.UnresolvedTags)
	}
	if len(resp.Recommendations) != 2 {
		t.Errorf("got %d, want 2", len(resp.Recommendations))
	}

	resp, err = e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"zzz-unknown"},
		Calibration: scenarioCalibration(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Recommendations) != 0 || resp.Metadata.Reason != ReasonNoTagsResolved {
		t.Errorf("all-unresolved response = %+v", resp.Metadata)
	}
}

func TestGetRecommendations_MaxResults(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	resp, err := e.GetRecommendations(context.Background(), Request{
		Tags:        []string{"feel-good", "comedy"},
		Calibration: scenarioCalibration(),
		MaxResults:  2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := resultIDs(resp); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", got)
	}
}

func TestGetRecommendations_InvalidRequest(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	tooMany := make([]string, 26)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("tag-%d", i)
	}
	badCal := scenarioCalibration()
	badCal.Era = 11

	tests := []struct {
		name string
		req  Request
	}{
		{"no tags", Request{Calibration: scenarioCalibration()}},
		{"blank tags", Request{Tags: []string{" ", ""}, Calibration: scenarioCalibration()}},
		{"too many tags", Request{Tags: tooMany, Calibration: scenarioCalibration()}},
		{"calibration out of range", Request{Tags: []string{"comedy"}, Calibration: badCal}},
		{"history without name", Request{
			Tags: []string{"comedy"}, Calibration: scenarioCalibration(),
			History: []history.WatchRecord{{Year: 2000}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.GetRecommendations(context.Background(), tt.req); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestGetRecommendations_Cancelled(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.GetRecommendations(ctx, Request{Tags: []string{"comedy"}, Calibration: scenarioCalibration()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" Comedy ", "comedy", "", "sad"})
	if want := []string{"Comedy", "sad"}; !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeTags() = %v, want %v", got, want)
	}
}

func TestComputeTasteScores(t *testing.T) {
	cat, resolver := newFixture()
	e := newTestEngine(t, cat, resolver)

	scores := e.ComputeTasteScores([]history.WatchRecord{
		{Name: "Low", Year: 2000, Rating: history.Rated(1)},
		{Name: "High", Year: 2000, Rating: history.Rated(5), Liked: true},
	}, nil)
	if len(scores) != 2 || scores[0].Name != "High" || scores[0].TasteScore != 100 || scores[1].TasteScore != 0 {
		t.Errorf("scores = %+v", scores)
	}
}

func TestGetRecommendations_EmptySuperlistReason(t *testing.T) {
	tests := []struct {
		name        string
		tags        []string
		discoverErr error
		empty       bool
		want        string
	}{
		{"catalog down", []string{"feel-good", "comedy"}, errors.New("circuit breaker is open"), false, ReasonCatalogUnavailable},
		{"catalog down with unresolved tag", []string{"comedy", "zzz-unknown"}, errors.New("503 from catalog"), false, ReasonCatalogUnavailable},
		{"no movies for filters", []string{"comedy"}, nil, true, ReasonNoCandidates},
		{"nothing resolved", []string{"zzz-unknown"}, nil, false, ReasonNoTagsResolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, resolver := newFixture()
			cat.discoverErr = tt.discoverErr
			if tt.empty {
				cat.discover = map[int][]catalog.Summary{}
			}
			e := newTestEngine(t, cat, resolver)

			resp, err := e.GetRecommendations(context.Background(), Request{Tags: tt.tags, Calibration: scenarioCalibration()})
			if err != nil {
				t.Fatalf("GetRecommendations() error = %v", err)
			}
			if len(resp.Recommendations) != 0 {
				t.Errorf("got %d recommendations, want 0", len(resp.Recommendations))
			}
			if resp.Metadata.Reason != tt.want {
				t.Errorf("reason = %q, want %q", resp.Metadata.Reason, tt.want)
			}
		})
	}
}
