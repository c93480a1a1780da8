// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/metrics"
	"github.com/tomtom215/lumiere/internal/recommend/algorithms"
	"github.com/tomtom215/lumiere/internal/recommend/matching"
	"github.com/tomtom215/lumiere/internal/recommend/profile"
	"github.com/tomtom215/lumiere/internal/recommend/reranking"
	"github.com/tomtom215/lumiere/internal/recommend/taste"
	"github.com/tomtom215/lumiere/internal/validation"
)

// Catalog is the subset of the catalog gateway the pipeline calls.
type Catalog interface {
	DiscoverByFilter(ctx context.Context, ref catalog.TagRef, filters catalog.Filters, page int) ([]catalog.Summary, error)
	GetSimilar(ctx context.Context, id, page int) ([]catalog.Summary, error)
	GetDetails(ctx context.Context, id int) (*catalog.Detail, error)
	FindByTitle(ctx context.Context, title string, year int) (*catalog.Summary, error)
}

// TagResolver maps a tag name to a catalog genre or keyword.
type TagResolver interface {
	Resolve(tag string) (catalog.TagRef, bool)
}

// HistoryStore returns the persisted watch history.
type HistoryStore interface {
	ListWatchRecords(ctx context.Context) ([]history.WatchRecord, error)
}

// PreferenceStore returns the persisted preference document. found is
// false when none has been saved.
type PreferenceStore interface {
	GetPreferences(ctx context.Context) (prefs *profile.Preferences, found bool, err error)
}

// Engine runs the recommendation pipeline. It holds no per-request state
// and is safe for concurrent use.
type Engine struct {
	config   *Config
	catalog  Catalog
	resolver TagResolver
	history  HistoryStore
	prefs    PreferenceStore
	taste    *taste.Engine
	logger   zerolog.Logger
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, cat Catalog, resolver TagResolver, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cat == nil || resolver == nil {
		return nil, fmt.Errorf("catalog and resolver are required")
	}

	return &Engine{
		config:   cfg,
		catalog:  cat,
		resolver: resolver,
		taste:    taste.NewEngine(cfg.Taste),
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetHistoryStore enables Request.UseStoredHistory.
func (e *Engine) SetHistoryStore(s HistoryStore) {
	e.history = s
}

// SetPreferenceStore lets a saved preference document seed the profile.
func (e *Engine) SetPreferenceStore(s PreferenceStore) {
	e.prefs = s
}

// SetClock replaces the clock used for recency decay.
func (e *Engine) SetClock(now func() time.Time) {
	e.taste = e.taste.WithClock(now)
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// ComputeTasteScores ranks records by taste score.
func (e *Engine) ComputeTasteScores(records []history.WatchRecord, favoriteURLs []string) []taste.Score {
	start := time.Now()
	scores := e.taste.Compute(records, favoriteURLs)
	metrics.RecordTasteScoreRun(len(scores), nil)
	metrics.RecordStage("taste", time.Since(start), -1)
	return scores
}

// GetRecommendations runs the full pipeline for one request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) GetRecommendations(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	req, err := e.prepareRequest(req)
	if err != nil {
		metrics.RecordRecommendation(0, err)
		return nil, err
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Strs("tags", req.Tags).
		Logger()
	ctx = logging.ContextWithRequestID(ctx, req.RequestID)

	resp, err := e.run(ctx, req, logger)
	if err != nil {
		metrics.RecordRecommendation(0, err)
		return nil, err
	}

	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.TotalFound = len(resp.Recommendations)
	resp.Metadata.ProcessingTimeMS = time.Since(start).Milliseconds()
	metrics.RecordRecommendation(len(resp.Recommendations), nil)

	logger.Info().
		Int("superlist", resp.Metadata.Stages.Superlist).
		Int("returned", resp.Metadata.TotalFound).
		Int64("latency_ms", resp.Metadata.ProcessingTimeMS).
		Str("reason", resp.Metadata.Reason).
		Msg("recommendation complete")
	return resp, nil
}

// prepareRequest validates req and applies defaults.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	req.Tags = normalizeTags(req.Tags)
	if len(req.Tags) == 0 {
		return req, fmt.Errorf("%w: at least one tag is required", ErrInvalidRequest)
	}
	if len(req.Tags) > e.config.MaxTags {
		return req, fmt.Errorf("%w: at most %d tags are allowed, got %d", ErrInvalidRequest, e.config.MaxTags, len(req.Tags))
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return req, fmt.Errorf("%w: %s", ErrInvalidRequest, verr.Error())
	}

	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	if req.MaxResults <= 0 {
		req.MaxResults = e.config.DefaultResults
	}
	if req.MaxResults > e.config.MaxResults {
		req.MaxResults = e.config.MaxResults
	}
	return req, nil
}

// normalizeTags trims tags and drops blanks and case-insensitive
// duplicates, keeping the first spelling.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) run(ctx context.Context, req Request, logger zerolog.Logger) (*Response, error) {
	resp := &Response{
		Recommendations: []Candidate{},
		Metadata: Metadata{
			UnresolvedTags: []string{},
			ProfileSummary: ProfileSummary{
				TagsSelected: len(req.Tags),
				Tags:         req.Tags,
				Calibration:  req.Calibration,
			},
		},
	}
	stages := &resp.Metadata.Stages

	records, err := e.loadHistory(ctx, &req)
	if err != nil {
		return nil, err
	}
	ranked := e.ComputeTasteScores(records, req.FavoriteURLs)

	// Profile and similar-title seeds.
	stageStart := time.Now()
	prof, source, seeds, err := e.buildProfile(ctx, ranked, logger)
	if err != nil {
		return nil, err
	}
	metrics.RecordStage("profile", time.Since(stageStart), -1)
	summary := &resp.Metadata.ProfileSummary
	summary.MoviesAnalyzed = len(records)
	summary.UserDataLoaded = len(records) > 0 || source == ProfileSourcePreferences
	summary.ProfileSource = source
	summary.UserPreferences = PreferenceCounts{
		Actors:    len(prof.Actors),
		Directors: len(prof.Directors),
		Writers:   len(prof.Writers),
		Keywords:  len(prof.Keywords),
		Genres:    len(prof.Genres),
	}

	// Superlist.
	agg := &aggregator{
		catalog:  e.catalog,
		resolver: e.resolver,
		pages:    e.config.DiscoverPages,
		workers:  e.config.Workers,
		logger:   logger,
	}
	stageStart = time.Now()
	found, err := agg.discover(ctx, req.Tags, req.Calibration.Filters())
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	list := found.list
	resp.Metadata.UnresolvedTags = found.unresolved
	stages.Superlist = list.len()
	metrics.RecordStage("discover", time.Since(stageStart), list.len())

	if list.len() == 0 {
		switch {
		case found.resolved == 0:
			resp.Metadata.Reason = ReasonNoTagsResolved
		case found.catalogUnavailable():
			logger.Warn().Int("failed_tags", found.failedTags).Msg("every discover request failed")
			resp.Metadata.Reason = ReasonCatalogUnavailable
		default:
			resp.Metadata.Reason = ReasonNoCandidates
		}
		return resp, nil
	}

	stageStart = time.Now()
	annotated, err := agg.annotateSimilar(ctx, list, seeds, e.config.SimilarPages)
	if err != nil {
		return nil, fmt.Errorf("similar titles: %w", err)
	}
	stages.SimilarAnnotated = annotated
	metrics.RecordStage("similar", time.Since(stageStart), list.len())

	// Watched filter.
	stageStart = time.Now()
	candidates := filterWatched(list.candidates(), records)
	stages.AfterWatchedFilter = len(candidates)
	metrics.RecordStage("watched_filter", time.Since(stageStart), len(candidates))
	if len(candidates) == 0 {
		resp.Metadata.Reason = ReasonAllWatched
		return resp, nil
	}

	// Scoring.
	stageStart = time.Now()
	failures, err := e.score(ctx, candidates, prof, req.Tags, logger)
	if err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}
	stages.DetailFailures = failures
	metrics.RecordStage("score", time.Since(stageStart), len(candidates))

	// Familiarity band and ranking.
	stageStart = time.Now()
	if band, ok := req.Calibration.Band(); ok {
		var bypassed bool
		candidates, bypassed = reranking.FilterBand(candidates, band)
		stages.FamiliarityBandBypassed = bypassed
		if bypassed {
			logger.Warn().Stringer("band", band).Msg("no candidate inside the familiarity band, keeping all")
			resp.Metadata.Reason = ReasonBandIgnored
		}
	}
	stages.AfterFamiliarityBand = len(candidates)

	final := reranking.Rank(candidates, e.config.Ranking, req.MaxResults)
	metrics.RecordStage("rank", time.Since(stageStart), len(final))

	resp.Recommendations = make([]Candidate, len(final))
	for i, c := range final {
		resp.Recommendations[i] = *c
	}
	return resp, nil
}

// loadHistory returns the request history, or the stored history when
// asked for and none was sent.
func (e *Engine) loadHistory(ctx context.Context, req *Request) ([]history.WatchRecord, error) {
	if len(req.History) > 0 || !req.UseStoredHistory {
		return req.History, nil
	}
	if e.history == nil {
		return nil, fmt.Errorf("%w: no history store configured", ErrInvalidRequest)
	}
	records, err := e.history.ListWatchRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored history: %w", err)
	}
	return records, nil
}

// buildProfile returns the familiarity profile, where it came from, and the
// catalog IDs of the top titles used as similar-title seeds.
//
// A saved preference document wins over the history. Otherwise the top
// EnrichTopN titles are resolved and their details feed the profile.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) buildProfile(ctx context.Context, ranked []taste.Score, logger zerolog.Logger) (*profile.Profile, string, []int, error) {
	var prof *profile.Profile
	source := ProfileSourceNone

	if e.prefs != nil {
		doc, found, err := e.prefs.GetPreferences(ctx)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("failed to load saved preferences, using history")
		case found && doc != nil && !doc.IsEmpty():
			prof = profile.FromPreferences(*doc)
			source = ProfileSourcePreferences
		}
	}

	needDetails := prof == nil
	n := e.config.SimilarSeedTitles
	if needDetails && e.config.EnrichTopN > n {
		n = e.config.EnrichTopN
	}
	if n > len(ranked) {
		n = len(ranked)
	}

	ids := make([]int, n)
	details := make([]*catalog.Detail, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)
	for i := 0; i < n; i++ {
		rec := &ranked[i].WatchRecord
		g.Go(func() error {
			id, err := e.resolveID(gctx, rec)
			if err != nil {
				if isCancellation(err) {
					return err
				}
				logger.Warn().Err(err).Str("title", rec.Name).Int("year", rec.Year).Msg("could not resolve watched title")
				return nil
			}
			ids[i] = id
			if !needDetails || i >= e.config.EnrichTopN {
				return nil
			}
			d, err := e.catalog.GetDetails(gctx, id)
			if err != nil {
				if isCancellation(err) {
					return err
				}
				logger.Warn().Err(err).Int("catalog_id", id).Msg("could not enrich watched title")
				return nil
			}
			details[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", nil, fmt.Errorf("enrich history: %w", err)
	}

	if prof == nil {
		items := make([]profile.Enriched, 0, n)
		for i, d := range details {
			if d != nil {
				items = append(items, profile.Enriched{Record: ranked[i].WatchRecord, Detail: d})
			}
		}
		prof = profile.NewBuilder(e.config.Limits, e.config.ProfileMinRating).Build(items)
		if prof.MoviesAnalyzed > 0 {
			source = ProfileSourceHistory
		}
	}

	seeds := make([]int, 0, e.config.SimilarSeedTitles)
	seen := make(map[int]struct{})
	for i := 0; i < n && i < e.config.SimilarSeedTitles; i++ {
		if ids[i] == 0 {
			continue
		}
		if _, dup := seen[ids[i]]; dup {
			continue
		}
		seen[ids[i]] = struct{}{}
		seeds = append(seeds, ids[i])
	}
	return prof, source, seeds, nil
}

// resolveID returns the record's catalog ID, searching by title when the
// record has none.
func (e *Engine) resolveID(ctx context.Context, rec *history.WatchRecord) (int, error) {
	if rec.CatalogID > 0 {
		return rec.CatalogID, nil
	}
	s, err := e.catalog.FindByTitle(ctx, rec.Name, rec.Year)
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

// filterWatched drops candidates matching any watched title.
func filterWatched(candidates []*Candidate, records []history.WatchRecord) []*Candidate {
	if len(records) == 0 {
		return candidates
	}
	titles := make([]matching.Title, len(records))
	for i := range records {
		titles[i] = matching.Title{Name: records[i].Name, Year: records[i].Year}
	}
	idx := matching.NewWatchedIndex(titles)

	kept := make([]*Candidate, 0, len(candidates))
	for _, c := range candidates {
		if idx.Contains(c.Title, c.Year()) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// score fetches details concurrently and sets both component scores. A
// failed fetch leaves the candidate with zero scores. It returns the
// number of failed fetches.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) score(ctx context.Context, candidates []*Candidate, prof *profile.Profile, tags []string, logger zerolog.Logger) (int, error) {
	details := make([]*catalog.Detail, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)
	for i, c := range candidates {
		g.Go(func() error {
			d, err := e.catalog.GetDetails(gctx, c.CatalogID)
			if err != nil {
				if isCancellation(err) {
					return err
				}
				logger.Warn().Err(err).Int("catalog_id", c.CatalogID).Msg("detail fetch failed, scoring as zero")
				return nil
			}
			details[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	familiarity := algorithms.NewFamiliarity(prof, e.config.Familiarity)
	similarity := algorithms.NewSimilarity(tags, e.config.Similarity)

	failures := 0
	for i, c := range candidates {
		d := details[i]
		if d == nil {
			c.DetailsMissing = true
			c.Familiarity, c.Similarity = 0, 0
			failures++
			continue
		}
		c.applyDetail(d)
		c.Familiarity = familiarity.Score(d)
		c.Similarity = similarity.Score(d)
	}
	return failures, nil
}
