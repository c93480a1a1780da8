// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/lumiere/internal/cache"
	"github.com/tomtom215/lumiere/internal/validation"
)

var (
	// ErrInvalidRecord is returned when a payload decodes but fails validation.
	ErrInvalidRecord = errors.New("catalog: invalid record")
	// ErrMalformedResponse is returned for a successful response whose body
	// is not JSON. Such bodies are never cached.
	ErrMalformedResponse = errors.New("catalog: malformed response")
)

// Gateway exposes the catalog operations the pipeline consumes. Every raw
// response goes through the response cache. It is safe for concurrent use.
type Gateway struct {
	fetcher  Fetcher
	cache    *cache.ResponseCache
	language string
	logger   zerolog.Logger
}

// NewGateway creates a gateway. rc may be nil to disable caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGateway(fetcher Fetcher, rc *cache.ResponseCache, language string, logger zerolog.Logger) *Gateway {
	if language == "" {
		language = "en-US"
	}
	return &Gateway{
		fetcher:  fetcher,
		cache:    rc,
		language: language,
		logger:   logger.With().Str("component", "catalog").Logger(),
	}
}

// DiscoverByFilter returns one page of movies for a genre or keyword with
// the given filters applied.
func (g *Gateway) DiscoverByFilter(ctx context.Context, ref TagRef, filters Filters, page int) ([]Summary, error) {
	params := g.baseParams(page)
	switch ref.Kind {
	case KindGenre:
		params.Set("with_genres", strconv.Itoa(ref.ID))
	case KindKeyword:
		params.Set("with_keywords", strconv.Itoa(ref.ID))
	default:
		return nil, fmt.Errorf("discover: unsupported reference kind %q", ref.Kind)
	}
	params.Set("include_adult", "false")
	filters.apply(params)

	body, err := g.get(ctx, "discover/movie", params, "")
	if err != nil {
		return nil, fmt.Errorf("discover %s %d page %d: %w", ref.Kind, ref.ID, page, err)
	}
	return g.decodePage(body, "discover/movie")
}

// GetSimilar returns one page of movies similar to id.
func (g *Gateway) GetSimilar(ctx context.Context, id, page int) ([]Summary, error) {
	endpoint := fmt.Sprintf("movie/%d/similar", id)
	key := fmt.Sprintf("similar_%d_page_%d", id, page)

	body, err := g.get(ctx, endpoint, g.baseParams(page), key)
	if err != nil {
		return nil, fmt.Errorf("similar %d page %d: %w", id, page, err)
	}
	return g.decodePage(body, endpoint)
}

// GetDetails returns a movie with credits and keywords.
func (g *Gateway) GetDetails(ctx context.Context, id int) (*Detail, error) {
	endpoint := fmt.Sprintf("movie/%d", id)
	params := url.Values{}
	params.Set("language", g.language)
	params.Set("append_to_response", "credits,keywords")

	body, err := g.get(ctx, endpoint, params, fmt.Sprintf("movie_details_%d", id))
	if err != nil {
		return nil, fmt.Errorf("details %d: %w", id, err)
	}

	var detail Detail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("decode details %d: %w", id, err)
	}
	if verr := validation.ValidateStruct(&detail); verr != nil {
		return nil, fmt.Errorf("details %d: %w: %s", id, ErrInvalidRecord, verr.Error())
	}
	return &detail, nil
}

// SearchByTitle returns the first page of title matches, narrowed to year
// when year > 0.
func (g *Gateway) SearchByTitle(ctx context.Context, title string, year int) ([]Summary, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("search: empty title: %w", ErrInvalidRecord)
	}
	params := g.baseParams(1)
	params.Set("query", title)
	params.Set("include_adult", "false")
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	body, err := g.get(ctx, "search/movie", params, "")
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}
	return g.decodePage(body, "search/movie")
}

// FindByTitle resolves a watched title to a single catalog movie.
//
// The year-qualified search wins when it has results. Otherwise the search
// is repeated without the year and the first result released within one
// year of it is preferred, falling back to the first result.
func (g *Gateway) FindByTitle(ctx context.Context, title string, year int) (*Summary, error) {
	results, err := g.SearchByTitle(ctx, title, year)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return &results[0], nil
	}
	if year <= 0 {
		return nil, fmt.Errorf("search %q: %w", title, ErrNotFound)
	}

	results, err = g.SearchByTitle(ctx, title, 0)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("search %q (%d): %w", title, year, ErrNotFound)
	}
	for i := range results {
		if y := results[i].Year(); y > 0 && abs(y-year) <= 1 {
			return &results[i], nil
		}
	}
	return &results[0], nil
}

func (g *Gateway) baseParams(page int) url.Values {
	params := url.Values{}
	params.Set("language", g.language)
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))
	return params
}

// get returns the raw payload for endpoint, from cache when possible. An
// explicit key replaces the parameter fingerprint. Only well-formed JSON
// reaches the cache.
func (g *Gateway) get(ctx context.Context, endpoint string, params url.Values, explicitKey string) ([]byte, error) {
	fetch := func(ctx context.Context) ([]byte, error) {
		body, err := g.fetcher.Fetch(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}
		if !json.Valid(body) {
			return nil, fmt.Errorf("%s: %w", endpoint, ErrMalformedResponse)
		}
		return body, nil
	}
	if g.cache == nil {
		return fetch(ctx)
	}

	key := explicitKey
	if key == "" {
		key = cache.Fingerprint(endpoint, params)
	}
	payload, hit, err := g.cache.GetOrFetch(ctx, key, fetch)
	if err != nil {
		return nil, err
	}
	g.logger.Trace().Str("key", key).Bool("cache_hit", hit).Msg("catalog response")
	return payload, nil
}

// decodePage decodes a list response and drops results that fail validation.
func (g *Gateway) decodePage(body []byte, endpoint string) ([]Summary, error) {
	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}

	valid := page.Results[:0]
	for i := range page.Results {
		if verr := validation.ValidateStruct(&page.Results[i]); verr != nil {
			g.logger.Warn().
				Str("endpoint", endpoint).
				Int("id", page.Results[i].ID).
				Str("reason", verr.Error()).
				Msg("dropping invalid catalog record")
			continue
		}
		valid = append(valid, page.Results[i])
	}
	return valid, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
