// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package recommend

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/lumiere/internal/catalog"
)

// superlist is the deduplicated candidate set, in insertion order.
type superlist struct {
	order []*Candidate
	byID  map[int]*Candidate
}

func newSuperlist() *superlist {
	return &superlist{byID: make(map[int]*Candidate)}
}

// add inserts s or, if present, appends tag to its sources.
func (l *superlist) add(s *catalog.Summary, tag string) {
	c, ok := l.byID[s.ID]
	if !ok {
		c = newCandidate(s)
		l.byID[s.ID] = c
		l.order = append(l.order, c)
	}
	c.addSource(tag)
}

// annotate tags an existing candidate. It never inserts.
func (l *superlist) annotate(id int, tag string) bool {
	c, ok := l.byID[id]
	if !ok {
		return false
	}
	c.addSource(tag)
	return true
}

func (l *superlist) len() int {
	return len(l.order)
}

func (l *superlist) candidates() []*Candidate {
	return l.order
}

// aggregator builds the superlist from catalog calls.
type aggregator struct {
	catalog  Catalog
	resolver TagResolver
	pages    int
	workers  int
	logger   zerolog.Logger
}

// discoverResult is the merged superlist plus what could not be searched.
type discoverResult struct {
	list       *superlist
	unresolved []string
	// failedTags counts resolved tags whose discover failed before any page.
	failedTags int
	resolved   int
}

// catalogUnavailable reports whether every resolved tag failed outright.
func (r *discoverResult) catalogUnavailable() bool {
	return r.resolved > 0 && r.failedTags == r.resolved
}

// discover resolves every tag, reads up to a.pages discover pages per tag
// concurrently, then merges the pages in tag and page order so the result
// does not depend on scheduling. Unresolved tags are returned, not failed.
func (a *aggregator) discover(ctx context.Context, tags []string, filters catalog.Filters) (*discoverResult, error) {
	refs := make([]catalog.TagRef, 0, len(tags))
	unresolved := []string{}
	for _, tag := range tags {
		ref, ok := a.resolver.Resolve(tag)
		if !ok {
			a.logger.Warn().Str("tag", tag).Msg("no catalog genre or keyword for tag, skipping")
			unresolved = append(unresolved, tag)
			continue
		}
		refs = append(refs, ref)
	}

	results := make([][]catalog.Summary, len(refs))
	failed := make([]bool, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, ref := range refs {
		g.Go(func() error {
			movies, pageErr, err := a.discoverTag(gctx, ref, filters)
			results[i] = movies
			failed[i] = pageErr && len(movies) == 0
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &discoverResult{list: newSuperlist(), unresolved: unresolved, resolved: len(refs)}
	for i, ref := range refs {
		if failed[i] {
			res.failedTags++
		}
		for j := range results[i] {
			res.list.add(&results[i][j], ref.Tag)
		}
	}
	return res, nil
}

// discoverTag reads pages sequentially, checking for cancellation between
// pages. A failed page ends the tag with what was read so far and sets
// pageErr.
func (a *aggregator) discoverTag(ctx context.Context, ref catalog.TagRef, filters catalog.Filters) (movies []catalog.Summary, pageErr bool, err error) {
	for page := 1; page <= a.pages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		results, err := a.catalog.DiscoverByFilter(ctx, ref, filters, page)
		if err != nil {
			if isCancellation(err) {
				return nil, false, err
			}
			a.logger.Warn().Err(err).
				Str("tag", ref.Tag).
				Int("page", page).
				Msg("discover page failed")
			return movies, true, nil
		}
		if len(results) == 0 {
			break
		}
		movies = append(movies, results...)
	}
	return movies, false, nil
}

// annotateSimilar reads similar-title pages for each seed ID and tags
// candidates already in list. It returns the number of candidates that
// gained the provenance tag.
func (a *aggregator) annotateSimilar(ctx context.Context, list *superlist, seeds []int, pages int) (int, error) {
	if len(seeds) == 0 || pages <= 0 || list.len() == 0 {
		return 0, nil
	}

	results := make([][]catalog.Summary, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, id := range seeds {
		g.Go(func() error {
			for page := 1; page <= pages; page++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				movies, err := a.catalog.GetSimilar(gctx, id, page)
				if err != nil {
					if isCancellation(err) {
						return err
					}
					a.logger.Warn().Err(err).Int("catalog_id", id).Int("page", page).Msg("similar page failed")
					return nil
				}
				if len(movies) == 0 {
					return nil
				}
				results[i] = append(results[i], movies...)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	annotated := make(map[int]struct{})
	for i := range results {
		for j := range results[i] {
			id := results[i][j].ID
			if list.annotate(id, SimilarProvenance) {
				annotated[id] = struct{}{}
			}
		}
	}
	return len(annotated), nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
