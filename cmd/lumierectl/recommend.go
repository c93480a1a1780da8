// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/lumiere/internal/cache"
	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/config"
	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/recommend"
)

// calibrationFlags are the four slider axes. Zero disables an axis.
type calibrationFlags struct {
	era, runtime, popularity, familiarity int
}

func (f calibrationFlags) calibration() (recommend.Calibration, error) {
	c := recommend.DefaultCalibration()
	axes := []struct {
		name    string
		value   int
		level   *int
		enabled *bool
	}{
		{"era", f.era, &c.Era, &c.EraEnabled},
		{"runtime", f.runtime, &c.Runtime, &c.RuntimeEnabled},
		{"popularity", f.popularity, &c.Popularity, &c.PopularityEnabled},
		{"familiarity", f.familiarity, &c.Familiarity, &c.FamiliarityEnabled},
	}
	for _, a := range axes {
		switch {
		case a.value == 0:
			*a.enabled = false
		case a.value < 1 || a.value > 10:
			return c, fmt.Errorf("--%s must be 0 (off) or 1..10, got %d", a.name, a.value)
		default:
			*a.level = a.value
		}
	}
	return c, nil
}

func recommendCmd(opts *globalOptions) *cobra.Command {
	var (
		tags        []string
		historyPath string
		profilePath string
		maxResults  int
		cacheBack   string
		timeout     time.Duration
		calib       calibrationFlags
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run the recommendation pipeline against the live catalog",
		Long: `Recommend gathers candidates for each tag from the movie catalog, scores
them against the taste profile built from --history and prints the ranked
list. Catalog credentials come from TMDB_API_KEY or TMDB_READ_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calibration, err := calib.calibration()
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.RequireCatalogCredentials(); err != nil {
				return err
			}

			req := recommend.Request{
				Tags:        tags,
				Calibration: calibration,
				MaxResults:  maxResults,
			}
			if historyPath != "" {
				if req.History, err = history.LoadMergedCSV(historyPath, logging.Logger()); err != nil {
					return err
				}
			}
			if profilePath != "" {
				if req.FavoriteURLs, err = history.LoadFavorites(profilePath); err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			engine, closeFn, err := newLiveEngine(ctx, cfg, cacheBack)
			if err != nil {
				return err
			}
			defer closeFn()

			resp, err := engine.GetRecommendations(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return printJSON(out, resp)
			}

			t := newTable(out, "rank", "title", "year", "final", "similarity", "familiarity", "tags")
			for i := range resp.Recommendations {
				c := &resp.Recommendations[i]
				t.row(i+1, truncate(c.Title, 48), c.Year(),
					fmt.Sprintf("%.3f", c.Final), fmt.Sprintf("%.3f", c.Similarity), fmt.Sprintf("%.3f", c.Familiarity),
					strings.Join(c.SourceTags, ","))
			}
			if err := t.flush(); err != nil {
				return err
			}

			md := resp.Metadata
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%d found, %d ms, profile from %s (%d titles)\n",
				md.TotalFound, md.ProcessingTimeMS, md.ProfileSummary.ProfileSource, md.ProfileSummary.MoviesAnalyzed)
			if len(md.UnresolvedTags) > 0 {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "unresolved tags: %s\n", strings.Join(md.UnresolvedTags, ", "))
			}
			if md.Reason != "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), md.Reason)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&tags, "tags", nil, "comma-separated tags, e.g. drama,heist")
	f.StringVar(&historyPath, "history", "", "merged history CSV")
	f.StringVar(&profilePath, "profile", "", "Letterboxd profile.csv with favorite films")
	f.IntVar(&maxResults, "max", 0, "number of recommendations (0 = server default)")
	f.StringVar(&cacheBack, "cache", cache.BackendMemory, "response cache backend: memory, badger or redis")
	f.DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline")
	f.IntVar(&calib.era, "era", 5, "era slider 1..10, 0 = off")
	f.IntVar(&calib.runtime, "runtime", 5, "runtime slider 1..10, 0 = off")
	f.IntVar(&calib.popularity, "popularity", 5, "popularity slider 1..10, 0 = off")
	f.IntVar(&calib.familiarity, "familiarity", 5, "familiarity slider 1..10, 0 = off")
	_ = cmd.MarkFlagRequired("tags")
	return cmd
}

// newLiveEngine wires the catalog gateway and engine from configuration.
// The returned func closes the response cache.
func newLiveEngine(ctx context.Context, cfg *config.Config, backend string) (*recommend.Engine, func(), error) {
	store, err := cache.OpenStore(ctx, cache.Options{
		Backend:       backend,
		Dir:           cfg.Cache.Dir,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		MemoryEntries: cfg.Cache.MemoryEntries,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open response cache: %w", err)
	}
	responses := cache.NewResponseCache(store, cfg.Cache.MemoryEntries, logging.WithComponent("cache"))
	closeFn := func() { _ = responses.Close() }

	fetcher := catalog.NewFetcherFromConfig(&cfg.Catalog, logging.WithComponent("catalog"))
	gateway := catalog.NewGateway(fetcher, responses, cfg.Catalog.Language, logging.WithComponent("catalog"))

	keywords, err := catalog.LoadKeywordIndex(cfg.Keywords.CSVPath)
	if err != nil {
		logging.Warn().Err(err).Msg("Keyword index unavailable, keyword tags disabled")
		keywords = nil
	}

	engine, err := recommend.NewEngine(recommend.ConfigFromSettings(&cfg.Recommend), gateway, catalog.NewResolver(keywords), logging.WithComponent("recommend"))
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return engine, closeFn, nil
}
