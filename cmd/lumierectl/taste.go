// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/logging"
	"github.com/tomtom215/lumiere/internal/recommend/taste"
)

func tasteCmd(opts *globalOptions) *cobra.Command {
	var (
		historyPath string
		profilePath string
		top         int
	)

	cmd := &cobra.Command{
		Use:   "taste",
		Short: "Rank a merged history table by taste score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := history.LoadMergedCSV(historyPath, logging.Logger())
			if err != nil {
				return err
			}

			var favorites []string
			if profilePath != "" {
				if favorites, err = history.LoadFavorites(profilePath); err != nil {
					return err
				}
			}

			scores := taste.NewEngine(taste.DefaultWeights()).Compute(records, favorites)
			if top > 0 && len(scores) > top {
				scores = scores[:top]
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return printJSON(out, scores)
			}

			t := newTable(out, "rank", "title", "year", "rating", "watches", "liked", "fav", "taste")
			for i := range scores {
				s := &scores[i]
				rating := "-"
				if s.Rating != nil {
					rating = fmt.Sprintf("%.1f", *s.Rating)
				}
				t.row(i+1, truncate(s.Name, 48), s.Year, rating, s.Watches, s.Liked, yesNo(s.Favorite), fmt.Sprintf("%.1f", s.TasteScore))
			}
			return t.flush()
		},
	}

	cmd.Flags().StringVar(&historyPath, "history", "", "merged history CSV")
	cmd.Flags().StringVar(&profilePath, "profile", "", "Letterboxd profile.csv with favorite films")
	cmd.Flags().IntVar(&top, "top", 0, "print only the top N titles (0 = all)")
	_ = cmd.MarkFlagRequired("history")
	return cmd
}

func yesNo(b bool) string {
	return history.YesNo(b).String()
}
