// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/lumiere/internal/catalog"
	"github.com/tomtom215/lumiere/internal/config"
)

func keywordsCmd(opts *globalOptions) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Inspect the catalog keyword table",
	}
	cmd.PersistentFlags().StringVar(&csvPath, "csv", config.Default().Keywords.CSVPath, "keyword name/id CSV")

	var limit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Find keywords whose name contains the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("query is empty")
			}
			index, err := catalog.LoadKeywordIndex(csvPath)
			if err != nil {
				return err
			}

			matches := index.Search(query, limit)
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return printJSON(out, matches)
			}
			t := newTable(out, "id", "name")
			for _, m := range matches {
				t.row(m.ID, m.Name)
			}
			return t.flush()
		},
	}
	search.Flags().IntVar(&limit, "limit", 20, "maximum matches")

	cmd.AddCommand(search)
	return cmd
}
