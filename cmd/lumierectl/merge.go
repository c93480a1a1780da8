// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/logging"
)

func mergeCmd() *cobra.Command {
	var (
		exportPath string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge a Letterboxd export into one history table",
		Long: `Merge reads a Letterboxd data export (zip or extracted directory) and
writes one row per title with ratings, likes, diary dates, list counts and
review flags folded in. Use --out - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fsys, closer, err := history.OpenExport(exportPath)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			export, err := history.MergeExport(fsys, logging.Logger())
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), outPath, func(w io.Writer) error {
				return history.WriteMergedCSV(w, export.Records)
			}); err != nil {
				return err
			}

			s := export.Stats
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(),
				"merged %d titles (%d dropped, %d rated, %d liked, %d diary entries, %d lists, %d favorites)\n",
				len(export.Records), s.Dropped, s.Rated, s.Liked, s.DiaryEntries, s.ListFiles, s.Favorites)
			return nil
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "Letterboxd export zip or directory")
	cmd.Flags().StringVar(&outPath, "out", "-", "output CSV path, - for stdout")
	_ = cmd.MarkFlagRequired("export")
	return cmd
}

// writeOutput runs write against stdout for "-" or a new file at path.
// A partially written file is removed on error.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "-" || path == "" {
		return write(stdout)
	}

	f, err := os.Create(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
