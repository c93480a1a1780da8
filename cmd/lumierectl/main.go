// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/lumiere/internal/logging"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	logLevel string
	jsonOut  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:          "lumierectl",
		Short:        "Operator tools for the Lumiere recommendation pipeline",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !logging.ValidLevel(opts.logLevel) {
				return fmt.Errorf("--log-level: unknown level %q", opts.logLevel)
			}
			logging.Init(logging.Config{
				Level:     opts.logLevel,
				Format:    "console",
				Timestamp: true,
				Output:    cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(tasteCmd(opts))
	rootCmd.AddCommand(mergeCmd())
	rootCmd.AddCommand(keywordsCmd(opts))
	rootCmd.AddCommand(recommendCmd(opts))

	return rootCmd
}
