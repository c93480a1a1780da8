// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Command lumierectl runs the Lumiere pipeline stages from the command line.

	lumierectl merge --export letterboxd.zip --out merged.csv
	lumierectl taste --history merged.csv --profile profile.csv --top 25
	lumierectl keywords search heist --limit 10
	lumierectl recommend --tags drama,heist --history merged.csv --era 0 --familiarity 3

merge, taste and keywords work offline. recommend calls the movie catalog
and reads the same environment and config file as the server. Every
command accepts --json for machine-readable output. Logs go to stderr.
*/
package main
