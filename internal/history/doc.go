// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package history holds the user's watch history: the WatchRecord model and
// the two ways of producing it.
//
// # Merged table
//
// The merged table is a CSV with one row per logged title:
//
//	url,name,year,date_added,dates_watched,rating,no_of_watches,reviewed,in_lists_count,liked
//
// dates_watched is a bracketed list of quoted ISO dates, for example
// ['2023-01-15', '2023-02-01']. reviewed and liked are "yes" or "no".
// LoadMergedCSV reads it and WriteMergedCSV produces it.
//
// # Letterboxd export
//
// MergeExport reads a Letterboxd data export (zip archive or extracted
// directory, optionally nested under one root folder) and builds the same
// records:
//
//   - watched.csv is the base set; rows missing name, year or URI are dropped
//   - likes/films.csv sets the liked flag
//   - lists/*.csv count unique list memberships (header on the second line)
//   - diary.csv provides watch dates and the watch count
//   - ratings.csv provides the latest rating
//   - reviews.csv sets the reviewed flag
//
// Favorites come from the "Favorite Films" column of profile.csv.
//
// Records are keyed by Name + "_" + Year. Re-imports overwrite by key.
package history
