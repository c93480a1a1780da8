// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Package database persists watch history and the preference document in an
embedded DuckDB file.

Tables:
  - watch_records: one row per title keyed by Name + "_" + Year; a re-import
    replaces the row. dates_watched is stored as a JSON array of ISO dates.
  - user_preferences: a single row holding the JSON preference document.
  - import_runs: one row per import with its favorite URLs.

*DB satisfies recommend.HistoryStore and recommend.PreferenceStore.

Connection pool:
  - MaxOpenConns: runtime.NumCPU()
  - MaxIdleConns: 2
  - ConnMaxLifetime: 1 hour
  - ConnMaxIdleTime: 5 minutes

Writes retry DuckDB transaction conflicts with a short exponential backoff.
Close runs CHECKPOINT so the next open does not replay the WAL.
*/
package database
