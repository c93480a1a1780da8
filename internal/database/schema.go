// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package database

import (
	"context"
	"fmt"
)

// Timestamps are written from Go; TIMESTAMPTZ defaults need the ICU
// extension, which is not loaded.
var schema = []struct {
	name string
	ddl  string
}{
	{
		name: "watch_records",
		ddl: `CREATE TABLE IF NOT EXISTS watch_records (
			record_key     VARCHAR PRIMARY KEY,
			url            VARCHAR NOT NULL DEFAULT '',
			name           VARCHAR NOT NULL,
			year           INTEGER NOT NULL,
			date_added     DATE,
			dates_watched  VARCHAR NOT NULL DEFAULT '[]',
			rating         DOUBLE,
			no_of_watches  INTEGER NOT NULL DEFAULT 0,
			reviewed       BOOLEAN NOT NULL DEFAULT FALSE,
			in_lists_count INTEGER NOT NULL DEFAULT 0,
			liked          BOOLEAN NOT NULL DEFAULT FALSE,
			user_tags      VARCHAR NOT NULL DEFAULT '',
			catalog_id     INTEGER,
			import_id      VARCHAR,
			updated_at     TIMESTAMP NOT NULL
		)`,
	},
	{
		name: "user_preferences",
		ddl: `CREATE TABLE IF NOT EXISTS user_preferences (
			id         INTEGER PRIMARY KEY,
			document   VARCHAR NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	},
	{
		name: "import_runs",
		ddl: `CREATE TABLE IF NOT EXISTS import_runs (
			id          VARCHAR PRIMARY KEY,
			source      VARCHAR NOT NULL,
			imported_at TIMESTAMP NOT NULL,
			records     INTEGER NOT NULL,
			favorites   VARCHAR NOT NULL DEFAULT '[]'
		)`,
	},
	{
		name: "idx_import_runs_imported_at",
		ddl:  `CREATE INDEX IF NOT EXISTS idx_import_runs_imported_at ON import_runs(imported_at)`,
	},
}

// createTables applies the schema. Every statement is idempotent.
func (db *DB) createTables(ctx context.Context) error {
	for _, s := range schema {
		if _, err := db.conn.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
