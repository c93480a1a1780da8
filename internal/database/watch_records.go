// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/lumiere/internal/history"
	"github.com/tomtom215/lumiere/internal/logging"
)

// ImportRun records one history import.
type ImportRun struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	ImportedAt time.Time `json:"imported_at"`
	Records    int       `json:"records"`
	Favorites  []string  `json:"favorite_urls"`
}

const upsertWatchRecordSQL = `INSERT OR REPLACE INTO watch_records (
	record_key, url, name, year, date_added, dates_watched, rating,
	no_of_watches, reviewed, in_lists_count, liked, user_tags,
	catalog_id, import_id, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectWatchRecordsSQL = `SELECT
	url, name, year, date_added, dates_watched, rating, no_of_watches,
	reviewed, in_lists_count, liked, user_tags, catalog_id
FROM watch_records
ORDER BY name, year`

// SaveImport upserts records by primary key and logs the run, in one
// transaction. A record already stored under the same key is replaced.
func (db *DB) SaveImport(ctx context.Context, source string, records []history.WatchRecord, favorites []string) (*ImportRun, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if favorites == nil {
		favorites = []string{}
	}
	run := &ImportRun{
		ID:         uuid.New().String(),
		Source:     source,
		ImportedAt: time.Now().UTC(),
		Records:    len(records),
		Favorites:  favorites,
	}
	favJSON, err := json.Marshal(favorites)
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}

	err = db.withRetry(ctx, func() error {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin import: %w", err)
		}
		defer rollbackQuietly(tx)

		stmt, err := tx.PrepareContext(ctx, upsertWatchRecordSQL)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer closeWithLog(stmt, "prepared statement")

		for i := range records {
			args, err := watchRecordArgs(&records[i], run.ID, run.ImportedAt)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("upsert %q: %w", records[i].Key(), err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO import_runs (id, source, imported_at, records, favorites) VALUES (?, ?, ?, ?, ?)`,
			run.ID, run.Source, run.ImportedAt, run.Records, string(favJSON),
		); err != nil {
			return fmt.Errorf("record import run: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}

	logging.Info().
		Str("import_id", run.ID).
		Str("source", source).
		Int("records", run.Records).
		Msg("Watch history imported")
	return run, nil
}

// UpsertWatchRecords stores records without logging an import run.
func (db *DB) UpsertWatchRecords(ctx context.Context, records []history.WatchRecord) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	return db.withRetry(ctx, func() error {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin upsert: %w", err)
		}
		defer rollbackQuietly(tx)

		for i := range records {
			args, err := watchRecordArgs(&records[i], "", now)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, upsertWatchRecordSQL, args...); err != nil {
				return fmt.Errorf("upsert %q: %w", records[i].Key(), err)
			}
		}
		return tx.Commit()
	})
}

// ListWatchRecords returns every stored record ordered by name and year.
func (db *DB) ListWatchRecords(ctx context.Context) ([]history.WatchRecord, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, selectWatchRecordsSQL)
	if err != nil {
		return nil, fmt.Errorf("query watch records: %w", err)
	}
	defer closeWithLog(rows, "rows")

	records := []history.WatchRecord{}
	for rows.Next() {
		var (
			r         history.WatchRecord
			dateAdded sql.NullTime
			watched   string
			rating    sql.NullFloat64
			reviewed  bool
			liked     bool
			catalogID sql.NullInt64
		)
		if err := rows.Scan(
			&r.URL, &r.Name, &r.Year, &dateAdded, &watched, &rating, &r.Watches,
			&reviewed, &r.ListCount, &liked, &r.UserTags, &catalogID,
		); err != nil {
			return nil, fmt.Errorf("scan watch record: %w", err)
		}
		if dateAdded.Valid {
			r.DateAdded = history.NewDate(dateAdded.Time)
		}
		if rating.Valid {
			r.Rating = history.Rated(rating.Float64)
		}
		if catalogID.Valid {
			r.CatalogID = int(catalogID.Int64)
		}
		r.Reviewed = history.YesNo(reviewed)
		r.Liked = history.YesNo(liked)
		if err := json.Unmarshal([]byte(watched), &r.DatesWatched); err != nil {
			logging.Warn().Err(err).Str("key", r.Key()).Str("dates_watched", watched).
				Msg("Unparsable watch-date list, treating as empty")
			r.DatesWatched = nil
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch records: %w", err)
	}
	return records, nil
}

// CountWatchRecords returns the number of stored records.
func (db *DB) CountWatchRecords(ctx context.Context) (int, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM watch_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count watch records: %w", err)
	}
	return n, nil
}

// LatestImport returns the most recent import run. ok is false when no
// history was ever imported.
func (db *DB) LatestImport(ctx context.Context) (run *ImportRun, ok bool, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var (
		r       ImportRun
		favJSON string
	)
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, source, imported_at, records, favorites FROM import_runs ORDER BY imported_at DESC LIMIT 1`,
	).Scan(&r.ID, &r.Source, &r.ImportedAt, &r.Records, &favJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query latest import: %w", err)
	}
	if err := json.Unmarshal([]byte(favJSON), &r.Favorites); err != nil {
		return nil, false, fmt.Errorf("decode favorites: %w", err)
	}
	return &r, true, nil
}

// FavoriteURLs returns the favorites of the latest import, or nil.
func (db *DB) FavoriteURLs(ctx context.Context) ([]string, error) {
	run, ok, err := db.LatestImport(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return run.Favorites, nil
}

func watchRecordArgs(r *history.WatchRecord, importID string, now time.Time) ([]any, error) {
	dates := r.DatesWatched
	if dates == nil {
		dates = []history.Date{}
	}
	watched, err := json.Marshal(dates)
	if err != nil {
		return nil, fmt.Errorf("encode dates_watched for %q: %w", r.Key(), err)
	}
	return []any{
		r.Key(),
		r.URL,
		r.Name,
		r.Year,
		nullDate(r.DateAdded),
		string(watched),
		nullFloat(r.Rating),
		r.Watches,
		bool(r.Reviewed),
		r.ListCount,
		bool(r.Liked),
		r.UserTags,
		nullInt(r.CatalogID),
		nullString(importID),
		now,
	}, nil
}

func nullDate(d history.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
