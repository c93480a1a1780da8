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

	"github.com/tomtom215/lumiere/internal/recommend/profile"
)

// preferencesRowID is the single row holding the preference document.
const preferencesRowID = 1

// SavePreferences replaces the stored preference document.
func (db *DB) SavePreferences(ctx context.Context, prefs *profile.Preferences) error {
	if prefs == nil {
		return fmt.Errorf("preferences are nil")
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	doc, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	return db.withRetry(ctx, func() error {
		_, err := db.conn.ExecContext(ctx,
			`INSERT OR REPLACE INTO user_preferences (id, document, updated_at) VALUES (?, ?, ?)`,
			preferencesRowID, string(doc), time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("save preferences: %w", err)
		}
		return nil
	})
}

// GetPreferences loads the stored document. ok is false when none was saved.
func (db *DB) GetPreferences(ctx context.Context) (prefs *profile.Preferences, ok bool, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var doc string
	err = db.conn.QueryRowContext(ctx,
		`SELECT document FROM user_preferences WHERE id = ?`, preferencesRowID,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query preferences: %w", err)
	}

	prefs = &profile.Preferences{}
	if err := json.Unmarshal([]byte(doc), prefs); err != nil {
		return nil, false, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs, true, nil
}

// DeletePreferences removes the stored document, if any.
func (db *DB) DeletePreferences(ctx context.Context) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, `DELETE FROM user_preferences WHERE id = ?`, preferencesRowID); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
