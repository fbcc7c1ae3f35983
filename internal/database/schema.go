// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package database

import (
	"context"
	"fmt"
)

// createTables creates the schema if it does not exist. Statements are
// idempotent so startup is safe against an already-populated file.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()

	statements := []string{
		// Raw playback activity log, append-only. play_duration is seconds
		// of reported playback for the event, not the item runtime.
		`CREATE TABLE IF NOT EXISTS playback_events (
			user_id VARCHAR NOT NULL,
			item_id VARCHAR NOT NULL,
			item_name VARCHAR NOT NULL,
			item_type VARCHAR NOT NULL,
			playback_method VARCHAR,
			client_name VARCHAR,
			device_name VARCHAR,
			date_created TIMESTAMP NOT NULL,
			play_duration BIGINT NOT NULL DEFAULT 0
		)`,

		// Library metadata keyed by dashed uppercase item UUID. runtime_ticks
		// uses the media server's 100ns tick convention. genres is
		// pipe-delimited.
		`CREATE TABLE IF NOT EXISTS library_items (
			item_id VARCHAR PRIMARY KEY,
			name VARCHAR NOT NULL,
			media_type VARCHAR NOT NULL,
			series_name VARCHAR,
			runtime_ticks BIGINT NOT NULL DEFAULT 0,
			genres VARCHAR,
			tmdb_id VARCHAR
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			user_id VARCHAR PRIMARY KEY,
			username VARCHAR NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_user_time ON playback_events (user_id, date_created)`,
		`CREATE INDEX IF NOT EXISTS idx_events_time ON playback_events (date_created)`,
		`CREATE INDEX IF NOT EXISTS idx_library_series ON library_items (series_name)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
