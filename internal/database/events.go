// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jellyrewind/jellyrewind/internal/metrics"
	"github.com/jellyrewind/jellyrewind/internal/models"
)

// ListEvents returns one user's raw playback events for a calendar year,
// ordered ascending by event time. The order is load-bearing: session
// reconstruction scans it once.
func (db *DB) ListEvents(ctx context.Context, userID string, year int) (events []models.PlaybackEvent, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list_events", time.Since(start), err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT user_id, item_id, item_name, item_type,
		       COALESCE(playback_method, ''), COALESCE(client_name, ''), COALESCE(device_name, ''),
		       date_created, play_duration
		FROM playback_events
		WHERE user_id = ?
		  AND date_created >= make_timestamp(?, 1, 1, 0, 0, 0)
		  AND date_created < make_timestamp(?, 1, 1, 0, 0, 0)
		ORDER BY date_created ASC
	`

	rows, err := db.conn.QueryContext(ctx, query, models.NormalizeID(userID), year, year+1)
	if err != nil {
		return nil, fmt.Errorf("failed to query playback events: %w", err)
	}
	defer closeRows(rows)

	return scanEvents(rows)
}

// InsertEvents appends raw playback events. Used by the mock seeder and by
// tests; the production log is written by the external ingest path.
func (db *DB) InsertEvents(ctx context.Context, events []models.PlaybackEvent) error {
	if len(events) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO playback_events
			(user_id, item_id, item_name, item_type, playback_method, client_name, device_name, date_created, play_duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer closeQuietly(stmt)

	for _, e := range events {
		_, err := stmt.ExecContext(ctx,
			models.NormalizeID(e.UserID), e.ItemID, e.ItemName, e.ItemType,
			e.PlaybackMethod, e.ClientName, e.DeviceName, e.Time.UTC(), e.DurationSec)
		if err != nil {
			return fmt.Errorf("failed to insert playback event: %w", err)
		}
	}

	return tx.Commit()
}

// ListUsers returns the account directory ordered by username.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT user_id, username FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer closeRows(rows)

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUser resolves a user by ID (normalized or dashed form) or by exact
// username. Returns nil, nil when no account matches.
func (db *DB) GetUser(ctx context.Context, idOrName string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT user_id, username FROM users WHERE user_id = ? OR username = ? LIMIT 1`
	row := db.conn.QueryRowContext(ctx, query, models.NormalizeID(idOrName), idOrName)

	var u models.User
	if err := row.Scan(&u.ID, &u.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// UpsertUsers refreshes the account directory.
func (db *DB) UpsertUsers(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO users (user_id, username) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET username = EXCLUDED.username
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer closeQuietly(stmt)

	for _, u := range users {
		if _, err := stmt.ExecContext(ctx, models.NormalizeID(u.ID), u.Username); err != nil {
			return fmt.Errorf("failed to upsert user: %w", err)
		}
	}

	return tx.Commit()
}

// ListYears returns the calendar years with playback data for a user,
// descending.
func (db *DB) ListYears(ctx context.Context, userID string) ([]int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT DISTINCT CAST(year(date_created) AS INTEGER) AS y
		FROM playback_events
		WHERE user_id = ?
		ORDER BY y DESC
	`
	rows, err := db.conn.QueryContext(ctx, query, models.NormalizeID(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer closeRows(rows)

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func scanEvents(rows *sql.Rows) ([]models.PlaybackEvent, error) {
	var events []models.PlaybackEvent
	for rows.Next() {
		var e models.PlaybackEvent
		err := rows.Scan(&e.UserID, &e.ItemID, &e.ItemName, &e.ItemType,
			&e.PlaybackMethod, &e.ClientName, &e.DeviceName, &e.Time, &e.DurationSec)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playback event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
