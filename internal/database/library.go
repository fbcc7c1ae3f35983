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
	"strings"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// ticksPerSecond converts the media server's 100ns runtime ticks to seconds.
const ticksPerSecond = 10_000_000

// LibraryItem is one library metadata row.
type LibraryItem struct {
	ItemID       string
	Name         string
	MediaType    string
	SeriesName   string
	RuntimeTicks int64
	Genres       []string
	TmdbID       string
}

// UpsertLibraryItems refreshes library metadata rows.
func (db *DB) UpsertLibraryItems(ctx context.Context, items []LibraryItem) error {
	if len(items) == 0 {
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
		INSERT INTO library_items (item_id, name, media_type, series_name, runtime_ticks, genres, tmdb_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_id) DO UPDATE SET
			name = EXCLUDED.name,
			media_type = EXCLUDED.media_type,
			series_name = EXCLUDED.series_name,
			runtime_ticks = EXCLUDED.runtime_ticks,
			genres = EXCLUDED.genres,
			tmdb_id = EXCLUDED.tmdb_id
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer closeQuietly(stmt)

	for _, item := range items {
		_, err := stmt.ExecContext(ctx,
			models.ToUUID(item.ItemID), item.Name, item.MediaType,
			nullIfEmpty(item.SeriesName), item.RuntimeTicks,
			nullIfEmpty(strings.Join(item.Genres, "|")), nullIfEmpty(item.TmdbID))
		if err != nil {
			return fmt.Errorf("failed to upsert library item: %w", err)
		}
	}

	return tx.Commit()
}

// ItemRuntimes returns runtime seconds keyed by normalized item ID. Items
// without library metadata or with zero ticks are absent from the map.
func (db *DB) ItemRuntimes(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	runtimes := make(map[string]int64, len(itemIDs))
	if len(itemIDs) == 0 {
		return runtimes, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT item_id, runtime_ticks
		FROM library_items
		WHERE item_id IN (%s) AND runtime_ticks > 0
	`, placeholders(len(itemIDs)))

	rows, err := db.conn.QueryContext(ctx, query, uuidArgs(itemIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runtimes: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var id string
		var ticks int64
		if err := rows.Scan(&id, &ticks); err != nil {
			return nil, fmt.Errorf("failed to scan runtime: %w", err)
		}
		runtimes[models.NormalizeID(id)] = ticks / ticksPerSecond
	}
	return runtimes, rows.Err()
}

// SeriesAverageRuntime returns the average episode runtime in seconds for a
// series, or 0 when the series has no episodes with known runtimes.
func (db *DB) SeriesAverageRuntime(ctx context.Context, seriesName string) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT CAST(AVG(runtime_ticks) AS BIGINT)
		FROM library_items
		WHERE series_name = ? AND media_type = 'Episode' AND runtime_ticks > 0
	`
	var avgTicks sql.NullInt64
	if err := db.conn.QueryRowContext(ctx, query, seriesName).Scan(&avgTicks); err != nil {
		return 0, fmt.Errorf("failed to query series runtime: %w", err)
	}
	if !avgTicks.Valid {
		return 0, nil
	}
	return avgTicks.Int64 / ticksPerSecond, nil
}

// ItemGenres returns genre lists keyed by normalized item ID.
func (db *DB) ItemGenres(ctx context.Context, itemIDs []string) (map[string][]string, error) {
	genres := make(map[string][]string, len(itemIDs))
	if len(itemIDs) == 0 {
		return genres, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT item_id, genres
		FROM library_items
		WHERE item_id IN (%s) AND genres IS NOT NULL AND genres != ''
	`, placeholders(len(itemIDs)))

	rows, err := db.conn.QueryContext(ctx, query, uuidArgs(itemIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var id, joined string
		if err := rows.Scan(&id, &joined); err != nil {
			return nil, fmt.Errorf("failed to scan genres: %w", err)
		}
		genres[models.NormalizeID(id)] = strings.Split(joined, "|")
	}
	return genres, rows.Err()
}

// SeriesGenres returns the genre list of a series, taken from any of its
// episodes or the series row itself.
func (db *DB) SeriesGenres(ctx context.Context, seriesName string) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT genres
		FROM library_items
		WHERE (series_name = ? OR (name = ? AND media_type = 'Series'))
		  AND genres IS NOT NULL AND genres != ''
		LIMIT 1
	`
	var joined string
	err := db.conn.QueryRowContext(ctx, query, seriesName, seriesName).Scan(&joined)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query series genres: %w", err)
	}
	return strings.Split(joined, "|"), nil
}

// ItemProviderIDs returns TMDB IDs keyed by normalized item ID.
func (db *DB) ItemProviderIDs(ctx context.Context, itemIDs []string) (map[string]string, error) {
	ids := make(map[string]string, len(itemIDs))
	if len(itemIDs) == 0 {
		return ids, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT item_id, tmdb_id
		FROM library_items
		WHERE item_id IN (%s) AND tmdb_id IS NOT NULL AND tmdb_id != ''
	`, placeholders(len(itemIDs)))

	rows, err := db.conn.QueryContext(ctx, query, uuidArgs(itemIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider IDs: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var id, tmdb string
		if err := rows.Scan(&id, &tmdb); err != nil {
			return nil, fmt.Errorf("failed to scan provider ID: %w", err)
		}
		ids[models.NormalizeID(id)] = tmdb
	}
	return ids, rows.Err()
}

// SeriesProviderID returns the TMDB ID of a series, or "" when unknown.
func (db *DB) SeriesProviderID(ctx context.Context, seriesName string) (string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT tmdb_id
		FROM library_items
		WHERE name = ? AND media_type = 'Series' AND tmdb_id IS NOT NULL AND tmdb_id != ''
		LIMIT 1
	`
	var tmdb string
	err := db.conn.QueryRowContext(ctx, query, seriesName).Scan(&tmdb)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query series provider ID: %w", err)
	}
	return tmdb, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func uuidArgs(itemIDs []string) []interface{} {
	args := make([]interface{}, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = models.ToUUID(id)
	}
	return args
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
