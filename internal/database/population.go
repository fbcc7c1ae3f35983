// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jellyrewind/jellyrewind/internal/metrics"
	"github.com/jellyrewind/jellyrewind/internal/models"
)

// Population queries aggregate the raw log per user for cross-user
// comparisons. They deliberately work on raw play_duration sums rather than
// reconstructed sessions: rankings only need relative position, and the raw
// sums keep the whole population affordable in one query.

// yearBounds is the reusable WHERE fragment for a calendar-year filter. The
// two placeholders are year and year+1.
const yearBounds = `date_created >= make_timestamp(?, 1, 1, 0, 0, 0)
		  AND date_created < make_timestamp(?, 1, 1, 0, 0, 0)`

// TotalHoursByUser returns every user's total watch hours for a year,
// descending, ties broken by ascending user ID. Audio playback stays out of
// the ranking, matching the per-user totals.
func (db *DB) TotalHoursByUser(ctx context.Context, year int) ([]models.UserMetric, error) {
	query := fmt.Sprintf(`
		SELECT user_id, COALESCE(SUM(play_duration), 0) / 3600.0 AS value
		FROM playback_events
		WHERE item_type != 'Audio' AND %s
		GROUP BY user_id
		ORDER BY value DESC, user_id ASC
	`, yearBounds)
	return db.queryUserMetrics(ctx, query, year, year+1)
}

// MovieHoursByUser returns every user's movie watch hours for a year.
func (db *DB) MovieHoursByUser(ctx context.Context, year int) ([]models.UserMetric, error) {
	query := fmt.Sprintf(`
		SELECT user_id, COALESCE(SUM(play_duration), 0) / 3600.0 AS value
		FROM playback_events
		WHERE item_type = 'Movie' AND %s
		GROUP BY user_id
		ORDER BY value DESC, user_id ASC
	`, yearBounds)
	return db.queryUserMetrics(ctx, query, year, year+1)
}

// ShowHoursByUser returns every user's episode watch hours for a year.
func (db *DB) ShowHoursByUser(ctx context.Context, year int) ([]models.UserMetric, error) {
	query := fmt.Sprintf(`
		SELECT user_id, COALESCE(SUM(play_duration), 0) / 3600.0 AS value
		FROM playback_events
		WHERE item_type = 'Episode' AND %s
		GROUP BY user_id
		ORDER BY value DESC, user_id ASC
	`, yearBounds)
	return db.queryUserMetrics(ctx, query, year, year+1)
}

// UniqueMoviesByUser returns every user's distinct movie count for a year.
func (db *DB) UniqueMoviesByUser(ctx context.Context, year int) ([]models.UserMetric, error) {
	query := fmt.Sprintf(`
		SELECT user_id, CAST(COUNT(DISTINCT item_id) AS DOUBLE) AS value
		FROM playback_events
		WHERE item_type = 'Movie' AND %s
		GROUP BY user_id
		ORDER BY value DESC, user_id ASC
	`, yearBounds)
	return db.queryUserMetrics(ctx, query, year, year+1)
}

// UniqueShowsByUser returns every user's distinct series count for a year.
// Episodes resolve to their series via library metadata, falling back to the
// logged item name when the episode is no longer in the library.
func (db *DB) UniqueShowsByUser(ctx context.Context, year int) ([]models.UserMetric, error) {
	query := fmt.Sprintf(`
		SELECT pe.user_id, CAST(COUNT(DISTINCT COALESCE(li.series_name, pe.item_name)) AS DOUBLE) AS value
		FROM playback_events pe
		LEFT JOIN library_items li ON replace(lower(li.item_id), '-', '') = pe.item_id
		WHERE pe.item_type = 'Episode' AND %s
		GROUP BY pe.user_id
		ORDER BY value DESC, pe.user_id ASC
	`, yearBounds)
	return db.queryUserMetrics(ctx, query, year, year+1)
}

// PlaybackMethodsByUser returns every user's raw event counts split by
// playback method for a year.
func (db *DB) PlaybackMethodsByUser(ctx context.Context, year int) ([]models.UserMethodCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT user_id,
		       COUNT(CASE WHEN playback_method = 'DirectPlay' THEN 1 END),
		       COUNT(CASE WHEN playback_method = 'DirectStream'
		                    OR playback_method LIKE '%%v:direct%%' THEN 1 END),
		       COUNT(CASE WHEN playback_method LIKE 'Transcode%%'
		                   AND playback_method NOT LIKE '%%v:direct%%' THEN 1 END)
		FROM playback_events
		WHERE item_type != 'Audio' AND %s
		GROUP BY user_id
		ORDER BY user_id ASC
	`, yearBounds)

	rows, err := db.conn.QueryContext(ctx, query, year, year+1)
	if err != nil {
		return nil, fmt.Errorf("failed to query playback methods by user: %w", err)
	}
	defer closeRows(rows)

	var counts []models.UserMethodCounts
	for rows.Next() {
		var c models.UserMethodCounts
		if err := rows.Scan(&c.UserID, &c.Direct, &c.Remux, &c.Transcode); err != nil {
			return nil, fmt.Errorf("failed to scan method counts: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ServerStats computes the server-wide roll-up for a year across all users.
func (db *DB) ServerStats(ctx context.Context, year int, limit int) (result *models.ServerStats, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("server_stats", time.Since(start), err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stats := &models.ServerStats{Year: year}

	totalsQuery := fmt.Sprintf(`
		SELECT COALESCE(SUM(play_duration), 0) / 3600.0,
		       COUNT(*),
		       COUNT(DISTINCT user_id),
		       COUNT(DISTINCT CASE WHEN item_type = 'Movie' THEN item_id END),
		       COUNT(DISTINCT CASE WHEN item_type = 'Episode' THEN item_id END)
		FROM playback_events
		WHERE item_type != 'Audio' AND %s
	`, yearBounds)

	var totalHours float64
	err = db.conn.QueryRowContext(ctx, totalsQuery, year, year+1).Scan(
		&totalHours, &stats.TotalPlays, &stats.UniqueUsers, &stats.UniqueMovies, &stats.UniqueEpisodes)
	if err != nil {
		return nil, fmt.Errorf("failed to query server totals: %w", err)
	}
	stats.TotalHours = math.Round(totalHours*10) / 10

	moviesQuery := fmt.Sprintf(`
		SELECT pe.item_id, pe.item_name,
		       COALESCE(SUM(pe.play_duration), 0) / 3600.0 AS hours,
		       COUNT(*),
		       COUNT(DISTINCT pe.user_id),
		       COALESCE(MAX(li.tmdb_id), '')
		FROM playback_events pe
		LEFT JOIN library_items li ON replace(lower(li.item_id), '-', '') = pe.item_id
		WHERE pe.item_type = 'Movie' AND %s
		GROUP BY pe.item_id, pe.item_name
		ORDER BY hours DESC
		LIMIT ?
	`, yearBounds)

	movieRows, err := db.conn.QueryContext(ctx, moviesQuery, year, year+1, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query server top movies: %w", err)
	}
	defer closeRows(movieRows)

	for movieRows.Next() {
		var m models.ServerTopMovie
		var hours float64
		if err := movieRows.Scan(&m.ItemID, &m.ItemName, &hours, &m.TotalPlays, &m.UniqueViewers, &m.TmdbID); err != nil {
			return nil, fmt.Errorf("failed to scan server top movie: %w", err)
		}
		m.TotalHours = math.Round(hours*10) / 10
		stats.TopMovies = append(stats.TopMovies, m)
	}
	if err := movieRows.Err(); err != nil {
		return nil, err
	}

	showsQuery := fmt.Sprintf(`
		SELECT COALESCE(li.series_name, pe.item_name) AS series,
		       COALESCE(SUM(pe.play_duration), 0) / 3600.0 AS hours,
		       COUNT(DISTINCT pe.item_id),
		       COUNT(DISTINCT pe.user_id)
		FROM playback_events pe
		LEFT JOIN library_items li ON replace(lower(li.item_id), '-', '') = pe.item_id
		WHERE pe.item_type = 'Episode' AND %s
		GROUP BY series
		ORDER BY hours DESC
		LIMIT ?
	`, yearBounds)

	showRows, err := db.conn.QueryContext(ctx, showsQuery, year, year+1, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query server top shows: %w", err)
	}
	defer closeRows(showRows)

	for showRows.Next() {
		var s models.ServerTopShow
		var hours float64
		if err := showRows.Scan(&s.SeriesName, &hours, &s.TotalEpisodes, &s.UniqueViewers); err != nil {
			return nil, fmt.Errorf("failed to scan server top show: %w", err)
		}
		s.TotalHours = math.Round(hours*10) / 10
		stats.TopShows = append(stats.TopShows, s)
	}
	if err := showRows.Err(); err != nil {
		return nil, err
	}

	for i := range stats.TopShows {
		tmdb, err := db.SeriesProviderID(ctx, stats.TopShows[i].SeriesName)
		if err != nil {
			return nil, err
		}
		stats.TopShows[i].TmdbID = tmdb
	}

	return stats, nil
}

func (db *DB) queryUserMetrics(ctx context.Context, query string, args ...interface{}) ([]models.UserMetric, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user metrics: %w", err)
	}
	defer closeRows(rows)

	var out []models.UserMetric
	for rows.Next() {
		var m models.UserMetric
		if err := rows.Scan(&m.UserID, &m.Value); err != nil {
			return nil, fmt.Errorf("failed to scan user metric: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
