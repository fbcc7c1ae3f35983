// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package stats computes a user's viewing statistics from reconstructed
// sessions: totals, completion-aware top content, genres, time-of-day
// buckets, and device splits.
package stats

import (
	"context"
	"math"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// MetadataSource supplies library metadata for completion and genre math.
// Item IDs are in normalized form. Implementations return partial results
// for unknown items rather than errors.
type MetadataSource interface {
	ItemRuntimes(ctx context.Context, itemIDs []string) (map[string]int64, error)
	SeriesAverageRuntime(ctx context.Context, seriesName string) (int64, error)
	ItemGenres(ctx context.Context, itemIDs []string) (map[string][]string, error)
	SeriesGenres(ctx context.Context, seriesName string) ([]string, error)
	ItemProviderIDs(ctx context.Context, itemIDs []string) (map[string]string, error)
	SeriesProviderID(ctx context.Context, seriesName string) (string, error)
}

// Config carries the completion thresholds.
type Config struct {
	// FinishedThreshold is the watched-to-runtime ratio at or above which a
	// movie counts as finished.
	FinishedThreshold float64

	// AbandonedMinThreshold separates abandoned movies from accidental
	// taps.
	AbandonedMinThreshold float64
}

// DefaultConfig matches the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		FinishedThreshold:     0.8,
		AbandonedMinThreshold: 0.01,
	}
}

// Engine computes per-user statistics. Construct with New.
type Engine struct {
	meta  MetadataSource
	namer SeriesNamer
	cfg   Config
}

// New creates a stats engine. A nil namer falls back to the default
// pattern-based series namer.
func New(meta MetadataSource, namer SeriesNamer, cfg Config) *Engine {
	if namer == nil {
		namer = PatternSeriesNamer{}
	}
	return &Engine{meta: meta, namer: namer, cfg: cfg}
}

// Totals summarizes reconstructed sessions. Audio sessions must already be
// filtered out by the caller.
func (e *Engine) Totals(sessions []models.PlaybackSession) models.PlaybackStats {
	var stats models.PlaybackStats
	movies := make(map[string]struct{})
	episodes := make(map[string]struct{})

	for _, s := range sessions {
		stats.TotalPlays++
		stats.TotalSeconds += s.TotalSeconds
		switch s.ItemType {
		case models.MediaTypeMovie:
			stats.MoviePlays++
			movies[s.ItemID] = struct{}{}
		case models.MediaTypeEpisode:
			stats.EpisodePlays++
			episodes[s.ItemID] = struct{}{}
		}
	}

	stats.UniqueMovies = len(movies)
	stats.UniqueEpisodes = len(episodes)
	stats.TotalHours = round1(float64(stats.TotalSeconds) / 3600.0)
	stats.TotalDays = round1(float64(stats.TotalSeconds) / 86400.0)
	return stats
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// percentage returns part/total as a percentage with one decimal.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// minutes converts seconds to whole minutes, rounding to nearest.
func minutes(seconds int64) int {
	return int((seconds + 30) / 60)
}
