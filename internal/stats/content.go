// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package stats

import (
	"context"
	"math"
	"regexp"
	"sort"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// SeriesNamer resolves the series a logged episode belongs to. The playback
// log only records episode display names, so series attribution is a
// strategy, not a lookup.
type SeriesNamer interface {
	SeriesName(episodeName string) string
}

// PatternSeriesNamer extracts the series from display names shaped like
// "Series Name - S01E04". Names that do not match are treated as their own
// series.
type PatternSeriesNamer struct{}

var episodePattern = regexp.MustCompile(`(?i)^(.+?)\s*-\s*s\d+e\d+`)

// SeriesName implements SeriesNamer.
func (PatternSeriesNamer) SeriesName(episodeName string) string {
	if m := episodePattern.FindStringSubmatch(episodeName); m != nil {
		return m[1]
	}
	return episodeName
}

// movieTieEpsilon and showTieEpsilon define when two watch estimates are
// close enough to fall back to raw watched seconds for ordering. Shows get
// the looser bound because episode-count estimates are noisier.
const (
	movieTieEpsilon = 0.1
	showTieEpsilon  = 0.5
)

type scoredItem struct {
	models.TopItem
	watches      float64
	totalSeconds int64
	hasRuntime   bool
}

// TopMovies returns the user's finished movies ranked by estimated full
// watches: watched seconds divided by runtime. Only movies at or above the
// finished threshold qualify; without a known runtime a movie cannot be
// verified as finished and is excluded.
func (e *Engine) TopMovies(ctx context.Context, items []models.ItemStats, limit int) ([]models.TopItem, error) {
	scored, err := e.scoreMovies(ctx, items)
	if err != nil {
		return nil, err
	}

	var finished []scoredItem
	for _, s := range scored {
		if s.hasRuntime && s.watches >= e.cfg.FinishedThreshold {
			finished = append(finished, s)
		}
	}

	sortScored(finished, movieTieEpsilon)
	return collectTop(finished, limit, func(s scoredItem) float64 {
		return round1(s.watches)
	}), nil
}

// AbandonedMovies returns movies started but never finished: completion in
// [abandoned-min, finished) as a fraction of runtime. The Plays field
// carries the completion percentage. Accidental taps below the minimum are
// dropped, as are movies without a known runtime. Ordered by completion
// descending: the ones that got closest to the end come first.
func (e *Engine) AbandonedMovies(ctx context.Context, items []models.ItemStats, limit int) ([]models.TopItem, error) {
	scored, err := e.scoreMovies(ctx, items)
	if err != nil {
		return nil, err
	}

	var abandoned []scoredItem
	for _, s := range scored {
		if s.hasRuntime && s.watches >= e.cfg.AbandonedMinThreshold && s.watches < e.cfg.FinishedThreshold {
			abandoned = append(abandoned, s)
		}
	}

	sort.SliceStable(abandoned, func(i, j int) bool {
		return abandoned[i].watches > abandoned[j].watches
	})
	return collectTop(abandoned, limit, func(s scoredItem) float64 {
		return math.Round(s.watches * 100)
	}), nil
}

// FinishedMovieCount returns how many distinct movies the user finished.
func (e *Engine) FinishedMovieCount(ctx context.Context, items []models.ItemStats) (int, error) {
	scored, err := e.scoreMovies(ctx, items)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, s := range scored {
		if s.hasRuntime && s.watches >= e.cfg.FinishedThreshold {
			count++
		}
	}
	return count, nil
}

// TopShows returns series ranked by estimated episode watches: total
// watched seconds divided by the series' average episode runtime. Series
// with unknown runtimes fall back to raw session count, so a rewatch still
// counts every pass.
func (e *Engine) TopShows(ctx context.Context, items []models.ItemStats, limit int) ([]models.TopItem, error) {
	type seriesAgg struct {
		name         string
		totalSeconds int64
		sessionCount int
		firstItemID  string
	}

	index := make(map[string]int)
	var series []*seriesAgg
	for _, item := range items {
		if item.ItemType != models.MediaTypeEpisode {
			continue
		}
		name := e.namer.SeriesName(item.ItemName)
		i, ok := index[name]
		if !ok {
			i = len(series)
			index[name] = i
			series = append(series, &seriesAgg{
				name:        name,
				firstItemID: item.ItemID,
			})
		}
		series[i].totalSeconds += item.TotalSeconds
		series[i].sessionCount += item.SessionCount
	}

	scored := make([]scoredItem, 0, len(series))
	for _, agg := range series {
		avgRuntime, err := e.meta.SeriesAverageRuntime(ctx, agg.name)
		if err != nil {
			return nil, err
		}
		watches := float64(agg.sessionCount)
		if avgRuntime > 0 {
			watches = float64(agg.totalSeconds) / float64(avgRuntime)
		}

		tmdbID, err := e.meta.SeriesProviderID(ctx, agg.name)
		if err != nil {
			return nil, err
		}

		scored = append(scored, scoredItem{
			TopItem: models.TopItem{
				ItemID:       agg.firstItemID,
				ItemName:     agg.name,
				ItemType:     "Series",
				TotalMinutes: minutes(agg.totalSeconds),
				TmdbID:       tmdbID,
				SeriesName:   agg.name,
			},
			watches:      watches,
			totalSeconds: agg.totalSeconds,
		})
	}

	sortScored(scored, showTieEpsilon)
	return collectTop(scored, limit, func(s scoredItem) float64 {
		return round1(s.watches)
	}), nil
}

// TopGenres aggregates watch time per genre across movies and series.
// Ordered by total minutes descending.
func (e *Engine) TopGenres(ctx context.Context, items []models.ItemStats, limit int) ([]models.GenreStats, error) {
	index := make(map[string]int)
	var genres []models.GenreStats
	bucket := func(name string) *models.GenreStats {
		i, ok := index[name]
		if !ok {
			i = len(genres)
			index[name] = i
			genres = append(genres, models.GenreStats{Genre: name})
		}
		return &genres[i]
	}

	var movieIDs []string
	for _, item := range items {
		if item.ItemType == models.MediaTypeMovie {
			movieIDs = append(movieIDs, item.ItemID)
		}
	}
	movieGenres, err := e.meta.ItemGenres(ctx, movieIDs)
	if err != nil {
		return nil, err
	}

	seriesSeconds := make(map[string]int64)
	for _, item := range items {
		switch item.ItemType {
		case models.MediaTypeMovie:
			for _, g := range movieGenres[item.ItemID] {
				b := bucket(g)
				b.MovieMinutes += minutes(item.TotalSeconds)
				b.MovieCount++
			}
		case models.MediaTypeEpisode:
			name := e.namer.SeriesName(item.ItemName)
			seriesSeconds[name] += item.TotalSeconds
		}
	}

	// Each series contributes one show to every genre it carries,
	// regardless of how many episodes were watched.
	for name, seconds := range seriesSeconds {
		list, err := e.meta.SeriesGenres(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, g := range list {
			b := bucket(g)
			b.ShowMinutes += minutes(seconds)
			b.ShowCount++
		}
	}

	for i := range genres {
		genres[i].TotalMinutes = genres[i].MovieMinutes + genres[i].ShowMinutes
	}
	sort.SliceStable(genres, func(i, j int) bool {
		return genres[i].TotalMinutes > genres[j].TotalMinutes
	})
	if limit > 0 && len(genres) > limit {
		genres = genres[:limit]
	}
	return genres, nil
}

// scoreMovies computes the watch estimate for every movie item. Movies
// without a positive known runtime get no estimate; callers must check
// hasRuntime before classifying them as finished or abandoned.
func (e *Engine) scoreMovies(ctx context.Context, items []models.ItemStats) ([]scoredItem, error) {
	var movieIDs []string
	for _, item := range items {
		if item.ItemType == models.MediaTypeMovie {
			movieIDs = append(movieIDs, item.ItemID)
		}
	}
	if len(movieIDs) == 0 {
		return nil, nil
	}

	runtimes, err := e.meta.ItemRuntimes(ctx, movieIDs)
	if err != nil {
		return nil, err
	}
	providerIDs, err := e.meta.ItemProviderIDs(ctx, movieIDs)
	if err != nil {
		return nil, err
	}

	var scored []scoredItem
	for _, item := range items {
		if item.ItemType != models.MediaTypeMovie {
			continue
		}
		var watches float64
		var hasRuntime bool
		if runtime := runtimes[item.ItemID]; runtime > 0 {
			watches = float64(item.TotalSeconds) / float64(runtime)
			hasRuntime = true
		}
		scored = append(scored, scoredItem{
			TopItem: models.TopItem{
				ItemID:       item.ItemID,
				ItemName:     item.ItemName,
				ItemType:     item.ItemType,
				TotalMinutes: minutes(item.TotalSeconds),
				TmdbID:       providerIDs[item.ItemID],
			},
			watches:      watches,
			totalSeconds: item.TotalSeconds,
			hasRuntime:   hasRuntime,
		})
	}
	return scored, nil
}

// sortScored orders by watch estimate descending; estimates within epsilon
// of each other are treated as tied and fall back to watched seconds.
func sortScored(scored []scoredItem, epsilon float64) {
	sort.SliceStable(scored, func(i, j int) bool {
		diff := scored[i].watches - scored[j].watches
		if math.Abs(diff) <= epsilon {
			return scored[i].totalSeconds > scored[j].totalSeconds
		}
		return diff > 0
	})
}

func collectTop(scored []scoredItem, limit int, plays func(scoredItem) float64) []models.TopItem {
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	result := make([]models.TopItem, 0, len(scored))
	for _, s := range scored {
		item := s.TopItem
		item.Plays = plays(s)
		result = append(result, item)
	}
	return result
}
