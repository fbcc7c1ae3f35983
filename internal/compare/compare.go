// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package compare ranks one user against the whole population of viewers
// for a year: watch hours, unique content, and playback-method shares.
package compare

import (
	"context"
	"math"
	"sort"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// Population supplies per-user aggregates for a year. Implemented by the
// database package.
type Population interface {
	TotalHoursByUser(ctx context.Context, year int) ([]models.UserMetric, error)
	MovieHoursByUser(ctx context.Context, year int) ([]models.UserMetric, error)
	ShowHoursByUser(ctx context.Context, year int) ([]models.UserMetric, error)
	UniqueMoviesByUser(ctx context.Context, year int) ([]models.UserMetric, error)
	UniqueShowsByUser(ctx context.Context, year int) ([]models.UserMetric, error)
	PlaybackMethodsByUser(ctx context.Context, year int) ([]models.UserMethodCounts, error)
}

// Compare builds the full cross-user comparison for one user.
func Compare(ctx context.Context, pop Population, userID string, year int) (*models.UserComparison, error) {
	userID = models.NormalizeID(userID)

	totalHours, err := pop.TotalHoursByUser(ctx, year)
	if err != nil {
		return nil, err
	}
	movieHours, err := pop.MovieHoursByUser(ctx, year)
	if err != nil {
		return nil, err
	}
	showHours, err := pop.ShowHoursByUser(ctx, year)
	if err != nil {
		return nil, err
	}
	uniqueMovies, err := pop.UniqueMoviesByUser(ctx, year)
	if err != nil {
		return nil, err
	}
	uniqueShows, err := pop.UniqueShowsByUser(ctx, year)
	if err != nil {
		return nil, err
	}
	methods, err := pop.PlaybackMethodsByUser(ctx, year)
	if err != nil {
		return nil, err
	}

	direct, remux, transcode, friendly := methodMetrics(methods)

	comparison := &models.UserComparison{
		TotalHours:          MetricFor(totalHours, userID),
		MovieHours:          MetricFor(movieHours, userID),
		ShowHours:           MetricFor(showHours, userID),
		UniqueMovies:        MetricFor(uniqueMovies, userID),
		UniqueShows:         MetricFor(uniqueShows, userID),
		DirectPercentage:    MetricFor(direct, userID),
		RemuxPercentage:     MetricFor(remux, userID),
		TranscodePercentage: MetricFor(transcode, userID),
		TotalUsers:          len(totalHours),
	}

	friendliness := MetricFor(friendly, userID)
	comparison.ServerFriendlinessRank = friendliness.Rank
	comparison.ServerFriendlinessPercentile = friendliness.Percentile

	return comparison, nil
}

// Ranking builds the compact total-hours rank summary for the report cover.
func Ranking(ctx context.Context, pop Population, userID string, year int) (*models.UserRanking, error) {
	totalHours, err := pop.TotalHoursByUser(ctx, year)
	if err != nil {
		return nil, err
	}
	metric := MetricFor(totalHours, models.NormalizeID(userID))
	return &models.UserRanking{
		Rank:           metric.Rank,
		TotalUsers:     len(totalHours),
		Percentile:     metric.Percentile,
		TopViewerHours: metric.Max,
	}, nil
}

// MetricFor computes one metric's comparison tuple for a user. The
// population is ordered descending by value with ties broken by ascending
// user ID; a user absent from the population ranks last at N+1 with value
// zero.
func MetricFor(metrics []models.UserMetric, userID string) models.MetricComparison {
	ordered := make([]models.UserMetric, len(metrics))
	copy(ordered, metrics)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Value != ordered[j].Value {
			return ordered[i].Value > ordered[j].Value
		}
		return ordered[i].UserID < ordered[j].UserID
	})

	n := len(ordered)
	result := models.MetricComparison{Rank: n + 1}
	var sum float64
	for i, m := range ordered {
		sum += m.Value
		if m.Value > result.Max {
			result.Max = m.Value
		}
		if m.UserID == userID {
			result.Rank = i + 1
			result.Value = m.Value
		}
	}
	if n > 0 {
		result.Average = math.Round(sum/float64(n)*10) / 10
	}
	result.Percentile = percentile(result.Rank, n)
	return result
}

// percentile converts a 1-based rank to a 0-100 percentile. Rank 1 of N is
// 100; the last rank is 0. A population of one (or none) is always 100.
func percentile(rank, n int) int {
	if n <= 1 {
		return 100
	}
	p := int(math.Round(float64(n-rank) / float64(n-1) * 100))
	if p < 0 {
		return 0
	}
	return p
}

// methodMetrics converts raw per-user method counts into percentage
// populations. Server friendliness is the share that required no video
// re-encode (direct plus remux).
func methodMetrics(counts []models.UserMethodCounts) (direct, remux, transcode, friendly []models.UserMetric) {
	for _, c := range counts {
		total := c.Direct + c.Remux + c.Transcode
		if total == 0 {
			continue
		}
		pct := func(part int) float64 {
			return math.Round(float64(part)/float64(total)*1000) / 10
		}
		direct = append(direct, models.UserMetric{UserID: c.UserID, Value: pct(c.Direct)})
		remux = append(remux, models.UserMetric{UserID: c.UserID, Value: pct(c.Remux)})
		transcode = append(transcode, models.UserMetric{UserID: c.UserID, Value: pct(c.Transcode)})
		friendly = append(friendly, models.UserMetric{UserID: c.UserID, Value: pct(c.Direct + c.Remux)})
	}
	return direct, remux, transcode, friendly
}
