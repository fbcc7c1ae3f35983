// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package compare

import (
	"context"
	"testing"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// fakePopulation returns fixed metric sets.
type fakePopulation struct {
	hours        []models.UserMetric
	movieHours   []models.UserMetric
	showHours    []models.UserMetric
	uniqueMovies []models.UserMetric
	uniqueShows  []models.UserMetric
	methods      []models.UserMethodCounts
}

func (f *fakePopulation) TotalHoursByUser(context.Context, int) ([]models.UserMetric, error) {
	return f.hours, nil
}
func (f *fakePopulation) MovieHoursByUser(context.Context, int) ([]models.UserMetric, error) {
	return f.movieHours, nil
}
func (f *fakePopulation) ShowHoursByUser(context.Context, int) ([]models.UserMetric, error) {
	return f.showHours, nil
}
func (f *fakePopulation) UniqueMoviesByUser(context.Context, int) ([]models.UserMetric, error) {
	return f.uniqueMovies, nil
}
func (f *fakePopulation) UniqueShowsByUser(context.Context, int) ([]models.UserMetric, error) {
	return f.uniqueShows, nil
}
func (f *fakePopulation) PlaybackMethodsByUser(context.Context, int) ([]models.UserMethodCounts, error) {
	return f.methods, nil
}

func metrics(values map[string]float64) []models.UserMetric {
	var out []models.UserMetric
	for id, v := range values {
		out = append(out, models.UserMetric{UserID: id, Value: v})
	}
	return out
}

func TestMetricForFourUserPopulation(t *testing.T) {
	// Population 100, 80, 50, 10: the 80-hour viewer ranks 2nd and lands
	// at the 67th percentile.
	pop := metrics(map[string]float64{"u1": 100, "u2": 80, "u3": 50, "u4": 10})

	got := MetricFor(pop, "u2")
	if got.Rank != 2 {
		t.Errorf("Rank = %d, want 2", got.Rank)
	}
	if got.Percentile != 67 {
		t.Errorf("Percentile = %d, want 67", got.Percentile)
	}
	if got.Value != 80 {
		t.Errorf("Value = %v, want 80", got.Value)
	}
	if got.Max != 100 {
		t.Errorf("Max = %v, want 100", got.Max)
	}
	if got.Average != 60 {
		t.Errorf("Average = %v, want 60", got.Average)
	}
}

func TestMetricForTopAndBottom(t *testing.T) {
	pop := metrics(map[string]float64{"u1": 100, "u2": 80, "u3": 50, "u4": 10})

	top := MetricFor(pop, "u1")
	if top.Rank != 1 || top.Percentile != 100 {
		t.Errorf("top = rank %d pct %d, want 1/100", top.Rank, top.Percentile)
	}

	bottom := MetricFor(pop, "u4")
	if bottom.Rank != 4 || bottom.Percentile != 0 {
		t.Errorf("bottom = rank %d pct %d, want 4/0", bottom.Rank, bottom.Percentile)
	}
}

func TestMetricForAbsentUser(t *testing.T) {
	pop := metrics(map[string]float64{"u1": 100, "u2": 80})

	got := MetricFor(pop, "ghost")
	if got.Rank != 3 {
		t.Errorf("Rank = %d, want 3 (absent ranks after everyone)", got.Rank)
	}
	if got.Value != 0 {
		t.Errorf("Value = %v, want 0", got.Value)
	}
	if got.Percentile != 0 {
		t.Errorf("Percentile = %d, want 0 (clamped)", got.Percentile)
	}
}

func TestMetricForSingleUser(t *testing.T) {
	got := MetricFor(metrics(map[string]float64{"only": 42}), "only")
	if got.Rank != 1 || got.Percentile != 100 {
		t.Errorf("single-user = rank %d pct %d, want 1/100", got.Rank, got.Percentile)
	}
}

func TestMetricForTieBreak(t *testing.T) {
	pop := []models.UserMetric{
		{UserID: "bbb", Value: 50},
		{UserID: "aaa", Value: 50},
	}

	// Equal values order by ascending user ID, deterministically.
	a := MetricFor(pop, "aaa")
	b := MetricFor(pop, "bbb")
	if a.Rank != 1 || b.Rank != 2 {
		t.Errorf("ranks = %d/%d, want aaa 1, bbb 2", a.Rank, b.Rank)
	}
}

func TestCompare(t *testing.T) {
	pop := &fakePopulation{
		hours:        metrics(map[string]float64{"u1": 100, "u2": 80, "u3": 50, "u4": 10}),
		movieHours:   metrics(map[string]float64{"u1": 40, "u2": 60}),
		showHours:    metrics(map[string]float64{"u1": 60, "u2": 20}),
		uniqueMovies: metrics(map[string]float64{"u1": 12, "u2": 30}),
		uniqueShows:  metrics(map[string]float64{"u1": 8, "u2": 4}),
		methods: []models.UserMethodCounts{
			{UserID: "u1", Direct: 90, Remux: 10, Transcode: 0},
			{UserID: "u2", Direct: 20, Remux: 30, Transcode: 50},
		},
	}

	got, err := Compare(context.Background(), pop, "u2", 2025)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if got.TotalUsers != 4 {
		t.Errorf("TotalUsers = %d, want 4", got.TotalUsers)
	}
	if got.TotalHours.Rank != 2 || got.TotalHours.Percentile != 67 {
		t.Errorf("TotalHours = rank %d pct %d, want 2/67", got.TotalHours.Rank, got.TotalHours.Percentile)
	}
	if got.MovieHours.Rank != 1 {
		t.Errorf("MovieHours rank = %d, want 1", got.MovieHours.Rank)
	}
	if got.DirectPercentage.Value != 20.0 {
		t.Errorf("DirectPercentage value = %v, want 20.0", got.DirectPercentage.Value)
	}
	// u1 is friendlier (100% vs 50%), so u2 ranks second.
	if got.ServerFriendlinessRank != 2 {
		t.Errorf("ServerFriendlinessRank = %d, want 2", got.ServerFriendlinessRank)
	}
}

func TestRanking(t *testing.T) {
	pop := &fakePopulation{
		hours: metrics(map[string]float64{"u1": 100, "u2": 80, "u3": 50, "u4": 10}),
	}

	got, err := Ranking(context.Background(), pop, "u2", 2025)
	if err != nil {
		t.Fatalf("Ranking failed: %v", err)
	}
	if got.Rank != 2 || got.TotalUsers != 4 || got.Percentile != 67 {
		t.Errorf("ranking = %+v, want rank 2 of 4 at 67", got)
	}
	if got.TopViewerHours != 100 {
		t.Errorf("TopViewerHours = %v, want 100", got.TopViewerHours)
	}
}
