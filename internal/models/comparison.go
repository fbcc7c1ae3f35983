// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package models

// UserMetric is one user's value for a single population metric, as supplied
// by the population lookup (sorted descending by value).
type UserMetric struct {
	UserID string  `json:"user_id"`
	Value  float64 `json:"value"`
}

// UserMethodCounts is one user's raw playback-method event counts for a year.
type UserMethodCounts struct {
	UserID    string `json:"user_id"`
	Direct    int    `json:"direct"`
	Remux     int    `json:"remux"`
	Transcode int    `json:"transcode"`
}

// MetricComparison is one metric's rank/percentile tuple for the target user
// plus population-wide average and maximum.
type MetricComparison struct {
	Value      float64 `json:"value"`
	Rank       int     `json:"rank"`
	Percentile int     `json:"percentile"`
	Average    float64 `json:"average"`
	Max        float64 `json:"max"`
}

// UserComparison bundles how one user compares to the whole population for a
// year. Rank 1 is the heaviest viewer; percentile 100 is best.
type UserComparison struct {
	TotalHours   MetricComparison `json:"total_hours"`
	MovieHours   MetricComparison `json:"movie_hours"`
	UniqueMovies MetricComparison `json:"unique_movies"`
	ShowHours    MetricComparison `json:"show_hours"`
	UniqueShows  MetricComparison `json:"unique_shows"`

	DirectPercentage    MetricComparison `json:"direct_percentage"`
	RemuxPercentage     MetricComparison `json:"remux_percentage"`
	TranscodePercentage MetricComparison `json:"transcode_percentage"`

	// Server friendliness is the share of playback that did not require
	// server-side transcoding (direct + remux), ranked like any other metric.
	ServerFriendlinessRank       int `json:"server_friendliness_rank"`
	ServerFriendlinessPercentile int `json:"server_friendliness_percentile"`

	TotalUsers int `json:"total_users"`
}

// UserRanking is a compact rank summary used on the report cover.
type UserRanking struct {
	Rank           int     `json:"rank"`
	TotalUsers     int     `json:"total_users"`
	Percentile     int     `json:"percentile"`
	TopViewerHours float64 `json:"top_viewer_hours"`
}
