// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package models

// PlaybackStats summarizes a user's reconstructed viewing for one year.
// Counts are sessions, not raw log rows; audio is excluded throughout.
type PlaybackStats struct {
	TotalPlays     int     `json:"total_plays"`
	TotalSeconds   int64   `json:"total_seconds"`
	TotalHours     float64 `json:"total_hours"`
	TotalDays      float64 `json:"total_days"`
	MoviePlays     int     `json:"movie_plays"`
	EpisodePlays   int     `json:"episode_plays"`
	UniqueMovies   int     `json:"unique_movies"`
	UniqueEpisodes int     `json:"unique_episodes"`
}

// TopItem is one entry of a top-content or abandoned-content list.
//
// Plays carries the completion-aware watch estimate: for top movies and shows
// it is the estimated number of full watches (watched seconds / runtime,
// one decimal); for abandoned movies it is repurposed as the completion
// percentage (0-100, whole number).
type TopItem struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	ItemType     string  `json:"item_type"`
	Plays        float64 `json:"plays"`
	TotalMinutes int     `json:"total_minutes"`
	TmdbID       string  `json:"tmdb_id,omitempty"`
	SeriesName   string  `json:"series_name,omitempty"`
}

// GenreStats aggregates watch time for one genre across movies and shows.
type GenreStats struct {
	Genre        string `json:"genre"`
	MovieMinutes int    `json:"movie_minutes"`
	ShowMinutes  int    `json:"show_minutes"`
	TotalMinutes int    `json:"total_minutes"`
	MovieCount   int    `json:"movie_count"`
	ShowCount    int    `json:"show_count"`
}

// HourlyStats is one hour-of-day bucket (0-23, in the report timezone).
type HourlyStats struct {
	Hour    int `json:"hour"`
	Plays   int `json:"plays"`
	Minutes int `json:"minutes"`
}

// DayOfWeekStats is one day-of-week bucket (0 = Sunday).
type DayOfWeekStats struct {
	Day     int    `json:"day"`
	DayName string `json:"day_name"`
	Plays   int    `json:"plays"`
	Minutes int    `json:"minutes"`
}

// MonthlyStats is one calendar month bucket (1-12).
type MonthlyStats struct {
	Month     int     `json:"month"`
	MonthName string  `json:"month_name"`
	Plays     int     `json:"plays"`
	Hours     float64 `json:"hours"`
}

// DeviceStats is the share of raw playback events from one device.
type DeviceStats struct {
	DeviceName string  `json:"device_name"`
	Plays      int     `json:"plays"`
	Percentage float64 `json:"percentage"`
}

// ClientStats is the share of raw playback events from one client app.
type ClientStats struct {
	ClientName string  `json:"client_name"`
	Plays      int     `json:"plays"`
	Percentage float64 `json:"percentage"`
}

// PlaybackMethodStats splits raw playback events into direct play, remux
// (video direct, audio transcoded), and full transcode.
type PlaybackMethodStats struct {
	Direct              int     `json:"direct"`
	Remux               int     `json:"remux"`
	Transcode           int     `json:"transcode"`
	DirectPercentage    float64 `json:"direct_percentage"`
	RemuxPercentage     float64 `json:"remux_percentage"`
	TranscodePercentage float64 `json:"transcode_percentage"`
}

// DayNames maps day-of-week integers (0 = Sunday) to English day names.
var DayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// MonthNames maps month integers (1-12) to English month names; index 0 is
// unused.
var MonthNames = []string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}
