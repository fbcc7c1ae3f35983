// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package models

import "time"

// Personality is a viewer-personality label derived from watching habits.
type Personality string

// Personality labels. CasualViewer is the neutral default when no scoring
// rule fires.
const (
	PersonalityNightOwl          Personality = "Night Owl"
	PersonalityEarlyBird         Personality = "Early Bird"
	PersonalityBingeWatcher      Personality = "Binge Watcher"
	PersonalityMovieBuff         Personality = "Movie Buff"
	PersonalityCasualViewer      Personality = "Casual Viewer"
	PersonalityMarathonMaster    Personality = "Marathon Master"
	PersonalityWeekendWarrior    Personality = "Weekend Warrior"
	PersonalityWorkdaySlacker    Personality = "Workday Slacker"
	PersonalityLunchBreakLegend  Personality = "Lunch Break Legend"
	PersonalityAfterHoursAddict  Personality = "After Hours Addict"
	PersonalitySundayCouchPotato Personality = "Sunday Couch Potato"
	PersonalityTwilightViewer    Personality = "Twilight Viewer"
	PersonalityDedicatedOne      Personality = "The Dedicated One"
	PersonalityPrimeTimePurist   Personality = "Prime Time Purist"
)

// RewindReport is a complete year-in-review report for one user. It is
// recomputed from the raw playback log on every request; nothing here is
// persisted.
type RewindReport struct {
	ID          string    `json:"id"`
	Year        int       `json:"year"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Timezone    string    `json:"timezone"`
	GeneratedAt time.Time `json:"generated_at"`

	Stats              PlaybackStats       `json:"stats"`
	TopMovies          []TopItem           `json:"top_movies"`
	AbandonedMovies    []TopItem           `json:"abandoned_movies"`
	FinishedMovieCount int                 `json:"finished_movie_count"`
	TopShows           []TopItem           `json:"top_shows"`
	TopGenres          []GenreStats        `json:"top_genres"`
	Hourly             []HourlyStats       `json:"hourly"`
	DaysOfWeek         []DayOfWeekStats    `json:"days_of_week"`
	Monthly            []MonthlyStats      `json:"monthly"`
	Devices            []DeviceStats       `json:"devices"`
	Clients            []ClientStats       `json:"clients"`
	PlaybackMethods    PlaybackMethodStats `json:"playback_methods"`
	Marathons          MarathonSummary     `json:"marathons"`
	TopMarathons       []Marathon          `json:"top_marathons"`
	Comparison         *UserComparison     `json:"comparison,omitempty"`
	Ranking            *UserRanking        `json:"ranking,omitempty"`
	Personality        Personality         `json:"personality"`
}

// ServerTopMovie is one entry of the server-wide top movie list.
type ServerTopMovie struct {
	ItemID        string  `json:"item_id"`
	ItemName      string  `json:"item_name"`
	TotalHours    float64 `json:"total_hours"`
	TotalPlays    int     `json:"total_plays"`
	UniqueViewers int     `json:"unique_viewers"`
	TmdbID        string  `json:"tmdb_id,omitempty"`
}

// ServerTopShow is one entry of the server-wide top show list.
type ServerTopShow struct {
	SeriesName    string  `json:"series_name"`
	TotalHours    float64 `json:"total_hours"`
	TotalEpisodes int     `json:"total_episodes"`
	UniqueViewers int     `json:"unique_viewers"`
	TmdbID        string  `json:"tmdb_id,omitempty"`
}

// ServerStats is the server-wide roll-up for a year across all users.
type ServerStats struct {
	Year           int              `json:"year"`
	TotalHours     float64          `json:"total_hours"`
	TotalPlays     int              `json:"total_plays"`
	UniqueUsers    int              `json:"unique_users"`
	UniqueMovies   int              `json:"unique_movies"`
	UniqueEpisodes int              `json:"unique_episodes"`
	TopMovies      []ServerTopMovie `json:"top_movies"`
	TopShows       []ServerTopShow  `json:"top_shows"`
}
