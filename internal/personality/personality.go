// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package personality assigns a viewer-personality label from watching
// habits. Every rule that fires contributes a candidate with a score; the
// highest-scoring candidate wins, so a dedicated night binger is a Night
// Owl before they are a Binge Watcher.
package personality

import (
	"math"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// Input is everything the classifier looks at for one user-year.
type Input struct {
	Stats                models.PlaybackStats
	Hourly               []models.HourlyStats
	DaysOfWeek           []models.DayOfWeekStats
	LongestMarathonHours float64
}

// features are the derived signals the rules read. Hour and day shares are
// fractions of total plays.
type features struct {
	totalPlays   int
	lateNight    float64 // 23:00-04:59
	earlyMorning float64 // 05:00-08:59
	workingHours float64 // 09:00-17:59
	lunch        float64 // 11:00-14:59
	evening      float64 // 18:00-22:59
	weekdayPlays int
	weekendPlays int
	peakHour     int
	peakDay      int
	peakDayPlays int
	totalHours   float64
	moviePlays   int
	episodePlays int
	marathonHrs  float64
}

type rule struct {
	label models.Personality
	score func(f features) (float64, bool)
}

// Rules in priority order; on equal scores the earlier rule wins. Most
// scores scale with how pronounced the habit is, so a 60% night watcher
// outranks rules with flat scores.
var rules = []rule{
	{models.PersonalityNightOwl, func(f features) (float64, bool) {
		return f.lateNight*100 + 30, f.lateNight > 0.35 || f.peakHour >= 23 || f.peakHour <= 3
	}},
	{models.PersonalityEarlyBird, func(f features) (float64, bool) {
		return f.earlyMorning*100 + 20, f.earlyMorning > 0.25 || (f.peakHour >= 5 && f.peakHour <= 8)
	}},
	{models.PersonalityWorkdaySlacker, func(f features) (float64, bool) {
		return f.workingHours*100 + 25, f.workingHours > 0.4 && f.weekdayPlays > f.weekendPlays
	}},
	{models.PersonalityWeekendWarrior, func(f features) (float64, bool) {
		share := float64(f.weekendPlays) / float64(f.weekendPlays+f.weekdayPlays)
		return share*100 + 15, float64(f.weekendPlays) > float64(f.weekdayPlays)*1.5
	}},
	{models.PersonalitySundayCouchPotato, func(f features) (float64, bool) {
		avg := float64(f.totalPlays) / 7.0
		share := float64(f.peakDayPlays) / float64(f.totalPlays)
		return share*100 + 20, f.peakDay == 0 && float64(f.peakDayPlays) > avg*1.8
	}},
	{models.PersonalityLunchBreakLegend, func(f features) (float64, bool) {
		return f.lunch*100 + 15, f.lunch > 0.3 || (f.peakHour >= 11 && f.peakHour <= 14)
	}},
	{models.PersonalityAfterHoursAddict, func(f features) (float64, bool) {
		return 35, f.peakHour >= 17 && f.peakHour <= 20
	}},
	{models.PersonalityPrimeTimePurist, func(f features) (float64, bool) {
		return f.evening*100 + 10, f.evening > 0.5
	}},
	{models.PersonalityTwilightViewer, func(f features) (float64, bool) {
		return 30, f.peakHour >= 17 && f.peakHour <= 19 && f.evening > 0.3
	}},
	{models.PersonalityMarathonMaster, func(f features) (float64, bool) {
		return f.marathonHrs*5 + 30, f.marathonHrs >= 8
	}},
	{models.PersonalityBingeWatcher, func(f features) (float64, bool) {
		ratio := float64(f.episodePlays) / float64(f.episodePlays+f.moviePlays)
		return ratio*50 + 20, f.episodePlays > f.moviePlays*3
	}},
	{models.PersonalityMovieBuff, func(f features) (float64, bool) {
		ratio := float64(f.moviePlays) / float64(f.episodePlays+f.moviePlays)
		return ratio*50 + 15, float64(f.moviePlays) > float64(f.episodePlays)*1.5
	}},
	{models.PersonalityDedicatedOne, func(f features) (float64, bool) {
		return math.Min(f.totalHours/10, 60), f.totalHours > 500
	}},
}

// Classify picks the personality for a user-year. Users with no plays are
// Casual Viewers.
func Classify(in Input) models.Personality {
	f := deriveFeatures(in)
	if f.totalPlays == 0 {
		return models.PersonalityCasualViewer
	}

	best := models.PersonalityCasualViewer
	bestScore := 0.0
	for _, r := range rules {
		score, fired := r.score(f)
		if fired && score > bestScore {
			best = r.label
			bestScore = score
		}
	}
	return best
}

func deriveFeatures(in Input) features {
	f := features{
		totalPlays:   in.Stats.TotalPlays,
		totalHours:   in.Stats.TotalHours,
		moviePlays:   in.Stats.MoviePlays,
		episodePlays: in.Stats.EpisodePlays,
		marathonHrs:  in.LongestMarathonHours,
	}
	if f.totalPlays == 0 {
		return f
	}

	total := float64(f.totalPlays)
	peakPlays := -1
	for _, h := range in.Hourly {
		share := float64(h.Plays) / total
		switch {
		case h.Hour >= 23 || h.Hour <= 4:
			f.lateNight += share
		case h.Hour >= 5 && h.Hour <= 8:
			f.earlyMorning += share
		}
		if h.Hour >= 9 && h.Hour <= 17 {
			f.workingHours += share
		}
		if h.Hour >= 11 && h.Hour <= 14 {
			f.lunch += share
		}
		if h.Hour >= 18 && h.Hour <= 22 {
			f.evening += share
		}
		if h.Plays > peakPlays {
			peakPlays = h.Plays
			f.peakHour = h.Hour
		}
	}

	peakDayPlays := -1
	for _, d := range in.DaysOfWeek {
		if d.Day == 0 || d.Day == 6 {
			f.weekendPlays += d.Plays
		} else {
			f.weekdayPlays += d.Plays
		}
		if d.Plays > peakDayPlays {
			peakDayPlays = d.Plays
			f.peakDay = d.Day
			f.peakDayPlays = d.Plays
		}
	}
	return f
}
