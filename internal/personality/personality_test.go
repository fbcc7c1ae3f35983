// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package personality

import (
	"testing"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// hourly builds a 24-bucket histogram from a map of hour to plays.
func hourly(plays map[int]int) []models.HourlyStats {
	buckets := make([]models.HourlyStats, 24)
	for h := range buckets {
		buckets[h] = models.HourlyStats{Hour: h, Plays: plays[h]}
	}
	return buckets
}

// days builds a 7-bucket histogram from a map of weekday to plays.
func days(plays map[int]int) []models.DayOfWeekStats {
	buckets := make([]models.DayOfWeekStats, 7)
	for d := range buckets {
		buckets[d] = models.DayOfWeekStats{Day: d, DayName: models.DayNames[d], Plays: plays[d]}
	}
	return buckets
}

// spreadHours distributes n plays thinly across the day so no single
// time-of-day rule accumulates a dominant share. The first bucket with
// plays is hour 2, so the peak-hour rules resolve to Night Owl at a low
// score.
func spreadHours(n int) map[int]int {
	slots := []int{2, 6, 8, 10, 13, 16, 19, 21, 22, 23}
	out := make(map[int]int, len(slots))
	for _, h := range slots {
		out[h] = n / len(slots)
	}
	return out
}

func total(m map[int]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func TestClassifyNoPlays(t *testing.T) {
	got := Classify(Input{Hourly: hourly(nil), DaysOfWeek: days(nil)})
	if got != models.PersonalityCasualViewer {
		t.Errorf("got %q, want Casual Viewer for empty year", got)
	}
}

func TestClassifyNightOwl(t *testing.T) {
	hours := map[int]int{0: 30, 1: 25, 2: 15, 14: 30}
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: total(hours), MoviePlays: 40, EpisodePlays: 60},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{1: total(hours)}),
	}
	// Late-night share 0.7 -> score 100.
	if got := Classify(in); got != models.PersonalityNightOwl {
		t.Errorf("got %q, want Night Owl", got)
	}
}

func TestClassifyNightOwlOutscoresAfterHours(t *testing.T) {
	// Peak hour 18 fires After Hours Addict at its flat 35, but almost half
	// the plays are after 23:00: Night Owl's share-scaled score (~75) wins
	// even though 18:00 is the single busiest hour.
	hours := map[int]int{18: 5, 23: 3, 0: 2, 10: 1}
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: total(hours)},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{2: total(hours)}),
	}
	if got := Classify(in); got != models.PersonalityNightOwl {
		t.Errorf("got %q, want Night Owl", got)
	}
}

func TestClassifyEarlyBird(t *testing.T) {
	hours := map[int]int{5: 30, 6: 30, 7: 10, 10: 30}
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: total(hours)},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{2: total(hours)}),
	}
	// Early-morning share 0.7 -> score 90; working hours stay under 0.4.
	if got := Classify(in); got != models.PersonalityEarlyBird {
		t.Errorf("got %q, want Early Bird", got)
	}
}

func TestClassifyEarlyBirdByPeakHour(t *testing.T) {
	// Early-morning share is exactly 0.25, below the ratio gate, but the
	// peak hour falls at 06:00 so the rule still fires.
	hours := map[int]int{6: 25, 10: 25, 21: 25, 23: 25}
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: total(hours)},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{3: total(hours)}),
	}
	if got := Classify(in); got != models.PersonalityEarlyBird {
		t.Errorf("got %q, want Early Bird via peak hour", got)
	}
}

func TestClassifyLunchBreakLegendByPeakHour(t *testing.T) {
	// Lunch share at the 0.3 boundary does not pass the ratio gate, but
	// noon is the peak hour.
	hours := map[int]int{12: 30, 21: 25, 23: 25, 6: 20}
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: total(hours)},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{3: total(hours)}),
	}
	if got := Classify(in); got != models.PersonalityLunchBreakLegend {
		t.Errorf("got %q, want Lunch Break Legend via peak hour", got)
	}
}

func TestClassifyWeekendWarrior(t *testing.T) {
	hours := map[int]int{16: 100}
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: 100},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{6: 45, 0: 35, 2: 20}),
	}
	// Weekend 80 > weekday 20 * 1.5; score 0.8*100+15 = 95. The
	// working-hours rule loses on its weekday>weekend condition, and
	// Saturday as peak day keeps the Sunday rule quiet.
	if got := Classify(in); got != models.PersonalityWeekendWarrior {
		t.Errorf("got %q, want Weekend Warrior", got)
	}
}

func TestClassifyMarathonMasterScoresAboveAfterHours(t *testing.T) {
	hours := map[int]int{18: 60, 12: 40}
	in := Input{
		Stats:                models.PlaybackStats{TotalPlays: 100},
		Hourly:               hourly(hours),
		DaysOfWeek:           days(map[int]int{3: 100}),
		LongestMarathonHours: 9,
	}
	// Marathon score 9*5+30 = 75 beats After Hours Addict's 35 and Prime
	// Time Purist's 70.
	if got := Classify(in); got != models.PersonalityMarathonMaster {
		t.Errorf("got %q, want Marathon Master", got)
	}
}

func TestClassifyBingeWatcher(t *testing.T) {
	hours := spreadHours(100)
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: 100, EpisodePlays: 95, MoviePlays: 5, TotalHours: 80},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{0: 15, 1: 15, 2: 14, 3: 14, 4: 14, 5: 14, 6: 14}),
	}
	// Episode ratio 0.95 -> score 67.5, the strongest candidate.
	if got := Classify(in); got != models.PersonalityBingeWatcher {
		t.Errorf("got %q, want Binge Watcher", got)
	}
}

func TestClassifyBingeRatioIgnoresOtherPlays(t *testing.T) {
	// The episode ratio is taken over episodes plus movies only; a year
	// padded with other play counts must not dilute it.
	hours := spreadHours(100)
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: 300, EpisodePlays: 95, MoviePlays: 5},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{0: 45, 1: 45, 2: 42, 3: 42, 4: 42, 5: 42, 6: 42}),
	}
	// 95/(95+5) -> score 67.5; over total plays it would drop to ~35.8 and
	// lose to the Night Owl peak fallback at 50.
	if got := Classify(in); got != models.PersonalityBingeWatcher {
		t.Errorf("got %q, want Binge Watcher", got)
	}
}

func TestClassifyMovieBuff(t *testing.T) {
	hours := spreadHours(100)
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: 100, MoviePlays: 90, EpisodePlays: 10},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{0: 15, 1: 15, 2: 14, 3: 14, 4: 14, 5: 14, 6: 14}),
	}
	// Movie ratio 0.9 -> score 60 beats the schedule rules.
	if got := Classify(in); got != models.PersonalityMovieBuff {
		t.Errorf("got %q, want Movie Buff", got)
	}
}

func TestClassifyDedicatedOne(t *testing.T) {
	hours := spreadHours(1000)
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: 1000, TotalHours: 900, MoviePlays: 500, EpisodePlays: 500},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{0: 150, 1: 150, 2: 140, 3: 140, 4: 140, 5: 140, 6: 140}),
	}
	// 900 hours -> score 60, capped.
	if got := Classify(in); got != models.PersonalityDedicatedOne {
		t.Errorf("got %q, want The Dedicated One", got)
	}
}

func TestClassifySundayCouchPotato(t *testing.T) {
	hours := spreadHours(100)
	in := Input{
		Stats:      models.PlaybackStats{TotalPlays: 100},
		Hourly:     hourly(hours),
		DaysOfWeek: days(map[int]int{0: 40, 1: 10, 2: 10, 3: 10, 4: 10, 5: 10, 6: 10}),
	}
	// Sunday's 40 plays is over 1.8x the daily average of ~14.3; the
	// 0.4 share scores 60.
	if got := Classify(in); got != models.PersonalitySundayCouchPotato {
		t.Errorf("got %q, want Sunday Couch Potato", got)
	}
}
