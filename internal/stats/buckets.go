// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// Hourly buckets sessions by start hour in the given location. All 24
// buckets are always present, zero-filled.
func Hourly(sessions []models.PlaybackSession, loc *time.Location) []models.HourlyStats {
	seconds := make([]int64, 24)
	buckets := make([]models.HourlyStats, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}
	for _, s := range sessions {
		h := s.StartTime.In(loc).Hour()
		buckets[h].Plays++
		seconds[h] += s.TotalSeconds
	}
	for h := range buckets {
		buckets[h].Minutes = minutes(seconds[h])
	}
	return buckets
}

// DayOfWeek buckets sessions by weekday in the given location, Sunday
// first. All 7 buckets are always present.
func DayOfWeek(sessions []models.PlaybackSession, loc *time.Location) []models.DayOfWeekStats {
	seconds := make([]int64, 7)
	buckets := make([]models.DayOfWeekStats, 7)
	for d := range buckets {
		buckets[d].Day = d
		buckets[d].DayName = models.DayNames[d]
	}
	for _, s := range sessions {
		d := int(s.StartTime.In(loc).Weekday())
		buckets[d].Plays++
		seconds[d] += s.TotalSeconds
	}
	for d := range buckets {
		buckets[d].Minutes = minutes(seconds[d])
	}
	return buckets
}

// Monthly buckets sessions by calendar month in the given location. All 12
// buckets are always present.
func Monthly(sessions []models.PlaybackSession, loc *time.Location) []models.MonthlyStats {
	seconds := make([]int64, 13)
	buckets := make([]models.MonthlyStats, 12)
	for i := range buckets {
		buckets[i].Month = i + 1
		buckets[i].MonthName = models.MonthNames[i+1]
	}
	for _, s := range sessions {
		m := int(s.StartTime.In(loc).Month())
		buckets[m-1].Plays++
		seconds[m] += s.TotalSeconds
	}
	for i := range buckets {
		buckets[i].Hours = round1(float64(seconds[i+1]) / 3600.0)
	}
	return buckets
}

// Devices counts raw playback events per device. Each log row is one use of
// the device, so this intentionally works on events, not sessions.
func Devices(events []models.PlaybackEvent) []models.DeviceStats {
	counts := countBy(events, func(e models.PlaybackEvent) string { return e.DeviceName })
	result := make([]models.DeviceStats, 0, len(counts))
	for name, count := range counts {
		result = append(result, models.DeviceStats{
			DeviceName: name,
			Plays:      count,
			Percentage: percentage(count, len(events)),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Plays != result[j].Plays {
			return result[i].Plays > result[j].Plays
		}
		return result[i].DeviceName < result[j].DeviceName
	})
	return result
}

// Clients counts raw playback events per client app.
func Clients(events []models.PlaybackEvent) []models.ClientStats {
	counts := countBy(events, func(e models.PlaybackEvent) string { return e.ClientName })
	result := make([]models.ClientStats, 0, len(counts))
	for name, count := range counts {
		result = append(result, models.ClientStats{
			ClientName: name,
			Plays:      count,
			Percentage: percentage(count, len(events)),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Plays != result[j].Plays {
			return result[i].Plays > result[j].Plays
		}
		return result[i].ClientName < result[j].ClientName
	})
	return result
}

// Method is a playback method class.
type Method int

// Playback method classes.
const (
	MethodUnknown Method = iota
	MethodDirect
	MethodRemux
	MethodTranscode
)

// ClassifyMethod maps a raw playback method string to its class.
// "DirectStream" and transcodes that keep the video stream untouched
// ("v:direct") are remuxes: the server repackages but does not re-encode.
func ClassifyMethod(method string) Method {
	switch {
	case method == "DirectPlay":
		return MethodDirect
	case method == "DirectStream", strings.Contains(method, "v:direct"):
		return MethodRemux
	case strings.HasPrefix(method, "Transcode"):
		return MethodTranscode
	default:
		return MethodUnknown
	}
}

// PlaybackMethods splits raw events into direct, remux, and transcode
// counts with percentages.
func PlaybackMethods(events []models.PlaybackEvent) models.PlaybackMethodStats {
	var stats models.PlaybackMethodStats
	for _, e := range events {
		switch ClassifyMethod(e.PlaybackMethod) {
		case MethodDirect:
			stats.Direct++
		case MethodRemux:
			stats.Remux++
		case MethodTranscode:
			stats.Transcode++
		}
	}
	total := stats.Direct + stats.Remux + stats.Transcode
	stats.DirectPercentage = percentage(stats.Direct, total)
	stats.RemuxPercentage = percentage(stats.Remux, total)
	stats.TranscodePercentage = percentage(stats.Transcode, total)
	return stats
}

// countBy tallies events per key. Events without a value land in an
// "Unknown" bucket so the percentages still sum to 100.
func countBy(events []models.PlaybackEvent, key func(models.PlaybackEvent) string) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		k := key(e)
		if k == "" {
			k = "Unknown"
		}
		counts[k]++
	}
	return counts
}
