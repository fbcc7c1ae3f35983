// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package marathon groups reconstructed sessions into marathons: contiguous
// runs of viewing, possibly across different items, separated by gaps small
// enough to count as one sitting.
package marathon

import (
	"math"
	"sort"
	"time"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// Config bounds the gap between consecutive sessions in one marathon.
type Config struct {
	// MaxGap is the largest idle gap between a session's end and the next
	// session's start that keeps the marathon going.
	MaxGap time.Duration

	// Overlap is the tolerated negative gap between sessions.
	Overlap time.Duration

	// MinSessions is the minimum session count for a marathon to be
	// reported. Single viewings are not marathons.
	MinSessions int
}

// DefaultConfig matches the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		MaxGap:      45 * time.Minute,
		Overlap:     5 * time.Minute,
		MinSessions: 2,
	}
}

// Detect groups sessions into marathons with a single greedy pass over the
// sessions in start-time order. Only marathons meeting MinSessions are
// returned, ordered by start time.
func Detect(sessions []models.PlaybackSession, cfg Config) []models.Marathon {
	if len(sessions) == 0 {
		return nil
	}

	ordered := make([]models.PlaybackSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	var result []models.Marathon
	cur := newMarathon(ordered[0])

	for _, s := range ordered[1:] {
		gap := s.StartTime.Sub(cur.EndTime)
		if gap <= cfg.MaxGap && gap >= -cfg.Overlap {
			cur.Items = append(cur.Items, toItem(s))
			if s.EndTime.After(cur.EndTime) {
				cur.EndTime = s.EndTime
			}
			continue
		}
		result = appendIfReportable(result, finalize(cur), cfg)
		cur = newMarathon(s)
	}
	result = appendIfReportable(result, finalize(cur), cfg)

	return result
}

// Longest returns the marathon with the greatest wall-clock span, or nil.
func Longest(marathons []models.Marathon) *models.Marathon {
	var longest *models.Marathon
	for i := range marathons {
		if longest == nil || marathons[i].TotalMinutes > longest.TotalMinutes {
			longest = &marathons[i]
		}
	}
	return longest
}

// Top returns up to limit marathons ordered by descending length.
func Top(marathons []models.Marathon, limit int) []models.Marathon {
	ordered := make([]models.Marathon, len(marathons))
	copy(ordered, marathons)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TotalMinutes > ordered[j].TotalMinutes
	})
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// Summarize rolls reportable marathons up for the report.
func Summarize(marathons []models.Marathon) models.MarathonSummary {
	summary := models.MarathonSummary{
		TotalMarathons: len(marathons),
		Longest:        Longest(marathons),
	}
	if len(marathons) == 0 {
		return summary
	}

	totalMinutes := 0
	for _, m := range marathons {
		totalMinutes += m.TotalMinutes
	}
	summary.TotalMarathonHours = math.Round(float64(totalMinutes)/60.0*10) / 10
	summary.AverageMinutes = int(math.Round(float64(totalMinutes) / float64(len(marathons))))
	return summary
}

func newMarathon(s models.PlaybackSession) models.Marathon {
	return models.Marathon{
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Items:     []models.MarathonItem{toItem(s)},
	}
}

func toItem(s models.PlaybackSession) models.MarathonItem {
	return models.MarathonItem{
		ItemID:          s.ItemID,
		ItemName:        s.ItemName,
		ItemType:        s.ItemType,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationMinutes: int((s.TotalSeconds + 30) / 60),
	}
}

func finalize(m models.Marathon) models.Marathon {
	// Wall-clock span, idle gaps included.
	m.TotalMinutes = int(math.Round(m.EndTime.Sub(m.StartTime).Minutes()))
	m.TotalHours = math.Round(float64(m.TotalMinutes)/60.0*10) / 10
	m.ItemCount = len(m.Items)
	m.Date = m.StartTime.Format("2006-01-02")
	return m
}

func appendIfReportable(result []models.Marathon, m models.Marathon, cfg Config) []models.Marathon {
	if m.ItemCount >= cfg.MinSessions {
		result = append(result, m)
	}
	return result
}
