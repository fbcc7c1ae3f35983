// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package rewind assembles complete year-in-review reports. It orchestrates
// the pipeline: raw events, session reconstruction, per-item aggregation,
// then the stats, marathon, comparison, and personality engines. Reports
// are recomputed on every request; only metadata lookups are cached.
package rewind

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jellyrewind/jellyrewind/internal/cache"
	"github.com/jellyrewind/jellyrewind/internal/compare"
	"github.com/jellyrewind/jellyrewind/internal/config"
	"github.com/jellyrewind/jellyrewind/internal/marathon"
	"github.com/jellyrewind/jellyrewind/internal/metrics"
	"github.com/jellyrewind/jellyrewind/internal/models"
	"github.com/jellyrewind/jellyrewind/internal/personality"
	"github.com/jellyrewind/jellyrewind/internal/sessions"
	"github.com/jellyrewind/jellyrewind/internal/stats"
)

// ErrUserNotFound is returned when the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidTimezone is returned when a requested timezone is not a valid
// IANA zone name.
var ErrInvalidTimezone = errors.New("invalid timezone")

// Store is the data access the service needs. *database.DB implements it.
type Store interface {
	stats.MetadataSource
	compare.Population

	ListEvents(ctx context.Context, userID string, year int) ([]models.PlaybackEvent, error)
	GetUser(ctx context.Context, idOrName string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListYears(ctx context.Context, userID string) ([]int, error)
	ServerStats(ctx context.Context, year int, limit int) (*models.ServerStats, error)
}

// Options shape one report request.
type Options struct {
	// Timezone is an IANA zone name for time bucketing; empty uses the
	// configured default.
	Timezone string

	// Limit caps the top lists. Zero uses the default.
	Limit int
}

// Service builds rewind reports.
type Service struct {
	store       Store
	engine      *stats.Engine
	sessionCfg  sessions.Config
	marathonCfg marathon.Config
	cfg         config.RewindConfig
	defaultLim  int
}

// New creates a report service. Metadata lookups go through the given
// cache.
func New(store Store, cacher cache.Cacher, cfg config.RewindConfig, defaultLimit int) *Service {
	if cacher == nil {
		cacher = cache.Noop{}
	}
	if defaultLimit <= 0 {
		defaultLimit = 10
	}

	meta := newCachedMeta(store, cacher)
	return &Service{
		store: store,
		engine: stats.New(meta, nil, stats.Config{
			FinishedThreshold:     cfg.FinishedThreshold,
			AbandonedMinThreshold: cfg.AbandonedMinThreshold,
		}),
		sessionCfg: sessions.Config{
			MaxGap:  time.Duration(cfg.SessionGapSeconds) * time.Second,
			Overlap: time.Duration(cfg.SessionOverlapSeconds) * time.Second,
		},
		marathonCfg: marathon.Config{
			MaxGap:      time.Duration(cfg.MarathonGapMinutes) * time.Minute,
			Overlap:     time.Duration(cfg.MarathonOverlapMinutes) * time.Minute,
			MinSessions: cfg.MarathonMinSessions,
		},
		cfg:        cfg,
		defaultLim: defaultLimit,
	}
}

// Users lists the known accounts.
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// Years lists the years a user has playback data for.
func (s *Service) Years(ctx context.Context, userIDOrName string) ([]int, error) {
	user, err := s.resolveUser(ctx, userIDOrName)
	if err != nil {
		return nil, err
	}
	return s.store.ListYears(ctx, user.ID)
}

// BuildReport assembles the full year-in-review report for one user.
func (s *Service) BuildReport(ctx context.Context, userIDOrName string, year int, opts Options) (report *models.RewindReport, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordReportGeneration("user", time.Since(start), err)
	}()

	user, err := s.resolveUser(ctx, userIDOrName)
	if err != nil {
		return nil, err
	}
	loc, tzName, err := s.resolveLocation(opts.Timezone)
	if err != nil {
		return nil, err
	}
	limit := s.limit(opts.Limit)

	events, err := s.store.ListEvents(ctx, user.ID, year)
	if err != nil {
		return nil, err
	}
	watched := filterWatchable(events)
	sess := sessions.Reconstruct(watched, s.sessionCfg)
	items := sessions.AggregateByItem(sess)
	metrics.ReportSessionsReconstructed.Observe(float64(len(sess)))

	report = &models.RewindReport{
		ID:          uuid.NewString(),
		Year:        year,
		UserID:      user.ID,
		Username:    user.Username,
		Timezone:    tzName,
		GeneratedAt: time.Now().UTC(),
	}

	report.Stats = s.engine.Totals(sess)
	if report.TopMovies, err = s.engine.TopMovies(ctx, items, limit); err != nil {
		return nil, err
	}
	if report.AbandonedMovies, err = s.engine.AbandonedMovies(ctx, items, limit); err != nil {
		return nil, err
	}
	if report.FinishedMovieCount, err = s.engine.FinishedMovieCount(ctx, items); err != nil {
		return nil, err
	}
	if report.TopShows, err = s.engine.TopShows(ctx, items, limit); err != nil {
		return nil, err
	}
	if report.TopGenres, err = s.engine.TopGenres(ctx, items, limit); err != nil {
		return nil, err
	}

	report.Hourly = stats.Hourly(sess, loc)
	report.DaysOfWeek = stats.DayOfWeek(sess, loc)
	report.Monthly = stats.Monthly(sess, loc)
	report.Devices = stats.Devices(watched)
	report.Clients = stats.Clients(watched)
	report.PlaybackMethods = stats.PlaybackMethods(watched)

	marathons := marathon.Detect(sess, s.marathonCfg)
	report.Marathons = marathon.Summarize(marathons)
	report.TopMarathons = marathon.Top(marathons, limit)

	if report.Comparison, err = compare.Compare(ctx, s.store, user.ID, year); err != nil {
		return nil, err
	}
	if report.Ranking, err = compare.Ranking(ctx, s.store, user.ID, year); err != nil {
		return nil, err
	}

	var longestHours float64
	if report.Marathons.Longest != nil {
		longestHours = report.Marathons.Longest.TotalHours
	}
	report.Personality = personality.Classify(personality.Input{
		Stats:                report.Stats,
		Hourly:               report.Hourly,
		DaysOfWeek:           report.DaysOfWeek,
		LongestMarathonHours: longestHours,
	})

	return report, nil
}

// Comparison builds only the cross-user comparison.
func (s *Service) Comparison(ctx context.Context, userIDOrName string, year int) (cmp *models.UserComparison, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordReportGeneration("comparison", time.Since(start), err)
	}()

	user, err := s.resolveUser(ctx, userIDOrName)
	if err != nil {
		return nil, err
	}
	return compare.Compare(ctx, s.store, user.ID, year)
}

// Marathons builds only the marathon list for a user-year.
func (s *Service) Marathons(ctx context.Context, userIDOrName string, year int, limit int) (result []models.Marathon, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordReportGeneration("marathons", time.Since(start), err)
	}()

	user, err := s.resolveUser(ctx, userIDOrName)
	if err != nil {
		return nil, err
	}
	events, err := s.store.ListEvents(ctx, user.ID, year)
	if err != nil {
		return nil, err
	}
	sess := sessions.Reconstruct(filterWatchable(events), s.sessionCfg)
	return marathon.Top(marathon.Detect(sess, s.marathonCfg), s.limit(limit)), nil
}

// ServerStats builds the server-wide roll-up for a year.
func (s *Service) ServerStats(ctx context.Context, year int, limit int) (result *models.ServerStats, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordReportGeneration("server", time.Since(start), err)
	}()
	return s.store.ServerStats(ctx, year, s.limit(limit))
}

func (s *Service) resolveUser(ctx context.Context, idOrName string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, idOrName)
	}
	return user, nil
}

func (s *Service) resolveLocation(tz string) (*time.Location, string, error) {
	if tz == "" {
		tz = s.cfg.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, tz, nil
}

func (s *Service) limit(limit int) int {
	if limit <= 0 {
		return s.defaultLim
	}
	return limit
}

// filterWatchable drops audio events; everything else, including item types
// the top lists ignore, still counts toward totals and device splits.
func filterWatchable(events []models.PlaybackEvent) []models.PlaybackEvent {
	var out []models.PlaybackEvent
	for _, e := range events {
		if e.ItemType != models.MediaTypeAudio {
			out = append(out, e)
		}
	}
	return out
}
