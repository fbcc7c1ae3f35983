// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package config provides configuration loading for JellyRewind.
//
// Configuration is assembled with koanf v2 in three layers, later layers
// overriding earlier ones:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or REWIND_CONFIG_PATH)
//  3. Environment variables (REWIND_ prefix, "__" as the section separator,
//     e.g. REWIND_SERVER__PORT=8096, REWIND_REWIND__FINISHED_THRESHOLD=0.8)
//
// The loaded struct is validated once and immutable afterwards; it is safe
// for concurrent reads.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Rewind   RewindConfig   `koanf:"rewind"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" gives an ephemeral store
	// (used by tests and the mock-data mode).
	Path string `koanf:"path" validate:"required"`

	// MaxMemory caps DuckDB's memory usage (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 means runtime.NumCPU().
	Threads int `koanf:"threads" validate:"min=0"`

	// SeedMockData populates the store with generated playback data at
	// startup. Development only.
	SeedMockData bool `koanf:"seed_mock_data"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// APIConfig holds response shaping limits.
type APIConfig struct {
	DefaultLimit int `koanf:"default_limit" validate:"min=1"`
	MaxLimit     int `koanf:"max_limit" validate:"min=1"`
}

// RewindConfig holds the analytic policy constants. The defaults are
// deliberate trade-offs (false merges vs false splits, accidental taps vs
// real abandonment) tuned against real Jellyfin logs; change them only if
// you accept different report output.
type RewindConfig struct {
	// SessionGapSeconds is the maximum forward gap between an event's
	// computed end and the next event's start for both to belong to one
	// session. Covers normal heartbeat cadence.
	SessionGapSeconds int `koanf:"session_gap_seconds" validate:"min=0"`

	// SessionOverlapSeconds is the tolerated negative gap, absorbing
	// overlapping or duplicate log rows.
	SessionOverlapSeconds int `koanf:"session_overlap_seconds" validate:"min=0"`

	// MarathonGapMinutes is the maximum idle gap between two sessions in
	// one marathon. Bathroom breaks happen.
	MarathonGapMinutes int `koanf:"marathon_gap_minutes" validate:"min=0"`

	// MarathonOverlapMinutes is the tolerated negative gap between sessions.
	MarathonOverlapMinutes int `koanf:"marathon_overlap_minutes" validate:"min=0"`

	// MarathonMinSessions is the minimum session count for a marathon to be
	// reported.
	MarathonMinSessions int `koanf:"marathon_min_sessions" validate:"min=1"`

	// FinishedThreshold is the watched-to-runtime ratio at or above which a
	// movie counts as finished.
	FinishedThreshold float64 `koanf:"finished_threshold" validate:"gt=0,lte=1"`

	// AbandonedMinThreshold is the minimum ratio for a movie to count as
	// abandoned rather than an accidental tap.
	AbandonedMinThreshold float64 `koanf:"abandoned_min_threshold" validate:"gte=0,lt=1"`

	// DefaultTimezone is the IANA zone used for hour/day/month bucketing
	// when the request does not specify one.
	DefaultTimezone string `koanf:"default_timezone" validate:"required"`
}

// CacheConfig holds metadata-cache settings.
type CacheConfig struct {
	// TTL is the lifetime of cached metadata lookups (runtimes, genres).
	TTL time.Duration `koanf:"ttl"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all defaults applied.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:         "/data/jellyrewind.duckdb",
			MaxMemory:    "2GB",
			Threads:      0,
			SeedMockData: false,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8097,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		API: APIConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Rewind: RewindConfig{
			SessionGapSeconds:      300,
			SessionOverlapSeconds:  60,
			MarathonGapMinutes:     45,
			MarathonOverlapMinutes: 5,
			MarathonMinSessions:    2,
			FinishedThreshold:      0.8,
			AbandonedMinThreshold:  0.01,
			DefaultTimezone:        "Europe/Riga",
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for consistency beyond per-field tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.API.DefaultLimit > c.API.MaxLimit {
		return fmt.Errorf("api.default_limit (%d) exceeds api.max_limit (%d)", c.API.DefaultLimit, c.API.MaxLimit)
	}
	if c.Rewind.AbandonedMinThreshold >= c.Rewind.FinishedThreshold {
		return fmt.Errorf("rewind.abandoned_min_threshold (%v) must be below rewind.finished_threshold (%v)",
			c.Rewind.AbandonedMinThreshold, c.Rewind.FinishedThreshold)
	}
	return nil
}
