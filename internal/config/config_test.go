// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 8097 {
		t.Errorf("default server.port = %d, want 8097", cfg.Server.Port)
	}
	if cfg.Rewind.SessionGapSeconds != 300 {
		t.Errorf("default rewind.session_gap_seconds = %d, want 300", cfg.Rewind.SessionGapSeconds)
	}
	if cfg.Rewind.SessionOverlapSeconds != 60 {
		t.Errorf("default rewind.session_overlap_seconds = %d, want 60", cfg.Rewind.SessionOverlapSeconds)
	}
	if cfg.Rewind.MarathonGapMinutes != 45 {
		t.Errorf("default rewind.marathon_gap_minutes = %d, want 45", cfg.Rewind.MarathonGapMinutes)
	}
	if cfg.Rewind.FinishedThreshold != 0.8 {
		t.Errorf("default rewind.finished_threshold = %v, want 0.8", cfg.Rewind.FinishedThreshold)
	}
	if cfg.Rewind.DefaultTimezone != "Europe/Riga" {
		t.Errorf("default rewind.default_timezone = %q, want Europe/Riga", cfg.Rewind.DefaultTimezone)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("default cache.ttl = %v, want 5m", cfg.Cache.TTL)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("REWIND_SERVER__PORT", "9000")
	t.Setenv("REWIND_REWIND__MARATHON_GAP_MINUTES", "60")
	t.Setenv("REWIND_LOGGING__LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d, want 9000 from env", cfg.Server.Port)
	}
	if cfg.Rewind.MarathonGapMinutes != 60 {
		t.Errorf("rewind.marathon_gap_minutes = %d, want 60 from env", cfg.Rewind.MarathonGapMinutes)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug from env", cfg.Logging.Level)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 8200\nrewind:\n  default_timezone: America/New_York\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Port != 8200 {
		t.Errorf("server.port = %d, want 8200 from file", cfg.Server.Port)
	}
	if cfg.Rewind.DefaultTimezone != "America/New_York" {
		t.Errorf("rewind.default_timezone = %q, want America/New_York from file", cfg.Rewind.DefaultTimezone)
	}
	// Untouched sections keep defaults.
	if cfg.Rewind.FinishedThreshold != 0.8 {
		t.Errorf("rewind.finished_threshold = %v, want default 0.8", cfg.Rewind.FinishedThreshold)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8200\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("REWIND_SERVER__PORT", "8300")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Port != 8300 {
		t.Errorf("server.port = %d, want env value 8300 over file value", cfg.Server.Port)
	}
}

func TestValidation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
		{"finished threshold above 1", func(c *Config) { c.Rewind.FinishedThreshold = 1.5 }},
		{"default limit above max", func(c *Config) { c.API.DefaultLimit = 100; c.API.MaxLimit = 50 }},
		{"abandoned above finished", func(c *Config) { c.Rewind.AbandonedMinThreshold = 0.9 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
