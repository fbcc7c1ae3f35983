// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type mockCheckpointer struct {
	calls atomic.Int32
	err   error
}

func (m *mockCheckpointer) Checkpoint(context.Context) error {
	m.calls.Add(1)
	return m.err
}

func TestCheckpointServiceInterface(t *testing.T) {
	var _ suture.Service = (*CheckpointService)(nil)
}

func TestNewCheckpointServiceDefaultInterval(t *testing.T) {
	svc := NewCheckpointService(&mockCheckpointer{}, 0)
	if svc.interval != time.Hour {
		t.Errorf("expected default interval 1h, got %v", svc.interval)
	}
	if svc.String() != "db-checkpoint" {
		t.Errorf("expected name 'db-checkpoint', got %q", svc.String())
	}
}

func TestCheckpointServiceTicks(t *testing.T) {
	db := &mockCheckpointer{}
	svc := NewCheckpointService(db, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(ctx)
	}()

	time.Sleep(110 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("service did not stop in time")
	}

	if db.calls.Load() < 3 {
		t.Errorf("expected at least 3 checkpoints, got %d", db.calls.Load())
	}
}

func TestCheckpointServiceSurvivesErrors(t *testing.T) {
	db := &mockCheckpointer{err: errors.New("disk full")}
	svc := NewCheckpointService(db, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(ctx)
	}()

	time.Sleep(70 * time.Millisecond)
	cancel()
	<-errCh

	// Errors are logged; the loop keeps ticking.
	if db.calls.Load() < 2 {
		t.Errorf("expected service to keep checkpointing after errors, got %d calls", db.calls.Load())
	}
}
