// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200"))
	RecordAPIRequest("GET", "/api/v1/health", "200", 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200"))
	if after != before+1 {
		t.Errorf("request counter = %v, want %v", after, before+1)
	}
}

func TestRecordReportGeneration(t *testing.T) {
	before := testutil.ToFloat64(ReportGenerationErrors.WithLabelValues("user"))

	RecordReportGeneration("user", 100*time.Millisecond, nil)
	if got := testutil.ToFloat64(ReportGenerationErrors.WithLabelValues("user")); got != before {
		t.Errorf("error counter incremented on success: %v", got)
	}

	RecordReportGeneration("user", 100*time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(ReportGenerationErrors.WithLabelValues("user")); got != before+1 {
		t.Errorf("error counter = %v, want %v", got, before+1)
	}
}

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("list_events"))
	RecordDBQuery("list_events", time.Millisecond, errors.New("timeout"))
	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("list_events"))
	if after != before+1 {
		t.Errorf("db error counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active gauge = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active gauge = %v, want %v", got, before)
	}
}
