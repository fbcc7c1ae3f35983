// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jellyrewind/jellyrewind/internal/logging"
	"github.com/jellyrewind/jellyrewind/internal/models"
	"github.com/jellyrewind/jellyrewind/internal/rewind"
)

// RewindService is the report surface handlers depend on. *rewind.Service
// implements it; tests substitute a fake.
type RewindService interface {
	Users(ctx context.Context) ([]models.User, error)
	Years(ctx context.Context, userIDOrName string) ([]int, error)
	BuildReport(ctx context.Context, userIDOrName string, year int, opts rewind.Options) (*models.RewindReport, error)
	Comparison(ctx context.Context, userIDOrName string, year int) (*models.UserComparison, error)
	Marathons(ctx context.Context, userIDOrName string, year int, limit int) ([]models.Marathon, error)
	ServerStats(ctx context.Context, year int, limit int) (*models.ServerStats, error)
}

// Pinger reports database liveness. *database.DB implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler carries the dependencies of all HTTP handlers.
type Handler struct {
	svc      RewindService
	db       Pinger
	maxLimit int
	version  string
}

// NewHandler creates the handler set. maxLimit caps the ?limit= query
// parameter on list endpoints.
func NewHandler(svc RewindService, db Pinger, maxLimit int, version string) *Handler {
	if maxLimit <= 0 {
		maxLimit = 50
	}
	return &Handler{svc: svc, db: db, maxLimit: maxLimit, version: version}
}

// healthStatus is the health endpoint payload.
type healthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// Health reports service and database liveness. Returns 503 when the
// database does not answer.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := healthStatus{Status: "ok", Version: h.version, Database: "ok"}

	httpStatus := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		logging.Error().Err(err).Msg("Health check: database ping failed")
		status.Status = "degraded"
		status.Database = "unreachable"
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// Users lists the known accounts.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	users, err := h.svc.Users(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeDatabaseError, "Failed to list users", err)
		return
	}
	respondSuccess(w, users, start)
}

// UserYears lists the years a user has playback data for.
func (h *Handler) UserYears(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	years, err := h.svc.Years(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.respondServiceError(w, err, "Failed to list years")
		return
	}
	respondSuccess(w, years, start)
}

// Rewind builds and returns the full year-in-review report for one user.
func (h *Handler) Rewind(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := parseReportParams(r, h.maxLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidParam, err.Error(), nil)
		return
	}

	report, err := h.svc.BuildReport(r.Context(), chi.URLParam(r, "userID"), params.Year, rewind.Options{
		Timezone: params.Timezone,
		Limit:    params.Limit,
	})
	if err != nil {
		h.respondServiceError(w, err, "Failed to build report")
		return
	}
	respondSuccess(w, report, start)
}

// Comparison returns only the cross-user comparison block.
func (h *Handler) Comparison(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	year, err := parseYearParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidYear, err.Error(), nil)
		return
	}

	cmp, err := h.svc.Comparison(r.Context(), chi.URLParam(r, "userID"), year)
	if err != nil {
		h.respondServiceError(w, err, "Failed to build comparison")
		return
	}
	respondSuccess(w, cmp, start)
}

// Marathons returns only the marathon list for a user-year.
func (h *Handler) Marathons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := parseReportParams(r, h.maxLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidParam, err.Error(), nil)
		return
	}

	marathons, err := h.svc.Marathons(r.Context(), chi.URLParam(r, "userID"), params.Year, params.Limit)
	if err != nil {
		h.respondServiceError(w, err, "Failed to list marathons")
		return
	}
	respondSuccess(w, marathons, start)
}

// ServerStats returns the server-wide roll-up for a year.
func (h *Handler) ServerStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params, err := parseReportParams(r, h.maxLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidParam, err.Error(), nil)
		return
	}

	stats, err := h.svc.ServerStats(r.Context(), params.Year, params.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errCodeInternalError, "Failed to build server stats", err)
		return
	}
	respondSuccess(w, stats, start)
}

// respondServiceError maps service errors to HTTP responses: unknown users
// become 404, invalid timezones 400, everything else 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, rewind.ErrUserNotFound):
		respondError(w, http.StatusNotFound, errCodeNotFound, "User not found", nil)
	case errors.Is(err, rewind.ErrInvalidTimezone):
		respondError(w, http.StatusBadRequest, errCodeBadRequest, err.Error(), nil)
	default:
		respondError(w, http.StatusInternalServerError, errCodeInternalError, message, err)
	}
}
