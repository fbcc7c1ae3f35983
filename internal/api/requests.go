// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// reportParams holds the validated inputs of a report request.
type reportParams struct {
	Year     int    `validate:"required,min=1970,max=2100"`
	Limit    int    `validate:"min=0"`
	Timezone string `validate:"omitempty,timezone"`
}

// parseReportParams extracts and validates the year path parameter and the
// optional tz and limit query parameters. Limit is clamped to maxLimit.
func parseReportParams(r *http.Request, maxLimit int) (reportParams, error) {
	params := reportParams{
		Timezone: r.URL.Query().Get("tz"),
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return params, fmt.Errorf("invalid year: %w", err)
	}
	params.Year = year

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("invalid limit: %w", err)
		}
		params.Limit = limit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}
	if params.Limit < 0 {
		params.Limit = 0
	}

	if err := validate.Struct(&params); err != nil {
		return params, fmt.Errorf("invalid parameters: %w", err)
	}
	return params, nil
}

// parseYearParam extracts and range-checks the year path parameter alone.
func parseYearParam(r *http.Request) (int, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, fmt.Errorf("invalid year: %w", err)
	}
	if year < 1970 || year > 2100 {
		return 0, fmt.Errorf("year %d out of range", year)
	}
	return year, nil
}
