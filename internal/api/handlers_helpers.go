// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
	"github.com/tomtom215/halaqa-discovery/internal/validation"
)

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// decodeJSON decodes the request body into v and validates it. An empty body
// leaves v at its zero value. It writes the error response itself and
// reports whether the handler should continue.
func decodeJSON(rw *ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			rw.PayloadTooLarge(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
			return false
		}
		rw.BadRequest("failed to read request body")
		return false
	}

	if len(bytes.TrimSpace(body)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			rw.BadRequest("invalid JSON body: " + err.Error())
			return false
		}
	}
	return validate(rw, v)
}

// validate runs struct validation and writes a 400 on failure.
func validate(rw *ResponseWriter, v any) bool {
	if verr := validation.ValidateStruct(v); verr != nil {
		rw.ValidationError(verr)
		return false
	}
	return true
}

// parseIntParam parses an integer query parameter. A missing value yields
// def; a malformed one is an error.
func parseIntParam(r *http.Request, key string, def int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// parseBoolParam parses a boolean query parameter; missing is false.
func parseBoolParam(r *http.Request, key string) (bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return b, nil
}

// parseCommaSeparated splits a comma-separated parameter, dropping blanks.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// contextFromQuery builds a recommendation context from URL parameters:
// user_id, content_id, halaqa_ids, category, session, limit, exclude_viewed.
func contextFromQuery(r *http.Request) (recommend.RecommendationContext, error) {
	q := r.URL.Query()
	limit, err := parseIntParam(r, "limit", 0)
	if err != nil {
		return recommend.RecommendationContext{}, err
	}
	excludeViewed, err := parseBoolParam(r, "exclude_viewed")
	if err != nil {
		return recommend.RecommendationContext{}, err
	}
	return recommend.RecommendationContext{
		UserID:         strings.TrimSpace(q.Get("user_id")),
		ContentID:      strings.TrimSpace(q.Get("content_id")),
		HalaqaIDs:      parseCommaSeparated(q.Get("halaqa_ids")),
		Category:       strings.TrimSpace(q.Get("category")),
		SessionHistory: parseCommaSeparated(q.Get("session")),
		Limit:          limit,
		ExcludeViewed:  excludeViewed,
	}, nil
}
