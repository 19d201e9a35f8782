// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use and shared; it caches
// struct metadata, so request types are parsed once.
//
// # Usage
//
//	var rc recommend.RecommendationContext
//	if err := json.NewDecoder(r.Body).Decode(&rc); err != nil {
//	    // 400
//	}
//	if verr := validation.ValidateStruct(&rc); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Field Names
//
// Errors name fields by their JSON tag, so messages match the request body
// the client sent ("limit must be at most 100", "halaqa_ids[2] is required").
//
// # Custom Tags
//
//   - notblank: rejects strings that are empty after trimming
//   - slug: lower-case letters, digits, '-' and '_'
package validation
