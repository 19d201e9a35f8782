// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable marks any failure reaching the content store.
	ErrStoreUnavailable = errors.New("content store unavailable")

	// ErrUnknownStrategy is returned by Run for names that were never registered.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// StrategyError records that a named strategy could not complete.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}
