// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

// Package recommend fuses the output of independent recommendation strategies
// into one ranked, de-duplicated list.
//
// # Strategies
//
// A Strategy reads from a ContentStore and returns a ranked partial list for a
// RecommendationContext. The concrete strategies (history, tag, structured,
// trending, editorial, session, fresh) live in the strategies subpackage and
// are registered on the Engine at startup:
//
//	engine, err := recommend.NewEngine(cfg, store, logger)
//	engine.RegisterStrategy(strategies.NewHistory(store, strategies.DefaultHistoryConfig()))
//	engine.RegisterStrategy(strategies.NewTag(store))
//
// # Fusion
//
// GetCombined selects the registered strategies listed in Config.Combined
// whose inputs are present, runs them concurrently and merges by content id:
// scores are summed and reasons joined with "; " in selection order. The
// merged list is filtered against the user's view history when requested,
// sorted by fused score and truncated.
//
// GetPersonalized appends trending and editorial results to the combined list
// (first occurrence wins), then re-sorts and truncates.
//
// # Failure isolation
//
// Every strategy runs in its own task with its own timeout and panic
// recovery. A failing strategy contributes nothing and is logged and counted;
// it never aborts its siblings and no error reaches the caller. An empty list
// is a valid answer.
package recommend
