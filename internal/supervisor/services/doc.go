// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

// Package services adapts server components to suture.Service.
//
//   - HTTPServerService: ListenAndServe with a bounded graceful Shutdown
//   - StoreMonitorService: periodic content store ping exported as
//     discovery_store_up
//
// history.Recorder implements suture.Service itself and needs no wrapper.
package services
