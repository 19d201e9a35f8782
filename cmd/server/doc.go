// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

/*
Package main is the entry point for the Halaqa Discovery server.

The server turns raw search text into structured queries (terms, synonyms,
boolean and fuzzy forms, categories) and fuses the output of seven
recommendation strategies into ranked lists of study content.

# Process Layout

	RootSupervisor ("halaqa-discovery")
	├── DataSupervisor ("data-layer")
	│   ├── history recorder (watermill topic -> query history store)
	│   └── store monitor (DuckDB ping, discovery_store_up)
	└── APISupervisor ("api-layer")
	    └── HTTP server (chi router)

Startup order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Content store: DuckDB with optional demo seed, behind a gobreaker
 4. Query history: BadgerDB or in-memory, fed by the async recorder
 5. Query processor and recommendation engine with all strategies
 6. HTTP server and supervisor tree

With DATABASE_ENABLED=false the service still starts: queries expand
against the built-in synonym table and every strategy returns nothing.

# Signals

SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight
requests for HTTP_SHUTDOWN_TIMEOUT, then the recorder and stores close.

# Example

	export DUCKDB_PATH=/data/halaqa.duckdb
	export SEED_DEMO_DATA=true
	export HISTORY_PATH=/data/history
	./halaqa-discovery

	curl 'localhost:8080/api/v1/search/process?q=tafsir+of+surah+yasin'
*/
package main
