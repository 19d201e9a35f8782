// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

/*
Package config loads the discovery service configuration.

# Configuration Sources

Load layers three sources with Koanf v2, later sources winning:
  - Built-in defaults (defaultConfig)
  - An optional YAML file: CONFIG_PATH, else config.yaml / config.yml in
    the working directory, else /etc/halaqa-discovery/
  - Mapped environment variables (see envMappings)

Unmapped environment variables are ignored.

# Sections

  - server: listen address, timeouts, environment
  - database: DuckDB content store (path, memory, threads, demo seed)
  - history: query history backend (badger or memory) and write limits
  - query: query processor limits and synonym cache
  - recommend: combined strategies, personalized shares, limits, cache
  - breaker: circuit breaker in front of the content store
  - security: CORS, rate limiting, request body size
  - logging: zerolog level, format, caller

# Example YAML

	server:
	  port: 8080
	database:
	  path: /data/halaqa.duckdb
	  seed_demo: true
	recommend:
	  combined: [history, tag, structured, session]
	  cache_ttl: 1m
	logging:
	  level: debug
	  format: console

# Package Configs

query.Config, recommend.Config and history.RecorderConfig are built from
the loaded Config in cmd/server; each package validates its own config
again at construction.
*/
package config
