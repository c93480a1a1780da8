// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Package main is the entry point for the Lumiere API server.

Lumiere turns a Letterboxd export and a handful of tags into ranked movie
recommendations. It scores watch history into a taste profile, gathers
candidates from the movie catalog for each tag, and ranks them by how well
they match the profile and by how familiar they are.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("lumiere")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── cache-gc (Badger value-log GC, badger backend only)
	│   └── db-checkpoint (DuckDB WAL checkpoint)
	└── APISupervisor ("api-layer")
	    └── http-server

Component initialization order:

 1. Configuration: Koanf v2 with .env, YAML file and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Response cache: Badger, Redis or in-memory store behind an LRU front tier
 4. Database: DuckDB for imported history and saved preferences
 5. Catalog: rate-limited HTTP client behind a circuit breaker
 6. Keyword index: CSV of catalog keyword names and ids (optional)
 7. Recommendation engine
 8. HTTP Server: Chi router with middleware stack
 9. Supervisor Tree

# Configuration

Priority: Environment variables > Config file > Defaults

	# Catalog (one of these is required)
	TMDB_API_KEY=<key>
	TMDB_READ_TOKEN=<v4 token>

	# Server
	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Storage
	CACHE_BACKEND=badger         # badger, redis or memory
	CACHE_DIR=./data/cache
	DUCKDB_PATH=./data/lumiere.duckdb
	KEYWORDS_CSV_PATH=./data/all_keywords.csv

See internal/config for the full list.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
HTTP_SHUTDOWN_TIMEOUT, then the database and cache are closed.
*/
package main
