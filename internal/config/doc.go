// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Package config loads and validates Lumiere configuration.

# Configuration Sources

Sources are layered with koanf; later layers win:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml, /etc/lumiere/config.yaml
  - Environment variables, through an explicit mapping table

Load also reads a .env file into the environment first when one exists.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT (default 30s)
  - HTTP_REQUEST_TIMEOUT (default 60s)
  - MAX_UPLOAD_BYTES (default 50MiB)

Catalog:
  - TMDB_API_KEY or TMDB_READ_TOKEN (required by the server)
  - TMDB_BASE_URL, TMDB_LANGUAGE
  - CATALOG_REQUESTS_PER_SECOND (default 10), CATALOG_MAX_RETRIES (default 5)

Cache:
  - CACHE_BACKEND: badger (default), redis, or memory
  - CACHE_DIR, REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
  - CACHE_GC_INTERVAL (default 10m)

Storage:
  - DUCKDB_PATH (default ./data/lumiere.duckdb), DUCKDB_MAX_MEMORY
  - KEYWORDS_CSV_PATH (default ./data/all_keywords.csv)

Pipeline:
  - RECOMMEND_DISCOVER_PAGES, RECOMMEND_SIMILAR_PAGES, RECOMMEND_SIMILAR_SEED_TITLES
  - RECOMMEND_ENRICH_TOP_N, RECOMMEND_WORKERS, RECOMMEND_MAX_RESULTS

Security:
  - CORS_ORIGINS (comma-separated, default *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
