// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

/*
Package main is the entry point for the Hako catalog search server.

The server loads one packed catalog snapshot at startup, maps its relation
matrix read-only and serves search and listing requests over a JSON API.
The snapshot never changes while the process runs; a new snapshot means a
restart.

# Startup

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Catalog: snapshot decode, validation and matrix mapping. Any failure is
    fatal and the process exits before listening.
 4. Supervisor tree: suture v4 with the HTTP server and cache cleanup

# Configuration

Common environment variables:

	CATALOG_PATH        snapshot file; the matrix is read from CATALOG_PATH_mmap
	HTTP_HOST, HTTP_PORT
	API_PAGE_SIZE       entries per page (default 25)
	CACHE_SIZE          cached searches (default 256)
	CACHE_TTL           lifetime of a cached search (default 10m)
	DISABLE_RATE_LIMIT  true to turn off per-IP limiting
	LOG_LEVEL, LOG_FORMAT

# Signals

SIGINT and SIGTERM cancel the supervisor context. The HTTP server stops
accepting connections and drains in-flight requests within
SHUTDOWN_TIMEOUT, then the matrix mapping is released.
*/
package main
