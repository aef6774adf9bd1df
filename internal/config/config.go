// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

// Package config loads Hako's configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of precedence.
//
// Environment variables:
//
//	CATALOG_PATH              snapshot file (its matrix lives at <path>_mmap)
//	CATALOG_SEARCH_WORKERS    goroutines for chunked scans (0 = GOMAXPROCS)
//	HTTP_HOST, HTTP_PORT      listen address
//	API_PAGE_SIZE             items per result page
//	RATE_LIMIT_REQUESTS       requests per RATE_LIMIT_WINDOW per client
//	CORS_ORIGINS              comma separated allowed origins
//	LOG_LEVEL, LOG_FORMAT     logging
//	CONFIG_PATH               explicit YAML file
package config

import "time"

// Config is the root configuration.
type Config struct {
	Catalog CatalogConfig `koanf:"catalog"`
	Server  ServerConfig  `koanf:"server"`
	API     APIConfig     `koanf:"api"`
	Logging LoggingConfig `koanf:"logging"`
}

// CatalogConfig locates the snapshot and tunes the scan.
type CatalogConfig struct {
	Path              string `koanf:"path"`
	SearchWorkers     int    `koanf:"search_workers"`
	ParallelThreshold int    `koanf:"parallel_threshold"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// APIConfig holds paging, caching and request limiting for the HTTP API.
type APIConfig struct {
	PageSize          int           `koanf:"page_size"`
	MaxQueryLength    int           `koanf:"max_query_length"`
	CacheSize         int           `koanf:"cache_size"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	SubjectURLBase    string        `koanf:"subject_url_base"`
	ImageURLBase      string        `koanf:"image_url_base"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
