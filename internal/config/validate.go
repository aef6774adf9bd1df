// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.Catalog.SearchWorkers < 0 {
		return fmt.Errorf("CATALOG_SEARCH_WORKERS must be >= 0, got %d", c.Catalog.SearchWorkers)
	}
	if c.Catalog.ParallelThreshold < 1 {
		return fmt.Errorf("CATALOG_PARALLEL_THRESHOLD must be >= 1, got %d", c.Catalog.ParallelThreshold)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.PageSize < 1 || c.API.PageSize > 500 {
		return fmt.Errorf("API_PAGE_SIZE must be between 1 and 500, got %d", c.API.PageSize)
	}
	if c.API.MaxQueryLength < 1 {
		return fmt.Errorf("API_MAX_QUERY_LENGTH must be >= 1, got %d", c.API.MaxQueryLength)
	}
	if c.API.CacheSize < 0 {
		return fmt.Errorf("CACHE_SIZE must be >= 0, got %d", c.API.CacheSize)
	}
	if c.API.CacheSize > 0 && c.API.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when caching is enabled")
	}
	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be >= 1, got %d", c.API.RateLimitReqs)
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
