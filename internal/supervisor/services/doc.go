// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

// Package services wraps long-running Hako components as suture services.
//
// HTTPServerService runs the API listener and shuts it down gracefully when
// its context ends. CacheCleanupService periodically evicts expired search
// results from the API result cache.
package services
