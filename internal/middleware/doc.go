// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

/*
Package middleware provides the HTTP middleware shared by every API route.

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation ids
  - AccessLog: one structured log line per request
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for clients that accept it

All middleware has the func(http.Handler) http.Handler shape used by chi's
r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware
