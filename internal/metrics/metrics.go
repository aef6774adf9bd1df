// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

// Package metrics holds Hako's Prometheus instruments. Collectors are
// registered on the default registry at package init and exposed by the API
// at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Snapshot metrics, set once after load.
	CatalogEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hako_catalog_entries",
			Help: "Number of catalog entries in the loaded snapshot",
		},
	)

	CatalogUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hako_catalog_users",
			Help: "Number of users in the loaded snapshot",
		},
	)

	CatalogTags = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hako_catalog_tags",
			Help: "Number of distinct tags in the loaded snapshot",
		},
	)

	CatalogLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hako_catalog_load_duration_seconds",
			Help: "Time spent decoding and validating the snapshot",
		},
	)

	// Search metrics
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hako_search_duration_seconds",
			Help:    "Duration of catalog scans in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hako_search_results",
			Help:    "Number of entries matched per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hako_searches_total",
			Help: "Total number of catalog scans by execution strategy",
		},
		[]string{"strategy"}, // "sequential", "parallel"
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hako_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hako_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hako_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	QueryRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hako_query_rejections_total",
			Help: "Search requests rejected before reaching the catalog",
		},
		[]string{"reason"},
	)

	// Result cache metrics
	ResultCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hako_result_cache_hits_total",
			Help: "Total number of sorted result set cache hits",
		},
	)

	ResultCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hako_result_cache_misses_total",
			Help: "Total number of sorted result set cache misses",
		},
	)

	ResultCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hako_result_cache_entries",
			Help: "Current number of cached result sets",
		},
	)
)

// RecordCatalogLoad records the shape of a freshly loaded snapshot.
func RecordCatalogLoad(entries, users, tags int, duration time.Duration) {
	CatalogEntries.Set(float64(entries))
	CatalogUsers.Set(float64(users))
	CatalogTags.Set(float64(tags))
	CatalogLoadDuration.Set(duration.Seconds())
}

// RecordSearch records one catalog scan.
func RecordSearch(parallel bool, results int, duration time.Duration) {
	strategy := "sequential"
	if parallel {
		strategy = "parallel"
	}
	SearchesTotal.WithLabelValues(strategy).Inc()
	SearchDuration.Observe(duration.Seconds())
	SearchResults.Observe(float64(results))
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordQueryRejection counts a request refused by query decoding.
func RecordQueryRejection(reason string) {
	QueryRejections.WithLabelValues(reason).Inc()
}

// RecordResultCache records a result cache lookup.
func RecordResultCache(hit bool) {
	if hit {
		ResultCacheHits.Inc()
	} else {
		ResultCacheMisses.Inc()
	}
}
