// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

/*
Package api serves the catalog over HTTP with a chi router.

Routes:

	GET /api/v1/health/live               liveness probe
	GET /api/v1/health/ready              readiness probe (snapshot loaded)
	GET /api/v1/info                      snapshot date, scale factors, counts
	GET /api/v1/list/{sort}/{skip}        whole catalog, sorted and paged
	GET /api/v1/search/{query}/{sort}/{skip}
	                                      decoded query, sorted and paged
	GET /api/v1/tags/{name}               tag lookup
	GET /api/v1/users/{name}              username lookup
	GET /metrics                          Prometheus

{sort} is a two-letter token (see query.ParseSortToken), {skip} the number
of sorted results to skip, and {query} the JSON tuple described in package
query. Every body is a models.APIResponse.

Sorted search results are kept in a bounded LRU keyed by query and sort
token, so paging through one search scans the catalog once.
*/
package api
