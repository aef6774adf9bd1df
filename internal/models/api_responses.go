// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package models

import (
	"time"
)

// APIResponse wraps every HTTP response body.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
//	{
//	  "status": "success",
//	  "data": {"entries": [...], "pager": {...}},
//	  "metadata": {
//	    "timestamp": "2026-03-14T12:00:00Z",
//	    "query_time_us": 412,
//	    "pagination": {"skip": 0, "page_size": 25, "total": 130, "count": 25, "has_more": true}
//	  }
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
// QueryTimeUS is the catalog scan and sort time in microseconds; it is zero
// when the result came from the result cache.
type Metadata struct {
	Timestamp   time.Time   `json:"timestamp"`
	RequestID   string      `json:"request_id,omitempty"`
	QueryTimeUS int64       `json:"query_time_us,omitempty"`
	Cached      bool        `json:"cached,omitempty"`
	Pagination  *Pagination `json:"pagination,omitempty"`
}

// APIError is the error body.
//
//	{
//	  "code": "VALIDATION_ERROR",
//	  "message": "skip must be at least 0",
//	  "details": {"field": "skip", "value": -1}
//	}
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Pagination describes the slice of a sorted result returned in one page.
type Pagination struct {
	Skip     int  `json:"skip"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	Count    int  `json:"count"`
	HasMore  bool `json:"has_more"`
}
