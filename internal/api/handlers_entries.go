// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tomtom215/hako/internal/catalog"
	"github.com/tomtom215/hako/internal/logging"
	"github.com/tomtom215/hako/internal/metrics"
	"github.com/tomtom215/hako/internal/models"
	"github.com/tomtom215/hako/internal/query"
	"github.com/tomtom215/hako/internal/validation"
)

type pageParams struct {
	Sort string `param:"sort" validate:"required,sorttoken"`
	Skip int    `param:"skip" validate:"min=0"`
}

// parsePageParams reads and validates {sort} and {skip}. It writes the
// error response itself and returns false on failure.
func parsePageParams(w http.ResponseWriter, r *http.Request) (pageParams, bool) {
	skip, err := strconv.Atoi(pathParam(r, "skip"))
	if err != nil {
		metrics.RecordQueryRejection("bad_skip")
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "skip must be a non-negative integer", nil)
		return pageParams{}, false
	}
	p := pageParams{Sort: pathParam(r, "sort"), Skip: skip}
	if verr := validation.ValidateStruct(&p); verr != nil {
		metrics.RecordQueryRejection("bad_params")
		respondValidationError(w, r, verr)
		return pageParams{}, false
	}
	return p, true
}

// List serves the whole catalog sorted by {sort}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePageParams(w, r)
	if !ok {
		return
	}
	if p.Skip >= h.db.EntryCount() {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound,
			fmt.Sprintf("skip %d is past the end of %d entries", p.Skip, h.db.EntryCount()), nil)
		return
	}

	key := "list\x00" + p.Sort
	start := time.Now()
	cached, hit := h.results.Get(key)
	metrics.RecordResultCache(hit)
	if !hit {
		mode, ascending, _ := query.ParseSortToken(p.Sort)
		sorted := catalog.SortEntries(h.db.EntryList(), mode, ascending)
		results := make([]catalog.SearchResult, len(sorted))
		for i, e := range sorted {
			results[i] = catalog.SearchResult{Entry: e, UserRelation: catalog.NoRelation}
		}
		cached = &cachedSearch{results: results}
		h.results.Add(key, cached)
	}

	page := h.page(cached.results, p, func(skip int) string {
		return fmt.Sprintf("/api/v1/list/%s/%d", p.Sort, skip)
	})
	respondSuccess(w, r, page, h.pageMetadata(len(cached.results), len(page.Entries), p.Skip, hit, start))
}

// Search decodes {query}, searches, sorts by {sort} and serves one page.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePageParams(w, r)
	if !ok {
		return
	}
	raw := pathParam(r, "query")
	if p.Skip >= h.db.EntryCount() {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound,
			fmt.Sprintf("skip %d is past the end of %d entries", p.Skip, h.db.EntryCount()), nil)
		return
	}

	key := "search\x00" + p.Sort + "\x00" + raw
	start := time.Now()
	cached, hit := h.results.Get(key)
	metrics.RecordResultCache(hit)
	if !hit {
		ticket, err := h.decoder.Decode(raw)
		if err != nil {
			metrics.RecordQueryRejection(rejectionReason(err))
			respondError(w, r, http.StatusBadRequest, ErrCodeInvalidQuery, err.Error(), nil)
			return
		}
		mode, ascending, _ := query.ParseSortToken(p.Sort)
		results := catalog.SortResults(h.db.Search(&ticket.Request), mode, ascending)
		cached = &cachedSearch{ticket: ticket, results: results}
		h.results.Add(key, cached)

		logging.Ctx(r.Context()).Debug().
			Str("sort", p.Sort).
			Int("results", len(results)).
			Dur("elapsed", time.Since(start)).
			Msg("Search executed")
	}

	if p.Skip >= len(cached.results) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound,
			fmt.Sprintf("skip %d is past the end of %d results", p.Skip, len(cached.results)), nil)
		return
	}

	escaped := url.PathEscape(raw)
	page := h.page(cached.results, p, func(skip int) string {
		return fmt.Sprintf("/api/v1/search/%s/%s/%d", escaped, p.Sort, skip)
	})
	page.Search = &models.SearchEcho{
		Query:    raw,
		Keywords: cached.ticket.KeywordString(),
		User:     cached.ticket.User,
		Sort:     p.Sort,
		Adult:    cached.ticket.Adult,
	}
	respondSuccess(w, r, page, h.pageMetadata(len(cached.results), len(page.Entries), p.Skip, hit, start))
}

// page cuts one page out of sorted results. p.Skip must be below
// len(results).
func (h *Handler) page(results []catalog.SearchResult, p pageParams, link func(skip int) string) *models.EntryPage {
	size := h.cfg.PageSize
	end := min(p.Skip+size, len(results))

	entries := make([]models.EntryView, 0, end-p.Skip)
	for i := p.Skip; i < end; i++ {
		entries = append(entries, h.present.result(&results[i]))
	}

	pages := (len(results) + size - 1) / size
	return &models.EntryPage{
		Entries: entries,
		Pager: buildPager(p.Skip/size, pages, func(page int) string {
			return link(page * size)
		}),
	}
}

func (h *Handler) pageMetadata(total, count, skip int, cached bool, start time.Time) models.Metadata {
	meta := models.Metadata{
		Cached: cached,
		Pagination: &models.Pagination{
			Skip:     skip,
			PageSize: h.cfg.PageSize,
			Total:    total,
			Count:    count,
			HasMore:  skip+count < total,
		},
	}
	if !cached {
		meta.QueryTimeUS = time.Since(start).Microseconds()
	}
	return meta
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, query.ErrQueryTooLong):
		return "query_too_long"
	case errors.Is(err, query.ErrBadAdultMode):
		return "bad_adult_mode"
	case errors.Is(err, query.ErrMalformedQuery):
		return "malformed_query"
	}
	return "other"
}
