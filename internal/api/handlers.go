// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/hako/internal/cache"
	"github.com/tomtom215/hako/internal/catalog"
	"github.com/tomtom215/hako/internal/config"
	"github.com/tomtom215/hako/internal/metrics"
	"github.com/tomtom215/hako/internal/models"
	"github.com/tomtom215/hako/internal/query"
	"github.com/tomtom215/hako/internal/validation"
)

// cachedSearch is a decoded and sorted search, reused across pages.
type cachedSearch struct {
	ticket  *query.Ticket
	results []catalog.SearchResult
}

// Handler holds the catalog and per-service state for the HTTP handlers.
type Handler struct {
	db        *catalog.Database
	cfg       config.APIConfig
	decoder   *query.Decoder
	present   *presenter
	results   *cache.LRU[*cachedSearch]
	startTime time.Time
}

// NewHandler creates handlers serving db. db may be nil, in which case the
// readiness probe reports not ready and catalog routes answer 503.
func NewHandler(db *catalog.Database, cfg *config.APIConfig) *Handler {
	h := &Handler{
		cfg:       *cfg,
		results:   cache.NewLRU[*cachedSearch](cfg.CacheSize, cfg.CacheTTL),
		startTime: time.Now(),
	}
	if db != nil {
		h.db = db
		h.decoder = &query.Decoder{Resolver: db, MaxLength: cfg.MaxQueryLength}
		h.present = &presenter{
			subjectBase: cfg.SubjectURLBase,
			imageBase:   cfg.ImageURLBase,
			entryCount:  db.EntryCount(),
		}
	}
	return h
}

// CleanupCache drops expired search results and updates the cache size
// gauge. The supervisor calls it periodically.
func (h *Handler) CleanupCache() int {
	removed := h.results.CleanupExpired()
	metrics.ResultCacheSize.Set(float64(h.results.Len()))
	return removed
}

// HealthLive reports that the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]any{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady reports whether a snapshot is loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotReady, "Catalog not loaded", nil)
		return
	}
	respondSuccess(w, r, map[string]any{
		"ready":   true,
		"entries": h.db.EntryCount(),
		"uptime":  time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// Info describes the loaded snapshot.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, &models.CatalogInfo{
		Date:         h.db.Date().String(),
		ScaleFactors: h.db.ScaleFactors(),
		Entries:      h.db.EntryCount(),
		Users:        h.db.UserCount(),
		Tags:         h.db.TagCount(),
	}, models.Metadata{})
}

type nameParams struct {
	Name string `param:"name" validate:"required,max=256"`
}

// Tag resolves a tag name case-insensitively.
func (h *Handler) Tag(w http.ResponseWriter, r *http.Request) {
	p := nameParams{Name: pathParam(r, "name")}
	if verr := validation.ValidateStruct(&p); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	id, ok := h.db.LookupTagID(p.Name)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Tag not found", nil)
		return
	}
	name, _ := h.db.TagName(id)
	respondSuccess(w, r, &models.TagInfo{ID: id, Name: name, Entries: h.db.TagEntryCount(id)}, models.Metadata{})
}

// User resolves a username case-insensitively.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	p := nameParams{Name: pathParam(r, "name")}
	if verr := validation.ValidateStruct(&p); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	id, ok := h.db.LookupUserID(p.Name)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "User not found", nil)
		return
	}
	name, _ := h.db.Username(id)
	respondSuccess(w, r, &models.UserInfo{ID: id, Username: name}, models.Metadata{})
}

// pathParam returns a URL parameter unescaped. chi matches against RawPath
// when the request has one, and then leaves parameters escaped.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
