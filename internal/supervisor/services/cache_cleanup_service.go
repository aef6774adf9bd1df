// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package services

import (
	"context"
	"time"

	"github.com/tomtom215/hako/internal/logging"
)

// DefaultCleanupInterval is used when the configured interval is not positive.
const DefaultCleanupInterval = time.Minute

// CacheCleaner evicts expired cache entries and reports how many it removed.
// *api.Handler satisfies it.
type CacheCleaner interface {
	CleanupCache() int
}

// CacheCleanupService calls CleanupCache on a fixed interval until its
// context ends.
type CacheCleanupService struct {
	cleaner  CacheCleaner
	interval time.Duration
	name     string
}

// NewCacheCleanupService creates a cleanup loop for cleaner.
func NewCacheCleanupService(cleaner CacheCleaner, interval time.Duration) *CacheCleanupService {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CacheCleanupService{
		cleaner:  cleaner,
		interval: interval,
		name:     "cache-cleanup",
	}
}

// Serve implements suture.Service.
func (s *CacheCleanupService) Serve(ctx context.Context) error {
	log := logging.WithComponent(s.name)
	log.Debug().Dur("interval", s.interval).Msg("Cache cleanup started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.cleaner.CleanupCache(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("Expired search results evicted")
			}
		}
	}
}

// String names the service in supervisor events.
func (s *CacheCleanupService) String() string {
	return s.name
}
