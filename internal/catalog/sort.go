// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// SortMode selects the ordering key.
type SortMode uint8

const (
	// SortRecommend orders results by user relation. Plain entry lists
	// have no relation and fall back to the popularity score.
	SortRecommend SortMode = iota
	// SortRelative orders results by keyword relevance, entry lists by
	// popularity score.
	SortRelative
	// SortName orders by display title.
	SortName
	// SortRank orders by popularity score, not by the stored Rank field.
	SortRank
	// SortDate orders by release date.
	SortDate
	// SortFavCount orders by rating count.
	SortFavCount
)

var sortModeNames = [...]string{"recommend", "relative", "name", "rank", "date", "favcount"}

func (m SortMode) String() string {
	if int(m) < len(sortModeNames) {
		return sortModeNames[m]
	}
	return "unknown"
}

// PopularityScore is score * log2(min(ratingCount/100, 1) + 1). The volume
// credit saturates at 100 ratings.
func PopularityScore(e *Entry) float64 {
	confidence := min(float64(e.RatingCount)/100, 1)
	return float64(e.Score) * math.Log2(confidence+1)
}

// DateKey packs the release date into one ascending-comparable integer.
func DateKey(e *Entry) uint32 {
	return uint32(e.AirYear)<<16 | uint32(e.AirMonth)<<8 | uint32(e.AirDay)
}

func compareEntries(mode SortMode) func(a, b *Entry) int {
	switch mode {
	case SortName:
		return func(a, b *Entry) int { return strings.Compare(a.DisplayTitle(), b.DisplayTitle()) }
	case SortDate:
		return func(a, b *Entry) int { return cmp.Compare(DateKey(a), DateKey(b)) }
	case SortFavCount:
		return func(a, b *Entry) int { return cmp.Compare(a.RatingCount, b.RatingCount) }
	default:
		return func(a, b *Entry) int { return cmp.Compare(PopularityScore(a), PopularityScore(b)) }
	}
}

// stableSort sorts s in place. Descending order swaps the comparator
// arguments instead of reversing the output, so equal elements keep their
// input order in both directions.
func stableSort[T any](s []T, compare func(a, b T) int, ascending bool) {
	if ascending {
		slices.SortStableFunc(s, compare)
		return
	}
	slices.SortStableFunc(s, func(a, b T) int { return compare(b, a) })
}

// SortEntries returns a new slice of entries ordered by mode.
func SortEntries(entries []*Entry, mode SortMode, ascending bool) []*Entry {
	out := slices.Clone(entries)
	stableSort(out, compareEntries(mode), ascending)
	return out
}

// SortResults returns a new slice of search results ordered by mode.
func SortResults(results []SearchResult, mode SortMode, ascending bool) []SearchResult {
	var compare func(a, b SearchResult) int
	switch mode {
	case SortRecommend:
		compare = func(a, b SearchResult) int { return cmp.Compare(a.UserRelation, b.UserRelation) }
	case SortRelative:
		compare = func(a, b SearchResult) int { return cmp.Compare(a.KeywordRelevance, b.KeywordRelevance) }
	default:
		byEntry := compareEntries(mode)
		compare = func(a, b SearchResult) int { return byEntry(a.Entry, b.Entry) }
	}
	out := slices.Clone(results)
	stableSort(out, compare, ascending)
	return out
}
