// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"fmt"
	"time"

	conciter "github.com/sourcegraph/conc/iter"

	"github.com/tomtom215/hako/internal/match"
	"github.com/tomtom215/hako/internal/metrics"
)

// MatchMode selects how a keyword term is compared against titles.
type MatchMode uint8

const (
	// MatchPartial scores the term by containment and edit distance.
	MatchPartial MatchMode = iota
	// MatchExact requires (or forbids) substring containment.
	MatchExact
)

// KeywordTerm is one keyword of a request.
type KeywordTerm struct {
	Text    string
	Mode    MatchMode
	Exclude bool
}

// TagCriterion requires (or forbids) a tag id on matching entries.
type TagCriterion struct {
	ID      uint32
	Exclude bool
}

// Range is a set of uint32 values. The zero value is unbounded.
type Range struct {
	lo, hi       uint32
	hasLo, hasHi bool
}

// Between is the half-open range [lo, hi).
func Between(lo, hi uint32) Range { return Range{lo: lo, hi: hi, hasLo: true, hasHi: true} }

// From is [lo, +inf).
func From(lo uint32) Range { return Range{lo: lo, hasLo: true} }

// Below is [0, hi).
func Below(hi uint32) Range { return Range{hi: hi, hasHi: true} }

// Unbounded contains every value.
func Unbounded() Range { return Range{} }

// Contains reports whether x is in r.
func (r Range) Contains(x uint32) bool {
	if r.hasLo && x < r.lo {
		return false
	}
	if r.hasHi && x >= r.hi {
		return false
	}
	return true
}

// IsUnbounded reports whether r places no restriction.
func (r Range) IsUnbounded() bool { return !r.hasLo && !r.hasHi }

func (r Range) String() string {
	switch {
	case r.hasLo && r.hasHi:
		return fmt.Sprintf("[%d,%d)", r.lo, r.hi)
	case r.hasLo:
		return fmt.Sprintf("[%d,)", r.lo)
	case r.hasHi:
		return fmt.Sprintf("[,%d)", r.hi)
	}
	return "[,)"
}

// Request describes one search. The zero value matches every entry.
type Request struct {
	Keywords []KeywordTerm
	Tags     []TagCriterion

	// Years is a union of ranges over the release year; empty means any year.
	Years []Range

	Rank        Range
	RatingCount Range

	// Adult, when set, must equal the entry's adult flag.
	Adult *bool

	// ForUser restricts results to entries with a stored relation for this
	// user and reports that relation on each result.
	ForUser *uint32
}

type preparedTerm struct {
	KeywordTerm
	folded string
	runes  []rune
}

// plan is a Request resolved against this database once per search.
type plan struct {
	req     *Request
	terms   []preparedTerm
	userRow int // -1 when no user is targeted
}

func (db *Database) prepare(req *Request) (*plan, bool) {
	p := &plan{req: req, userRow: -1}
	if req.ForUser != nil {
		row, ok := db.userIndex(*req.ForUser)
		if !ok {
			return nil, false
		}
		p.userRow = row
	}
	p.terms = make([]preparedTerm, len(req.Keywords))
	for i, k := range req.Keywords {
		folded := match.Fold(k.Text)
		p.terms[i] = preparedTerm{KeywordTerm: k, folded: folded, runes: []rune(folded)}
	}
	return p, true
}

// Search evaluates req against every entry and returns the matches in
// catalog order. Sorting is left to SortResults.
func (db *Database) Search(req *Request) []SearchResult {
	start := time.Now()
	p, ok := db.prepare(req)
	if !ok {
		metrics.RecordSearch(false, 0, time.Since(start))
		return []SearchResult{}
	}

	n := len(db.table.Entries)
	parallel := n >= db.opts.ParallelThreshold && db.opts.SearchWorkers > 1
	var out []SearchResult
	if parallel {
		out = db.scanParallel(p, n)
	} else {
		out = db.scan(p, 0, n)
	}
	metrics.RecordSearch(parallel, len(out), time.Since(start))
	return out
}

type span struct{ lo, hi int }

// scanParallel splits the catalog into contiguous spans, scans them
// concurrently and concatenates the partial results in span order, which
// reproduces the sequential output exactly.
func (db *Database) scanParallel(p *plan, n int) []SearchResult {
	workers := db.opts.SearchWorkers
	size := (n + workers - 1) / workers
	spans := make([]span, 0, workers)
	for lo := 0; lo < n; lo += size {
		spans = append(spans, span{lo: lo, hi: min(lo+size, n)})
	}

	mapper := conciter.Mapper[span, []SearchResult]{MaxGoroutines: workers}
	parts := mapper.Map(spans, func(s *span) []SearchResult {
		return db.scan(p, s.lo, s.hi)
	})

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	out := make([]SearchResult, 0, total)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

func (db *Database) scan(p *plan, lo, hi int) []SearchResult {
	out := []SearchResult{}
	for i := lo; i < hi; i++ {
		if r, ok := db.evaluate(p, i); ok {
			out = append(out, r)
		}
	}
	return out
}

// evaluate applies the predicates to the entry at catalog position idx in a
// fixed order and stops at the first failure.
func (db *Database) evaluate(p *plan, idx int) (SearchResult, bool) {
	req := p.req
	e := &db.table.Entries[idx]

	if req.Adult != nil && *req.Adult != e.Adult {
		return SearchResult{}, false
	}

	for _, tc := range req.Tags {
		if db.hasTag(idx, tc.ID) == tc.Exclude {
			return SearchResult{}, false
		}
	}

	if len(req.Years) > 0 && !anyContains(req.Years, uint32(e.AirYear)) {
		return SearchResult{}, false
	}

	if !req.Rank.Contains(e.Rank) || !req.RatingCount.Contains(e.RatingCount) {
		return SearchResult{}, false
	}

	relation := NoRelation
	if p.userRow >= 0 {
		relation = db.relationAt(p.userRow, idx)
	}

	relevance, ok := db.keywordRelevance(p.terms, &db.titles[idx])
	if !ok {
		return SearchResult{}, false
	}

	return SearchResult{Entry: e, KeywordRelevance: relevance, UserRelation: relation}, true
}

func anyContains(ranges []Range, x uint32) bool {
	for _, r := range ranges {
		if r.Contains(x) {
			return true
		}
	}
	return false
}

// keywordRelevance returns the mean signed contribution of terms, or false
// when an exact term excludes the entry.
func (db *Database) keywordRelevance(terms []preparedTerm, ft *foldedTitles) (float64, bool) {
	if len(terms) == 0 {
		return 0, true
	}
	var sum float64
	for i := range terms {
		t := &terms[i]
		hit := match.ContainsFolded(t.folded, ft.localized) || match.ContainsFolded(t.folded, ft.title)
		switch t.Mode {
		case MatchExact:
			if hit == t.Exclude {
				return 0, false
			}
		default:
			c := max(match.PartialSimilarity(t.runes, ft.localizedRunes), match.PartialSimilarity(t.runes, ft.titleRunes))
			if hit {
				c++
			}
			if t.Exclude {
				sum -= c
			} else {
				sum += c
			}
		}
	}
	return sum / float64(len(terms)), true
}
