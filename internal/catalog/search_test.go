// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"
)

func TestRangeContains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r    Range
		x    uint32
		want bool
	}{
		{Between(10, 20), 9, false},
		{Between(10, 20), 10, true},
		{Between(10, 20), 19, true},
		{Between(10, 20), 20, false},
		{From(5), 4, false},
		{From(5), 5, true},
		{From(5), math.MaxUint32, true},
		{Below(3), 0, true},
		{Below(3), 3, false},
		{Unbounded(), 0, true},
		{Range{}, math.MaxUint32, true},
		{Between(7, 7), 7, false},
	}
	for _, tt := range tests {
		if got := tt.r.Contains(tt.x); got != tt.want {
			t.Errorf("%s.Contains(%d) = %v, want %v", tt.r, tt.x, got, tt.want)
		}
	}
	if !(Range{}).IsUnbounded() || From(1).IsUnbounded() {
		t.Error("IsUnbounded() mismatch")
	}
}

func TestSearchFilters(t *testing.T) {
	t.Parallel()

	db := openFixture(t)
	tests := []struct {
		name string
		req  Request
		want []uint32
	}{
		{"empty request", Request{}, []uint32{10, 20, 30, 40, 50, 60}},
		{"not adult", Request{Adult: ptr(false)}, []uint32{10, 20, 30, 40, 60}},
		{"adult only", Request{Adult: ptr(true)}, []uint32{50}},
		{"include tag", Request{Tags: []TagCriterion{{ID: tagFantasy}}}, []uint32{10, 40}},
		{"include and exclude", Request{Tags: []TagCriterion{{ID: tagFantasy}, {ID: tagDrama, Exclude: true}}}, []uint32{10}},
		{"include unknown tag", Request{Tags: []TagCriterion{{ID: math.MaxUint32}}}, []uint32{}},
		{"exclude unknown tag", Request{Tags: []TagCriterion{{ID: math.MaxUint32, Exclude: true}}}, []uint32{10, 20, 30, 40, 50, 60}},
		{"year range", Request{Years: []Range{Between(2000, 2012)}}, []uint32{30, 40, 50}},
		{"year union", Request{Years: []Range{Below(2000), From(2023)}}, []uint32{10, 20}},
		{"year range is half open", Request{Years: []Range{Between(2011, 2018)}}, []uint32{40}},
		{"rank", Request{Rank: Below(10)}, []uint32{10, 20, 40}},
		{"rating count", Request{RatingCount: From(300)}, []uint32{10, 20, 30}},
		{"rank and rating count", Request{Rank: Below(10), RatingCount: Between(100, 600)}, []uint32{10}},
		{"exact include", Request{Keywords: []KeywordTerm{{Text: "bebop", Mode: MatchExact}}}, []uint32{20, 30}},
		{"exact include localized", Request{Keywords: []KeywordTerm{{Text: "THE MOVIE", Mode: MatchExact}}}, []uint32{30}},
		{"exact include script", Request{Keywords: []KeywordTerm{{Text: "キャン", Mode: MatchExact}}}, []uint32{60}},
		{"exact exclude", Request{Keywords: []KeywordTerm{{Text: "Bebop", Mode: MatchExact, Exclude: true}}}, []uint32{10, 40, 50, 60}},
		{"partial never excludes", Request{Keywords: []KeywordTerm{{Text: "zzzz"}}}, []uint32{10, 20, 30, 40, 50, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := resultIDs(db.Search(&tt.req))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Search() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchUserRelation(t *testing.T) {
	t.Parallel()

	db := openFixture(t)

	for _, r := range db.Search(&Request{}) {
		if r.UserRelation != NoRelation {
			t.Errorf("entry %d: UserRelation = %d without a target user, want %d", r.Entry.ID, r.UserRelation, NoRelation)
		}
	}

	got := db.Search(&Request{ForUser: ptr(uint32(7))})
	want := map[uint32]uint16{10: 3, 20: 1, 30: 0, 40: 0, 50: 0, 60: 0}
	if len(got) != len(want) {
		t.Fatalf("Search(ForUser=7) returned %d results, want %d", len(got), len(want))
	}
	for _, r := range got {
		if r.UserRelation != want[r.Entry.ID] {
			t.Errorf("entry %d: UserRelation = %d, want %d", r.Entry.ID, r.UserRelation, want[r.Entry.ID])
		}
	}

	if got := db.Search(&Request{ForUser: ptr(uint32(8))}); len(got) != 0 {
		t.Errorf("unknown user should match nothing, got %v", resultIDs(got))
	}
}

func relevanceOf(t *testing.T, results []SearchResult, id uint32) float64 {
	t.Helper()
	for _, r := range results {
		if r.Entry.ID == id {
			return r.KeywordRelevance
		}
	}
	t.Fatalf("entry %d not in results", id)
	return 0
}

func TestKeywordScoring(t *testing.T) {
	t.Parallel()

	db := openFixture(t)

	t.Run("no terms means zero relevance", func(t *testing.T) {
		t.Parallel()
		for _, r := range db.Search(&Request{}) {
			if r.KeywordRelevance != 0 {
				t.Errorf("entry %d: relevance %v, want 0", r.Entry.ID, r.KeywordRelevance)
			}
		}
	})

	t.Run("partial include of the exact title", func(t *testing.T) {
		t.Parallel()
		res := db.Search(&Request{Keywords: []KeywordTerm{{Text: "Cowboy Bebop"}}})
		if got := relevanceOf(t, res, 20); got < 1.0 || math.Abs(got-2.0) > 1e-9 {
			t.Errorf("relevance = %v, want 2.0 (containment bonus + similarity 1)", got)
		}
	})

	t.Run("partial include against localized title", func(t *testing.T) {
		t.Parallel()
		res := db.Search(&Request{Keywords: []KeywordTerm{{Text: "葬送のフリーレン"}}})
		if got := relevanceOf(t, res, 10); math.Abs(got-2.0) > 1e-9 {
			t.Errorf("relevance = %v, want 2.0", got)
		}
	})

	t.Run("partial exclude subtracts", func(t *testing.T) {
		t.Parallel()
		res := db.Search(&Request{Keywords: []KeywordTerm{{Text: "cowboy bebop", Exclude: true}}})
		if got := relevanceOf(t, res, 20); math.Abs(got+2.0) > 1e-9 {
			t.Errorf("relevance = %v, want -2.0", got)
		}
		if got := relevanceOf(t, res, 60); got > 0 {
			t.Errorf("unrelated entry relevance = %v, want <= 0", got)
		}
	})

	t.Run("mean over terms", func(t *testing.T) {
		t.Parallel()
		res := db.Search(&Request{Keywords: []KeywordTerm{
			{Text: "cowboy bebop"},
			{Text: "bebop", Mode: MatchExact},
		}})
		// Exact terms contribute 0 but count towards the mean.
		if got := relevanceOf(t, res, 20); math.Abs(got-1.0) > 1e-9 {
			t.Errorf("relevance = %v, want 1.0", got)
		}
	})

	t.Run("exact exclude removes rather than penalizes", func(t *testing.T) {
		t.Parallel()
		res := db.Search(&Request{Keywords: []KeywordTerm{
			{Text: "Cowboy Bebop"},
			{Text: "the movie", Mode: MatchExact, Exclude: true},
		}})
		if slices.Contains(resultIDs(res), 30) {
			t.Error("entry 30 should be removed by the exact exclude term")
		}
		if !slices.Contains(resultIDs(res), 20) {
			t.Error("entry 20 should remain")
		}
	})
}

// satisfies re-checks every predicate independently of the engine.
func satisfies(db *Database, req *Request, r SearchResult) error {
	e := r.Entry
	if req.Adult != nil && *req.Adult != e.Adult {
		return fmt.Errorf("adult flag %v", e.Adult)
	}
	for _, tc := range req.Tags {
		if e.HasTag(tc.ID) == tc.Exclude {
			return fmt.Errorf("tag criterion %+v", tc)
		}
	}
	if len(req.Years) > 0 {
		ok := false
		for _, y := range req.Years {
			ok = ok || y.Contains(uint32(e.AirYear))
		}
		if !ok {
			return fmt.Errorf("year %d", e.AirYear)
		}
	}
	if !req.Rank.Contains(e.Rank) {
		return fmt.Errorf("rank %d outside %s", e.Rank, req.Rank)
	}
	if !req.RatingCount.Contains(e.RatingCount) {
		return fmt.Errorf("rating count %d outside %s", e.RatingCount, req.RatingCount)
	}
	if req.ForUser != nil {
		rel, ok := db.UserEntryRelation(*req.ForUser, e.ID)
		if !ok || rel != r.UserRelation {
			return fmt.Errorf("user relation %d, stored %d (%v)", r.UserRelation, rel, ok)
		}
	} else if r.UserRelation != NoRelation {
		return fmt.Errorf("user relation %d without target user", r.UserRelation)
	}
	return nil
}

func randomRange(rng *rand.Rand, limit uint32) Range {
	a, b := rng.Uint32N(limit), rng.Uint32N(limit)
	switch rng.IntN(4) {
	case 0:
		return Between(min(a, b), max(a, b))
	case 1:
		return From(a)
	case 2:
		return Below(b)
	}
	return Unbounded()
}

func randomRequest(rng *rand.Rand) *Request {
	req := &Request{
		Rank:        randomRange(rng, 1000),
		RatingCount: randomRange(rng, 900),
	}
	for range rng.IntN(3) {
		req.Tags = append(req.Tags, TagCriterion{ID: rng.Uint32N(7), Exclude: rng.IntN(2) == 0})
	}
	for range rng.IntN(3) {
		req.Years = append(req.Years, randomRange(rng, 2030))
	}
	switch rng.IntN(3) {
	case 0:
		req.Adult = ptr(false)
	case 1:
		req.Adult = ptr(true)
	}
	switch rng.IntN(3) {
	case 0:
		req.ForUser = ptr(uint32(7))
	case 1:
		req.ForUser = ptr(uint32(3))
	}
	return req
}

func TestSearchNeverViolatesPredicates(t *testing.T) {
	t.Parallel()

	db := openFixture(t)
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 2000 {
		req := randomRequest(rng)
		got := db.Search(req)
		matched := make(map[uint32]bool, len(got))
		for _, r := range got {
			matched[r.Entry.ID] = true
			if err := satisfies(db, req, r); err != nil {
				t.Fatalf("request %d %+v returned entry %d violating %v", i, req, r.Entry.ID, err)
			}
		}
		// Completeness: every entry passing the predicates is returned.
		for e := range db.Entries() {
			if matched[e.ID] {
				continue
			}
			rel, _ := db.UserEntryRelation(derefOr(req.ForUser, 0), e.ID)
			if req.ForUser == nil {
				rel = NoRelation
			}
			if satisfies(db, req, SearchResult{Entry: e, UserRelation: rel}) == nil {
				if req.ForUser == nil || db.hasUser(*req.ForUser) {
					t.Fatalf("request %d %+v missed entry %d", i, req, e.ID)
				}
			}
		}
	}
}

func derefOr(p *uint32, def uint32) uint32 {
	if p == nil {
		return def
	}
	return *p
}

func (db *Database) hasUser(id uint32) bool {
	_, ok := db.userIndex(id)
	return ok
}

// syntheticTable builds n entries with varied fields and two users.
func syntheticTable(n int) (*Table, []uint16) {
	rng := rand.New(rand.NewPCG(42, 7))
	tb := &Table{
		UserIDs:   []uint32{1, 2},
		Usernames: []string{"one", "two"},
		TagNames:  []string{"a", "b", "c", "d"},
		Entries:   make([]Entry, n),
	}
	words := []string{"sky", "sea", "night", "star", "river", "garden", "train", "winter"}
	for i := range tb.Entries {
		e := &tb.Entries[i]
		e.ID = uint32(i*3 + 1)
		e.Rank = rng.Uint32N(5000)
		e.Title = words[rng.IntN(len(words))] + " " + words[rng.IntN(len(words))]
		if rng.IntN(2) == 0 {
			e.TitleLocalized = words[rng.IntN(len(words))]
		}
		e.Score = float32(rng.IntN(100)) / 10
		e.RatingCount = rng.Uint32N(400)
		e.AirYear = uint16(1990 + rng.IntN(35))
		e.Adult = rng.IntN(10) == 0
		for tag := range uint32(4) {
			if rng.IntN(3) == 0 {
				e.Tags = append(e.Tags, TagRef{ID: tag, Weight: 1})
			}
		}
	}
	matrix := make([]uint16, 2*n)
	for i := range matrix {
		matrix[i] = uint16(rng.IntN(20))
	}
	return tb, matrix
}

func TestParallelScanMatchesSequential(t *testing.T) {
	t.Parallel()

	tb, matrix := syntheticTable(5003)
	seq, err := FromTable(tb, matrix, Options{SearchWorkers: 1, ParallelThreshold: 1})
	if err != nil {
		t.Fatal(err)
	}
	par, err := FromTable(tb, matrix, Options{SearchWorkers: 7, ParallelThreshold: 100})
	if err != nil {
		t.Fatal(err)
	}

	requests := []*Request{
		{},
		{Keywords: []KeywordTerm{{Text: "star river"}, {Text: "night", Mode: MatchExact, Exclude: true}}},
		{Tags: []TagCriterion{{ID: 1}, {ID: 3, Exclude: true}}, Years: []Range{Between(2000, 2010)}},
		{ForUser: ptr(uint32(2)), Adult: ptr(false), RatingCount: From(100)},
	}
	for i, req := range requests {
		a, b := seq.Search(req), par.Search(req)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("request %d: parallel scan differs from sequential (%d vs %d results)", i, len(b), len(a))
		}
	}
}

func BenchmarkSearchKeyword(b *testing.B) {
	tb, matrix := syntheticTable(20000)
	db, err := FromTable(tb, matrix, DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	req := &Request{Keywords: []KeywordTerm{{Text: "winter garden"}}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		db.Search(req)
	}
}
