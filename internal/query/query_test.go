// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package query

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tomtom215/hako/internal/catalog"
)

type fakeResolver struct {
	tags  map[string]uint32
	users map[string]uint32
}

func (f fakeResolver) LookupTagID(name string) (uint32, bool) {
	id, ok := f.tags[strings.ToLower(name)]
	return id, ok
}

func (f fakeResolver) LookupUserID(name string) (uint32, bool) {
	id, ok := f.users[strings.ToLower(name)]
	return id, ok
}

var resolver = fakeResolver{
	tags:  map[string]uint32{"fantasy": 2, "space": 5},
	users: map[string]uint32{"alice": 7},
}

func TestDecodeFullTuple(t *testing.T) {
	t.Parallel()

	raw := `[[[0,"Bebop"],[3,"Movie"]],[[1,"Fantasy"],[0,"mecha"]],[[1998,2002],[2020,null],[null,1990],[null,null]],"alice",1]`
	ticket, err := Decode(raw, resolver)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	req := ticket.Request

	wantKw := []catalog.KeywordTerm{
		{Text: "bebop", Mode: catalog.MatchPartial},
		{Text: "movie", Mode: catalog.MatchExact, Exclude: true},
	}
	if len(req.Keywords) != len(wantKw) {
		t.Fatalf("Keywords = %+v", req.Keywords)
	}
	for i, want := range wantKw {
		if req.Keywords[i] != want {
			t.Errorf("Keywords[%d] = %+v, want %+v", i, req.Keywords[i], want)
		}
	}

	wantTags := []catalog.TagCriterion{{ID: 2}, {ID: math.MaxUint32, Exclude: true}}
	if len(req.Tags) != 2 || req.Tags[0] != wantTags[0] || req.Tags[1] != wantTags[1] {
		t.Errorf("Tags = %+v, want %+v", req.Tags, wantTags)
	}

	wantYears := []catalog.Range{catalog.Between(1998, 2002), catalog.From(2020), catalog.Below(1990), catalog.Unbounded()}
	if len(req.Years) != len(wantYears) {
		t.Fatalf("Years = %v", req.Years)
	}
	for i, want := range wantYears {
		if req.Years[i] != want {
			t.Errorf("Years[%d] = %v, want %v", i, req.Years[i], want)
		}
	}

	if req.ForUser == nil || *req.ForUser != 7 || !ticket.UserTargeted() {
		t.Errorf("ForUser = %v, want 7", req.ForUser)
	}
	if req.Adult == nil || *req.Adult {
		t.Errorf("Adult = %v, want false", req.Adult)
	}
	if got := ticket.KeywordString(); got != "Bebop *-Movie" {
		t.Errorf("KeywordString() = %q, want %q", got, "Bebop *-Movie")
	}
	if ticket.User != "alice" {
		t.Errorf("User = %q", ticket.User)
	}
}

func TestDecodeEmptyQuery(t *testing.T) {
	t.Parallel()

	ticket, err := Decode(`[[],[],[],null,3]`, resolver)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	req := ticket.Request
	if len(req.Keywords)+len(req.Tags)+len(req.Years) != 0 || req.Adult != nil || req.ForUser != nil {
		t.Errorf("Request = %+v, want zero filters", req)
	}
	if ticket.UserTargeted() || ticket.KeywordString() != "" {
		t.Error("empty query should not target a user or echo keywords")
	}
}

func TestDecodeUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		user string
		want uint32
	}{
		{`"42"`, 42},
		{`"ALICE"`, 7},
		{`"nobody"`, 0},
		{`"-1"`, 0},
	}
	for _, tt := range tests {
		ticket, err := Decode(`[[],[],[],`+tt.user+`,3]`, resolver)
		if err != nil {
			t.Fatalf("Decode(user=%s) error = %v", tt.user, err)
		}
		if got := ticket.Request.ForUser; got == nil || *got != tt.want {
			t.Errorf("Decode(user=%s) ForUser = %v, want %d", tt.user, got, tt.want)
		}
	}
}

func TestDecodeAdultModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode    string
		want    *bool
		wantErr bool
	}{
		{"1", ptr(false), false},
		{"2", ptr(true), false},
		{"3", nil, false},
		{"0", nil, true},
		{"4", nil, true},
	}
	for _, tt := range tests {
		ticket, err := Decode(`[[],[],[],null,`+tt.mode+`]`, resolver)
		if tt.wantErr {
			if !errors.Is(err, ErrBadAdultMode) {
				t.Errorf("adult %s: error = %v, want ErrBadAdultMode", tt.mode, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("adult %s: error = %v", tt.mode, err)
		}
		got := ticket.Request.Adult
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("adult %s: Adult = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"not json", `[[],[]`, ErrMalformedQuery},
		{"object", `{"a":1}`, ErrMalformedQuery},
		{"four elements", `[[],[],[],null]`, ErrMalformedQuery},
		{"keyword not a pair", `[[[0]],[],[],null,3]`, ErrMalformedQuery},
		{"keyword text a number", `[[[0,5]],[],[],null,3]`, ErrMalformedQuery},
		{"year out of range", `[[],[],[[70000,null]],null,3]`, ErrMalformedQuery},
		{"user a number", `[[],[],[],7,3]`, ErrMalformedQuery},
		{"too long", `[[[0,"` + strings.Repeat("x", 130) + `"]],[],[],null,3]`, ErrQueryTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode(tt.raw, resolver); !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode(%s) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestDecoderMaxLength(t *testing.T) {
	t.Parallel()

	raw := `[[],[],[],null,3]`
	d := &Decoder{Resolver: resolver, MaxLength: len(raw) - 1}
	if _, err := d.Decode(raw); !errors.Is(err, ErrQueryTooLong) {
		t.Errorf("Decode() error = %v, want ErrQueryTooLong", err)
	}
	d.MaxLength = len(raw)
	if _, err := d.Decode(raw); err != nil {
		t.Errorf("Decode() at the limit error = %v", err)
	}
}

func TestParseSortToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tok     string
		mode    catalog.SortMode
		asc     bool
		wantErr bool
	}{
		{"ar", catalog.SortRecommend, true, false},
		{"dr", catalog.SortRecommend, false, false},
		{"al", catalog.SortRelative, true, false},
		{"dl", catalog.SortRelative, false, false},
		{"an", catalog.SortName, true, false},
		{"dn", catalog.SortName, false, false},
		{"ak", catalog.SortRank, true, false},
		{"dk", catalog.SortRank, false, false},
		{"ad", catalog.SortDate, true, false},
		{"dd", catalog.SortDate, false, false},
		{"af", catalog.SortFavCount, true, false},
		{"df", catalog.SortFavCount, false, false},
		{"xr", 0, false, true},
		{"az", 0, false, true},
		{"a", 0, false, true},
		{"drr", 0, false, true},
		{"", 0, false, true},
	}
	for _, tt := range tests {
		mode, asc, err := ParseSortToken(tt.tok)
		if tt.wantErr {
			if !errors.Is(err, ErrBadSortMode) {
				t.Errorf("ParseSortToken(%q) error = %v, want ErrBadSortMode", tt.tok, err)
			}
			continue
		}
		if err != nil || mode != tt.mode || asc != tt.asc {
			t.Errorf("ParseSortToken(%q) = %v, %v, %v; want %v, %v", tt.tok, mode, asc, err, tt.mode, tt.asc)
		}
		if got := SortToken(mode, asc); got != tt.tok {
			t.Errorf("SortToken(%v, %v) = %q, want %q", mode, asc, got, tt.tok)
		}
	}
}

func ptr[T any](v T) *T { return &v }
