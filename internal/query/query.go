// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

// Package query decodes the compact query tuple carried in search URLs into
// a catalog.Request.
//
// A query is a JSON array of five elements:
//
//	[keywords, tags, years, user, adult]
//
// keywords is a list of [opt, text] pairs where bit 0 of opt excludes the
// term and bit 1 requires an exact substring match. tags is a list of
// [include, name] pairs where include == 1 requires the tag and any other
// value forbids it. years is a list of [from, to] pairs with either bound
// nullable. user is null, a numeric user id, or a username. adult is 1
// (safe only), 2 (adult only) or 3 (no filter).
package query

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hako/internal/catalog"
	"github.com/tomtom215/hako/internal/match"
)

// DefaultMaxLength is the longest raw query accepted, in bytes.
const DefaultMaxLength = 127

var (
	ErrBadSortMode    = errors.New("bad sort mode")
	ErrBadAdultMode   = errors.New("bad adult mode")
	ErrQueryTooLong   = errors.New("query too long")
	ErrMalformedQuery = errors.New("malformed query")
)

// Keyword option bits.
const (
	optExclude = 1 << 0
	optExact   = 1 << 1
)

// Resolver maps tag names and usernames to ids. *catalog.Database
// satisfies it.
type Resolver interface {
	LookupTagID(name string) (uint32, bool)
	LookupUserID(name string) (uint32, bool)
}

// Keyword is one keyword as written in the query.
type Keyword struct {
	Opt  uint8
	Text string
}

// Ticket is a decoded query: the catalog request plus the raw pieces needed
// to echo the query back to the client.
type Ticket struct {
	Request  catalog.Request
	Keywords []Keyword
	User     string
	Adult    uint8
}

// UserTargeted reports whether the query names a user.
func (t *Ticket) UserTargeted() bool { return t.Request.ForUser != nil }

// KeywordString renders the keywords as a search box would show them:
// exact terms prefixed with "*", excluded terms with "-".
func (t *Ticket) KeywordString() string {
	var sb strings.Builder
	for i, k := range t.Keywords {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if k.Opt&optExact != 0 {
			sb.WriteByte('*')
		}
		if k.Opt&optExclude != 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(k.Text)
	}
	return sb.String()
}

// Decoder decodes raw queries against a Resolver.
type Decoder struct {
	Resolver  Resolver
	MaxLength int
}

// Decode decodes raw with the default length limit.
func Decode(raw string, r Resolver) (*Ticket, error) {
	return (&Decoder{Resolver: r, MaxLength: DefaultMaxLength}).Decode(raw)
}

// Decode parses raw into a Ticket. Unknown tag names resolve to an id no
// entry carries and unknown usernames to user id 0, so both narrow the
// result instead of failing the query.
func (d *Decoder) Decode(raw string) (*Ticket, error) {
	limit := d.MaxLength
	if limit <= 0 {
		limit = DefaultMaxLength
	}
	if len(raw) > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrQueryTooLong, len(raw), limit)
	}

	var (
		keywords []json.RawMessage
		tags     []json.RawMessage
		years    []json.RawMessage
		user     *string
		adult    uint8
	)
	if err := decodeTuple([]byte(raw), &keywords, &tags, &years, &user, &adult); err != nil {
		return nil, err
	}

	t := &Ticket{Adult: adult}
	req := &t.Request

	switch adult {
	case 1:
		req.Adult = boolPtr(false)
	case 2:
		req.Adult = boolPtr(true)
	case 3:
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadAdultMode, adult)
	}

	for _, k := range keywords {
		var kw Keyword
		if err := decodeTuple(k, &kw.Opt, &kw.Text); err != nil {
			return nil, err
		}
		t.Keywords = append(t.Keywords, kw)
		term := catalog.KeywordTerm{Text: match.Fold(kw.Text), Exclude: kw.Opt&optExclude != 0}
		if kw.Opt&optExact != 0 {
			term.Mode = catalog.MatchExact
		}
		req.Keywords = append(req.Keywords, term)
	}

	for _, tag := range tags {
		var (
			include uint8
			name    string
		)
		if err := decodeTuple(tag, &include, &name); err != nil {
			return nil, err
		}
		id, ok := d.Resolver.LookupTagID(name)
		if !ok {
			id = math.MaxUint32
		}
		req.Tags = append(req.Tags, catalog.TagCriterion{ID: id, Exclude: include != 1})
	}

	for _, span := range years {
		var from, to *uint16
		if err := decodeTuple(span, &from, &to); err != nil {
			return nil, err
		}
		req.Years = append(req.Years, yearRange(from, to))
	}

	if user != nil {
		t.User = *user
		id := d.resolveUser(*user)
		req.ForUser = &id
	}
	return t, nil
}

func (d *Decoder) resolveUser(s string) uint32 {
	if id, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(id)
	}
	if id, ok := d.Resolver.LookupUserID(s); ok {
		return id
	}
	return 0
}

func yearRange(from, to *uint16) catalog.Range {
	switch {
	case from != nil && to != nil:
		return catalog.Between(uint32(*from), uint32(*to))
	case from != nil:
		return catalog.From(uint32(*from))
	case to != nil:
		return catalog.Below(uint32(*to))
	}
	return catalog.Unbounded()
}

// decodeTuple decodes a JSON array whose length must equal len(dst), element
// i into dst[i].
func decodeTuple(raw []byte, dst ...any) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedQuery, err)
	}
	if len(elems) != len(dst) {
		return fmt.Errorf("%w: expected %d elements, got %d", ErrMalformedQuery, len(dst), len(elems))
	}
	for i, e := range elems {
		if err := json.Unmarshal(e, dst[i]); err != nil {
			return fmt.Errorf("%w: element %d: %v", ErrMalformedQuery, i, err)
		}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
