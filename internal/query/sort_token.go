// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package query

import (
	"fmt"

	"github.com/tomtom215/hako/internal/catalog"
)

var sortKeys = map[byte]catalog.SortMode{
	'r': catalog.SortRecommend,
	'l': catalog.SortRelative,
	'n': catalog.SortName,
	'k': catalog.SortRank,
	'd': catalog.SortDate,
	'f': catalog.SortFavCount,
}

// ParseSortToken decodes a two-letter sort token such as "dr" or "ak".
// The first letter is the direction (a ascending, d descending), the second
// the key.
func ParseSortToken(tok string) (catalog.SortMode, bool, error) {
	if len(tok) != 2 {
		return 0, false, fmt.Errorf("%w: %q", ErrBadSortMode, tok)
	}
	var ascending bool
	switch tok[0] {
	case 'a':
		ascending = true
	case 'd':
	default:
		return 0, false, fmt.Errorf("%w: %q", ErrBadSortMode, tok)
	}
	mode, ok := sortKeys[tok[1]]
	if !ok {
		return 0, false, fmt.Errorf("%w: %q", ErrBadSortMode, tok)
	}
	return mode, ascending, nil
}

// SortToken is the inverse of ParseSortToken.
func SortToken(mode catalog.SortMode, ascending bool) string {
	dir := byte('d')
	if ascending {
		dir = 'a'
	}
	for k, m := range sortKeys {
		if m == mode {
			return string([]byte{dir, k})
		}
	}
	return ""
}
