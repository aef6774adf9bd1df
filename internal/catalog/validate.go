// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"fmt"
	"math"

	"github.com/tomtom215/hako/internal/match"
)

// Validate checks every invariant the index layer and the sort engine rely
// on. A table that fails validation must not be served.
func (t *Table) Validate() error {
	if len(t.UserIDs) != len(t.Usernames) {
		return fmt.Errorf("%w: %d user ids but %d usernames", ErrCorruptSnapshot, len(t.UserIDs), len(t.Usernames))
	}
	for i := 1; i < len(t.UserIDs); i++ {
		if t.UserIDs[i-1] >= t.UserIDs[i] {
			return fmt.Errorf("%w: user ids not strictly ascending at index %d", ErrCorruptSnapshot, i)
		}
	}

	for i, name := range t.TagNames {
		if match.Fold(name) != name {
			return fmt.Errorf("%w: tag %q is not case-normalized", ErrCorruptSnapshot, name)
		}
		if i > 0 && t.TagNames[i-1] >= name {
			return fmt.Errorf("%w: tag names not strictly ascending at index %d", ErrCorruptSnapshot, i)
		}
	}

	tagCount := uint32(len(t.TagNames))
	for i := range t.Entries {
		e := &t.Entries[i]
		if i > 0 && t.Entries[i-1].ID >= e.ID {
			return fmt.Errorf("%w: entry ids not strictly ascending at index %d", ErrCorruptSnapshot, i)
		}
		if math.IsNaN(float64(e.Score)) || math.IsInf(float64(e.Score), 0) {
			return fmt.Errorf("%w: entry %d has non-finite score", ErrCorruptSnapshot, e.ID)
		}
		if !e.Category.Valid() {
			return fmt.Errorf("%w: entry %d has unknown category %d", ErrCorruptSnapshot, e.ID, e.Category)
		}
		for _, tag := range e.Tags {
			if tag.ID >= tagCount {
				return fmt.Errorf("%w: entry %d references tag %d of %d", ErrCorruptSnapshot, e.ID, tag.ID, tagCount)
			}
		}
	}
	return nil
}
