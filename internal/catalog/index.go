// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"cmp"
	"slices"

	"github.com/RoaringBitmap/roaring"

	"github.com/tomtom215/hako/internal/match"
)

// LookupUserID finds a user by name, ignoring case. Usernames carry no
// ordering, so this is a linear scan.
func (db *Database) LookupUserID(name string) (uint32, bool) {
	folded := match.Fold(name)
	for i, u := range db.usernames {
		if u == folded {
			return db.table.UserIDs[i], true
		}
	}
	return 0, false
}

// Username returns the stored name of userID.
func (db *Database) Username(userID uint32) (string, bool) {
	i, ok := db.userIndex(userID)
	if !ok {
		return "", false
	}
	return db.table.Usernames[i], true
}

// userIndex is the matrix row of userID.
func (db *Database) userIndex(userID uint32) (int, bool) {
	return slices.BinarySearch(db.table.UserIDs, userID)
}

// entryIndex is the catalog position (and matrix column) of entryID.
func (db *Database) entryIndex(entryID uint32) (int, bool) {
	return slices.BinarySearchFunc(db.table.Entries, entryID, func(e Entry, id uint32) int {
		return cmp.Compare(e.ID, id)
	})
}

// relationAt reads a cell; an out of range index is a programming error and
// panics.
func (db *Database) relationAt(userIdx, entryIdx int) uint16 {
	return db.matrix.cells[userIdx*len(db.table.Entries)+entryIdx]
}

// UserEntryRelation returns the stored relation of a user to an entry. It
// reports false when either id is absent from the snapshot.
func (db *Database) UserEntryRelation(userID, entryID uint32) (uint16, bool) {
	u, ok := db.userIndex(userID)
	if !ok {
		return 0, false
	}
	e, ok := db.entryIndex(entryID)
	if !ok {
		return 0, false
	}
	return db.relationAt(u, e), true
}

// LookupTagID resolves a tag name (any case) to its id.
func (db *Database) LookupTagID(name string) (uint32, bool) {
	i, ok := slices.BinarySearch(db.table.TagNames, match.Fold(name))
	if !ok {
		return 0, false
	}
	return uint32(i), true
}

// TagEntryCount returns how many entries carry tag id.
func (db *Database) TagEntryCount(id uint32) uint64 {
	if int64(id) >= int64(len(db.postings)) {
		return 0
	}
	return db.postings[id].GetCardinality()
}

// buildPostings indexes entry positions by tag id.
func (db *Database) buildPostings() {
	for i := range db.postings {
		db.postings[i] = roaring.New()
	}
	for i := range db.table.Entries {
		for _, t := range db.table.Entries[i].Tags {
			db.postings[t.ID].Add(uint32(i))
		}
	}
	for _, p := range db.postings {
		p.RunOptimize()
	}
}

// hasTag reports whether the entry at catalog position idx carries tag id.
// Unknown tag ids are carried by no entry.
func (db *Database) hasTag(idx int, id uint32) bool {
	if int64(id) >= int64(len(db.postings)) {
		return false
	}
	return db.postings[id].Contains(uint32(idx))
}
