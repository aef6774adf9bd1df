// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"path/filepath"
	"testing"
)

// Tag ids after folding and sorting:
// 0 adventure, 1 drama, 2 fantasy, 3 sci-fi, 4 slice-of-life, 5 space.
const (
	tagAdventure uint32 = iota
	tagDrama
	tagFantasy
	tagSciFi
	tagSliceOfLife
	tagSpace
)

func fixtureSource() *Source {
	return &Source{
		Date:         SnapshotDate{Month: 3, Day: 14, Year: 2026},
		ScaleFactors: [2]float32{1.5, 0.25},
		Entries: []SourceEntry{
			// Deliberately out of id order; Build sorts.
			{ID: 40, Rank: 3, Title: "Mahou Shoujo Madoka Magica", Score: 8.9, RatingCount: 90,
				AirYear: 2011, AirMonth: 1, AirDay: 7, Category: "TV",
				Tags: []SourceTag{{Name: "Fantasy", Weight: 1}, {Name: "drama", Weight: 0.5}}},
			{ID: 10, Rank: 1, Title: "Sousou no Frieren", TitleLocalized: "葬送のフリーレン",
				ImagePath: "l/ab/10_frieren.jpg", Score: 9.0, RatingCount: 500,
				AirYear: 2023, AirMonth: 9, AirDay: 29, Category: "TV",
				Tags: []SourceTag{{Name: "fantasy", Weight: 1}, {Name: "Adventure", Weight: 0.8}}},
			{ID: 20, Rank: 5, Title: "Cowboy Bebop", Score: 8.8, RatingCount: 800,
				AirYear: 1998, AirMonth: 4, AirDay: 3, Category: "TV",
				Tags: []SourceTag{{Name: "Sci-Fi", Weight: 1}, {Name: "space", Weight: 0.7}}},
			{ID: 30, Rank: 40, Title: "Cowboy Bebop: Tengoku no Tobira", TitleLocalized: "Cowboy Bebop: The Movie",
				Score: 8.2, RatingCount: 300, AirYear: 2001, AirMonth: 9, AirDay: 1, Category: "Movie",
				Tags: []SourceTag{{Name: "sci-fi", Weight: 1}}},
			{ID: 50, Rank: 900, Title: "Night Shift Special", Score: 6.0, RatingCount: 10,
				AirYear: 2005, AirMonth: 5, AirDay: 5, Category: "OVA", Adult: true,
				Tags: []SourceTag{{Name: "Drama", Weight: 1}}},
			{ID: 60, Rank: 120, Title: "Yuru Camp", TitleLocalized: "ゆるキャン△", Score: 8.0, RatingCount: 0,
				AirYear: 2018, AirMonth: 1, AirDay: 4, Category: "TV",
				Tags: []SourceTag{{Name: "Slice-of-Life", Weight: 1}}},
		},
		Users: []SourceUser{
			{ID: 7, Username: "Alice", Relations: []SourceRelation{{EntryID: 10, Value: 3}, {EntryID: 20, Value: 1}}},
			{ID: 3, Username: "bob", Relations: []SourceRelation{{EntryID: 30, Value: 2}}},
		},
	}
}

// writeFixture packs src into a temporary directory and returns the
// snapshot path.
func writeFixture(t *testing.T, src *Source) string {
	t.Helper()
	table, matrix, err := Build(src)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "packed.db")
	if err := WriteSnapshot(path, table, matrix); err != nil {
		t.Fatalf("WriteSnapshot() error = %v", err)
	}
	return path
}

func openFixture(t *testing.T) *Database {
	t.Helper()
	db, err := Open(writeFixture(t, fixtureSource()), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func resultIDs(results []SearchResult) []uint32 {
	ids := make([]uint32, len(results))
	for i, r := range results {
		ids[i] = r.Entry.ID
	}
	return ids
}

func entryIDs(entries []*Entry) []uint32 {
	ids := make([]uint32, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func ptr[T any](v T) *T { return &v }
