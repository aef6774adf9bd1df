// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"fmt"
	"iter"
	"os"
	"runtime"
	"time"

	"github.com/RoaringBitmap/roaring"

	"github.com/tomtom215/hako/internal/logging"
	"github.com/tomtom215/hako/internal/match"
	"github.com/tomtom215/hako/internal/metrics"
)

// Options tunes how searches are executed. They never change results.
type Options struct {
	// SearchWorkers bounds the goroutines used for a chunked scan.
	// 0 means GOMAXPROCS.
	SearchWorkers int

	// ParallelThreshold is the catalog size from which scans are chunked
	// across workers. Smaller catalogs are scanned on the calling goroutine.
	ParallelThreshold int
}

// DefaultOptions returns the options used by the server.
func DefaultOptions() Options {
	return Options{SearchWorkers: 0, ParallelThreshold: 4096}
}

func (o Options) normalized() Options {
	if o.SearchWorkers <= 0 {
		o.SearchWorkers = runtime.GOMAXPROCS(0)
	}
	if o.ParallelThreshold <= 0 {
		o.ParallelThreshold = DefaultOptions().ParallelThreshold
	}
	return o
}

// foldedTitles caches the case-folded titles of one entry for matching.
type foldedTitles struct {
	title          string
	localized      string
	titleRunes     []rune
	localizedRunes []rune
}

// Database is a loaded, immutable catalog. All methods are safe for
// concurrent use; none of them mutate state after construction.
type Database struct {
	table     *Table
	matrix    *relationMatrix
	titles    []foldedTitles
	usernames []string // folded, parallel to table.Usernames
	postings  []*roaring.Bitmap
	opts      Options
}

// Open loads the snapshot at path and maps its relation matrix from
// path+MatrixSuffix. Any error means the snapshot is unusable; there is no
// partially loaded state.
func Open(path string, opts Options) (*Database, error) {
	log := logging.WithComponent("catalog")
	start := time.Now()

	log.Info().Str("path", path).Msg("Loading catalog table")
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	t, err := DecodeTable(image)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	want := int64(len(t.UserIDs)) * int64(len(t.Entries)) * 2
	log.Info().Str("path", path+MatrixSuffix).Int64("bytes", want).Msg("Mapping relation matrix")
	m, err := openMatrix(path+MatrixSuffix, want)
	if err != nil {
		return nil, err
	}

	db := newDatabase(t, m, opts)
	elapsed := time.Since(start)
	metrics.RecordCatalogLoad(db.EntryCount(), db.UserCount(), db.TagCount(), elapsed)
	log.Info().
		Int("entries", db.EntryCount()).
		Int("users", db.UserCount()).
		Int("tags", db.TagCount()).
		Bool("mmap", m.mapped).
		Dur("duration", elapsed).
		Msg("Catalog loaded")
	return db, nil
}

// FromTable builds a Database from an in-memory table and matrix. The table
// is validated and must not be modified afterwards.
func FromTable(t *Table, matrix []uint16, opts Options) (*Database, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if want := len(t.UserIDs) * len(t.Entries); len(matrix) != want {
		return nil, fmt.Errorf("%w: %d cells, want %d", ErrMatrixSizeMismatch, len(matrix), want)
	}
	return newDatabase(t, inMemoryMatrix(matrix), opts), nil
}

func newDatabase(t *Table, m *relationMatrix, opts Options) *Database {
	db := &Database{
		table:     t,
		matrix:    m,
		titles:    make([]foldedTitles, len(t.Entries)),
		usernames: make([]string, len(t.Usernames)),
		postings:  make([]*roaring.Bitmap, len(t.TagNames)),
		opts:      opts.normalized(),
	}
	for i := range t.Entries {
		e := &t.Entries[i]
		ft := &db.titles[i]
		ft.title = match.Fold(e.Title)
		ft.localized = match.Fold(e.TitleLocalized)
		ft.titleRunes = []rune(ft.title)
		ft.localizedRunes = []rune(ft.localized)
	}
	for i, name := range t.Usernames {
		db.usernames[i] = match.Fold(name)
	}
	db.buildPostings()
	return db
}

// Close releases the relation matrix mapping. The Database must not be used
// afterwards.
func (db *Database) Close() error {
	return db.matrix.Close()
}

// EntryCount returns the number of catalog entries.
func (db *Database) EntryCount() int { return len(db.table.Entries) }

// UserCount returns the number of users in the relation matrix.
func (db *Database) UserCount() int { return len(db.table.UserIDs) }

// TagCount returns the number of distinct tags.
func (db *Database) TagCount() int { return len(db.table.TagNames) }

// Date returns the snapshot date.
func (db *Database) Date() SnapshotDate { return db.table.Date }

// ScaleFactors returns the two scaling factors stored with the snapshot.
func (db *Database) ScaleFactors() [2]float32 { return db.table.ScaleFactors }

// Entry returns the i-th entry in catalog (id) order.
func (db *Database) Entry(i int) *Entry { return &db.table.Entries[i] }

// Entries yields every entry in catalog order. Each call starts a fresh
// sequence.
func (db *Database) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for i := range db.table.Entries {
			if !yield(&db.table.Entries[i]) {
				return
			}
		}
	}
}

// EntryList returns pointers to every entry in catalog order, ready for
// SortEntries.
func (db *Database) EntryList() []*Entry {
	out := make([]*Entry, len(db.table.Entries))
	for i := range db.table.Entries {
		out[i] = &db.table.Entries[i]
	}
	return out
}

// TagName returns the normalized name of tag id.
func (db *Database) TagName(id uint32) (string, bool) {
	if int64(id) >= int64(len(db.table.TagNames)) {
		return "", false
	}
	return db.table.TagNames[id], true
}
