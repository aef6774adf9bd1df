// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

/*
Package catalog is Hako's query engine: it loads an immutable catalog
snapshot, answers filter queries over it, and orders the results.

# Snapshot Files

A snapshot is two files written by WriteSnapshot (normally through
"catalogctl pack"):

  - <path>: a 16-byte header (magic "HAKO", format version, CRC32 of the
    payload) followed by a little-endian payload holding the snapshot date,
    two scale factors, the entry list sorted by id, the parallel user id and
    username arrays, and the sorted tag-name array.
  - <path>_mmap: the relation matrix as raw little-endian uint16 cells,
    row-major userCount x entryCount, with no header.

Open validates the payload and maps the matrix read-only. Every failure is
returned as an error wrapping one of ErrInvalidMagic, ErrUnsupportedVersion,
ErrCorruptSnapshot or ErrMatrixSizeMismatch; callers treat all of them as
fatal.

# Querying

	db, err := catalog.Open("/data/packed.db", catalog.DefaultOptions())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Cannot load catalog")
	}
	defer db.Close()

	adult := false
	results := db.Search(&catalog.Request{
	    Keywords: []catalog.KeywordTerm{{Text: "frieren"}},
	    Years:    []catalog.Range{catalog.Between(2020, 2025)},
	    Adult:    &adult,
	})
	ordered := catalog.SortResults(results, catalog.SortRelative, false)

Search applies predicates in a fixed order (adult flag, tags, years, rank,
rating count, user relation, keywords) and returns matches in catalog order.
Large catalogs are scanned in contiguous chunks on a bounded number of
goroutines; the concatenated output is identical to a sequential scan.

# Sorting

SortEntries and SortResults are stable. Descending order swaps comparator
arguments, so entries with equal keys keep their input order in both
directions.

# Concurrency

A Database never changes after Open returns. Any number of goroutines may
call its methods concurrently without locking.
*/
package catalog
