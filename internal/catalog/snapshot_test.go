// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"
	"os"
	"reflect"
	"slices"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	table, _, err := Build(fixtureSource())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	image, err := EncodeTable(table)
	if err != nil {
		t.Fatalf("EncodeTable() error = %v", err)
	}
	got, err := DecodeTable(image)
	if err != nil {
		t.Fatalf("DecodeTable() error = %v", err)
	}
	if !reflect.DeepEqual(got, table) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, table)
	}
}

func TestOpenCountsMatchTable(t *testing.T) {
	t.Parallel()

	src := fixtureSource()
	db := openFixture(t)

	if got := db.EntryCount(); got != len(src.Entries) {
		t.Errorf("EntryCount() = %d, want %d", got, len(src.Entries))
	}
	if got := db.UserCount(); got != len(src.Users) {
		t.Errorf("UserCount() = %d, want %d", got, len(src.Users))
	}
	if got := db.TagCount(); got != 6 {
		t.Errorf("TagCount() = %d, want 6", got)
	}
	if got := db.Date().String(); got != "03/14/2026" {
		t.Errorf("Date() = %s, want 03/14/2026", got)
	}
	if got := db.ScaleFactors(); got != [2]float32{1.5, 0.25} {
		t.Errorf("ScaleFactors() = %v", got)
	}
	if name, ok := db.TagName(tagSpace); !ok || name != "space" {
		t.Errorf("TagName(%d) = %q, %v", tagSpace, name, ok)
	}
	if _, ok := db.TagName(99); ok {
		t.Error("TagName(99) should not resolve")
	}
}

func TestEntriesIsRestartable(t *testing.T) {
	t.Parallel()

	db := openFixture(t)

	var first []uint32
	for e := range db.Entries() {
		first = append(first, e.ID)
	}
	want := []uint32{10, 20, 30, 40, 50, 60}
	if !slices.Equal(first, want) {
		t.Fatalf("Entries() = %v, want %v", first, want)
	}

	var partial []uint32
	for e := range db.Entries() {
		partial = append(partial, e.ID)
		if len(partial) == 2 {
			break
		}
	}
	if !slices.Equal(partial, want[:2]) {
		t.Errorf("early break yielded %v", partial)
	}

	var again []uint32
	for e := range db.Entries() {
		again = append(again, e.ID)
	}
	if !slices.Equal(again, want) {
		t.Errorf("second iteration = %v, want %v", again, want)
	}
	if got := entryIDs(db.EntryList()); !slices.Equal(got, want) {
		t.Errorf("EntryList() = %v, want %v", got, want)
	}
}

func TestOpenMatrixSizeMismatch(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"one byte extra", func(b []byte) []byte { return append(b, 0) }},
		{"one cell short", func(b []byte) []byte { return b[:len(b)-2] }},
		{"empty", func([]byte) []byte { return nil }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFixture(t, fixtureSource())
			raw, err := os.ReadFile(path + MatrixSuffix)
			if err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path+MatrixSuffix, tc.mutate(raw), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err = Open(path, DefaultOptions())
			if !errors.Is(err, ErrMatrixSizeMismatch) {
				t.Errorf("Open() error = %v, want ErrMatrixSizeMismatch", err)
			}
		})
	}
}

func TestOpenMissingFiles(t *testing.T) {
	t.Parallel()

	if _, err := Open(t.TempDir()+"/absent.db", DefaultOptions()); err == nil {
		t.Error("Open() of a missing snapshot should fail")
	}

	path := writeFixture(t, fixtureSource())
	if err := os.Remove(path + MatrixSuffix); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, DefaultOptions()); err == nil {
		t.Error("Open() without a relation matrix should fail")
	}
}

func TestOpenWithoutUsers(t *testing.T) {
	t.Parallel()

	src := fixtureSource()
	src.Users = nil
	db, err := Open(writeFixture(t, src), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()
	if db.UserCount() != 0 {
		t.Errorf("UserCount() = %d, want 0", db.UserCount())
	}
	if got := db.Search(&Request{ForUser: ptr(uint32(7))}); len(got) != 0 {
		t.Errorf("search for an absent user returned %d results", len(got))
	}
}

func TestReadMatrixMatchesMapping(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixtureSource())
	want := int64(2 * 6 * 2)

	mapped, err := openMatrix(path+MatrixSuffix, want)
	if err != nil {
		t.Fatalf("openMatrix() error = %v", err)
	}
	defer mapped.Close()
	read, err := readMatrix(path+MatrixSuffix, want)
	if err != nil {
		t.Fatalf("readMatrix() error = %v", err)
	}
	if !slices.Equal(mapped.cells, read.cells) {
		t.Errorf("mapped %v != read %v", mapped.cells, read.cells)
	}
}

// reseal recomputes the header checksum after a payload edit.
func reseal(image []byte) []byte {
	binary.LittleEndian.PutUint32(image[8:], crc32.ChecksumIEEE(image[headerSize:]))
	return image
}

func TestDecodeTableRejectsCorruption(t *testing.T) {
	t.Parallel()

	table, _, err := Build(fixtureSource())
	if err != nil {
		t.Fatal(err)
	}
	good, err := EncodeTable(table)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{"short header", func(b []byte) []byte { return b[:8] }, ErrCorruptSnapshot},
		{"bad magic", func(b []byte) []byte { b[0] = 'X'; return b }, ErrInvalidMagic},
		{"future version", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[4:], SnapshotVersion+1)
			return b
		}, ErrUnsupportedVersion},
		{"flipped payload byte", func(b []byte) []byte { b[len(b)-1] ^= 0xFF; return b }, ErrCorruptSnapshot},
		{"truncated payload", func(b []byte) []byte { return reseal(b[:len(b)-3]) }, ErrCorruptSnapshot},
		{"trailing bytes", func(b []byte) []byte { return reseal(append(b, 1, 2, 3)) }, ErrCorruptSnapshot},
		{"huge entry count", func(b []byte) []byte {
			// Entry count follows date (4 bytes) and scale factors (8 bytes).
			binary.LittleEndian.PutUint32(b[headerSize+12:], math.MaxUint32)
			return reseal(b)
		}, ErrCorruptSnapshot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeTable(tt.mutate(slices.Clone(good)))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeTable() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Table)
	}{
		{"user arrays differ", func(tb *Table) { tb.Usernames = tb.Usernames[:1] }},
		{"user ids unsorted", func(tb *Table) { tb.UserIDs[0], tb.UserIDs[1] = tb.UserIDs[1], tb.UserIDs[0] }},
		{"entry ids unsorted", func(tb *Table) { tb.Entries[0], tb.Entries[1] = tb.Entries[1], tb.Entries[0] }},
		{"duplicate entry id", func(tb *Table) { tb.Entries[1].ID = tb.Entries[0].ID }},
		{"nan score", func(tb *Table) { tb.Entries[2].Score = float32(math.NaN()) }},
		{"infinite score", func(tb *Table) { tb.Entries[2].Score = float32(math.Inf(1)) }},
		{"tag out of range", func(tb *Table) { tb.Entries[0].Tags[0].ID = uint32(len(tb.TagNames)) }},
		{"tags unsorted", func(tb *Table) { tb.TagNames[0], tb.TagNames[1] = tb.TagNames[1], tb.TagNames[0] }},
		{"tag not folded", func(tb *Table) { tb.TagNames[0] = "Adventure" }},
		{"bad category", func(tb *Table) { tb.Entries[0].Category = Category(9) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			table, _, err := Build(fixtureSource())
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(table)
			if err := table.Validate(); !errors.Is(err, ErrCorruptSnapshot) {
				t.Errorf("Validate() error = %v, want ErrCorruptSnapshot", err)
			}
			if _, err := EncodeTable(table); err == nil {
				t.Error("EncodeTable() should refuse an invalid table")
			}
		})
	}
}

func TestWriteSnapshotChecksMatrixLength(t *testing.T) {
	t.Parallel()

	table, matrix, err := Build(fixtureSource())
	if err != nil {
		t.Fatal(err)
	}
	err = WriteSnapshot(t.TempDir()+"/packed.db", table, matrix[1:])
	if !errors.Is(err, ErrMatrixSizeMismatch) {
		t.Errorf("WriteSnapshot() error = %v, want ErrMatrixSizeMismatch", err)
	}
	if _, err := FromTable(table, matrix[1:], DefaultOptions()); !errors.Is(err, ErrMatrixSizeMismatch) {
		t.Errorf("FromTable() error = %v, want ErrMatrixSizeMismatch", err)
	}
}
