// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"unicode/utf8"
)

const (
	// SnapshotMagic identifies Hako snapshot files (bytes "HAKO").
	SnapshotMagic uint32 = 0x4F4B4148
	// SnapshotVersion is the current payload layout revision.
	SnapshotVersion uint32 = 1

	// headerSize covers magic, version, payload CRC32 and a reserved word.
	headerSize = 16

	// MatrixSuffix is appended to the snapshot path to locate the matrix.
	MatrixSuffix = "_mmap"
)

// Minimum encoded sizes, used to reject impossible length prefixes before
// allocating.
const (
	minEntrySize = 4 + 4 + 4 + 4 + 4 + 4 + 4 + 4 + 2 + 1 + 1 + 1 + 1
	tagRefSize   = 8
	minStrSize   = 4
)

// fileHeader precedes the payload.
type fileHeader struct {
	Magic    uint32
	Version  uint32
	Checksum uint32 // CRC32 (IEEE) of the payload
	Reserved uint32
}

func parseHeader(b []byte) (fileHeader, error) {
	if len(b) < headerSize {
		return fileHeader{}, fmt.Errorf("%w: file shorter than header", ErrCorruptSnapshot)
	}
	h := fileHeader{
		Magic:    binary.LittleEndian.Uint32(b[0:]),
		Version:  binary.LittleEndian.Uint32(b[4:]),
		Checksum: binary.LittleEndian.Uint32(b[8:]),
		Reserved: binary.LittleEndian.Uint32(b[12:]),
	}
	if h.Magic != SnapshotMagic {
		return h, ErrInvalidMagic
	}
	if h.Version != SnapshotVersion {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}

// DecodeTable parses a complete snapshot file image and validates the table
// invariants. It does not touch the relation matrix.
func DecodeTable(b []byte) (*Table, error) {
	h, err := parseHeader(b)
	if err != nil {
		return nil, err
	}
	payload := b[headerSize:]
	if sum := crc32.ChecksumIEEE(payload); sum != h.Checksum {
		return nil, fmt.Errorf("%w: checksum %08x, header says %08x", ErrCorruptSnapshot, sum, h.Checksum)
	}

	d := &decoder{buf: payload}
	t := d.table()
	if d.err != nil {
		return nil, d.err
	}
	if d.off != len(d.buf) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptSnapshot, len(d.buf)-d.off)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// decoder reads little-endian fields and latches the first error.
type decoder struct {
	buf []byte
	off int
	err error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: "+format, append([]any{ErrCorruptSnapshot}, args...)...)
	}
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || len(d.buf)-d.off < n {
		d.fail("unexpected end of payload at offset %d", d.off)
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) u8() uint8 {
	if b := d.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *decoder) u16() uint16 {
	if b := d.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (d *decoder) u32() uint32 {
	if b := d.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (d *decoder) f32() float32 {
	return math.Float32frombits(d.u32())
}

func (d *decoder) str() string {
	n := d.u32()
	b := d.take(int(n))
	if b == nil {
		return ""
	}
	if !utf8.Valid(b) {
		d.fail("invalid UTF-8 string at offset %d", d.off-len(b))
		return ""
	}
	return string(b)
}

// count reads a length prefix and rejects it when even the smallest
// elements could not fit in the remaining bytes.
func (d *decoder) count(minElem int) int {
	n := int(d.u32())
	if d.err != nil {
		return 0
	}
	if n > (len(d.buf)-d.off)/minElem {
		d.fail("length prefix %d exceeds remaining payload", n)
		return 0
	}
	return n
}

func (d *decoder) table() *Table {
	t := &Table{}
	t.Date.Month = d.u8()
	t.Date.Day = d.u8()
	t.Date.Year = d.u16()
	t.ScaleFactors[0] = d.f32()
	t.ScaleFactors[1] = d.f32()

	n := d.count(minEntrySize)
	t.Entries = make([]Entry, n)
	for i := range t.Entries {
		d.entry(&t.Entries[i])
		if d.err != nil {
			return t
		}
	}

	n = d.count(4)
	t.UserIDs = make([]uint32, n)
	for i := range t.UserIDs {
		t.UserIDs[i] = d.u32()
	}

	n = d.count(minStrSize)
	t.Usernames = make([]string, n)
	for i := range t.Usernames {
		t.Usernames[i] = d.str()
	}

	n = d.count(minStrSize)
	t.TagNames = make([]string, n)
	for i := range t.TagNames {
		t.TagNames[i] = d.str()
	}
	return t
}

func (d *decoder) entry(e *Entry) {
	e.ID = d.u32()
	e.Rank = d.u32()
	e.Title = d.str()
	e.TitleLocalized = d.str()
	e.ImagePath = d.str()
	if n := d.count(tagRefSize); n > 0 {
		e.Tags = make([]TagRef, n)
		for i := range e.Tags {
			e.Tags[i].ID = d.u32()
			e.Tags[i].Weight = d.f32()
		}
	}
	e.Score = d.f32()
	e.RatingCount = d.u32()
	e.AirYear = d.u16()
	e.AirMonth = d.u8()
	e.AirDay = d.u8()
	e.Category = Category(d.u8())
	switch adult := d.u8(); adult {
	case 0:
	case 1:
		e.Adult = true
	default:
		d.fail("entry %d: invalid adult flag %d", e.ID, adult)
	}
}
