// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"os"
)

// EncodeTable returns the complete snapshot file image for t.
func EncodeTable(t *Table) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	var payload bytes.Buffer
	e := encoder{w: &payload}
	e.u8(t.Date.Month)
	e.u8(t.Date.Day)
	e.u16(t.Date.Year)
	e.f32(t.ScaleFactors[0])
	e.f32(t.ScaleFactors[1])

	e.u32(uint32(len(t.Entries)))
	for i := range t.Entries {
		e.entry(&t.Entries[i])
	}
	e.u32(uint32(len(t.UserIDs)))
	for _, id := range t.UserIDs {
		e.u32(id)
	}
	e.u32(uint32(len(t.Usernames)))
	for _, name := range t.Usernames {
		e.str(name)
	}
	e.u32(uint32(len(t.TagNames)))
	for _, name := range t.TagNames {
		e.str(name)
	}

	body := payload.Bytes()
	out := make([]byte, headerSize, headerSize+len(body))
	binary.LittleEndian.PutUint32(out[0:], SnapshotMagic)
	binary.LittleEndian.PutUint32(out[4:], SnapshotVersion)
	binary.LittleEndian.PutUint32(out[8:], crc32.ChecksumIEEE(body))
	return append(out, body...), nil
}

// WriteSnapshot writes the snapshot to path and the relation matrix to
// path+MatrixSuffix. matrix must hold len(t.UserIDs)*len(t.Entries) cells.
func WriteSnapshot(path string, t *Table, matrix []uint16) error {
	if want := len(t.UserIDs) * len(t.Entries); len(matrix) != want {
		return fmt.Errorf("%w: %d cells, want %d", ErrMatrixSizeMismatch, len(matrix), want)
	}
	image, err := EncodeTable(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return writeMatrix(path+MatrixSuffix, matrix)
}

func writeMatrix(path string, cells []uint16) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create matrix: %w", err)
	}
	w := bufio.NewWriter(f)
	var b [2]byte
	for _, c := range cells {
		binary.LittleEndian.PutUint16(b[:], c)
		if _, err := w.Write(b[:]); err != nil {
			f.Close()
			return fmt.Errorf("write matrix: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write matrix: %w", err)
	}
	return f.Close()
}

type encoder struct {
	w   *bytes.Buffer
	tmp [4]byte
}

func (e *encoder) u8(v uint8) { e.w.WriteByte(v) }

func (e *encoder) u16(v uint16) {
	binary.LittleEndian.PutUint16(e.tmp[:2], v)
	e.w.Write(e.tmp[:2])
}

func (e *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(e.tmp[:], v)
	e.w.Write(e.tmp[:])
}

func (e *encoder) f32(v float32) { e.u32(math.Float32bits(v)) }

func (e *encoder) str(s string) {
	e.u32(uint32(len(s)))
	e.w.WriteString(s)
}

func (e *encoder) entry(x *Entry) {
	e.u32(x.ID)
	e.u32(x.Rank)
	e.str(x.Title)
	e.str(x.TitleLocalized)
	e.str(x.ImagePath)
	e.u32(uint32(len(x.Tags)))
	for _, t := range x.Tags {
		e.u32(t.ID)
		e.f32(t.Weight)
	}
	e.f32(x.Score)
	e.u32(x.RatingCount)
	e.u16(x.AirYear)
	e.u8(x.AirMonth)
	e.u8(x.AirDay)
	e.u8(uint8(x.Category))
	if x.Adult {
		e.u8(1)
	} else {
		e.u8(0)
	}
}
