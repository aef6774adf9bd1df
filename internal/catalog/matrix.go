// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"encoding/binary"
	"fmt"
	"os"
)

// relationMatrix is the row-major userCount x entryCount table of relation
// values. cells aliases the mapping when one exists; it must not be used
// after release.
type relationMatrix struct {
	cells   []uint16
	mapped  bool
	release func() error
}

func (m *relationMatrix) Close() error {
	if m == nil || m.release == nil {
		return nil
	}
	err := m.release()
	m.release = nil
	m.cells = nil
	return err
}

// inMemoryMatrix wraps cells that are already resident.
func inMemoryMatrix(cells []uint16) *relationMatrix {
	return &relationMatrix{cells: cells}
}

var hostLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// checkMatrixSize stats path and compares its length with want bytes.
func checkMatrixSize(f *os.File, want int64) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat relation matrix: %w", err)
	}
	if info.Size() != want {
		return fmt.Errorf("%w: %s is %d bytes, want %d", ErrMatrixSizeMismatch, f.Name(), info.Size(), want)
	}
	return nil
}

// readMatrix loads the whole file into memory. It serves hosts without mmap
// and big-endian hosts, where the file bytes cannot be aliased as uint16.
func readMatrix(path string, want int64) (*relationMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open relation matrix: %w", err)
	}
	defer f.Close()
	if err := checkMatrixSize(f, want); err != nil {
		return nil, err
	}

	raw := make([]byte, want)
	if _, err := f.ReadAt(raw, 0); err != nil && want > 0 {
		return nil, fmt.Errorf("read relation matrix: %w", err)
	}
	cells := make([]uint16, want/2)
	for i := range cells {
		cells[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}
	return inMemoryMatrix(cells), nil
}
