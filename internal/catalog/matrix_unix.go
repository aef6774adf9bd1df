// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

//go:build unix

package catalog

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// openMatrix maps the relation matrix read-only. The length is verified
// before the bytes are reinterpreted as uint16 cells.
func openMatrix(path string, want int64) (*relationMatrix, error) {
	if !hostLittleEndian {
		return readMatrix(path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open relation matrix: %w", err)
	}
	defer f.Close()
	if err := checkMatrixSize(f, want); err != nil {
		return nil, err
	}
	if want == 0 {
		return inMemoryMatrix(nil), nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(want), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap relation matrix: %w", err)
	}
	cells := unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), len(data)/2)
	return &relationMatrix{
		cells:   cells,
		mapped:  true,
		release: func() error { return unix.Munmap(data) },
	}, nil
}
