// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import "errors"

var (
	// ErrInvalidMagic means the file is not a Hako snapshot.
	ErrInvalidMagic = errors.New("catalog: invalid snapshot magic")

	// ErrUnsupportedVersion means the snapshot was written by an
	// incompatible format revision.
	ErrUnsupportedVersion = errors.New("catalog: unsupported snapshot version")

	// ErrCorruptSnapshot covers truncated payloads, trailing bytes and any
	// violated table invariant.
	ErrCorruptSnapshot = errors.New("catalog: corrupt snapshot")

	// ErrMatrixSizeMismatch means the relation matrix file length is not
	// userCount*entryCount*2 bytes.
	ErrMatrixSizeMismatch = errors.New("catalog: relation matrix size mismatch")

	// ErrInvalidSource is returned by Build for inconsistent source records.
	ErrInvalidSource = errors.New("catalog: invalid source")
)
