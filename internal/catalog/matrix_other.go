// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

//go:build !unix

package catalog

func openMatrix(path string, want int64) (*relationMatrix, error) {
	return readMatrix(path, want)
}
