// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

// Command catalogctl packs, inspects and queries Hako catalog snapshots
// offline.
//
//	catalogctl pack --source catalog.json --out packed.db
//	catalogctl inspect packed.db --tags
//	catalogctl search packed.db --query '[[[0,"cowboy"]],[],[],null,3]' --sort dk
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
