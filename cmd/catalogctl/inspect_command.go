// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/hako/internal/catalog"
)

func newInspectCommand() *cobra.Command {
	var showTags bool

	cmd := &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Print snapshot metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := catalog.Open(args[0], catalog.DefaultOptions())
			if err != nil {
				return err
			}
			defer db.Close()

			factors := db.ScaleFactors()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				[][]string{
					{"Date", db.Date().String()},
					{"Scale factors", fmt.Sprintf("%g, %g", factors[0], factors[1])},
					{"Entries", strconv.Itoa(db.EntryCount())},
					{"Users", strconv.Itoa(db.UserCount())},
					{"Tags", strconv.Itoa(db.TagCount())},
				},
				[]columnAlignment{alignLeft, alignRight},
			))

			if showTags {
				rows := make([][]string, 0, db.TagCount())
				for id := range uint32(db.TagCount()) {
					name, _ := db.TagName(id)
					rows = append(rows, []string{
						strconv.FormatUint(uint64(id), 10),
						name,
						strconv.FormatUint(db.TagEntryCount(id), 10),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Tag", "Entries"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTags, "tags", false, "Also list every tag with its entry count")
	return cmd
}
