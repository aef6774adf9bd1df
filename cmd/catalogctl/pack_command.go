// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/hako/internal/catalog"
	"github.com/tomtom215/hako/internal/logging"
)

func newPackCommand() *cobra.Command {
	var (
		sourcePath      string
		outPath         string
		defaultRelation uint16
	)

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Build a snapshot and relation matrix from a JSON catalog source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourcePath == "" || outPath == "" {
				return errors.New("--source and --out are required")
			}
			src, err := readSource(sourcePath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("default-relation") {
				src.DefaultRelation = defaultRelation
			}

			table, matrix, err := catalog.Build(src)
			if err != nil {
				return err
			}
			if err := catalog.WriteSnapshot(outPath, table, matrix); err != nil {
				return err
			}

			logging.Info().
				Str("snapshot", outPath).
				Int("entries", len(table.Entries)).
				Int("users", len(table.UserIDs)).
				Msg("Snapshot written")

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Output", "Entries", "Users", "Tags", "Matrix cells"},
				[][]string{{
					outPath,
					strconv.Itoa(len(table.Entries)),
					strconv.Itoa(len(table.UserIDs)),
					strconv.Itoa(len(table.TagNames)),
					strconv.Itoa(len(matrix)),
				}},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "JSON catalog source")
	cmd.Flags().StringVar(&outPath, "out", "", "Snapshot path; the matrix is written next to it with suffix "+catalog.MatrixSuffix)
	cmd.Flags().Uint16Var(&defaultRelation, "default-relation", 0, "Relation value for cells no user lists (overrides the source)")

	return cmd
}

func readSource(path string) (*catalog.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	var src catalog.Source
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parse source %s: %w", path, err)
	}
	return &src, nil
}
