// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/hako/internal/catalog"
	"github.com/tomtom215/hako/internal/query"
)

const matchAllQuery = `[[],[],[],null,3]`

func newSearchCommand() *cobra.Command {
	var (
		rawQuery  string
		sortToken string
		limit     int
		skip      int
	)

	cmd := &cobra.Command{
		Use:   "search <snapshot>",
		Short: "Run a query tuple against a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ascending, err := query.ParseSortToken(sortToken)
			if err != nil {
				return err
			}
			if limit <= 0 || skip < 0 {
				return errors.New("--limit must be positive and --skip non-negative")
			}

			db, err := catalog.Open(args[0], catalog.DefaultOptions())
			if err != nil {
				return err
			}
			defer db.Close()

			ticket, err := query.Decode(rawQuery, db)
			if err != nil {
				return err
			}
			results := catalog.SortResults(db.Search(&ticket.Request), mode, ascending)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d results for %s (%s)\n", len(results), rawQuery, mode)
			if skip >= len(results) {
				return nil
			}
			page := results[skip:min(skip+limit, len(results))]

			rows := make([][]string, len(page))
			for i := range page {
				rows[i] = resultRow(skip+i+1, &page[i], ticket.UserTargeted())
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "ID", "Title", "Date", "Score", "Ratings", "Relevance", "Relation"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rawQuery, "query", "q", matchAllQuery, "Query tuple [keywords, tags, years, user, adult]")
	cmd.Flags().StringVarP(&sortToken, "sort", "s", "dk", "Sort token: direction (a|d) then key (r|l|n|k|d|f)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to print")
	cmd.Flags().IntVar(&skip, "skip", 0, "Results to skip")

	return cmd
}

func resultRow(pos int, r *catalog.SearchResult, withRelation bool) []string {
	e := r.Entry
	relation := "-"
	if withRelation && r.UserRelation != catalog.NoRelation {
		relation = strconv.FormatUint(uint64(r.UserRelation), 10)
	}
	return []string{
		strconv.Itoa(pos),
		strconv.FormatUint(uint64(e.ID), 10),
		e.DisplayTitle(),
		fmt.Sprintf("%04d-%02d-%02d", e.AirYear, e.AirMonth, e.AirDay),
		fmt.Sprintf("%.2f", e.Score),
		strconv.FormatUint(uint64(e.RatingCount), 10),
		fmt.Sprintf("%.3f", r.KeywordRelevance),
		relation,
	}
}
