// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package api

import "github.com/tomtom215/hako/internal/models"

// pagerWindow is the number of numbered slots the pager shows.
const pagerWindow = 5

// buildPager lays out navigation for page cur (0-based) of total pages.
// link maps a 0-based page to its URL. The numbered window keeps the current
// page third where it can and always has pagerWindow slots; slots past the
// last page carry no link. First and Last are omitted on the page they
// would point to, and both are omitted when there is a single page.
func buildPager(cur, total int, link func(page int) string) *models.Pager {
	p := &models.Pager{Current: cur + 1, Total: total}
	if total <= 0 {
		return p
	}

	if cur > 0 {
		p.Prev = link(cur - 1)
	}
	if cur < total-1 {
		p.Next = link(cur + 1)
	}
	if total > 1 {
		if cur > 0 {
			p.First = link(0)
		}
		if cur < total-1 {
			p.Last = link(total - 1)
		}
	}

	var hi int
	switch {
	case total <= pagerWindow:
		hi = pagerWindow - 1
	case cur >= total-3:
		hi = total - 1
	default:
		hi = max(cur-2, 0) + pagerWindow - 1
	}
	lo := hi - (pagerWindow - 1)

	p.Pages = make([]models.PageLink, 0, pagerWindow)
	for i := lo; i <= hi; i++ {
		slot := models.PageLink{Number: i + 1}
		if i < total {
			slot.Link = link(i)
		}
		p.Pages = append(p.Pages, slot)
	}
	return p
}
