// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package api

import (
	"fmt"
	"strconv"

	"github.com/tomtom215/hako/internal/catalog"
	"github.com/tomtom215/hako/internal/models"
)

// presenter turns catalog entries into page items.
type presenter struct {
	subjectBase string
	imageBase   string
	entryCount  int
}

func (p *presenter) entry(e *catalog.Entry) models.EntryView {
	v := models.EntryView{
		ID:          e.ID,
		Link:        p.subjectBase + strconv.FormatUint(uint64(e.ID), 10),
		ImageURL:    p.imageBase + e.ImagePath,
		TitleMain:   e.DisplayTitle(),
		Category:    e.Category.String(),
		Date:        fmt.Sprintf("%02d/%02d/%04d", e.AirMonth, e.AirDay, e.AirYear),
		Rank:        e.Rank,
		Score:       fmt.Sprintf("%.2f", e.Score),
		RatingCount: e.RatingCount,
		Adult:       e.Adult,
	}
	if e.TitleLocalized != "" {
		v.TitleOriginal = e.Title
	}
	return v
}

// result presents a search result. A stored relation becomes the
// recommend rate entryCount - relation, so higher relations rank lower.
func (p *presenter) result(r *catalog.SearchResult) models.EntryView {
	v := p.entry(r.Entry)
	v.Relevance = r.KeywordRelevance
	if r.UserRelation != catalog.NoRelation {
		rate := p.entryCount - int(r.UserRelation)
		v.RecommendRate = &rate
	}
	return v
}
