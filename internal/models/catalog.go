// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package models

// EntryView is one catalog entry as shown on a result page.
//
// TitleMain is the localized title when one exists, with the original in
// TitleOriginal; otherwise TitleMain is the original and TitleOriginal is
// empty. RecommendRate is present only when the query targeted a user.
type EntryView struct {
	ID            uint32  `json:"id"`
	Link          string  `json:"link"`
	ImageURL      string  `json:"image_url"`
	TitleMain     string  `json:"title_main"`
	TitleOriginal string  `json:"title_original,omitempty"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	Rank          uint32  `json:"rank"`
	RecommendRate *int    `json:"recommend_rate,omitempty"`
	Score         string  `json:"score"`
	RatingCount   uint32  `json:"rating_count"`
	Adult         bool    `json:"adult,omitempty"`
	Relevance     float64 `json:"relevance,omitempty"`
}

// PageLink is one slot of the pager window. Link is empty for slots past
// the last page.
type PageLink struct {
	Number int    `json:"number"`
	Link   string `json:"link,omitempty"`
}

// Pager holds navigation links for a paged listing. Page numbers are
// 1-based.
type Pager struct {
	Current int        `json:"current"`
	Total   int        `json:"total"`
	First   string     `json:"first,omitempty"`
	Prev    string     `json:"prev,omitempty"`
	Next    string     `json:"next,omitempty"`
	Last    string     `json:"last,omitempty"`
	Pages   []PageLink `json:"pages"`
}

// EntryPage is the data of a list or search response.
type EntryPage struct {
	Entries []EntryView `json:"entries"`
	Pager   *Pager      `json:"pager"`
	Search  *SearchEcho `json:"search,omitempty"`
}

// SearchEcho reflects the decoded query back to the client so a search form
// can be refilled.
type SearchEcho struct {
	Query    string `json:"query"`
	Keywords string `json:"keywords"`
	User     string `json:"user,omitempty"`
	Sort     string `json:"sort"`
	Adult    uint8  `json:"adult"`
}

// CatalogInfo describes the loaded snapshot.
type CatalogInfo struct {
	Date         string     `json:"date"`
	ScaleFactors [2]float32 `json:"scale_factors"`
	Entries      int        `json:"entries"`
	Users        int        `json:"users"`
	Tags         int        `json:"tags"`
}

// TagInfo is the result of a tag lookup.
type TagInfo struct {
	ID      uint32 `json:"id"`
	Name    string `json:"name"`
	Entries uint64 `json:"entries"`
}

// UserInfo is the result of a username lookup.
type UserInfo struct {
	ID       uint32 `json:"id"`
	Username string `json:"username"`
}
