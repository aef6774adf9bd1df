// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import "fmt"

// NoRelation is the relation value reported when a search targets no user.
// Snapshots built by this package never store it as real data.
const NoRelation uint16 = 65535

// Category is the media format of an entry.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryTV
	CategoryOVA
	CategoryWeb
	CategoryMovie
)

var categoryNames = [...]string{"", "TV", "OVA", "Web", "Movie"}

// String returns the display label; CategoryUnknown renders as "".
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c <= CategoryMovie
}

// ParseCategory maps a display label back to a Category. The empty string
// and "unknown" both yield CategoryUnknown.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "", "unknown", "Unknown":
		return CategoryUnknown, nil
	case "TV", "tv":
		return CategoryTV, nil
	case "OVA", "ova":
		return CategoryOVA, nil
	case "Web", "web", "WEB":
		return CategoryWeb, nil
	case "Movie", "movie":
		return CategoryMovie, nil
	}
	return CategoryUnknown, fmt.Errorf("unknown category %q", s)
}

// TagRef attaches a tag to an entry with a weight.
type TagRef struct {
	ID     uint32
	Weight float32
}

// Entry is one media item. Entries are immutable once loaded.
type Entry struct {
	ID             uint32
	Rank           uint32
	Title          string
	TitleLocalized string
	ImagePath      string
	Tags           []TagRef
	Score          float32
	RatingCount    uint32
	AirYear        uint16
	AirMonth       uint8
	AirDay         uint8
	Category       Category
	Adult          bool
}

// DisplayTitle is the localized title when present, else the original.
func (e *Entry) DisplayTitle() string {
	if e.TitleLocalized != "" {
		return e.TitleLocalized
	}
	return e.Title
}

// HasTag reports whether the entry carries tag id.
func (e *Entry) HasTag(id uint32) bool {
	for _, t := range e.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// SnapshotDate is the day a snapshot was produced.
type SnapshotDate struct {
	Month uint8  `json:"month"`
	Day   uint8  `json:"day"`
	Year  uint16 `json:"year"`
}

// String renders MM/DD/YYYY.
func (d SnapshotDate) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Month, d.Day, d.Year)
}

// Table is the decoded primary snapshot payload.
//
// Entries are sorted strictly ascending by ID. UserIDs is sorted strictly
// ascending and Usernames is parallel to it. TagNames is sorted, folded and
// unique; a tag's id is its index.
type Table struct {
	Date         SnapshotDate
	ScaleFactors [2]float32
	Entries      []Entry
	UserIDs      []uint32
	Usernames    []string
	TagNames     []string
}

// SearchResult is one matching entry with its computed values.
type SearchResult struct {
	Entry *Entry

	// KeywordRelevance is the mean signed keyword contribution; 0 when the
	// request had no keyword terms.
	KeywordRelevance float64

	// UserRelation is the matrix cell for the targeted user, or NoRelation.
	UserRelation uint16
}
