// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tomtom215/hako/internal/match"
)

// Source is the human-editable form of a catalog, consumed by Build.
type Source struct {
	Date         SnapshotDate  `json:"date"`
	ScaleFactors [2]float32    `json:"scale_factors"`
	Entries      []SourceEntry `json:"entries"`
	Users        []SourceUser  `json:"users"`

	// DefaultRelation fills matrix cells that no user lists.
	DefaultRelation uint16 `json:"default_relation"`
}

// SourceEntry is an entry whose tags are referenced by name.
type SourceEntry struct {
	ID             uint32      `json:"id"`
	Rank           uint32      `json:"rank"`
	Title          string      `json:"title"`
	TitleLocalized string      `json:"title_localized"`
	ImagePath      string      `json:"image_path"`
	Tags           []SourceTag `json:"tags"`
	Score          float32     `json:"score"`
	RatingCount    uint32      `json:"rating_count"`
	AirYear        uint16      `json:"air_year"`
	AirMonth       uint8       `json:"air_month"`
	AirDay         uint8       `json:"air_day"`
	Category       string      `json:"category"`
	Adult          bool        `json:"adult"`
}

// SourceTag names a tag with its weight.
type SourceTag struct {
	Name   string  `json:"name"`
	Weight float32 `json:"weight"`
}

// SourceUser is a user and the relation values they hold.
type SourceUser struct {
	ID        uint32           `json:"id"`
	Username  string           `json:"username"`
	Relations []SourceRelation `json:"relations"`
}

// SourceRelation is one matrix cell.
type SourceRelation struct {
	EntryID uint32 `json:"entry_id"`
	Value   uint16 `json:"value"`
}

// Build turns source records into a validated Table and its row-major
// relation matrix. Tag names are case-folded and assigned ids in sorted
// order; entries and users are sorted by id.
func Build(src *Source) (*Table, []uint16, error) {
	if src.DefaultRelation == NoRelation {
		return nil, nil, fmt.Errorf("%w: default relation %d is reserved", ErrInvalidSource, NoRelation)
	}

	tagSet := make(map[string]struct{})
	for _, e := range src.Entries {
		for _, t := range e.Tags {
			tagSet[match.Fold(t.Name)] = struct{}{}
		}
	}
	tagNames := make([]string, 0, len(tagSet))
	for name := range tagSet {
		tagNames = append(tagNames, name)
	}
	slices.Sort(tagNames)
	tagIDs := make(map[string]uint32, len(tagNames))
	for i, name := range tagNames {
		tagIDs[name] = uint32(i)
	}

	entries := make([]Entry, len(src.Entries))
	for i, se := range src.Entries {
		category, err := ParseCategory(se.Category)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidSource, se.ID, err)
		}
		e := Entry{
			ID:             se.ID,
			Rank:           se.Rank,
			Title:          se.Title,
			TitleLocalized: se.TitleLocalized,
			ImagePath:      se.ImagePath,
			Score:          se.Score,
			RatingCount:    se.RatingCount,
			AirYear:        se.AirYear,
			AirMonth:       se.AirMonth,
			AirDay:         se.AirDay,
			Category:       category,
			Adult:          se.Adult,
		}
		if len(se.Tags) > 0 {
			e.Tags = make([]TagRef, len(se.Tags))
			for j, t := range se.Tags {
				e.Tags[j] = TagRef{ID: tagIDs[match.Fold(t.Name)], Weight: t.Weight}
			}
		}
		entries[i] = e
	}
	slices.SortFunc(entries, func(a, b Entry) int { return cmp.Compare(a.ID, b.ID) })
	for i := 1; i < len(entries); i++ {
		if entries[i-1].ID == entries[i].ID {
			return nil, nil, fmt.Errorf("%w: duplicate entry id %d", ErrInvalidSource, entries[i].ID)
		}
	}

	users := slices.Clone(src.Users)
	slices.SortFunc(users, func(a, b SourceUser) int { return cmp.Compare(a.ID, b.ID) })

	t := &Table{
		Date:         src.Date,
		ScaleFactors: src.ScaleFactors,
		Entries:      entries,
		UserIDs:      make([]uint32, len(users)),
		Usernames:    make([]string, len(users)),
		TagNames:     tagNames,
	}

	matrix := make([]uint16, len(users)*len(entries))
	for i := range matrix {
		matrix[i] = src.DefaultRelation
	}
	for row, u := range users {
		if row > 0 && users[row-1].ID == u.ID {
			return nil, nil, fmt.Errorf("%w: duplicate user id %d", ErrInvalidSource, u.ID)
		}
		t.UserIDs[row] = u.ID
		t.Usernames[row] = u.Username
		for _, rel := range u.Relations {
			if rel.Value == NoRelation {
				return nil, nil, fmt.Errorf("%w: user %d: relation value %d is reserved", ErrInvalidSource, u.ID, NoRelation)
			}
			col, ok := slices.BinarySearchFunc(entries, rel.EntryID, func(e Entry, id uint32) int { return cmp.Compare(e.ID, id) })
			if !ok {
				return nil, nil, fmt.Errorf("%w: user %d: unknown entry %d", ErrInvalidSource, u.ID, rel.EntryID)
			}
			matrix[row*len(entries)+col] = rel.Value
		}
	}

	if err := t.Validate(); err != nil {
		return nil, nil, err
	}
	return t, matrix, nil
}
