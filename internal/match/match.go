// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

// Package match implements the two keyword matchers used by catalog search:
// case-insensitive substring containment and a normalized edit-distance
// similarity over Unicode code points.
//
// Both matchers are pure functions and safe for concurrent use.
package match

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns s with Unicode case folding applied. Folded strings compare
// equal when they differ only in case, including non-ASCII scripts.
//
// A cases.Caser keeps state, so one is created per call.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ExactContains reports whether target contains term, ignoring case.
// An empty term is contained in every target.
func ExactContains(term, target string) bool {
	return strings.Contains(Fold(target), Fold(term))
}

// ContainsFolded is ExactContains for inputs that are already folded.
func ContainsFolded(foldedTerm, foldedTarget string) bool {
	return strings.Contains(foldedTarget, foldedTerm)
}

// PartialSimilarity returns 1 - d/max(len(a), len(b)) where d is the
// Levenshtein distance between a and b, clamped to [0, 1]. Lengths are in
// code points. Two empty inputs are identical and score 1.
//
// Time and space are O(len(a)*len(b)); inputs are titles, not documents.
func PartialSimilarity(a, b []rune) float64 {
	n, m := len(a), len(b)
	longest := max(n, m)
	if longest == 0 {
		return 1
	}

	p := m + 1
	c := make([]int, (n+1)*p)
	for i := 0; i <= n; i++ {
		c[i*p] = i
	}
	for j := 1; j <= m; j++ {
		c[j] = j
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			sub := c[i*p+j]
			if a[i] != b[j] {
				sub++
			}
			c[(i+1)*p+j+1] = min(c[i*p+j+1]+1, c[(i+1)*p+j]+1, sub)
		}
	}

	s := 1 - float64(c[n*p+m])/float64(longest)
	return min(max(s, 0), 1)
}

// PartialSimilarityString folds both strings and compares their code points.
func PartialSimilarityString(a, b string) float64 {
	return PartialSimilarity([]rune(Fold(a)), []rune(Fold(b)))
}
