// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package match

import (
	"math"
	"testing"
)

func TestExactContains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		term, target string
		want         bool
	}{
		{"edge", "Cowboy Bebop: Knockin' on Heaven's Door", false},
		{"bebop", "Cowboy Bebop", true},
		{"BEBOP", "cowboy bebop", true},
		{"", "anything", true},
		{"進撃", "進撃の巨人", true},
		{"Ω", "ωmega", true},
		{"x", "", false},
	}
	for _, tt := range tests {
		if got := ExactContains(tt.term, tt.target); got != tt.want {
			t.Errorf("ExactContains(%q, %q) = %v, want %v", tt.term, tt.target, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	if Fold("MONOGATARI") != Fold("monogatari") {
		t.Error("Fold should ignore ASCII case")
	}
	if Fold("ΣΟΦΙΑ") != Fold("σοφια") {
		t.Error("Fold should ignore Greek case")
	}
}

func TestPartialSimilarityKnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{"kitten", "sitting", 1 - 3.0/7.0},
		{"abc", "abc", 1},
		{"abc", "", 0},
		{"", "", 1},
		{"abcd", "abce", 0.75},
		{"けいおん", "けいおん!", 0.8},
	}
	for _, tt := range tests {
		got := PartialSimilarity([]rune(tt.a), []rune(tt.b))
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PartialSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPartialSimilarityProperties(t *testing.T) {
	t.Parallel()

	words := []string{"", "a", "ab", "ba", "frieren", "FRIEREN", "sousou no frieren", "葬送のフリーレン", "x"}
	for _, a := range words {
		ra := []rune(a)
		if got := PartialSimilarity(ra, ra); got != 1 {
			t.Errorf("PartialSimilarity(%q, %q) = %v, want 1", a, a, got)
		}
		for _, b := range words {
			rb := []rune(b)
			ab := PartialSimilarity(ra, rb)
			ba := PartialSimilarity(rb, ra)
			if ab < 0 || ab > 1 {
				t.Errorf("PartialSimilarity(%q, %q) = %v, out of [0,1]", a, b, ab)
			}
			if ab != ba {
				t.Errorf("PartialSimilarity not symmetric for %q/%q: %v vs %v", a, b, ab, ba)
			}
		}
	}
}

func TestPartialSimilarityString(t *testing.T) {
	t.Parallel()

	if got := PartialSimilarityString("Frieren", "frieren"); got != 1 {
		t.Errorf("PartialSimilarityString should fold case, got %v", got)
	}
}

func BenchmarkPartialSimilarity(b *testing.B) {
	x := []rune("the melancholy of haruhi suzumiya")
	y := []rune("the disappearance of haruhi suzumiya")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PartialSimilarity(x, y)
	}
}
