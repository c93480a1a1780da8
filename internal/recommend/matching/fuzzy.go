// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package matching decides whether a catalog title is one the user has
// already watched.
//
// Titles are compared case-insensitively after trimming and collapsing
// whitespace. The rules apply in order:
//
//  1. identical titles match
//  2. when both titles have at least two words, a token subset matches
//  3. substring containment in either direction matches
//  4. otherwise the LCS ratio 2*LCS/(len(a)+len(b)) must reach 0.8
//
// When both years are known they must be equal before titles are compared.
package matching

import (
	"strings"
	"unicode/utf8"
)

// DefaultThreshold is the minimum LCS ratio for rule 4.
const DefaultThreshold = 0.8

// Normalize lower-cases s and collapses runs of whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// TitlesMatch applies the title rules to two raw titles.
func TitlesMatch(a, b string) bool {
	return normalizedMatch(Normalize(a), Normalize(b), DefaultThreshold)
}

// Match compares two title/year pairs. A year of 0 is unknown and falls
// back to title-only matching.
func Match(titleA string, yearA int, titleB string, yearB int) bool {
	if yearA > 0 && yearB > 0 && yearA != yearB {
		return false
	}
	return TitlesMatch(titleA, titleB)
}

func normalizedMatch(a, b string, threshold float64) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) >= 2 && len(tb) >= 2 && (subset(ta, tb) || subset(tb, ta)) {
		return true
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	return LCSRatio(a, b) >= threshold
}

// subset reports whether every token of small appears in big.
func subset(small, big []string) bool {
	set := make(map[string]struct{}, len(big))
	for _, t := range big {
		set[t] = struct{}{}
	}
	for _, t := range small {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

// LCSRatio returns 2*LCS(a,b)/(len(a)+len(b)) over runes, in [0, 1].
func LCSRatio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(lcsLength([]rune(a), []rune(b))) / float64(total)
}

// lcsLength is the classic two-row dynamic program.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
