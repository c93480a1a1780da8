// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package catalog

import "strings"

// RefKind says which discover parameter a tag maps to.
type RefKind string

const (
	KindGenre   RefKind = "genre"
	KindKeyword RefKind = "keyword"
)

// TagRef is a selected tag resolved to a catalog identifier.
type TagRef struct {
	Tag  string  `json:"tag"`
	Kind RefKind `json:"kind"`
	ID   int     `json:"id"`
}

// Resolver turns user-selected tag names into catalog identifiers.
type Resolver struct {
	keywords *KeywordIndex
}

// NewResolver creates a resolver. keywords may be nil, leaving only genres.
func NewResolver(keywords *KeywordIndex) *Resolver {
	return &Resolver{keywords: keywords}
}

// Resolve maps tag to a genre, else to a keyword by exact name, else to a
// keyword with hyphens read as spaces ("coming-of-age" -> "coming of age").
func (r *Resolver) Resolve(tag string) (TagRef, bool) {
	name := strings.ToLower(strings.TrimSpace(tag))
	if name == "" {
		return TagRef{}, false
	}

	if id, ok := GenreID(name); ok {
		return TagRef{Tag: tag, Kind: KindGenre, ID: id}, true
	}
	if id, ok := r.keywords.Lookup(name); ok {
		return TagRef{Tag: tag, Kind: KindKeyword, ID: id}, true
	}
	if spaced := strings.ReplaceAll(name, "-", " "); spaced != name {
		if id, ok := r.keywords.Lookup(spaced); ok {
			return TagRef{Tag: tag, Kind: KindKeyword, ID: id}, true
		}
	}
	return TagRef{}, false
}

// Keywords returns the underlying keyword index (possibly nil).
func (r *Resolver) Keywords() *KeywordIndex {
	return r.keywords
}
