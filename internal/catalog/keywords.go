// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// KeywordIndex maps lower-case keyword names to catalog keyword IDs. It is
// built once and read-only afterwards.
type KeywordIndex struct {
	ids   map[string]int
	names []string // CSV order, for deterministic search
}

// KeywordMatch is one search hit.
type KeywordMatch struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// LoadKeywordIndex reads a name,id CSV file.
func LoadKeywordIndex(path string) (*KeywordIndex, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open keyword file: %w", err)
	}
	defer func() { _ = f.Close() }()

	idx, err := ReadKeywordIndex(f)
	if err != nil {
		return nil, fmt.Errorf("read keyword file %s: %w", path, err)
	}
	return idx, nil
}

// ReadKeywordIndex parses name,id rows. A header row naming "name" and "id"
// columns is honored in any order; without one the first two columns are
// taken as name then id. Rows with a non-numeric id are skipped, and the
// first occurrence of a duplicate name wins.
func ReadKeywordIndex(r io.Reader) (*KeywordIndex, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	idx := &KeywordIndex{ids: make(map[string]int)}
	nameCol, idCol := 0, 1
	first := true

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if first {
			first = false
			if n, i, ok := keywordHeader(record); ok {
				nameCol, idCol = n, i
				continue
			}
		}
		if len(record) <= nameCol || len(record) <= idCol {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(record[nameCol]))
		id, err := strconv.Atoi(strings.TrimSpace(record[idCol]))
		if name == "" || err != nil || id <= 0 {
			continue
		}
		if _, dup := idx.ids[name]; dup {
			continue
		}
		idx.ids[name] = id
		idx.names = append(idx.names, name)
	}
	return idx, nil
}

func keywordHeader(record []string) (nameCol, idCol int, ok bool) {
	nameCol, idCol = -1, -1
	for i, col := range record {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name", "keyword":
			nameCol = i
		case "id", "keyword_id":
			idCol = i
		}
	}
	return nameCol, idCol, nameCol >= 0 && idCol >= 0
}

// Lookup returns the ID for an exact (case-insensitive) keyword name.
func (k *KeywordIndex) Lookup(name string) (int, bool) {
	if k == nil {
		return 0, false
	}
	id, ok := k.ids[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Len returns the number of indexed keywords.
func (k *KeywordIndex) Len() int {
	if k == nil {
		return 0
	}
	return len(k.names)
}

// Search returns up to limit keywords containing query. Prefix matches come
// first, then other substring matches, each in file order.
func (k *KeywordIndex) Search(query string, limit int) []KeywordMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if k == nil || query == "" || limit <= 0 {
		return []KeywordMatch{}
	}

	var prefix, contains []KeywordMatch
	for _, name := range k.names {
		switch {
		case strings.HasPrefix(name, query):
			prefix = append(prefix, KeywordMatch{Name: name, ID: k.ids[name]})
		case strings.Contains(name, query):
			contains = append(contains, KeywordMatch{Name: name, ID: k.ids[name]})
		}
		if len(prefix) >= limit {
			break
		}
	}

	out := append(prefix, contains...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
