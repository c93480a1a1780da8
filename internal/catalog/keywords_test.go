// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const keywordCSV = `name,id
Feel-Good,280003
coming of age,10683
time travel,4379
travel,3616
,12
bogus,abc
feel-good,999
dystopia,4565
`

func TestReadKeywordIndex(t *testing.T) {
	t.Parallel()

	idx, err := ReadKeywordIndex(strings.NewReader(keywordCSV))
	if err != nil {
		t.Fatalf("ReadKeywordIndex: %v", err)
	}
	if idx.Len() != 5 {
		t.Errorf("Len = %d, want 5", idx.Len())
	}
	if id, ok := idx.Lookup("FEEL-GOOD"); !ok || id != 280003 {
		t.Errorf("Lookup(feel-good) = (%d, %v), want first occurrence 280003", id, ok)
	}
	if _, ok := idx.Lookup("bogus"); ok {
		t.Error("row with non-numeric id should be skipped")
	}
}

func TestReadKeywordIndex_ReorderedHeader(t *testing.T) {
	t.Parallel()

	idx, err := ReadKeywordIndex(strings.NewReader("id,name\n4379,time travel\n"))
	if err != nil {
		t.Fatalf("ReadKeywordIndex: %v", err)
	}
	if id, ok := idx.Lookup("time travel"); !ok || id != 4379 {
		t.Errorf("Lookup = (%d, %v)", id, ok)
	}
}

func TestReadKeywordIndex_NoHeader(t *testing.T) {
	t.Parallel()

	idx, err := ReadKeywordIndex(strings.NewReader("heist,10051\n"))
	if err != nil {
		t.Fatalf("ReadKeywordIndex: %v", err)
	}
	if id, ok := idx.Lookup("heist"); !ok || id != 10051 {
		t.Errorf("Lookup = (%d, %v)", id, ok)
	}
}

func TestKeywordIndex_Search(t *testing.T) {
	t.Parallel()

	idx, _ := ReadKeywordIndex(strings.NewReader(keywordCSV))

	got := idx.Search("travel", 10)
	if len(got) != 2 {
		t.Fatalf("Search(travel) = %+v", got)
	}
	if got[0].Name != "travel" || got[1].Name != "time travel" {
		t.Errorf("prefix match should come first: %+v", got)
	}
	if got := idx.Search("travel", 1); len(got) != 1 {
		t.Errorf("limit not applied: %+v", got)
	}
	if got := idx.Search("", 10); len(got) != 0 {
		t.Errorf("empty query = %+v", got)
	}

	var nilIdx *KeywordIndex
	if got := nilIdx.Search("x", 5); len(got) != 0 {
		t.Errorf("nil index search = %+v", got)
	}
}

func TestLoadKeywordIndex(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "all_keywords.csv")
	if err := os.WriteFile(path, []byte(keywordCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	idx, err := LoadKeywordIndex(path)
	if err != nil {
		t.Fatalf("LoadKeywordIndex: %v", err)
	}
	if idx.Len() == 0 {
		t.Error("expected keywords")
	}
	if _, err := LoadKeywordIndex(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolver(t *testing.T) {
	t.Parallel()

	idx, _ := ReadKeywordIndex(strings.NewReader(keywordCSV))
	r := NewResolver(idx)

	tests := []struct {
		tag      string
		wantKind RefKind
		wantID   int
		wantOK   bool
	}{
		{"comedy", KindGenre, 35, true},
		{"Sci-Fi", KindGenre, 878, true},
		{"feel-good", KindKeyword, 280003, true},
		{"coming-of-age", KindKeyword, 10683, true},
		{"exciting", "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			ref, ok := r.Resolve(tt.tag)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ref.Kind != tt.wantKind || ref.ID != tt.wantID {
				t.Errorf("ref = %+v, want %s/%d", ref, tt.wantKind, tt.wantID)
			}
		})
	}

	if _, ok := NewResolver(nil).Resolve("feel-good"); ok {
		t.Error("resolver without keywords should only know genres")
	}
}

func TestResolver_GenreAliasesWithoutKeywords(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	tests := []struct {
		tag    string
		wantID int
	}{
		{"sci-fi", 878},
		{"romantic", 10749},
		{"Scary", 27},
		{"funny", 35},
		{"thrilling", 53},
		{"mysterious", 9648},
		{"animated", 16},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			ref, ok := r.Resolve(tt.tag)
			if !ok {
				t.Fatalf("Resolve(%q) not resolved", tt.tag)
			}
			if ref.Kind != KindGenre || ref.ID != tt.wantID {
				t.Errorf("ref = %+v, want genre/%d", ref, tt.wantID)
			}
		})
	}
}
