// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package history

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Export file names inside a Letterboxd data export.
const (
	watchedFile  = "watched.csv"
	likesFile    = "likes/films.csv"
	listsGlob    = "lists/*.csv"
	diaryFile    = "diary.csv"
	ratingsFile  = "ratings.csv"
	reviewsFile  = "reviews.csv"
	profileFile  = "profile.csv"
	favoritesCol = "Favorite Films"
	uriCol       = "Letterboxd URI"
	urlCol       = "URL"
)

// Export is the result of merging a Letterboxd data export.
type Export struct {
	Records   []WatchRecord `json:"records"`
	Favorites []string      `json:"favorite_urls"`
	Stats     MergeStats    `json:"stats"`
}

// MergeStats counts what each export file contributed.
type MergeStats struct {
	WatchedRows  int `json:"watched_rows"`
	Dropped      int `json:"dropped"`
	Liked        int `json:"liked"`
	ListFiles    int `json:"list_files"`
	ListsSkipped int `json:"lists_skipped"`
	DiaryEntries int `json:"diary_entries"`
	Rated        int `json:"rated"`
	Reviewed     int `json:"reviewed"`
	Favorites    int `json:"favorites"`
}

// OpenExport opens a Letterboxd export from a zip file or an extracted
// directory. The returned closer must be closed by the caller.
func OpenExport(p string) (fs.FS, io.Closer, error) {
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingInput, p)
		}
		return nil, nil, fmt.Errorf("stat export: %w", err)
	}
	if info.IsDir() {
		return os.DirFS(p), nopCloser{}, nil
	}
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, nil, fmt.Errorf("open export archive: %w", err)
	}
	return zr, zr, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenExportArchive reads an export archive held in memory or on disk.
func OpenExportArchive(r io.ReaderAt, size int64) (fs.FS, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open export archive: %w", err)
	}
	return zr, nil
}

// ExportRoot locates the directory holding watched.csv, which is either
// the root of fsys or a single folder below it.
func ExportRoot(fsys fs.FS) (fs.FS, error) {
	if _, err := fs.Stat(fsys, watchedFile); err == nil {
		return fsys, nil
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list export: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(fsys, path.Join(e.Name(), watchedFile)); err == nil {
			return fs.Sub(fsys, e.Name())
		}
	}
	return nil, fmt.Errorf("%w: %s not found in export", ErrMissingInput, watchedFile)
}

// MergeExport builds watch records from a Letterboxd export.
//
// watched.csv is required. Every other file is optional and a missing or
// unreadable one is logged and skipped.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func MergeExport(fsys fs.FS, logger zerolog.Logger) (*Export, error) {
	logger = logger.With().Str("component", "letterboxd").Logger()

	root, err := ExportRoot(fsys)
	if err != nil {
		return nil, err
	}

	m := &merger{fsys: root, logger: logger}
	if err := m.loadWatched(); err != nil {
		return nil, err
	}
	m.applyLikes()
	m.applyLists()
	m.applyDiary()
	m.applyRatings()
	m.applyReviews()

	favorites, err := exportFavorites(root)
	if err != nil {
		logger.Warn().Err(err).Msg("Favorite films unavailable, favorite bonus will not apply")
	}
	m.stats.Favorites = len(favorites)

	logger.Info().
		Int("records", len(m.records)).
		Int("dropped", m.stats.Dropped).
		Int("list_files", m.stats.ListFiles).
		Int("favorites", len(favorites)).
		Msg("Merged Letterboxd export")

	return &Export{Records: m.records, Favorites: favorites, Stats: m.stats}, nil
}

type merger struct {
	fsys    fs.FS
	logger  zerolog.Logger
	records []WatchRecord
	byKey   map[string]int
	byURI   map[string]string
	stats   MergeStats
}

func (m *merger) open(name string) (*table, error) {
	return m.openWithHeader(name, 0)
}

func (m *merger) openWithHeader(name string, headerLine int) (*table, error) {
	f, err := m.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readTable(f, headerLine)
}

// rowKey returns the primary key of a Name/Year row.
func rowKey(t *table, row []string) (string, bool) {
	name := t.get(row, "Name")
	year, ok := parseYear(t.get(row, "Year"))
	if name == "" || !ok {
		return "", false
	}
	return Key(name, year), true
}

func (m *merger) loadWatched() error {
	t, err := m.open(watchedFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingInput, watchedFile)
		}
		return fmt.Errorf("read %s: %w", watchedFile, err)
	}

	m.byKey = make(map[string]int, len(t.rows))
	m.byURI = make(map[string]string, len(t.rows))
	m.records = make([]WatchRecord, 0, len(t.rows))
	m.stats.WatchedRows = len(t.rows)

	for i, row := range t.rows {
		name := t.get(row, "Name")
		year, ok := parseYear(t.get(row, "Year"))
		uri := t.get(row, uriCol)
		if name == "" || !ok || uri == "" {
			m.stats.Dropped++
			continue
		}
		rec := WatchRecord{URL: uri, Name: name, Year: year}
		if raw := t.get(row, "Date"); !isMissing(raw) {
			d, err := ParseDate(raw)
			if err != nil {
				return fmt.Errorf("%s line %d: %w", watchedFile, i+2, err)
			}
			rec.DateAdded = d
		}
		key := rec.Key()
		if _, dup := m.byKey[key]; dup {
			m.stats.Dropped++
			continue
		}
		m.byKey[key] = len(m.records)
		m.byURI[uri] = key
		m.records = append(m.records, rec)
	}
	return nil
}

func (m *merger) record(key string) *WatchRecord {
	i, ok := m.byKey[key]
	if !ok {
		return nil
	}
	return &m.records[i]
}

func (m *merger) applyLikes() {
	t, err := m.open(likesFile)
	if err != nil {
		m.logger.Warn().Err(err).Msg("likes/films.csv unavailable, liked defaults to no")
		return
	}
	for _, row := range t.rows {
		key, ok := rowKey(t, row)
		if !ok {
			continue
		}
		if rec := m.record(key); rec != nil && !rec.Liked {
			rec.Liked = true
			m.stats.Liked++
		}
	}
}

func (m *merger) applyLists() {
	files, err := fs.Glob(m.fsys, listsGlob)
	if err != nil || len(files) == 0 {
		m.logger.Debug().Msg("No list files in export")
		return
	}
	m.stats.ListFiles = len(files)

	counts := make(map[string]int)
	for _, name := range files {
		keys, err := m.listKeys(name)
		if err != nil {
			m.stats.ListsSkipped++
			m.logger.Warn().Err(err).Str("list", path.Base(name)).Msg("Skipping list file")
			continue
		}
		for key := range keys {
			counts[key]++
		}
	}
	for i := range m.records {
		m.records[i].ListCount = counts[m.records[i].Key()]
	}
}

// listKeys returns the unique record keys in one list file. List exports
// carry a title line, so the header is on the second line.
func (m *merger) listKeys(name string) (map[string]struct{}, error) {
	t, err := m.openWithHeader(name, 1)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})

	if t.has("Name", "Year") {
		for _, row := range t.rows {
			if key, ok := rowKey(t, row); ok {
				keys[key] = struct{}{}
			}
		}
		return keys, nil
	}

	col := ""
	switch {
	case t.has(uriCol):
		col = uriCol
	case t.has(urlCol):
		col = urlCol
	default:
		return nil, errors.New("list has neither Name/Year nor a URI column")
	}
	m.logger.Debug().Str("list", path.Base(name)).Str("column", col).Msg("Matching list by URI")
	for _, row := range t.rows {
		if key, ok := m.byURI[t.get(row, col)]; ok {
			keys[key] = struct{}{}
		}
	}
	return keys, nil
}

func (m *merger) applyDiary() {
	t, err := m.open(diaryFile)
	if err != nil {
		m.logger.Warn().Err(err).Msg("diary.csv unavailable, watch dates will be empty")
		return
	}

	dateCol := "Date"
	if t.has("Watched Date") {
		dateCol = "Watched Date"
	}

	type diaryAgg struct {
		dates map[Date]struct{}
		tags  []string
		seen  map[string]struct{}
		count int
	}
	aggs := make(map[string]*diaryAgg)

	for i, row := range t.rows {
		key, ok := rowKey(t, row)
		if !ok {
			continue
		}
		m.stats.DiaryEntries++
		a := aggs[key]
		if a == nil {
			a = &diaryAgg{dates: make(map[Date]struct{}), seen: make(map[string]struct{})}
			aggs[key] = a
		}
		a.count++

		raw := t.get(row, dateCol)
		if raw == "" && dateCol != "Date" {
			raw = t.get(row, "Date")
		}
		if d, err := ParseDate(raw); err == nil {
			a.dates[d] = struct{}{}
		} else {
			m.logger.Warn().Int("line", i+2).Str("value", raw).Msg("Unparsable diary date")
		}

		for _, tag := range strings.Split(t.get(row, "Tags"), ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, dup := a.seen[tag]; !dup {
				a.seen[tag] = struct{}{}
				a.tags = append(a.tags, tag)
			}
		}
	}

	for key, a := range aggs {
		rec := m.record(key)
		if rec == nil {
			continue
		}
		dates := make([]Date, 0, len(a.dates))
		for d := range a.dates {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j].Time) })
		rec.DatesWatched = dates
		rec.Watches = a.count
		rec.UserTags = strings.Join(a.tags, ", ")
	}
}

func (m *merger) applyRatings() {
	t, err := m.open(ratingsFile)
	if err != nil {
		m.logger.Warn().Err(err).Msg("ratings.csv unavailable, ratings will be empty")
		return
	}

	type rated struct {
		at    Date
		value float64
	}
	latest := make(map[string]rated)
	for i, row := range t.rows {
		key, ok := rowKey(t, row)
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(t.get(row, "Rating"), 64)
		if err != nil {
			m.logger.Warn().Int("line", i+2).Str("key", key).Msg("Unparsable rating")
			continue
		}
		at, _ := ParseDate(t.get(row, "Date"))
		// Later rows win ties, matching a stable sort by date.
		if prev, seen := latest[key]; !seen || !at.Before(prev.at.Time) {
			latest[key] = rated{at: at, value: value}
		}
	}

	for key, r := range latest {
		if rec := m.record(key); rec != nil {
			rec.Rating = Rated(r.value)
			m.stats.Rated++
		}
	}
}

func (m *merger) applyReviews() {
	t, err := m.open(reviewsFile)
	if err != nil {
		m.logger.Warn().Err(err).Msg("reviews.csv unavailable, reviewed defaults to no")
		return
	}
	for _, row := range t.rows {
		key, ok := rowKey(t, row)
		if !ok {
			continue
		}
		if rec := m.record(key); rec != nil && !rec.Reviewed {
			rec.Reviewed = true
			m.stats.Reviewed++
		}
	}
}

func exportFavorites(fsys fs.FS) ([]string, error) {
	f, err := fsys.Open(profileFile)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadFavorites(f)
}

// ReadFavorites returns the favorite film URLs listed in a Letterboxd
// profile.csv. The first row's "Favorite Films" cell holds them comma
// separated.
func ReadFavorites(r io.Reader) ([]string, error) {
	t, err := readTable(r, 0)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", profileFile, err)
	}
	if !t.has(favoritesCol) {
		return nil, fmt.Errorf("%s has no %q column", profileFile, favoritesCol)
	}
	if len(t.rows) == 0 {
		return nil, nil
	}
	var urls []string
	seen := make(map[string]struct{})
	for _, u := range strings.Split(t.get(t.rows[0], favoritesCol), ",") {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls, nil
}

// LoadFavorites reads favorites from a profile.csv on disk.
func LoadFavorites(p string) ([]string, error) {
	f, err := os.Open(p) //nolint:gosec // operator-supplied path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, p)
		}
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadFavorites(f)
}
