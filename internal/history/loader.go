// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// mergedColumns is the column order written by WriteMergedCSV.
var mergedColumns = []string{
	"url", "name", "year", "date_added", "dates_watched", "rating",
	"no_of_watches", "reviewed", "user_tags", "liked", "in_lists_count",
}

// LoadMergedCSV reads a merged history table from disk. A missing file
// returns ErrMissingInput.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LoadMergedCSV(path string, logger zerolog.Logger) ([]WatchRecord, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadMergedCSV(f, logger)
}

// ReadMergedCSV parses a merged history table.
//
// A malformed date_added or numeric column aborts the read with no partial
// output. Rows whose year is not an integer are dropped. An unparsable
// dates_watched list is logged and read as empty.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func ReadMergedCSV(r io.Reader, logger zerolog.Logger) ([]WatchRecord, error) {
	t, err := readTable(r, 0)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if !t.has("name", "year") {
		return nil, fmt.Errorf("%w: history table needs name and year columns", ErrMalformedRow)
	}

	records := make([]WatchRecord, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		name := t.get(row, "name")
		year, ok := parseYear(t.get(row, "year"))
		if name == "" || !ok {
			logger.Warn().Int("line", line).Str("name", name).Msg("Dropping history row without a usable name and year")
			continue
		}

		rec := WatchRecord{
			URL:      t.get(row, "url"),
			Name:     name,
			Year:     year,
			Reviewed: YesNo(parseFlag(t.get(row, "reviewed"))),
			Liked:    YesNo(parseFlag(t.get(row, "liked"))),
			UserTags: t.get(row, "user_tags"),
		}

		if raw := t.get(row, "date_added"); !isMissing(raw) {
			d, err := ParseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d date_added: %w", line, err)
			}
			rec.DateAdded = d
		}

		dates, err := ParseDateList(t.get(row, "dates_watched"))
		if err != nil {
			logger.Warn().Err(err).Int("line", line).Str("name", name).Msg("Unparsable dates_watched, treating as empty")
			dates = nil
		}
		rec.DatesWatched = dates

		if raw := t.get(row, "rating"); !isMissing(raw) {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d rating: %w: %q", line, ErrMalformedRow, raw)
			}
			rec.Rating = &v
		}
		if rec.Watches, err = optionalInt(t.get(row, "no_of_watches")); err != nil {
			return nil, fmt.Errorf("line %d no_of_watches: %w", line, err)
		}
		if rec.ListCount, err = optionalInt(t.get(row, "in_lists_count")); err != nil {
			return nil, fmt.Errorf("line %d in_lists_count: %w", line, err)
		}
		if raw := t.get(row, "catalog_id"); !isMissing(raw) {
			if rec.CatalogID, err = parseIntish(raw); err != nil {
				return nil, fmt.Errorf("line %d catalog_id: %w", line, err)
			}
		}

		records = append(records, rec)
	}
	return records, nil
}

func optionalInt(s string) (int, error) {
	if isMissing(s) {
		return 0, nil
	}
	return parseIntish(s)
}

// ParseDateList parses a bracketed list of quoted dates such as
// ['2023-01-15', '2023-02-01']. Empty input yields an empty list.
func ParseDateList(s string) ([]Date, error) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: not a list: %q", ErrMalformedDate, s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}
	parts := strings.Split(inner, ",")
	dates := make([]Date, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `'"`)
		d, err := ParseDate(p)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// FormatDateList renders dates in the format ParseDateList reads.
func FormatDateList(dates []Date) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = "'" + d.String() + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// WriteMergedCSV writes records as a merged history table.
func WriteMergedCSV(w io.Writer, records []WatchRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mergedColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range records {
		rec := &records[i]
		rating := ""
		if rec.Rating != nil {
			rating = strconv.FormatFloat(*rec.Rating, 'f', -1, 64)
		}
		row := []string{
			rec.URL,
			rec.Name,
			strconv.Itoa(rec.Year),
			rec.DateAdded.String(),
			FormatDateList(rec.DatesWatched),
			rating,
			strconv.Itoa(rec.Watches),
			rec.Reviewed.String(),
			rec.UserTags,
			rec.Liked.String(),
			strconv.Itoa(rec.ListCount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", rec.Key(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}
