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
	"math"
	"strconv"
	"strings"
)

// table is a CSV file addressed by column name.
type table struct {
	cols map[string]int
	rows [][]string
}

// readTable parses CSV data whose header sits on line headerLine (zero
// based). Lines before the header are discarded and blank lines skipped.
func readTable(r io.Reader, headerLine int) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	t := &table{cols: make(map[string]int)}
	line := 0
	headerSeen := false
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line+1, err)
		}
		if !headerSeen {
			if line == headerLine {
				for i, name := range record {
					name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
					if _, dup := t.cols[name]; !dup {
						t.cols[name] = i
					}
				}
				headerSeen = true
			}
			line++
			continue
		}
		line++
		if isBlank(record) {
			continue
		}
		t.rows = append(t.rows, record)
	}
	if !headerSeen {
		return nil, fmt.Errorf("csv has no header on line %d", headerLine+1)
	}
	return t, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (t *table) has(names ...string) bool {
	for _, n := range names {
		if _, ok := t.cols[n]; !ok {
			return false
		}
	}
	return true
}

// get returns the trimmed value of column name in row, or "".
func (t *table) get(row []string, name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseYear accepts integer and float-formatted years ("1999", "1999.0").
func parseYear(s string) (int, bool) {
	n, err := parseIntish(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseIntish parses integers that may have been written as floats.
func parseIntish(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: not an integer: %q", ErrMalformedRow, s)
	}
	return int(f), nil
}

// isMissing reports values pandas would read as NaN.
func isMissing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "null", "n/a", "na":
		return true
	default:
		return false
	}
}
