// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package history

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

var (
	// ErrMissingInput is returned when a required history file does not exist.
	ErrMissingInput = errors.New("history: input not found")

	// ErrMalformedDate is returned when a required date field cannot be parsed.
	ErrMalformedDate = errors.New("history: malformed date")

	// ErrMalformedRow is returned when a numeric field cannot be parsed.
	ErrMalformedRow = errors.New("history: malformed row")
)

// dateLayouts are tried in order when parsing dates from CSV input.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to a UTC calendar date.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date, accepting a trailing time component.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

// String returns the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

// MarshalJSON encodes the zero date as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts null, "" or an ISO date.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// YesNo is a boolean serialized as "yes" or "no".
type YesNo bool

// MarshalJSON encodes the flag as "yes" or "no".
func (y YesNo) MarshalJSON() ([]byte, error) {
	if y {
		return []byte(`"yes"`), nil
	}
	return []byte(`"no"`), nil
}

// UnmarshalJSON accepts "yes"/"no" strings and JSON booleans.
func (y *YesNo) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*y = YesNo(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("yes/no flag: %w", err)
	}
	*y = YesNo(parseFlag(s))
	return nil
}

func (y YesNo) String() string {
	if y {
		return "yes"
	}
	return "no"
}

// parseFlag reads the yes/no columns. Anything unrecognized is "no".
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}

// WatchRecord is one logged title. Year 0 means unknown.
type WatchRecord struct {
	URL          string   `json:"url" validate:"omitempty,max=2048"`
	Name         string   `json:"name" validate:"required,max=512"`
	Year         int      `json:"year" validate:"gte=0,lte=3000"`
	DateAdded    Date     `json:"date_added"`
	DatesWatched []Date   `json:"dates_watched"`
	Rating       *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Watches      int      `json:"no_of_watches" validate:"gte=0"`
	Reviewed     YesNo    `json:"reviewed"`
	ListCount    int      `json:"in_lists_count" validate:"gte=0"`
	Liked        YesNo    `json:"liked"`
	UserTags     string   `json:"user_tags,omitempty"`
	CatalogID    int      `json:"catalog_id,omitempty"`
}

// Key returns the primary key, Name + "_" + Year.
func (r *WatchRecord) Key() string {
	return Key(r.Name, r.Year)
}

// Key builds a primary key from a title and year.
func Key(name string, year int) string {
	return name + "_" + strconv.Itoa(year)
}

// RatingValue returns the rating, or 0 when the title is unrated.
func (r *WatchRecord) RatingValue() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// LastWatched returns the latest watch date, falling back to the date
// the title was added. Both may be zero.
func (r *WatchRecord) LastWatched() Date {
	var last Date
	for _, d := range r.DatesWatched {
		if d.After(last.Time) {
			last = d
		}
	}
	if last.IsZero() {
		return r.DateAdded
	}
	return last
}

// Rated returns a pointer to v for the optional Rating field.
func Rated(v float64) *float64 {
	return &v
}
