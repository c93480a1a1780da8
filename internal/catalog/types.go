// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package catalog

import (
	"strconv"
	"strings"
)

// TopCastLimit is how many credited cast members count toward familiarity.
const TopCastLimit = 10

// writerJobs are the crew jobs treated as writing credits.
var writerJobs = map[string]struct{}{
	"Writer":     {},
	"Screenplay": {},
	"Story":      {},
}

// Genre is a catalog genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SpokenLanguage is a language spoken in a movie.
type SpokenLanguage struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// CastMember is one credited actor, in billing order.
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits holds cast and crew.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Keyword is a catalog keyword.
type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// KeywordList is the shape of the appended keywords block.
type KeywordList struct {
	Keywords []Keyword `json:"keywords"`
}

// Summary is a movie as returned by list endpoints (discover, similar, search).
type Summary struct {
	ID               int     `json:"id" validate:"required,gt=0"`
	Title            string  `json:"title" validate:"required"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
}

// Year returns the release year, or 0 when unknown.
func (s *Summary) Year() int {
	return yearOf(s.ReleaseDate)
}

// Page is one page of list results.
type Page struct {
	Page         int       `json:"page"`
	Results      []Summary `json:"results"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
}

// Detail is a movie with credits and keywords appended.
type Detail struct {
	ID              int              `json:"id" validate:"required,gt=0"`
	Title           string           `json:"title" validate:"required"`
	OriginalTitle   string           `json:"original_title,omitempty"`
	Overview        string           `json:"overview"`
	ReleaseDate     string           `json:"release_date"`
	Runtime         int              `json:"runtime"`
	Genres          []Genre          `json:"genres"`
	SpokenLanguages []SpokenLanguage `json:"spoken_languages"`
	PosterPath      string           `json:"poster_path"`
	BackdropPath    string           `json:"backdrop_path"`
	VoteAverage     float64          `json:"vote_average"`
	VoteCount       int              `json:"vote_count"`
	Popularity      float64          `json:"popularity"`
	Credits         Credits          `json:"credits"`
	Keywords        KeywordList      `json:"keywords"`
}

// Year returns the release year, or 0 when unknown.
func (d *Detail) Year() int {
	return yearOf(d.ReleaseDate)
}

// TopCast returns the names of the first n credited cast members.
func (d *Detail) TopCast(n int) []string {
	cast := d.Credits.Cast
	if len(cast) > n {
		cast = cast[:n]
	}
	names := make([]string, 0, len(cast))
	for _, c := range cast {
		names = append(names, c.Name)
	}
	return names
}

// Directors returns crew names credited with the Director job.
func (d *Detail) Directors() []string {
	var names []string
	for _, c := range d.Credits.Crew {
		if c.Job == "Director" {
			names = append(names, c.Name)
		}
	}
	return names
}

// Writers returns crew names credited as Writer, Screenplay or Story.
func (d *Detail) Writers() []string {
	var names []string
	for _, c := range d.Credits.Crew {
		if _, ok := writerJobs[c.Job]; ok {
			names = append(names, c.Name)
		}
	}
	return names
}

// KeywordNames returns the keyword strings.
func (d *Detail) KeywordNames() []string {
	names := make([]string, 0, len(d.Keywords.Keywords))
	for _, k := range d.Keywords.Keywords {
		names = append(names, k.Name)
	}
	return names
}

// GenreNames returns the genre names.
func (d *Detail) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// LanguageNames returns the English names of spoken languages.
func (d *Detail) LanguageNames() []string {
	names := make([]string, 0, len(d.SpokenLanguages))
	for _, l := range d.SpokenLanguages {
		if l.EnglishName != "" {
			names = append(names, l.EnglishName)
		}
	}
	return names
}

// yearOf parses the leading YYYY of a release date.
func yearOf(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}
