// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package catalog

// genreIDs maps lower-case genre names, common spellings and the mood tags
// that stand for a whole genre to catalog movie genre IDs.
var genreIDs = map[string]int{
	"action":          28,
	"adventure":       12,
	"animation":       16,
	"comedy":          35,
	"crime":           80,
	"documentary":     99,
	"drama":           18,
	"family":          10751,
	"fantasy":         14,
	"history":         36,
	"horror":          27,
	"music":           10402,
	"mystery":         9648,
	"romance":         10749,
	"science fiction": 878,
	"science-fiction": 878,
	"sci-fi":          878,
	"scifi":           878,
	"tv movie":        10770,
	"thriller":        53,
	"war":             10752,
	"western":         37,

	"animated":   16,
	"funny":      35,
	"mysterious": 9648,
	"romantic":   10749,
	"scary":      27,
	"thrilling":  53,
}

// GenreID returns the genre ID for a lower-case name.
func GenreID(name string) (int, bool) {
	id, ok := genreIDs[name]
	return id, ok
}

// genreNames holds the display name of each genre ID.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreName returns the display name for a genre ID.
func GenreName(id int) (string, bool) {
	name, ok := genreNames[id]
	return name, ok
}

// GenreNames maps genre IDs to display names, skipping unknown IDs.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
