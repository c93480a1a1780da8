// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package algorithms

import "strings"

// Tag categories.
const (
	CategoryEmotion = "emotion"
	CategoryMood    = "mood"
	CategoryGenre   = "genre"
)

// Tag is one selectable tag.
type Tag struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Synonyms    []string `json:"synonyms"`
}

// vocabulary is the static tag table. Synonym phrases are matched as
// lower-case substrings.
var vocabulary = []Tag{
	{ID: "feel-good", Name: "Feel-Good", Category: CategoryEmotion, Description: "Uplifting films that leave you smiling",
		Synonyms: []string{"feel good", "uplifting", "heartwarming", "positive"}},
	{ID: "thought-provoking", Name: "Thought-Provoking", Category: CategoryEmotion, Description: "Films that stay with you and ask questions",
		Synonyms: []string{"thought provoking", "philosophical", "deep", "meaningful"}},
	{ID: "inspiring", Name: "Inspiring", Category: CategoryEmotion, Description: "Stories of people rising to the occasion",
		Synonyms: []string{"inspiring", "motivational", "empowering", "heroic"}},
	{ID: "relaxing", Name: "Relaxing", Category: CategoryEmotion, Description: "Calm, low-stakes viewing",
		Synonyms: []string{"relaxing", "calm", "peaceful", "tranquil"}},
	{ID: "exciting", Name: "Exciting", Category: CategoryEmotion, Description: "High energy and adventure",
		Synonyms: []string{"exciting", "thrilling", "action", "adventure"}},

	{ID: "romantic", Name: "Romantic", Category: CategoryMood, Description: "Love in the air",
		Synonyms: []string{"romantic", "love", "romance", "passion"}},
	{ID: "funny", Name: "Funny", Category: CategoryMood, Description: "Made to make you laugh",
		Synonyms: []string{"funny", "comedy", "humorous", "hilarious"}},
	{ID: "sad", Name: "Sad", Category: CategoryMood, Description: "Bring tissues",
		Synonyms: []string{"sad", "melancholy", "tragic", "emotional"}},
	{ID: "thrilling", Name: "Thrilling", Category: CategoryMood, Description: "Suspense that keeps you on edge",
		Synonyms: []string{"thrilling", "suspense", "tension", "edge of seat"}},
	{ID: "mysterious", Name: "Mysterious", Category: CategoryMood, Description: "Puzzles and secrets",
		Synonyms: []string{"mysterious", "mystery", "enigmatic", "puzzling"}},

	{ID: "action", Name: "Action", Category: CategoryGenre, Description: "Fights, chases and explosions",
		Synonyms: []string{"action", "fight", "battle", "explosion"}},
	{ID: "comedy", Name: "Comedy", Category: CategoryGenre, Description: "Comedies of every kind",
		Synonyms: []string{"comedy", "funny", "humor", "joke"}},
	{ID: "drama", Name: "Drama", Category: CategoryGenre, Description: "Serious, character-driven stories",
		Synonyms: []string{"drama", "dramatic", "serious", "intense"}},
	{ID: "horror", Name: "Horror", Category: CategoryGenre, Description: "Frights and terror",
		Synonyms: []string{"horror", "scary", "frightening", "terrifying"}},
	{ID: "sci-fi", Name: "Sci-Fi", Category: CategoryGenre, Description: "Science fiction and the future",
		Synonyms: []string{"sci-fi", "science fiction", "futuristic", "space"}},
	{ID: "romance", Name: "Romance", Category: CategoryGenre, Description: "Love stories",
		Synonyms: []string{"romance", "love story", "romantic", "relationship"}},
	{ID: "thriller", Name: "Thriller", Category: CategoryGenre, Description: "Suspense and danger",
		Synonyms: []string{"thriller", "suspense", "tension", "mystery"}},
	{ID: "documentary", Name: "Documentary", Category: CategoryGenre, Description: "Real stories, real people",
		Synonyms: []string{"documentary", "real", "factual", "educational"}},
	{ID: "animation", Name: "Animation", Category: CategoryGenre, Description: "Animated films for all ages",
		Synonyms: []string{"animation", "animated", "cartoon", "drawn"}},
	{ID: "family", Name: "Family", Category: CategoryGenre, Description: "Something the whole family can watch",
		Synonyms: []string{"family", "children", "kid friendly", "wholesome"}},
}

// tagIndex and phraseMatcher are derived from vocabulary once at init.
var (
	tagIndex      map[string]int
	phraseMatcher *PhraseMatcher
	tagPhrases    map[string][]int
)

func init() {
	tagIndex = make(map[string]int, len(vocabulary))
	var all []string
	for i, t := range vocabulary {
		tagIndex[t.ID] = i
		all = append(all, t.Synonyms...)
	}
	phraseMatcher = NewPhraseMatcher(all)

	tagPhrases = make(map[string][]int, len(vocabulary))
	for _, t := range vocabulary {
		idx := make([]int, 0, len(t.Synonyms))
		for _, s := range t.Synonyms {
			if i, ok := phraseMatcher.Index(s); ok {
				idx = append(idx, i)
			}
		}
		tagPhrases[t.ID] = idx
	}
}

// Vocabulary returns a copy of the tag table.
func Vocabulary() []Tag {
	out := make([]Tag, len(vocabulary))
	for i, t := range vocabulary {
		t.Synonyms = append([]string(nil), t.Synonyms...)
		out[i] = t
	}
	return out
}

// VocabularyByCategory groups the tag table by category.
func VocabularyByCategory() map[string][]Tag {
	out := make(map[string][]Tag)
	for _, t := range Vocabulary() {
		out[t.Category] = append(out[t.Category], t)
	}
	return out
}

// LookupTag finds a tag by id, case-insensitively.
func LookupTag(id string) (Tag, bool) {
	i, ok := tagIndex[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Tag{}, false
	}
	return vocabulary[i], true
}

// Synonyms returns the synonym phrases of a tag, or nil for unknown tags.
func Synonyms(tag string) []string {
	t, ok := LookupTag(tag)
	if !ok {
		return nil
	}
	return append([]string(nil), t.Synonyms...)
}
