// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package profile

// Preferences is the persisted preference document. Saving one lets later
// requests seed the profile without re-enriching the history.
type Preferences struct {
	Actors    []string `json:"actors" validate:"max=500,dive,min=1,max=256"`
	Directors []string `json:"directors" validate:"max=500,dive,min=1,max=256"`
	Writers   []string `json:"writers" validate:"max=500,dive,min=1,max=256"`
	Keywords  []string `json:"keywords" validate:"max=500,dive,min=1,max=256"`
	Genres    []string `json:"genres" validate:"max=100,dive,min=1,max=64"`
}

// IsEmpty reports whether every list is empty.
func (p *Preferences) IsEmpty() bool {
	return len(p.Actors)+len(p.Directors)+len(p.Writers)+len(p.Keywords)+len(p.Genres) == 0
}

// FromPreferences builds a profile from a stored document. Names are
// lower-cased and deduplicated; order is kept.
func FromPreferences(prefs Preferences) *Profile {
	p := &Profile{
		Actors:    prefEntries(prefs.Actors),
		Directors: prefEntries(prefs.Directors),
		Writers:   prefEntries(prefs.Writers),
		Keywords:  prefEntries(prefs.Keywords),
		Genres:    prefEntries(prefs.Genres),
	}
	p.index()
	return p
}

func prefEntries(names []string) []Entry {
	c := newCounter[string]()
	addNames(c, names)
	return entries(c, -1)
}

// Preferences extracts the name lists of the profile.
func (p *Profile) Preferences() Preferences {
	return Preferences{
		Actors:    names(p.Actors),
		Directors: names(p.Directors),
		Writers:   names(p.Writers),
		Keywords:  names(p.Keywords),
		Genres:    names(p.Genres),
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
