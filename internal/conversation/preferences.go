// internal/conversation/preferences.go
package conversation

import "cinechat/internal/models"

// PreferenceStore accumulates one session's answers. Genres preserve
// selection order and stay duplicate-free; single-value fields hold the
// committed option text or the empty string.
type PreferenceStore struct {
	prefs models.UserPreferences
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		prefs: models.UserPreferences{Genres: []string{}},
	}
}

// AddGenre appends a genre unless it is already selected. Returns false on
// a duplicate, which callers treat as a no-op rather than an error.
func (p *PreferenceStore) AddGenre(genre string) bool {
	for _, g := range p.prefs.Genres {
		if g == genre {
			return false
		}
	}
	p.prefs.Genres = append(p.prefs.Genres, genre)
	return true
}

// Set commits a single-value answer into the named field.
func (p *PreferenceStore) Set(field, value string) {
	switch field {
	case FieldDecade:
		p.prefs.Decade = value
	case FieldLanguage:
		p.prefs.Language = value
	case FieldRating:
		p.prefs.Rating = value
	case FieldPopularity:
		p.prefs.Popularity = value
	case FieldShowTrailer:
		p.prefs.ShowTrailer = value
	}
}

// Genres returns the current genre selection.
func (p *PreferenceStore) Genres() []string {
	return p.prefs.Genres
}

// FirstEmptyIndex returns the catalog index of the first field that is
// still unanswered, considering only the editable fields (genres through
// popularity). The second return is false when all of them are set.
func (p *PreferenceStore) FirstEmptyIndex() (int, bool) {
	switch {
	case len(p.prefs.Genres) == 0:
		return 0, true
	case p.prefs.Decade == "":
		return 1, true
	case p.prefs.Language == "":
		return 2, true
	case p.prefs.Rating == "":
		return 3, true
	case p.prefs.Popularity == "":
		return 4, true
	}
	return 0, false
}

// Reset clears every field back to its initial state.
func (p *PreferenceStore) Reset() {
	p.prefs = models.UserPreferences{Genres: []string{}}
}

// Snapshot returns a defensive copy of the accumulated preferences.
func (p *PreferenceStore) Snapshot() models.UserPreferences {
	out := p.prefs
	out.Genres = append([]string{}, p.prefs.Genres...)
	return out
}
