// internal/conversation/steps.go
package conversation

// Preference field names, in catalog order.
const (
	FieldGenres      = "genres"
	FieldDecade      = "decade"
	FieldLanguage    = "language"
	FieldRating      = "rating"
	FieldPopularity  = "popularity"
	FieldShowTrailer = "showTrailer"
)

// Step is one question in the preference-collection sequence. Ordering of
// the catalog is the traversal order of the state machine. Exactly one step
// (genres) is multi-select; the trailer step bypasses confirmation and
// triggers resolution.
type Step struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Field    string   `json:"field"`
}

// Steps returns the canonical ordered step catalog. Every call returns a
// fresh equivalent slice so callers cannot mutate shared state.
func Steps() []Step {
	return []Step{
		{
			ID:       "genres",
			Question: "What genre are you in the mood for? (Choose one that best fits your current vibe)",
			Options: []string{
				"Action",
				"Animation",
				"Comedy",
				"Drama",
				"Horror",
				"Romance",
				"Science Fiction",
				"Thriller",
				"Fantasy",
			},
			Field: FieldGenres,
		},
		{
			ID:       "decade",
			Question: "When was your ideal movie made?",
			Options: []string{
				"2020s (2020-2025)",
				"2010s (2010-2019)",
				"2000s (2000-2009)",
				"1990s (1990-1999)",
				"Classic (Before 1970)",
				"Any Time Period",
			},
			Field: FieldDecade,
		},
		{
			ID:       "language",
			Question: "What language would you prefer?",
			Options: []string{
				"English",
				"Korean (한국어)",
				"Japanese (日本語)",
				"Spanish (Español)",
				"French (Français)",
				"Mandarin (中文)",
				"Hindi (हिन्दी)",
				"Any Language",
			},
			Field: FieldLanguage,
		},
		{
			ID:       "rating",
			Question: "What content rating fits your mood?",
			Options: []string{
				"G - General Audiences",
				"PG - Parental Guidance",
				"PG-13 - Parents Cautioned",
				"R - Restricted (17+)",
				"NC-17 - Adults Only",
				"Any Rating",
			},
			Field: FieldRating,
		},
		{
			ID:       "popularity",
			Question: "Do you want something popular or more of a hidden gem?",
			Options: []string{
				"Blockbuster hits (Very Popular)",
				"Well-known favorites (Popular)",
				"Moderately known (Some buzz)",
				"Hidden gems (Lesser known)",
				"Doesn't matter",
			},
			Field: FieldPopularity,
		},
		{
			ID:       "showTrailer",
			Question: "Would you like to see the trailer with your recommendation?",
			Options: []string{
				"Yes, show me the trailer!",
				"No, just the movie details",
			},
			Field: FieldShowTrailer,
		},
	}
}
