// internal/recommend/mappings.go
package recommend

// Catalog genre ids keyed by the user-facing genre name.
var genreMapping = map[string]int{
	"Action":          28,
	"Adventure":       12,
	"Animation":       16,
	"Comedy":          35,
	"Crime":           80,
	"Documentary":     99,
	"Drama":           18,
	"Family":          10751,
	"Fantasy":         14,
	"History":         36,
	"Horror":          27,
	"Music":           10402,
	"Mystery":         9648,
	"Romance":         10749,
	"Science Fiction": 878,
	"Thriller":        53,
	"War":             10752,
	"Western":         37,
}

// ISO language codes keyed by the user-facing option text. "Any Language"
// maps to en, and en itself is never sent as a discovery filter.
var languageMapping = map[string]string{
	"English":            "en",
	"Korean (한국어)":       "ko",
	"Japanese (日本語)":     "ja",
	"Spanish (Español)":  "es",
	"French (Français)":  "fr",
	"Mandarin (中文)":      "zh",
	"Hindi (हिन्दी)":     "hi",
	"Any Language":       "en",
}

type dateRange struct {
	GTE string
	LTE string
}

// Release-date windows keyed by the decade option text.
var decadeMapping = map[string]dateRange{
	"2020s (2020-2025)":     {GTE: "2020-01-01", LTE: "2025-12-31"},
	"2010s (2010-2019)":     {GTE: "2010-01-01", LTE: "2019-12-31"},
	"2000s (2000-2009)":     {GTE: "2000-01-01", LTE: "2009-12-31"},
	"1990s (1990-1999)":     {GTE: "1990-01-01", LTE: "1999-12-31"},
	"1980s (1980-1989)":     {GTE: "1980-01-01", LTE: "1989-12-31"},
	"1970s (1970-1979)":     {GTE: "1970-01-01", LTE: "1979-12-31"},
	"Classic (Before 1970)": {LTE: "1969-12-31"},
	"Any Time Period":       {},
}

// Discovery sort order keyed by the popularity option text.
var popularityMapping = map[string]string{
	"Blockbuster hits (Very Popular)": "popularity.desc",
	"Well-known favorites (Popular)":  "popularity.desc",
	"Moderately known (Some buzz)":    "vote_average.desc",
	"Hidden gems (Lesser known)":      "vote_count.asc",
	"Doesn't matter":                  "popularity.desc",
}
