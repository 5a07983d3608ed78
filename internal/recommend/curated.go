// internal/recommend/curated.go
package recommend

import (
	"fmt"
	"strings"

	"cinechat/internal/models"
)

// Hand-picked titles keyed by genre then by language option. The curated
// tier is the last resort before the hardcoded default and must cover any
// input: unknown genres fall back to Drama, unknown languages to
// "Any Language".
var curatedMovies = map[string]map[string]string{
	"Action": {
		"English":           "John Wick",
		"Korean (한국어)":      "Oldboy",
		"Japanese (日本語)":    "Akira",
		"Spanish (Español)": "El Mariachi",
		"French (Français)": "Léon: The Professional",
		"Any Language":      "Mad Max: Fury Road",
	},
	"Comedy": {
		"English":           "The Grand Budapest Hotel",
		"Korean (한국어)":      "My Sassy Girl",
		"Japanese (日本語)":    "Tampopo",
		"Spanish (Español)": "Instructions Not Included",
		"French (Français)": "Amélie",
		"Any Language":      "The Grand Budapest Hotel",
	},
	"Drama": {
		"English":           "The Shawshank Redemption",
		"Korean (한국어)":      "Parasite",
		"Japanese (日本語)":    "Tokyo Story",
		"Spanish (Español)": "The Sea Inside",
		"French (Français)": "Amour",
		"Any Language":      "The Shawshank Redemption",
	},
	"Horror": {
		"English":           "Hereditary",
		"Korean (한국어)":      "The Wailing",
		"Japanese (日本語)":    "Ringu",
		"Spanish (Español)": "The Orphanage",
		"French (Français)": "Martyrs",
		"Any Language":      "Hereditary",
	},
	"Romance": {
		"English":           "When Harry Met Sally",
		"Korean (한국어)":      "My Sassy Girl",
		"Japanese (日本語)":    "Your Name",
		"Spanish (Español)": "Like Water for Chocolate",
		"French (Français)": "Amélie",
		"Any Language":      "When Harry Met Sally",
	},
	"Science Fiction": {
		"English":           "Blade Runner 2049",
		"Korean (한국어)":      "Snowpiercer",
		"Japanese (日本語)":    "Ghost in the Shell",
		"Spanish (Español)": "Timecrimes",
		"French (Français)": "Alphaville",
		"Any Language":      "Blade Runner 2049",
	},
}

// curatedRecommendation looks up the curated table. Total: every input
// yields a title.
func curatedRecommendation(prefs models.UserPreferences) *models.RecommendationResult {
	primaryGenre := "Drama"
	if len(prefs.Genres) > 0 && prefs.Genres[0] != "" {
		primaryGenre = prefs.Genres[0]
	}
	language := prefs.Language
	if language == "" {
		language = "Any Language"
	}

	genreMovies, ok := curatedMovies[primaryGenre]
	if !ok {
		genreMovies = curatedMovies["Drama"]
	}
	title, ok := genreMovies[language]
	if !ok {
		title = genreMovies["Any Language"]
	}

	languagePart := ""
	if language != "Any Language" {
		languagePart = " in " + strings.Split(language, " ")[0]
	}
	decadePart := ""
	if prefs.Decade != "" && prefs.Decade != "Any Time Period" {
		decadePart = "from the " + prefs.Decade
	}

	return &models.RecommendationResult{
		Title: title,
		Reason: fmt.Sprintf("A fantastic %s movie%s %s that matches your preferences perfectly!",
			strings.ToLower(primaryGenre), languagePart, decadePart),
		SearchQuery: title,
	}
}

// safeDefault is the hardcoded recommendation returned when resolution
// itself fails. It must never depend on the input.
func safeDefault() *models.RecommendationResult {
	return &models.RecommendationResult{
		Title:       "The Shawshank Redemption",
		Reason:      "A timeless masterpiece that's perfect for any mood. This film will leave you feeling inspired and emotionally fulfilled.",
		SearchQuery: "The Shawshank Redemption",
	}
}
