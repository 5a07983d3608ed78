// internal/models/conversation.go
package models

import "time"

// UserPreferences accumulates the user's answers over one session.
// All single-value fields hold exactly one of their step's declared
// options, or the empty string before being set. Genres preserves
// selection order and never contains duplicates.
type UserPreferences struct {
	Genres      []string `json:"genres"`
	Decade      string   `json:"decade"`
	Language    string   `json:"language"`
	Rating      string   `json:"rating"`
	Popularity  string   `json:"popularity"`
	ShowTrailer string   `json:"showTrailer"`
}

// RecommendationResult is the output of one resolution attempt.
type RecommendationResult struct {
	Title       string `json:"title"`
	Reason      string `json:"reason"`
	SearchQuery string `json:"searchQuery"`
	Tier        string `json:"tier,omitempty"`
}

// ChatMessage is one transcript entry.
type ChatMessage struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"` // "user" or "bot"
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Movie      *Movie    `json:"movie,omitempty"`
	TrailerURL string    `json:"trailerUrl,omitempty"`
}
