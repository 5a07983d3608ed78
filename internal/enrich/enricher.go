// internal/enrich/enricher.go
package enrich

import (
	"context"
	"strings"

	"cinechat/internal/common/logger"
	"cinechat/internal/models"
)

// SearchClient is the slice of the catalog client enrichment needs.
type SearchClient interface {
	SearchMovie(ctx context.Context, title, locale string) ([]models.Movie, error)
	MovieDetails(ctx context.Context, id int, locale string) (*models.Movie, error)
}

// Enricher turns a resolved title into a full catalog record. Lookups run
// in the locale matching the user's language preference, retry once in
// English when the localized search comes back empty, and merge the full
// genre list from the details endpoint. A miss or any failure yields nil,
// never an error: the caller shows the recommendation without enrichment.
type Enricher struct {
	catalog SearchClient
	logger  logger.Logger
}

func NewEnricher(catalogClient SearchClient, log logger.Logger) *Enricher {
	return &Enricher{
		catalog: catalogClient,
		logger: log.With(map[string]interface{}{
			"component": "enrich",
		}),
	}
}

// Lookup searches the catalog for the title and returns the best match.
func (e *Enricher) Lookup(ctx context.Context, title, language string) *models.Movie {
	if e.catalog == nil {
		return nil
	}

	locale := searchLocale(language)

	movies, err := e.catalog.SearchMovie(ctx, title, locale)
	if err != nil {
		e.logger.Warn("title search failed", map[string]interface{}{
			"title": title,
			"error": err.Error(),
		})
		return nil
	}

	// Localized search came back empty: retry once in English.
	if len(movies) == 0 && locale != "en-US" {
		movies, err = e.catalog.SearchMovie(ctx, title, "en-US")
		if err != nil || len(movies) == 0 {
			return nil
		}
	}
	if len(movies) == 0 {
		return nil
	}

	movie := movies[0]

	// The list endpoint only carries genre ids; the details endpoint has
	// the named genre list. A details failure is not fatal.
	details, err := e.catalog.MovieDetails(ctx, movie.ID, locale)
	if err == nil && details != nil {
		movie.Genres = details.Genres
	}

	return &movie
}

// searchLocale maps the user-facing language option to a catalog locale.
// Languages without a localized catalog presence search in English.
func searchLocale(language string) string {
	lower := strings.ToLower(language)
	switch {
	case strings.Contains(lower, "korean"):
		return "ko-KR"
	case strings.Contains(lower, "japanese"):
		return "ja-JP"
	case strings.Contains(lower, "spanish"):
		return "es-ES"
	case strings.Contains(lower, "french"):
		return "fr-FR"
	default:
		return "en-US"
	}
}
