// internal/recommend/resolver.go
package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"cinechat/internal/catalog"
	"cinechat/internal/common/logger"
	"cinechat/internal/common/metrics"
	"cinechat/internal/common/observability"
	"cinechat/internal/models"
)

// Tier labels, in attempt order.
const (
	TierDiscovery  = "discovery"
	TierGenerative = "generative"
	TierCurated    = "curated"
	TierDefault    = "default"
)

// DiscoveryClient is the slice of the catalog client tier 1 needs.
type DiscoveryClient interface {
	Discover(ctx context.Context, query catalog.DiscoverQuery) ([]models.Movie, error)
}

// Generator is the slice of the generative client tier 2 needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var generatedLeadIn = regexp.MustCompile(`(?i)^(I recommend|Try|Watch|Consider)`)

// Resolver turns accumulated preferences into exactly one recommendation.
// Tiers are attempted in strict order with no intra-tier retry: catalog
// discovery, generative continuation, curated table. Resolve is total —
// it never returns an error and never lets a panic escape.
type Resolver struct {
	config  *Config
	catalog DiscoveryClient
	gen     Generator
	obs     *observability.Observability
	pick    func(n int) int
	logger  logger.Logger
}

func NewResolver(config *Config, discovery DiscoveryClient, generator Generator, obs *observability.Observability, log logger.Logger) *Resolver {
	return &Resolver{
		config:  config,
		catalog: discovery,
		gen:     generator,
		obs:     obs,
		pick:    rand.Intn,
		logger: log.With(map[string]interface{}{
			"component": "resolver",
		}),
	}
}

// Resolve produces a recommendation for the given preferences.
func (r *Resolver) Resolve(ctx context.Context, prefs models.UserPreferences) (result *models.RecommendationResult) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("resolution panicked, using safe default", map[string]interface{}{
				"panic": fmt.Sprintf("%v", rec),
			})
			result = safeDefault()
			result.Tier = TierDefault
		}
		metrics.ResolutionsTotal.WithLabelValues(result.Tier).Inc()
		metrics.ResolutionDuration.WithLabelValues(result.Tier).Observe(time.Since(start).Seconds())
		if r.obs != nil {
			r.obs.RecordResolution(ctx, result.Tier)
			r.obs.RecordResolutionDuration(ctx, time.Since(start), result.Tier)
		}
	}()

	if r.config.DiscoveryEnabled && r.catalog != nil {
		if res := r.resolveDiscovery(ctx, prefs); res != nil {
			res.Tier = TierDiscovery
			return res
		}
	}

	if r.config.GenerativeEnabled && r.gen != nil {
		if res := r.resolveGenerative(ctx, prefs); res != nil {
			res.Tier = TierGenerative
			return res
		}
	}

	res := curatedRecommendation(prefs)
	res.Tier = TierCurated
	return res
}

// resolveDiscovery maps preferences onto a discovery filter and picks a
// random movie from the top ten results. Any failure or an empty result
// set yields nil and the next tier runs.
func (r *Resolver) resolveDiscovery(ctx context.Context, prefs models.UserPreferences) *models.RecommendationResult {
	query := catalog.DiscoverQuery{
		SortBy: "popularity.desc",
	}
	if sort, ok := popularityMapping[prefs.Popularity]; ok {
		query.SortBy = sort
	}

	if len(prefs.Genres) > 0 {
		if genreID, ok := genreMapping[prefs.Genres[0]]; ok {
			query.WithGenres = genreID
		}
	}

	// English is the catalog default, so it is never sent as a filter.
	if code, ok := languageMapping[prefs.Language]; ok && code != "en" {
		query.WithLanguage = code
	}

	if window, ok := decadeMapping[prefs.Decade]; ok {
		query.ReleaseDateGTE = window.GTE
		query.ReleaseDateLTE = window.LTE
	}

	// MPAA certification is not reliably filterable, so rating narrows the
	// vote-average band instead.
	if prefs.Rating != "" && prefs.Rating != "Any Rating" {
		switch {
		case strings.Contains(prefs.Rating, "G -"):
			query.VoteAverageGTE = 6.0
			query.VoteAverageLTE = 10.0
		case strings.Contains(prefs.Rating, "PG -"), strings.Contains(prefs.Rating, "PG-13"):
			query.VoteAverageGTE = 5.0
		}
	}

	discoverCtx, cancel := context.WithTimeout(ctx, r.config.DiscoveryTimeout)
	defer cancel()

	movies, err := r.catalog.Discover(discoverCtx, query)
	if err != nil {
		r.logger.Warn("discovery tier failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if len(movies) == 0 {
		r.logger.Debug("discovery tier returned no results", nil)
		return nil
	}

	limit := len(movies)
	if limit > 10 {
		limit = 10
	}
	movie := movies[r.pick(limit)]

	return &models.RecommendationResult{
		Title:       movie.Title,
		Reason:      discoveryReason(prefs, movie),
		SearchQuery: movie.Title,
	}
}

// resolveGenerative asks the text model for a title and post-processes the
// continuation. Output that does not look like a title yields nil.
func (r *Resolver) resolveGenerative(ctx context.Context, prefs models.UserPreferences) *models.RecommendationResult {
	languageContext := " from any country/language"
	if prefs.Language != "" && prefs.Language != "Any Language" {
		languageContext = " in " + prefs.Language
	}
	decadePart := ""
	if prefs.Decade != "" && prefs.Decade != "Any Time Period" {
		decadePart = " from the " + prefs.Decade
	}

	prompt := fmt.Sprintf(
		"Recommend one specific movie title for someone who likes %s movies and wants a movie%s%s. Respond with only the movie title.",
		strings.Join(prefs.Genres, " and "), languageContext, decadePart)

	genCtx, cancel := context.WithTimeout(ctx, r.config.GenerativeTimeout)
	defer cancel()

	raw, err := r.gen.Generate(genCtx, prompt)
	if err != nil {
		r.logger.Warn("generative tier failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	title := extractTitle(raw)
	if len(title) <= 5 || len(title) >= 50 {
		r.logger.Debug("generated text not usable as a title", map[string]interface{}{
			"candidate": title,
		})
		return nil
	}

	return &models.RecommendationResult{
		Title: title,
		Reason: fmt.Sprintf("AI-recommended %s movie that perfectly matches your preferences!",
			strings.Join(prefs.Genres, " and ")),
		SearchQuery: title,
	}
}

// extractTitle reduces a raw continuation to a plausible title: first
// line, first sentence, common lead-ins stripped.
func extractTitle(raw string) string {
	title := raw
	if idx := strings.Index(title, "\n"); idx >= 0 {
		title = title[:idx]
	}
	if idx := strings.Index(title, "."); idx >= 0 {
		title = title[:idx]
	}
	title = strings.TrimSpace(title)
	title = strings.TrimSpace(generatedLeadIn.ReplaceAllString(title, ""))
	return title
}

func discoveryReason(prefs models.UserPreferences, movie models.Movie) string {
	genre := "great"
	if len(prefs.Genres) > 0 && prefs.Genres[0] != "" {
		genre = strings.ToLower(prefs.Genres[0])
	}
	language := ""
	if prefs.Language != "" && prefs.Language != "Any Language" {
		language = strings.Split(prefs.Language, " ")[0]
	}
	era := ""
	if prefs.Decade != "" && prefs.Decade != "Any Time Period" {
		era = "from the " + prefs.Decade
	}
	overview := ""
	if movie.Overview != "" {
		overview = truncateRunes(movie.Overview, 150) + "..."
	}
	return fmt.Sprintf("A %s %s movie %s that perfectly matches your preferences! %s",
		genre, language, era, overview)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
