// internal/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"cinechat/internal/common/httpclient"
	"cinechat/internal/common/logger"
	"cinechat/internal/common/metrics"
	"cinechat/internal/models"
)

// DefaultLocale is the catalog's default language locale.
const DefaultLocale = "en-US"

var (
	ErrCatalogTimeout       = errors.New("CATALOG_TIMEOUT")
	ErrCatalogRequestFailed = errors.New("CATALOG_REQUEST_FAILED")
)

// DiscoverQuery is a filtered, sorted listing request. Zero values mean
// "no filter" for the corresponding parameter.
type DiscoverQuery struct {
	SortBy         string
	WithGenres     int
	WithLanguage   string
	ReleaseDateGTE string
	ReleaseDateLTE string
	VoteAverageGTE float64
	VoteAverageLTE float64
}

// Client talks to the external movie catalog (search, discover, details,
// videos). All methods are context-bound and map transport failures to
// sentinel errors; callers treat every failure as "tier failed" or
// "not found" and never surface it to the user.
type Client struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: httpclient.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"component": "catalog",
		}),
	}
}

// Discover runs a filtered discovery query and returns the first page of
// results. Adult and video-only entries are always excluded.
func (c *Client) Discover(ctx context.Context, query DiscoverQuery) ([]models.Movie, error) {
	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	params.Set("sort_by", sortBy)
	params.Set("include_adult", "false")
	params.Set("include_video", "false")
	params.Set("page", "1")

	if query.WithGenres != 0 {
		params.Set("with_genres", strconv.Itoa(query.WithGenres))
	}
	if query.WithLanguage != "" {
		params.Set("with_original_language", query.WithLanguage)
	}
	if query.ReleaseDateGTE != "" {
		params.Set("primary_release_date.gte", query.ReleaseDateGTE)
	}
	if query.ReleaseDateLTE != "" {
		params.Set("primary_release_date.lte", query.ReleaseDateLTE)
	}
	if query.VoteAverageGTE != 0 {
		params.Set("vote_average.gte", formatScore(query.VoteAverageGTE))
	}
	if query.VoteAverageLTE != 0 {
		params.Set("vote_average.lte", formatScore(query.VoteAverageLTE))
	}

	var page models.MoviePage
	if err := c.get(ctx, "/discover/movie", params, "discover", &page); err != nil {
		return nil, err
	}

	return page.Results, nil
}

// SearchMovie searches the catalog by title in the given locale.
func (c *Client) SearchMovie(ctx context.Context, title, locale string) ([]models.Movie, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("query", title)
	params.Set("language", locale)
	params.Set("page", "1")
	params.Set("include_adult", "false")

	var page models.MoviePage
	if err := c.get(ctx, "/search/movie", params, "search", &page); err != nil {
		return nil, err
	}

	return page.Results, nil
}

// MovieDetails fetches the extended record for one movie, including the
// full genre list.
func (c *Client) MovieDetails(ctx context.Context, id int, locale string) (*models.Movie, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("language", locale)

	var movie models.Movie
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), params, "details", &movie); err != nil {
		return nil, err
	}

	return &movie, nil
}

// MovieVideos fetches the list of videos attached to a movie.
func (c *Client) MovieVideos(ctx context.Context, id int) ([]models.Video, error) {
	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("language", DefaultLocale)

	var page models.VideoPage
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", id), params, "videos", &page); err != nil {
		return nil, err
	}

	return page.Results, nil
}

// Popular fetches the first page of currently popular movies.
func (c *Client) Popular(ctx context.Context) ([]models.Movie, error) {
	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	params.Set("language", DefaultLocale)
	params.Set("page", "1")

	var page models.MoviePage
	if err := c.get(ctx, "/movie/popular", params, "popular", &page); err != nil {
		return nil, err
	}

	return page.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, endpoint string, out interface{}) error {
	reqURL := c.config.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogRequestFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		if ctx.Err() == context.DeadlineExceeded {
			return ErrCatalogTimeout
		}
		return fmt.Errorf("%w: %v", ErrCatalogRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		return fmt.Errorf("%w: status %d", ErrCatalogRequestFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "decode_error").Inc()
		return fmt.Errorf("%w: decode error: %v", ErrCatalogRequestFailed, err)
	}

	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}
