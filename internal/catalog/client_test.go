// internal/catalog/client_test.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cinechat/internal/common/logger"
	"cinechat/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig(baseURL string) *Config {
	return &Config{
		BaseURL: baseURL,
		APIKey:  "test-api-key",
		Timeout: 3 * time.Second,
	}
}

func moviePageJSON(movies []models.Movie) string {
	data, _ := json.Marshal(models.MoviePage{Results: movies})
	return string(data)
}

// ==========================
// Discover
// ==========================

func TestClient_Discover_BuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "test-api-key", q.Get("api_key"))
		assert.Equal(t, "vote_average.desc", q.Get("sort_by"))
		assert.Equal(t, "false", q.Get("include_adult"))
		assert.Equal(t, "false", q.Get("include_video"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "27", q.Get("with_genres"))
		assert.Equal(t, "ko", q.Get("with_original_language"))
		assert.Equal(t, "1990-01-01", q.Get("primary_release_date.gte"))
		assert.Equal(t, "1999-12-31", q.Get("primary_release_date.lte"))
		assert.Equal(t, "6.0", q.Get("vote_average.gte"))
		assert.Equal(t, "10.0", q.Get("vote_average.lte"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(moviePageJSON([]models.Movie{{ID: 1, Title: "The Wailing"}})))
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), logger.NewTestLogger(t))

	movies, err := client.Discover(context.Background(), DiscoverQuery{
		SortBy:         "vote_average.desc",
		WithGenres:     27,
		WithLanguage:   "ko",
		ReleaseDateGTE: "1990-01-01",
		ReleaseDateLTE: "1999-12-31",
		VoteAverageGTE: 6.0,
		VoteAverageLTE: 10.0,
	})

	assert.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Equal(t, "The Wailing", movies[0].Title)
}

func TestClient_Discover_DefaultSort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
		assert.Empty(t, r.URL.Query().Get("with_genres"))
		w.Write([]byte(moviePageJSON(nil)))
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), logger.NewTestLogger(t))

	movies, err := client.Discover(context.Background(), DiscoverQuery{})
	assert.NoError(t, err)
	assert.Empty(t, movies)
}

func TestClient_Discover_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), logger.NewTestLogger(t))

	movies, err := client.Discover(context.Background(), DiscoverQuery{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrCatalogRequestFailed))
	assert.Nil(t, movies)
}

func TestClient_Discover_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	client := NewClient(config, logger.NewTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Discover(ctx, DiscoverQuery{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrCatalogTimeout), "expected CATALOG_TIMEOUT, got: %v", err)
}

// ==========================
// Search / Details / Videos
// ==========================

func TestClient_SearchMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "Oldboy", q.Get("query"))
		assert.Equal(t, "ko-KR", q.Get("language"))
		assert.Equal(t, "false", q.Get("include_adult"))
		w.Write([]byte(moviePageJSON([]models.Movie{{ID: 670, Title: "Oldboy"}})))
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), logger.NewTestLogger(t))

	movies, err := client.SearchMovie(context.Background(), "Oldboy", "ko-KR")
	assert.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Equal(t, 670, movies[0].ID)
}

func TestClient_SearchMovie_DefaultLocale(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		w.Write([]byte(moviePageJSON(nil)))
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), logger.NewTestLogger(t))

	_, err := client.SearchMovie(context.Background(), "anything", "")
	assert.NoError(t, err)
}

func TestClient_MovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/670", r.URL.Path)
		movie := models.Movie{
			ID:    670,
			Title: "Oldboy",
			Genres: []models.Genre{
				{ID: 18, Name: "Drama"},
				{ID: 53, Name: "Thriller"},
			},
		}
		data, _ := json.Marshal(movie)
		w.Write(data)
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), logger.NewTestLogger(t))

	movie, err := client.MovieDetails(context.Background(), 670, "ko-KR")
	assert.NoError(t, err)
	assert.NotNil(t, movie)
	assert.Len(t, movie.Genres, 2)
	assert.Equal(t, "Thriller", movie.Genres[1].Name)
}

func TestClient_MovieVideos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603/videos", r.URL.Path)
		page := models.VideoPage{
			ID: 603,
			Results: []models.Video{
				{ID: "a", Key: "m8e-FF8MsqU", Site: "YouTube", Type: "Trailer", Official: true},
			},
		}
		data, _ := json.Marshal(page)
		w.Write(data)
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), logger.NewTestLogger(t))

	videos, err := client.MovieVideos(context.Background(), 603)
	assert.NoError(t, err)
	assert.Len(t, videos, 1)
	assert.Equal(t, "m8e-FF8MsqU", videos[0].Key)
}

func TestClient_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), logger.NewTestLogger(t))

	_, err := client.SearchMovie(context.Background(), "anything", "en-US")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrCatalogRequestFailed))
}
