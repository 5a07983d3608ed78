// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cinechat/internal/catalog"
	apperrors "cinechat/internal/common/errors"
	"cinechat/internal/common/logger"
	"cinechat/internal/conversation"
	"cinechat/internal/models"
)

// RecommendationResolver resolves preferences into one recommendation.
type RecommendationResolver interface {
	Resolve(ctx context.Context, prefs models.UserPreferences) *models.RecommendationResult
}

// MovieEnricher looks up the full catalog record for a resolved title.
type MovieEnricher interface {
	Lookup(ctx context.Context, title, language string) *models.Movie
}

// TrailerResolver picks the best trailer embed URL for a movie.
type TrailerResolver interface {
	EmbedURL(ctx context.Context, movieID int) string
}

// MovieLister serves the passthrough listing endpoints.
type MovieLister interface {
	Popular(ctx context.Context) ([]models.Movie, error)
	Discover(ctx context.Context, query catalog.DiscoverQuery) ([]models.Movie, error)
}

// Handler wires the conversation engine and the resolution pipeline onto
// the HTTP surface.
type Handler struct {
	sessions *conversation.Manager
	resolver RecommendationResolver
	enricher MovieEnricher
	trailers TrailerResolver
	lister   MovieLister
	logger   logger.Logger
}

func NewHandler(sessions *conversation.Manager, resolver RecommendationResolver, enricher MovieEnricher, trailers TrailerResolver, lister MovieLister, log logger.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		resolver: resolver,
		enricher: enricher,
		trailers: trailers,
		lister:   lister,
		logger: log.With(map[string]interface{}{
			"component": "api",
		}),
	}
}

// RegisterRoutes mounts all API routes on the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.health)

		v1.POST("/sessions", h.createSession)
		v1.GET("/sessions/:id", h.getSession)
		v1.POST("/sessions/:id/answer", h.answer)
		v1.POST("/sessions/:id/confirm", h.confirm)
		v1.POST("/sessions/:id/back", h.back)
		v1.POST("/sessions/:id/reset", h.reset)

		v1.POST("/recommend", h.recommend)

		v1.GET("/movies/popular", h.popularMovies)
		v1.GET("/movies/genre/:id", h.moviesByGenre)
	}
}

// ==========================
// Session Endpoints
// ==========================

type sessionResponse struct {
	ID            string                        `json:"id"`
	State         conversation.State            `json:"state"`
	StepIndex     int                           `json:"stepIndex"`
	Step          *conversation.Step            `json:"step,omitempty"`
	PendingAnswer string                        `json:"pendingAnswer,omitempty"`
	Preferences   models.UserPreferences        `json:"preferences"`
	Messages      []models.ChatMessage          `json:"messages"`
	Result        *models.RecommendationResult  `json:"result,omitempty"`
	Movie         *models.Movie                 `json:"movie,omitempty"`
	TrailerURL    string                        `json:"trailerUrl,omitempty"`
}

func sessionView(e *conversation.Engine, s *conversation.Session) sessionResponse {
	resp := sessionResponse{
		ID:            s.ID,
		State:         s.State,
		StepIndex:     s.StepIndex,
		PendingAnswer: s.PendingAnswer,
		Preferences:   s.Prefs.Snapshot(),
		Messages:      append([]models.ChatMessage{}, s.Messages...),
		Result:        s.Result,
		Movie:         s.Movie,
		TrailerURL:    s.TrailerURL,
	}
	if step, ok := e.CurrentStep(s); ok {
		resp.Step = &step
	}
	return resp
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) createSession(c *gin.Context) {
	s := h.sessions.Create()

	var resp sessionResponse
	_ = h.sessions.Do(s.ID, func(e *conversation.Engine, session *conversation.Session) error {
		resp = sessionView(e, session)
		return nil
	})
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) getSession(c *gin.Context) {
	var resp sessionResponse
	err := h.sessions.Do(c.Param("id"), func(e *conversation.Engine, s *conversation.Session) error {
		resp = sessionView(e, s)
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type answerRequest struct {
	Option string `json:"option" binding:"required"`
}

func (h *Handler) answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "BAD_REQUEST",
			"message": "body must carry a non-empty option",
		}})
		return
	}

	id := c.Param("id")
	err := h.sessions.Do(id, func(e *conversation.Engine, s *conversation.Session) error {
		return e.Answer(s, req.Option)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.finishOrRespond(c, id)
}

func (h *Handler) confirm(c *gin.Context) {
	id := c.Param("id")
	err := h.sessions.Do(id, func(e *conversation.Engine, s *conversation.Session) error {
		return e.Confirm(s)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.finishOrRespond(c, id)
}

func (h *Handler) back(c *gin.Context) {
	id := c.Param("id")
	err := h.sessions.Do(id, func(e *conversation.Engine, s *conversation.Session) error {
		return e.Back(s)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithSession(c, id, http.StatusOK)
}

func (h *Handler) reset(c *gin.Context) {
	id := c.Param("id")
	err := h.sessions.Do(id, func(e *conversation.Engine, s *conversation.Session) error {
		e.Reset(s)
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithSession(c, id, http.StatusOK)
}

// finishOrRespond runs the resolution pipeline when the last transition
// moved the session into resolving, then responds with the session view.
// External calls happen outside the session lock; the generation tag
// captured beforehand guards against a reset racing the resolution.
func (h *Handler) finishOrRespond(c *gin.Context, id string) {
	var (
		needsResolution bool
		generation      string
		prefs           models.UserPreferences
	)
	err := h.sessions.Do(id, func(e *conversation.Engine, s *conversation.Session) error {
		if s.State == conversation.StateResolving {
			needsResolution = true
			generation = s.Generation
			prefs = s.Prefs.Snapshot()
		}
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	if needsResolution {
		ctx := c.Request.Context()
		result := h.resolver.Resolve(ctx, prefs)

		var movie *models.Movie
		var trailerURL string
		if h.enricher != nil {
			movie = h.enricher.Lookup(ctx, result.SearchQuery, prefs.Language)
		}
		if prefs.ShowTrailer == "yes" && movie != nil && h.trailers != nil {
			trailerURL = h.trailers.EmbedURL(ctx, movie.ID)
		}

		err = h.sessions.Do(id, func(e *conversation.Engine, s *conversation.Session) error {
			e.ApplyResolution(s, generation, result, movie, trailerURL)
			return nil
		})
		if err != nil {
			h.writeError(c, err)
			return
		}
	}

	h.respondWithSession(c, id, http.StatusOK)
}

func (h *Handler) respondWithSession(c *gin.Context, id string, status int) {
	var resp sessionResponse
	err := h.sessions.Do(id, func(e *conversation.Engine, s *conversation.Session) error {
		resp = sessionView(e, s)
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(status, resp)
}

// ==========================
// Stateless Recommendation
// ==========================

// recommend is the stateless resolver boundary. It always answers 200
// with a recommendation: a malformed or schema-invalid body degrades to
// the hardcoded safe default rather than an error.
func (h *Handler) recommend(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err == nil {
		err = validatePreferences(body)
	}

	var prefs models.UserPreferences
	if err == nil {
		err = json.Unmarshal(body, &prefs)
	}
	if err != nil {
		h.logger.Warn("invalid recommend request, using safe default", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusOK, models.RecommendationResult{
			Title:       "The Shawshank Redemption",
			Reason:      "A timeless masterpiece that's perfect for any mood. This film will leave you feeling inspired and emotionally fulfilled.",
			SearchQuery: "The Shawshank Redemption",
			Tier:        "default",
		})
		return
	}

	result := h.resolver.Resolve(c.Request.Context(), prefs)
	c.JSON(http.StatusOK, result)
}

// ==========================
// Movie Listings
// ==========================

func (h *Handler) popularMovies(c *gin.Context) {
	movies := h.listMovies(c.Request.Context(), func(ctx context.Context) ([]models.Movie, error) {
		return h.lister.Popular(ctx)
	})
	c.JSON(http.StatusOK, gin.H{"results": movies})
}

func (h *Handler) moviesByGenre(c *gin.Context) {
	genreID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "BAD_REQUEST",
			"message": "genre id must be an integer",
		}})
		return
	}

	movies := h.listMovies(c.Request.Context(), func(ctx context.Context) ([]models.Movie, error) {
		return h.lister.Discover(ctx, catalog.DiscoverQuery{
			SortBy:     "popularity.desc",
			WithGenres: genreID,
		})
	})
	c.JSON(http.StatusOK, gin.H{"results": movies})
}

// listMovies degrades to an empty list when the catalog is unavailable.
func (h *Handler) listMovies(ctx context.Context, fetch func(context.Context) ([]models.Movie, error)) []models.Movie {
	if h.lister == nil {
		return []models.Movie{}
	}
	movies, err := fetch(ctx)
	if err != nil {
		h.logger.Warn("movie listing failed", map[string]interface{}{
			"error": err.Error(),
		})
		return []models.Movie{}
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies
}

// ==========================
// Error Mapping
// ==========================

func (h *Handler) writeError(c *gin.Context, err error) {
	var stdErr *apperrors.StandardError
	if !errors.As(err, &stdErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "INTERNAL",
			"message": "internal error",
		}})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case stdErr.Code == apperrors.ErrCodeSessionUnknown:
		status = http.StatusNotFound
	case apperrors.IsUserError(stdErr.Code):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": gin.H{
		"code":    stdErr.Code,
		"message": stdErr.Message,
	}})
}
