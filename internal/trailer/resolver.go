// internal/trailer/resolver.go
package trailer

import (
	"context"
	"fmt"

	"cinechat/internal/common/logger"
	"cinechat/internal/models"
)

// VideosClient is the slice of the catalog client trailer lookup needs.
type VideosClient interface {
	MovieVideos(ctx context.Context, id int) ([]models.Video, error)
}

// Resolver picks the best trailer for a movie. Preference order: official
// YouTube trailer, then any YouTube trailer, then any YouTube video. A
// lookup failure or an empty list yields the empty string, never an error.
type Resolver struct {
	catalog VideosClient
	logger  logger.Logger
}

func NewResolver(catalogClient VideosClient, log logger.Logger) *Resolver {
	return &Resolver{
		catalog: catalogClient,
		logger: log.With(map[string]interface{}{
			"component": "trailer",
		}),
	}
}

// EmbedURL returns a playable embed URL for the movie's best trailer.
func (r *Resolver) EmbedURL(ctx context.Context, movieID int) string {
	if r.catalog == nil {
		return ""
	}

	videos, err := r.catalog.MovieVideos(ctx, movieID)
	if err != nil {
		r.logger.Warn("video lookup failed", map[string]interface{}{
			"movieId": movieID,
			"error":   err.Error(),
		})
		return ""
	}

	video, ok := pickBest(videos)
	if !ok {
		return ""
	}

	return fmt.Sprintf("https://www.youtube.com/embed/%s?rel=0&modestbranding=1&controls=1", video.Key)
}

func pickBest(videos []models.Video) (models.Video, bool) {
	for _, v := range videos {
		if v.Site == "YouTube" && v.Type == "Trailer" && v.Official {
			return v, true
		}
	}
	for _, v := range videos {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return v, true
		}
	}
	for _, v := range videos {
		if v.Site == "YouTube" {
			return v, true
		}
	}
	return models.Video{}, false
}
