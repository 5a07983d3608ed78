// internal/models/movie.go
package models

// Genre is a catalog genre entry as returned by the details endpoint.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is a single movie record from the catalog.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
	Genres       []Genre `json:"genres,omitempty"`
}

// MoviePage is the envelope the catalog wraps list responses in.
type MoviePage struct {
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Video is one entry from the catalog's videos endpoint.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// VideoPage is the envelope of the videos endpoint.
type VideoPage struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}
