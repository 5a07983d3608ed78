// internal/catalog/config.go
package catalog

import "time"

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		BaseURL: "https://api.themoviedb.org/3",
		Timeout: 8 * time.Second,
	}
}
