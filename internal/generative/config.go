// internal/generative/config.go
package generative

import "time"

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:     "https://api-inference.huggingface.co",
		Model:       "gpt2",
		MaxTokens:   20,
		Temperature: 0.8,
		Timeout:     10 * time.Second,
	}
}
