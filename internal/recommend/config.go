// internal/recommend/config.go
package recommend

import "time"

// Config controls which tiers are attempted and their per-call deadlines.
// A tier with missing credentials is disabled at startup; the resolver
// then falls straight through to the next one.
type Config struct {
	DiscoveryEnabled  bool
	GenerativeEnabled bool
	DiscoveryTimeout  time.Duration
	GenerativeTimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DiscoveryTimeout:  8 * time.Second,
		GenerativeTimeout: 10 * time.Second,
	}
}
