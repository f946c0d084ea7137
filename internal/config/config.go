// Package config loads service configuration from the environment, with a
// .env file as an optional convenience.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything cmd/server needs to wire the service.
type Config struct {
	Port           string
	ProxyURL       string // forward proxy for redirect probes: scheme://[user:pass@]host:port
	DefaultCountry string
	MaxConcurrency int
	RequestDelay   time.Duration
	ProbeTimeout   time.Duration
	CORSOrigins    []string
}

// Load reads configuration from the environment. Missing values get
// defaults; only nonsensical values are errors.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           envOr("PORT", "8080"),
		ProxyURL:       firstEnv("PROXY_URL", "APIFY_PROXY_URL"),
		DefaultCountry: envOr("DEFAULT_COUNTRY", "fr"),
		MaxConcurrency: 3,
		RequestDelay:   500 * time.Millisecond,
		ProbeTimeout:   15 * time.Second,
	}

	if v := os.Getenv("MAX_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_CONCURRENCY %q", v)
		}
		cfg.MaxConcurrency = n
	}

	if v := os.Getenv("REQUEST_DELAY_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid REQUEST_DELAY_MS %q", v)
		}
		cfg.RequestDelay = time.Duration(n) * time.Millisecond
	}

	if v := os.Getenv("PROBE_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid PROBE_TIMEOUT_SECONDS %q", v)
		}
		cfg.ProbeTimeout = time.Duration(n) * time.Second
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
