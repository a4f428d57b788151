package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jolbondhu/flood-risk-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Risk scoring.
	RiskStrategy domain.Strategy

	// Result cache.
	CacheTTL        time.Duration
	CacheMaxEntries int

	// NASA POWER weather source. Disabled means the synthetic generator.
	NASAPowerEnabled bool
	NASAPowerTimeout time.Duration

	// Nominatim reverse geocoding.
	NominatimEnabled bool
	NominatimTimeout time.Duration
	GeocodeCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("CACHE_TTL", "300s")
	if err != nil {
		return nil, err
	}
	nasaTimeout, err := parseDuration("NASA_POWER_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	nominatimTimeout, err := parseDuration("NOMINATIM_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	strategy := domain.Strategy(envOrDefault("RISK_STRATEGY", string(domain.StrategyBasic)))
	if !strategy.Valid() {
		return nil, fmt.Errorf("invalid RISK_STRATEGY %q (want basic or seasonal)", strategy)
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8000"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		RiskStrategy: strategy,

		CacheTTL:        cacheTTL,
		CacheMaxEntries: parsePositiveInt("CACHE_MAX_ENTRIES", 10000),

		NASAPowerEnabled: envBool("NASA_POWER_ENABLED", false),
		NASAPowerTimeout: nasaTimeout,

		NominatimEnabled: envBool("NOMINATIM_ENABLED", false),
		NominatimTimeout: nominatimTimeout,
		GeocodeCacheSize: parsePositiveInt("GEOCODE_CACHE_SIZE", 1000),
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
