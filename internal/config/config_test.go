package config

import (
	"testing"
	"time"

	"github.com/jolbondhu/flood-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, domain.StrategyBasic, cfg.RiskStrategy)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10000, cfg.CacheMaxEntries)
	assert.False(t, cfg.NASAPowerEnabled)
	assert.Equal(t, 30*time.Second, cfg.NASAPowerTimeout)
	assert.False(t, cfg.NominatimEnabled)
	assert.Equal(t, 5*time.Second, cfg.NominatimTimeout)
	assert.Equal(t, 1000, cfg.GeocodeCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("RISK_STRATEGY", "seasonal")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("CACHE_MAX_ENTRIES", "500")
	t.Setenv("NASA_POWER_ENABLED", "true")
	t.Setenv("NASA_POWER_TIMEOUT", "10s")
	t.Setenv("NOMINATIM_ENABLED", "true")
	t.Setenv("NOMINATIM_TIMEOUT", "2s")
	t.Setenv("GEOCODE_CACHE_SIZE", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, domain.StrategySeasonal, cfg.RiskStrategy)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 500, cfg.CacheMaxEntries)
	assert.True(t, cfg.NASAPowerEnabled)
	assert.Equal(t, 10*time.Second, cfg.NASAPowerTimeout)
	assert.True(t, cfg.NominatimEnabled)
	assert.Equal(t, 2*time.Second, cfg.NominatimTimeout)
	assert.Equal(t, 250, cfg.GeocodeCacheSize)
}

func TestLoad_InvalidStrategy(t *testing.T) {
	t.Setenv("RISK_STRATEGY", "quantum")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RISK_STRATEGY")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "five minutes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
}

func TestLoad_NonPositiveIntFallsBackToDefault(t *testing.T) {
	t.Setenv("CACHE_MAX_ENTRIES", "-3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.CacheMaxEntries)
}
