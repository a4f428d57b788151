package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jolbondhu/flood-risk-service/internal/adapter/httpapi"
	"github.com/jolbondhu/flood-risk-service/internal/adapter/nasapower"
	"github.com/jolbondhu/flood-risk-service/internal/adapter/nominatim"
	"github.com/jolbondhu/flood-risk-service/internal/assess"
	"github.com/jolbondhu/flood-risk-service/internal/config"
	"github.com/jolbondhu/flood-risk-service/internal/domain"
	"github.com/jolbondhu/flood-risk-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	districts, err := domain.LoadDistricts()
	if err != nil {
		logger.Error("failed to load district table", "error", err)
		os.Exit(1)
	}
	rivers, err := domain.LoadRivers()
	if err != nil {
		logger.Error("failed to load river table", "error", err)
		os.Exit(1)
	}

	// Reverse geocoding is feature-flagged; without it the resolver falls
	// back to nearest-district matching against the embedded table.
	var geocoder domain.Geocoder
	if cfg.NominatimEnabled {
		client := nominatim.NewClient(cfg.NominatimTimeout, logger)
		geocoder = nominatim.NewCachedGeocoder(client, cfg.GeocodeCacheSize, metrics)
		logger.Info("nominatim geocoding enabled",
			"cache_size", cfg.GeocodeCacheSize, "timeout", cfg.NominatimTimeout)
	} else {
		logger.Info("nominatim geocoding disabled, using nearest-district matching")
	}

	// Live weather is feature-flagged; without it readings are synthesized
	// from the deterministic climatology model.
	var provider domain.WeatherProvider
	if cfg.NASAPowerEnabled {
		provider = nasapower.NewClient(cfg.NASAPowerTimeout, logger)
		metrics.LiveWeatherEnabled.Set(1)
		logger.Info("nasa power weather enabled", "timeout", cfg.NASAPowerTimeout)
	} else {
		provider = domain.NewSyntheticProvider()
		metrics.LiveWeatherEnabled.Set(0)
		logger.Info("nasa power weather disabled, using synthetic readings")
	}

	resolver := domain.NewResolver(districts, geocoder, logger)
	scorer := domain.NewScorer(rivers, cfg.RiskStrategy)
	assessor := assess.New(resolver, provider, scorer,
		cfg.CacheTTL, cfg.CacheMaxEntries, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, assessor, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	logger.Info("jolbondhu api started",
		"addr", cfg.HTTPAddr,
		"strategy", cfg.RiskStrategy,
		"districts", len(districts),
		"rivers", len(rivers))

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
