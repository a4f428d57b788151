// Package assess orchestrates the per-request flood risk pipeline:
// resolve district, fetch or synthesize weather, score, advise, memoize.
package assess

import (
	"context"
	"log/slog"
	"time"

	"github.com/jolbondhu/flood-risk-service/internal/domain"
	"github.com/jolbondhu/flood-risk-service/internal/observability"
)

// Result is the complete outcome for one coordinate.
type Result struct {
	District   domain.District
	Weather    domain.WeatherReading
	Assessment domain.RiskAssessment
	Advisory   domain.Advisory
	CacheHit   bool
}

// Assessor wires the resolver, weather provider, scorer, and result cache.
// It is safe for concurrent use.
type Assessor struct {
	resolver *domain.Resolver
	provider domain.WeatherProvider
	scorer   *domain.Scorer
	cache    *resultCache
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates an Assessor.
func New(
	resolver *domain.Resolver,
	provider domain.WeatherProvider,
	scorer *domain.Scorer,
	cacheTTL time.Duration,
	cacheMaxEntries int,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Assessor {
	return &Assessor{
		resolver: resolver,
		provider: provider,
		scorer:   scorer,
		cache:    newResultCache(cacheTTL, cacheMaxEntries),
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness reports whether the reference tables loaded.
func (a *Assessor) CheckReadiness(_ context.Context) error {
	// Construction fails before this point if the embedded tables are
	// unreadable, so a built Assessor is always ready.
	return nil
}

// Assess runs the full pipeline for a coordinate. Callers must have
// validated coordinate ranges. The district hint short-circuits resolution
// when it names a known district; it never affects the cache key.
func (a *Assessor) Assess(ctx context.Context, lat, lon float64, districtHint string) Result {
	district := a.resolveDistrict(ctx, lat, lon, districtHint)

	now := domain.Clock().Now()
	key := cacheKey(lat, lon)

	cached, lookup := a.cache.get(key, now)
	switch lookup {
	case lookupHit:
		a.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return Result{
			District:   district,
			Weather:    cached.Weather,
			Assessment: cached.Assessment,
			Advisory:   cached.Advisory,
			CacheHit:   true,
		}
	case lookupExpired:
		a.metrics.CacheLookups.WithLabelValues("expired").Inc()
	default:
		a.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	weather := a.fetchWeather(ctx, lat, lon)
	assessment := a.scorer.Score(lat, lon, weather)
	advisory := domain.BuildAdvisory(assessment, weather)

	a.metrics.AssessmentsTier.WithLabelValues(assessment.TierCode).Inc()

	a.cache.put(key, cachedResult{
		Weather:    weather,
		Assessment: assessment,
		Advisory:   advisory,
	}, now)
	a.metrics.CacheSize.Set(float64(a.cache.len()))

	return Result{
		District:   district,
		Weather:    weather,
		Assessment: assessment,
		Advisory:   advisory,
		CacheHit:   false,
	}
}

// DistrictRisk is one row of the all-districts listing.
type DistrictRisk struct {
	District   domain.District
	Assessment domain.RiskAssessment
}

// AllDistricts assesses every district at its stored coordinate. Entries go
// through the same cache as point requests, so repeated listings within the
// TTL are cheap.
func (a *Assessor) AllDistricts(ctx context.Context) []DistrictRisk {
	districts := a.resolver.Districts()
	out := make([]DistrictRisk, 0, len(districts))
	for _, d := range districts {
		r := a.Assess(ctx, d.Lat, d.Lon, d.NameEN)
		out = append(out, DistrictRisk{District: d, Assessment: r.Assessment})
	}
	return out
}

// ClearCache drops all memoized results and returns the number removed.
func (a *Assessor) ClearCache() int {
	n := a.cache.clear()
	a.metrics.CacheCleared.Add(float64(n))
	a.metrics.CacheSize.Set(0)
	a.logger.Info("result cache cleared", "removed", n)
	return n
}

// resolveDistrict prefers a hint naming a known district, then the resolver.
func (a *Assessor) resolveDistrict(ctx context.Context, lat, lon float64, hint string) domain.District {
	if hint != "" {
		if d, ok := a.resolver.Lookup(hint); ok {
			return d
		}
		a.logger.Debug("district hint not in table", "hint", hint)
	}
	return a.resolver.Resolve(ctx, lat, lon)
}

// fetchWeather asks the provider and substitutes the neutral fallback on
// any failure; upstream unavailability is never surfaced to callers.
func (a *Assessor) fetchWeather(ctx context.Context, lat, lon float64) domain.WeatherReading {
	start := time.Now()
	weather, err := a.provider.Fetch(ctx, lat, lon)
	if err != nil {
		a.metrics.WeatherFetches.WithLabelValues("upstream", "error").Inc()
		a.logger.Warn("weather fetch failed, using fallback reading",
			"lat", lat, "lon", lon, "error", err)
		return domain.FallbackReading()
	}
	weather = weather.Sanitize()
	a.metrics.WeatherFetchDuration.WithLabelValues(weather.Source).Observe(time.Since(start).Seconds())
	a.metrics.WeatherFetches.WithLabelValues(weather.Source, "success").Inc()
	return weather
}
