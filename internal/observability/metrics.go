package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// flood risk service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec // labels: endpoint, outcome={success,invalid,degraded}
	AssessmentsTier *prometheus.CounterVec // labels: tier={low,medium,high,very_high}

	// Result cache metrics.
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss,expired}
	CacheSize    prometheus.Gauge
	CacheCleared prometheus.Counter

	// Upstream data source metrics.
	GeocodeRequests      *prometheus.CounterVec // labels: outcome={match,no_match,error}
	WeatherFetchDuration *prometheus.HistogramVec
	WeatherFetches       *prometheus.CounterVec // labels: source, outcome={success,error}
	LiveWeatherEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RequestsTotal,
		m.AssessmentsTier,
		m.CacheLookups,
		m.CacheSize,
		m.CacheCleared,
		m.GeocodeRequests,
		m.WeatherFetchDuration,
		m.WeatherFetches,
		m.LiveWeatherEnabled,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jolbondhu",
			Name:      "requests_total",
			Help:      "API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		AssessmentsTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jolbondhu",
			Name:      "assessments_total",
			Help:      "Computed risk assessments by tier.",
		}, []string{"tier"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jolbondhu",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by result.",
		}, []string{"result"}),
		CacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jolbondhu",
			Name:      "cache_entries",
			Help:      "Current number of result cache entries.",
		}),
		CacheCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jolbondhu",
			Name:      "cache_cleared_total",
			Help:      "Entries removed by explicit cache clears.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jolbondhu",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		WeatherFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jolbondhu",
			Name:      "weather_fetch_duration_seconds",
			Help:      "Upstream weather fetch duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jolbondhu",
			Name:      "weather_fetches_total",
			Help:      "Upstream weather fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		LiveWeatherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jolbondhu",
			Name:      "live_weather_enabled",
			Help:      "1 when the NASA POWER source is enabled, 0 when synthetic.",
		}),
	}
}
