package domain

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Default values substituted when an upstream weather source is unavailable
// or returns unusable data.
const (
	DefaultTemperatureC    = 25.0
	DefaultHumidityPercent = 70.0
)

// WeatherReading is a transient ambient-weather value for one location.
type WeatherReading struct {
	Rain3DayMM      float64 `json:"rain_3day_mm"`
	Rain7DayMM      float64 `json:"rain_7day_mm"`
	TemperatureC    float64 `json:"temperature_c"`
	HumidityPercent float64 `json:"humidity_percent"`

	// Source records provenance: "nasa-power", "synthetic", or "fallback".
	Source string `json:"source"`
}

// WeatherProvider fetches an ambient weather reading for a coordinate.
// Implementations may call external services; failures are reported as
// errors and the caller substitutes FallbackReading.
type WeatherProvider interface {
	Fetch(ctx context.Context, lat, lon float64) (WeatherReading, error)
}

// FallbackReading is the neutral default used when no provider data is
// available: dry, 25 C, 70% humidity.
func FallbackReading() WeatherReading {
	return WeatherReading{
		TemperatureC:    DefaultTemperatureC,
		HumidityPercent: DefaultHumidityPercent,
		Source:          "fallback",
	}
}

// Sanitize replaces sentinel and out-of-range values with defaults and
// clamps humidity to [0,100]. Upstream sources use sentinels like -999 for
// missing data; negative rainfall is treated as missing.
func (w WeatherReading) Sanitize() WeatherReading {
	if w.Rain3DayMM < 0 || math.IsNaN(w.Rain3DayMM) {
		w.Rain3DayMM = 0
	}
	if w.Rain7DayMM < 0 || math.IsNaN(w.Rain7DayMM) {
		w.Rain7DayMM = 0
	}
	if w.TemperatureC < -90 || w.TemperatureC > 60 || math.IsNaN(w.TemperatureC) {
		w.TemperatureC = DefaultTemperatureC
	}
	if w.HumidityPercent < 0 || math.IsNaN(w.HumidityPercent) {
		w.HumidityPercent = DefaultHumidityPercent
	}
	if w.HumidityPercent > 100 {
		w.HumidityPercent = 100
	}
	return w
}

// SyntheticProvider generates deterministic pseudo-random weather seeded by
// the rounded coordinate and the current month, so repeated requests for the
// same place in the same month agree.
type SyntheticProvider struct{}

// NewSyntheticProvider returns a provider that never touches the network.
func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{}
}

// Fetch never fails. Rainfall scales with the monsoon calendar and distance
// from the 24N reference latitude, mirroring the historical simulation.
func (p *SyntheticProvider) Fetch(_ context.Context, lat, lon float64) (WeatherReading, error) {
	now := clock.Now()
	seed := int64(lat*100+lon)*100 + int64(now.Month())
	rng := rand.New(rand.NewSource(seed))

	mult := seasonalRainMultiplier(now.Month())
	base := 20 + math.Abs(lat-24.0)*10

	rain3 := (base + rng.Float64()*40) * mult
	rain7 := rain3*1.8 + rng.Float64()*30*mult

	return WeatherReading{
		Rain3DayMM:      round2(rain3),
		Rain7DayMM:      round2(rain7),
		TemperatureC:    round2(25 + rng.Float64()*10),
		HumidityPercent: round2(65 + rng.Float64()*30),
		Source:          "synthetic",
	}, nil
}

// seasonalRainMultiplier follows the Bangladesh monsoon calendar.
func seasonalRainMultiplier(m time.Month) float64 {
	switch {
	case m >= time.June && m <= time.September:
		return 2.0
	case m == time.May || m == time.October:
		return 1.2
	default:
		return 0.5
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
