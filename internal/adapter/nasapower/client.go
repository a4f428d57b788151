// Package nasapower fetches point weather from the NASA POWER daily API.
//
// POWER serves satellite-derived daily aggregates (precipitation, 2-meter
// temperature and relative humidity) per coordinate with a 2-3 day
// publication lag. Missing days carry the -999 sentinel, which is dropped
// before aggregation.
package nasapower

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jolbondhu/flood-risk-service/internal/domain"
)

const sentinel = -999.0

// Client implements domain.WeatherProvider using the NASA POWER API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a NASA POWER client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://power.larc.nasa.gov/api/temporal/daily/point",
		logger:  logger,
	}
}

// Fetch retrieves the trailing week of daily readings and aggregates them
// into a WeatherReading. Rainfall sums the trailing 3- and 7-day windows;
// temperature and humidity are means over valid days.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (domain.WeatherReading, error) {
	// Trailing 7 calendar days, inclusive of today.
	end := domain.Clock().Now().UTC()
	start := end.AddDate(0, 0, -6)

	params := url.Values{
		"parameters": {"PRECTOTCORR,T2M,RH2M"},
		"community":  {"ag"},
		"latitude":   {fmt.Sprintf("%.4f", lat)},
		"longitude":  {fmt.Sprintf("%.4f", lon)},
		"start":      {start.Format("20060102")},
		"end":        {end.Format("20060102")},
		"format":     {"JSON"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherReading{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherReading{}, fmt.Errorf("weather fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.WeatherReading{}, fmt.Errorf("nasa power API error: status %d: %s", resp.StatusCode, body)
	}

	var pr response
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return domain.WeatherReading{}, fmt.Errorf("decode response: %w", err)
	}

	reading := aggregate(pr.Properties.Parameter, end)
	reading.Source = "nasa-power"
	return reading.Sanitize(), nil
}

// aggregate folds the per-day parameter maps into a single reading.
// Sentinel days are excluded from every window.
func aggregate(params parameters, end time.Time) domain.WeatherReading {
	cutoff3 := end.AddDate(0, 0, -2).Format("20060102")

	var rain3, rain7 float64
	for day, v := range params.Precipitation {
		if v == sentinel || v < 0 {
			continue
		}
		rain7 += v
		if day >= cutoff3 {
			rain3 += v
		}
	}

	return domain.WeatherReading{
		Rain3DayMM:      rain3,
		Rain7DayMM:      rain7,
		TemperatureC:    meanValid(params.Temperature),
		HumidityPercent: meanValid(params.Humidity),
	}
}

// meanValid averages non-sentinel values, returning the sentinel itself when
// no day is valid so Sanitize substitutes the default.
func meanValid(m map[string]float64) float64 {
	var sum float64
	var n int
	for _, v := range m {
		if v == sentinel {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return sentinel
	}
	return sum / float64(n)
}

// NASA POWER API response types.

type response struct {
	Properties struct {
		Parameter parameters `json:"parameter"`
	} `json:"properties"`
}

type parameters struct {
	Precipitation map[string]float64 `json:"PRECTOTCORR"`
	Temperature   map[string]float64 `json:"T2M"`
	Humidity      map[string]float64 `json:"RH2M"`
}
