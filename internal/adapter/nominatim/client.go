package nominatim

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

// userAgent identifies the service per the Nominatim usage policy.
const userAgent = "jolbondhu-flood-risk-service/1.0"

// Client implements domain.Geocoder using the OpenStreetMap Nominatim API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Nominatim reverse-geocoding client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://nominatim.openstreetmap.org",
		logger:  logger,
	}
}

// ReverseGeocode converts coordinates to district-level address fields,
// requesting Bengali names so results match the district table. An empty
// result with nil error means Nominatim had no answer for the coordinate.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodeResult, error) {
	params := url.Values{
		"format":          {"jsonv2"},
		"lat":             {fmt.Sprintf("%.6f", lat)},
		"lon":             {fmt.Sprintf("%.6f", lon)},
		"accept-language": {"bn"},
		"zoom":            {"10"}, // district granularity
	}

	fullURL := c.baseURL + "/reverse?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.GeocodeResult{}, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var nr response
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("decode response: %w", err)
	}

	return domain.GeocodeResult{
		District: firstNonEmpty(nr.Address.County, nr.Address.District, nr.Address.StateDistrict),
		State:    nr.Address.State,
		Country:  nr.Address.Country,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Nominatim API response types. District names appear under different
// address keys depending on the place hierarchy.

type response struct {
	Address address `json:"address"`
}

type address struct {
	County        string `json:"county"`
	District      string `json:"district"`
	StateDistrict string `json:"state_district"`
	State         string `json:"state"`
	Country       string `json:"country"`
}
