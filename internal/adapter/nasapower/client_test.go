package nasapower

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jolbondhu/flood-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func TestClient_Fetch_AggregatesWindows(t *testing.T) {
	freezeClock(t, time.Date(2025, time.August, 10, 12, 0, 0, 0, time.UTC))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PRECTOTCORR,T2M,RH2M", r.URL.Query().Get("parameters"))
		assert.Equal(t, "20250804", r.URL.Query().Get("start"))
		assert.Equal(t, "20250810", r.URL.Query().Get("end"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"properties": {
				"parameter": {
					"PRECTOTCORR": {
						"20250804": 10, "20250805": 10, "20250806": 10,
						"20250807": 20, "20250808": 20, "20250809": 20, "20250810": 20
					},
					"T2M": {"20250809": 30, "20250810": 32},
					"RH2M": {"20250809": 80, "20250810": 90}
				}
			}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	reading, err := c.Fetch(context.Background(), 25.0659, 91.3950)
	require.NoError(t, err)

	// 3-day window covers 20250808 onward: 20*3 = 60; full week sums 110.
	assert.Equal(t, 60.0, reading.Rain3DayMM)
	assert.Equal(t, 110.0, reading.Rain7DayMM)
	assert.Equal(t, 31.0, reading.TemperatureC)
	assert.Equal(t, 85.0, reading.HumidityPercent)
	assert.Equal(t, "nasa-power", reading.Source)
}

func TestClient_Fetch_DropsSentinelDays(t *testing.T) {
	freezeClock(t, time.Date(2025, time.August, 10, 12, 0, 0, 0, time.UTC))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"properties": {
				"parameter": {
					"PRECTOTCORR": {"20250809": -999, "20250810": 15},
					"T2M": {"20250810": -999},
					"RH2M": {"20250810": -999}
				}
			}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	reading, err := c.Fetch(context.Background(), 23.8, 90.4)
	require.NoError(t, err)

	assert.Equal(t, 15.0, reading.Rain3DayMM)
	assert.Equal(t, 15.0, reading.Rain7DayMM)
	assert.Equal(t, domain.DefaultTemperatureC, reading.TemperatureC, "all-sentinel series falls back to default")
	assert.Equal(t, domain.DefaultHumidityPercent, reading.HumidityPercent)
}

func TestClient_Fetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Fetch(context.Background(), 23.8, 90.4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestClient_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 20 * time.Millisecond

	_, err := c.Fetch(context.Background(), 23.8, 90.4)
	require.Error(t, err)
}
