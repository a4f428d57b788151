package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"garbage", false, true}, // falls back to info
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(tt.level, "json")
			require.NotNil(t, logger)
			assert.Equal(t, tt.debugOn, logger.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tt.warnOn, logger.Enabled(context.Background(), slog.LevelWarn))
		})
	}
}

func TestNewMetricsForTesting_Repeatable(t *testing.T) {
	// Must not panic on repeated construction.
	m1 := NewMetricsForTesting()
	m2 := NewMetricsForTesting()
	require.NotNil(t, m1)
	require.NotNil(t, m2)
	m1.CacheLookups.WithLabelValues("hit").Inc()
	m2.CacheLookups.WithLabelValues("miss").Inc()
}
