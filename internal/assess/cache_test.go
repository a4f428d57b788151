package assess

import (
	"testing"
	"time"

	"github.com/jolbondhu/flood-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

func sample(rain float64) cachedResult {
	return cachedResult{
		Weather: domain.WeatherReading{Rain3DayMM: rain, Source: "synthetic"},
	}
}

func TestCacheKey_RoundsToFourDecimals(t *testing.T) {
	assert.Equal(t, cacheKey(25.06591, 91.39502), cacheKey(25.06589, 91.39498))
	assert.NotEqual(t, cacheKey(25.0659, 91.3950), cacheKey(25.0669, 91.3950))
}

func TestResultCache_HitWithinTTL(t *testing.T) {
	c := newResultCache(5*time.Minute, 100)
	c.put("k", sample(10), t0)

	got, lookup := c.get("k", t0.Add(4*time.Minute))
	assert.Equal(t, lookupHit, lookup)
	assert.Equal(t, 10.0, got.Weather.Rain3DayMM)
}

func TestResultCache_ExpiresAtTTL(t *testing.T) {
	c := newResultCache(5*time.Minute, 100)
	c.put("k", sample(10), t0)

	_, lookup := c.get("k", t0.Add(5*time.Minute))
	assert.Equal(t, lookupExpired, lookup)

	// The expired entry was dropped; a second lookup is a plain miss.
	_, lookup = c.get("k", t0.Add(5*time.Minute))
	assert.Equal(t, lookupMiss, lookup)
}

func TestResultCache_MissUnknownKey(t *testing.T) {
	c := newResultCache(5*time.Minute, 100)

	_, lookup := c.get("nope", t0)
	assert.Equal(t, lookupMiss, lookup)
}

func TestResultCache_OverwriteResetsAge(t *testing.T) {
	c := newResultCache(5*time.Minute, 100)
	c.put("k", sample(10), t0)
	c.put("k", sample(20), t0.Add(4*time.Minute))

	got, lookup := c.get("k", t0.Add(8*time.Minute))
	assert.Equal(t, lookupHit, lookup)
	assert.Equal(t, 20.0, got.Weather.Rain3DayMM)
}

func TestResultCache_SizeBound(t *testing.T) {
	c := newResultCache(time.Hour, 2)
	c.put("a", sample(1), t0)
	c.put("b", sample(2), t0)
	c.put("c", sample(3), t0) // evicts "a"

	assert.Equal(t, 2, c.len())
	_, lookup := c.get("a", t0)
	assert.Equal(t, lookupMiss, lookup)
	_, lookup = c.get("c", t0)
	assert.Equal(t, lookupHit, lookup)
}

func TestResultCache_GetRefreshesRecency(t *testing.T) {
	c := newResultCache(time.Hour, 2)
	c.put("a", sample(1), t0)
	c.put("b", sample(2), t0)
	_, _ = c.get("a", t0)     // a becomes most recent
	c.put("c", sample(3), t0) // evicts "b"

	_, lookup := c.get("a", t0)
	assert.Equal(t, lookupHit, lookup)
	_, lookup = c.get("b", t0)
	assert.Equal(t, lookupMiss, lookup)
}

func TestResultCache_Clear(t *testing.T) {
	c := newResultCache(time.Hour, 100)
	c.put("a", sample(1), t0)
	c.put("b", sample(2), t0)

	assert.Equal(t, 2, c.clear())
	assert.Equal(t, 0, c.len())
	assert.Equal(t, 0, c.clear())
}
