package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "FORECAST_SOURCE", "FORECAST_CACHE_TTL", "FORECAST_CYCLE", "ROUTE_CACHE_TTL",
		"MASK_LAND_THRESHOLD", "SEARCH_MAX_EXPANSIONS", "SEARCH_TIME_BUDGET", "HEURISTIC_WEIGHT",
	} {
		t.Setenv(k, "")
	}

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, SourceKSGMet, c.ForecastSource)
	assert.Equal(t, time.Hour, c.ForecastCacheTTL)
	assert.Equal(t, 6*time.Hour, c.RouteCacheTTL)
	assert.Equal(t, 1, c.MaskLandThreshold)
	assert.Zero(t, c.MaxExpansions)
	assert.Zero(t, c.TimeBudget)
	assert.Equal(t, 1.0, c.HeuristicWeight)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FORECAST_SOURCE", "FILE")
	t.Setenv("KSGMET_BASE_URL", "http://example.test/csv/")
	t.Setenv("SEARCH_MAX_EXPANSIONS", "5000")
	t.Setenv("SEARCH_TIME_BUDGET", "250ms")
	t.Setenv("HEURISTIC_WEIGHT", "0")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, SourceFile, c.ForecastSource)
	assert.Equal(t, "http://example.test/csv", c.KSGMetBaseURL)
	assert.Equal(t, 5000, c.MaxExpansions)
	assert.Equal(t, 250*time.Millisecond, c.TimeBudget)
	assert.Zero(t, c.HeuristicWeight)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"SEARCH_MAX_EXPANSIONS": "lots",
		"SEARCH_TIME_BUDGET":    "soon",
		"HEURISTIC_WEIGHT":      "-1",
		"FORECAST_SOURCE":       "carrier-pigeon",
		"ROUTE_CACHE_TTL":       "0s",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsNonFiniteWeight(t *testing.T) {
	for _, w := range []string{"NaN", "Inf", "-Inf", "-0.5"} {
		t.Run(w, func(t *testing.T) {
			t.Setenv("HEURISTIC_WEIGHT", w)
			_, err := Load()
			assert.ErrorContains(t, err, "HEURISTIC_WEIGHT")
		})
	}
}
