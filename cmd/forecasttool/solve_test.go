package main

import (
	"io"
	"testing"
	"time"
	"wind-route-service/internal/config"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	c, err := parseCoordinate("54.52, 18.61")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoCoordinate{Lat: 54.52, Lon: 18.61}, c)

	for _, bad := range []string{"54.52", "north,18", "54,east", "95,18"} {
		_, err := parseCoordinate(bad)
		assert.Error(t, err, bad)
	}
}

func TestToSolveOutputUnreached(t *testing.T) {
	plan := &services.VoyagePlan{
		Vessel:   domain.VesselSpec{Name: "default"},
		Forecast: &domain.Forecast{},
		Solution: domain.NoSolution(domain.StatusNoRoute, domain.SearchStats{Expanded: 4}),
	}

	out := toSolveOutput(plan)
	assert.Equal(t, "no_route", out.Status)
	assert.Nil(t, out.TotalCost)
	assert.Empty(t, out.Path)
	assert.Equal(t, 4, out.Expanded)
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["fetch"])
	assert.True(t, names["solve"])
}

func TestSolveRejectsBadWeight(t *testing.T) {
	cfg := config.Config{
		ForecastSource:   config.SourceFile,
		ForecastCacheDir: t.TempDir(),
		ForecastCacheTTL: time.Hour,
		ForecastCycle:    time.Hour,
		HeuristicWeight:  1,
	}
	cmd := newSolveCmd(&cfg)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--from", "54.5,18.6", "--to", "54.6,18.8", "--weight=-1"})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "--weight")
}
