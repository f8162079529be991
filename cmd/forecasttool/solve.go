package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"wind-route-service/internal/adapters/forecast"
	"wind-route-service/internal/adapters/repositories"
	"wind-route-service/internal/config"
	"wind-route-service/internal/domain"
	"wind-route-service/internal/services"

	"github.com/spf13/cobra"
)

type solveOutput struct {
	Status         string       `json:"status"`
	Vessel         string       `json:"vessel"`
	ForecastValid  time.Time    `json:"forecast_valid_at"`
	Path           [][2]int     `json:"path"`
	Waypoints      [][2]float64 `json:"waypoints"`
	TotalCost      *float64     `json:"total_cost"`
	DistanceMeters float64      `json:"distance_meters"`
	Expanded       int          `json:"expanded"`
	ElapsedMS      int64        `json:"elapsed_ms"`
}

func newSolveCmd(cfg *config.Config) *cobra.Command {
	var (
		at, from, to, vessel string
		weight               float64
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Resolve one route against the configured forecast source",
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseAt(at)
			if err != nil {
				return err
			}
			origin, err := parseCoordinate(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			goal, err := parseCoordinate(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			provider, err := forecast.NewProvider(forecast.ProviderConfig{
				Source:            cfg.ForecastSource,
				KSGMetBaseURL:     cfg.KSGMetBaseURL,
				CacheDir:          cfg.ForecastCacheDir,
				CacheTTL:          cfg.ForecastCacheTTL,
				Cycle:             cfg.ForecastCycle,
				MaskPath:          cfg.MaskPath,
				MaskLandThreshold: cfg.MaskLandThreshold,
			})
			if err != nil {
				return err
			}

			settings := services.SearchSettings{
				HeuristicWeight: cfg.HeuristicWeight,
				MaxExpansions:   cfg.MaxExpansions,
				TimeBudget:      cfg.TimeBudget,
			}
			if cmd.Flags().Changed("weight") {
				settings.HeuristicWeight = weight
			}
			if err := settings.Validate(); err != nil {
				return fmt.Errorf("--weight: %w", err)
			}

			plan, err := services.PlanVoyage(cmd.Context(), services.PlanVoyageRequest{
				Origin:   origin,
				Goal:     goal,
				Vessel:   vessel,
				DepartAt: when,
			}, provider, repositories.NewMemoryVesselRepository(repositories.BuiltinFleet), nil, settings)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(toSolveOutput(plan))
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "departure time, RFC 3339 (default now)")
	cmd.Flags().StringVar(&from, "from", "", "origin as lat,lon")
	cmd.Flags().StringVar(&to, "to", "", "goal as lat,lon")
	cmd.Flags().StringVar(&vessel, "vessel", domain.DefaultVesselName, "vessel name")
	cmd.Flags().Float64Var(&weight, "weight", 1, "heuristic weight (0 = exhaustive search)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func parseCoordinate(s string) (domain.GeoCoordinate, error) {
	latText, lonText, ok := strings.Cut(s, ",")
	if !ok {
		return domain.GeoCoordinate{}, fmt.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return domain.GeoCoordinate{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
	if err != nil {
		return domain.GeoCoordinate{}, fmt.Errorf("longitude: %w", err)
	}
	if math.Abs(lat) > 90 {
		return domain.GeoCoordinate{}, fmt.Errorf("latitude %g out of range", lat)
	}
	return domain.GeoCoordinate{Lat: lat, Lon: lon}, nil
}

func toSolveOutput(plan *services.VoyagePlan) solveOutput {
	sol := plan.Solution
	out := solveOutput{
		Status:         string(sol.Status),
		Vessel:         plan.Vessel.Name,
		ForecastValid:  plan.Forecast.ValidAt,
		Path:           make([][2]int, len(sol.Path)),
		Waypoints:      make([][2]float64, len(sol.Waypoints)),
		DistanceMeters: sol.DistanceMeters,
		Expanded:       sol.Stats.Expanded,
		ElapsedMS:      sol.Stats.Elapsed.Milliseconds(),
	}
	for i, p := range sol.Path {
		out.Path[i] = [2]int{p.X, p.Y}
	}
	for i, c := range sol.Waypoints {
		out.Waypoints[i] = [2]float64{c.Lat, c.Lon}
	}
	if sol.Found() {
		cost := sol.TotalCost
		out.TotalCost = &cost
	}
	return out
}
