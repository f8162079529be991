package services

import (
	"errors"
	"fmt"
	"time"
	"wind-route-service/internal/domain"
)

// Resolve finds the cheapest route between req.Origin and req.Goal over a
// single forecast snapshot.
//
// Coordinates outside the forecast grid fail with domain.ErrOutOfCoverage
// before any search work is done. A search that finishes without reaching the
// goal is not an error: the returned solution carries StatusNoRoute or
// StatusBudgetExhausted instead.
//
// Resolve does not mutate the forecast and is safe to call concurrently.
func Resolve(forecast *domain.Forecast, req domain.RouteRequest, opts ...Option) (*domain.Solution, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if forecast == nil {
		return nil, errors.New("resolve: forecast is nil")
	}
	if err := forecast.Validate(); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	if err := req.Vessel.Validate(); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	origin, err := forecast.Grid.ToGrid(req.Origin)
	if err != nil {
		return nil, fmt.Errorf("resolve: origin: %w", err)
	}
	goal, err := forecast.Grid.ToGrid(req.Goal)
	if err != nil {
		return nil, fmt.Errorf("resolve: goal: %w", err)
	}

	start := time.Now()
	s := newSearcher(forecast, req.Vessel, goal, cfg)
	status, err := s.run(origin, start)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	sol := assembleSolution(s, status, time.Since(start))
	cfg.logger.Info("route search finished",
		"vessel", req.Vessel.Name,
		"origin", origin.String(),
		"goal", goal.String(),
		"status", string(sol.Status),
		"expanded", sol.Stats.Expanded,
		"elapsed_ms", sol.Stats.Elapsed.Milliseconds(),
		"cost", sol.TotalCost,
	)
	return sol, nil
}

// assembleSolution turns the final searcher state into a Solution.
func assembleSolution(s *searcher, status domain.SolutionStatus, elapsed time.Duration) *domain.Solution {
	stats := domain.SearchStats{Expanded: s.expanded, Elapsed: elapsed}
	if status != domain.StatusFound {
		return domain.NoSolution(status, stats)
	}

	path := s.path()
	waypoints := make([]domain.GeoCoordinate, len(path))
	distance := 0.0
	for i, p := range path {
		waypoints[i] = s.forecast.Grid.ToGeo(p)
		if i > 0 {
			distance += waypoints[i-1].DistanceTo(waypoints[i])
		}
	}

	return &domain.Solution{
		Status:         domain.StatusFound,
		Path:           path,
		Waypoints:      waypoints,
		TotalCost:      s.g[s.goalIdx],
		DistanceMeters: distance,
		Stats:          stats,
	}
}
