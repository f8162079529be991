package domain

import (
	"math"
	"time"
)

// RouteRequest asks for the cheapest passage from Origin to Goal for Vessel.
type RouteRequest struct {
	Origin GeoCoordinate
	Goal   GeoCoordinate
	Vessel VesselProfile
}

// SolutionStatus is the terminal state of a route search.
type SolutionStatus string

const (
	StatusFound SolutionStatus = "found"
	// StatusNoRoute means the frontier was exhausted: origin and goal are not
	// connected under the mask (or every connecting edge is impassable).
	StatusNoRoute SolutionStatus = "no_route"
	// StatusBudgetExhausted means an expansion or time budget cut the search
	// short before the goal was reached.
	StatusBudgetExhausted SolutionStatus = "budget_exhausted"
)

// SearchStats records how much work a search did.
type SearchStats struct {
	Expanded int
	Elapsed  time.Duration
}

// Solution is the outcome of one route search.
// Path runs origin-first, goal-last and Waypoints holds the cell centres of
// Path. When Status is not StatusFound, Path is empty and TotalCost is +Inf.
// A Solution is immutable planning data once returned.
type Solution struct {
	Status         SolutionStatus
	Path           []GridPoint
	Waypoints      []GeoCoordinate
	TotalCost      float64
	DistanceMeters float64
	Stats          SearchStats
}

// Found reports whether the search reached the goal.
func (s *Solution) Found() bool { return s.Status == StatusFound }

// NoSolution returns an unreached Solution carrying the given status.
func NoSolution(status SolutionStatus, stats SearchStats) *Solution {
	return &Solution{
		Status:    status,
		Path:      []GridPoint{},
		Waypoints: []GeoCoordinate{},
		TotalCost: math.Inf(1),
		Stats:     stats,
	}
}
