package services

import (
	"math"
	"wind-route-service/internal/domain"
)

// edgeCost prices the move src -> dst for vessel over the forecast snapshot.
// The wind is sampled at src, rotated into the travel frame of the leg and
// handed to the vessel's cost model together with the great-circle length.
func edgeCost(f *domain.Forecast, vessel domain.VesselProfile, src, dst domain.GridPoint) float64 {
	if src == dst {
		return math.Inf(1)
	}

	srcLoc := f.Grid.ToGeo(src)
	dstLoc := f.Grid.ToGeo(dst)

	distance := srcLoc.DistanceTo(dstLoc)
	bearing := srcLoc.BearingTo(dstLoc)
	wind := f.Wind.At(src)

	return vessel.Model.TravelCost(distance, wind.ToTravelFrame(bearing))
}

// heuristic estimates the remaining cost from state to goal as the
// straight-line distance covered at the vessel's average speed and hourly
// cost. It ignores wind entirely.
func heuristic(f *domain.Forecast, vessel domain.VesselProfile, state, goal domain.GridPoint) float64 {
	distance := f.Grid.ToGeo(state).DistanceTo(f.Grid.ToGeo(goal))
	return vessel.EstimateCost(distance)
}
