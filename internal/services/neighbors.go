package services

import "wind-route-service/internal/domain"

// neighborOffsets lists the 8-connected moves in a fixed order so that
// searches over the same input are reproducible.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// appendNeighbors appends to dst every cell adjacent to p that lies inside the
// grid and is navigable under mask. p itself is never included.
func appendNeighbors(
	dst []domain.GridPoint,
	grid domain.GridMapping,
	mask *domain.NavigabilityMask,
	p domain.GridPoint,
) []domain.GridPoint {
	for _, d := range neighborOffsets {
		n := domain.GridPoint{X: p.X + d[0], Y: p.Y + d[1]}
		// Bounds first: the mask panics on out-of-range points.
		if !grid.Contains(n) {
			continue
		}
		if !mask.At(n) {
			continue
		}
		dst = append(dst, n)
	}
	return dst
}
