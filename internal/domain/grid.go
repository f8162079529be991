package domain

import (
	"fmt"
	"math"
)

// GridPoint is a cell index into the forecast grid. X selects the latitude
// row in [0, LatCount), Y the longitude column in [0, LonCount).
type GridPoint struct {
	X int
	Y int
}

func (p GridPoint) String() string { return fmt.Sprintf("[%d,%d]", p.X, p.Y) }

// GridMapping converts between geographic coordinates and grid cells for a
// regular latitude/longitude forecast grid. Steps are degrees per cell and
// may be negative for grids stored north-to-south or east-to-west.
type GridMapping struct {
	Origin   GeoCoordinate
	LatStep  float64
	LonStep  float64
	LatCount int
	LonCount int
}

func (m GridMapping) Validate() error {
	if m.LatCount <= 0 || m.LonCount <= 0 {
		return fmt.Errorf("%w: extents must be positive (lat=%d lon=%d)", ErrInvalidGrid, m.LatCount, m.LonCount)
	}
	if !finiteNonZero(m.LatStep) || !finiteNonZero(m.LonStep) {
		return fmt.Errorf("%w: steps must be finite and non-zero (lat=%g lon=%g)", ErrInvalidGrid, m.LatStep, m.LonStep)
	}
	if math.IsNaN(m.Origin.Lat) || math.IsNaN(m.Origin.Lon) {
		return fmt.Errorf("%w: origin %s is not a number", ErrInvalidGrid, m.Origin)
	}
	return nil
}

// Contains reports whether p lies inside the grid extents.
func (m GridMapping) Contains(p GridPoint) bool {
	return p.X >= 0 && p.X < m.LatCount && p.Y >= 0 && p.Y < m.LonCount
}

// Cells returns the number of cells in the grid.
func (m GridMapping) Cells() int { return m.LatCount * m.LonCount }

// Index maps p to a row-major offset. p must be inside the grid.
func (m GridMapping) Index(p GridPoint) int { return p.X*m.LonCount + p.Y }

// Point is the inverse of Index.
func (m GridMapping) Point(idx int) GridPoint {
	return GridPoint{X: idx / m.LonCount, Y: idx % m.LonCount}
}

// ToGrid returns the cell whose centre is nearest to c. Coordinates that land
// outside the grid fail with ErrOutOfCoverage.
func (m GridMapping) ToGrid(c GeoCoordinate) (GridPoint, error) {
	x := math.Round((c.Lat - m.Origin.Lat) / m.LatStep)
	y := math.Round((c.Lon - m.Origin.Lon) / m.LonStep)

	if math.IsNaN(x) || math.IsNaN(y) ||
		x < 0 || x >= float64(m.LatCount) ||
		y < 0 || y >= float64(m.LonCount) {
		return GridPoint{}, fmt.Errorf("%w: %s is outside the %dx%d forecast grid", ErrOutOfCoverage, c, m.LatCount, m.LonCount)
	}

	return GridPoint{X: int(x), Y: int(y)}, nil
}

// ToGeo returns the coordinate of the centre of cell p.
func (m GridMapping) ToGeo(p GridPoint) GeoCoordinate {
	return GeoCoordinate{
		Lat: m.Origin.Lat + float64(p.X)*m.LatStep,
		Lon: m.Origin.Lon + float64(p.Y)*m.LonStep,
	}
}

// Bounds returns the south-west and north-east cell centres of the grid.
func (m GridMapping) Bounds() (sw GeoCoordinate, ne GeoCoordinate) {
	far := m.ToGeo(GridPoint{X: m.LatCount - 1, Y: m.LonCount - 1})
	sw = GeoCoordinate{Lat: math.Min(m.Origin.Lat, far.Lat), Lon: math.Min(m.Origin.Lon, far.Lon)}
	ne = GeoCoordinate{Lat: math.Max(m.Origin.Lat, far.Lat), Lon: math.Max(m.Origin.Lon, far.Lon)}
	return sw, ne
}

func finiteNonZero(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
