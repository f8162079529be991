package domain

import "fmt"

// NavigabilityMask marks which grid cells a vessel may occupy. It is
// read-only once built; the With* helpers return modified copies.
type NavigabilityMask struct {
	latCount int
	lonCount int
	cells    []bool
}

// AllNavigable is the default mask used when no real mask source exists.
func AllNavigable(latCount, lonCount int) *NavigabilityMask {
	m := &NavigabilityMask{latCount: latCount, lonCount: lonCount, cells: make([]bool, latCount*lonCount)}
	for i := range m.cells {
		m.cells[i] = true
	}
	return m
}

// NewMask copies a rectangular grid of flags, true meaning traversable.
func NewMask(rows [][]bool) (*NavigabilityMask, error) {
	latCount, lonCount, err := rectangular(len(rows), func(i int) int { return len(rows[i]) })
	if err != nil {
		return nil, fmt.Errorf("new mask: %w", err)
	}

	m := &NavigabilityMask{latCount: latCount, lonCount: lonCount, cells: make([]bool, 0, latCount*lonCount)}
	for _, row := range rows {
		m.cells = append(m.cells, row...)
	}
	return m, nil
}

// MaskFromRaster derives a mask from an integer raster: cells with a value
// at or above landThreshold are blocked, everything else is water.
func MaskFromRaster(values [][]int, landThreshold int) (*NavigabilityMask, error) {
	rows := make([][]bool, len(values))
	for i, row := range values {
		rows[i] = make([]bool, len(row))
		for j, v := range row {
			rows[i][j] = v < landThreshold
		}
	}
	return NewMask(rows)
}

// Dimensions returns the latitude and longitude cell counts.
func (m *NavigabilityMask) Dimensions() (latCount, lonCount int) { return m.latCount, m.lonCount }

// At reports whether cell p is traversable. It panics with
// *IndexOutOfBoundsError when p is outside the mask.
func (m *NavigabilityMask) At(p GridPoint) bool {
	if !m.contains(p) {
		panic(&IndexOutOfBoundsError{Grid: "navigability mask", Point: p, LatCount: m.latCount, LonCount: m.lonCount})
	}
	return m.cells[p.X*m.lonCount+p.Y]
}

// Lookup is At with the bounds violation returned instead of raised.
func (m *NavigabilityMask) Lookup(p GridPoint) (bool, error) {
	if !m.contains(p) {
		return false, &IndexOutOfBoundsError{Grid: "navigability mask", Point: p, LatCount: m.latCount, LonCount: m.lonCount}
	}
	return m.cells[p.X*m.lonCount+p.Y], nil
}

// WithBlocked returns a copy of m with the given cells marked non-traversable.
// Points outside the mask are ignored.
func (m *NavigabilityMask) WithBlocked(points ...GridPoint) *NavigabilityMask {
	cp := &NavigabilityMask{latCount: m.latCount, lonCount: m.lonCount, cells: make([]bool, len(m.cells))}
	copy(cp.cells, m.cells)
	for _, p := range points {
		if cp.contains(p) {
			cp.cells[p.X*cp.lonCount+p.Y] = false
		}
	}
	return cp
}

// Rows returns a copy of the mask as a row-major grid.
func (m *NavigabilityMask) Rows() [][]bool {
	rows := make([][]bool, m.latCount)
	for x := range rows {
		rows[x] = make([]bool, m.lonCount)
		copy(rows[x], m.cells[x*m.lonCount:(x+1)*m.lonCount])
	}
	return rows
}

func (m *NavigabilityMask) contains(p GridPoint) bool {
	return p.X >= 0 && p.X < m.latCount && p.Y >= 0 && p.Y < m.lonCount
}
