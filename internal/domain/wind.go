package domain

import (
	"fmt"
	"math"
)

// WindVector holds two wind components in m/s. In the geographic frame U is
// the eastward and V the northward component. After ToTravelFrame, U is the
// along-track component (positive pushes the vessel forward) and V the
// cross-track component (positive towards port).
type WindVector struct {
	U float64
	V float64
}

// Speed returns the magnitude of the vector.
func (w WindVector) Speed() float64 { return math.Hypot(w.U, w.V) }

// Rotate expresses w in a coordinate frame rotated counter-clockwise by theta
// radians.
func (w WindVector) Rotate(theta float64) WindVector {
	s, c := math.Sincos(theta)
	return WindVector{
		U: w.U*c + w.V*s,
		V: -w.U*s + w.V*c,
	}
}

// ToTravelFrame re-expresses a geographic wind vector relative to a heading
// given as a compass bearing in radians. The frame rotation is
// -(bearing - π/2), which lines the first axis up with the heading.
func (w WindVector) ToTravelFrame(bearing float64) WindVector {
	return w.Rotate(NormalizeAngle(-(bearing - math.Pi/2)))
}

// WindField is a dense, read-only grid of wind vectors.
type WindField struct {
	latCount int
	lonCount int
	cells    []WindVector
}

// NewWindField copies rows into a new field. Rows index latitude, columns
// longitude; the input must be rectangular and non-empty.
func NewWindField(rows [][]WindVector) (*WindField, error) {
	latCount, lonCount, err := rectangular(len(rows), func(i int) int { return len(rows[i]) })
	if err != nil {
		return nil, fmt.Errorf("new wind field: %w", err)
	}

	f := &WindField{latCount: latCount, lonCount: lonCount, cells: make([]WindVector, 0, latCount*lonCount)}
	for _, row := range rows {
		f.cells = append(f.cells, row...)
	}
	return f, nil
}

// NewWindFieldFromComponents builds a field from separate U and V grids of
// identical shape, the layout forecast files arrive in.
func NewWindFieldFromComponents(u, v [][]float64) (*WindField, error) {
	if len(u) != len(v) {
		return nil, fmt.Errorf("new wind field: %w: u has %d rows, v has %d", ErrInvalidGrid, len(u), len(v))
	}

	rows := make([][]WindVector, len(u))
	for i := range u {
		if len(u[i]) != len(v[i]) {
			return nil, fmt.Errorf("new wind field: %w: row %d has %d u and %d v values", ErrInvalidGrid, i, len(u[i]), len(v[i]))
		}
		rows[i] = make([]WindVector, len(u[i]))
		for j := range u[i] {
			rows[i][j] = WindVector{U: u[i][j], V: v[i][j]}
		}
	}

	return NewWindField(rows)
}

// UniformWindField returns a field with the same vector in every cell.
func UniformWindField(latCount, lonCount int, w WindVector) *WindField {
	f := &WindField{latCount: latCount, lonCount: lonCount, cells: make([]WindVector, latCount*lonCount)}
	for i := range f.cells {
		f.cells[i] = w
	}
	return f
}

// Dimensions returns the latitude and longitude cell counts.
func (f *WindField) Dimensions() (latCount, lonCount int) { return f.latCount, f.lonCount }

// At returns the wind in cell p. It panics with *IndexOutOfBoundsError when p
// is outside the field; callers bounds-check first.
func (f *WindField) At(p GridPoint) WindVector {
	if !f.contains(p) {
		panic(&IndexOutOfBoundsError{Grid: "wind field", Point: p, LatCount: f.latCount, LonCount: f.lonCount})
	}
	return f.cells[p.X*f.lonCount+p.Y]
}

// Lookup is At with the bounds violation returned instead of raised.
func (f *WindField) Lookup(p GridPoint) (WindVector, error) {
	if !f.contains(p) {
		return WindVector{}, &IndexOutOfBoundsError{Grid: "wind field", Point: p, LatCount: f.latCount, LonCount: f.lonCount}
	}
	return f.cells[p.X*f.lonCount+p.Y], nil
}

// Components returns copies of the U and V grids.
func (f *WindField) Components() (u, v [][]float64) {
	u = make([][]float64, f.latCount)
	v = make([][]float64, f.latCount)
	for x := 0; x < f.latCount; x++ {
		u[x] = make([]float64, f.lonCount)
		v[x] = make([]float64, f.lonCount)
		for y := 0; y < f.lonCount; y++ {
			w := f.cells[x*f.lonCount+y]
			u[x][y], v[x][y] = w.U, w.V
		}
	}
	return u, v
}

func (f *WindField) contains(p GridPoint) bool {
	return p.X >= 0 && p.X < f.latCount && p.Y >= 0 && p.Y < f.lonCount
}

// rectangular validates a row-major 2D shape and returns its extents.
func rectangular(rows int, rowLen func(int) int) (int, int, error) {
	if rows == 0 || rowLen(0) == 0 {
		return 0, 0, fmt.Errorf("%w: grid must have at least one row and one column", ErrInvalidGrid)
	}
	cols := rowLen(0)
	for i := 1; i < rows; i++ {
		if rowLen(i) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, i, rowLen(i), cols)
		}
	}
	return rows, cols, nil
}
