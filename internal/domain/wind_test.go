package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTravelFrame(t *testing.T) {
	const eps = 1e-9

	cases := []struct {
		name    string
		wind    WindVector
		bearing float64
		want    WindVector
	}{
		{"east wind heading east is a tail wind", WindVector{U: 5}, math.Pi / 2, WindVector{U: 5}},
		{"north wind heading north is a tail wind", WindVector{V: 5}, 0, WindVector{U: 5}},
		{"south wind heading north is a head wind", WindVector{V: -5}, 0, WindVector{U: -5}},
		{"east wind heading north pushes to starboard", WindVector{U: 5}, 0, WindVector{V: -5}},
		{"west wind heading south pushes to starboard", WindVector{U: -5}, math.Pi, WindVector{V: -5}},
		{"north wind heading west pushes to starboard", WindVector{V: 5}, 3 * math.Pi / 2, WindVector{V: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.wind.ToTravelFrame(tc.bearing)
			assert.InDelta(t, tc.want.U, got.U, eps)
			assert.InDelta(t, tc.want.V, got.V, eps)
			assert.InDelta(t, tc.wind.Speed(), got.Speed(), eps)
		})
	}
}

func TestWindFieldLookup(t *testing.T) {
	f, err := NewWindFieldFromComponents(
		[][]float64{{1, 2, 3}, {4, 5, 6}},
		[][]float64{{-1, -2, -3}, {-4, -5, -6}},
	)
	require.NoError(t, err)

	lat, lon := f.Dimensions()
	assert.Equal(t, 2, lat)
	assert.Equal(t, 3, lon)
	assert.Equal(t, WindVector{U: 6, V: -6}, f.At(GridPoint{X: 1, Y: 2}))

	_, err = f.Lookup(GridPoint{X: 2, Y: 0})
	assert.True(t, errors.Is(err, ErrIndexOutOfBounds))

	assert.Panics(t, func() { f.At(GridPoint{X: 0, Y: 3}) })

	u, v := f.Components()
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, u)
	assert.Equal(t, [][]float64{{-1, -2, -3}, {-4, -5, -6}}, v)
}

func TestWindFieldShapeErrors(t *testing.T) {
	_, err := NewWindField(nil)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = NewWindField([][]WindVector{{{}, {}}, {{}}})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = NewWindFieldFromComponents([][]float64{{1}}, [][]float64{{1}, {2}})
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestNavigabilityMask(t *testing.T) {
	m := AllNavigable(3, 3)
	blocked := m.WithBlocked(GridPoint{X: 1, Y: 1}, GridPoint{X: 9, Y: 9})

	assert.True(t, m.At(GridPoint{X: 1, Y: 1}), "original mask must not change")
	assert.False(t, blocked.At(GridPoint{X: 1, Y: 1}))
	assert.True(t, blocked.At(GridPoint{X: 0, Y: 1}))

	_, err := blocked.Lookup(GridPoint{X: -1, Y: 0})
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	assert.Panics(t, func() { blocked.At(GridPoint{X: 3, Y: 0}) })

	raster, err := MaskFromRaster([][]int{{0, 1}, {2, 0}}, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]bool{{true, false}, {false, true}}, raster.Rows())
}

func TestForecastValidate(t *testing.T) {
	grid := GridMapping{Origin: GeoCoordinate{Lat: 54, Lon: 18}, LatStep: 0.1, LonStep: 0.1, LatCount: 2, LonCount: 3}

	f, err := NewForecast(grid, UniformWindField(2, 3, WindVector{U: 1}), nil, timeZero, "test")
	require.NoError(t, err)
	assert.True(t, f.Mask.At(GridPoint{X: 1, Y: 2}))

	_, err = NewForecast(grid, UniformWindField(3, 2, WindVector{}), nil, timeZero, "test")
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = f.WithMask(AllNavigable(2, 2))
	assert.ErrorIs(t, err, ErrInvalidGrid)
}
