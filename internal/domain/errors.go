package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfCoverage reports a coordinate that maps outside the forecast grid.
	ErrOutOfCoverage = errors.New("forecast unavailable for requested location")
	// ErrDataUnavailable reports that a forecast provider could not deliver a snapshot.
	ErrDataUnavailable = errors.New("forecast data unavailable")
	// ErrUnknownVessel reports a vessel name no repository knows about.
	ErrUnknownVessel = errors.New("unknown vessel")
	// ErrInvalidGrid reports inconsistent grid extents, steps or array shapes.
	ErrInvalidGrid = errors.New("invalid grid")
	// ErrInvalidVessel reports a vessel profile that cannot drive a search.
	ErrInvalidVessel = errors.New("invalid vessel profile")
	// ErrNegativeCost reports an edge priced below zero by a cost model.
	ErrNegativeCost = errors.New("negative edge cost")
	// ErrIndexOutOfBounds is the sentinel wrapped by IndexOutOfBoundsError.
	ErrIndexOutOfBounds = errors.New("grid index out of bounds")
)

// IndexOutOfBoundsError is raised (as a panic) when a grid array is indexed
// outside its declared extents. It signals a bug in the caller, never bad input.
type IndexOutOfBoundsError struct {
	Grid     string
	Point    GridPoint
	LatCount int
	LonCount int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: point %s outside %dx%d grid", e.Grid, e.Point, e.LatCount, e.LonCount)
}

func (e *IndexOutOfBoundsError) Unwrap() error { return ErrIndexOutOfBounds }
