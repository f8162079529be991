package domain

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the radius of the spherical Earth model behind every
// distance and bearing in the system.
const EarthRadiusMeters = 6_371_000.0

// Immutable geographic coordinates in degrees.
type GeoCoordinate struct {
	Lat float64
	Lon float64
}

func (c GeoCoordinate) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.Lat, c.Lon)
}

// DistanceTo returns the great-circle distance in meters (haversine formula).
func (c GeoCoordinate) DistanceTo(o GeoCoordinate) float64 {
	lat1, lat2 := toRadians(c.Lat), toRadians(o.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(o.Lon - c.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}

// BearingTo returns the initial great-circle bearing towards o, clockwise
// from true north, in radians within [0, 2π).
func (c GeoCoordinate) BearingTo(o GeoCoordinate) float64 {
	lat1, lat2 := toRadians(c.Lat), toRadians(o.Lat)
	dLon := toRadians(o.Lon - c.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return NormalizeAngle(math.Atan2(y, x))
}

// NormalizeAngle maps an angle in radians onto [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a+2*math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
