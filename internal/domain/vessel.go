package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

const secondsPerHour = 3600.0

// CostModel prices a single leg of travelDistance meters given the wind in
// the vessel's travel frame (see WindVector.ToTravelFrame). +Inf means the
// vessel cannot make the leg at all.
type CostModel interface {
	TravelCost(distanceMeters float64, relativeWind WindVector) float64
}

// CostFunc adapts a plain function to CostModel.
type CostFunc func(distanceMeters float64, relativeWind WindVector) float64

func (f CostFunc) TravelCost(distanceMeters float64, relativeWind WindVector) float64 {
	return f(distanceMeters, relativeWind)
}

// VesselProfile describes the vessel a route is computed for. The average
// speed and hourly cost only feed the search heuristic; the actual edge
// prices come from Model.
type VesselProfile struct {
	Name               string
	AverageSpeed       float64 // m/s
	AverageCostPerHour float64
	Model              CostModel
}

func (v VesselProfile) Validate() error {
	if v.Model == nil {
		return fmt.Errorf("%w: %q has no cost model", ErrInvalidVessel, v.Name)
	}
	if !(v.AverageSpeed > 0) || math.IsInf(v.AverageSpeed, 0) {
		return fmt.Errorf("%w: %q average speed must be positive, got %g", ErrInvalidVessel, v.Name, v.AverageSpeed)
	}
	if !(v.AverageCostPerHour >= 0) || math.IsInf(v.AverageCostPerHour, 0) {
		return fmt.Errorf("%w: %q average cost per hour must be non-negative, got %g", ErrInvalidVessel, v.Name, v.AverageCostPerHour)
	}
	return nil
}

// EstimateCost is the straight-line, average-performance cost of covering
// distanceMeters.
func (v VesselProfile) EstimateCost(distanceMeters float64) float64 {
	return distanceMeters / v.AverageSpeed * v.AverageCostPerHour / secondsPerHour
}

// DistanceModel prices a leg by its length alone and ignores the wind.
type DistanceModel struct{}

func (DistanceModel) TravelCost(distanceMeters float64, _ WindVector) float64 {
	return distanceMeters
}

// MotorModel is a powered vessel whose speed through water is shifted by the
// along-track wind component scaled by Windage. Speed never drops below a
// quarter of CruiseSpeed.
type MotorModel struct {
	CruiseSpeed float64 // m/s
	Windage     float64 // m/s of speed per m/s of along-track wind
	CostPerHour float64
}

func (m MotorModel) TravelCost(distanceMeters float64, relativeWind WindVector) float64 {
	if distanceMeters == 0 {
		return 0
	}
	speed := m.CruiseSpeed + m.Windage*relativeWind.U
	if floor := m.CruiseSpeed / 4; speed < floor {
		speed = floor
	}
	if speed <= 0 {
		return math.Inf(1)
	}
	return distanceMeters / speed / secondsPerHour * m.CostPerHour
}

// PolarPoint is one sample of a sailing polar: the fraction of the vessel's
// wind-driven speed reached at a true wind angle (degrees off the bow).
type PolarPoint struct {
	AngleDeg float64
	Factor   float64
}

// DefaultPolar is a generic monohull polar.
var DefaultPolar = []PolarPoint{
	{AngleDeg: 45, Factor: 0.6},
	{AngleDeg: 60, Factor: 0.75},
	{AngleDeg: 90, Factor: 0.95},
	{AngleDeg: 110, Factor: 1.0},
	{AngleDeg: 135, Factor: 0.9},
	{AngleDeg: 180, Factor: 0.7},
}

// SailingPolar is a sailing vessel. Boat speed is WindRatio times the true
// wind speed, capped at MaxSpeed and scaled by the polar factor for the true
// wind angle. Headings inside the no-go zone can only be made under the
// auxiliary engine; without one they cost +Inf.
type SailingPolar struct {
	Polar       []PolarPoint
	WindRatio   float64
	MaxSpeed    float64 // m/s
	NoGoAngle   float64 // degrees off the bow
	AuxSpeed    float64 // m/s, 0 when the vessel has no engine
	CostPerHour float64
}

func (s SailingPolar) TravelCost(distanceMeters float64, relativeWind WindVector) float64 {
	if distanceMeters == 0 {
		return 0
	}

	speed := 0.0
	twa := TrueWindAngle(relativeWind)
	if twa >= s.NoGoAngle {
		speed = math.Min(relativeWind.Speed()*s.WindRatio, s.MaxSpeed) * s.factor(twa)
	}
	if speed < s.AuxSpeed {
		speed = s.AuxSpeed
	}
	if speed <= 0 {
		return math.Inf(1)
	}

	return distanceMeters / speed / secondsPerHour * s.CostPerHour
}

// factor interpolates the polar linearly; angles below the first sample use
// the first factor.
func (s SailingPolar) factor(twa float64) float64 {
	polar := s.Polar
	if len(polar) == 0 {
		polar = DefaultPolar
	}
	if twa <= polar[0].AngleDeg {
		return polar[0].Factor
	}
	for i := 1; i < len(polar); i++ {
		lo, hi := polar[i-1], polar[i]
		if twa <= hi.AngleDeg {
			t := (twa - lo.AngleDeg) / (hi.AngleDeg - lo.AngleDeg)
			return lo.Factor + t*(hi.Factor-lo.Factor)
		}
	}
	return polar[len(polar)-1].Factor
}

// TrueWindAngle returns the angle in degrees [0, 180] between the bow and the
// direction the wind is coming from, for a wind expressed in the travel
// frame. A pure head wind is 0, a pure tail wind 180. Calm air is reported as
// 180 so that it never falls into a no-go zone.
func TrueWindAngle(relativeWind WindVector) float64 {
	if relativeWind.U == 0 && relativeWind.V == 0 {
		return 180
	}
	towards := math.Abs(math.Atan2(relativeWind.V, relativeWind.U))
	return toDegrees(math.Pi - towards)
}

// DefaultVesselName is used when a request does not name a vessel.
const DefaultVesselName = "default"

// VesselKind selects the cost model a VesselSpec builds.
type VesselKind string

const (
	VesselSail     VesselKind = "sail"
	VesselMotor    VesselKind = "motor"
	VesselDistance VesselKind = "distance"
)

// VesselSpec is the serializable description of a vessel, as stored by the
// vessel repositories and seed files.
type VesselSpec struct {
	Name         string     `json:"name"`
	Kind         VesselKind `json:"kind"`
	AverageSpeed float64    `json:"average_speed_mps"`
	CostPerHour  float64    `json:"cost_per_hour"`
	MaxSpeed     float64    `json:"max_speed_mps,omitempty"`
	WindRatio    float64    `json:"wind_ratio,omitempty"`
	NoGoAngleDeg float64    `json:"no_go_angle_deg,omitempty"`
	AuxSpeed     float64    `json:"aux_speed_mps,omitempty"`
	Windage      float64    `json:"windage,omitempty"`
}

// Profile builds the VesselProfile described by s.
func (s VesselSpec) Profile() (VesselProfile, error) {
	var model CostModel
	switch s.Kind {
	case VesselSail:
		ratio := s.WindRatio
		if ratio == 0 {
			ratio = 0.6
		}
		maxSpeed := s.MaxSpeed
		if maxSpeed == 0 {
			maxSpeed = 2 * s.AverageSpeed
		}
		noGo := s.NoGoAngleDeg
		if noGo == 0 {
			noGo = 45
		}
		model = SailingPolar{
			Polar:       DefaultPolar,
			WindRatio:   ratio,
			MaxSpeed:    maxSpeed,
			NoGoAngle:   noGo,
			AuxSpeed:    s.AuxSpeed,
			CostPerHour: s.CostPerHour,
		}
	case VesselMotor:
		model = MotorModel{CruiseSpeed: s.AverageSpeed, Windage: s.Windage, CostPerHour: s.CostPerHour}
	case VesselDistance:
		model = DistanceModel{}
	default:
		return VesselProfile{}, fmt.Errorf("%w: %q has unsupported kind %q", ErrInvalidVessel, s.Name, s.Kind)
	}

	p := VesselProfile{
		Name:               s.Name,
		AverageSpeed:       s.AverageSpeed,
		AverageCostPerHour: s.CostPerHour,
		Model:              model,
	}
	if err := p.Validate(); err != nil {
		return VesselProfile{}, err
	}
	return p, nil
}

// SortVesselSpecs orders specs by name for stable listings.
func SortVesselSpecs(specs []VesselSpec) {
	slices.SortFunc(specs, func(a, b VesselSpec) int { return strings.Compare(a.Name, b.Name) })
}
