package radar

import "math"

// Vec3 is a Cartesian vector in the radar frame: +X along boresight,
// +Y to the left, +Z up. Units are meters (position) or m/s (velocity).
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Dot returns the dot product with o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Scale returns the vector scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Target is a point scatterer supplied per pulse simulation.
type Target struct {
	Position Vec3 `yaml:"position" json:"position"`
	Velocity Vec3 `yaml:"velocity" json:"velocity"`
}

// Range returns the true slant range |position| in meters.
func (t Target) Range() float64 { return t.Position.Norm() }

// RadialVelocity returns the velocity component along the line of sight,
// positive for a receding target. Zero for a target at the origin.
func (t Target) RadialVelocity() float64 {
	r := t.Range()
	if r == 0 {
		return 0
	}
	return t.Velocity.Dot(t.Position.Scale(1 / r))
}

// Azimuth returns the bearing from boresight in degrees, positive toward +Y.
func (t Target) Azimuth() float64 {
	return math.Atan2(t.Position.Y, t.Position.X) * 180 / math.Pi
}

// Elevation returns the angle above the horizontal plane in degrees.
func (t Target) Elevation() float64 {
	h := math.Hypot(t.Position.X, t.Position.Y)
	return math.Atan2(t.Position.Z, h) * 180 / math.Pi
}

// Doppler returns the two-way Doppler shift in Hz for the given carrier
// start frequency.
func (t Target) Doppler(startFreq float64) float64 {
	return 2 * t.RadialVelocity() * startFreq / SpeedOfLight
}
