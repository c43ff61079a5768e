// Package geom provides the 2-D footprint model used for all placement
// collision checks. It contains no external dependencies to keep the
// geometry pure and testable.
package geom

import "math"

// Performer agent dimensions. The performer occupies a square column used
// as an implicit obstacle during every placement validation.
const (
	PerformerHalfWidth = 0.27
	PerformerWidth     = PerformerHalfWidth * 2.0
	PerformerHeight    = PerformerHalfWidth * 4
)

// ValidRotations are the allowed yaws for randomly rotated structures.
var ValidRotations = []float64{0, 45, 90, 135, 180, 225, 270, 315}

// DefaultRoomDimensions is used whenever a scene leaves a room dimension
// unset.
var DefaultRoomDimensions = Vec3{X: 10, Y: 3, Z: 10}

// Vec3 is a point or extent in room space. Y is up.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// DistanceXZ returns the horizontal distance between two points, ignoring
// height.
func (v Vec3) DistanceXZ(o Vec3) float64 {
	return math.Hypot(v.X-o.X, v.Z-o.Z)
}

// RotatePointAround rotates the point (x, z) around the center (cx, cz) by
// the given Y rotation in degrees and returns the new coordinates. The
// handedness matches the simulation environment's clockwise Y rotation; do
// not "fix" the signs without validating against reference scenes.
func RotatePointAround(x, z, cx, cz, degrees float64) (float64, float64) {
	radians := degrees * math.Pi / 180.0
	sin, cos := math.Sin(radians), math.Cos(radians)
	rx := (x-cx)*cos - (z-cz)*sin + cx
	rz := -(x-cx)*sin - (z-cz)*cos + cz
	return rx, rz
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
