package catalog

import (
	"sort"

	"github.com/evalhouse/scenegen/internal/geom"
)

// Soccer ball scale limits. A single shared range keeps the ball's X/Y/Z
// scales equal.
const (
	SoccerBallScaleMin = 1.0
	SoccerBallScaleMax = 3.0
)

// shapeScales maps each projectile/placeable shape to its plausible
// default scales, preserving aspect ratio.
var shapeScales = map[string][]geom.Vec3{
	"ball":                  {{X: 0.25, Y: 0.25, Z: 0.25}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: 1, Y: 1, Z: 1}},
	"soccer_ball":           nil, // special-cased: one shared min/max range
	"cube":                  {{X: 0.5, Y: 0.5, Z: 0.5}, {X: 1, Y: 1, Z: 1}},
	"cylinder":              {{X: 0.5, Y: 1, Z: 0.5}, {X: 1, Y: 2, Z: 1}},
	"crate_1":               {{X: 1, Y: 1, Z: 1}},
	"crate_2":               {{X: 1, Y: 1, Z: 1}},
	"block_blank_wood_cube": {{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}},
	"bowl_3":                {{X: 1, Y: 1, Z: 1}},
	"duck_on_wheels":        {{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}},
}

// rollable shapes may be used with droppers and throwers; containers only
// with placers.
var (
	rollableShapes  = []string{"ball", "soccer_ball", "cylinder", "duck_on_wheels"}
	fallDownShapes  = []string{"cube", "block_blank_wood_cube"}
	containerShapes = []string{"crate_1", "crate_2", "bowl_3"}
)

// DropperShapes lists every shape valid as a dropper projectile, sorted.
func DropperShapes() []string {
	return sortedUnion(rollableShapes, fallDownShapes)
}

// ThrowerShapes lists every shape valid as a thrower projectile, sorted.
func ThrowerShapes() []string {
	return sortedUnion(rollableShapes, nil)
}

// PlacerShapes lists every shape a placer can hold, sorted.
func PlacerShapes() []string {
	return sortedUnion(sortedUnion(rollableShapes, fallDownShapes), containerShapes)
}

// DefaultScales returns the plausible default scales for the shape, or
// nil for unknown shapes. The soccer ball returns nil too; use the
// shared scale range constants instead.
func DefaultScales(shape string) []geom.Vec3 {
	return shapeScales[shape]
}

// KnownShape reports whether the shape appears in the catalog.
func KnownShape(shape string) bool {
	_, ok := shapeScales[shape]
	return ok
}

func sortedUnion(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
