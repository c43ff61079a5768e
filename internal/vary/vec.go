package vary

import (
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/evalhouse/scenegen/internal/geom"
)

// Vec is a randomizable 3-D vector. It accepts per-axis specs, a single
// scalar applied to every axis, or a single scalar range whose one sample
// is reused for all three axes (preserving aspect ratio, e.g. for ball
// scales).
type Vec struct {
	set          bool
	uniform      Float
	x, y, z      Float
	alternatives []Vec
}

// VecExactly returns a Vec fixed to the given vector.
func VecExactly(v geom.Vec3) Vec {
	return Vec{set: true, x: Exactly(v.X), y: Exactly(v.Y), z: Exactly(v.Z)}
}

// VecPerAxis returns a Vec with independent per-axis specs.
func VecPerAxis(x, y, z Float) Vec {
	return Vec{set: true, x: x, y: y, z: z}
}

// VecUniform returns a Vec whose single sample is reused for all axes.
func VecUniform(spec Float) Vec {
	return Vec{set: true, uniform: spec}
}

// IsSet reports whether the spec holds any value at all.
func (v Vec) IsSet() bool {
	return v.set
}

// Resolve samples one concrete vector. Axes resolve independently unless
// the spec was a single scalar range.
func (v Vec) Resolve(rng *rand.Rand) geom.Vec3 {
	if !v.set {
		return geom.Vec3{}
	}
	if len(v.alternatives) > 0 {
		return v.alternatives[rng.Intn(len(v.alternatives))].Resolve(rng)
	}
	if v.uniform.IsSet() {
		sample := v.uniform.Resolve(rng)
		return geom.Vec3{X: sample, Y: sample, Z: sample}
	}
	return geom.Vec3{
		X: v.x.Resolve(rng),
		Y: v.y.Resolve(rng),
		Z: v.z.Resolve(rng),
	}
}

// UnmarshalYAML accepts a scalar, a {min, max} mapping (uniform sample
// shared by all axes), an {x, y, z} mapping of per-axis specs, or a list
// of any of those.
func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s float64
		if err := node.Decode(&s); err != nil {
			return err
		}
		*v = VecExactly(geom.Vec3{X: s, Y: s, Z: s})
		return nil
	case yaml.MappingNode:
		if mappingHasKey(node, "min") || mappingHasKey(node, "max") {
			var spec Float
			if err := spec.UnmarshalYAML(node); err != nil {
				return err
			}
			*v = VecUniform(spec)
			return nil
		}
		var axes struct {
			X Float `yaml:"x"`
			Y Float `yaml:"y"`
			Z Float `yaml:"z"`
		}
		if err := node.Decode(&axes); err != nil {
			return err
		}
		*v = VecPerAxis(axes.X, axes.Y, axes.Z)
		return nil
	case yaml.SequenceNode:
		// A list of vector alternatives: sample one at resolve time by
		// re-parsing eagerly into fixed alternatives.
		var alternatives []Vec
		if err := node.Decode(&alternatives); err != nil {
			return err
		}
		if len(alternatives) == 0 {
			return fmt.Errorf("vary: empty list of vector alternatives")
		}
		*v = Vec{set: true, alternatives: alternatives}
		return nil
	}
	return fmt.Errorf("vary: cannot parse vector spec at line %d", node.Line)
}

func mappingHasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}
