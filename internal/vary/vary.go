// Package vary implements randomizable configuration values. Every field
// of a feature definition can hold a literal, a closed list of
// alternatives, or a min/max range; resolving a value samples it fresh,
// which is what makes placement retries useful.
package vary

import (
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"
)

// NewSource returns the pseudo-random stream used by all resolution.
// A zero seed picks an arbitrary one.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}

// Float is a randomizable float64: unset, a literal, a list of choices,
// or a closed [min, max] range.
type Float struct {
	set     bool
	ranged  bool
	literal float64
	choices []float64
	min     float64
	max     float64
}

// Exactly returns a Float fixed to the given literal.
func Exactly(v float64) Float {
	return Float{set: true, literal: v}
}

// Between returns a Float sampled uniformly over [min, max].
func Between(min, max float64) Float {
	return Float{set: true, ranged: true, min: min, max: max}
}

// OneOf returns a Float sampled uniformly from the given alternatives.
func OneOf(choices ...float64) Float {
	return Float{set: true, choices: choices}
}

// IsSet reports whether the spec holds any value at all.
func (f Float) IsSet() bool {
	return f.set
}

// Resolve samples one concrete value. A single-element list always
// resolves to that element; an unset spec resolves to zero.
func (f Float) Resolve(rng *rand.Rand) float64 {
	switch {
	case !f.set:
		return 0
	case len(f.choices) == 1:
		return f.choices[0]
	case len(f.choices) > 1:
		return f.choices[rng.Intn(len(f.choices))]
	case f.ranged:
		if f.min >= f.max {
			return f.min
		}
		return f.min + rng.Float64()*(f.max-f.min)
	default:
		return f.literal
	}
}

// UnmarshalYAML accepts a scalar, a list of scalars, or a {min, max}
// mapping.
func (f *Float) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*f = Exactly(v)
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return err
		}
		if len(vs) == 0 {
			return fmt.Errorf("vary: empty list of alternatives")
		}
		*f = OneOf(vs...)
		return nil
	case yaml.MappingNode:
		var r struct {
			Min float64 `yaml:"min"`
			Max float64 `yaml:"max"`
		}
		if err := node.Decode(&r); err != nil {
			return err
		}
		*f = Between(r.Min, r.Max)
		return nil
	}
	return fmt.Errorf("vary: cannot parse value spec at line %d", node.Line)
}

// Int is a randomizable int. Ranges are inclusive on both ends.
type Int struct {
	set     bool
	ranged  bool
	literal int
	choices []int
	min     int
	max     int
}

// ExactlyInt returns an Int fixed to the given literal.
func ExactlyInt(v int) Int {
	return Int{set: true, literal: v}
}

// BetweenInt returns an Int sampled uniformly over [min, max], inclusive.
func BetweenInt(min, max int) Int {
	return Int{set: true, ranged: true, min: min, max: max}
}

// OneOfInt returns an Int sampled uniformly from the given alternatives.
func OneOfInt(choices ...int) Int {
	return Int{set: true, choices: choices}
}

// IsSet reports whether the spec holds any value at all.
func (i Int) IsSet() bool {
	return i.set
}

// Resolve samples one concrete value, or zero when unset.
func (i Int) Resolve(rng *rand.Rand) int {
	switch {
	case !i.set:
		return 0
	case len(i.choices) == 1:
		return i.choices[0]
	case len(i.choices) > 1:
		return i.choices[rng.Intn(len(i.choices))]
	case i.ranged:
		if i.min >= i.max {
			return i.min
		}
		return i.min + rng.Intn(i.max-i.min+1)
	default:
		return i.literal
	}
}

// UnmarshalYAML accepts a scalar, a list of scalars, or a {min, max}
// mapping.
func (i *Int) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v int
		if err := node.Decode(&v); err != nil {
			return err
		}
		*i = ExactlyInt(v)
		return nil
	case yaml.SequenceNode:
		var vs []int
		if err := node.Decode(&vs); err != nil {
			return err
		}
		if len(vs) == 0 {
			return fmt.Errorf("vary: empty list of alternatives")
		}
		*i = OneOfInt(vs...)
		return nil
	case yaml.MappingNode:
		var r struct {
			Min int `yaml:"min"`
			Max int `yaml:"max"`
		}
		if err := node.Decode(&r); err != nil {
			return err
		}
		*i = BetweenInt(r.Min, r.Max)
		return nil
	}
	return fmt.Errorf("vary: cannot parse value spec at line %d", node.Line)
}

// String is a randomizable string: a literal or a list of alternatives.
type String struct {
	set     bool
	choices []string
}

// ExactlyString returns a String fixed to the given literal.
func ExactlyString(v string) String {
	return String{set: true, choices: []string{v}}
}

// OneOfString returns a String sampled uniformly from the given
// alternatives.
func OneOfString(choices ...string) String {
	return String{set: true, choices: choices}
}

// IsSet reports whether the spec holds any value at all.
func (s String) IsSet() bool {
	return s.set && len(s.choices) > 0
}

// Choices returns all configured alternatives.
func (s String) Choices() []string {
	return s.choices
}

// Resolve samples one concrete value, or "" when unset.
func (s String) Resolve(rng *rand.Rand) string {
	if !s.IsSet() {
		return ""
	}
	if len(s.choices) == 1 {
		return s.choices[0]
	}
	return s.choices[rng.Intn(len(s.choices))]
}

// UnmarshalYAML accepts a scalar or a list of scalars.
func (s *String) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = ExactlyString(v)
		return nil
	case yaml.SequenceNode:
		var vs []string
		if err := node.Decode(&vs); err != nil {
			return err
		}
		if len(vs) == 0 {
			return fmt.Errorf("vary: empty list of alternatives")
		}
		*s = OneOfString(vs...)
		return nil
	}
	return fmt.Errorf("vary: cannot parse value spec at line %d", node.Line)
}

// Bool is a randomizable bool: unset, a literal, or a list of choices.
type Bool struct {
	set     bool
	choices []bool
}

// ExactlyBool returns a Bool fixed to the given literal.
func ExactlyBool(v bool) Bool {
	return Bool{set: true, choices: []bool{v}}
}

// IsSet reports whether the spec holds any value at all.
func (b Bool) IsSet() bool {
	return b.set && len(b.choices) > 0
}

// Resolve samples one concrete value, or false when unset.
func (b Bool) Resolve(rng *rand.Rand) bool {
	if !b.IsSet() {
		return false
	}
	if len(b.choices) == 1 {
		return b.choices[0]
	}
	return b.choices[rng.Intn(len(b.choices))]
}

// UnmarshalYAML accepts a scalar or a list of scalars.
func (b *Bool) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v bool
		if err := node.Decode(&v); err != nil {
			return err
		}
		*b = ExactlyBool(v)
		return nil
	case yaml.SequenceNode:
		var vs []bool
		if err := node.Decode(&vs); err != nil {
			return err
		}
		if len(vs) == 0 {
			return fmt.Errorf("vary: empty list of alternatives")
		}
		*b = Bool{set: true, choices: vs}
		return nil
	}
	return fmt.Errorf("vary: cannot parse value spec at line %d", node.Line)
}
