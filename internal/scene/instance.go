// Package scene holds the evolving scene state during generation: the
// room, the performer start pose, every placed instance, and the label
// repository features use to reference each other.
package scene

import (
	"github.com/google/uuid"

	"github.com/evalhouse/scenegen/internal/geom"
)

// Side names one edge of a platform, looking down at the floor plan.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideFront Side = "front"
	SideBack  Side = "back"
)

// Gap records where along one edge of a platform's lip a ramp attachment
// interrupts the lip, as fractions of that edge's length.
type Gap struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Lips describes which edges of a platform carry a raised lip, and the
// gaps ramps have cut into them.
type Lips struct {
	Front bool           `yaml:"front"`
	Back  bool           `yaml:"back"`
	Left  bool           `yaml:"left"`
	Right bool           `yaml:"right"`
	Gaps  map[Side][]Gap `yaml:"gaps,omitempty"`
}

// HasSide reports whether the lip is present on the given edge.
func (l Lips) HasSide(side Side) bool {
	switch side {
	case SideFront:
		return l.Front
	case SideBack:
		return l.Back
	case SideLeft:
		return l.Left
	case SideRight:
		return l.Right
	}
	return false
}

// MoveSegment is one scheduled linear movement, in simulation steps,
// inclusive on both ends.
type MoveSegment struct {
	StepBegin int       `yaml:"step_begin"`
	StepEnd   int       `yaml:"step_end"`
	Vector    geom.Vec3 `yaml:"vector"`
}

// RotateSegment is one scheduled rotation, in degrees per step.
type RotateSegment struct {
	StepBegin int       `yaml:"step_begin"`
	StepEnd   int       `yaml:"step_end"`
	Vector    geom.Vec3 `yaml:"vector"`
}

// ForceSegment is one scheduled applied force.
type ForceSegment struct {
	StepBegin int       `yaml:"step_begin"`
	StepEnd   int       `yaml:"step_end"`
	Vector    geom.Vec3 `yaml:"vector"`
	Impulse   bool      `yaml:"impulse,omitempty"`
}

// Debug carries generation metadata that never reaches the renderer but
// drives cross-feature logic (dependent repositioning, bounds
// exemptions) and diagnosis of failed configurations.
type Debug struct {
	PositionedBy      string         `yaml:"positioned_by,omitempty"`
	RandomPosition    bool           `yaml:"random_position,omitempty"`
	IgnoreBounds      bool           `yaml:"ignore_bounds,omitempty"`
	AdjacentToWall    string         `yaml:"adjacent_to_wall,omitempty"`
	HeldObjectID      string         `yaml:"held_object_id,omitempty"`
	PositionedAboveID string         `yaml:"positioned_above_id,omitempty"`
	MoveToPosition    *geom.Vec3     `yaml:"move_to_position,omitempty"`
	MoveToPositionBy  int            `yaml:"move_to_position_by,omitempty"`
	Gaps              map[Side][]Gap `yaml:"gaps,omitempty"`
}

// Instance is one fully resolved scene object.
type Instance struct {
	ID        string     `yaml:"id"`
	Feature   string     `yaml:"feature"`
	Shape     string     `yaml:"shape"`
	Material  string     `yaml:"material,omitempty"`
	ColorTags []string   `yaml:"color_tags,omitempty"`
	Position  geom.Vec3  `yaml:"position"`
	RotationY float64    `yaml:"rotation_y"`
	Scale     geom.Vec3  `yaml:"scale"`
	Offset    geom.Vec3  `yaml:"offset,omitempty"`
	StandingY float64    `yaml:"standing_y,omitempty"`
	Mass      float64    `yaml:"mass,omitempty"`
	Kinematic bool       `yaml:"kinematic,omitempty"`
	Structure bool       `yaml:"structure,omitempty"`
	// TogglePhysicsStep turns physics on for a held object at the given
	// step. Zero means the object is never released.
	TogglePhysicsStep int         `yaml:"toggle_physics_step,omitempty"`
	Lips              *Lips       `yaml:"lips,omitempty"`
	Bounds            geom.Bounds `yaml:"-"`

	Moves   []MoveSegment   `yaml:"moves,omitempty"`
	Rotates []RotateSegment `yaml:"rotates,omitempty"`
	Forces  []ForceSegment  `yaml:"forces,omitempty"`

	Debug Debug `yaml:"debug,omitempty"`
}

// NewInstance creates an instance with a fresh ID for the given feature
// type and shape.
func NewInstance(feature, shape string) *Instance {
	return &Instance{
		ID:      shape + "_" + uuid.NewString(),
		Feature: feature,
		Shape:   shape,
	}
}

// RecomputeBounds rebuilds the instance's footprint from its current
// geometry. Call after any reposition.
func (inst *Instance) RecomputeBounds() {
	dimensions := geom.Vec3{
		X: inst.Scale.X,
		Y: inst.Scale.Y,
		Z: inst.Scale.Z,
	}
	inst.Bounds = geom.CreateBounds(
		dimensions, inst.Offset, inst.Position, inst.RotationY, inst.StandingY)
}

// Clone returns a deep copy of the instance. Mutable fields (schedule
// segments, bounds corners, debug pointers) are copied so the clone can
// restore the original after a discarded mutation.
func (inst *Instance) Clone() *Instance {
	c := *inst
	c.Moves = append([]MoveSegment(nil), inst.Moves...)
	c.Rotates = append([]RotateSegment(nil), inst.Rotates...)
	c.Forces = append([]ForceSegment(nil), inst.Forces...)
	c.Bounds.BoxXZ = append([]geom.Vec3(nil), inst.Bounds.BoxXZ...)
	if inst.Debug.MoveToPosition != nil {
		p := *inst.Debug.MoveToPosition
		c.Debug.MoveToPosition = &p
	}
	if inst.Lips != nil {
		l := *inst.Lips
		c.Lips = &l
	}
	return &c
}

// MovementEndStep returns the last step at which this instance moves or
// rotates, or -1 if it never does.
func (inst *Instance) MovementEndStep() int {
	last := -1
	for _, m := range inst.Moves {
		if m.StepEnd > last {
			last = m.StepEnd
		}
	}
	for _, r := range inst.Rotates {
		if r.StepEnd > last {
			last = r.StepEnd
		}
	}
	return last
}
