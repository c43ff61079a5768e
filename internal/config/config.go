// Package config defines the YAML scene definition format and its loader.
// Every numeric knob is a vary field, so a single definition describes a
// family of scenes and each generation run samples one member.
package config

import (
	"math/rand"

	"github.com/evalhouse/scenegen/internal/vary"
)

// Definition is a full scene definition file.
type Definition struct {
	Name             string                  `yaml:"name"`
	Room             RoomConfig              `yaml:"room"`
	Performer        PerformerConfig         `yaml:"performer"`
	LastStep         int                     `yaml:"last_step"`
	Walls            []WallConfig            `yaml:"walls"`
	Platforms        []PlatformConfig        `yaml:"platforms"`
	Ramps            []RampConfig            `yaml:"ramps"`
	LOccluders       []LOccluderConfig       `yaml:"l_occluders"`
	Doors            []DoorConfig            `yaml:"doors"`
	Holes            []FloorAreaConfig       `yaml:"holes"`
	Lava             []FloorAreaConfig       `yaml:"lava"`
	FloorMaterials   []FloorMaterialConfig   `yaml:"floor_materials"`
	PartitionFloor   *PartitionFloorConfig   `yaml:"partition_floor"`
	TubeOccluders    []TubeOccluderConfig    `yaml:"tube_occluders"`
	NotchedOccluders []NotchedOccluderConfig `yaml:"notched_occluders"`
	Droppers         []DropperConfig         `yaml:"droppers"`
	Throwers         []ThrowerConfig         `yaml:"throwers"`
	Placers          []PlacerConfig          `yaml:"placers"`
	Turntables       []TurntableConfig       `yaml:"turntables"`
}

// RoomConfig sets the room box. Unset axes fall back to the defaults.
type RoomConfig struct {
	Dimensions vary.Vec `yaml:"dimensions"`
}

// PerformerConfig pins the performer start pose. Unset fields default to
// the room origin facing forward.
type PerformerConfig struct {
	Position  vary.Vec   `yaml:"position"`
	RotationY vary.Float `yaml:"rotation_y"`
}

// Common carries the fields shared by every feature request.
type Common struct {
	Num    vary.Int `yaml:"num"`
	Labels []string `yaml:"labels"`
}

// Count resolves the number of copies to place, defaulting to one.
func (c Common) Count(rng *rand.Rand) int {
	if !c.Num.IsSet() {
		return 1
	}
	return c.Num.Resolve(rng)
}

// CommonLabels exposes the configured labels to the placement engine.
func (c Common) CommonLabels() []string { return c.Labels }

// WallConfig describes an interior wall segment.
type WallConfig struct {
	Common    `yaml:",inline"`
	Position  vary.Vec    `yaml:"position"`
	RotationY vary.Float  `yaml:"rotation_y"`
	Width     vary.Float  `yaml:"width"`
	Height    vary.Float  `yaml:"height"`
	Thickness vary.Float  `yaml:"thickness"`
	Material  vary.String `yaml:"material"`
	// SameMaterialAsRoom forces the wall to match the room walls so it
	// reads as part of the architecture.
	SameMaterialAsRoom bool `yaml:"same_material_as_room"`
}

// LipsConfig enables walkway lips on platform edges.
type LipsConfig struct {
	Front bool `yaml:"front"`
	Back  bool `yaml:"back"`
	Left  bool `yaml:"left"`
	Right bool `yaml:"right"`
}

// Enabled reports whether any lip side is on.
func (l LipsConfig) Enabled() bool {
	return l.Front || l.Back || l.Left || l.Right
}

// PlatformConfig describes a platform, optionally with attached ramps,
// a platform underneath, and wall snapping.
type PlatformConfig struct {
	Common    `yaml:",inline"`
	Position  vary.Vec    `yaml:"position"`
	RotationY vary.Float  `yaml:"rotation_y"`
	Scale     vary.Vec    `yaml:"scale"`
	Material  vary.String `yaml:"material"`
	Lips      LipsConfig  `yaml:"lips"`

	AttachedRamps                   vary.Int `yaml:"attached_ramps"`
	PlatformUnderneath              bool     `yaml:"platform_underneath"`
	PlatformUnderneathAttachedRamps vary.Int `yaml:"platform_underneath_attached_ramps"`
	// LongWithTwoRamps stretches the platform wall to wall and puts one
	// ramp on each short edge, splitting the room.
	LongWithTwoRamps bool `yaml:"long_with_two_ramps"`
	// AdjacentToWall snaps the platform against named room walls
	// (left, right, front, back, or corners like back_left).
	AdjacentToWall []string `yaml:"adjacent_to_wall"`
	// AutoAdjust shrinks platforms that would poke through the ceiling
	// instead of failing the attempt.
	AutoAdjust bool `yaml:"auto_adjust"`
}

// RampConfig describes a free-standing ramp.
type RampConfig struct {
	Common    `yaml:",inline"`
	Position  vary.Vec    `yaml:"position"`
	RotationY vary.Float  `yaml:"rotation_y"`
	Angle     vary.Float  `yaml:"angle"`
	Width     vary.Float  `yaml:"width"`
	Length    vary.Float  `yaml:"length"`
	Material  vary.String `yaml:"material"`
}

// LOccluderConfig describes an L-shaped occluder made of two boxes.
type LOccluderConfig struct {
	Common    `yaml:",inline"`
	Position  vary.Vec    `yaml:"position"`
	RotationY vary.Float  `yaml:"rotation_y"`
	Scale     vary.Vec    `yaml:"scale"`
	Material  vary.String `yaml:"material"`
}

// DoorConfig describes a doorway: door panel plus flanking wall sections.
type DoorConfig struct {
	Common     `yaml:",inline"`
	Position   vary.Vec    `yaml:"position"`
	RotationY  vary.Float  `yaml:"rotation_y"`
	WallScaleX vary.Float  `yaml:"wall_scale_x"`
	WallScaleY vary.Float  `yaml:"wall_scale_y"`
	Material   vary.String `yaml:"material"`
}

// FloorAreaConfig places unit floor cells (holes or lava). When the
// position is unset each cell is sampled on the floor grid.
type FloorAreaConfig struct {
	Common    `yaml:",inline"`
	PositionX vary.Int `yaml:"position_x"`
	PositionZ vary.Int `yaml:"position_z"`
}

// FloorMaterialConfig retextures a single floor cell.
type FloorMaterialConfig struct {
	Common    `yaml:",inline"`
	Material  vary.String `yaml:"material"`
	PositionX vary.Int    `yaml:"position_x"`
	PositionZ vary.Int    `yaml:"position_z"`
}

// TubeOccluderConfig describes a room-height tube that drops over a spot
// and later lifts away.
type TubeOccluderConfig struct {
	Common    `yaml:",inline"`
	PositionX vary.Float `yaml:"position_x"`
	PositionZ vary.Float `yaml:"position_z"`
	Radius    vary.Float `yaml:"radius"`
	DownStep  vary.Int   `yaml:"down_step"`
	UpStep    vary.Int   `yaml:"up_step"`
	// DownAfter and UpAfter derive the steps from the end of the
	// labeled objects' movement instead of explicit numbers.
	DownAfter []string    `yaml:"down_after"`
	UpAfter   []string    `yaml:"up_after"`
	Material  vary.String `yaml:"material"`
}

// NotchedOccluderConfig describes a wall-to-wall occluder with a notch
// cut into its bottom edge. Like a tube occluder it parks above the
// ceiling, drops over the room, and optionally lifts away again.
type NotchedOccluderConfig struct {
	Common      `yaml:",inline"`
	Height      vary.Float  `yaml:"height"`
	Material    vary.String `yaml:"material"`
	PositionZ   vary.Float  `yaml:"position_z"`
	DownStep    vary.Int    `yaml:"down_step"`
	UpStep      vary.Int    `yaml:"up_step"`
	NotchHeight vary.Float  `yaml:"notch_height"`
	NotchWidth  vary.Float  `yaml:"notch_width"`
}

// PartitionFloorConfig raises floor sections growing out of the left and
// right walls. Each half is the fraction of its half-room the section
// covers along X; zero leaves that side flat.
type PartitionFloorConfig struct {
	LeftHalf  vary.Float `yaml:"left_half"`
	RightHalf vary.Float `yaml:"right_half"`
}

// ProjectileConfig describes the object a device releases. Either a
// shape is sampled or an existing labeled object is reused.
type ProjectileConfig struct {
	Shape     vary.String `yaml:"shape"`
	Scale     vary.Float  `yaml:"scale"`
	Material  vary.String `yaml:"material"`
	UseLabels []string    `yaml:"labels"`
	// Empty skips the projectile entirely and leaves a bare device.
	Empty bool `yaml:"empty"`
}

// DropperConfig describes a ceiling device that releases a projectile.
type DropperConfig struct {
	Common     `yaml:",inline"`
	PositionX  vary.Float       `yaml:"position_x"`
	PositionZ  vary.Float       `yaml:"position_z"`
	DropStep   vary.Int         `yaml:"drop_step"`
	Projectile ProjectileConfig `yaml:"projectile"`
}

// ThrowerConfig describes a wall-embedded tube that launches a
// projectile into the room.
type ThrowerConfig struct {
	Common       `yaml:",inline"`
	Wall         vary.String      `yaml:"wall"`
	WallPosition vary.Float       `yaml:"wall_position"`
	Height       vary.Float       `yaml:"height"`
	Rotation     vary.Float       `yaml:"rotation"`
	ThrowStep    vary.Int         `yaml:"throw_step"`
	ThrowForce   vary.Float       `yaml:"throw_force"`
	Projectile   ProjectileConfig `yaml:"projectile"`
	// StopPosition asks the engine to pick the force so the projectile
	// comes to rest at this spot. Incompatible with an explicit force.
	StopPositionX vary.Float `yaml:"stop_position_x"`
	StopPositionZ vary.Float `yaml:"stop_position_z"`
	// PassivePhysics switches to lobbed throws with an upward component.
	PassivePhysics bool `yaml:"passive_physics"`
}

// PlacerConfig describes a ceiling pole that lowers, releases, or picks
// up and moves an object.
type PlacerConfig struct {
	Common         `yaml:",inline"`
	ActivationStep vary.Int `yaml:"activation_step"`
	// ActivateAfter delays activation until every labeled object has
	// finished its scripted movement.
	ActivateAfter []string `yaml:"activate_after"`

	PlacedObject         ProjectileConfig `yaml:"placed_object"`
	PlacedObjectPosition vary.Vec         `yaml:"placed_object_position"`
	PlacedObjectRotation vary.Float       `yaml:"placed_object_rotation"`
	// PlacedObjectAbove centers the drop over a labeled object instead
	// of a sampled position.
	PlacedObjectAbove []string   `yaml:"placed_object_above"`
	EndHeight         vary.Float `yaml:"end_height"`

	// PickupObject reverses the motion: descend empty, grab, carry up.
	PickupObject bool `yaml:"pickup_object"`
	// MoveObject carries the object sideways to an end position.
	MoveObject            bool       `yaml:"move_object"`
	MoveObjectEndPosition vary.Vec   `yaml:"move_object_end_position"`
	MoveObjectY           vary.Float `yaml:"move_object_y"`
}

// TurntableConfig describes a rotating cylinder cog.
type TurntableConfig struct {
	Common    `yaml:",inline"`
	PositionX vary.Float  `yaml:"position_x"`
	PositionZ vary.Float  `yaml:"position_z"`
	PositionY vary.Float  `yaml:"position_y"`
	Radius    vary.Float  `yaml:"radius"`
	Height    vary.Float  `yaml:"height"`
	Material  vary.String `yaml:"material"`

	StepBegin vary.Int   `yaml:"movement_step_begin"`
	StepEnd   vary.Int   `yaml:"movement_step_end"`
	RotationY vary.Float `yaml:"movement_rotation_y"`
	// EndAfterRotation replaces an explicit end step with a total sweep
	// in degrees. Only multiples of the per-step rotation land exactly.
	EndAfterRotation vary.Float `yaml:"end_after_rotation"`
}
