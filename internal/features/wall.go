package features

import (
	"math"
	"math/rand"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

const (
	wallDefaultThickness = 0.1
	wallWidthPercentMin  = 0.05
	wallWidthPercentMax  = 0.5
)

type wallBuilder struct{}

func init() { Register(&wallBuilder{}) }

func (*wallBuilder) Type() string { return "walls" }

func (*wallBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.WallConfig)
	if !ok {
		return nil, Configf("walls: unexpected source type %T", source)
	}
	return cfg, nil
}

func (b *wallBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.WallConfig)
	rng := sess.RNG
	room := sess.Scene.RoomDimensions
	maxRoomDim := math.Max(room.X, room.Z)

	rotationY := float64(rng.Intn(4) * 90)
	if cfg.RotationY.IsSet() {
		rotationY = cfg.RotationY.Resolve(rng)
	}
	width := cfg.Width.Resolve(rng)
	if !cfg.Width.IsSet() {
		min := maxRoomDim * wallWidthPercentMin
		max := maxRoomDim * wallWidthPercentMax
		width = min + rng.Float64()*(max-min)
	}
	height := cfg.Height.Resolve(rng)
	if !cfg.Height.IsSet() {
		height = room.Y
	}
	thickness := cfg.Thickness.Resolve(rng)
	if !cfg.Thickness.IsSet() {
		thickness = wallDefaultThickness
	}

	materialChoices := cfg.Material.Choices()
	if cfg.SameMaterialAsRoom && sess.Scene.RoomMaterial != "" {
		materialChoices = []string{sess.Scene.RoomMaterial}
	}
	mat, err := catalog.ResolveMaterial(rng, materialChoices, catalog.RoomWallMaterials, "")
	if err != nil {
		return nil, Configf("walls: %v", err)
	}

	position := randomFloorPosition(rng, room)
	if cfg.Position.IsSet() {
		position = cfg.Position.Resolve(rng)
	}

	wall := scene.NewInstance("walls", "cube")
	wall.Material = mat.ID
	wall.ColorTags = mat.Colors
	wall.Scale = geom.Vec3{X: width, Y: height, Z: thickness}
	wall.RotationY = rotationY
	wall.Position = geom.Vec3{X: position.X, Y: height/2 + position.Y, Z: position.Z}
	wall.StandingY = height / 2
	wall.Kinematic = true
	wall.Structure = true
	wall.RecomputeBounds()
	return []*scene.Instance{wall}, nil
}

// Valid adds the proximity rule: a wall fails when it runs parallel to an
// existing wall less than one performer width away, even without a
// literal intersection, since the agent could not pass between them.
func (b *wallBuilder) Valid(sess *Session, instances []*scene.Instance) bool {
	for _, inst := range instances {
		if wallTooClose(sess, inst) {
			return false
		}
	}
	return ValidAgainstScene(sess, instances)
}

// wallTooClose only checks walls at exact multiples of 90 degrees; for
// anything else the plain bounds intersection is the only rule.
func wallTooClose(sess *Session, wall *scene.Instance) bool {
	rotation := math.Mod(wall.RotationY, 360)
	if math.Mod(rotation, 90) != 0 {
		return false
	}
	horizontal := math.Mod(rotation, 180) == 0
	halfThickness := wall.Scale.Z / 2
	halfWidth := wall.Scale.X / 2

	for _, other := range sess.Scene.Labels.GetAll("walls") {
		otherRotation := math.Mod(other.RotationY, 360)
		if math.Mod(otherRotation, 90) != 0 {
			continue
		}
		if (math.Mod(otherRotation, 180) == 0) != horizontal {
			continue
		}
		var majorDelta, minorDelta float64
		if horizontal {
			majorDelta = math.Abs(wall.Position.Z - other.Position.Z)
			minorDelta = math.Abs(wall.Position.X - other.Position.X)
		} else {
			majorDelta = math.Abs(wall.Position.X - other.Position.X)
			minorDelta = math.Abs(wall.Position.Z - other.Position.Z)
		}
		adjacent := minorDelta - other.Scale.X/2 - halfWidth
		if adjacent > 0 {
			continue
		}
		across := majorDelta - other.Scale.Z/2 - halfThickness
		if across < geom.PerformerWidth {
			return true
		}
	}
	return false
}

// randomFloorPosition samples a point anywhere on the room floor.
func randomFloorPosition(rng *rand.Rand, room geom.Vec3) geom.Vec3 {
	return geom.Vec3{
		X: -room.X/2 + rng.Float64()*room.X,
		Z: -room.Z/2 + rng.Float64()*room.Z,
	}
}
