package features

import (
	"math"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

// lOccluderBuilder produces an L-shaped occluder as two boxes: a front
// section and a side section tucked behind one of its ends. Both pieces
// must independently pass bounds validation.
type lOccluderBuilder struct{}

func init() { Register(&lOccluderBuilder{}) }

func (*lOccluderBuilder) Type() string { return "l_occluders" }

func (*lOccluderBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.LOccluderConfig)
	if !ok {
		return nil, Configf("l_occluders: unexpected source type %T", source)
	}
	return cfg, nil
}

func (b *lOccluderBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.LOccluderConfig)
	rng := sess.RNG
	room := sess.Scene.RoomDimensions

	scale := cfg.Scale.Resolve(rng)
	if !cfg.Scale.IsSet() {
		scale = geom.Vec3{X: 1, Y: 1, Z: 1}
	}
	scale.Y = math.Min(scale.Y, room.Y)

	rotationY := cfg.RotationY.Resolve(rng)
	if !cfg.RotationY.IsSet() {
		rotationY = geom.ValidRotations[rng.Intn(len(geom.ValidRotations))]
	}
	position := randomFloorPosition(rng, room)
	if cfg.Position.IsSet() {
		position = cfg.Position.Resolve(rng)
	}

	mat, err := catalog.ResolveMaterial(rng, cfg.Material.Choices(), catalog.RoomWallMaterials, "")
	if err != nil {
		return nil, Configf("l_occluders: %v", err)
	}

	frontDepth := scale.Z / 2
	sideWidth := scale.X / 2

	front := scene.NewInstance("l_occluders", "cube")
	front.Material = mat.ID
	front.ColorTags = mat.Colors
	front.Scale = geom.Vec3{X: scale.X, Y: scale.Y, Z: frontDepth}
	front.RotationY = rotationY
	front.Position = geom.Vec3{X: position.X, Y: scale.Y / 2, Z: position.Z}
	front.StandingY = scale.Y / 2
	front.Kinematic = true
	front.Structure = true
	front.RecomputeBounds()

	// The side section sits behind the front's end, forming the L. Its
	// pre-rotation offset is rotated about the front's center so the
	// compound turns as one piece.
	sideX0 := position.X + scale.X/2 - sideWidth/2
	sideZ0 := position.Z + frontDepth/2 + frontDepth/2
	sideX, sideZ := geom.RotatePointAround(sideX0, sideZ0, position.X, position.Z, rotationY)

	side := scene.NewInstance("l_occluders", "cube")
	side.Material = mat.ID
	side.ColorTags = mat.Colors
	side.Scale = geom.Vec3{X: sideWidth, Y: scale.Y, Z: scale.Z - frontDepth}
	side.RotationY = rotationY
	side.Position = geom.Vec3{X: sideX, Y: scale.Y / 2, Z: sideZ}
	side.StandingY = scale.Y / 2
	side.Kinematic = true
	side.Structure = true
	side.RecomputeBounds()

	return []*scene.Instance{front, side}, nil
}
