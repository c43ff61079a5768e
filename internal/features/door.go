package features

import (
	"math"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

const (
	doorPanelWidth    = 0.85
	doorPanelHeight   = 2.0
	doorWallThickness = 0.1
	doorMinWallScaleX = 2.0
)

// doorBuilder produces a doorway: a door panel plus the wall sections
// flanking and topping it. The door and wall materials are kept distinct
// unless both were explicitly configured.
type doorBuilder struct{}

func init() { Register(&doorBuilder{}) }

func (*doorBuilder) Type() string { return "doors" }

func (*doorBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.DoorConfig)
	if !ok {
		return nil, Configf("doors: unexpected source type %T", source)
	}
	return cfg, nil
}

func (b *doorBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.DoorConfig)
	rng := sess.RNG
	room := sess.Scene.RoomDimensions

	rotationY := float64(rng.Intn(4) * 90)
	if cfg.RotationY.IsSet() {
		rotationY = cfg.RotationY.Resolve(rng)
	}
	position := randomFloorPosition(rng, room)
	if cfg.Position.IsSet() {
		position = cfg.Position.Resolve(rng)
	}

	spanLimit := room.X
	if math.Mod(rotationY, 180) != 0 {
		spanLimit = room.Z
	}
	wallScaleX := cfg.WallScaleX.Resolve(rng)
	if !cfg.WallScaleX.IsSet() {
		wallScaleX = uniformIn(rng, doorMinWallScaleX, spanLimit)
	}
	wallScaleY := cfg.WallScaleY.Resolve(rng)
	if !cfg.WallScaleY.IsSet() {
		wallScaleY = uniformIn(rng, doorPanelHeight, room.Y)
	}
	if wallScaleX < doorPanelWidth || wallScaleY < doorPanelHeight {
		return nil, Configf(
			"doors: wall scale %.2fx%.2f cannot contain a %gx%g door panel",
			wallScaleX, wallScaleY, doorPanelWidth, doorPanelHeight)
	}

	doorCatalog := append(append(
		append([]catalog.Material{}, catalog.MetalMaterials...),
		catalog.PlasticMaterials...), catalog.WoodMaterials...)

	doorMat, err := catalog.ResolveMaterial(rng, cfg.Material.Choices(), doorCatalog, "")
	if err != nil {
		return nil, Configf("doors: %v", err)
	}
	wallMat, err := catalog.ResolveMaterial(rng, nil, catalog.RoomWallMaterials, doorMat.ID)
	if err != nil {
		return nil, Configf("doors: %v", err)
	}

	door := scene.NewInstance("doors", "door_4")
	door.Material = doorMat.ID
	door.ColorTags = doorMat.Colors
	door.Scale = geom.Vec3{X: doorPanelWidth, Y: doorPanelHeight, Z: doorWallThickness}
	door.RotationY = rotationY
	door.Position = geom.Vec3{X: position.X, Y: doorPanelHeight / 2, Z: position.Z}
	door.StandingY = doorPanelHeight / 2
	door.Kinematic = true
	door.Structure = true
	door.RecomputeBounds()

	instances := []*scene.Instance{door}

	sideWidth := (wallScaleX - doorPanelWidth) / 2
	if sideWidth > 0 {
		offset := doorPanelWidth/2 + sideWidth/2
		instances = append(instances,
			doorWallSection(position, rotationY, -offset, 0,
				geom.Vec3{X: sideWidth, Y: wallScaleY, Z: doorWallThickness}, wallMat),
			doorWallSection(position, rotationY, offset, 0,
				geom.Vec3{X: sideWidth, Y: wallScaleY, Z: doorWallThickness}, wallMat))
	}
	topHeight := wallScaleY - doorPanelHeight
	if topHeight > 0 {
		top := doorWallSection(position, rotationY, 0, doorPanelHeight,
			geom.Vec3{X: doorPanelWidth, Y: topHeight, Z: doorWallThickness}, wallMat)
		instances = append(instances, top)
	}
	return instances, nil
}

// doorWallSection builds one wall piece offset sideways from the door
// center along the doorway's pre-rotation X axis.
func doorWallSection(center geom.Vec3, rotationY, offsetX, baseY float64, scale geom.Vec3, mat catalog.Material) *scene.Instance {
	x, z := geom.RotatePointAround(center.X+offsetX, center.Z, center.X, center.Z, rotationY)

	wall := scene.NewInstance("doors", "cube")
	wall.Material = mat.ID
	wall.ColorTags = mat.Colors
	wall.Scale = scale
	wall.RotationY = rotationY
	wall.Position = geom.Vec3{X: x, Y: baseY + scale.Y/2, Z: z}
	wall.StandingY = scale.Y / 2
	wall.Kinematic = true
	wall.Structure = true
	wall.RecomputeBounds()
	return wall
}
