package features

import (
	"math"
	"math/rand"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
	"github.com/evalhouse/scenegen/internal/vary"
)

func init() {
	Register(&floorAreaBuilder{kind: "holes"})
	Register(&floorAreaBuilder{kind: "lava"})
	Register(&floorMaterialsBuilder{})
}

// floorAreaBuilder places unit floor cells, serving both holes and lava.
// Build returns a marker instance whose footprint is the cell, so the
// default validation applies; Committed converts the marker into a grid
// entry on the scene and discards the instance.
type floorAreaBuilder struct {
	kind string
}

func (b *floorAreaBuilder) Type() string { return b.kind }

func (b *floorAreaBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.FloorAreaConfig)
	if !ok {
		return nil, Configf("%s request has unexpected type %T", b.kind, source)
	}
	return cfg, nil
}

func (b *floorAreaBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.FloorAreaConfig)

	x, z := sampleFloorCell(sess.RNG, cfg.PositionX, cfg.PositionZ, sess.Scene.RoomDimensions)

	marker := scene.NewInstance(b.kind, "floor_cell")
	marker.Position = geom.Vec3{X: float64(x), Z: float64(z)}
	marker.Bounds = geom.FloorAreaBounds(float64(x), float64(z))
	return []*scene.Instance{marker}, nil
}

func (b *floorAreaBuilder) Committed(sess *Session, source any, instances []*scene.Instance) error {
	for _, marker := range instances {
		sess.Scene.RemoveObject(marker.ID)
		cell := gridCell(marker.Position)
		switch b.kind {
		case "holes":
			sess.Scene.Holes = append(sess.Scene.Holes, cell)
		case "lava":
			sess.Scene.Lava = append(sess.Scene.Lava, cell)
		}
	}
	return nil
}

// floorMaterialsBuilder retextures single floor cells. Unlike holes and
// lava, textured cells stay walkable, so objects above them are fine;
// only other floor features block a cell.
type floorMaterialsBuilder struct{}

func (b *floorMaterialsBuilder) Type() string { return "floor_materials" }

func (b *floorMaterialsBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.FloorMaterialConfig)
	if !ok {
		return nil, Configf("floor material request has unexpected type %T", source)
	}
	return cfg, nil
}

func (b *floorMaterialsBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.FloorMaterialConfig)

	mat, err := catalog.ResolveMaterial(sess.RNG, cfg.Material.Choices(), catalog.FloorMaterials, "")
	if err != nil {
		return nil, Configf("floor material: %v", err)
	}

	x, z := sampleFloorCell(sess.RNG, cfg.PositionX, cfg.PositionZ, sess.Scene.RoomDimensions)

	marker := scene.NewInstance("floor_materials", "floor_cell")
	marker.Material = mat.ID
	marker.ColorTags = mat.Colors
	marker.Position = geom.Vec3{X: float64(x), Z: float64(z)}
	marker.Bounds = geom.FloorAreaBounds(float64(x), float64(z))
	marker.Debug.IgnoreBounds = true
	return []*scene.Instance{marker}, nil
}

// Valid only rejects cells outside the grid or already claimed by another
// floor feature. Objects standing on the cell do not block a retexture.
func (b *floorMaterialsBuilder) Valid(sess *Session, instances []*scene.Instance) bool {
	for _, marker := range instances {
		if !marker.Bounds.InRoom(sess.Scene.RoomDimensions) {
			return false
		}
		cell := gridCell(marker.Position)
		if floorCellTaken(sess.Scene, cell) {
			return false
		}
	}
	return true
}

func (b *floorMaterialsBuilder) Committed(sess *Session, source any, instances []*scene.Instance) error {
	for _, marker := range instances {
		sess.Scene.RemoveObject(marker.ID)
		cell := gridCell(marker.Position)

		merged := false
		for i := range sess.Scene.FloorTextures {
			if sess.Scene.FloorTextures[i].Material == marker.Material {
				sess.Scene.FloorTextures[i].Positions = append(
					sess.Scene.FloorTextures[i].Positions, cell)
				merged = true
				break
			}
		}
		if !merged {
			sess.Scene.FloorTextures = append(sess.Scene.FloorTextures, scene.FloorTexture{
				Material:  marker.Material,
				Positions: []scene.GridPoint{cell},
			})
		}
	}
	return nil
}

// sampleFloorCell resolves a cell position, sampling uniformly over the
// room's integer grid for unset axes. The grid is centered on the origin
// and stops short of cells whose edges would cross the room walls.
func sampleFloorCell(rng *rand.Rand, px, pz vary.Int, room geom.Vec3) (int, int) {
	limX := int(room.X-1) / 2
	limZ := int(room.Z-1) / 2

	x := rng.Intn(2*limX+1) - limX
	if px.IsSet() {
		x = px.Resolve(rng)
	}
	z := rng.Intn(2*limZ+1) - limZ
	if pz.IsSet() {
		z = pz.Resolve(rng)
	}
	return x, z
}

func gridCell(position geom.Vec3) scene.GridPoint {
	return scene.GridPoint{
		X: int(math.Round(position.X)),
		Z: int(math.Round(position.Z)),
	}
}

func floorCellTaken(sc *scene.Scene, cell scene.GridPoint) bool {
	for _, hole := range sc.Holes {
		if hole == cell {
			return true
		}
	}
	for _, lava := range sc.Lava {
		if lava == cell {
			return true
		}
	}
	for _, texture := range sc.FloorTextures {
		for _, pos := range texture.Positions {
			if pos == cell {
				return true
			}
		}
	}
	return false
}
