package features

import (
	"math"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

func init() { Register(&notchedOccluderBuilder{}) }

const (
	notchedHeightMin      = 2.1
	notchedHeightMax      = 3.0
	notchedNotchHeightMin = 1.0
	notchedNotchHeightMax = 2.0
	notchedNotchWidthMin  = 0.3
	notchedNotchWidthMax  = 2.1
	notchedThickness      = 0.1
)

// notchedOccluderBuilder assembles a wall-to-wall occluder with a notch
// cut out of its bottom edge: two side pieces reaching the floor and a
// top bar spanning the notch. The assembly parks above the ceiling and
// descends over the room like a tube occluder, so an object can pass
// through the notch while everything behind is hidden.
type notchedOccluderBuilder struct{}

func (b *notchedOccluderBuilder) Type() string { return "notched_occluders" }

func (b *notchedOccluderBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.NotchedOccluderConfig)
	if !ok {
		return nil, Configf("notched occluder request has unexpected type %T", source)
	}
	return cfg, nil
}

func (b *notchedOccluderBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.NotchedOccluderConfig)
	room := sess.Scene.RoomDimensions

	height := uniformIn(sess.RNG, notchedHeightMin, notchedHeightMax)
	if cfg.Height.IsSet() {
		height = cfg.Height.Resolve(sess.RNG)
	}
	height = math.Min(height, room.Y)
	if height <= 0 {
		return nil, Configf("notched occluder height %.2f must be positive", height)
	}

	notchHeight := uniformIn(sess.RNG, notchedNotchHeightMin, notchedNotchHeightMax)
	if cfg.NotchHeight.IsSet() {
		notchHeight = cfg.NotchHeight.Resolve(sess.RNG)
	}
	if notchHeight <= 0 || notchHeight >= height {
		return nil, Configf(
			"notched occluder notch height %.2f must be between 0 and the %.2f occluder height",
			notchHeight, height)
	}

	notchWidth := uniformIn(sess.RNG, notchedNotchWidthMin, notchedNotchWidthMax)
	if cfg.NotchWidth.IsSet() {
		notchWidth = cfg.NotchWidth.Resolve(sess.RNG)
	}
	if notchWidth <= 0 || notchWidth >= room.X {
		return nil, Configf(
			"notched occluder notch width %.2f does not fit a %g wide room",
			notchWidth, room.X)
	}

	z := sampleAxis(sess, cfg.PositionZ, (room.Z-notchedThickness)/2)
	z = geom.Clamp(z, -(room.Z-notchedThickness)/2, (room.Z-notchedThickness)/2)

	downStep, upStep, err := b.resolveSteps(sess, cfg)
	if err != nil {
		return nil, err
	}

	mat, err := catalog.ResolveMaterial(sess.RNG, cfg.Material.Choices(), catalog.RoomWallMaterials, "")
	if err != nil {
		return nil, Configf("notched occluder: %v", err)
	}

	sideWidth := (room.X - notchWidth) / 2
	left := b.newPiece(mat, geom.Vec3{X: sideWidth, Y: height, Z: notchedThickness},
		-(notchWidth+sideWidth)/2, height/2, z, room)
	right := b.newPiece(mat, geom.Vec3{X: sideWidth, Y: height, Z: notchedThickness},
		(notchWidth+sideWidth)/2, height/2, z, room)
	top := b.newPiece(mat, geom.Vec3{X: notchWidth, Y: height - notchHeight, Z: notchedThickness},
		0, notchHeight+(height-notchHeight)/2, z, room)
	// Objects small enough for the notch pass under the top bar.
	top.Bounds.MinY = notchHeight

	pieces := []*scene.Instance{left, right, top}
	travel := int(math.Ceil(room.Y / tubeSpeed))
	for _, piece := range pieces {
		piece.Moves = append(piece.Moves, scene.MoveSegment{
			StepBegin: downStep,
			StepEnd:   downStep + travel - 1,
			Vector:    geom.Vec3{Y: -tubeSpeed},
		})
		if upStep > 0 {
			begin := upStep
			if begin <= downStep+travel-1 {
				begin = downStep + travel
			}
			piece.Moves = append(piece.Moves, scene.MoveSegment{
				StepBegin: begin,
				StepEnd:   begin + travel - 1,
				Vector:    geom.Vec3{Y: tubeSpeed},
			})
		}
	}
	return pieces, nil
}

// newPiece builds one box of the assembly. landedY is the piece's center
// height once fully descended; the piece starts one room height above it.
// Its footprint is the landing spot, not the parked position.
func (b *notchedOccluderBuilder) newPiece(mat catalog.Material, scale geom.Vec3, x, landedY, z float64, room geom.Vec3) *scene.Instance {
	piece := scene.NewInstance("notched_occluders", "cube")
	piece.Material = mat.ID
	piece.ColorTags = mat.Colors
	piece.Scale = scale
	piece.Position = geom.Vec3{X: x, Y: landedY + room.Y, Z: z}
	piece.StandingY = scale.Y / 2
	piece.Kinematic = true
	piece.Structure = true
	piece.RecomputeBounds()
	piece.Bounds.MinY = landedY - scale.Y/2
	piece.Bounds.MaxY = landedY + scale.Y/2
	return piece
}

func (b *notchedOccluderBuilder) resolveSteps(sess *Session, cfg *config.NotchedOccluderConfig) (int, int, error) {
	downStep := 1
	if cfg.DownStep.IsSet() {
		downStep = cfg.DownStep.Resolve(sess.RNG)
		if downStep < 1 {
			return 0, 0, Configf("notched occluder down_step %d must be positive", downStep)
		}
	}
	upStep := 0
	if cfg.UpStep.IsSet() {
		upStep = cfg.UpStep.Resolve(sess.RNG)
	}
	return downStep, upStep, nil
}
