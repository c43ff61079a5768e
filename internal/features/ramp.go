package features

import (
	"math"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

const (
	rampWidthPercentMin  = 0.05
	rampWidthPercentMax  = 0.5
	rampLengthPercentMin = 0.05
	rampLengthPercentMax = 1.0
	rampDefaultMinAngle  = 15.0
	rampDefaultMaxAngle  = 45.0
)

type rampBuilder struct{}

func init() { Register(&rampBuilder{}) }

func (*rampBuilder) Type() string { return "ramps" }

func (*rampBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.RampConfig)
	if !ok {
		return nil, Configf("ramps: unexpected source type %T", source)
	}
	return cfg, nil
}

func (b *rampBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.RampConfig)
	rng := sess.RNG
	room := sess.Scene.RoomDimensions
	minRoomDim := math.Min(room.X, room.Z)

	angle := cfg.Angle.Resolve(rng)
	if !cfg.Angle.IsSet() {
		angle = uniformIn(rng, rampDefaultMinAngle, rampDefaultMaxAngle)
	}
	if angle <= 0 || angle >= 90 {
		return nil, Configf("ramps: angle must be between 0 and 90, got %.2f", angle)
	}

	// A ramp may never rise so high the performer cannot stand on top.
	maxLength := (room.Y - geom.PerformerHeight) / math.Tan(angle*math.Pi/180)
	width := cfg.Width.Resolve(rng)
	if !cfg.Width.IsSet() {
		width = uniformIn(rng,
			minRoomDim*rampWidthPercentMin, minRoomDim*rampWidthPercentMax)
	}
	length := cfg.Length.Resolve(rng)
	if !cfg.Length.IsSet() {
		length = uniformIn(rng, minRoomDim*rampLengthPercentMin,
			math.Min(minRoomDim*rampLengthPercentMax, maxLength))
	}

	mat, err := catalog.ResolveMaterial(rng, cfg.Material.Choices(), catalog.RoomWallMaterials, "")
	if err != nil {
		return nil, Configf("ramps: %v", err)
	}

	rotationY := cfg.RotationY.Resolve(rng)
	if !cfg.RotationY.IsSet() {
		rotationY = geom.ValidRotations[rng.Intn(len(geom.ValidRotations))]
	}
	position := randomFloorPosition(rng, room)
	if cfg.Position.IsSet() {
		position = cfg.Position.Resolve(rng)
	}

	ramp := newRamp(mat, width, length, angle, position, rotationY)
	return []*scene.Instance{ramp}, nil
}

// newRamp builds a wedge. The position's Y component is a modifier added
// on top of the floor; the wedge's height follows from length and angle.
func newRamp(mat catalog.Material, width, length, angle float64, position geom.Vec3, rotationY float64) *scene.Instance {
	height := length * math.Tan(angle*math.Pi/180)

	ramp := scene.NewInstance("ramps", "triangle")
	ramp.Material = mat.ID
	ramp.ColorTags = mat.Colors
	ramp.Scale = geom.Vec3{X: width, Y: height, Z: length}
	ramp.RotationY = math.Mod(rotationY+360, 360)
	ramp.Position = geom.Vec3{X: position.X, Y: position.Y + height/2, Z: position.Z}
	ramp.StandingY = height / 2
	ramp.Kinematic = true
	ramp.Structure = true
	ramp.RecomputeBounds()
	return ramp
}
