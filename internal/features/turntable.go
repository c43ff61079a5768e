package features

import (
	"math"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/mechanics"
	"github.com/evalhouse/scenegen/internal/scene"
)

func init() { Register(&turntableBuilder{}) }

const (
	turntableDefaultHeight = 0.1
	turntableMinRadius     = 0.5
)

// turntableBuilder places a flat rotating cog on the floor.
type turntableBuilder struct{}

func (b *turntableBuilder) Type() string { return "turntables" }

func (b *turntableBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.TurntableConfig)
	if !ok {
		return nil, Configf("turntable request has unexpected type %T", source)
	}
	return cfg, nil
}

func (b *turntableBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.TurntableConfig)
	room := sess.Scene.RoomDimensions

	radius := cfg.Radius.Resolve(sess.RNG)
	if radius == 0 {
		radius = uniformIn(sess.RNG, turntableMinRadius, math.Min(room.X, room.Z)/4)
	}
	if radius <= 0 || radius*2 > math.Min(room.X, room.Z) {
		return nil, Configf("turntable radius %.2f does not fit a %gx%g room",
			radius, room.X, room.Z)
	}

	height := cfg.Height.Resolve(sess.RNG)
	if height == 0 {
		height = turntableDefaultHeight
	}

	x := sampleAxis(sess, cfg.PositionX, (room.X-radius*2)/2)
	z := sampleAxis(sess, cfg.PositionZ, (room.Z-radius*2)/2)
	y := cfg.PositionY.Resolve(sess.RNG)

	rotationY := cfg.RotationY.Resolve(sess.RNG)
	stepBegin := 1
	if cfg.StepBegin.IsSet() {
		stepBegin = cfg.StepBegin.Resolve(sess.RNG)
		if stepBegin < 1 {
			return nil, Configf("turntable movement_step_begin %d must be positive", stepBegin)
		}
	}

	stepEnd := stepBegin
	switch {
	case rotationY == 0:
		// No per-step rotation means no rotation at all, whatever the
		// other timing fields say.
	case cfg.EndAfterRotation.IsSet():
		sweep := cfg.EndAfterRotation.Resolve(sess.RNG)
		stepEnd = mechanics.TurntableEndStep(stepBegin, rotationY, sweep)
	case cfg.StepEnd.IsSet():
		stepEnd = cfg.StepEnd.Resolve(sess.RNG)
		if stepEnd < stepBegin {
			return nil, Configf("turntable movement_step_end %d is before step %d",
				stepEnd, stepBegin)
		}
	default:
		// A full turn by default.
		stepEnd = mechanics.TurntableEndStep(stepBegin, rotationY, 360)
	}

	material := catalog.TurntableMaterial
	if cfg.Material.IsSet() {
		mat, err := catalog.ResolveMaterial(sess.RNG, cfg.Material.Choices(), nil, "")
		if err != nil {
			return nil, Configf("turntable: %v", err)
		}
		material = mat
	}

	tt := mechanics.NewTurntable(x, y, z, radius, height, material.ID, stepBegin, stepEnd, rotationY)
	tt.ColorTags = material.Colors
	return []*scene.Instance{tt}, nil
}
