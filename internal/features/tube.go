package features

import (
	"math"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/mechanics"
	"github.com/evalhouse/scenegen/internal/scene"
	"github.com/evalhouse/scenegen/internal/vary"
)

func init() { Register(&tubeOccluderBuilder{}) }

// tubeSpeed is the vertical travel per step of a tube occluder.
const tubeSpeed = 0.25

// tubeOccluderBuilder places a room-height tube that starts parked above
// the ceiling, descends over a spot, and optionally lifts away again.
type tubeOccluderBuilder struct{}

func (b *tubeOccluderBuilder) Type() string { return "tube_occluders" }

func (b *tubeOccluderBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.TubeOccluderConfig)
	if !ok {
		return nil, Configf("tube occluder request has unexpected type %T", source)
	}
	return cfg, nil
}

func (b *tubeOccluderBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.TubeOccluderConfig)
	room := sess.Scene.RoomDimensions

	radius := cfg.Radius.Resolve(sess.RNG)
	if radius == 0 {
		radius = uniformIn(sess.RNG, 1, math.Min(room.X, room.Z)/2)
	}
	if radius <= 0 || radius*2 > math.Min(room.X, room.Z) {
		return nil, Configf("tube occluder radius %.2f does not fit a %gx%g room",
			radius, room.X, room.Z)
	}

	x := sampleAxis(sess, cfg.PositionX, (room.X-radius*2)/2)
	z := sampleAxis(sess, cfg.PositionZ, (room.Z-radius*2)/2)

	downStep, upStep, err := b.resolveSteps(sess, cfg)
	if err != nil {
		return nil, err
	}

	mat, err := catalog.ResolveMaterial(sess.RNG, cfg.Material.Choices(), catalog.RoomWallMaterials, "")
	if err != nil {
		return nil, Configf("tube occluder: %v", err)
	}

	tube := scene.NewInstance("tube_occluders", "tube_wide")
	tube.Material = mat.ID
	tube.ColorTags = mat.Colors
	tube.Scale = geom.Vec3{X: radius * 2, Y: room.Y, Z: radius * 2}
	tube.Position = geom.Vec3{X: x, Y: room.Y * 1.5, Z: z}
	tube.Kinematic = true
	tube.Structure = true

	travel := int(math.Ceil(room.Y / tubeSpeed))
	downEnd := downStep + travel - 1
	tube.Moves = append(tube.Moves, scene.MoveSegment{
		StepBegin: downStep,
		StepEnd:   downEnd,
		Vector:    geom.Vec3{Y: -tubeSpeed},
	})
	if upStep > 0 {
		if upStep <= downEnd {
			upStep = downEnd + 1
		}
		tube.Moves = append(tube.Moves, scene.MoveSegment{
			StepBegin: upStep,
			StepEnd:   upStep + travel - 1,
			Vector:    geom.Vec3{Y: tubeSpeed},
		})
	}

	// The tube's footprint is the floor spot it lands on, not its parked
	// position above the ceiling.
	tube.RecomputeBounds()
	tube.Bounds.MinY = 0
	tube.Bounds.MaxY = room.Y

	return []*scene.Instance{tube}, nil
}

// resolveSteps turns the explicit or label-derived timing into concrete
// down and up steps. An up step of zero means the tube never lifts.
func (b *tubeOccluderBuilder) resolveSteps(sess *Session, cfg *config.TubeOccluderConfig) (int, int, error) {
	downStep := 1
	switch {
	case len(cfg.DownAfter) > 0:
		targets, err := labeledInstances(sess, cfg.DownAfter, "tube occluder down_after")
		if err != nil {
			return 0, 0, err
		}
		downStep = mechanics.StepAfterMovement(targets)
	case cfg.DownStep.IsSet():
		downStep = cfg.DownStep.Resolve(sess.RNG)
		if downStep < 1 {
			return 0, 0, Configf("tube occluder down_step %d must be positive", downStep)
		}
	}

	upStep := 0
	switch {
	case len(cfg.UpAfter) > 0:
		targets, err := labeledInstances(sess, cfg.UpAfter, "tube occluder up_after")
		if err != nil {
			return 0, 0, err
		}
		upStep = mechanics.StepAfterMovement(targets)
	case cfg.UpStep.IsSet():
		upStep = cfg.UpStep.Resolve(sess.RNG)
	}
	return downStep, upStep, nil
}

// labeledInstances gathers every instance behind the labels, delaying the
// request when any label has no instances yet.
func labeledInstances(sess *Session, labels []string, context string) ([]*scene.Instance, error) {
	var out []*scene.Instance
	for _, label := range labels {
		targets := sess.Scene.Labels.GetAll(label)
		if len(targets) == 0 {
			return nil, Delayf(label, "%s references label %q, not placed yet", context, label)
		}
		out = append(out, targets...)
	}
	return out, nil
}

// sampleAxis resolves a positional spec, sampling uniformly within the
// given half-extent when unset.
func sampleAxis(sess *Session, spec vary.Float, limit float64) float64 {
	if spec.IsSet() {
		return spec.Resolve(sess.RNG)
	}
	return uniformIn(sess.RNG, -limit, limit)
}
