package features

import (
	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/mechanics"
	"github.com/evalhouse/scenegen/internal/scene"
)

func init() { Register(&placerBuilder{}) }

// placerPoleClearance is the pole stub length between the ceiling and a
// held object's top before the descent starts.
const placerPoleClearance = 0.5

// placerBuilder drives a ceiling pole that lowers an object into the
// scene, picks one up, or carries one sideways to a new spot.
type placerBuilder struct{}

func (b *placerBuilder) Type() string { return "placers" }

func (b *placerBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.PlacerConfig)
	if !ok {
		return nil, Configf("placer request has unexpected type %T", source)
	}
	return cfg, nil
}

func (b *placerBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.PlacerConfig)

	activationStep, err := b.resolveActivation(sess, cfg)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.MoveObject:
		return b.buildMove(sess, cfg, activationStep)
	case cfg.PickupObject:
		return b.buildPickup(sess, cfg, activationStep)
	default:
		return b.buildPlace(sess, cfg, activationStep)
	}
}

func (b *placerBuilder) resolveActivation(sess *Session, cfg *config.PlacerConfig) (int, error) {
	if len(cfg.ActivateAfter) > 0 {
		targets, err := labeledInstances(sess, cfg.ActivateAfter, "placer activate_after")
		if err != nil {
			return 0, err
		}
		return mechanics.StepAfterMovement(targets), nil
	}
	step := 1
	if cfg.ActivationStep.IsSet() {
		step = cfg.ActivationStep.Resolve(sess.RNG)
		if step < 1 {
			return 0, Configf("placer activation_step %d must be positive", step)
		}
	}
	return step, nil
}

// buildPlace lowers a new object from the ceiling and releases it.
func (b *placerBuilder) buildPlace(sess *Session, cfg *config.PlacerConfig, activationStep int) ([]*scene.Instance, error) {
	room := sess.Scene.RoomDimensions

	cargo, reused, err := resolveProjectile(sess, cfg.PlacedObject, catalog.PlacerShapes(), "placer")
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, Configf("placer placed_object cannot be empty")
	}

	var x, z float64
	var above *scene.Instance
	switch {
	case len(cfg.PlacedObjectAbove) > 0:
		above, err = b.resolveAboveTarget(sess, cfg, activationStep)
		if err != nil {
			return nil, err
		}
		x, z = above.Position.X, above.Position.Z
		if above.Debug.MoveToPosition != nil && above.Debug.MoveToPositionBy <= activationStep {
			x, z = above.Debug.MoveToPosition.X, above.Debug.MoveToPosition.Z
		}
	case cfg.PlacedObjectPosition.IsSet():
		pos := cfg.PlacedObjectPosition.Resolve(sess.RNG)
		x, z = pos.X, pos.Z
	default:
		pos := randomFloorPosition(sess.RNG, room)
		x, z = pos.X, pos.Z
	}

	endHeight := cfg.EndHeight.Resolve(sess.RNG)
	if above != nil {
		top := above.Bounds.MaxY
		if endHeight < top {
			endHeight = top
		}
	}

	rotation := cfg.PlacedObjectRotation.Resolve(sess.RNG)
	startBottom := room.Y - placerPoleClearance - cargo.Scale.Y
	if startBottom < endHeight {
		return nil, Configf(
			"placer end height %.2f leaves no travel for a %.2f tall object in a %.2f tall room",
			endHeight, cargo.Scale.Y, room.Y)
	}

	if reused {
		// A reused object leaves its committed spot, so its landing
		// footprint is checked here rather than by the controller.
		landingBounds := geom.CreateBounds(
			cargo.Scale, cargo.Offset,
			geom.Vec3{X: x, Y: endHeight + cargo.Scale.Y/2, Z: z},
			rotation, cargo.Scale.Y/2)
		if !b.endPositionFree(sess, cargo, landingBounds) {
			return nil, Placementf("placers",
				"landing position (%.2f, %.2f) is occupied", x, z)
		}
	}

	cargo.RotationY = rotation
	cargo.Position = geom.Vec3{X: x, Y: startBottom + cargo.Scale.Y/2, Z: z}
	cargo.StandingY = cargo.Scale.Y / 2
	cargo.Debug.IgnoreBounds = true
	if above != nil {
		cargo.Debug.PositionedAboveID = above.ID
	}
	cargo.RecomputeBounds()

	pole := mechanics.NewPlacerPole(x, z, room.Y-placerPoleClearance, room)
	release := mechanics.SchedulePlace(pole, cargo, activationStep, startBottom-endHeight)

	// Once free the object occupies its landing spot.
	landing := *cargo
	landing.Position.Y = endHeight + cargo.Scale.Y/2
	landing.RecomputeBounds()
	cargo.Bounds = landing.Bounds
	cargo.Debug.IgnoreBounds = false
	cargo.Debug.MoveToPosition = &geom.Vec3{X: x, Y: landing.Position.Y, Z: z}
	cargo.Debug.MoveToPositionBy = release

	instances := []*scene.Instance{pole}
	if !reused {
		instances = append(instances, cargo)
	}
	return instances, nil
}

// buildPickup descends an empty pole onto an existing object and carries
// it up out of play.
func (b *placerBuilder) buildPickup(sess *Session, cfg *config.PlacerConfig, activationStep int) ([]*scene.Instance, error) {
	room := sess.Scene.RoomDimensions

	cargo, err := b.resolveExistingCargo(sess, cfg, "pickup_object")
	if err != nil {
		return nil, err
	}

	top := cargo.Bounds.MaxY
	pole := mechanics.NewPlacerPole(cargo.Position.X, cargo.Position.Z, room.Y-placerPoleClearance, room)
	descend := room.Y - placerPoleClearance - top
	if descend < 0 {
		descend = 0
	}
	mechanics.SchedulePickup(pole, cargo, activationStep, descend)

	// The object leaves the floor, freeing its footprint for later
	// placements.
	cargo.Debug.IgnoreBounds = true
	cargo.Debug.PositionedBy = "mechanism"
	return []*scene.Instance{pole}, nil
}

// buildMove lifts an existing object, slides it to the end position, and
// sets it back down there.
func (b *placerBuilder) buildMove(sess *Session, cfg *config.PlacerConfig, activationStep int) ([]*scene.Instance, error) {
	room := sess.Scene.RoomDimensions

	cargo, err := b.resolveExistingCargo(sess, cfg, "move_object")
	if err != nil {
		return nil, err
	}

	end := cfg.MoveObjectEndPosition.Resolve(sess.RNG)
	lift := cfg.MoveObjectY.Resolve(sess.RNG)
	if lift <= 0 {
		lift = 1
	}

	endBounds := geom.CreateBounds(
		cargo.Scale, cargo.Offset,
		geom.Vec3{X: end.X, Y: cargo.Position.Y, Z: end.Z},
		cargo.RotationY, cargo.StandingY)
	if !b.endPositionFree(sess, cargo, endBounds) {
		return nil, Placementf("placers",
			"move end position (%.2f, %.2f) is occupied", end.X, end.Z)
	}

	// Objects already lowered onto the cargo ride along with it. One whose
	// descent has not finished by the activation step would land mid-move.
	delta := geom.Vec3{X: end.X, Z: end.Z}.Sub(geom.Vec3{X: cargo.Position.X, Z: cargo.Position.Z})
	for _, obj := range sess.Scene.Objects {
		if obj.Debug.PositionedAboveID != cargo.ID {
			continue
		}
		if obj.Debug.MoveToPositionBy >= activationStep {
			return nil, Configf(
				"placer move_object at step %d overlaps the schedule of an object placed above the cargo (lands at step %d)",
				activationStep, obj.Debug.MoveToPositionBy)
		}
		sess.Touch(obj)
		shiftInstance(obj, delta)
	}

	pole := mechanics.NewPlacerPole(cargo.Position.X, cargo.Position.Z, room.Y-placerPoleClearance, room)
	release := mechanics.ScheduleMove(pole, cargo, activationStep, lift, delta)

	cargo.Debug.PositionedBy = "mechanism"
	cargo.Debug.MoveToPosition = &geom.Vec3{X: end.X, Y: cargo.Position.Y, Z: end.Z}
	cargo.Debug.MoveToPositionBy = release
	cargo.Bounds = endBounds
	return []*scene.Instance{pole}, nil
}

func (b *placerBuilder) resolveAboveTarget(sess *Session, cfg *config.PlacerConfig, activationStep int) (*scene.Instance, error) {
	for _, label := range cfg.PlacedObjectAbove {
		if target := sess.Scene.Labels.GetOne(label); target != nil {
			return target, nil
		}
	}
	return nil, Delayf(cfg.PlacedObjectAbove[0],
		"placer placed_object_above references labels %v, none placed yet", cfg.PlacedObjectAbove)
}

func (b *placerBuilder) resolveExistingCargo(sess *Session, cfg *config.PlacerConfig, mode string) (*scene.Instance, error) {
	if len(cfg.PlacedObject.UseLabels) == 0 {
		return nil, Configf("placer %s requires placed_object labels", mode)
	}
	cargo, reused, err := resolveProjectile(sess, cfg.PlacedObject, catalog.PlacerShapes(), "placer")
	if err != nil {
		return nil, err
	}
	if !reused {
		return nil, Configf("placer %s must reference an existing object", mode)
	}
	return cargo, nil
}

// shiftInstance translates an instance and its recorded landing spot in
// the horizontal plane.
func shiftInstance(obj *scene.Instance, delta geom.Vec3) {
	obj.Position = obj.Position.Add(geom.Vec3{X: delta.X, Z: delta.Z})
	obj.RecomputeBounds()
	if obj.Debug.MoveToPosition != nil {
		*obj.Debug.MoveToPosition = obj.Debug.MoveToPosition.Add(geom.Vec3{X: delta.X, Z: delta.Z})
	}
}

// endPositionFree checks a moved object's landing footprint against the
// scene, skipping the object itself.
func (b *placerBuilder) endPositionFree(sess *Session, cargo *scene.Instance, candidate geom.Bounds) bool {
	var others []geom.Bounds
	for _, obj := range sess.Scene.Objects {
		if obj.ID == cargo.ID || obj.Debug.IgnoreBounds || len(obj.Bounds.BoxXZ) == 0 {
			continue
		}
		others = append(others, obj.Bounds)
	}
	others = append(others, sess.Bounds...)
	for _, hole := range sess.Scene.Holes {
		others = append(others, geom.FloorAreaBounds(float64(hole.X), float64(hole.Z)))
	}
	for _, cell := range sess.Scene.Lava {
		others = append(others, geom.FloorAreaBounds(float64(cell.X), float64(cell.Z)))
	}
	return geom.ValidateLocation(
		candidate, sess.Scene.PerformerStart.Position, others, sess.Scene.RoomDimensions)
}

// Valid skips other placer poles and mechanism-positioned objects so a
// pole can operate above the object it targets.
func (b *placerBuilder) Valid(sess *Session, instances []*scene.Instance) bool {
	var relevant []geom.Bounds
	for _, obj := range sess.Scene.Objects {
		if obj.Feature == "placers" || obj.Debug.PositionedBy == "mechanism" {
			continue
		}
		if obj.Debug.IgnoreBounds || len(obj.Bounds.BoxXZ) == 0 {
			continue
		}
		relevant = append(relevant, obj.Bounds)
	}
	relevant = append(relevant, sess.Bounds...)

	for _, inst := range instances {
		if inst.Debug.IgnoreBounds || len(inst.Bounds.BoxXZ) == 0 {
			continue
		}
		ok := geom.ValidateLocation(
			inst.Bounds,
			sess.Scene.PerformerStart.Position,
			relevant,
			sess.Scene.RoomDimensions,
		)
		if !ok {
			return false
		}
	}
	return true
}

func (b *placerBuilder) Committed(sess *Session, source any, instances []*scene.Instance) error {
	pole := instances[0]
	if held := sess.Scene.ObjectByID(pole.Debug.HeldObjectID); held != nil {
		sess.Label([]*scene.Instance{held}, "placed_objects")
	}
	return nil
}
