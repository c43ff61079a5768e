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

func init() { Register(&throwerBuilder{}) }

const (
	// throwerMaxTilt limits how far a thrower may twist away from the
	// wall normal before the projectile would hit the wall it came from.
	throwerMaxTilt = 45.0

	// stopPositionHeights are the only heights with recorded motion
	// profiles.
	stopRollHeight = 0.0
	stopTossHeight = 1.0
)

var throwerWalls = []scene.Side{
	scene.SideLeft, scene.SideRight, scene.SideFront, scene.SideBack,
}

// throwerBuilder embeds a tube in a room wall and schedules the launch
// impulse on its projectile.
type throwerBuilder struct{}

func (b *throwerBuilder) Type() string { return "throwers" }

func (b *throwerBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.ThrowerConfig)
	if !ok {
		return nil, Configf("thrower request has unexpected type %T", source)
	}
	return cfg, nil
}

func (b *throwerBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.ThrowerConfig)
	room := sess.Scene.RoomDimensions

	wall, err := resolveWall(sess, cfg.Wall)
	if err != nil {
		return nil, err
	}

	projectile, reused, err := resolveProjectile(sess, cfg.Projectile, catalog.ThrowerShapes(), "thrower")
	if err != nil {
		return nil, err
	}
	dims := dummyProjectileDims(sess)
	if projectile != nil {
		dims = projectile.Scale
	}

	// The position along the wall runs on Z for side walls and X for
	// front/back walls.
	along := room.Z
	if wall == scene.SideFront || wall == scene.SideBack {
		along = room.X
	}
	wallPos := sampleAxis(sess, cfg.WallPosition, along/2-math.Max(dims.X, dims.Z))

	height := uniformIn(sess.RNG, dims.Y, room.Y-dims.Y)
	if cfg.Height.IsSet() {
		height = cfg.Height.Resolve(sess.RNG)
	}

	rotation := cfg.Rotation.Resolve(sess.RNG)
	if math.Abs(rotation) > throwerMaxTilt {
		return nil, Configf("thrower rotation %.1f exceeds the %.0f degree tilt limit",
			rotation, throwerMaxTilt)
	}

	throwStep := 1
	if cfg.ThrowStep.IsSet() {
		throwStep = cfg.ThrowStep.Resolve(sess.RNG)
		if throwStep < 1 {
			return nil, Configf("thrower throw_step %d must be positive", throwStep)
		}
	}

	device := mechanics.NewThrower(wall, wallPos, height, rotation, room, dims)

	if projectile != nil {
		mechanics.HoldProjectile(device, projectile, throwStep)

		if cfg.StopPositionX.IsSet() || cfg.StopPositionZ.IsSet() {
			if err := b.scheduleStopThrow(sess, cfg, device, projectile, height, throwStep); err != nil {
				return nil, err
			}
		} else {
			force := cfg.ThrowForce.Resolve(sess.RNG)
			if force == 0 {
				force = uniformIn(sess.RNG, 300, 750)
			}
			forceY := 0.0
			if cfg.PassivePhysics {
				forceY = force / 2
			}
			mechanics.LaunchForce(projectile, throwStep, force, forceY, device.RotationY)
		}
	}

	instances := []*scene.Instance{device}
	if projectile != nil && !reused {
		instances = append(instances, projectile)
	}
	return instances, nil
}

// scheduleStopThrow picks the recorded force profile whose travel lands
// the projectile on the requested stop position.
func (b *throwerBuilder) scheduleStopThrow(sess *Session, cfg *config.ThrowerConfig, device, projectile *scene.Instance, height float64, throwStep int) error {
	room := sess.Scene.RoomDimensions

	profiles := catalog.BaseMoveList
	switch height {
	case stopRollHeight:
	case stopTossHeight:
		profiles = catalog.TossMoveList
	default:
		return Configf(
			"thrower stop positions require height %g or %g, got %g",
			stopRollHeight, stopTossHeight, height)
	}

	stop := geom.Vec3{
		X: cfg.StopPositionX.Resolve(sess.RNG),
		Z: cfg.StopPositionZ.Resolve(sess.RNG),
	}
	offset := stop.Sub(device.Position)
	distance := device.Position.DistanceXZ(stop)

	var profile catalog.MoveProfile
	if math.Abs(stop.X) > room.X/2 || math.Abs(stop.Z) > room.Z/2 {
		// An offscreen stop ends against the far wall regardless of the
		// force, so the gentlest throw is used.
		profile = mechanics.MinimumDistanceProfile(profiles)
	} else {
		var ok bool
		profile, ok = mechanics.SolveStopMove(profiles, distance)
		if !ok {
			return Configf(
				"no recorded throw reaches a stop position %.1f away; available distances: %v",
				math.Round(distance*10)/10, catalog.AllDistances(profiles))
		}
	}

	// The device turns to face the stop position exactly.
	aim := math.Atan2(offset.X, offset.Z) * 180 / math.Pi
	device.RotationY = aim
	device.RecomputeBounds()
	projectile.Position.X = device.Position.X
	projectile.Position.Z = device.Position.Z

	mechanics.LaunchForce(projectile, throwStep, profile.ForceX, profile.ForceY, aim)
	return nil
}

// Valid allows the half of the device embedded in the wall to leave the
// room, and ignores holes and lava since the device hangs above them.
func (b *throwerBuilder) Valid(sess *Session, instances []*scene.Instance) bool {
	extended := sess.Scene.RoomDimensions
	extended.X += 2
	extended.Z += 2
	for _, inst := range instances {
		if inst.Debug.IgnoreBounds || len(inst.Bounds.BoxXZ) == 0 {
			continue
		}
		ok := geom.ValidateLocation(
			inst.Bounds,
			sess.Scene.PerformerStart.Position,
			sess.allBounds(true),
			extended,
		)
		if !ok {
			return false
		}
	}
	return true
}

func (b *throwerBuilder) Committed(sess *Session, source any, instances []*scene.Instance) error {
	device := instances[0]
	if held := sess.Scene.ObjectByID(device.Debug.HeldObjectID); held != nil {
		sess.Label([]*scene.Instance{held}, "projectiles")
	}
	return nil
}

func resolveWall(sess *Session, spec vary.String) (scene.Side, error) {
	name := spec.Resolve(sess.RNG)
	if name == "" {
		return throwerWalls[sess.RNG.Intn(len(throwerWalls))], nil
	}
	for _, side := range throwerWalls {
		if string(side) == name {
			return side, nil
		}
	}
	return "", Configf("unknown wall %q (expected left, right, front, or back)", name)
}
