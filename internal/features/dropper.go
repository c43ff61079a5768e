package features

import (
	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/mechanics"
	"github.com/evalhouse/scenegen/internal/scene"
)

func init() { Register(&dropperBuilder{}) }

// dropperBuilder hangs a tube from the ceiling and parks a projectile in
// its mouth until the drop step releases it.
type dropperBuilder struct{}

func (b *dropperBuilder) Type() string { return "droppers" }

func (b *dropperBuilder) Reconcile(sess *Session, source any) (any, error) {
	cfg, ok := source.(*config.DropperConfig)
	if !ok {
		return nil, Configf("dropper request has unexpected type %T", source)
	}
	return cfg, nil
}

func (b *dropperBuilder) Build(sess *Session, source any) ([]*scene.Instance, error) {
	cfg := source.(*config.DropperConfig)
	room := sess.Scene.RoomDimensions

	projectile, reused, err := resolveProjectile(sess, cfg.Projectile, catalog.DropperShapes(), "dropper")
	if err != nil {
		return nil, err
	}

	dims := dummyProjectileDims(sess)
	if projectile != nil {
		dims = projectile.Scale
	}

	var x, z float64
	if reused {
		// The device goes directly over the existing object so the drop
		// lands back on its spot.
		x, z = projectile.Position.X, projectile.Position.Z
	} else {
		x = sampleAxis(sess, cfg.PositionX, (room.X-dims.X)/2)
		z = sampleAxis(sess, cfg.PositionZ, (room.Z-dims.Z)/2)
	}

	dropStep := 1
	if cfg.DropStep.IsSet() {
		dropStep = cfg.DropStep.Resolve(sess.RNG)
		if dropStep < 1 {
			return nil, Configf("dropper drop_step %d must be positive", dropStep)
		}
	}

	device := mechanics.NewDropper(x, z, room, dims)
	if projectile != nil {
		mechanics.HoldProjectile(device, projectile, dropStep)
	}
	if !reused {
		// The column under the tube stays clear so the drop has an
		// unobstructed path to the floor.
		device.Bounds.ExtendBottomToGround()
	}

	instances := []*scene.Instance{device}
	if projectile != nil && !reused {
		instances = append(instances, projectile)
	}
	return instances, nil
}

func (b *dropperBuilder) Committed(sess *Session, source any, instances []*scene.Instance) error {
	device := instances[0]
	if held := sess.Scene.ObjectByID(device.Debug.HeldObjectID); held != nil {
		sess.Label([]*scene.Instance{held}, "projectiles")
	}
	return nil
}
