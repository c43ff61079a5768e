package features

import (
	"math"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

// projectileMaterials is the default pool for sampled projectiles.
var projectileMaterials = append(append(append([]catalog.Material{},
	catalog.MetalMaterials...), catalog.PlasticMaterials...), catalog.WoodMaterials...)

// resolveProjectile turns a projectile config into an instance. The second
// return is true when the instance already lives in the scene (reused via
// labels); such instances must not be committed again. An Empty config
// returns nil.
func resolveProjectile(sess *Session, cfg config.ProjectileConfig, allowed []string, feature string) (*scene.Instance, bool, error) {
	if cfg.Empty {
		return nil, false, nil
	}

	if len(cfg.UseLabels) > 0 {
		for _, label := range cfg.UseLabels {
			if existing := sess.Scene.Labels.GetOne(label); existing != nil {
				// The caller will mutate the committed instance, so its
				// state is snapshotted for rollback on a failed attempt.
				sess.Touch(existing)
				return existing, true, nil
			}
		}
		return nil, false, Delayf(cfg.UseLabels[0],
			"%s projectile references labels %v, none placed yet", feature, cfg.UseLabels)
	}

	shape := cfg.Shape.Resolve(sess.RNG)
	if shape == "" {
		shape = allowed[sess.RNG.Intn(len(allowed))]
	}
	if !catalog.KnownShape(shape) {
		return nil, false, Configf("%s projectile: unknown shape %q", feature, shape)
	}
	if !shapeAllowed(shape, allowed) {
		return nil, false, Configf(
			"shape %q is not usable with %s (allowed: %v)", shape, feature, allowed)
	}

	scale := projectileScale(sess, cfg, shape)
	mat, err := catalog.ResolveMaterial(sess.RNG, cfg.Material.Choices(), projectileMaterials, "")
	if err != nil {
		return nil, false, Configf("%s projectile: %v", feature, err)
	}

	proj := scene.NewInstance(feature+"_projectile", shape)
	proj.Material = mat.ID
	proj.ColorTags = mat.Colors
	proj.Scale = scale
	proj.StandingY = scale.Y / 2
	proj.Mass = math.Max(0.5, scale.X*scale.Y*scale.Z)
	return proj, false, nil
}

func projectileScale(sess *Session, cfg config.ProjectileConfig, shape string) geom.Vec3 {
	if shape == "soccer_ball" {
		// The ball keeps its aspect ratio: one sample drives all axes.
		s := catalog.SoccerBallScaleMin +
			sess.RNG.Float64()*(catalog.SoccerBallScaleMax-catalog.SoccerBallScaleMin)
		if cfg.Scale.IsSet() {
			s = geom.Clamp(cfg.Scale.Resolve(sess.RNG),
				catalog.SoccerBallScaleMin, catalog.SoccerBallScaleMax)
		}
		return geom.Vec3{X: s, Y: s, Z: s}
	}

	options := catalog.DefaultScales(shape)
	base := geom.Vec3{X: 1, Y: 1, Z: 1}
	if len(options) > 0 {
		base = options[sess.RNG.Intn(len(options))]
	}
	if cfg.Scale.IsSet() {
		factor := cfg.Scale.Resolve(sess.RNG)
		base = geom.Vec3{X: base.X * factor, Y: base.Y * factor, Z: base.Z * factor}
	}
	return base
}

// dummyProjectileDims sizes a device that holds nothing.
func dummyProjectileDims(sess *Session) geom.Vec3 {
	return geom.Vec3{
		X: uniformIn(sess.RNG, 0.5, 1.0),
		Y: uniformIn(sess.RNG, 0.5, 1.0),
		Z: uniformIn(sess.RNG, 0.5, 1.0),
	}
}

func shapeAllowed(shape string, allowed []string) bool {
	for _, s := range allowed {
		if s == shape {
			return true
		}
	}
	return false
}
