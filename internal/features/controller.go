package features

import "github.com/evalhouse/scenegen/internal/scene"

// MaxTries is the per-feature retry budget. Each try resolves the request
// again from scratch, so a crowded room gets fifty fresh chances before
// the failure is reported.
const MaxTries = 50

// Place runs the reconcile-build-validate-commit loop for a single
// feature request. Each attempt reconciles the source again, so retries
// resample every randomized field. PlacementErrors and validation
// failures consume a retry; DelayError and ConfigError abort immediately
// so the engine can re-queue or report. Committed instances a builder
// mutated through Session.Touch are rolled back whenever the attempt is
// discarded.
func Place(sess *Session, b Builder, source any) ([]*scene.Instance, error) {
	var lastErr error
	var lastCfg any
	for attempt := 1; attempt <= MaxTries; attempt++ {
		cfg, err := b.Reconcile(sess, source)
		if err != nil {
			return nil, err
		}
		lastCfg = cfg

		instances, err := b.Build(sess, cfg)
		if err != nil {
			sess.rollbackTouched()
			if IsDelay(err) || IsConfig(err) {
				return nil, err
			}
			lastErr = err
			sess.Log.Debug("placement attempt failed",
				"feature", b.Type(), "attempt", attempt, "err", err)
			continue
		}

		if !valid(sess, b, instances) {
			sess.rollbackTouched()
			sess.Log.Debug("placement attempt collided",
				"feature", b.Type(), "attempt", attempt)
			continue
		}

		sess.keepTouched()
		sess.Commit(instances)
		sess.Label(instances, b.Type())
		if l, ok := source.(interface{ CommonLabels() []string }); ok {
			sess.Label(instances, l.CommonLabels()...)
		}
		if c, ok := b.(Committer); ok {
			if err := c.Committed(sess, source, instances); err != nil {
				return nil, err
			}
		}
		sess.Log.Debug("placed feature",
			"feature", b.Type(), "attempt", attempt, "instances", len(instances))
		return instances, nil
	}

	reason := "no valid location found"
	if lastErr != nil {
		reason = lastErr.Error()
	}
	return nil, &PlacementError{
		Feature:  b.Type(),
		Attempts: MaxTries,
		Reason:   reason,
		Config:   lastCfg,
	}
}

func valid(sess *Session, b Builder, instances []*scene.Instance) bool {
	if v, ok := b.(Validator); ok {
		return v.Valid(sess, instances)
	}
	return ValidAgainstScene(sess, instances)
}

// ValidAgainstScene is the default validation: every instance that casts a
// footprint must fit the room, avoid the performer, and avoid everything
// already committed. Instances within one request are checked against the
// scene only, not against each other, since builders assemble composites
// with deliberately touching parts.
func ValidAgainstScene(sess *Session, instances []*scene.Instance) bool {
	for _, inst := range instances {
		if inst.Debug.IgnoreBounds || len(inst.Bounds.BoxXZ) == 0 {
			continue
		}
		if !sess.Validate(inst.Bounds) {
			return false
		}
	}
	return true
}
