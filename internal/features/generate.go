package features

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/scene"
)

// lastStepPadding is the extra room left after the final scheduled
// movement when the definition does not pin the last step.
const lastStepPadding = 10

// request is one queued feature placement. Delayed requests keep their
// last error for the final report.
type request struct {
	builder Builder
	source  any
	lastErr error
}

// Generate samples one concrete scene from a definition. Requests whose
// label dependencies are not placed yet are re-queued; the loop fails only
// when a full pass makes no progress.
func Generate(def *config.Definition, rng *rand.Rand, logger *log.Logger) (*scene.Scene, error) {
	sc := scene.New(def.Room.Dimensions.Resolve(rng))
	sc.Name = def.Name
	if def.LastStep > 0 {
		sc.LastStep = def.LastStep
	}
	sc.PerformerStart = scene.PerformerStart{
		Position:  def.Performer.Position.Resolve(rng),
		RotationY: def.Performer.RotationY.Resolve(rng),
	}
	roomMat := catalog.RoomWallMaterials[rng.Intn(len(catalog.RoomWallMaterials))]
	sc.RoomMaterial = roomMat.ID

	sess := NewSession(sc, rng, logger)

	queue, err := expandRequests(def, rng)
	if err != nil {
		return nil, err
	}

	for len(queue) > 0 {
		var delayed []request
		progress := false

		for _, req := range queue {
			_, err := Place(sess, req.builder, req.source)
			switch {
			case err == nil:
				progress = true
			case IsDelay(err):
				sess.Log.Debug("feature delayed", "feature", req.builder.Type(), "err", err)
				req.lastErr = err
				delayed = append(delayed, req)
			default:
				return nil, err
			}
		}

		if len(delayed) > 0 && !progress {
			return nil, Configf("unresolvable label dependencies: %v", delayReasons(delayed))
		}
		queue = delayed
	}

	// A pinned last_step is authoritative; only unpinned scenes stretch
	// to cover their schedules.
	if def.LastStep == 0 {
		stretchLastStep(sc)
	}
	return sc, nil
}

// expandRequests flattens the definition into one request per placement,
// structural features first so mechanisms can reference them by label.
func expandRequests(def *config.Definition, rng *rand.Rand) ([]request, error) {
	var queue []request

	add := func(typeName string, count int, source any) error {
		b, err := Lookup(typeName)
		if err != nil {
			return err
		}
		for n := 0; n < count; n++ {
			queue = append(queue, request{builder: b, source: source})
		}
		return nil
	}

	for i := range def.Walls {
		cfg := &def.Walls[i]
		if err := add("walls", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.Platforms {
		cfg := &def.Platforms[i]
		if err := add("platforms", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.Ramps {
		cfg := &def.Ramps[i]
		if err := add("ramps", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.LOccluders {
		cfg := &def.LOccluders[i]
		if err := add("l_occluders", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.Doors {
		cfg := &def.Doors[i]
		if err := add("doors", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.Holes {
		cfg := &def.Holes[i]
		if err := add("holes", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.Lava {
		cfg := &def.Lava[i]
		if err := add("lava", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.FloorMaterials {
		cfg := &def.FloorMaterials[i]
		if err := add("floor_materials", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	if def.PartitionFloor != nil {
		if err := add("partition_floor", 1, def.PartitionFloor); err != nil {
			return nil, err
		}
	}
	for i := range def.Turntables {
		cfg := &def.Turntables[i]
		if err := add("turntables", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.TubeOccluders {
		cfg := &def.TubeOccluders[i]
		if err := add("tube_occluders", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.NotchedOccluders {
		cfg := &def.NotchedOccluders[i]
		if err := add("notched_occluders", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.Droppers {
		cfg := &def.Droppers[i]
		if err := add("droppers", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.Throwers {
		cfg := &def.Throwers[i]
		if err := add("throwers", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	for i := range def.Placers {
		cfg := &def.Placers[i]
		if err := add("placers", cfg.Count(rng), cfg); err != nil {
			return nil, err
		}
	}
	return queue, nil
}

func delayReasons(delayed []request) []string {
	out := make([]string, len(delayed))
	for i, req := range delayed {
		out[i] = req.lastErr.Error()
	}
	return out
}

// stretchLastStep makes sure the scene runs long enough for every
// scheduled movement, force, and physics release to play out.
func stretchLastStep(sc *scene.Scene) {
	last := sc.LastStep
	for _, obj := range sc.Objects {
		if end := obj.MovementEndStep(); end+lastStepPadding > last {
			last = end + lastStepPadding
		}
		for _, f := range obj.Forces {
			if f.StepEnd+lastStepPadding > last {
				last = f.StepEnd + lastStepPadding
			}
		}
		if obj.TogglePhysicsStep+lastStepPadding > last {
			last = obj.TogglePhysicsStep + lastStepPadding
		}
	}
	sc.LastStep = last
}
