package features

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
)

// Session carries the shared state of one generation run: the scene under
// construction, extra reserved footprints, and the RNG every builder
// draws from.
type Session struct {
	Scene *scene.Scene
	// Bounds holds reserved footprints that are not backed by a scene
	// object, such as space held open for a future placement.
	Bounds []geom.Bounds
	RNG    *rand.Rand
	Log    *log.Logger

	touched []touchedInstance
}

// touchedInstance pairs a committed instance with its pre-attempt state.
type touchedInstance struct {
	inst  *scene.Instance
	saved *scene.Instance
}

// NewSession wraps a scene for feature placement.
func NewSession(sc *scene.Scene, rng *rand.Rand, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{Scene: sc, RNG: rng, Log: logger}
}

// Validate checks a candidate footprint against the room, the performer
// start, and every bounds committed so far.
func (s *Session) Validate(candidate geom.Bounds) bool {
	return geom.ValidateLocation(
		candidate,
		s.Scene.PerformerStart.Position,
		s.allBounds(false),
		s.Scene.RoomDimensions,
	)
}

// ValidateIgnoringGround is Validate with hole and lava cells excluded.
// Wall-embedded devices hang above the floor and may cross those cells.
func (s *Session) ValidateIgnoringGround(candidate geom.Bounds) bool {
	return geom.ValidateLocation(
		candidate,
		s.Scene.PerformerStart.Position,
		s.allBounds(true),
		s.Scene.RoomDimensions,
	)
}

func (s *Session) allBounds(ignoreGround bool) []geom.Bounds {
	all := s.Scene.FindBounds(ignoreGround)
	return append(all, s.Bounds...)
}

// Commit adds instances to the scene. Their footprints become visible to
// later placements through the scene's bounds walk; instances flagged
// IgnoreBounds cast no footprint.
func (s *Session) Commit(instances []*scene.Instance) {
	for _, inst := range instances {
		s.Scene.AddObject(inst)
	}
}

// Touch snapshots an already-committed instance before a builder mutates
// it. A failed attempt is fully discarded, so the controller rolls every
// touched instance back to its snapshot; a committed attempt keeps the
// mutations. Touching the same instance twice in one attempt keeps the
// first snapshot.
func (s *Session) Touch(inst *scene.Instance) {
	for _, t := range s.touched {
		if t.inst == inst {
			return
		}
	}
	s.touched = append(s.touched, touchedInstance{inst: inst, saved: inst.Clone()})
}

// rollbackTouched restores every touched instance and ends the attempt
// scope.
func (s *Session) rollbackTouched() {
	for _, t := range s.touched {
		*t.inst = *t.saved
	}
	s.touched = nil
}

// keepTouched ends the attempt scope, keeping the mutations.
func (s *Session) keepTouched() {
	s.touched = nil
}

// Label registers instances under the given labels for later lookup by
// mechanism features.
func (s *Session) Label(instances []*scene.Instance, labels ...string) {
	if len(labels) == 0 {
		return
	}
	for _, inst := range instances {
		s.Scene.Labels.Put(inst, labels...)
	}
}
