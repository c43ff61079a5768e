package mechanics

import (
	"math"

	"github.com/evalhouse/scenegen/internal/catalog"
)

// SolveStopMove finds the recorded profile whose travel matches the
// required distance. Distances are compared after rounding to a tenth,
// matching the precision the profiles were recorded at. There is no
// interpolation: a distance between catalog entries has no profile.
func SolveStopMove(profiles []catalog.MoveProfile, distance float64) (catalog.MoveProfile, bool) {
	want := math.Round(distance*10) / 10
	for _, p := range profiles {
		if math.Round(p.Distance()*10)/10 == want {
			return p, true
		}
	}
	return catalog.MoveProfile{}, false
}

// MinimumDistanceProfile returns the shortest-travel profile. Used when
// the requested stop position lies outside the room, where any rollout
// ends against the far wall anyway.
func MinimumDistanceProfile(profiles []catalog.MoveProfile) catalog.MoveProfile {
	best := profiles[0]
	for _, p := range profiles[1:] {
		if p.Distance() < best.Distance() {
			best = p
		}
	}
	return best
}
