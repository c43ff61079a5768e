package catalog

import "math"

// MoveProfile is one pre-recorded force-to-motion profile: applying
// ForceX (times the object's mass) makes the object travel the recorded
// per-step distances before stopping. The catalog is deliberately small
// and never interpolated; distances outside it are configuration errors.
type MoveProfile struct {
	ForceX          float64
	ForceY          float64
	XDistanceByStep []float64
}

// Distance returns the total travel of the profile.
func (p MoveProfile) Distance() float64 {
	if len(p.XDistanceByStep) == 0 {
		return 0
	}
	return p.XDistanceByStep[len(p.XDistanceByStep)-1] - p.XDistanceByStep[0]
}

// Steps returns how many steps the motion lasts.
func (p MoveProfile) Steps() int {
	return len(p.XDistanceByStep)
}

func rampUp(total float64, steps int) []float64 {
	// Decelerating roll: most distance covered early.
	out := make([]float64, steps)
	for i := range out {
		t := float64(i) / float64(steps-1)
		out[i] = total * (1 - math.Pow(1-t, 2))
	}
	return out
}

// BaseMoveList holds rolling profiles for throwers at height 0.
var BaseMoveList = []MoveProfile{
	{ForceX: 300, XDistanceByStep: rampUp(2.0, 20)},
	{ForceX: 450, XDistanceByStep: rampUp(4.0, 28)},
	{ForceX: 600, XDistanceByStep: rampUp(6.0, 35)},
	{ForceX: 750, XDistanceByStep: rampUp(8.0, 41)},
}

// TossMoveList holds tossing profiles for throwers at height 1; these
// carry an upward force component.
var TossMoveList = []MoveProfile{
	{ForceX: 400, ForceY: 300, XDistanceByStep: rampUp(3.0, 24)},
	{ForceX: 550, ForceY: 450, XDistanceByStep: rampUp(5.0, 30)},
	{ForceX: 700, ForceY: 600, XDistanceByStep: rampUp(7.0, 37)},
}

// AllDistances returns each profile's rounded total distance, for error
// reporting.
func AllDistances(profiles []MoveProfile) []float64 {
	out := make([]float64, len(profiles))
	for i, p := range profiles {
		out[i] = math.Round(p.Distance()*10) / 10
	}
	return out
}
