package mechanics

import "github.com/evalhouse/scenegen/internal/scene"

// StepAfterMovement returns the first step after every given instance has
// finished its scripted movement. Motionless instances contribute
// nothing; the result is never before step 1.
func StepAfterMovement(instances []*scene.Instance) int {
	last := 0
	for _, inst := range instances {
		if end := inst.MovementEndStep(); end > last {
			last = end
		}
	}
	if last == 0 {
		return 1
	}
	return last + 1
}

// TurntableEndStep converts a total rotation sweep in degrees into the
// inclusive end step of a rotation that turns rotationPerStep degrees
// each step. The sweep is taken modulo 360, with a full turn kept as 360
// rather than collapsing to zero.
func TurntableEndStep(stepBegin int, rotationPerStep, sweep float64) int {
	if rotationPerStep == 0 {
		return stepBegin
	}
	remainder := mod360(sweep)
	if remainder == 0 {
		remainder = 360
	}
	steps := int(remainder / abs(rotationPerStep))
	return stepBegin - 1 + steps
}

func mod360(v float64) float64 {
	m := v - float64(int(v/360))*360
	if m < 0 {
		m += 360
	}
	return m
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
