package mechanics

import (
	"testing"

	"github.com/evalhouse/scenegen/internal/scene"
)

func TestStepAfterMovement(t *testing.T) {
	mover := scene.NewInstance("t", "cube")
	mover.Moves = append(mover.Moves, scene.MoveSegment{StepBegin: 5, StepEnd: 20})
	rotator := scene.NewInstance("t", "cube")
	rotator.Rotates = append(rotator.Rotates, scene.RotateSegment{StepBegin: 1, StepEnd: 30})
	still := scene.NewInstance("t", "cube")

	cases := []struct {
		name      string
		instances []*scene.Instance
		want      int
	}{
		{"no movement", []*scene.Instance{still}, 1},
		{"empty", nil, 1},
		{"single mover", []*scene.Instance{mover}, 21},
		{"latest wins", []*scene.Instance{mover, rotator, still}, 31},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StepAfterMovement(tc.instances); got != tc.want {
				t.Errorf("StepAfterMovement() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTurntableEndStep(t *testing.T) {
	cases := []struct {
		name            string
		begin           int
		rotationPerStep float64
		sweep           float64
		want            int
	}{
		{"quarter past full turn", 10, 9, 450, 19},
		{"two full turns keep one", 10, 9, 720, 49},
		{"full turn", 1, 9, 360, 40},
		{"no rotation", 7, 0, 360, 7},
		{"negative per-step", 1, -9, 90, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TurntableEndStep(tc.begin, tc.rotationPerStep, tc.sweep)
			if got != tc.want {
				t.Errorf("TurntableEndStep(%d, %v, %v) = %d, want %d",
					tc.begin, tc.rotationPerStep, tc.sweep, got, tc.want)
			}
		})
	}
}
