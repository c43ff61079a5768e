package features

import (
	"testing"

	"github.com/evalhouse/scenegen/internal/catalog"
	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/vary"
)

func turntablesBuilder(t *testing.T) Builder {
	t.Helper()
	b, err := Lookup("turntables")
	if err != nil {
		t.Fatalf("Lookup(turntables) failed: %v", err)
	}
	return b
}

func TestTurntableSweepTiming(t *testing.T) {
	sess := newTestSession(t, 51)
	cfg := &config.TurntableConfig{
		PositionX:        vary.Exactly(2),
		PositionZ:        vary.Exactly(2),
		Radius:           vary.Exactly(1),
		RotationY:        vary.Exactly(9),
		StepBegin:        vary.ExactlyInt(10),
		EndAfterRotation: vary.Exactly(450),
	}

	instances, err := Place(sess, turntablesBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	tt := instances[0]

	if tt.Shape != "rotating_cog" {
		t.Errorf("Turntable shape = %q, want rotating_cog", tt.Shape)
	}
	if tt.Scale.X != 2 || tt.Scale.Z != 2 || tt.Scale.Y != 0.1 {
		t.Errorf("Turntable scale = %+v, want 2 x 0.1 x 2", tt.Scale)
	}
	if tt.Position.Y != 0.05 {
		t.Errorf("Turntable center = %v, want half the default height", tt.Position.Y)
	}

	if len(tt.Rotates) != 1 {
		t.Fatalf("Expected one rotation segment, got %d", len(tt.Rotates))
	}
	// 450 degrees reduces to 90, which at 9 per step is 10 steps.
	rotate := tt.Rotates[0]
	if rotate.StepBegin != 10 || rotate.StepEnd != 19 {
		t.Errorf("Rotation runs %d..%d, want 10..19", rotate.StepBegin, rotate.StepEnd)
	}
	if rotate.Vector.Y != 9 {
		t.Errorf("Per-step rotation = %v, want 9", rotate.Vector.Y)
	}
}

func TestTurntableFullTurnByDefault(t *testing.T) {
	sess := newTestSession(t, 51)
	cfg := &config.TurntableConfig{
		PositionX: vary.Exactly(0),
		PositionZ: vary.Exactly(0),
		Radius:    vary.Exactly(1),
		RotationY: vary.Exactly(9),
	}

	instances, err := Place(sess, turntablesBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	rotate := instances[0].Rotates[0]
	// A full 360 at 9 per step is 40 steps starting from step 1.
	if rotate.StepBegin != 1 || rotate.StepEnd != 40 {
		t.Errorf("Default rotation runs %d..%d, want 1..40", rotate.StepBegin, rotate.StepEnd)
	}
}

func TestTurntableWithoutRotation(t *testing.T) {
	sess := newTestSession(t, 51)
	cfg := &config.TurntableConfig{
		PositionX: vary.Exactly(0),
		PositionZ: vary.Exactly(0),
		Radius:    vary.Exactly(1),
		StepEnd:   vary.ExactlyInt(50),
	}

	instances, err := Place(sess, turntablesBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if len(instances[0].Rotates) != 0 {
		t.Error("A zero per-step rotation schedules no movement")
	}
}

func TestTurntableDefaultMaterial(t *testing.T) {
	sess := newTestSession(t, 51)
	cfg := &config.TurntableConfig{
		PositionX: vary.Exactly(-2),
		PositionZ: vary.Exactly(-2),
		Radius:    vary.Exactly(1),
	}

	instances, err := Place(sess, turntablesBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if got := instances[0].Material; got != catalog.TurntableMaterial.ID {
		t.Errorf("Turntable material = %q, want the catalog default", got)
	}
}

func TestTurntableTimingValidation(t *testing.T) {
	sess := newTestSession(t, 51)

	cases := []struct {
		name string
		cfg  *config.TurntableConfig
	}{
		{"end before begin", &config.TurntableConfig{
			Radius:    vary.Exactly(1),
			RotationY: vary.Exactly(9),
			StepBegin: vary.ExactlyInt(10),
			StepEnd:   vary.ExactlyInt(5),
		}},
		{"non-positive begin", &config.TurntableConfig{
			Radius:    vary.Exactly(1),
			StepBegin: vary.ExactlyInt(0),
		}},
		{"radius too large", &config.TurntableConfig{
			Radius: vary.Exactly(6),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Place(sess, turntablesBuilder(t), tc.cfg); !IsConfig(err) {
				t.Fatalf("Expected a config error, got %v", err)
			}
		})
	}
}
