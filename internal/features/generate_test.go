package features

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/vary"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestGenerateBasicScene(t *testing.T) {
	def := &config.Definition{
		Name: "basic",
		Room: config.RoomConfig{
			Dimensions: vary.VecExactly(geom.Vec3{X: 10, Y: 3, Z: 10}),
		},
		Performer: config.PerformerConfig{
			Position: vary.VecExactly(geom.Vec3{X: -4.5, Z: -4.5}),
		},
		Walls: []config.WallConfig{{
			Position:  vary.VecExactly(geom.Vec3{X: 2, Z: 2}),
			RotationY: vary.Exactly(0),
			Width:     vary.Exactly(2),
		}},
		Holes: []config.FloorAreaConfig{{
			PositionX: vary.ExactlyInt(-2),
			PositionZ: vary.ExactlyInt(-2),
		}},
	}

	sc, err := Generate(def, vary.NewSource(1), quietLogger())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if sc.Name != "basic" {
		t.Errorf("Scene name = %q", sc.Name)
	}
	if sc.RoomDimensions != (geom.Vec3{X: 10, Y: 3, Z: 10}) {
		t.Errorf("Room dimensions = %+v", sc.RoomDimensions)
	}
	if sc.ID == "" {
		t.Error("Scene has no ID")
	}
	if sc.RoomMaterial == "" {
		t.Error("No room material sampled")
	}
	if len(sc.Objects) != 1 {
		t.Errorf("Expected the wall as the only object, got %d", len(sc.Objects))
	}
	if len(sc.Holes) != 1 {
		t.Errorf("Expected one hole, got %d", len(sc.Holes))
	}
	if sc.LastStep != 1000 {
		t.Errorf("Default last step = %d, want 1000", sc.LastStep)
	}
}

func TestGenerateCountExpansion(t *testing.T) {
	def := &config.Definition{
		Lava: []config.FloorAreaConfig{{
			Common: config.Common{Num: vary.ExactlyInt(3)},
		}},
	}

	sc, err := Generate(def, vary.NewSource(2), quietLogger())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if len(sc.Lava) != 3 {
		t.Errorf("Expected 3 lava cells, got %d", len(sc.Lava))
	}
}

func TestGenerateStretchesLastStep(t *testing.T) {
	def := &config.Definition{
		TubeOccluders: []config.TubeOccluderConfig{{
			PositionX: vary.Exactly(0),
			PositionZ: vary.Exactly(0),
			Radius:    vary.Exactly(1),
			DownStep:  vary.ExactlyInt(2000),
		}},
	}

	sc, err := Generate(def, vary.NewSource(3), quietLogger())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	// Descent 2000..2011 plus the padding.
	if sc.LastStep != 2021 {
		t.Errorf("Last step = %d, want 2021", sc.LastStep)
	}
}

func TestGenerateHonorsPinnedLastStep(t *testing.T) {
	def := &config.Definition{
		LastStep: 500,
		TubeOccluders: []config.TubeOccluderConfig{{
			PositionX: vary.Exactly(0),
			PositionZ: vary.Exactly(0),
			Radius:    vary.Exactly(1),
			DownStep:  vary.ExactlyInt(2000),
		}},
	}

	sc, err := Generate(def, vary.NewSource(3), quietLogger())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if sc.LastStep != 500 {
		t.Errorf("Pinned last step = %d, want 500 even with later movement", sc.LastStep)
	}
}

func TestGeneratePartitionFloor(t *testing.T) {
	def := &config.Definition{
		Performer: config.PerformerConfig{
			Position: vary.VecExactly(geom.Vec3{Z: -4.5}),
		},
		PartitionFloor: &config.PartitionFloorConfig{
			LeftHalf: vary.Exactly(0.5),
		},
	}

	sc, err := Generate(def, vary.NewSource(8), quietLogger())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if sc.Partition == nil || sc.Partition.LeftHalf != 0.5 {
		t.Errorf("Scene partition = %+v, want left half 0.5", sc.Partition)
	}
}

func TestGenerateNotchedOccluder(t *testing.T) {
	def := &config.Definition{
		NotchedOccluders: []config.NotchedOccluderConfig{{
			Height:      vary.Exactly(2.5),
			NotchHeight: vary.Exactly(1),
			NotchWidth:  vary.Exactly(1),
			PositionZ:   vary.Exactly(2),
		}},
	}

	sc, err := Generate(def, vary.NewSource(8), quietLogger())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	var pieces int
	for _, obj := range sc.Objects {
		if obj.Feature == "notched_occluders" {
			pieces++
		}
	}
	if pieces != 3 {
		t.Errorf("Expected 3 occluder pieces in the scene, got %d", pieces)
	}
}

func TestGenerateResolvesLabelDependencies(t *testing.T) {
	// The thrower wants an object the placer has not placed yet when the
	// thrower's turn comes; the engine re-queues it and succeeds on the
	// second pass.
	def := &config.Definition{
		Throwers: []config.ThrowerConfig{{
			Projectile: config.ProjectileConfig{UseLabels: []string{"placed_objects"}},
		}},
		Placers: []config.PlacerConfig{{
			PlacedObject:         config.ProjectileConfig{Shape: vary.OneOfString("ball")},
			PlacedObjectPosition: vary.VecExactly(geom.Vec3{X: 2, Z: 2}),
		}},
	}

	sc, err := Generate(def, vary.NewSource(4), quietLogger())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	var thrower bool
	for _, obj := range sc.Objects {
		if obj.Feature == "throwers" {
			thrower = true
			held := sc.ObjectByID(obj.Debug.HeldObjectID)
			if held == nil {
				t.Fatal("Thrower holds nothing after the dependency resolved")
			}
			if len(held.Forces) == 0 {
				t.Error("Reused object has no launch scheduled")
			}
		}
	}
	if !thrower {
		t.Error("Delayed thrower never placed")
	}
}

func TestGenerateUnresolvableDependencies(t *testing.T) {
	def := &config.Definition{
		Placers: []config.PlacerConfig{{
			ActivateAfter: []string{"never"},
			PlacedObject:  config.ProjectileConfig{Shape: vary.OneOfString("ball")},
		}},
	}

	_, err := Generate(def, vary.NewSource(5), quietLogger())
	if !IsConfig(err) {
		t.Fatalf("Expected a config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unresolvable label dependencies") {
		t.Errorf("Unexpected error text: %v", err)
	}
}

func TestGenerateDefaultRoom(t *testing.T) {
	sc, err := Generate(&config.Definition{}, vary.NewSource(6), quietLogger())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if sc.RoomDimensions != geom.DefaultRoomDimensions {
		t.Errorf("Room dimensions = %+v, want the defaults", sc.RoomDimensions)
	}
}

func TestGeneratePropagatesConfigErrors(t *testing.T) {
	def := &config.Definition{
		Turntables: []config.TurntableConfig{{
			Radius: vary.Exactly(20),
		}},
	}

	_, err := Generate(def, vary.NewSource(7), quietLogger())
	if !IsConfig(err) {
		t.Fatalf("Expected the radius error to surface, got %v", err)
	}
}
