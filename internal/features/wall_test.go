package features

import (
	"testing"

	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/vary"
)

func wallsBuilder(t *testing.T) Builder {
	t.Helper()
	b, err := Lookup("walls")
	if err != nil {
		t.Fatalf("Lookup(walls) failed: %v", err)
	}
	return b
}

func TestWallDefaults(t *testing.T) {
	sess := newTestSession(t, 71)
	cfg := &config.WallConfig{
		Position:  vary.VecExactly(geom.Vec3{}),
		RotationY: vary.Exactly(0),
		Width:     vary.Exactly(4),
	}

	instances, err := Place(sess, wallsBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	wall := instances[0]

	if wall.Scale.Y != 3 {
		t.Errorf("Default wall height = %v, want the room height", wall.Scale.Y)
	}
	if wall.Scale.Z != 0.1 {
		t.Errorf("Default wall thickness = %v, want 0.1", wall.Scale.Z)
	}
	if wall.Position.Y != 1.5 || wall.Bounds.MinY != 0 {
		t.Errorf("Wall should stand on the floor, center %v MinY %v",
			wall.Position.Y, wall.Bounds.MinY)
	}
	if !wall.Structure || !wall.Kinematic {
		t.Error("Walls are kinematic structures")
	}
}

func TestWallSameMaterialAsRoom(t *testing.T) {
	sess := newTestSession(t, 71)
	cfg := &config.WallConfig{
		Position:           vary.VecExactly(geom.Vec3{X: 2, Z: 2}),
		RotationY:          vary.Exactly(0),
		Width:              vary.Exactly(2),
		SameMaterialAsRoom: true,
	}

	instances, err := Place(sess, wallsBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if got := instances[0].Material; got != sess.Scene.RoomMaterial {
		t.Errorf("Wall material = %q, want the room's %q", got, sess.Scene.RoomMaterial)
	}
}

func TestWallTooCloseToParallelWall(t *testing.T) {
	sess := newTestSession(t, 71)
	first := &config.WallConfig{
		Position:  vary.VecExactly(geom.Vec3{}),
		RotationY: vary.Exactly(0),
		Width:     vary.Exactly(4),
	}
	if _, err := Place(sess, wallsBuilder(t), first); err != nil {
		t.Fatalf("First wall failed: %v", err)
	}

	// Parallel, overlapping extents, 0.3 clear gap: an agent cannot pass.
	second := &config.WallConfig{
		Position:  vary.VecExactly(geom.Vec3{Z: 0.4}),
		RotationY: vary.Exactly(0),
		Width:     vary.Exactly(4),
	}
	if _, err := Place(sess, wallsBuilder(t), second); err == nil {
		t.Fatal("Expected a wall 0.3 away from a parallel wall to fail")
	}
}

func TestWallPassableGapIsAllowed(t *testing.T) {
	sess := newTestSession(t, 71)
	first := &config.WallConfig{
		Position:  vary.VecExactly(geom.Vec3{}),
		RotationY: vary.Exactly(0),
		Width:     vary.Exactly(4),
	}
	if _, err := Place(sess, wallsBuilder(t), first); err != nil {
		t.Fatalf("First wall failed: %v", err)
	}

	second := &config.WallConfig{
		Position:  vary.VecExactly(geom.Vec3{Z: 1}),
		RotationY: vary.Exactly(0),
		Width:     vary.Exactly(4),
	}
	if _, err := Place(sess, wallsBuilder(t), second); err != nil {
		t.Fatalf("Walls 0.9 apart leave room to pass, got %v", err)
	}
}

func TestWallTooCloseIgnoresPerpendicular(t *testing.T) {
	sess := newTestSession(t, 71)
	first := &config.WallConfig{
		Position:  vary.VecExactly(geom.Vec3{}),
		RotationY: vary.Exactly(0),
		Width:     vary.Exactly(2),
	}
	if _, err := Place(sess, wallsBuilder(t), first); err != nil {
		t.Fatalf("First wall failed: %v", err)
	}

	// Perpendicular and clear of the first wall's footprint.
	second := &config.WallConfig{
		Position:  vary.VecExactly(geom.Vec3{X: 2, Z: 2}),
		RotationY: vary.Exactly(90),
		Width:     vary.Exactly(2),
	}
	if _, err := Place(sess, wallsBuilder(t), second); err != nil {
		t.Fatalf("Perpendicular wall should place, got %v", err)
	}
}
