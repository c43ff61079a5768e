package features

import (
	"testing"

	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/geom"
	"github.com/evalhouse/scenegen/internal/scene"
	"github.com/evalhouse/scenegen/internal/vary"
)

func partitionBuilder(t *testing.T) Builder {
	t.Helper()
	b, err := Lookup("partition_floor")
	if err != nil {
		t.Fatalf("Lookup(partition_floor) failed: %v", err)
	}
	return b
}

func TestPartitionFloorSetsScene(t *testing.T) {
	sess := newTestSession(t, 11)
	sess.Scene.PerformerStart.Position = geom.Vec3{Z: -4.5}
	cfg := &config.PartitionFloorConfig{
		LeftHalf:  vary.Exactly(0.5),
		RightHalf: vary.Exactly(0.25),
	}

	instances, err := Place(sess, partitionBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if len(instances) != 2 {
		t.Fatalf("Expected a section per half, got %d", len(instances))
	}

	part := sess.Scene.Partition
	if part == nil {
		t.Fatal("Scene partition was not set")
	}
	if part.LeftHalf != 0.5 || part.RightHalf != 0.25 {
		t.Errorf("Partition = %+v, want left 0.5 right 0.25", part)
	}

	// In a 10 wide room, half of the left half-room is 2.5 wide from the
	// left wall.
	left := instances[0]
	if left.Scale.X != 2.5 || left.Position.X != -3.75 {
		t.Errorf("Left section scale %v at X %v, want 2.5 at -3.75",
			left.Scale.X, left.Position.X)
	}
	right := instances[1]
	if right.Scale.X != 1.25 || right.Position.X != 4.375 {
		t.Errorf("Right section scale %v at X %v, want 1.25 at 4.375",
			right.Scale.X, right.Position.X)
	}

	// Markers leave the object list but their footprints stay reserved.
	if len(sess.Scene.Objects) != 0 {
		t.Errorf("Section markers should not remain scene objects, got %d", len(sess.Scene.Objects))
	}
	if len(sess.Bounds) != 2 {
		t.Fatalf("Expected 2 reserved footprints, got %d", len(sess.Bounds))
	}
	candidate := geom.CreateBounds(
		geom.Vec3{X: 1, Y: 1, Z: 1}, geom.Vec3{},
		geom.Vec3{X: -4, Y: 0.5, Z: 0}, 0, 0.5)
	if sess.Validate(candidate) {
		t.Error("Placements on a raised section must be rejected")
	}
}

func TestPartitionFloorSingleSide(t *testing.T) {
	sess := newTestSession(t, 11)
	sess.Scene.PerformerStart.Position = geom.Vec3{Z: -4.5}
	cfg := &config.PartitionFloorConfig{LeftHalf: vary.Exactly(0.4)}

	instances, err := Place(sess, partitionBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if len(instances) != 1 {
		t.Fatalf("Expected only the left section, got %d", len(instances))
	}
	part := sess.Scene.Partition
	if part == nil || part.LeftHalf != 0.4 || part.RightHalf != 0 {
		t.Errorf("Partition = %+v, want left 0.4 right 0", part)
	}
}

func TestPartitionFloorRejectsSecond(t *testing.T) {
	sess := newTestSession(t, 11)
	sess.Scene.Partition = &scene.PartitionFloor{LeftHalf: 0.5}
	cfg := &config.PartitionFloorConfig{RightHalf: vary.Exactly(0.5)}

	_, err := Place(sess, partitionBuilder(t), cfg)
	if !IsConfig(err) {
		t.Fatalf("Expected a config error for a second partition, got %v", err)
	}
}

func TestPartitionFloorRequiresFraction(t *testing.T) {
	sess := newTestSession(t, 11)

	_, err := Place(sess, partitionBuilder(t), &config.PartitionFloorConfig{})
	if !IsConfig(err) {
		t.Fatalf("Expected a config error for an empty partition, got %v", err)
	}
}

func TestPartitionFloorBlockedByObjects(t *testing.T) {
	sess := newTestSession(t, 11)
	sess.Scene.PerformerStart.Position = geom.Vec3{Z: -4.5}
	blocker := floorBox(-4, 0)
	sess.Commit([]*scene.Instance{blocker})

	cfg := &config.PartitionFloorConfig{LeftHalf: vary.Exactly(0.5)}
	_, err := Place(sess, partitionBuilder(t), cfg)
	if err == nil {
		t.Fatal("Expected the raised section to collide with the object on it")
	}
}
