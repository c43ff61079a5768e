package features

import (
	"math"
	"testing"

	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/vary"
)

func notchedBuilder(t *testing.T) Builder {
	t.Helper()
	b, err := Lookup("notched_occluders")
	if err != nil {
		t.Fatalf("Lookup(notched_occluders) failed: %v", err)
	}
	return b
}

func TestNotchedOccluderAssembly(t *testing.T) {
	sess := newTestSession(t, 17)
	cfg := &config.NotchedOccluderConfig{
		Height:      vary.Exactly(2.5),
		NotchHeight: vary.Exactly(1),
		NotchWidth:  vary.Exactly(1),
		PositionZ:   vary.Exactly(2),
		DownStep:    vary.ExactlyInt(5),
		UpStep:      vary.ExactlyInt(60),
	}

	instances, err := Place(sess, notchedBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if len(instances) != 3 {
		t.Fatalf("Expected two sides plus the top bar, got %d instances", len(instances))
	}

	left, right, top := instances[0], instances[1], instances[2]
	// A 1 wide notch in a 10 wide room leaves 4.5 per side.
	if left.Scale.X != 4.5 || right.Scale.X != 4.5 {
		t.Errorf("Side widths = %v and %v, want 4.5", left.Scale.X, right.Scale.X)
	}
	if left.Position.X != -2.75 || right.Position.X != 2.75 {
		t.Errorf("Side centers at %v and %v, want -2.75 and 2.75",
			left.Position.X, right.Position.X)
	}
	if top.Scale.X != 1 || top.Scale.Y != 1.5 {
		t.Errorf("Top bar scale = %v x %v, want 1 x 1.5", top.Scale.X, top.Scale.Y)
	}

	// Pieces park one room height above their landing spot.
	room := sess.Scene.RoomDimensions
	if want := 2.5/2 + room.Y; left.Position.Y != want {
		t.Errorf("Parked side center Y = %v, want %v", left.Position.Y, want)
	}
	for _, piece := range instances {
		if piece.Position.Z != 2 {
			t.Errorf("Piece Z = %v, want 2", piece.Position.Z)
		}
	}

	// The footprint is the landing spot, with the notch left open.
	if left.Bounds.MinY != 0 || left.Bounds.MaxY != 2.5 {
		t.Errorf("Side bounds Y = [%v, %v], want [0, 2.5]", left.Bounds.MinY, left.Bounds.MaxY)
	}
	if top.Bounds.MinY != 1 {
		t.Errorf("Top bar bounds MinY = %v, objects must pass through the notch below 1", top.Bounds.MinY)
	}

	travel := int(math.Ceil(room.Y / tubeSpeed))
	for _, piece := range instances {
		if len(piece.Moves) != 2 {
			t.Fatalf("Expected a descent and a raise, got %d moves", len(piece.Moves))
		}
		down, up := piece.Moves[0], piece.Moves[1]
		if down.StepBegin != 5 || down.StepEnd != 5+travel-1 || down.Vector.Y != -tubeSpeed {
			t.Errorf("Descent schedule = %+v", down)
		}
		if up.StepBegin != 60 || up.StepEnd != 60+travel-1 || up.Vector.Y != tubeSpeed {
			t.Errorf("Raise schedule = %+v", up)
		}
	}
}

func TestNotchedOccluderRaiseWaitsForDescent(t *testing.T) {
	sess := newTestSession(t, 17)
	cfg := &config.NotchedOccluderConfig{
		Height:      vary.Exactly(2.5),
		NotchHeight: vary.Exactly(1),
		NotchWidth:  vary.Exactly(1),
		PositionZ:   vary.Exactly(2),
		DownStep:    vary.ExactlyInt(5),
		UpStep:      vary.ExactlyInt(6),
	}

	instances, err := Place(sess, notchedBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	travel := int(math.Ceil(sess.Scene.RoomDimensions.Y / tubeSpeed))
	up := instances[0].Moves[1]
	if up.StepBegin != 5+travel {
		t.Errorf("Raise begins at %d, want right after the descent ends at %d",
			up.StepBegin, 5+travel)
	}
}

func TestNotchedOccluderRejectsDeepNotch(t *testing.T) {
	sess := newTestSession(t, 17)
	cfg := &config.NotchedOccluderConfig{
		Height:      vary.Exactly(2.5),
		NotchHeight: vary.Exactly(2.5),
	}

	_, err := Place(sess, notchedBuilder(t), cfg)
	if !IsConfig(err) {
		t.Fatalf("Expected a config error for a notch as tall as the occluder, got %v", err)
	}
}

func TestNotchedOccluderRejectsWideNotch(t *testing.T) {
	sess := newTestSession(t, 17)
	cfg := &config.NotchedOccluderConfig{
		NotchWidth: vary.Exactly(12),
	}

	_, err := Place(sess, notchedBuilder(t), cfg)
	if !IsConfig(err) {
		t.Fatalf("Expected a config error for a notch wider than the room, got %v", err)
	}
}

func TestNotchedOccluderClampsPositionToRoom(t *testing.T) {
	sess := newTestSession(t, 17)
	cfg := &config.NotchedOccluderConfig{
		Height:      vary.Exactly(2.5),
		NotchHeight: vary.Exactly(1),
		NotchWidth:  vary.Exactly(1),
		PositionZ:   vary.Exactly(40),
	}

	instances, err := Place(sess, notchedBuilder(t), cfg)
	if err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	room := sess.Scene.RoomDimensions
	want := (room.Z - notchedThickness) / 2
	if instances[0].Position.Z != want {
		t.Errorf("Clamped Z = %v, want %v", instances[0].Position.Z, want)
	}
}
