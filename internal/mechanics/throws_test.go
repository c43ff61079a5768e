package mechanics

import (
	"testing"

	"github.com/evalhouse/scenegen/internal/catalog"
)

func TestSolveStopMove(t *testing.T) {
	profile, ok := SolveStopMove(catalog.BaseMoveList, 4.0)
	if !ok {
		t.Fatal("Expected a profile for the recorded distance 4.0")
	}
	if profile.ForceX != 450 {
		t.Errorf("Profile force = %v, want 450", profile.ForceX)
	}

	// Near misses round onto the recorded distance.
	if _, ok := SolveStopMove(catalog.BaseMoveList, 4.04); !ok {
		t.Error("Distance 4.04 rounds to 4.0 and should match")
	}

	if _, ok := SolveStopMove(catalog.BaseMoveList, 2.5); ok {
		t.Error("Distance 2.5 has no recorded profile and must not match")
	}
}

func TestMinimumDistanceProfile(t *testing.T) {
	if got := MinimumDistanceProfile(catalog.BaseMoveList); got.ForceX != 300 {
		t.Errorf("Minimum rolling profile force = %v, want 300", got.ForceX)
	}
	if got := MinimumDistanceProfile(catalog.TossMoveList); got.ForceX != 400 {
		t.Errorf("Minimum toss profile force = %v, want 400", got.ForceX)
	}
}

func TestMoveProfileCatalogDistances(t *testing.T) {
	base := catalog.AllDistances(catalog.BaseMoveList)
	wantBase := []float64{2, 4, 6, 8}
	for i, d := range wantBase {
		if base[i] != d {
			t.Fatalf("Base distances = %v, want %v", base, wantBase)
		}
	}
	toss := catalog.AllDistances(catalog.TossMoveList)
	wantToss := []float64{3, 5, 7}
	for i, d := range wantToss {
		if toss[i] != d {
			t.Fatalf("Toss distances = %v, want %v", toss, wantToss)
		}
	}
}
