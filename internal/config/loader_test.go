package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evalhouse/scenegen/internal/vary"
)

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write definition: %v", err)
	}
	return path
}

func TestLoadCustomDefinition(t *testing.T) {
	path := writeDefinition(t, `
name: test-scene
room:
  dimensions:
    x: 12
    y: 4
    z: {min: 10, max: 14}
last_step: 500
platforms:
  - num: 2
    scale:
      x: [1, 2, 3]
      y: 1
      z: 2
    attached_ramps: [1, 2]
    labels: [main_platform]
walls:
  - num: {min: 0, max: 2}
`)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if def.Name != "test-scene" {
		t.Errorf("Name = %q", def.Name)
	}
	if def.LastStep != 500 {
		t.Errorf("LastStep = %d", def.LastStep)
	}

	rng := vary.NewSource(1)

	// Scalar, range, and choice forms of a vary spec.
	room := def.Room.Dimensions.Resolve(rng)
	if room.X != 12 || room.Y != 4 {
		t.Errorf("Fixed room axes = (%v, %v), want (12, 4)", room.X, room.Y)
	}
	if room.Z < 10 || room.Z > 14 {
		t.Errorf("Ranged room depth = %v, want within [10, 14]", room.Z)
	}

	if len(def.Platforms) != 1 {
		t.Fatalf("Platforms = %d entries", len(def.Platforms))
	}
	platform := def.Platforms[0]
	if got := platform.Count(rng); got != 2 {
		t.Errorf("Platform count = %d, want 2", got)
	}
	for i := 0; i < 20; i++ {
		scale := platform.Scale.Resolve(rng)
		if scale.X != 1 && scale.X != 2 && scale.X != 3 {
			t.Fatalf("Choice scale X = %v, want one of 1, 2, 3", scale.X)
		}
		if scale.Y != 1 || scale.Z != 2 {
			t.Fatalf("Fixed scale = (%v, %v), want (1, 2)", scale.Y, scale.Z)
		}
		ramps := platform.AttachedRamps.Resolve(rng)
		if ramps != 1 && ramps != 2 {
			t.Fatalf("Attached ramps = %d, want 1 or 2", ramps)
		}
	}
	if len(platform.Labels) != 1 || platform.Labels[0] != "main_platform" {
		t.Errorf("Labels = %v", platform.Labels)
	}

	wallCount := def.Walls[0].Count(rng)
	if wallCount < 0 || wallCount > 2 {
		t.Errorf("Wall count = %d, want within [0, 2]", wallCount)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Expected an error for a missing definition file")
	}
}

func TestLoadMalformedDefinition(t *testing.T) {
	path := writeDefinition(t, "room: [not, a, mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("Expected a parse error")
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	// With no custom path and no user config the embedded default wins.
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	def, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if def.Name != "default" {
		t.Errorf("Default name = %q", def.Name)
	}
	if len(def.Platforms) == 0 || len(def.Droppers) == 0 {
		t.Error("Embedded default should carry a platform and a dropper")
	}
	rng := vary.NewSource(1)
	room := def.Room.Dimensions.Resolve(rng)
	if room.X < 10 || room.X > 14 || room.Y != 4 {
		t.Errorf("Default room = %+v", room)
	}
}

func TestCommonCountDefaultsToOne(t *testing.T) {
	var c Common
	if got := c.Count(vary.NewSource(1)); got != 1 {
		t.Errorf("Count() = %d, want 1 when num is unset", got)
	}
}
