package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	_, err = store.SaveRun(RunEntry{SceneID: "scene-1", Name: "basic", Seed: 7, Objects: 4, LastStep: 1000})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	_, err = store.SaveRun(RunEntry{SceneID: "scene-2", Name: "basic", Seed: 8, Objects: 9, LastStep: 1200})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	_, err = store.SaveRun(RunEntry{SceneID: "scene-3", Name: "crowded", Seed: 9, Error: "failed to place platforms after 50 attempts: no valid location found"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].SceneID != "scene-3" || runs[2].SceneID != "scene-1" {
		t.Errorf("Runs not in newest-first order: %v", runs)
	}
	if runs[0].Error == "" {
		t.Error("Expected failed run to keep its error message")
	}
	if runs[2].Objects != 4 || runs[2].Seed != 7 {
		t.Errorf("Run fields not round-tripped: %+v", runs[2])
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		store.SaveRun(RunEntry{SceneID: "scene", Seed: int64(i), Objects: i})
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Seed != 4 {
		t.Errorf("Expected newest run first, got seed %d", runs[0].Seed)
	}
}

func TestStoreRunBySceneID(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Nothing saved yet
	run, err := store.RunBySceneID("missing")
	if err != nil {
		t.Fatalf("RunBySceneID() failed: %v", err)
	}
	if run != nil {
		t.Errorf("Expected nil for unknown scene, got %+v", run)
	}

	store.SaveRun(RunEntry{SceneID: "scene-42", Name: "ramps", Seed: 42, Objects: 6, LastStep: 1000})

	run, err = store.RunBySceneID("scene-42")
	if err != nil {
		t.Fatalf("RunBySceneID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("Expected a run for scene-42")
	}
	if run.Name != "ramps" || run.Objects != 6 {
		t.Errorf("Unexpected run: %+v", run)
	}
}

func TestStoreRunStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Empty history
	stats, err := store.GetRunStats()
	if err != nil {
		t.Fatalf("GetRunStats() failed: %v", err)
	}
	if stats.RunsCount != 0 || stats.Failures != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(RunEntry{SceneID: "a", Seed: 1, Objects: 2})
	store.SaveRun(RunEntry{SceneID: "b", Seed: 2, Objects: 4})
	store.SaveRun(RunEntry{SceneID: "c", Seed: 3, Error: "invalid configuration: bad ramp angle"})

	stats, err = store.GetRunStats()
	if err != nil {
		t.Fatalf("GetRunStats() failed: %v", err)
	}
	if stats.RunsCount != 3 {
		t.Errorf("Expected 3 runs, got %d", stats.RunsCount)
	}
	if stats.Failures != 1 {
		t.Errorf("Expected 1 failure, got %d", stats.Failures)
	}
	if stats.AvgObjects != 2 {
		t.Errorf("Expected avg objects of 2, got %f", stats.AvgObjects)
	}
	if stats.LastRun.IsZero() {
		t.Error("Expected last run timestamp to be set")
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(RunEntry{SceneID: "a", Seed: 1})
	store.SaveRun(RunEntry{SceneID: "b", Seed: 2})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Nested directories are created on demand
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
