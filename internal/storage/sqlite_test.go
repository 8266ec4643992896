package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	for _, secs := range []float64{12.5, 3.25, 40} {
		if _, err := store.SaveRun(Run{Mode: "normal", Seconds: secs, Ticks: int64(secs * 40)}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(Run{Mode: "death", Seconds: 99, Autonomous: true, ConfigHash: "abc"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("normal", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Seconds != 40 || runs[1].Seconds != 12.5 || runs[2].Seconds != 3.25 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
	if runs[0].Ticks != 1600 {
		t.Errorf("Expected 1600 ticks, got %d", runs[0].Ticks)
	}

	death, err := store.TopRuns("death", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(death) != 1 {
		t.Fatalf("Expected 1 death run, got %d", len(death))
	}
	if !death[0].Autonomous || death[0].ConfigHash != "abc" {
		t.Errorf("Run fields not preserved: %+v", death[0])
	}
	if death[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be stamped")
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 4 || all[0].Mode != "death" {
		t.Errorf("Expected all modes with death first, got %v", all)
	}
}

func TestStoreGeneratesIDs(t *testing.T) {
	store := openTemp(t)

	a, err := store.SaveRun(Run{Mode: "tutorial", Seconds: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	b, err := store.SaveRun(Run{Mode: "tutorial", Seconds: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if a == "" || a == b {
		t.Errorf("Expected distinct IDs, got %q and %q", a, b)
	}

	if _, err := store.SaveRun(Run{ID: a, Mode: "tutorial"}); err == nil {
		t.Error("Expected duplicate ID to fail")
	}
	if _, err := store.SaveRun(Run{Seconds: 1}); err == nil {
		t.Error("Expected run without mode to fail")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Mode: "normal", Seconds: float64(i+1) * 10})
	}

	runs, err := store.TopRuns("normal", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Seconds != 50 || runs[1].Seconds != 40 || runs[2].Seconds != 30 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	// Non-positive limits fall back to 10.
	runs, _ = store.TopRuns("normal", 0)
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs with default limit, got %d", len(runs))
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTemp(t)

	_, ok, err := store.BestRun("death")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if ok {
		t.Error("Expected no best run for empty mode")
	}

	store.SaveRun(Run{Mode: "death", Seconds: 5})
	store.SaveRun(Run{Mode: "death", Seconds: 15})
	store.SaveRun(Run{Mode: "death", Seconds: 10})

	best, ok, err := store.BestRun("death")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if !ok || best.Seconds != 15 {
		t.Errorf("Expected best run of 15s, got %+v (ok=%v)", best, ok)
	}
}

func TestStoreExplicitCreatedAt(t *testing.T) {
	store := openTemp(t)
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	store.SaveRun(Run{Mode: "normal", Seconds: 2, CreatedAt: at})
	best, ok, _ := store.BestRun("normal")
	if !ok {
		t.Fatal("Expected a run")
	}
	if !best.CreatedAt.Equal(at) {
		t.Errorf("Expected created_at %v, got %v", at, best.CreatedAt)
	}
}

func TestStoreCountAndDelete(t *testing.T) {
	store := openTemp(t)

	store.SaveRun(Run{Mode: "normal", Seconds: 1})
	store.SaveRun(Run{Mode: "normal", Seconds: 2})
	store.SaveRun(Run{Mode: "death", Seconds: 3})

	if n, _ := store.RunCount("normal"); n != 2 {
		t.Errorf("Expected 2 normal runs, got %d", n)
	}
	if n, _ := store.RunCount(""); n != 3 {
		t.Errorf("Expected 3 runs total, got %d", n)
	}

	deleted, err := store.DeleteRuns("normal")
	if err != nil {
		t.Fatalf("DeleteRuns() failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deleted, got %d", deleted)
	}
	if n, _ := store.RunCount("normal"); n != 0 {
		t.Errorf("Expected 0 normal runs after delete, got %d", n)
	}
	if n, _ := store.RunCount("death"); n != 1 {
		t.Errorf("Death runs should not be affected by deleting normal")
	}
}

func TestStoreNestedPath(t *testing.T) {
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

func TestStoreExpandHomePath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := Open("~/.cuberunner/runs.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".cuberunner", "runs.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}
