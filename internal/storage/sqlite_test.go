package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

func openTestStore(t *testing.T) *Store {
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	a := core.BeatAnalysis{Tempo: 120, Duration: 3, Beats: []float64{0.5, 1.0, 1.5, 2.0}}
	if err := store.SaveAnalysis("abc", "audio", "/music/song.wav", a); err != nil {
		t.Fatalf("SaveAnalysis() failed: %v", err)
	}

	got, ok, err := store.LoadAnalysis("abc")
	if err != nil {
		t.Fatalf("LoadAnalysis() failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got.Tempo != 120 || got.Duration != 3 {
		t.Errorf("Loaded tempo=%v duration=%v, expected 120/3", got.Tempo, got.Duration)
	}
	if len(got.Beats) != len(a.Beats) {
		t.Fatalf("Loaded %d beats, expected %d", len(got.Beats), len(a.Beats))
	}
	for i := range a.Beats {
		if got.Beats[i] != a.Beats[i] {
			t.Errorf("Beat %d = %v, expected %v", i, got.Beats[i], a.Beats[i])
		}
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.LoadAnalysis("missing")
	if err != nil {
		t.Fatalf("LoadAnalysis() failed: %v", err)
	}
	if ok {
		t.Error("Expected cache miss")
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveAnalysis("h", "audio", "a.wav", core.BeatAnalysis{Beats: []float64{1, 2, 3}}); err != nil {
		t.Fatalf("SaveAnalysis() failed: %v", err)
	}
	if err := store.SaveAnalysis("h", "audio", "a.wav", core.BeatAnalysis{Tempo: 90, Beats: []float64{4}}); err != nil {
		t.Fatalf("SaveAnalysis() failed: %v", err)
	}

	got, ok, err := store.LoadAnalysis("h")
	if err != nil || !ok {
		t.Fatalf("LoadAnalysis() = %v, %v", ok, err)
	}
	if got.Tempo != 90 || len(got.Beats) != 1 || got.Beats[0] != 4 {
		t.Errorf("Second save should replace the first, got %+v", got)
	}
}

func TestStoreRecentAndClear(t *testing.T) {
	store := openTestStore(t)

	for _, h := range []string{"one", "two", "three"} {
		if err := store.SaveAnalysis(h, "beatmap", h+".beats.yaml", core.BeatAnalysis{Beats: []float64{0}}); err != nil {
			t.Fatalf("SaveAnalysis(%s) failed: %v", h, err)
		}
	}

	entries, err := store.RecentAnalyses(2)
	if err != nil {
		t.Fatalf("RecentAnalyses() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries with limit, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Source != "beatmap" || e.BeatCount != 1 {
			t.Errorf("Entry %+v has unexpected fields", e)
		}
	}

	n, err := store.ClearAnalyses()
	if err != nil {
		t.Fatalf("ClearAnalyses() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("ClearAnalyses removed %d, expected 3", n)
	}

	if _, ok, _ := store.LoadAnalysis("one"); ok {
		t.Error("Cleared analysis should not load")
	}
}
