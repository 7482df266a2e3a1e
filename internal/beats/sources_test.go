package beats

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tiles/internal/audio"
	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/registry"
	"github.com/vovakirdan/tui-tiles/internal/storage"
)

func TestSourcesRegistered(t *testing.T) {
	cfg := config.DefaultTilesConfig().Analysis

	tests := []struct {
		path string
		want string
	}{
		{"song.wav", "audio"},
		{"song.MP3", "audio"},
		{"song.ogg", "audio"},
		{"song.beats.yaml", "beatmap"},
		{"song.yml", "beatmap"},
	}
	for _, tc := range tests {
		src, err := registry.ForPath(tc.path, cfg)
		if err != nil {
			t.Fatalf("ForPath(%q) failed: %v", tc.path, err)
		}
		if src.ID() != tc.want {
			t.Errorf("ForPath(%q) = %s, expected %s", tc.path, src.ID(), tc.want)
		}
	}
}

func TestAudioSourceExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clicks.wav")
	samples := audio.ClickTrack(clickBeats(120, 0.5, 7.6), 8, testRate)
	if err := audio.WriteWAV(path, samples, testRate); err != nil {
		t.Fatalf("WriteWAV failed: %v", err)
	}

	src := NewAudioSource(config.DefaultTilesConfig().Analysis)
	a, err := src.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(a.Beats) == 0 {
		t.Error("Expected beats from the click track")
	}
}

// countingSource counts extractions.
type countingSource struct {
	BeatmapSource
	calls int
}

func (c *countingSource) Extract(ctx context.Context, path string) (core.BeatAnalysis, error) {
	c.calls++
	return c.BeatmapSource.Extract(ctx, path)
}

func TestCachedSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.beats.yaml")
	if err := WriteBeatmap(path, core.BeatAnalysis{Tempo: 100, Beats: []float64{0.6, 1.2}}); err != nil {
		t.Fatalf("WriteBeatmap failed: %v", err)
	}

	store, err := storage.Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	inner := &countingSource{}
	src := Cached(inner, store)

	for i := 0; i < 3; i++ {
		a, err := src.Extract(context.Background(), path)
		if err != nil {
			t.Fatalf("Extract %d failed: %v", i, err)
		}
		if a.Tempo != 100 || len(a.Beats) != 2 {
			t.Errorf("Extract %d = %+v", i, a)
		}
	}
	if inner.calls != 1 {
		t.Errorf("Inner source ran %d times, expected 1", inner.calls)
	}

	// Changing the content misses the cache
	if err := WriteBeatmap(path, core.BeatAnalysis{Beats: []float64{2}}); err != nil {
		t.Fatalf("WriteBeatmap failed: %v", err)
	}
	a, err := src.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if inner.calls != 2 || len(a.Beats) != 1 {
		t.Errorf("Changed file should be re-extracted, calls=%d beats=%v", inner.calls, a.Beats)
	}
}

func TestCachedNilStore(t *testing.T) {
	src := BeatmapSource{}
	if Cached(src, nil) != registry.Source(src) {
		t.Error("Cached with no store should return the source unchanged")
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.beats.yaml")
	if err := WriteBeatmap(path, core.BeatAnalysis{Beats: []float64{1}}); err != nil {
		t.Fatalf("WriteBeatmap failed: %v", err)
	}
	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	h2, _ := HashFile(path)
	if h1 != h2 || len(h1) != 64 {
		t.Errorf("HashFile should be stable hex sha256, got %q and %q", h1, h2)
	}
}
