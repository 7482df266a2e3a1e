package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

func TestSilentDuration(t *testing.T) {
	tests := []struct {
		name string
		a    core.BeatAnalysis
		want time.Duration
	}{
		{"song length", core.BeatAnalysis{Duration: 90, Beats: []float64{1, 2}}, 90 * time.Second},
		{"after last beat", core.BeatAnalysis{Beats: []float64{1, 4.5}}, 7500 * time.Millisecond},
		{"empty", core.BeatAnalysis{}, 0},
	}
	for _, tc := range tests {
		if got := silentDuration(tc.a, 2.0); got != tc.want {
			t.Errorf("%s: silentDuration = %v, expected %v", tc.name, got, tc.want)
		}
	}
}

func TestLoadConfigFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	defer func() { flagStride, flagConfig = 0, "" }()

	flagStride = 3
	cfg, err := loadConfig("easy")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Level.BeatStride != 3 {
		t.Errorf("--stride should override the preset, got %d", cfg.Level.BeatStride)
	}
	if cfg.Session.MaxMisses != 8 {
		t.Errorf("Easy preset should allow 8 misses, got %d", cfg.Session.MaxMisses)
	}

	if _, err := loadConfig("brutal"); err == nil {
		t.Error("Expected error for unknown difficulty")
	}

	flagConfig = filepath.Join(t.TempDir(), "tiles.yaml")
	if err := os.WriteFile(flagConfig, []byte("lanes:\n  count: 3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := loadConfig(""); err == nil {
		t.Error("Three lanes with four keys should fail validation")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.mp3", 30); got != "short.mp3" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a-very-long-song-name.mp3", 10); got != "a-very-lo…" {
		t.Errorf("truncate = %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := expandHome("~/.tiles/tiles.log"); got != filepath.Join(home, ".tiles", "tiles.log") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/var/log/tiles.log"); got != "/var/log/tiles.log" {
		t.Errorf("expandHome should keep absolute paths, got %q", got)
	}
}
