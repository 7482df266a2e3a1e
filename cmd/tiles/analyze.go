package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tiles/internal/beats"
	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/registry"
	"github.com/vovakirdan/tui-tiles/internal/storage"
)

// analyze extracts the beats of path with the source registered for its
// extension, going through the analysis cache when one is open.
// Ctrl+C cancels a running analysis.
func analyze(path string, cfg config.AnalysisConfig, store *storage.Store) (core.BeatAnalysis, string, error) {
	src, err := registry.ForPath(path, cfg)
	if err != nil {
		return core.BeatAnalysis{}, "", err
	}
	if store != nil {
		src = beats.Cached(src, store)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	a, err := src.Extract(ctx, path)
	if err != nil {
		return core.BeatAnalysis{}, src.ID(), err
	}
	log.Info("beats extracted",
		"path", path,
		"source", src.ID(),
		"beats", len(a.Beats),
		"tempo", fmt.Sprintf("%.1f", a.Tempo),
		"took", time.Since(start).Round(time.Millisecond),
	)
	return a, src.ID(), nil
}

// openCache opens the analysis cache, or returns nil with a warning.
func openCache(disabled bool) *storage.Store {
	if disabled {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open analysis cache: %v\n", err)
		// Continue without the cache - analysis still works
		return nil
	}
	return store
}
