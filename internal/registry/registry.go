// Package registry provides a global registry for beat source factories.
// Sources register themselves in init() functions, allowing the CLI to
// discover them and pick one for a song file by its extension.
package registry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
)

// ErrUnknownSource is returned when no source matches an ID or file.
var ErrUnknownSource = errors.New("registry: unknown source")

// Source extracts a beat timeline from a file.
type Source interface {
	// ID returns a unique identifier (e.g., "audio", "beatmap").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Extensions lists the lower-case file suffixes this source reads, dot included.
	Extensions() []string

	// Extract analyzes the file. It may block and should honor ctx cancellation.
	Extract(ctx context.Context, path string) (core.BeatAnalysis, error)
}

// SourceInfo contains metadata about a registered source.
type SourceInfo struct {
	ID         string
	Title      string
	Extensions []string
}

// Factory creates a source configured for analysis.
type Factory func(cfg config.AnalysisConfig) Source

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]SourceInfo)
	mu        sync.RWMutex
)

// Register adds a source factory to the registry.
// Typically called from a source's init() function.
// Panics if a source with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: source %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	s := f(config.DefaultTilesConfig().Analysis)
	infos[id] = SourceInfo{
		ID:         id,
		Title:      s.Title(),
		Extensions: s.Extensions(),
	}
}

// List returns information about all registered sources, sorted by ID.
func List() []SourceInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SourceInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a source by its ID.
func Create(id string, cfg config.AnalysisConfig) (Source, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, id)
	}

	return f(cfg), nil
}

// Exists checks if a source with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Match returns the ID of the source whose extension matches the end of path.
// The longest matching extension wins, so ".beats.yaml" beats ".yaml".
func Match(path string) (string, bool) {
	name := strings.ToLower(filepath.Base(path))

	mu.RLock()
	defer mu.RUnlock()

	bestID, bestLen := "", 0
	for id, info := range infos {
		for _, ext := range info.Extensions {
			if strings.HasSuffix(name, ext) && len(ext) > bestLen {
				bestID, bestLen = id, len(ext)
			}
		}
	}
	return bestID, bestID != ""
}

// ForPath creates the source matching path's extension.
func ForPath(path string, cfg config.AnalysisConfig) (Source, error) {
	id, ok := Match(path)
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrUnknownSource, filepath.Base(path))
	}
	return Create(id, cfg)
}

// unregister removes a source. Used by tests.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, id)
	delete(infos, id)
}
