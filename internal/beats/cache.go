package beats

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/registry"
)

// Store persists analyses by key. *storage.Store satisfies it.
type Store interface {
	LoadAnalysis(hash string) (core.BeatAnalysis, bool, error)
	SaveAnalysis(hash, source, path string, a core.BeatAnalysis) error
}

// cachedSource wraps a source with a content-addressed cache.
type cachedSource struct {
	registry.Source
	store Store
}

// Cached returns a source that looks results up by the file's content hash
// before extracting, and stores fresh results. Cache failures are logged, never fatal.
func Cached(src registry.Source, store Store) registry.Source {
	if store == nil {
		return src
	}
	return &cachedSource{Source: src, store: store}
}

func (c *cachedSource) Extract(ctx context.Context, path string) (core.BeatAnalysis, error) {
	hash, err := HashFile(path)
	if err != nil {
		return core.BeatAnalysis{}, err
	}
	key := c.ID() + ":" + hash

	if a, ok, err := c.store.LoadAnalysis(key); err != nil {
		log.Warn("analysis cache lookup failed", "path", path, "err", err)
	} else if ok {
		log.Debug("analysis cache hit", "path", path, "beats", len(a.Beats))
		return a, nil
	}

	a, err := c.Source.Extract(ctx, path)
	if err != nil {
		return core.BeatAnalysis{}, err
	}

	if err := c.store.SaveAnalysis(key, c.ID(), path, a); err != nil {
		log.Warn("cannot cache analysis", "path", path, "err", err)
	}
	return a, nil
}

// HashFile returns the hex sha256 of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("beats: cannot open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("beats: cannot hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
