package beats

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vovakirdan/tui-tiles/internal/audio"
	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/registry"
)

// AudioSource runs the beat tracker on a decoded song.
type AudioSource struct {
	tracker *Tracker
}

// NewAudioSource creates an audio source with the given analysis settings.
func NewAudioSource(cfg config.AnalysisConfig) *AudioSource {
	return &AudioSource{tracker: NewTracker(cfg)}
}

func (s *AudioSource) ID() string { return "audio" }

func (s *AudioSource) Title() string { return "Audio beat tracker" }

func (s *AudioSource) Extensions() []string { return audio.Extensions }

// Extract decodes the song to mono and tracks its beats.
func (s *AudioSource) Extract(ctx context.Context, path string) (core.BeatAnalysis, error) {
	samples, rate, err := audio.ReadMono(ctx, path)
	if err != nil {
		return core.BeatAnalysis{}, err
	}
	a, err := s.tracker.Analyze(ctx, samples, float64(rate))
	if err != nil {
		return core.BeatAnalysis{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return a, nil
}

// BeatmapSource reads hand-made or previously exported beat timelines.
type BeatmapSource struct{}

func (BeatmapSource) ID() string { return "beatmap" }

func (BeatmapSource) Title() string { return "YAML beatmap" }

func (BeatmapSource) Extensions() []string {
	return []string{".beats.yaml", ".beats.yml", ".yaml", ".yml"}
}

// Extract loads and validates the beatmap.
func (BeatmapSource) Extract(ctx context.Context, path string) (core.BeatAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return core.BeatAnalysis{}, err
	}
	return ReadBeatmap(path)
}

// Register the sources with the registry
func init() {
	registry.Register("audio", func(cfg config.AnalysisConfig) registry.Source {
		return NewAudioSource(cfg)
	})
	registry.Register("beatmap", func(config.AnalysisConfig) registry.Source {
		return BeatmapSource{}
	})
}
