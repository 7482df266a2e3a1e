package beats

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

// ErrInvalidBeatmap is returned for beatmaps with malformed beat lists.
var ErrInvalidBeatmap = errors.New("beats: invalid beatmap")

// ReadBeatmap loads a YAML beatmap of the form {tempo, duration, beats: [...]}.
func ReadBeatmap(path string) (core.BeatAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.BeatAnalysis{}, fmt.Errorf("beats: cannot read beatmap %s: %w", path, err)
	}

	var a core.BeatAnalysis
	if err := yaml.Unmarshal(data, &a); err != nil {
		return core.BeatAnalysis{}, fmt.Errorf("beats: cannot parse beatmap %s: %w", path, err)
	}
	if err := Validate(a); err != nil {
		return core.BeatAnalysis{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// WriteBeatmap saves an analysis as a YAML beatmap.
func WriteBeatmap(path string, a core.BeatAnalysis) error {
	if err := Validate(a); err != nil {
		return err
	}
	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("beats: cannot encode beatmap: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("beats: cannot write beatmap %s: %w", path, err)
	}
	return nil
}

// Validate checks that beats are present, finite, non-negative and non-decreasing.
func Validate(a core.BeatAnalysis) error {
	if len(a.Beats) == 0 {
		return ErrNoBeats
	}
	prev := 0.0
	for i, bt := range a.Beats {
		if math.IsNaN(bt) || math.IsInf(bt, 0) || bt < 0 {
			return fmt.Errorf("%w: beat %d is %v", ErrInvalidBeatmap, i, bt)
		}
		if bt < prev {
			return fmt.Errorf("%w: beat %d (%v) comes before beat %d (%v)", ErrInvalidBeatmap, i, bt, i-1, prev)
		}
		prev = bt
	}
	if a.Tempo < 0 || a.Duration < 0 {
		return fmt.Errorf("%w: negative tempo or duration", ErrInvalidBeatmap)
	}
	return nil
}
