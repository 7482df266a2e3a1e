// Package config provides YAML-based configuration loading and
// difficulty management for the tiles game.
package config

import (
	"errors"
	"fmt"
)

// TilesConfig contains all configuration for the tiles game.
type TilesConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Timing     TimingConfig     `yaml:"timing"`
	Lanes      LanesConfig      `yaml:"lanes"`
	Level      LevelConfig      `yaml:"level"`
	Session    SessionConfig    `yaml:"session"`
	Feedback   FeedbackConfig   `yaml:"feedback"`
	Audio      AudioConfig      `yaml:"audio"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayfieldConfig defines the logical playfield in abstract units.
// The platform maps it proportionally onto the terminal.
type PlayfieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	TargetHeight float64 `yaml:"target_height"`
}

// TimingConfig defines how targets travel and when they can be hit.
type TimingConfig struct {
	HitTime   float64 `yaml:"hit_time"`   // Seconds from spawn to the bottom of the playfield
	HitWindow float64 `yaml:"hit_window"` // Half-width of the hit zone as a fraction of playfield height
}

// LanesConfig defines lane count and the key bound to each lane.
type LanesConfig struct {
	Count int      `yaml:"count"`
	Keys  []string `yaml:"keys"`
}

// LevelConfig defines level generation parameters.
type LevelConfig struct {
	BeatStride int `yaml:"beat_stride"` // Use every Nth beat
}

// SessionConfig defines scoring and termination rules.
type SessionConfig struct {
	MaxMisses            int   `yaml:"max_misses"`
	Milestones           []int `yaml:"milestones"`
	WrongTapCountsAsMiss bool  `yaml:"wrong_tap_counts_as_miss"`
}

// FeedbackConfig defines hit/miss marker and milestone banner decay.
type FeedbackConfig struct {
	MarkerRadius      float64 `yaml:"marker_radius"`
	ShrinkRate        float64 `yaml:"shrink_rate"` // Radius units per second
	FadeRate          float64 `yaml:"fade_rate"`   // Alpha units per second
	MilestoneDuration float64 `yaml:"milestone_duration"`
}

// AudioConfig defines song playback and sound effects.
type AudioConfig struct {
	Enabled  bool `yaml:"enabled"`
	SFX      bool `yaml:"sfx"`
	BufferMS int  `yaml:"buffer_ms"`
}

// AnalysisConfig defines beat tracker parameters.
type AnalysisConfig struct {
	MinBPM    float64 `yaml:"min_bpm"`
	MaxBPM    float64 `yaml:"max_bpm"`
	Tightness float64 `yaml:"tightness"`
	FrameSize int     `yaml:"frame_size"`
	HopSize   int     `yaml:"hop_size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a song.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // ProgressionScore, ProgressionTime or ProgressionNone
	MaxAt int    `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to target speed at max difficulty
}

// ErrInvalidConfig is returned by Validate for inconsistent configurations.
var ErrInvalidConfig = errors.New("invalid config")

// ReservedKeys are bound to pause, restart and quit and cannot be lane keys.
var ReservedKeys = map[string]bool{
	"p": true, "r": true, "q": true, "esc": true, "ctrl+c": true,
}

// Validate checks the configuration for values the game cannot run with.
func (c TilesConfig) Validate() error {
	switch {
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("%w: playfield size must be positive", ErrInvalidConfig)
	case c.Playfield.TargetHeight <= 0 || c.Playfield.TargetHeight >= c.Playfield.Height:
		return fmt.Errorf("%w: target_height must be in (0, height)", ErrInvalidConfig)
	case c.Timing.HitTime <= 0:
		return fmt.Errorf("%w: hit_time must be positive", ErrInvalidConfig)
	case c.Timing.HitWindow < 0:
		return fmt.Errorf("%w: hit_window must not be negative", ErrInvalidConfig)
	case c.Lanes.Count < 2:
		return fmt.Errorf("%w: need at least 2 lanes, got %d", ErrInvalidConfig, c.Lanes.Count)
	case len(c.Lanes.Keys) != c.Lanes.Count:
		return fmt.Errorf("%w: %d lanes but %d keys", ErrInvalidConfig, c.Lanes.Count, len(c.Lanes.Keys))
	case c.Level.BeatStride < 1:
		return fmt.Errorf("%w: beat_stride must be at least 1", ErrInvalidConfig)
	case c.Session.MaxMisses < 1:
		return fmt.Errorf("%w: max_misses must be at least 1", ErrInvalidConfig)
	case c.Feedback.MilestoneDuration < 0:
		return fmt.Errorf("%w: milestone_duration must not be negative", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Lanes.Keys))
	for _, k := range c.Lanes.Keys {
		if k == "" {
			return fmt.Errorf("%w: empty lane key", ErrInvalidConfig)
		}
		if seen[k] {
			return fmt.Errorf("%w: duplicate lane key %q", ErrInvalidConfig, k)
		}
		if ReservedKeys[k] {
			return fmt.Errorf("%w: lane key %q is reserved", ErrInvalidConfig, k)
		}
		seen[k] = true
	}

	for i := 1; i < len(c.Session.Milestones); i++ {
		if c.Session.Milestones[i] <= c.Session.Milestones[i-1] {
			return fmt.Errorf("%w: milestones must be strictly ascending", ErrInvalidConfig)
		}
	}

	if c.Analysis.MinBPM <= 0 || c.Analysis.MaxBPM <= c.Analysis.MinBPM {
		return fmt.Errorf("%w: analysis bpm range must satisfy 0 < min_bpm < max_bpm", ErrInvalidConfig)
	}
	if c.Analysis.FrameSize <= 0 || c.Analysis.HopSize <= 0 || c.Analysis.HopSize > c.Analysis.FrameSize {
		return fmt.Errorf("%w: analysis needs 0 < hop_size <= frame_size", ErrInvalidConfig)
	}

	switch c.Difficulty.Progression.Type {
	case "", ProgressionNone, ProgressionScore, ProgressionTime:
	default:
		return fmt.Errorf("%w: unknown progression type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
