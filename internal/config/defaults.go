package config

import (
	_ "embed"
)

//go:embed defaults/tiles.yaml
var defaultTilesYAML []byte

// DefaultTilesConfig returns the default tiles configuration.
// It mirrors defaults/tiles.yaml and is used when the embedded file cannot be parsed.
func DefaultTilesConfig() TilesConfig {
	return TilesConfig{
		Playfield: PlayfieldConfig{
			Width:        800,
			Height:       600,
			TargetHeight: 100,
		},
		Timing: TimingConfig{
			HitTime:   2.0,
			HitWindow: 0.5,
		},
		Lanes: LanesConfig{
			Count: 4,
			Keys:  []string{"d", "f", "j", "k"},
		},
		Level: LevelConfig{
			BeatStride: 1,
		},
		Session: SessionConfig{
			MaxMisses:  5,
			Milestones: []int{100, 200, 300, 400, 500},
		},
		Feedback: FeedbackConfig{
			MarkerRadius:      30,
			ShrinkRate:        200,
			FadeRate:          255,
			MilestoneDuration: 2.0,
		},
		Audio: AudioConfig{
			Enabled:  true,
			SFX:      true,
			BufferMS: 100,
		},
		Analysis: AnalysisConfig{
			MinBPM:    60,
			MaxBPM:    200,
			Tightness: 100,
			FrameSize: 1024,
			HopSize:   512,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}
