package config

// Progression types for DifficultyConfig.Progression.Type.
const (
	ProgressionNone  = "none"  // Stay at the initial level
	ProgressionScore = "score" // Reach full speed at max_at points
	ProgressionTime  = "time"  // Reach full speed max_at seconds into the song
)

// DifficultyManager speeds up newly spawned tiles as a session goes on.
type DifficultyManager struct {
	cfg     DifficultyConfig
	initial float64
}

// NewDifficultyManager creates a difficulty manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:     cfg,
		initial: clamp01(cfg.InitialLevel),
	}
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty in [0, 1] for the given score and song time.
// It rises linearly from the initial level to 1 over max_at points or seconds.
func (d *DifficultyManager) Level(score int, elapsed float64) float64 {
	if !d.cfg.Enabled {
		return 0
	}

	span := float64(max(d.cfg.Progression.MaxAt, 1))
	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		progress = float64(score) / span
	case ProgressionTime:
		progress = elapsed / span
	default:
		return d.initial
	}

	return d.initial + clamp01(progress)*(1-d.initial)
}

// SpeedFactor returns the multiplier applied to a newly spawned target's speed.
// It is exactly 1 when scaling is disabled.
func (d *DifficultyManager) SpeedFactor(score int, elapsed float64) float64 {
	if !d.cfg.Enabled {
		return 1
	}
	return 1 + d.Level(score, elapsed)*d.cfg.Scaling.SpeedMultiplier
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
