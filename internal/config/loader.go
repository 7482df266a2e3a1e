package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTiles loads the tiles configuration.
// Search order: customPath -> ~/.tiles/configs/tiles.yaml -> ./configs/tiles.yaml -> embedded default.
// Files are decoded on top of the defaults, so a partial file only overrides what it names.
func LoadTiles(customPath string) (TilesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TilesConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTiles(data)
		if err != nil {
			return TilesConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tiles.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseTiles(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "tiles.yaml")); err == nil {
		if cfg, err := parseTiles(data); err == nil {
			return cfg, nil
		}
	}

	return embeddedTiles(), nil
}

// parseTiles decodes data over the embedded defaults and validates the result.
func parseTiles(data []byte) (TilesConfig, error) {
	cfg := embeddedTiles()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TilesConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TilesConfig{}, err
	}
	return cfg, nil
}

// embeddedTiles returns the embedded default YAML, falling back to the hardcoded defaults.
func embeddedTiles() TilesConfig {
	var cfg TilesConfig
	if err := yaml.Unmarshal(defaultTilesYAML, &cfg); err != nil {
		return DefaultTilesConfig()
	}
	if err := cfg.Validate(); err != nil {
		return DefaultTilesConfig()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// UserDir returns ~/.tiles, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tiles")
}

// ApplyTilesPreset modifies the config based on a difficulty preset.
func ApplyTilesPreset(cfg *TilesConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timing.HitTime = 2.5
		cfg.Session.MaxMisses = 8
		cfg.Level.BeatStride = 2
	case DifficultyHard:
		cfg.Timing.HitTime = 1.5
		cfg.Timing.HitWindow = 0.25
		cfg.Session.MaxMisses = 3
	}
}
