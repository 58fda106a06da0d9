package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// maxColors mirrors the number of piece colors the game can draw.
const maxColors = 7

// ErrInvalid indicates a configuration that cannot start a game.
var ErrInvalid = errors.New("config: invalid lines config")

// LoadLines loads Lines configuration. Fields missing from the file keep
// their default values.
// Search order: customPath -> ~/.arcade/configs/lines.yaml -> ./configs/lines.yaml -> embedded default
func LoadLines(customPath string) (LinesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultLinesConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseLines(data)
		if err != nil {
			return DefaultLinesConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("lines.yaml"), filepath.Join("configs", "lines.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := ParseLines(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := ParseLines(defaultLinesYAML)
	if err != nil {
		return DefaultLinesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseLines decodes and validates a YAML document on top of the defaults.
func ParseLines(data []byte) (LinesConfig, error) {
	cfg := DefaultLinesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MarshalLines encodes a configuration as YAML.
func MarshalLines(cfg LinesConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate checks ranges that the game relies on.
func (c LinesConfig) Validate() error {
	b := c.Board
	switch {
	case b.Rows < 1 || b.Cols < 1:
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalid, b.Rows, b.Cols)
	case b.Colors < 1 || b.Colors > maxColors:
		return fmt.Errorf("%w: colors must be 1..%d, got %d", ErrInvalid, maxColors, b.Colors)
	case c.Initial.PerColor < 0 || c.Initial.Count < 0:
		return fmt.Errorf("%w: initial counts must not be negative", ErrInvalid)
	case c.Turn.SpawnPerTurn < 0:
		return fmt.Errorf("%w: spawn_per_turn must not be negative", ErrInvalid)
	case c.Progression.BaseThreshold < 1:
		return fmt.Errorf("%w: base_threshold must be positive", ErrInvalid)
	case c.Progression.LevelScoreStep < 1:
		return fmt.Errorf("%w: level_score_step must be positive", ErrInvalid)
	}

	a := c.Animation
	if a.StartTicks < 0 || a.StepTicks < 0 || a.ClearTicks < 0 || a.ToastTicks < 0 {
		return fmt.Errorf("%w: animation ticks must not be negative", ErrInvalid)
	}

	if len(c.Initial.Layout) > 0 {
		if len(c.Initial.Layout) != b.Rows {
			return fmt.Errorf("%w: layout has %d rows, board has %d", ErrInvalid, len(c.Initial.Layout), b.Rows)
		}
		for i, row := range c.Initial.Layout {
			if n := len([]rune(row)); n != b.Cols {
				return fmt.Errorf("%w: layout row %d has %d cells, board has %d", ErrInvalid, i, n, b.Cols)
			}
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
