// Package config provides YAML-based game configuration loading for the
// Lines game.
package config

// LinesConfig contains all configuration for the Lines game.
type LinesConfig struct {
	Board       LinesBoard       `yaml:"board"`
	Initial     LinesInitial     `yaml:"initial"`
	Turn        LinesTurn        `yaml:"turn"`
	Progression LinesProgression `yaml:"progression"`
	Animation   LinesAnimation   `yaml:"animation"`
}

// LinesBoard defines the board dimensions and palette size.
type LinesBoard struct {
	Rows   int `yaml:"rows"`
	Cols   int `yaml:"cols"`
	Colors int `yaml:"colors"` // Number of piece colors (1-7)
}

// LinesInitial defines the starting position. Layout wins over PerColor,
// which wins over Count.
type LinesInitial struct {
	PerColor int      `yaml:"per_color"`        // Pieces of each color on random cells
	Count    int      `yaml:"count"`            // Random pieces, as if spawned
	Layout   []string `yaml:"layout,omitempty"` // Fixed board, one string per row: R B O G P Y C or '.'
}

// LinesTurn defines per-turn parameters.
type LinesTurn struct {
	SpawnPerTurn int `yaml:"spawn_per_turn"`
}

// LinesProgression defines how score maps to level and clearing threshold.
type LinesProgression struct {
	BaseThreshold  int `yaml:"base_threshold"`   // Exact group size that clears at level 1
	LevelScoreStep int `yaml:"level_score_step"` // Points per level
}

// LinesAnimation defines presentation timing in simulation ticks.
type LinesAnimation struct {
	StartTicks int `yaml:"start_ticks"` // Delay before the piece starts moving
	StepTicks  int `yaml:"step_ticks"`  // Ticks per path step
	ClearTicks int `yaml:"clear_ticks"` // How long cleared groups stay highlighted
	ToastTicks int `yaml:"toast_ticks"` // How long status messages stay visible
}
