package config

import (
	_ "embed"
)

//go:embed defaults/lines.yaml
var defaultLinesYAML []byte

// DefaultLinesConfig returns the default Lines configuration.
func DefaultLinesConfig() LinesConfig {
	return LinesConfig{
		Board: LinesBoard{
			Rows:   9,
			Cols:   9,
			Colors: 5,
		},
		Initial: LinesInitial{
			PerColor: 12,
		},
		Turn: LinesTurn{
			SpawnPerTurn: 3,
		},
		Progression: LinesProgression{
			BaseThreshold:  6,
			LevelScoreStep: 1000,
		},
		Animation: LinesAnimation{
			StartTicks: 3,   // ~50ms at 60fps
			StepTicks:  7,   // ~120ms at 60fps
			ClearTicks: 48,  // ~800ms at 60fps
			ToastTicks: 150, // ~2.5s at 60fps
		},
	}
}
