package lines

import (
	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// RulesFromConfig converts a YAML configuration into engine rules.
func RulesFromConfig(cfg config.LinesConfig) (core.Rules, error) {
	if err := cfg.Validate(); err != nil {
		return core.Rules{}, err
	}

	rules := core.Rules{
		Rows:    cfg.Board.Rows,
		Cols:    cfg.Board.Cols,
		Palette: cfg.Board.Colors,
		Initial: core.InitialFill{
			PerColor: cfg.Initial.PerColor,
			Count:    cfg.Initial.Count,
		},
		SpawnPerTurn: cfg.Turn.SpawnPerTurn,
		Progression: core.Progression{
			BaseThreshold:  cfg.Progression.BaseThreshold,
			LevelScoreStep: cfg.Progression.LevelScoreStep,
		},
	}

	if len(cfg.Initial.Layout) > 0 {
		cells, err := core.ParseLayout(cfg.Initial.Layout)
		if err != nil {
			return core.Rules{}, err
		}
		rules.Initial.Cells = cells
	}

	return rules, rules.Validate()
}
