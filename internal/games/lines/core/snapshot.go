package core

// Snapshot is a plain view of the game used by front ends,
// logs and replay checks.
type Snapshot struct {
	Board     []string  `json:"board" yaml:"board"`
	Score     int       `json:"score" yaml:"score"`
	Level     int       `json:"level" yaml:"level"`
	Threshold int       `json:"threshold" yaml:"threshold"`
	Moves     int       `json:"moves" yaml:"moves"`
	Cleared   int       `json:"cleared" yaml:"cleared"`
	Phase     string    `json:"phase" yaml:"phase"`
	GameOver  string    `json:"game_over,omitempty" yaml:"game_over,omitempty"`
	Selection *Position `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// Snapshot captures the current game state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Board:     FormatGrid(e.grid),
		Score:     e.score,
		Level:     e.levels.Level(),
		Threshold: e.levels.Threshold(),
		Moves:     e.moves,
		Cleared:   e.cleared,
		Phase:     e.phase.String(),
		GameOver:  string(e.reason),
	}
	if e.selected {
		sel := e.selection
		s.Selection = &sel
	}
	return s
}
