package core

import (
	"fmt"
	"math/rand"
)

// Phase is the turn controller state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelected
	PhaseResolving
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSelected:
		return "selected"
	case PhaseResolving:
		return "resolving"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// GameOverReason tells why a game ended. The zero value means it has not.
type GameOverReason string

const (
	ReasonNone      GameOverReason = ""
	ReasonBoardFull GameOverReason = "board full"
	ReasonNoMoves   GameOverReason = "no legal moves"
)

// Rules configures a game.
type Rules struct {
	Rows         int
	Cols         int
	Palette      int // Number of piece colors, at most MaxPalette
	Initial      InitialFill
	SpawnPerTurn int
	Progression  Progression
}

// DefaultRules returns the classic setup: a 9x9 board, five colors, twelve
// pieces per color and three spawned pieces per turn.
func DefaultRules() Rules {
	return Rules{
		Rows:         9,
		Cols:         9,
		Palette:      5,
		Initial:      DefaultInitialFill(),
		SpawnPerTurn: 3,
		Progression:  DefaultProgression(),
	}
}

// Validate checks that the rules describe a playable board.
func (r Rules) Validate() error {
	switch {
	case r.Rows < 1 || r.Cols < 1:
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidRules, r.Rows, r.Cols)
	case r.Palette < 1 || r.Palette > MaxPalette:
		return fmt.Errorf("%w: palette must be 1..%d, got %d", ErrInvalidRules, MaxPalette, r.Palette)
	case r.SpawnPerTurn < 0:
		return fmt.Errorf("%w: spawn per turn must not be negative", ErrInvalidRules)
	case r.Progression.BaseThreshold < 1:
		return fmt.Errorf("%w: base threshold must be positive", ErrInvalidRules)
	case r.Progression.LevelScoreStep < 1:
		return fmt.Errorf("%w: level score step must be positive", ErrInvalidRules)
	case r.Initial.PerColor < 0 || r.Initial.Count < 0:
		return fmt.Errorf("%w: initial piece counts must not be negative", ErrInvalidRules)
	}
	for _, pl := range r.Initial.Cells {
		if pl.Pos.Row < 0 || pl.Pos.Row >= r.Rows || pl.Pos.Col < 0 || pl.Pos.Col >= r.Cols {
			return fmt.Errorf("%w: layout cell %v outside %dx%d board", ErrInvalidRules, pl.Pos, r.Rows, r.Cols)
		}
		if pl.Color == Empty || int(pl.Color) > r.Palette {
			return fmt.Errorf("%w: layout cell %v has color %d outside palette", ErrInvalidRules, pl.Pos, pl.Color)
		}
	}
	return nil
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSeed seeds the engine's random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSpawner replaces the random spawner used between turns.
// The initial fill still draws from the engine's random source.
func WithSpawner(s Spawner) Option {
	return func(e *Engine) {
		e.spawner = s
	}
}

// Engine owns the board and runs turns. Not safe for concurrent use.
type Engine struct {
	rules   Rules
	rng     *rand.Rand
	spawner Spawner

	grid      *Grid
	levels    *LevelTracker
	phase     Phase
	selection Position
	selected  bool
	pending   *Plan
	reason    GameOverReason
	message   string
	spawned   []Placement

	score   int
	moves   int
	cleared int
}

// New creates an engine and starts the first game.
func New(rules Rules, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{rules: rules}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}
	if e.spawner == nil {
		e.spawner = NewRandomSpawner(e.rng)
	}
	e.levels = NewLevelTracker(rules.Progression)
	e.NewGame()
	return e, nil
}

// NewGame discards the current game and deals a fresh board.
// It is accepted in every phase, including while a turn resolves.
func (e *Engine) NewGame() {
	e.levels.Reset()
	e.grid = NewGrid(e.rules.Rows, e.rules.Cols, e.rules.Palette)
	e.spawned = e.rules.Initial.Fill(e.grid, e.rng)
	e.grid.ApplySizes(Analyze(e.grid, e.levels.Threshold()))

	e.phase = PhaseIdle
	e.selected = false
	e.pending = nil
	e.reason = ReasonNone
	e.message = ""
	e.score = 0
	e.moves = 0
	e.cleared = 0

	if reason := terminalReason(e.grid); reason != ReasonNone {
		e.endGame(reason)
	}
}

// SelectResult reports the outcome of Select.
type SelectResult struct {
	// Selection is the selected piece after the call, if any.
	Selection *Position
	// MoveTo is set when an empty cell was chosen while a piece was selected.
	// The caller should follow up with PlanMove(*Selection, *MoveTo).
	MoveTo *Position
}

// Select handles a click on p. A piece becomes the selection, replacing any
// previous one. An empty cell is ignored while nothing is selected; while a
// piece is selected it is reported as a move request and the selection kept.
func (e *Engine) Select(p Position) (SelectResult, error) {
	if err := e.checkAccepting(); err != nil {
		return SelectResult{}, err
	}
	if !e.grid.InBounds(p) {
		return SelectResult{}, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}

	if !e.grid.IsEmpty(p) {
		e.selection = p
		e.selected = true
		e.phase = PhaseSelected
		sel := p
		return SelectResult{Selection: &sel}, nil
	}
	if !e.selected {
		return SelectResult{}, nil
	}
	sel, dest := e.selection, p
	return SelectResult{Selection: &sel, MoveTo: &dest}, nil
}

// Deselect drops the current selection.
func (e *Engine) Deselect() error {
	if err := e.checkAccepting(); err != nil {
		return err
	}
	e.selected = false
	e.phase = PhaseIdle
	return nil
}

func (e *Engine) checkAccepting() error {
	switch e.phase {
	case PhaseResolving:
		return ErrBusy
	case PhaseGameOver:
		return ErrGameOver
	}
	return nil
}

func (e *Engine) endGame(reason GameOverReason) {
	e.reason = reason
	e.phase = PhaseGameOver
	e.selected = false
	e.message = "game over: " + string(reason)
}

// terminalReason checks the end conditions in order: no empty cell, then no
// piece able to reach one. A board without pieces has no legal move.
func terminalReason(g *Grid) GameOverReason {
	if g.EmptyCount() == 0 {
		return ReasonBoardFull
	}
	if !HasLegalMove(g) {
		return ReasonNoMoves
	}
	return ReasonNone
}

// Grid returns a copy of the board.
func (e *Engine) Grid() *Grid {
	return e.grid.Clone()
}

// Cell returns the cell at p.
func (e *Engine) Cell(p Position) Cell {
	return e.grid.Get(p)
}

// Rules returns the rules the engine was created with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Score returns the cumulative score.
func (e *Engine) Score() int {
	return e.score
}

// Level returns the current level.
func (e *Engine) Level() int {
	return e.levels.Level()
}

// Threshold returns the exact group size that clears at the current level.
func (e *Engine) Threshold() int {
	return e.levels.Threshold()
}

// Moves returns the number of committed moves.
func (e *Engine) Moves() int {
	return e.moves
}

// Cleared returns the number of pieces cleared this game.
func (e *Engine) Cleared() int {
	return e.cleared
}

// Phase returns the turn controller state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// IsGameOver reports whether the game has ended.
func (e *Engine) IsGameOver() bool {
	return e.phase == PhaseGameOver
}

// GameOverReason returns why the game ended, or ReasonNone.
func (e *Engine) GameOverReason() GameOverReason {
	return e.reason
}

// Selection returns the selected piece.
func (e *Engine) Selection() (Position, bool) {
	return e.selection, e.selected
}

// Busy reports whether a planned turn awaits Commit.
func (e *Engine) Busy() bool {
	return e.phase == PhaseResolving
}

// Pending returns the plan awaiting Commit, or nil.
func (e *Engine) Pending() *Plan {
	return e.pending
}

// Message returns the last status line: move feedback, level-ups or the
// game-over reason.
func (e *Engine) Message() string {
	return e.message
}

// LastSpawned returns the pieces placed by the last spawn or initial fill.
func (e *Engine) LastSpawned() []Placement {
	out := make([]Placement, len(e.spawned))
	copy(out, e.spawned)
	return out
}
