package lines

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// ReasonMoveLimit ends an automatic game that ran out of moves to play.
const ReasonMoveLimit = "move limit"

// AutoResult summarizes an automatically played game.
type AutoResult struct {
	Seed     int64
	Score    int
	Level    int
	Moves    int
	Cleared  int
	Reason   string
	Snapshot core.Snapshot
}

// AutoPlayer plays whole games without a terminal. It takes a clearing move
// whenever one exists and a random legal move otherwise.
type AutoPlayer struct {
	rules    core.Rules
	maxMoves int
	logger   *log.Logger
}

// NewAutoPlayer creates a player for the given rules. maxMoves <= 0 means no
// limit; a nil logger discards output.
func NewAutoPlayer(rules core.Rules, maxMoves int, logger *log.Logger) *AutoPlayer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &AutoPlayer{rules: rules, maxMoves: maxMoves, logger: logger}
}

// Play runs one game to its end, the move limit or context cancellation.
func (a *AutoPlayer) Play(ctx context.Context, seed int64) (AutoResult, error) {
	engine, err := core.New(a.rules, core.WithSeed(seed))
	if err != nil {
		return AutoResult{}, err
	}
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))

	reason := ""
	for !engine.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return a.result(engine, seed, reason), err
		}
		if a.maxMoves > 0 && engine.Moves() >= a.maxMoves {
			reason = ReasonMoveLimit
			break
		}

		from, to, ok := chooseMove(engine.Grid(), engine.Threshold(), rng)
		if !ok {
			return a.result(engine, seed, reason), fmt.Errorf("lines: no move found on a live board")
		}
		res, err := engine.Move(from, to)
		if err != nil {
			return a.result(engine, seed, reason), err
		}
		if res.LevelUp != nil {
			a.logger.Debug("level up", "seed", seed, "level", res.LevelUp.Level, "threshold", res.LevelUp.Threshold)
		}
	}
	if reason == "" {
		reason = string(engine.GameOverReason())
	}

	out := a.result(engine, seed, reason)
	a.logger.Info("auto game finished", "seed", seed, "score", out.Score, "level", out.Level,
		"moves", out.Moves, "reason", out.Reason)
	return out, nil
}

func (a *AutoPlayer) result(e *core.Engine, seed int64, reason string) AutoResult {
	return AutoResult{
		Seed:     seed,
		Score:    e.Score(),
		Level:    e.Level(),
		Moves:    e.Moves(),
		Cleared:  e.Cleared(),
		Reason:   reason,
		Snapshot: e.Snapshot(),
	}
}

// chooseMove returns a move that clears a group, or a random legal move.
func chooseMove(g *core.Grid, threshold int, rng *rand.Rand) (from, to core.Position, ok bool) {
	type move struct{ from, to core.Position }
	var legal []move

	for _, p := range g.FilledPositions() {
		color := g.ColorAt(p)
		for _, dest := range core.Reachable(g, p) {
			trial := g.Clone()
			trial.Clear(p)
			trial.Set(dest, color)
			if core.Analyze(trial, threshold).ClearableCount() > 0 {
				return p, dest, true
			}
			legal = append(legal, move{p, dest})
		}
	}
	if len(legal) == 0 {
		return core.Position{}, core.Position{}, false
	}
	m := legal[rng.Intn(len(legal))]
	return m.from, m.to, true
}
