package lines

import (
	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// animStage is the part of a turn currently on screen.
type animStage int

const (
	stageStart animStage = iota // Short pause before the piece leaves
	stageMove                   // Piece walks the path one cell per step
	stageClear                  // Cleared groups flash before they vanish
	stageDone
)

// animation plays a planned turn. The engine stays in its resolving phase
// until the animation finishes and the plan is committed.
type animation struct {
	plan   *core.Plan
	timing config.LinesAnimation
	stage  animStage
	step   int // Index of the moving piece along plan.Path
	wait   int // Ticks left in the current stage or step
}

func newAnimation(plan *core.Plan, timing config.LinesAnimation) *animation {
	return &animation{
		plan:   plan,
		timing: timing,
		stage:  stageStart,
		wait:   timing.StartTicks,
	}
}

// advance moves the animation forward by one tick and reports whether it
// has finished.
func (a *animation) advance() bool {
	if a.wait > 0 {
		a.wait--
		if a.wait > 0 {
			return false
		}
	}

	for a.wait == 0 {
		switch a.stage {
		case stageStart:
			a.stage = stageMove
			a.wait = a.timing.StepTicks
		case stageMove:
			switch {
			case a.step < len(a.plan.Path)-1:
				a.step++
				a.wait = a.timing.StepTicks
			case len(a.plan.MoveClears)+len(a.plan.SpawnClears) > 0:
				a.stage = stageClear
				a.wait = a.timing.ClearTicks
			default:
				a.stage = stageDone
				return true
			}
		default:
			a.stage = stageDone
			return true
		}
	}
	return false
}

// piece returns where the moving piece is drawn.
func (a *animation) piece() core.Position {
	if a.stage >= stageClear {
		return a.plan.Dest
	}
	return a.plan.Path[a.step]
}

// board returns the grid as it should look at this point of the turn.
func (a *animation) board(current *core.Grid) *core.Grid {
	g := current.Clone()
	g.Clear(a.plan.Origin)
	g.Set(a.piece(), a.plan.Color)
	if a.stage >= stageClear {
		for _, pl := range a.plan.Spawned {
			g.Set(pl.Pos, pl.Color)
		}
	}
	return g
}

// clearing returns the cells flashing during the clear stage.
func (a *animation) clearing() map[core.Position]bool {
	if a.stage != stageClear {
		return nil
	}
	cells := make(map[core.Position]bool)
	for _, grp := range a.plan.Cleared() {
		for _, p := range grp.Cells {
			cells[p] = true
		}
	}
	return cells
}

// trail returns the path cells the piece has yet to walk.
func (a *animation) trail() []core.Position {
	if a.stage >= stageClear || a.step+1 >= len(a.plan.Path) {
		return nil
	}
	return a.plan.Path[a.step+1:]
}
