package core

import "fmt"

// Plan is a fully resolved turn that has not been applied yet. PlanMove
// computes it on a copy of the board so that a front end can animate the
// path and clears before calling Commit.
type Plan struct {
	Origin Position
	Dest   Position
	Color  Color
	Path   Path // nil when the destination is unreachable

	MoveClears  []Group     // Groups cleared by the moved piece
	Spawned     []Placement // Pieces spawned when the move cleared nothing
	SpawnClears []Group     // Groups cleared by the spawned pieces

	ScoreDelta   int
	ClearedCells int
	LevelUp      *LevelChange
	GameOver     GameOverReason
	Message      string

	after *Grid
}

// Accepted reports whether the move has a path and can be committed.
func (p *Plan) Accepted() bool {
	return p != nil && p.Path != nil
}

// After returns a copy of the board as it will be once the plan commits.
func (p *Plan) After() *Grid {
	if p.after == nil {
		return nil
	}
	return p.after.Clone()
}

// Cleared returns every group the turn clears, move clears first.
func (p *Plan) Cleared() []Group {
	out := make([]Group, 0, len(p.MoveClears)+len(p.SpawnClears))
	out = append(out, p.MoveClears...)
	return append(out, p.SpawnClears...)
}

// MoveResult summarizes a committed turn.
type MoveResult struct {
	Accepted     bool
	Path         Path
	Cleared      []Group
	Spawned      []Placement
	ScoreDelta   int
	ClearedCells int
	LevelUp      *LevelChange
	GameOver     GameOverReason
	Message      string
}

func (p *Plan) result() MoveResult {
	return MoveResult{
		Accepted:     p.Accepted(),
		Path:         p.Path,
		Cleared:      p.Cleared(),
		Spawned:      p.Spawned,
		ScoreDelta:   p.ScoreDelta,
		ClearedCells: p.ClearedCells,
		LevelUp:      p.LevelUp,
		GameOver:     p.GameOver,
		Message:      p.Message,
	}
}

// PlanMove resolves a move of the piece at origin to the empty cell dest.
//
// An unreachable destination leaves the board untouched, drops the selection
// and returns a plan with a nil Path. Otherwise the engine enters
// PhaseResolving and rejects every mutator with ErrBusy until Commit is
// called with the returned plan. A move that clears spawns nothing; a move
// that clears nothing spawns SpawnPerTurn pieces, which may clear in turn.
func (e *Engine) PlanMove(origin, dest Position) (*Plan, error) {
	if err := e.checkAccepting(); err != nil {
		return nil, err
	}
	if !e.grid.InBounds(origin) {
		return nil, fmt.Errorf("%w: origin %v", ErrOutOfBounds, origin)
	}
	if !e.grid.InBounds(dest) {
		return nil, fmt.Errorf("%w: destination %v", ErrOutOfBounds, dest)
	}

	plan := &Plan{Origin: origin, Dest: dest, Color: e.grid.ColorAt(origin)}
	path, ok := FindPath(e.grid, origin, dest)
	if !ok {
		e.selected = false
		e.phase = PhaseIdle
		e.message = "unreachable"
		plan.Message = e.message
		return plan, nil
	}
	plan.Path = path

	work := e.grid.Clone()
	work.Clear(origin)
	work.Set(dest, plan.Color)

	threshold := e.levels.Threshold()
	if a := Analyze(work, threshold); len(a.Clearable) > 0 {
		res := ApplyClear(work, a.Clearable)
		plan.MoveClears = res.Groups
		plan.ScoreDelta += res.ScoreDelta
		plan.ClearedCells += res.Cells
		plan.Message = "cleared!"
	} else {
		plan.Spawned = e.spawner.Spawn(work, e.rules.SpawnPerTurn)
		plan.Message = fmt.Sprintf("+%d pieces", len(plan.Spawned))
		if a := Analyze(work, threshold); len(a.Clearable) > 0 {
			res := ApplyClear(work, a.Clearable)
			plan.SpawnClears = res.Groups
			plan.ScoreDelta += res.ScoreDelta
			plan.ClearedCells += res.Cells
			plan.Message = "spawn cleared too"
		}
	}
	work.ApplySizes(Analyze(work, threshold))
	plan.after = work

	if change, up := e.levels.Peek(e.score + plan.ScoreDelta); up {
		plan.LevelUp = &change
		plan.Message = fmt.Sprintf("level %d: groups of %d now clear", change.Level, change.Threshold)
	}
	if reason := terminalReason(work); reason != ReasonNone {
		plan.GameOver = reason
		plan.Message = "game over: " + string(reason)
	}

	e.pending = plan
	e.phase = PhaseResolving
	return plan, nil
}

// Commit applies the pending plan and ends the turn.
func (e *Engine) Commit(plan *Plan) (MoveResult, error) {
	if plan == nil || plan != e.pending {
		return MoveResult{}, ErrNoPendingPlan
	}

	e.grid = plan.after
	e.pending = nil
	e.moves++
	e.score += plan.ScoreDelta
	e.cleared += plan.ClearedCells
	e.levels.Observe(e.score)
	if len(plan.Spawned) > 0 {
		e.spawned = plan.Spawned
	} else {
		e.spawned = nil
	}
	e.selected = false
	e.message = plan.Message

	if plan.GameOver != ReasonNone {
		e.endGame(plan.GameOver)
	} else {
		e.phase = PhaseIdle
	}
	return plan.result(), nil
}

// Move plans and immediately commits a turn.
func (e *Engine) Move(origin, dest Position) (MoveResult, error) {
	plan, err := e.PlanMove(origin, dest)
	if err != nil {
		return MoveResult{}, err
	}
	if !plan.Accepted() {
		return plan.result(), nil
	}
	return e.Commit(plan)
}
