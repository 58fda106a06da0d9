package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

func TestNewEngineDefaults(t *testing.T) {
	e, err := core.New(core.DefaultRules(), core.WithSeed(1))
	require.NoError(t, err)

	assert.Equal(t, core.PhaseIdle, e.Phase())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 6, e.Threshold())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, 60, e.Grid().FilledCount())
	assert.Len(t, e.LastSpawned(), 60)
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *core.Rules)
	}{
		{"zero rows", func(r *core.Rules) { r.Rows = 0 }},
		{"palette too large", func(r *core.Rules) { r.Palette = core.MaxPalette + 1 }},
		{"no colors", func(r *core.Rules) { r.Palette = 0 }},
		{"negative spawn", func(r *core.Rules) { r.SpawnPerTurn = -1 }},
		{"zero threshold", func(r *core.Rules) { r.Progression.BaseThreshold = 0 }},
		{"zero level step", func(r *core.Rules) { r.Progression.LevelScoreStep = 0 }},
		{"layout outside board", func(r *core.Rules) {
			r.Initial.Cells = []core.Placement{{Pos: core.P(9, 0), Color: core.Red}}
		}},
		{"layout color outside palette", func(r *core.Rules) {
			r.Initial.Cells = []core.Placement{{Pos: core.P(0, 0), Color: core.Cyan}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.DefaultRules()
			tt.mutate(&r)
			_, err := core.New(r)
			assert.ErrorIs(t, err, core.ErrInvalidRules)
		})
	}
}

func TestMoveClearsRowWithoutSpawning(t *testing.T) {
	rules := layoutRules(t,
		"RRRRR....",
		".........",
		".........",
		".........",
		"....B....",
		".........",
		".........",
		".........",
		"........R",
	)
	spawner := &scriptedSpawner{}
	e, err := core.New(rules, core.WithSpawner(spawner))
	require.NoError(t, err)

	res, err := e.Move(core.P(8, 8), core.P(0, 5))
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, 36, res.ScoreDelta)
	assert.Equal(t, 6, res.ClearedCells)
	require.Len(t, res.Cleared, 1)
	assert.Empty(t, res.Spawned)
	assert.Zero(t, spawner.calls, "a clearing move must not spawn")
	assert.Equal(t, "cleared!", res.Message)

	assert.Equal(t, 36, e.Score())
	assert.Equal(t, 6, e.Cleared())
	assert.Equal(t, 1, e.Moves())
	assert.Equal(t, 1, e.Grid().FilledCount())
	assert.Equal(t, core.PhaseIdle, e.Phase())
}

func TestClearingLastPiecesEndsGame(t *testing.T) {
	rules := layoutRules(t, "RR.", "...", "..R")
	rules.Progression.BaseThreshold = 3
	e, err := core.New(rules, core.WithSpawner(&scriptedSpawner{}))
	require.NoError(t, err)

	res, err := e.Move(core.P(2, 2), core.P(0, 2))
	require.NoError(t, err)

	assert.Equal(t, 9, res.ScoreDelta)
	assert.Equal(t, core.ReasonNoMoves, res.GameOver)
	assert.Equal(t, "game over: no legal moves", e.Message())
	assert.Zero(t, e.Grid().FilledCount())
	assert.True(t, e.IsGameOver())
}

func TestMoveWithoutClearSpawns(t *testing.T) {
	rules := layoutRules(t,
		"R....",
		".....",
		".....",
		".....",
		".....",
	)
	e, err := core.New(rules, core.WithSeed(9))
	require.NoError(t, err)

	res, err := e.Move(core.P(0, 0), core.P(4, 4))
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Len(t, res.Spawned, 3)
	assert.Zero(t, res.ScoreDelta)
	assert.Equal(t, "+3 pieces", res.Message)
	assert.Equal(t, core.Red, e.Cell(core.P(4, 4)).Color)
	assert.True(t, e.Cell(core.P(0, 0)).IsEmpty() || containsPos(res.Spawned, core.P(0, 0)))
	assert.Equal(t, 4, e.Grid().FilledCount())
	assert.Equal(t, res.Spawned, e.LastSpawned())
}

func containsPos(placed []core.Placement, p core.Position) bool {
	for _, pl := range placed {
		if pl.Pos == p {
			return true
		}
	}
	return false
}

func TestSpawnCanClear(t *testing.T) {
	rules := layoutRules(t,
		"BB...",
		".....",
		"R....",
	)
	rules.Progression = core.Progression{BaseThreshold: 3, LevelScoreStep: 1000}
	spawner := &scriptedSpawner{script: []core.Placement{
		{Pos: core.P(0, 2), Color: core.Blue},
		{Pos: core.P(1, 0), Color: core.Green},
		{Pos: core.P(1, 2), Color: core.Purple},
	}}
	e, err := core.New(rules, core.WithSpawner(spawner))
	require.NoError(t, err)

	res, err := e.Move(core.P(2, 0), core.P(2, 4))
	require.NoError(t, err)

	assert.Equal(t, 1, spawner.calls)
	assert.Len(t, res.Spawned, 3)
	require.Len(t, res.Cleared, 1)
	assert.Equal(t, core.Blue, res.Cleared[0].Color)
	assert.Equal(t, 9, res.ScoreDelta)
	assert.Equal(t, "spawn cleared too", res.Message)
	assert.Equal(t, []string{
		".....",
		"G.P..",
		"....R",
	}, core.FormatGrid(e.Grid()))
}

func TestSpawnFillsBoardEndsGame(t *testing.T) {
	rules := layoutRules(t, "R...")
	rules.Progression.BaseThreshold = 10
	e, err := core.New(rules, core.WithSeed(2))
	require.NoError(t, err)

	res, err := e.Move(core.P(0, 0), core.P(0, 3))
	require.NoError(t, err)

	assert.Len(t, res.Spawned, 3)
	assert.Equal(t, core.ReasonBoardFull, res.GameOver)
	assert.True(t, e.IsGameOver())
	assert.Equal(t, core.PhaseGameOver, e.Phase())
	assert.Equal(t, core.ReasonBoardFull, e.GameOverReason())
	assert.Equal(t, "game over: board full", e.Message())

	_, err = e.Select(core.P(0, 0))
	assert.ErrorIs(t, err, core.ErrGameOver)
	_, err = e.Move(core.P(0, 0), core.P(0, 1))
	assert.ErrorIs(t, err, core.ErrGameOver)

	e.NewGame()
	assert.False(t, e.IsGameOver())
	assert.Equal(t, []string{"R..."}, core.FormatGrid(e.Grid()))
}

func TestSpawnLimitedByEmptyCells(t *testing.T) {
	rules := layoutRules(t, "R..")
	rules.Progression.BaseThreshold = 10
	e, err := core.New(rules)
	require.NoError(t, err)

	res, err := e.Move(core.P(0, 0), core.P(0, 2))
	require.NoError(t, err)
	assert.Len(t, res.Spawned, 2)
	assert.True(t, e.IsGameOver())
}

func TestUnreachableMoveChangesNothing(t *testing.T) {
	rules := layoutRules(t,
		".R...",
		"RBR..",
		".R...",
	)
	spawner := &scriptedSpawner{}
	e, err := core.New(rules, core.WithSpawner(spawner))
	require.NoError(t, err)
	before := e.Snapshot()

	_, err = e.Select(core.P(1, 1))
	require.NoError(t, err)
	require.Equal(t, core.PhaseSelected, e.Phase())

	plan, err := e.PlanMove(core.P(1, 1), core.P(1, 4))
	require.NoError(t, err)

	assert.False(t, plan.Accepted())
	assert.Nil(t, plan.Path)
	assert.Equal(t, "unreachable", e.Message())
	assert.Equal(t, core.PhaseIdle, e.Phase())
	_, selected := e.Selection()
	assert.False(t, selected)
	assert.Zero(t, spawner.calls)
	assert.Equal(t, before.Board, e.Snapshot().Board)
	assert.Zero(t, e.Moves())

	res, err := e.Move(core.P(1, 1), core.P(1, 4))
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Zero(t, e.Moves())
}

func TestSelect(t *testing.T) {
	rules := layoutRules(t, "R.B", "...")
	e, err := core.New(rules)
	require.NoError(t, err)

	// Empty cell with nothing selected
	res, err := e.Select(core.P(0, 1))
	require.NoError(t, err)
	assert.Nil(t, res.Selection)
	assert.Nil(t, res.MoveTo)
	assert.Equal(t, core.PhaseIdle, e.Phase())

	res, err = e.Select(core.P(0, 0))
	require.NoError(t, err)
	require.NotNil(t, res.Selection)
	assert.Equal(t, core.P(0, 0), *res.Selection)
	assert.Equal(t, core.PhaseSelected, e.Phase())

	// Another piece replaces the selection
	res, err = e.Select(core.P(0, 2))
	require.NoError(t, err)
	assert.Equal(t, core.P(0, 2), *res.Selection)
	sel, ok := e.Selection()
	assert.True(t, ok)
	assert.Equal(t, core.P(0, 2), sel)

	// Empty cell while selected requests a move
	res, err = e.Select(core.P(1, 1))
	require.NoError(t, err)
	require.NotNil(t, res.MoveTo)
	assert.Equal(t, core.P(1, 1), *res.MoveTo)
	assert.Equal(t, core.P(0, 2), *res.Selection)
	assert.Equal(t, core.PhaseSelected, e.Phase())

	_, err = e.Select(core.P(5, 5))
	assert.ErrorIs(t, err, core.ErrOutOfBounds)

	require.NoError(t, e.Deselect())
	assert.Equal(t, core.PhaseIdle, e.Phase())
}

func TestBusyWhileResolving(t *testing.T) {
	rules := layoutRules(t, "R....", ".....", ".....")
	e, err := core.New(rules, core.WithSeed(4))
	require.NoError(t, err)

	plan, err := e.PlanMove(core.P(0, 0), core.P(2, 4))
	require.NoError(t, err)
	require.True(t, plan.Accepted())
	assert.True(t, e.Busy())
	assert.Same(t, plan, e.Pending())
	before := e.Snapshot()

	_, err = e.Select(core.P(0, 1))
	assert.ErrorIs(t, err, core.ErrBusy)
	_, err = e.PlanMove(core.P(0, 0), core.P(1, 1))
	assert.ErrorIs(t, err, core.ErrBusy)
	_, err = e.Move(core.P(0, 0), core.P(1, 1))
	assert.ErrorIs(t, err, core.ErrBusy)
	assert.ErrorIs(t, e.Deselect(), core.ErrBusy)
	assert.Equal(t, before, e.Snapshot(), "rejected input must not change state")

	_, err = e.Commit(&core.Plan{})
	assert.ErrorIs(t, err, core.ErrNoPendingPlan)

	after := plan.After()
	res, err := e.Commit(plan)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.False(t, e.Busy())
	assert.True(t, after.Equal(e.Grid()))

	_, err = e.Commit(plan)
	assert.ErrorIs(t, err, core.ErrNoPendingPlan)
}

func TestNewGameDuringResolveDropsPlan(t *testing.T) {
	rules := layoutRules(t, "R....")
	e, err := core.New(rules)
	require.NoError(t, err)

	plan, err := e.PlanMove(core.P(0, 0), core.P(0, 4))
	require.NoError(t, err)

	e.NewGame()
	assert.Nil(t, e.Pending())
	assert.Equal(t, core.PhaseIdle, e.Phase())
	_, err = e.Commit(plan)
	assert.ErrorIs(t, err, core.ErrNoPendingPlan)
}

func TestLevelUpRaisesThreshold(t *testing.T) {
	rules := layoutRules(t, "RR.", "B..", "..R")
	rules.Progression = core.Progression{BaseThreshold: 3, LevelScoreStep: 5}
	e, err := core.New(rules, core.WithSpawner(&scriptedSpawner{}))
	require.NoError(t, err)

	res, err := e.Move(core.P(2, 2), core.P(0, 2))
	require.NoError(t, err)

	require.NotNil(t, res.LevelUp)
	assert.Equal(t, core.LevelChange{From: 1, Level: 2, Threshold: 4}, *res.LevelUp)
	assert.Equal(t, "level 2: groups of 4 now clear", res.Message)
	assert.Equal(t, 2, e.Level())
	assert.Equal(t, 4, e.Threshold())
}

func TestLevelJumpReportsHighestLevel(t *testing.T) {
	rules := layoutRules(t, "RR.", "B..", "..R")
	rules.Progression = core.Progression{BaseThreshold: 3, LevelScoreStep: 2}
	e, err := core.New(rules, core.WithSpawner(&scriptedSpawner{}))
	require.NoError(t, err)

	res, err := e.Move(core.P(2, 2), core.P(0, 2))
	require.NoError(t, err)

	require.NotNil(t, res.LevelUp)
	assert.Equal(t, 5, res.LevelUp.Level)
	assert.Equal(t, 1, res.LevelUp.From)
	assert.Equal(t, 7, e.Threshold())
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() []core.Snapshot {
		e, err := core.New(core.DefaultRules(), core.WithSeed(1234))
		require.NoError(t, err)
		var snaps []core.Snapshot
		for i := 0; i < 30 && !e.IsGameOver(); i++ {
			from, to, ok := firstMove(e.Grid())
			require.True(t, ok)
			_, err := e.Move(from, to)
			require.NoError(t, err)
			snaps = append(snaps, e.Snapshot())
		}
		return snaps
	}

	a, b := play(), play()
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestScoreNeverDecreases(t *testing.T) {
	e, err := core.New(core.DefaultRules(), core.WithSeed(77))
	require.NoError(t, err)

	prevScore, prevLevel := 0, 1
	for i := 0; i < 1000 && !e.IsGameOver(); i++ {
		from, to, ok := firstMove(e.Grid())
		require.True(t, ok)
		_, err := e.Move(from, to)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, e.Score(), prevScore)
		assert.GreaterOrEqual(t, e.Level(), prevLevel)
		prevScore, prevLevel = e.Score(), e.Level()
	}
	assert.True(t, e.IsGameOver(), "the board should fill up eventually")
}
