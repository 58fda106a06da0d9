package lines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

const rowScenario = `
board: {rows: 9, cols: 9, colors: 5}
initial:
  layout:
    - "RRRRR...."
    - "........."
    - "........."
    - "........."
    - "....B...."
    - "........."
    - "........."
    - "........."
    - "........R"
animation: {start_ticks: 1, step_ticks: 1, clear_ticks: 2, toast_ticks: 5}
`

// newTestGame starts a game from a YAML config on an 80x24 screen.
func newTestGame(t *testing.T, yamlDoc string) *Game {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func click(g *Game, p core.Position) platformcore.InputFrame {
	x, y := g.layout.glyphAt(p)
	in := platformcore.NewInputFrame()
	in.SetClick(x, y)
	return in
}

func press(a platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	in.Set(a)
	return in
}

// runUntilIdle steps empty frames until the turn animation ends.
func runUntilIdle(t *testing.T, g *Game) int {
	t.Helper()
	for i := 1; i <= 500; i++ {
		if !g.Step(platformcore.NewInputFrame()).State.Busy {
			return i
		}
	}
	t.Fatal("animation did not finish")
	return 0
}

func TestGameInterface(t *testing.T) {
	g := New()
	assert.Equal(t, "lines", g.ID())
	assert.Equal(t, "Lines", g.Title())
	assert.Equal(t, platformcore.GameState{}, g.State())
}

func TestClickMoveClearsRow(t *testing.T) {
	g := newTestGame(t, rowScenario)

	g.Step(click(g, core.P(8, 8)))
	sel, ok := g.engine.Selection()
	require.True(t, ok)
	assert.Equal(t, core.P(8, 8), sel)

	res := g.Step(click(g, core.P(0, 5)))
	assert.True(t, res.State.Busy)
	assert.Equal(t, core.PhaseResolving, g.engine.Phase())

	// Input during the animation is ignored
	g.Step(click(g, core.P(4, 4)))
	assert.Equal(t, core.PhaseResolving, g.engine.Phase())

	runUntilIdle(t, g)
	state := g.State()
	assert.Equal(t, 36, state.Score)
	assert.Equal(t, 6, state.Cleared)
	assert.Equal(t, 1, state.Moves)
	assert.False(t, state.GameOver)
	assert.Equal(t, "cleared!", g.toast)
	assert.Empty(t, g.spawned)
	assert.Equal(t, core.PhaseIdle, g.engine.Phase())
}

func TestKeyboardMoveSpawns(t *testing.T) {
	g := newTestGame(t, `
board: {rows: 9, cols: 9, colors: 5}
initial:
  layout:
    - "........."
    - "........."
    - "........."
    - "........."
    - "....B...."
    - "........."
    - "........."
    - "........."
    - "........."
progression: {base_threshold: 20}
animation: {start_ticks: 1, step_ticks: 1, clear_ticks: 1, toast_ticks: 5}
`)
	require.Equal(t, core.P(4, 4), g.cursor)

	g.Step(press(platformcore.ActionConfirm))
	_, ok := g.engine.Selection()
	require.True(t, ok)

	g.Step(press(platformcore.ActionRight))
	g.Step(press(platformcore.ActionConfirm))
	require.True(t, g.State().Busy)
	runUntilIdle(t, g)

	assert.Equal(t, 1, g.State().Moves)
	assert.Zero(t, g.State().Score)
	assert.Len(t, g.spawned, 3)
	assert.Equal(t, "+3 pieces", g.toast)

	// The spawn highlight lasts until the next pick
	g.Step(press(platformcore.ActionConfirm))
	assert.Nil(t, g.spawned)
}

func TestUnreachableMoveShowsToast(t *testing.T) {
	g := newTestGame(t, `
board: {rows: 3, cols: 5, colors: 2}
initial:
  layout: [".R...", "RBR..", ".R..."]
animation: {toast_ticks: 3}
`)
	g.Step(click(g, core.P(1, 1)))
	g.Step(click(g, core.P(1, 4)))

	assert.False(t, g.State().Busy)
	assert.Equal(t, "unreachable", g.toast)
	_, ok := g.engine.Selection()
	assert.False(t, ok)

	for i := 0; i < 3; i++ {
		g.Step(platformcore.NewInputFrame())
	}
	assert.Empty(t, g.toast)
}

func TestBackDropsSelection(t *testing.T) {
	g := newTestGame(t, rowScenario)
	g.Step(click(g, core.P(0, 0)))
	g.Step(press(platformcore.ActionBack))
	_, ok := g.engine.Selection()
	assert.False(t, ok)
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t, rowScenario)
	for i := 0; i < 20; i++ {
		g.Step(press(platformcore.ActionUp))
		g.Step(press(platformcore.ActionLeft))
	}
	assert.Equal(t, core.P(0, 0), g.cursor)
	for i := 0; i < 20; i++ {
		g.Step(press(platformcore.ActionDown))
		g.Step(press(platformcore.ActionRight))
	}
	assert.Equal(t, core.P(8, 8), g.cursor)
}

func TestPauseStopsInput(t *testing.T) {
	g := newTestGame(t, rowScenario)
	res := g.Step(press(platformcore.ActionPause))
	assert.True(t, res.State.Paused)

	g.Step(click(g, core.P(0, 0)))
	_, ok := g.engine.Selection()
	assert.False(t, ok)

	res = g.Step(press(platformcore.ActionPause))
	assert.False(t, res.State.Paused)
}

func TestGameOverState(t *testing.T) {
	g := newTestGame(t, `
board: {rows: 1, cols: 4, colors: 1}
initial:
  layout: ["R..."]
progression: {base_threshold: 10}
animation: {start_ticks: 0, step_ticks: 0, clear_ticks: 0, toast_ticks: 5}
`)
	g.Step(click(g, core.P(0, 0)))
	g.Step(click(g, core.P(0, 3)))
	runUntilIdle(t, g)

	state := g.State()
	assert.True(t, state.GameOver)
	assert.Equal(t, "board full", state.Reason)

	// Clicks after the end are ignored
	g.Step(click(g, core.P(0, 0)))
	assert.Equal(t, 1, g.State().Moves)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestLayoutRoundTrip(t *testing.T) {
	l := newLayout(80, 9, 9)
	require.True(t, l.fits(80, 24))
	assert.Equal(t, 39, l.board.W)
	assert.Equal(t, 19, l.board.H)

	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			p := core.P(r, c)
			x, y := l.glyphAt(p)
			for _, dx := range []int{-1, 0, 1} {
				got, ok := l.cellAt(x+dx, y)
				require.True(t, ok, "cell %v dx %d", p, dx)
				assert.Equal(t, p, got)
			}
		}
	}

	_, ok := l.cellAt(l.board.X, l.board.Y)
	assert.False(t, ok, "frame corner")
	_, ok = l.cellAt(l.board.Right()-1, l.board.Y+1)
	assert.False(t, ok, "right frame")
	_, ok = l.cellAt(0, 0)
	assert.False(t, ok)
}

func TestResizeKeepsGame(t *testing.T) {
	g := newTestGame(t, rowScenario)
	g.Step(click(g, core.P(8, 8)))

	g.Resize(30, 10)
	assert.True(t, g.tooSmall)
	assert.True(t, g.State().Paused)

	screen := platformcore.NewScreen(30, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")

	g.Resize(100, 30)
	assert.False(t, g.tooSmall)
	sel, ok := g.engine.Selection()
	assert.True(t, ok, "resize must not restart the game")
	assert.Equal(t, core.P(8, 8), sel)
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t, rowScenario)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, out, "LINES")
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Level 1  Clear: 6")

	x, y := g.layout.glyphAt(core.P(0, 0))
	cell := screen.GetCell(x, y)
	assert.Equal(t, glyphPiece, cell.Rune)
	assert.Equal(t, platformcore.ColorRed, cell.Color)

	x, y = g.layout.glyphAt(core.P(4, 4))
	assert.Equal(t, platformcore.ColorBlue, screen.GetCell(x, y).Color)
	assert.Equal(t, '[', screen.Get(x-1, y), "cursor starts in the middle")

	// Selection marks the piece and its reachable cells
	g.Step(click(g, core.P(8, 8)))
	g.Render(screen)
	x, y = g.layout.glyphAt(core.P(8, 8))
	assert.Equal(t, glyphSelected, screen.Get(x, y))
	x, y = g.layout.glyphAt(core.P(0, 8))
	assert.Equal(t, glyphTrail, screen.Get(x, y))
}

func TestHintShowsGroupSizes(t *testing.T) {
	g := newTestGame(t, rowScenario)
	g.Step(press(platformcore.ActionHint))
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	x, y := g.layout.glyphAt(core.P(0, 2))
	assert.Equal(t, '5', screen.Get(x, y))
	x, y = g.layout.glyphAt(core.P(8, 8))
	assert.Equal(t, '1', screen.Get(x, y))
}

func TestRestartDealsNewBoard(t *testing.T) {
	g := newTestGame(t, rowScenario)
	g.Step(click(g, core.P(8, 8)))
	g.Step(click(g, core.P(0, 5)))
	runUntilIdle(t, g)
	require.Equal(t, 36, g.State().Score)

	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 2})
	assert.Zero(t, g.State().Score)
	assert.False(t, g.State().Busy)
	assert.Equal(t, "RRRRR....", core.FormatGrid(g.engine.Grid())[0])
}

func TestMissingConfigFallsBack(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(platformcore.DefaultConfig())
	assert.Equal(t, core.DefaultRules().Rows, g.engine.Rules().Rows)
	assert.Equal(t, 60, g.engine.Grid().FilledCount())
}
