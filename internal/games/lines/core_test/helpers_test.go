package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// board builds a grid from text rows, see core.ParseLayout.
func board(t *testing.T, palette int, rows ...string) *core.Grid {
	t.Helper()
	cells, err := core.ParseLayout(rows)
	require.NoError(t, err)
	g := core.NewGrid(len(rows), len([]rune(rows[0])), palette)
	for _, pl := range cells {
		g.Set(pl.Pos, pl.Color)
	}
	return g
}

// layoutRules returns rules whose initial board is the given text rows.
func layoutRules(t *testing.T, rows ...string) core.Rules {
	t.Helper()
	cells, err := core.ParseLayout(rows)
	require.NoError(t, err)
	r := core.DefaultRules()
	r.Rows = len(rows)
	r.Cols = len([]rune(rows[0]))
	r.Initial = core.InitialFill{Cells: cells}
	return r
}

// scriptedSpawner places pieces from a fixed list, skipping occupied cells.
type scriptedSpawner struct {
	script []core.Placement
	calls  int
}

func (s *scriptedSpawner) Spawn(g *core.Grid, n int) []core.Placement {
	s.calls++
	var placed []core.Placement
	for len(s.script) > 0 && len(placed) < n {
		pl := s.script[0]
		s.script = s.script[1:]
		if !g.IsEmpty(pl.Pos) {
			continue
		}
		g.Set(pl.Pos, pl.Color)
		placed = append(placed, pl)
	}
	return placed
}

// firstMove finds the first piece in row-major order with a reachable cell.
func firstMove(g *core.Grid) (from, to core.Position, ok bool) {
	for _, p := range g.FilledPositions() {
		if reach := core.Reachable(g, p); len(reach) > 0 {
			return p, reach[len(reach)-1], true
		}
	}
	return core.Position{}, core.Position{}, false
}
