package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

// distance is a reference BFS over empty cells, -1 when unreachable.
func distance(g *core.Grid, from, to core.Position) int {
	dist := map[core.Position]int{from: 0}
	queue := []core.Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return dist[cur]
		}
		for _, n := range g.Neighbors(cur) {
			if _, seen := dist[n]; seen || !g.IsEmpty(n) {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return -1
}

func assertValidPath(t *testing.T, g *core.Grid, path core.Path, from, to core.Position) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, from, path[0])
	assert.Equal(t, to, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		assert.True(t, path[i-1].Adjacent(path[i]), "step %d: %v -> %v", i, path[i-1], path[i])
		assert.True(t, g.IsEmpty(path[i]), "step %d lands on a piece at %v", i, path[i])
	}
}

func TestFindPathStraight(t *testing.T) {
	g := board(t, 5, "R....")

	path, ok := core.FindPath(g, core.P(0, 0), core.P(0, 4))
	require.True(t, ok)
	assert.Equal(t, 4, path.Len())
	assertValidPath(t, g, path, core.P(0, 0), core.P(0, 4))
}

func TestFindPathTieBreak(t *testing.T) {
	g := board(t, 5, "R..", "...", "...")

	// Down is explored before right.
	path, ok := core.FindPath(g, core.P(0, 0), core.P(1, 1))
	require.True(t, ok)
	assert.Equal(t, core.Path{core.P(0, 0), core.P(1, 0), core.P(1, 1)}, path)
}

func TestFindPathAroundWall(t *testing.T) {
	g := board(t, 5,
		"R.B..",
		"..B..",
		"..B..",
		".....",
	)

	path, ok := core.FindPath(g, core.P(0, 0), core.P(0, 4))
	require.True(t, ok)
	assert.Equal(t, 10, path.Len())
	assertValidPath(t, g, path, core.P(0, 0), core.P(0, 4))
}

func TestFindPathRejects(t *testing.T) {
	g := board(t, 5,
		".R...",
		"RBR..",
		".R...",
	)

	tests := []struct {
		name     string
		from, to core.Position
	}{
		{"enclosed piece", core.P(1, 1), core.P(1, 4)},
		{"empty origin", core.P(0, 0), core.P(0, 4)},
		{"occupied destination", core.P(0, 1), core.P(1, 0)},
		{"origin out of bounds", core.P(-1, 0), core.P(0, 4)},
		{"destination out of bounds", core.P(0, 1), core.P(0, 5)},
		{"same cell", core.P(0, 1), core.P(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := core.FindPath(g, tt.from, tt.to)
			assert.False(t, ok)
			assert.Nil(t, path)
		})
	}
}

func TestFindPathMatchesReferenceDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		g := core.NewGrid(9, 9, 5)
		core.NewRandomSpawner(rng).Spawn(g, 20+rng.Intn(40))

		filled := g.FilledPositions()
		empties := g.EmptyPositions()
		from := filled[rng.Intn(len(filled))]
		to := empties[rng.Intn(len(empties))]

		want := distance(g, from, to)
		path, ok := core.FindPath(g, from, to)
		if want < 0 {
			assert.False(t, ok, "trial %d: path found to unreachable %v", trial, to)
			continue
		}
		require.True(t, ok, "trial %d: no path from %v to %v", trial, from, to)
		assert.Equal(t, want, path.Len(), "trial %d", trial)
		assertValidPath(t, g, path, from, to)
	}
}

func TestReachable(t *testing.T) {
	g := board(t, 5,
		"R.B",
		"BBB",
		"...",
	)

	assert.ElementsMatch(t, []core.Position{core.P(0, 1)}, core.Reachable(g, core.P(0, 0)))
	assert.True(t, core.CanReachAnyEmpty(g, core.P(0, 0)))
	assert.Len(t, core.Reachable(g, core.P(1, 0)), 3)
	assert.Nil(t, core.Reachable(g, core.P(2, 2)))
	assert.False(t, core.CanReachAnyEmpty(g, core.P(2, 2)))
}

func TestHasLegalMove(t *testing.T) {
	assert.True(t, core.HasLegalMove(board(t, 5, "R.", "..")))
	assert.False(t, core.HasLegalMove(board(t, 5, "RB", "GP")))
	assert.False(t, core.HasLegalMove(board(t, 5, "..", "..")))
}
