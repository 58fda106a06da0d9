package core

import "math/rand"

// Placement is a piece placed on the board.
type Placement struct {
	Pos   Position
	Color Color
}

// Spawner assigns colors to empty cells between turns.
type Spawner interface {
	// Spawn fills up to n empty cells of g and returns what it placed.
	Spawn(g *Grid, n int) []Placement
}

// RandomSpawner spawns uniformly random colors on uniformly random empty cells.
type RandomSpawner struct {
	rng *rand.Rand
}

// NewRandomSpawner creates a spawner drawing from rng.
func NewRandomSpawner(rng *rand.Rand) *RandomSpawner {
	return &RandomSpawner{rng: rng}
}

// Spawn places min(n, empty cells) random pieces.
func (s *RandomSpawner) Spawn(g *Grid, n int) []Placement {
	empties := g.EmptyPositions()
	if len(empties) == 0 || n <= 0 || g.Palette <= 0 {
		return nil
	}
	s.rng.Shuffle(len(empties), func(i, j int) {
		empties[i], empties[j] = empties[j], empties[i]
	})
	if n > len(empties) {
		n = len(empties)
	}

	placed := make([]Placement, 0, n)
	for _, p := range empties[:n] {
		c := Color(s.rng.Intn(g.Palette) + 1)
		g.Set(p, c)
		placed = append(placed, Placement{Pos: p, Color: c})
	}
	return placed
}

// InitialFill describes the board at the start of a game.
// Cells wins over PerColor, which wins over Count.
type InitialFill struct {
	PerColor int         // Pieces of every palette color on shuffled cells
	Count    int         // Random pieces, as if spawned
	Cells    []Placement // Fixed layout
}

// DefaultInitialFill returns twelve pieces of each color.
func DefaultInitialFill() InitialFill {
	return InitialFill{PerColor: 12}
}

// Fill applies the initial fill to an empty grid.
func (f InitialFill) Fill(g *Grid, rng *rand.Rand) []Placement {
	switch {
	case len(f.Cells) > 0:
		placed := make([]Placement, 0, len(f.Cells))
		for _, pl := range f.Cells {
			if !g.InBounds(pl.Pos) || pl.Color == Empty || int(pl.Color) > g.Palette {
				continue
			}
			g.Set(pl.Pos, pl.Color)
			placed = append(placed, pl)
		}
		return placed

	case f.PerColor > 0:
		empties := g.EmptyPositions()
		rng.Shuffle(len(empties), func(i, j int) {
			empties[i], empties[j] = empties[j], empties[i]
		})
		var placed []Placement
		next := 0
		for i := 0; i < f.PerColor; i++ {
			for c := 1; c <= g.Palette; c++ {
				if next >= len(empties) {
					return placed
				}
				p := empties[next]
				next++
				g.Set(p, Color(c))
				placed = append(placed, Placement{Pos: p, Color: Color(c)})
			}
		}
		return placed

	default:
		return NewRandomSpawner(rng).Spawn(g, f.Count)
	}
}
