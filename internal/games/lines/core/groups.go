package core

// Group is a maximal set of same-colored, 4-connected cells.
type Group struct {
	Color Color
	Cells []Position
}

// Size returns the number of cells in the group.
func (g Group) Size() int {
	return len(g.Cells)
}

// Analysis is the result of labeling every group on a grid.
type Analysis struct {
	Sizes     []int   // Group size per cell, row-major; 0 for empty cells
	Groups    []Group // All groups in discovery order
	Clearable []Group // Groups whose size equals the threshold exactly
}

// ClearableCount returns the number of cells across all clearable groups.
func (a Analysis) ClearableCount() int {
	n := 0
	for _, g := range a.Clearable {
		n += g.Size()
	}
	return n
}

// SizeAt returns the group size recorded for p.
func (a Analysis) SizeAt(g *Grid, p Position) int {
	if !g.InBounds(p) {
		return 0
	}
	return a.Sizes[g.index(p)]
}

// Analyze flood-fills every group on the grid and marks the groups whose
// size is exactly threshold as clearable. Larger groups are never cleared.
func Analyze(g *Grid, threshold int) Analysis {
	n := len(g.Cells)
	a := Analysis{Sizes: make([]int, n)}
	seen := make([]bool, n)
	q := newPosQueue(n)

	for i0 := 0; i0 < n; i0++ {
		color := g.Cells[i0].Color
		if color == Empty || seen[i0] {
			continue
		}

		seen[i0] = true
		q.push(i0)
		var members []int
		for !q.empty() {
			cur := q.pop()
			members = append(members, cur)
			p := g.position(cur)
			for _, d := range NeighborOrder {
				next := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
				if !g.InBounds(next) {
					continue
				}
				ni := g.index(next)
				if seen[ni] || g.Cells[ni].Color != color {
					continue
				}
				seen[ni] = true
				q.push(ni)
			}
		}

		group := Group{Color: color, Cells: make([]Position, len(members))}
		for k, idx := range members {
			a.Sizes[idx] = len(members)
			group.Cells[k] = g.position(idx)
		}
		a.Groups = append(a.Groups, group)
		if len(members) == threshold {
			a.Clearable = append(a.Clearable, group)
		}
	}
	return a
}

// ClearResult describes the effect of clearing groups.
type ClearResult struct {
	Groups     []Group
	Cells      int // Total cells emptied
	ScoreDelta int // Sum of size squared over the cleared groups
}

// ApplyClear empties every cell of the given groups in place.
// Group sizes cached on cells are stale afterwards; run Analyze again.
func ApplyClear(g *Grid, groups []Group) ClearResult {
	res := ClearResult{Groups: groups}
	for _, grp := range groups {
		size := grp.Size()
		res.Cells += size
		res.ScoreDelta += size * size
		for _, p := range grp.Cells {
			g.Clear(p)
		}
	}
	return res
}
