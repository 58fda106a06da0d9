package core

// Path is an ordered sequence of positions from origin to destination inclusive.
type Path []Position

// Len returns the number of steps in the path.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// NeighborOrder is the 4-neighborhood enumeration order used by every search:
// down, up, right, left. It decides the shape of equal-length paths.
var NeighborOrder = [4]Position{
	{Row: 1, Col: 0},
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
}

// posQueue is a FIFO ring buffer of flat cell indices.
type posQueue struct {
	buf  []int
	head int
	size int
}

func newPosQueue(capacity int) *posQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &posQueue{buf: make([]int, capacity)}
}

func (q *posQueue) push(i int) {
	if q.size == len(q.buf) {
		grown := make([]int, len(q.buf)*2)
		for k := 0; k < q.size; k++ {
			grown[k] = q.buf[(q.head+k)%len(q.buf)]
		}
		q.buf = grown
		q.head = 0
	}
	q.buf[(q.head+q.size)%len(q.buf)] = i
	q.size++
}

func (q *posQueue) pop() int {
	i := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return i
}

func (q *posQueue) empty() bool {
	return q.size == 0
}

// searchFrom runs a BFS from origin over cells that are empty or equal to
// origin. visit is called for every dequeued index and stops the search when
// it returns true. Returns the parent links (-1 for unvisited, origin points
// to itself) and the index visit stopped at, or -1.
func searchFrom(g *Grid, origin Position, visit func(i int) bool) (parent []int, stop int) {
	n := len(g.Cells)
	parent = make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	start := g.index(origin)
	parent[start] = start

	q := newPosQueue(n)
	q.push(start)
	for !q.empty() {
		cur := q.pop()
		if visit(cur) {
			return parent, cur
		}
		p := g.position(cur)
		for _, d := range NeighborOrder {
			next := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
			if !g.InBounds(next) {
				continue
			}
			ni := g.index(next)
			if parent[ni] != -1 {
				continue
			}
			if ni != start && !g.Cells[ni].IsEmpty() {
				continue
			}
			parent[ni] = cur
			q.push(ni)
		}
	}
	return parent, -1
}

// FindPath returns a shortest path from origin to dest through empty cells.
// Returns false if origin holds no piece, dest is not empty, either is out of
// bounds, or no such path exists.
func FindPath(g *Grid, origin, dest Position) (Path, bool) {
	if !g.InBounds(origin) || !g.InBounds(dest) {
		return nil, false
	}
	if g.IsEmpty(origin) || !g.IsEmpty(dest) {
		return nil, false
	}

	target := g.index(dest)
	parent, stop := searchFrom(g, origin, func(i int) bool { return i == target })
	if stop == -1 {
		return nil, false
	}

	// Walk parent links back to the origin.
	start := g.index(origin)
	var rev []Position
	for i := target; ; i = parent[i] {
		rev = append(rev, g.position(i))
		if i == start {
			break
		}
	}
	path := make(Path, len(rev))
	for k, p := range rev {
		path[len(rev)-1-k] = p
	}
	return path, true
}

// CanReachAnyEmpty reports whether the piece at origin can reach at least one
// empty cell. A single flood-fill pass, stopping at the first empty cell.
func CanReachAnyEmpty(g *Grid, origin Position) bool {
	if !g.InBounds(origin) || g.IsEmpty(origin) {
		return false
	}
	start := g.index(origin)
	_, stop := searchFrom(g, origin, func(i int) bool {
		return i != start && g.Cells[i].IsEmpty()
	})
	return stop != -1
}

// Reachable returns every empty cell the piece at origin can move to,
// in BFS order.
func Reachable(g *Grid, origin Position) []Position {
	if !g.InBounds(origin) || g.IsEmpty(origin) {
		return nil
	}
	start := g.index(origin)
	var out []Position
	searchFrom(g, origin, func(i int) bool {
		if i != start {
			out = append(out, g.position(i))
		}
		return false
	})
	return out
}

// HasLegalMove reports whether any piece on the board can reach an empty cell.
func HasLegalMove(g *Grid) bool {
	for _, p := range g.FilledPositions() {
		if CanReachAnyEmpty(g, p) {
			return true
		}
	}
	return false
}
