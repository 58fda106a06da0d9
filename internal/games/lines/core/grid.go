// Package core provides the game-state engine for the Lines puzzle.
// This package is UI-agnostic and deterministic for a given seed.
package core

import "fmt"

// Color is a palette index. Empty (0) marks a cell without a piece;
// pieces use 1..Palette.
type Color uint8

// Empty is the color of a cell that holds no piece.
const Empty Color = 0

// Position addresses a cell by row and column.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Adjacent reports whether two positions share an edge.
func (p Position) Adjacent(other Position) bool {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Cell is a single board cell.
type Cell struct {
	Color     Color // Empty when the cell holds no piece
	GroupSize int   // Size of the cell's group as of the last analysis
}

// IsEmpty reports whether the cell holds no piece.
func (c Cell) IsEmpty() bool {
	return c.Color == Empty
}

// Grid is the board: Rows x Cols cells stored in row-major order.
type Grid struct {
	Rows    int
	Cols    int
	Palette int    // Number of piece colors; valid colors are 1..Palette
	Cells   []Cell // Flat array, index = row*Cols + col
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols, palette int) *Grid {
	return &Grid{
		Rows:    rows,
		Cols:    cols,
		Palette: palette,
		Cells:   make([]Cell, rows*cols),
	}
}

func (g *Grid) index(p Position) int {
	return p.Row*g.Cols + p.Col
}

// position converts a flat index back to a Position.
func (g *Grid) position(i int) Position {
	return Position{Row: i / g.Cols, Col: i % g.Cols}
}

// InBounds reports whether p lies on the board.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

// Get returns the cell at p. Out-of-bounds positions read as empty.
func (g *Grid) Get(p Position) Cell {
	if !g.InBounds(p) {
		return Cell{}
	}
	return g.Cells[g.index(p)]
}

// ColorAt returns the color at p.
func (g *Grid) ColorAt(p Position) Color {
	return g.Get(p).Color
}

// IsEmpty reports whether p holds no piece.
func (g *Grid) IsEmpty(p Position) bool {
	return g.Get(p).IsEmpty()
}

// Set places color c at p. Out-of-bounds positions are ignored.
// Panics if c is outside the palette.
func (g *Grid) Set(p Position, c Color) {
	if int(c) > g.Palette {
		panic(fmt.Sprintf("lines: color %d outside palette of %d", c, g.Palette))
	}
	if !g.InBounds(p) {
		return
	}
	g.Cells[g.index(p)] = Cell{Color: c}
}

// Clear empties the cell at p.
func (g *Grid) Clear(p Position) {
	g.Set(p, Empty)
}

// EmptyPositions returns every empty position in row-major order.
func (g *Grid) EmptyPositions() []Position {
	out := make([]Position, 0, len(g.Cells))
	for i, cell := range g.Cells {
		if cell.IsEmpty() {
			out = append(out, g.position(i))
		}
	}
	return out
}

// FilledPositions returns every position holding a piece in row-major order.
func (g *Grid) FilledPositions() []Position {
	out := make([]Position, 0, len(g.Cells))
	for i, cell := range g.Cells {
		if !cell.IsEmpty() {
			out = append(out, g.position(i))
		}
	}
	return out
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, cell := range g.Cells {
		if cell.IsEmpty() {
			n++
		}
	}
	return n
}

// FilledCount returns the number of cells holding a piece.
func (g *Grid) FilledCount() int {
	return len(g.Cells) - g.EmptyCount()
}

// Neighbors returns the in-bounds 4-neighbors of p in NeighborOrder.
func (g *Grid) Neighbors(p Position) []Position {
	out := make([]Position, 0, len(NeighborOrder))
	for _, d := range NeighborOrder {
		n := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// ApplySizes copies the group sizes of an analysis into the cell cache.
func (g *Grid) ApplySizes(a Analysis) {
	for i := range g.Cells {
		if i < len(a.Sizes) {
			g.Cells[i].GroupSize = a.Sizes[i]
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		Rows:    g.Rows,
		Cols:    g.Cols,
		Palette: g.Palette,
		Cells:   cells,
	}
}

// Equal reports whether two grids have the same dimensions and colors.
// Cached group sizes are ignored.
func (g *Grid) Equal(other *Grid) bool {
	if g.Rows != other.Rows || g.Cols != other.Cols {
		return false
	}
	for i, cell := range g.Cells {
		if cell.Color != other.Cells[i].Color {
			return false
		}
	}
	return true
}

// Colors returns the board colors as a Rows x Cols matrix.
func (g *Grid) Colors() [][]Color {
	out := make([][]Color, g.Rows)
	for r := range out {
		out[r] = make([]Color, g.Cols)
		for c := range out[r] {
			out[r][c] = g.Cells[r*g.Cols+c].Color
		}
	}
	return out
}

// GridFromRows builds a grid from a matrix of colors. Rows must share a length.
func GridFromRows(rows [][]Color, palette int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrInvalidRules)
	}
	g := NewGrid(len(rows), len(rows[0]), palette)
	for r, row := range rows {
		if len(row) != g.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidRules, r, len(row), g.Cols)
		}
		for c, color := range row {
			if int(color) > palette {
				return nil, fmt.Errorf("%w: color %d at %v outside palette", ErrInvalidRules, color, P(r, c))
			}
			g.Set(P(r, c), color)
		}
	}
	return g, nil
}
