package core

import (
	"fmt"
	"strings"
)

// MaxPalette is the largest supported number of piece colors.
const MaxPalette = 7

// Piece colors in palette order.
const (
	Red Color = iota + 1
	Blue
	Orange
	Green
	Purple
	Yellow
	Cyan
)

var colorNames = [MaxPalette + 1]string{"empty", "red", "blue", "orange", "green", "purple", "yellow", "cyan"}

var colorChars = [MaxPalette + 1]rune{'.', 'R', 'B', 'O', 'G', 'P', 'Y', 'C'}

// String returns the color name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Char returns a single character for the color; '.' for Empty.
func (c Color) Char() rune {
	if int(c) < len(colorChars) {
		return colorChars[c]
	}
	return '?'
}

// ParseColor converts a color name or its letter to a Color.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range colorNames {
		if s == name || (len(s) == 1 && rune(s[0]) == toLowerRune(colorChars[i])) {
			return Color(i), true
		}
	}
	return Empty, false
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// ParseLayout reads a board drawn as text, one string per row, using the
// color letters (R B O G P Y C) and '.' for empty cells.
func ParseLayout(rows []string) ([]Placement, error) {
	var out []Placement
	for r, line := range rows {
		for c, ch := range []rune(line) {
			color, ok := ParseColor(string(ch))
			if !ok {
				return nil, fmt.Errorf("%w: unknown cell %q at %v", ErrInvalidRules, ch, P(r, c))
			}
			if color != Empty {
				out = append(out, Placement{Pos: P(r, c), Color: color})
			}
		}
	}
	return out, nil
}

// FormatGrid draws the grid in the ParseLayout text format.
func FormatGrid(g *Grid) []string {
	rows := make([]string, g.Rows)
	for r := 0; r < g.Rows; r++ {
		var sb strings.Builder
		for c := 0; c < g.Cols; c++ {
			sb.WriteRune(g.ColorAt(P(r, c)).Char())
		}
		rows[r] = sb.String()
	}
	return rows
}
