package lines

import (
	"fmt"
	"strconv"

	platformcore "github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
)

const (
	cellWidth  = 4 // Columns per board cell
	cellHeight = 2 // Rows per board cell
	hudHeight  = 2 // Title and stats lines above the board
	footer     = 1 // Message line under the board
)

const (
	glyphPiece    = '●'
	glyphSelected = '◉'
	glyphSpawned  = '◆'
	glyphClearing = '✶'
	glyphTrail    = '·'
)

// pieceColors maps piece colors to screen colors.
var pieceColors = [core.MaxPalette + 1]platformcore.Color{
	core.Empty:  platformcore.ColorDefault,
	core.Red:    platformcore.ColorRed,
	core.Blue:   platformcore.ColorBlue,
	core.Orange: platformcore.ColorOrange,
	core.Green:  platformcore.ColorGreen,
	core.Purple: platformcore.ColorMagenta,
	core.Yellow: platformcore.ColorYellow,
	core.Cyan:   platformcore.ColorCyan,
}

// layout places the board on screen and maps clicks back to cells.
type layout struct {
	board      platformcore.Rect
	rows, cols int
}

func newLayout(screenW, rows, cols int) layout {
	w := cols*cellWidth + 3
	h := rows*cellHeight + 1
	return layout{
		board: platformcore.NewRect((screenW-w)/2, hudHeight, w, h),
		rows:  rows,
		cols:  cols,
	}
}

func (l layout) fits(w, h int) bool {
	return l.board.W <= w && hudHeight+l.board.H+footer <= h
}

func (l layout) inner() (x, y int) {
	return l.board.X + 1, l.board.Y + 1
}

// glyphAt returns the screen position of the piece glyph for a cell.
func (l layout) glyphAt(p core.Position) (x, y int) {
	ix, iy := l.inner()
	return ix + p.Col*cellWidth + 2, iy + p.Row*cellHeight
}

// cellAt maps a screen position to the board cell under it.
func (l layout) cellAt(x, y int) (core.Position, bool) {
	ix, iy := l.inner()
	if x < ix || y < iy {
		return core.Position{}, false
	}
	p := core.P((y-iy)/cellHeight, (x-ix)/cellWidth)
	if p.Row >= l.rows || p.Col >= l.cols {
		return core.Position{}, false
	}
	return p, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderMessage(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	need := fmt.Sprintf("Need %dx%d", g.layout.board.W, hudHeight+g.layout.board.H+footer)
	dst.DrawTextCenteredColor(y+1, need, platformcore.ColorGray)
}

// renderHUD draws the title, score and level.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	b := g.layout.board
	dst.DrawTextCenteredColor(0, "LINES", platformcore.ColorBrightWhite)

	dst.DrawText(b.X, 1, fmt.Sprintf("Score: %d", g.engine.Score()))
	info := fmt.Sprintf("Level %d  Clear: %d", g.engine.Level(), g.engine.Threshold())
	x := platformcore.Max(b.X, b.Right()-len(info))
	dst.DrawText(x, 1, info)
}

// renderBoard draws the frame, pieces and highlights.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	dst.DrawBox(g.layout.board, platformcore.ColorGray)

	grid := g.engine.Grid()
	var clearing map[core.Position]bool
	if g.anim != nil {
		grid = g.anim.board(grid)
		clearing = g.anim.clearing()
		for _, p := range g.anim.trail() {
			x, y := g.layout.glyphAt(p)
			dst.SetCell(x, y, glyphTrail, pieceColors[g.anim.plan.Color])
		}
	}

	sel, selected := g.engine.Selection()
	if selected && g.anim == nil {
		for _, p := range core.Reachable(grid, sel) {
			x, y := g.layout.glyphAt(p)
			dst.SetCell(x, y, glyphTrail, platformcore.ColorGray)
		}
	}

	var sizes core.Analysis
	if g.showSizes {
		sizes = core.Analyze(grid, g.engine.Threshold())
	}

	for _, p := range grid.FilledPositions() {
		x, y := g.layout.glyphAt(p)
		color := pieceColors[grid.ColorAt(p)]
		glyph := rune(glyphPiece)
		switch {
		case clearing[p]:
			if g.tick/4%2 == 0 {
				glyph = glyphClearing
			} else {
				color = platformcore.ColorBrightWhite
			}
		case selected && p == sel:
			glyph = glyphSelected
			dst.SetCell(x-1, y, '(', color)
			dst.SetCell(x+1, y, ')', color)
		case g.spawned[p]:
			glyph = glyphSpawned
		case g.showSizes:
			if n := sizes.SizeAt(grid, p); n > 0 && n < 10 {
				glyph = rune(strconv.Itoa(n)[0])
			}
		}
		dst.SetCell(x, y, glyph, color)
	}

	if !g.engine.IsGameOver() && !(selected && g.cursor == sel) {
		x, y := g.layout.glyphAt(g.cursor)
		dst.SetCell(x-1, y, '[', platformcore.ColorBrightWhite)
		dst.SetCell(x+1, y, ']', platformcore.ColorBrightWhite)
	}
}

// renderMessage draws the latest toast under the board.
func (g *Game) renderMessage(dst *platformcore.Screen) {
	if g.toast == "" {
		return
	}
	color := platformcore.ColorYellow
	if g.engine.IsGameOver() {
		color = platformcore.ColorRed
	}
	dst.DrawTextCenteredColor(g.layout.board.Bottom(), g.toast, color)
}

// renderOverlays draws pause and game over boxes.
func (g *Game) renderOverlays(dst *platformcore.Screen) {
	b := g.layout.board
	centerX := b.X + b.W/2
	centerY := b.Y + b.H/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.engine.IsGameOver() {
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			string(g.engine.GameOverReason()),
			fmt.Sprintf("Score: %d  Level: %d", g.engine.Score(), g.engine.Level()),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = platformcore.Max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(platformcore.NewRect(boxX, boxY, boxW, boxH), platformcore.ColorBrightWhite)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, boxY+1+i, line)
	}
}
