// Package lines provides the Lines puzzle for the terminal platform: move a
// piece along a free path and clear groups of exactly the threshold size.
package lines

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/games/lines/core"
	"github.com/vovakirdan/tui-lines/internal/registry"
)

// ID is the registry and score storage identifier.
const ID = "lines"

// Package-level variables for config
var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the config file path used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger for turn events. Nil restores the silent default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// Game adapts the engine to the tick-driven platform: cursor and mouse
// input, path animation, highlights and status messages.
type Game struct {
	cfg    config.LinesConfig
	engine *core.Engine
	anim   *animation
	layout layout

	cursor    core.Position
	spawned   map[core.Position]bool // Last turn's spawns, shown until the next pick
	showSizes bool
	paused    bool

	toast      string
	toastTicks int

	tick     uint64
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a new Lines game. Reset must be called before use.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Lines"
}

// Reset loads the configuration and starts a new game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = loadConfig()
	rules, err := RulesFromConfig(g.cfg)
	if err != nil {
		logger.Warn("invalid rules, using defaults", "error", err)
		g.cfg = config.DefaultLinesConfig()
		rules = core.DefaultRules()
	}

	engine, err := core.New(rules, core.WithSeed(cfg.Seed))
	if err != nil {
		// DefaultRules always validate
		logger.Error("cannot start engine", "error", err)
		engine, _ = core.New(core.DefaultRules(), core.WithSeed(cfg.Seed))
	}
	g.engine = engine
	g.anim = nil
	g.spawned = nil
	g.showSizes = false
	g.paused = false
	g.toast = ""
	g.toastTicks = 0
	g.tick = 0
	g.cursor = core.P(rules.Rows/2, rules.Cols/2)
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	logger.Debug("new game", "seed", cfg.Seed, "rows", rules.Rows, "cols", rules.Cols,
		"colors", rules.Palette, "threshold", engine.Threshold())
	if engine.IsGameOver() {
		g.showToast(engine.Message())
	}
}

func loadConfig() config.LinesConfig {
	cfg, err := config.LoadLines(configPath)
	if err != nil {
		logger.Warn("cannot load config, using defaults", "path", configPath, "error", err)
		return config.DefaultLinesConfig()
	}
	return cfg
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.engine == nil {
		return
	}
	rules := g.engine.Rules()
	g.layout = newLayout(w, rules.Rows, rules.Cols)
	g.tooSmall = !g.layout.fits(w, h)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	if g.toastTicks > 0 {
		g.toastTicks--
		if g.toastTicks == 0 {
			g.toast = ""
		}
	}

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(platformcore.ActionPause) && !g.engine.IsGameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionHint) {
		g.showSizes = !g.showSizes
	}
	g.moveCursor(in)

	if g.anim != nil && g.anim.advance() {
		g.commit()
	}

	if p, ok := in.ClickAt(); ok {
		if cell, ok := g.layout.cellAt(p.X, p.Y); ok {
			g.cursor = cell
			g.pick(cell)
		}
	}
	if in.Has(platformcore.ActionConfirm) {
		g.pick(g.cursor)
	}
	if in.Has(platformcore.ActionBack) {
		if err := g.engine.Deselect(); err != nil {
			logger.Debug("deselect ignored", "error", err)
		}
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	rules := g.engine.Rules()
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.Row--
	case in.Has(platformcore.ActionDown):
		g.cursor.Row++
	case in.Has(platformcore.ActionLeft):
		g.cursor.Col--
	case in.Has(platformcore.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Row = platformcore.Clamp(g.cursor.Row, 0, rules.Rows-1)
	g.cursor.Col = platformcore.Clamp(g.cursor.Col, 0, rules.Cols-1)
}

// pick handles a click or confirm on a board cell.
func (g *Game) pick(p core.Position) {
	res, err := g.engine.Select(p)
	if err != nil {
		if errors.Is(err, core.ErrBusy) || errors.Is(err, core.ErrGameOver) {
			logger.Debug("input ignored", "cell", p, "reason", err)
			return
		}
		logger.Warn("select failed", "cell", p, "error", err)
		return
	}
	g.spawned = nil
	if res.MoveTo == nil {
		return
	}

	plan, err := g.engine.PlanMove(*res.Selection, *res.MoveTo)
	if err != nil {
		logger.Warn("plan failed", "from", *res.Selection, "to", *res.MoveTo, "error", err)
		return
	}
	if !plan.Accepted() {
		logger.Debug("move rejected", "from", plan.Origin, "to", plan.Dest)
		g.showToast(plan.Message)
		return
	}
	g.anim = newAnimation(plan, g.cfg.Animation)
}

// commit applies the animated plan to the engine.
func (g *Game) commit() {
	plan := g.anim.plan
	g.anim = nil

	res, err := g.engine.Commit(plan)
	if err != nil {
		logger.Error("commit failed", "error", err)
		return
	}

	if len(res.Spawned) > 0 {
		g.spawned = make(map[core.Position]bool, len(res.Spawned))
		for _, pl := range res.Spawned {
			g.spawned[pl.Pos] = true
		}
	}
	g.showToast(res.Message)

	logger.Debug("turn", "steps", res.Path.Len(), "cleared", res.ClearedCells,
		"spawned", len(res.Spawned), "delta", res.ScoreDelta, "score", g.engine.Score())
	if res.LevelUp != nil {
		logger.Info("level up", "level", res.LevelUp.Level, "threshold", res.LevelUp.Threshold)
	}
	if res.GameOver != core.ReasonNone {
		logger.Info("game over", "reason", res.GameOver, "score", g.engine.Score(),
			"level", g.engine.Level(), "moves", g.engine.Moves())
	}
}

func (g *Game) showToast(msg string) {
	if msg == "" {
		return
	}
	g.toast = msg
	g.toastTicks = g.cfg.Animation.ToastTicks
	if g.toastTicks <= 0 {
		g.toastTicks = 1
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.engine == nil {
		return platformcore.GameState{}
	}
	return platformcore.GameState{
		Score:    g.engine.Score(),
		Level:    g.engine.Level(),
		Moves:    g.engine.Moves(),
		Cleared:  g.engine.Cleared(),
		GameOver: g.engine.IsGameOver(),
		Reason:   string(g.engine.GameOverReason()),
		Paused:   g.paused || g.tooSmall,
		Busy:     g.anim != nil,
	}
}

// Engine exposes the engine for inspection.
func (g *Game) Engine() *core.Engine {
	return g.engine
}
