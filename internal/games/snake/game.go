// Package snake implements the classic Snake on a square board: steer the
// snake onto food to grow, and avoid the walls and your own body.
package snake

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/registry"
	"github.com/vovakirdan/playroom/internal/scores"
)

// Each board cell is drawn two characters wide so the field looks square.
const (
	cellW     = 2
	hudHeight = 2
)

var foodGlyphs = [FoodKinds]rune{'●', '◆', '♥', '♣', '✿', '★', '♦', '❀'}

// Package-level settings shared by every game created through the registry.
var (
	settingsMu    sync.RWMutex
	settingsCfg   = config.DefaultSnakeConfig()
	settingsStore = Scorer(scores.NewMemoryStore())
)

// Configure sets the configuration and score store used by new games.
// A nil scorer keeps the current one.
func Configure(cfg config.SnakeConfig, s Scorer) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settingsCfg = cfg
	if s != nil {
		settingsStore = s
	}
}

func currentSettings() (config.SnakeConfig, Scorer) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCfg, settingsStore
}

// Game drives a Snake run at the platform tick rate.
type Game struct {
	engine *Engine
	state  State
	rng    *rand.Rand
	cfg    config.SnakeConfig

	move      core.Accumulator // frames into moves at state.TickInterval
	explosion core.Timer       // collision marker lifetime
	frame     time.Duration
	tickRate  int

	tick       uint64
	playFrames int
	screenW    int
	screenH    int
}

// New creates a Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	snakeCfg, store := currentSettings()

	g.cfg = snakeCfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.engine = NewEngine(snakeCfg, WithRand(g.rng), WithScorer(store))
	g.state = g.engine.NewGame()
	g.frame = cfg.FrameDuration()
	g.tickRate = cfg.TickRate
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.playFrames = 0
	g.move.Reset()
	g.explosion.Cancel()
}

// Step advances the game by one driver tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
	}

	var result core.StepResult
	if in.Has(core.ActionSelect) && g.state.Phase == PhaseIdle {
		g.state = g.engine.Start(g.state)
		result.Started = true
	}
	if in.Has(core.ActionPause) {
		g.state = g.engine.TogglePause(g.state)
	}
	g.explosion.Advance(g.frame)

	if g.state.Phase != PhasePlaying {
		result.State = g.State()
		return result
	}

	g.playFrames++

	// Buffer direction input; the engine keeps the last valid request
	for _, a := range in.Sequence() {
		if v, ok := actionHeading(a); ok {
			g.state = g.engine.SetHeading(g.state, v)
		}
	}

	for range g.move.Add(g.frame, g.state.TickInterval) {
		g.state = g.engine.Tick(g.state)
		if g.state.Phase == PhaseOver {
			g.explosion.Schedule(time.Duration(g.cfg.Explosion.DurationMs) * time.Millisecond)
			break
		}
	}

	result.State = g.State()
	return result
}

func actionHeading(a core.Action) (Vec, bool) {
	switch a {
	case core.ActionUp:
		return Up, true
	case core.ActionDown:
		return Down, true
	case core.ActionLeft:
		return Left, true
	case core.ActionRight:
		return Right, true
	}
	return Vec{}, false
}

// State returns the platform view of the run.
func (g *Game) State() core.GameState {
	gs := core.GameState{
		Score:  g.state.Score,
		Best:   g.state.Best,
		Paused: g.state.Phase == PhasePaused,
	}
	if g.state.Phase == PhaseOver {
		gs.GameOver = true
		gs.Outcome = core.OutcomeOver
	}
	return gs
}

// Summary describes the current run for the run history.
func (g *Game) Summary() core.RunSummary {
	rate := g.tickRate
	if rate <= 0 {
		rate = 60
	}
	return core.RunSummary{
		Moves:   len(g.state.Body) - 1,
		Seconds: g.playFrames / rate,
	}
}

// Board returns the engine state.
func (g *Game) Board() State {
	return g.state
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	size := g.engine.GridSize()
	field := core.NewRect(0, hudHeight, size*cellW+2, size+2)
	if dst.Width() < field.W || dst.Height() < field.Bottom() {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}
	field.X = (dst.Width() - field.W) / 2
	dst.DrawBox(field, core.ColorGray)

	g.renderFood(dst, field)
	g.renderSnake(dst, field)
	if g.explosion.Pending() && g.state.Collision != nil {
		g.renderExplosion(dst, field, *g.state.Collision)
	}

	switch g.state.Phase {
	case PhaseIdle:
		dst.DrawOverlay("Snake", "Press Space to start")
	case PhasePaused:
		dst.DrawOverlay("Paused", "Press P to continue")
	case PhaseOver:
		if g.explosion.Pending() {
			return
		}
		best := fmt.Sprintf("Best: %d", g.state.Best)
		if g.state.NewBest {
			best = "New best!"
		}
		dst.DrawOverlay("Game Over", fmt.Sprintf("Score: %d", g.state.Score), best, "Press R to restart")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake  Score: %d  Level: %d  Best: %d", g.state.Score, g.state.Level, g.state.Best)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// cellPos maps a board cell to the screen position of its left half.
func cellPos(field core.Rect, p Point) (int, int) {
	return field.X + 1 + p.X*cellW, field.Y + 1 + p.Y
}

func (g *Game) renderFood(dst *core.Screen, field core.Rect) {
	if g.state.Food == NoFood {
		return
	}
	x, y := cellPos(field, g.state.Food)
	dst.SetColored(x, y, foodGlyphs[g.state.FoodKind%FoodKinds], core.PaletteColor(g.state.FoodKind))
}

// renderSnake draws the snake.
func (g *Game) renderSnake(dst *core.Screen, field core.Rect) {
	for i, seg := range g.state.Body {
		x, y := cellPos(field, seg)
		r, c := '▓', core.ColorGreen
		if i == 0 {
			r, c = '█', core.ColorBrightGreen
		}
		dst.SetColored(x, y, r, c)
		dst.SetColored(x+1, y, r, c)
	}
}

// renderExplosion marks the fatal cell. A wall hit lands on the border.
func (g *Game) renderExplosion(dst *core.Screen, field core.Rect, p Point) {
	x, y := cellPos(field, p)
	x = core.Clamp(x, field.X, field.Right()-2)
	y = core.Clamp(y, field.Y, field.Bottom()-1)
	dst.SetColored(x, y, '✸', core.ColorBrightRed)
	dst.SetColored(x+1, y, '✸', core.ColorOrange)
}
