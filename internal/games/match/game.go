package match

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/registry"
	"github.com/vovakirdan/playroom/internal/scores"
)

// Card cell geometry on screen.
const (
	cardW     = 5
	cardH     = 3
	cardGapX  = 1
	hudHeight = 2
)

// Package-level settings shared by every board created through the registry.
var (
	settingsMu    sync.RWMutex
	settingsCfg   = config.DefaultMatchConfig()
	settingsStore = Scorer(scores.NewMemoryStore())
)

// Configure sets the configuration and score store used by new games.
// A nil scorer keeps the current one.
func Configure(cfg config.MatchConfig, s Scorer) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settingsCfg = cfg
	if s != nil {
		settingsStore = s
	}
}

// Settings returns the configuration new games are dealt with.
func Settings() config.MatchConfig {
	cfg, _ := currentSettings()
	return cfg
}

func currentSettings() (config.MatchConfig, Scorer) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCfg, settingsStore
}

// Game drives a Memory Match board at the platform tick rate.
type Game struct {
	difficulty Difficulty
	engine     *Engine
	state      State
	rng        *rand.Rand

	resolve core.Timer       // presentation delay of a pending pair
	clock   core.Accumulator // 1 Hz run clock
	frame   time.Duration
	second  time.Duration // tickRate frames

	tickRate int
	cursor   int
	tick     uint64
	paused   bool
	fresh    bool
	screenW  int
	screenH  int
}

// New creates a game for the given difficulty.
func New(d Difficulty) *Game {
	return &Game{difficulty: d}
}

func init() {
	for _, d := range config.Difficulties() {
		registry.Register(GameID(d), func() registry.Game {
			return New(d)
		})
	}
}

// GameID returns the registry id of a difficulty.
func GameID(d Difficulty) string {
	return "match_" + string(d)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID(g.difficulty)
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Memory Match (" + titleCase(string(g.difficulty)) + ")"
}

// Difficulty returns the board size of this game.
func (g *Game) Difficulty() Difficulty {
	return g.difficulty
}

// Reset deals a new board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	matchCfg, store := currentSettings()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.engine = NewEngine(matchCfg, WithRand(g.rng), WithScorer(store))
	g.frame = cfg.FrameDuration()
	g.tickRate = cfg.TickRate
	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.second = g.frame * time.Duration(rate)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.cursor = 0
	g.paused = false
	g.fresh = true
	g.resolve.Cancel()
	g.clock.Reset()

	state, err := g.engine.NewGame(g.difficulty)
	if err != nil {
		// Unknown difficulties never reach the registry; fall back to easy.
		g.difficulty = Easy
		state, _ = g.engine.NewGame(Easy)
	}
	g.state = state
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

	result := core.StepResult{Started: g.fresh}
	g.fresh = false

	if in.Has(core.ActionPause) && g.state.Phase == PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused || g.state.Phase != PhasePlaying {
		result.State = g.State()
		return result
	}

	g.moveCursor(in)
	if in.Has(core.ActionSelect) {
		g.selectAtCursor()
	}

	if g.resolve.Advance(g.frame) {
		g.state = g.engine.Resolve(g.state)
	}
	for range g.clock.Add(g.frame, g.second) {
		g.state = g.engine.Tick(g.state)
	}

	result.State = g.State()
	return result
}

func (g *Game) moveCursor(in core.InputFrame) {
	n := len(g.state.Cards)
	if n == 0 {
		return
	}
	cols := g.engine.Columns(g.difficulty)
	for _, a := range in.Sequence() {
		switch a {
		case core.ActionLeft:
			g.cursor = core.Wrap(g.cursor-1, n)
		case core.ActionRight:
			g.cursor = core.Wrap(g.cursor+1, n)
		case core.ActionUp:
			g.cursor = core.Wrap(g.cursor-cols, n)
		case core.ActionDown:
			g.cursor = core.Wrap(g.cursor+cols, n)
		}
	}
}

func (g *Game) selectAtCursor() {
	if g.cursor < 0 || g.cursor >= len(g.state.Cards) {
		return
	}
	next, err := g.engine.Select(g.state, g.state.Cards[g.cursor].ID)
	if err != nil {
		return
	}
	g.state = next
	if next.Pending != nil && !g.resolve.Pending() {
		g.resolve.Schedule(next.Pending.Delay)
	}
}

// State returns the platform view of the run.
func (g *Game) State() core.GameState {
	gs := core.GameState{
		Score:  g.state.Stats.Score,
		Best:   g.state.Best,
		Paused: g.paused,
	}
	if g.state.Phase == PhaseWon {
		gs.GameOver = true
		gs.Outcome = core.OutcomeWon
	}
	return gs
}

// Summary describes the current run for the run history.
func (g *Game) Summary() core.RunSummary {
	return core.RunSummary{
		Difficulty: string(g.difficulty),
		Moves:      g.state.Stats.Moves,
		Seconds:    g.state.Stats.ElapsedSeconds,
	}
}

// Board returns the engine state.
func (g *Game) Board() State {
	return g.state
}

// Render draws the board, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	cols := g.engine.Columns(g.difficulty)
	rows := (len(g.state.Cards) + cols - 1) / cols
	boardW := cols*(cardW+cardGapX) - cardGapX
	boardH := rows * cardH
	if dst.Width() < boardW+2 || dst.Height() < boardH+hudHeight+2 {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	originX := (dst.Width() - boardW) / 2
	originY := hudHeight + (dst.Height()-hudHeight-1-boardH)/2
	for i, c := range g.state.Cards {
		x := originX + (i%cols)*(cardW+cardGapX)
		y := originY + (i/cols)*cardH
		g.renderCard(dst, core.NewRect(x, y, cardW, cardH), c, i == g.cursor)
	}

	dst.DrawTextCentered(dst.Height()-1, "arrows move  space flip  p pause  r restart  b back")

	switch {
	case g.state.Phase == PhaseWon:
		best := fmt.Sprintf("Best: %d", g.state.Best)
		if g.state.NewBest {
			best = "New best!"
		}
		dst.DrawOverlay(
			"You Win!",
			fmt.Sprintf("Score: %d", g.state.Stats.Score),
			fmt.Sprintf("Moves: %d  Time: %s", g.state.Stats.Moves, formatClock(g.state.Stats.ElapsedSeconds)),
			best,
			"Press R to play again",
		)
	case g.paused:
		dst.DrawOverlay("Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	st := g.state.Stats
	hud := fmt.Sprintf(" %s  Moves: %d  Matches: %d/%d  Time: %s  Best: %d",
		g.Title(), st.Moves, st.Matches, g.state.Pairs(), formatClock(st.ElapsedSeconds), g.state.Best)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func (g *Game) renderCard(dst *core.Screen, r core.Rect, c Card, focused bool) {
	frame := core.ColorGray
	switch {
	case focused:
		frame = core.ColorBrightYellow
	case c.Matched:
		frame = core.ColorGreen
	case c.Exposed:
		frame = core.ColorWhite
	}
	dst.DrawBox(r, frame)

	cx, cy := r.Center()
	if !c.Exposed && !c.Matched {
		dst.SetColored(cx, cy, '░', core.ColorGray)
		return
	}
	glyph, _ := utf8.DecodeRuneInString(g.engine.Glyph(g.difficulty, c.Symbol))
	color := core.PaletteColor(c.Symbol)
	if c.Matched {
		color = core.ColorGreen
	}
	dst.SetColored(cx, cy, glyph, color)
}

// formatClock renders seconds as m:ss.
func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	return string(r) + s[size:]
}
