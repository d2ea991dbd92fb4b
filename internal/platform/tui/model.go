package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/registry"
	"github.com/vovakirdan/playroom/internal/scores"
	"github.com/vovakirdan/playroom/internal/storage"
	"github.com/vovakirdan/playroom/internal/telemetry"
)

// Services are the shared dependencies of every terminal session.
// History may be nil, in which case finished runs are not recorded.
type Services struct {
	Scores  *scores.Store
	History *storage.Store
	Logger  *log.Logger
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// summarizer is implemented by games that can describe a run for the history.
type summarizer interface {
	Summary() core.RunSummary
}

// GameModel runs one game at the configured tick rate.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	services   Services
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	standalone bool // back quits the program instead of returning to a menu
	recorded   bool // finished run already written to the history
	loop       uint64
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, services Services, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	game.Reset(cfg)

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		services:   services,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keyMapper:  NewKeyMapper(),
		loop:       nextLoop(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// The run survives a resize; games lay out against the screen size.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Started {
		telemetry.RunStarted(m.game.ID())
	}

	switch {
	case m.gameState.GameOver && !m.recorded:
		m.recordRun()
		m.recorded = true
	case !m.gameState.GameOver:
		m.recorded = false
	}

	return m, tickCmd(m.config.TickRate, m.loop)
}

// recordRun writes a finished run to the history and the metrics.
func (m GameModel) recordRun() {
	telemetry.RunFinished(m.game.ID(), m.gameState.Outcome)

	if m.services.History == nil {
		return
	}

	entry := storage.ScoreEntry{
		GameID:  m.game.ID(),
		Score:   m.gameState.Score,
		Outcome: string(m.gameState.Outcome),
	}
	if s, ok := m.game.(summarizer); ok {
		sum := s.Summary()
		entry.Difficulty = sum.Difficulty
		entry.Moves = sum.Moves
		entry.Seconds = sum.Seconds
	}

	if _, err := m.services.History.SaveScore(entry); err != nil {
		m.services.logger().Warn("could not record run", "game", m.game.ID(), "error", err)
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last state reported by the game.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame plays a single game in the local terminal until the player quits
// or goes back.
func RunGame(game registry.Game, services Services, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, services, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
