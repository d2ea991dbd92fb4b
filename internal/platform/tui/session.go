package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/games/match"
	"github.com/vovakirdan/playroom/internal/registry"
)

type view int

const (
	viewMenu view = iota
	viewMatchMenu
	viewGame
	viewScoreboard
)

// SessionModel manages the full flow of one player:
// menu -> (difficulty) -> game -> menu, with the scoreboard one key away.
// It is the top-level model of both the local menu and every SSH session.
type SessionModel struct {
	services   Services
	config     core.RuntimeConfig
	username   string
	view       view
	menu       MenuModel
	matchMenu  MatchMenuModel
	game       GameModel
	scoreboard ScoreboardModel
	played     int64
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(services Services, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		services: services,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(services, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active view.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewMatchMenu:
		return m.updateMatchMenu(msg)
	case viewGame:
		return m.updateGame(msg)
	case viewScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.services, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard.embedded = true
		m.view = viewScoreboard
		return m, m.scoreboard.Init()
	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		if id == matchEntry {
			m.matchMenu = NewMatchMenuModel(m.services, m.config.ScreenW, m.config.ScreenH)
			m.view = viewMatchMenu
			return m, m.matchMenu.Init()
		}
		return m.startGame(id)
	}
	return m, cmd
}

func (m SessionModel) updateMatchMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.matchMenu.Update(msg)
	m.matchMenu = next.(MatchMenuModel)

	switch {
	case m.matchMenu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.matchMenu.WantsBack():
		return m.backToMenu()
	case m.matchMenu.Selected() != nil:
		return m.startGame(match.GameID(*m.matchMenu.Selected()))
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.services.logger().Error("cannot create game", "game", id, "error", err)
		return m.backToMenu()
	}

	// A fixed session seed still deals a different board per game.
	cfg := m.config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	} else {
		cfg.Seed += m.played
	}
	m.played++
	m.game = NewGameModel(game, m.services, cfg)
	m.view = viewGame
	m.services.logger().Debug("game started", "user", m.username, "game", id)
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.services, m.config.ScreenW, m.config.ScreenH)
	m.view = viewMenu
	return m, m.menu.Init()
}

// View renders the active view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewMatchMenu:
		return m.matchMenu.View()
	case viewGame:
		return m.game.View()
	case viewScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the interactive menu flow in the local terminal.
func RunSession(services Services, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(services, cfg, "local"),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
