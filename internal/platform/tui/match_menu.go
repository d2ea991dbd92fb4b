package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/games/match"
)

// MatchMenuModel lets the player pick a Memory Match board size.
type MatchMenuModel struct {
	difficulties []config.Difficulty
	cursor       int
	width        int
	height       int
	services     Services
	keyMapper    *KeyMapper
	selected     *config.Difficulty
	quitting     bool
	back         bool
}

// NewMatchMenuModel creates the difficulty selector.
func NewMatchMenuModel(services Services, width, height int) MatchMenuModel {
	return MatchMenuModel{
		difficulties: config.Difficulties(),
		width:        width,
		height:       height,
		services:     services,
		keyMapper:    NewKeyMapper(),
	}
}

// Init initializes the model.
func (m MatchMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MatchMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MatchMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.difficulties)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		d := m.difficulties[m.cursor]
		m.selected = &d
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the difficulty list with board size and best score.
func (m MatchMenuModel) View() string {
	if m.quitting {
		return ""
	}

	cfg := match.Settings()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("M E M O R Y   M A T C H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, d := range m.difficulties {
		md, _ := cfg.Difficulty(d)
		best := 0
		if m.services.Scores != nil {
			best = m.services.Scores.ReadBest(match.ScoreKey(d))
		}
		label := fmt.Sprintf("%-7s %2d pairs", titleWord(string(d)), md.Pairs)
		hint := dimStyle.Render(fmt.Sprintf("best %d", best))

		line := "  " + label + "  " + hint
		if i == m.cursor {
			line = selectedStyle.Render("> "+label) + "  " + hint
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

// Selected returns the chosen difficulty, or nil while still choosing.
func (m MatchMenuModel) Selected() *config.Difficulty {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m MatchMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m MatchMenuModel) WantsBack() bool {
	return m.back
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
