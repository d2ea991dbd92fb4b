package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/games/match"
	"github.com/vovakirdan/playroom/internal/registry"
)

// matchEntry is the menu id of the Memory Match group.
const matchEntry = "match"

// MenuItem represents a selectable entry in the menu.
// The Memory Match boards share one entry that opens the difficulty selector.
type MenuItem struct {
	GameID string
	Title  string
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	services       Services
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// menuItems lists the registered games with the match boards folded into one entry.
func menuItems() []MenuItem {
	var items []MenuItem
	grouped := false
	for _, g := range registry.List() {
		if strings.HasPrefix(g.ID, matchEntry+"_") {
			if !grouped {
				items = append(items, MenuItem{GameID: matchEntry, Title: "Memory Match"})
				grouped = true
			}
			continue
		}
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}
	return items
}

// NewMenuModel creates a new menu model.
func NewMenuModel(services Services, width, height int) MenuModel {
	return MenuModel{
		items:     menuItems(),
		width:     width,
		height:    height,
		services:  services,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("P L A Y R O O M"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-14s %s", item.Title, dimStyle.Render(m.bestLabel(item)))
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("> %-14s", item.Title)) + " " + dimStyle.Render(m.bestLabel(item))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// bestLabel summarizes the stored best scores of an entry.
func (m MenuModel) bestLabel(item MenuItem) string {
	if m.services.Scores == nil {
		return ""
	}
	if item.GameID == matchEntry {
		parts := make([]string, 0, 3)
		for _, d := range config.Difficulties() {
			parts = append(parts, fmt.Sprintf("%c:%d", strings.ToUpper(string(d))[0], m.services.Scores.ReadBest(match.ScoreKey(d))))
		}
		return "best " + strings.Join(parts, " ")
	}
	key, ok := bestKey(item.GameID)
	if !ok {
		return ""
	}
	return fmt.Sprintf("best %d", m.services.Scores.ReadBest(key))
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
