package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/playroom/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the playroom with a game picker menu",
	Long: `Start the playroom in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game. Memory Match
asks for a board size first. Leave a game with Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  playroom menu
  playroom menu --fps 30
  playroom menu --db ./playroom.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	rt, err := openRuntime()
	if err != nil {
		fail("%v", err)
	}
	defer rt.Close()

	if err := rt.configureGames("", ""); err != nil {
		rt.Close()
		fail("%v", err)
	}

	if err := tui.RunSession(rt.services(), terminalConfig()); err != nil {
		rt.Close()
		fail("%v", err)
	}
}
