package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/games/match"
	"github.com/vovakirdan/playroom/internal/platform/tui"
	"github.com/vovakirdan/playroom/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move the cursor or steer the snake
  Space/Enter  - Flip a card, start the snake
  P            - Pause
  R            - Restart
  B/Esc        - Leave the game
  Q/Ctrl+C     - Quit

Memory Match accepts a board size with --difficulty (easy, medium, hard).

Examples:
  playroom play snake
  playroom play match --difficulty medium
  playroom play match_hard
  playroom play snake --config ./my-snake.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Memory Match board size: easy, medium, hard")
}

// resolveGameID turns "match" plus a difficulty into a registry id.
func resolveGameID(arg, difficulty string) (string, error) {
	if arg == "match" {
		if difficulty == "" {
			difficulty = string(config.DifficultyEasy)
		}
		d, err := config.ParseDifficulty(difficulty)
		if err != nil {
			return "", err
		}
		return match.GameID(d), nil
	}
	if difficulty != "" && !strings.HasPrefix(arg, "match") {
		return "", fmt.Errorf("--difficulty only applies to match")
	}
	if !registry.Exists(arg) {
		return "", fmt.Errorf("%w %q", registry.ErrUnknownGame, arg)
	}
	return arg, nil
}

func runPlay(_ *cobra.Command, args []string) {
	gameID, err := resolveGameID(args[0], flagDifficulty)
	if err != nil {
		fail("%v\nRun 'playroom list' to see available games.", err)
	}

	rt, err := openRuntime()
	if err != nil {
		fail("%v", err)
	}
	defer rt.Close()

	matchPath, snakePath := "", ""
	if strings.HasPrefix(gameID, "match") {
		matchPath = flagConfig
	} else {
		snakePath = flagConfig
	}
	if err := rt.configureGames(matchPath, snakePath); err != nil {
		rt.Close()
		fail("%v", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		rt.Close()
		fail("creating game: %v", err)
	}

	if err := tui.RunGame(game, rt.services(), terminalConfig()); err != nil {
		rt.Close()
		fail("running game: %v", err)
	}
}
