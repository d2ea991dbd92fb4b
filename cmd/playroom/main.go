// playroom is a terminal arcade with Memory Match and Snake.
//
// Usage:
//
//	playroom list              - List available games
//	playroom play <game>       - Play a game
//	playroom menu              - Start menu to pick games interactively
//	playroom scores <game>     - Show best scores and run history
//	playroom serve             - Serve the arcade over SSH and HTTP
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.playroom/playroom.db)
//	--redis <addr>       - Keep best scores in Redis instead of SQLite
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/playroom/internal/games/match"
	_ "github.com/vovakirdan/playroom/internal/games/snake"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagRedisAddr string
	flagLogLevel  string
)

// envFlags maps global flags to the environment variables that provide their defaults.
var envFlags = map[string]string{
	"db":        "PLAYROOM_DB",
	"redis":     "PLAYROOM_REDIS_ADDR",
	"log-level": "PLAYROOM_LOG_LEVEL",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "playroom",
	Short: "Playroom - Memory Match and Snake in your terminal",
	Long: `Playroom is a terminal arcade with two games: Memory Match in three
board sizes and Snake. Best scores are kept per game and difficulty.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View best scores and run history
  serve    - Serve the arcade over SSH and HTTP

Examples:
  playroom list
  playroom play snake
  playroom play match --difficulty hard
  playroom menu
  playroom serve --ssh :2222 --http :8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()
		return applyEnv(cmd)
	},
}

// applyEnv fills unset global flags from the environment.
func applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for name, env := range envFlags {
		v := os.Getenv(env)
		if v == "" || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.playroom/playroom.db", "Path to the run history database ($PLAYROOM_DB)")
	rootCmd.PersistentFlags().StringVar(&flagRedisAddr, "redis", "", "Redis address for best scores ($PLAYROOM_REDIS_ADDR)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level ($PLAYROOM_LOG_LEVEL)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
