package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/games/match"
	"github.com/vovakirdan/playroom/internal/games/snake"
	"github.com/vovakirdan/playroom/internal/registry"
	"github.com/vovakirdan/playroom/internal/scores"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show best scores and run history for a game",
	Long: `Display the best score and the top 10 recorded runs of a game.
"match" shows every board size; "match_easy" and friends show one.

--clear removes the stored best scores and the run history of the game.

Examples:
  playroom scores snake
  playroom scores match
  playroom scores match_hard
  playroom scores snake --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Remove best scores and run history")
}

// scoreTarget is one registry game with its best-score key.
type scoreTarget struct {
	id  string
	key scores.Key
}

// scoreTargets expands a game argument into the boards it covers.
func scoreTargets(arg string) ([]scoreTarget, error) {
	switch {
	case arg == "snake":
		return []scoreTarget{{id: "snake", key: snake.ScoreKey}}, nil
	case arg == "match":
		var out []scoreTarget
		for _, d := range config.Difficulties() {
			out = append(out, scoreTarget{id: match.GameID(d), key: match.ScoreKey(d)})
		}
		return out, nil
	case strings.HasPrefix(arg, "match_"):
		d, err := config.ParseDifficulty(strings.TrimPrefix(arg, "match_"))
		if err != nil {
			return nil, fmt.Errorf("%w %q", registry.ErrUnknownGame, arg)
		}
		return []scoreTarget{{id: match.GameID(d), key: match.ScoreKey(d)}}, nil
	}
	return nil, fmt.Errorf("%w %q", registry.ErrUnknownGame, arg)
}

func runScores(cmd *cobra.Command, args []string) {
	targets, err := scoreTargets(args[0])
	if err != nil {
		fail("%v\nRun 'playroom list' to see available games.", err)
	}

	rt, err := openRuntime()
	if err != nil {
		fail("%v", err)
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	if flagClear {
		err = clearScores(out, rt, args[0], targets)
	} else {
		for i, t := range targets {
			if i > 0 {
				fmt.Fprintln(out)
			}
			if err = printScores(out, rt, t); err != nil {
				break
			}
		}
	}
	if err != nil {
		rt.Close()
		fail("%v", err)
	}
}

// clearScores removes the bests and the run history of the targets. A single
// match board only resets its own slot of the shared match record.
func clearScores(w io.Writer, rt *appRuntime, name string, targets []scoreTarget) error {
	if len(targets) == 1 {
		if err := rt.scores.ClearBest(targets[0].key); err != nil {
			return err
		}
	} else if err := rt.scores.Clear(targets[0].key.Game); err != nil {
		return err
	}

	if rt.history != nil {
		for _, t := range targets {
			if err := rt.history.ClearScores(t.id); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(w, "Cleared scores for %s.\n", name)
	return nil
}

func printScores(w io.Writer, rt *appRuntime, t scoreTarget) error {
	title := t.id
	if g, err := registry.Create(t.id); err == nil {
		title = g.Title()
	}

	fmt.Fprintf(w, "High Scores - %s\n", title)
	fmt.Fprintf(w, "Best: %d\n", rt.scores.ReadBest(t.key))
	fmt.Fprintln(w)

	if rt.history == nil {
		fmt.Fprintln(w, "Run history unavailable.")
		return nil
	}

	runs, err := rt.history.TopScores(t.id, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintf(w, "Play 'playroom play %s' to set the first high score!\n", t.id)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-5s  %-5s  %s\n", "Rank", "Score", "Result", "Moves", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-5s  %-5s  %s\n", "----", "-----", "------", "-----", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-8d  %-6s  %-5d  %2d:%02d  %s\n",
			i+1, r.Score, r.Outcome, r.Moves, r.Seconds/60, r.Seconds%60, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	if high, err := rt.history.HighScore(t.id); err == nil {
		fmt.Fprintf(w, "Top run: %d", high)
	}
	if stats, err := rt.history.GetGameStats(t.id); err == nil {
		fmt.Fprintf(w, "  Runs: %d  Average: %.0f", stats.GamesCount, stats.AvgScore)
	}
	fmt.Fprintln(w)
	return nil
}
