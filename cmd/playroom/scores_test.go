package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/playroom/internal/games/match"
	"github.com/vovakirdan/playroom/internal/scores"
	"github.com/vovakirdan/playroom/internal/storage"
)

func testRuntime(t *testing.T) *appRuntime {
	t.Helper()
	history, err := storage.Open(filepath.Join(t.TempDir(), "playroom.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rt := &appRuntime{
		logger:  log.New(&bytes.Buffer{}),
		history: history,
		scores:  scores.NewStore(history),
	}
	t.Cleanup(rt.Close)
	return rt
}

func TestPrintScoresShowsTopRun(t *testing.T) {
	rt := testRuntime(t)
	for _, score := range []int{40, 90} {
		if _, err := rt.history.SaveScore(storage.ScoreEntry{GameID: "snake", Score: score, Outcome: "over"}); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}
	rt.scores.WriteBestIfHigher(scores.Key{Game: scores.GameSnake}, 90)

	targets, _ := scoreTargets("snake")
	var out bytes.Buffer
	if err := printScores(&out, rt, targets[0]); err != nil {
		t.Fatalf("printScores: %v", err)
	}

	for _, want := range []string{"Best: 90", "Top run: 90", "Runs: 2", "Average: 65"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestClearSingleBoardKeepsOtherBoards(t *testing.T) {
	rt := testRuntime(t)
	rt.scores.WriteBestIfHigher(match.ScoreKey(match.Easy), 1200)
	rt.scores.WriteBestIfHigher(match.ScoreKey(match.Hard), 2100)
	for _, id := range []string{"match_easy", "match_hard"} {
		if _, err := rt.history.SaveScore(storage.ScoreEntry{GameID: id, Score: 1000}); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	targets, _ := scoreTargets("match_hard")
	var out bytes.Buffer
	if err := clearScores(&out, rt, "match_hard", targets); err != nil {
		t.Fatalf("clearScores: %v", err)
	}

	if got := rt.scores.ReadBest(match.ScoreKey(match.Hard)); got != 0 {
		t.Errorf("hard best = %d, expected 0", got)
	}
	if got := rt.scores.ReadBest(match.ScoreKey(match.Easy)); got != 1200 {
		t.Errorf("easy best = %d, expected 1200", got)
	}
	if runs, _ := rt.history.TopScores("match_easy", 10); len(runs) != 1 {
		t.Errorf("easy history = %d runs, expected 1", len(runs))
	}
	if runs, _ := rt.history.TopScores("match_hard", 10); len(runs) != 0 {
		t.Errorf("hard history = %d runs, expected 0", len(runs))
	}
	if !strings.Contains(out.String(), "match_hard") {
		t.Errorf("message = %q", out.String())
	}
}

func TestClearFamilyRemovesAllBoards(t *testing.T) {
	rt := testRuntime(t)
	rt.scores.WriteBestIfHigher(match.ScoreKey(match.Easy), 1200)
	rt.scores.WriteBestIfHigher(match.ScoreKey(match.Medium), 1500)

	targets, _ := scoreTargets("match")
	if err := clearScores(&bytes.Buffer{}, rt, "match", targets); err != nil {
		t.Fatalf("clearScores: %v", err)
	}
	if bests := rt.scores.Bests(scores.GameMatch); bests["easy"] != 0 || bests["medium"] != 0 {
		t.Errorf("bests after clear = %v", bests)
	}
}
