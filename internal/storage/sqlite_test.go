package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/playroom/internal/scores"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []ScoreEntry{
		{GameID: "match_easy", Difficulty: "easy", Score: 1300, Outcome: "won", Moves: 8, Seconds: 41},
		{GameID: "match_easy", Difficulty: "easy", Score: 1100, Outcome: "won", Moves: 14, Seconds: 70},
		{GameID: "match_easy", Difficulty: "easy", Score: 1650, Outcome: "won", Moves: 6, Seconds: 22},
		{GameID: "snake", Score: 90, Outcome: "over"},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	top, err := store.TopScores("match_easy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(top))
	}
	if top[0].Score != 1650 || top[1].Score != 1300 || top[2].Score != 1100 {
		t.Errorf("Scores not in expected order: %v", top)
	}
	if top[0].Moves != 6 || top[0].Seconds != 22 || top[0].Outcome != "won" || top[0].Difficulty != "easy" {
		t.Errorf("Run details not preserved: %+v", top[0])
	}

	snake, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(snake) != 1 {
		t.Errorf("Expected 1 snake score, got %d", len(snake))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{GameID: "snake", Score: (i + 1) * 100})
	}

	top, err := store.TopScores("snake", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(top))
	}
	if top[0].Score != 500 || top[1].Score != 400 || top[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", top)
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTestStore(t)

	for _, sc := range []int{30, 10, 20} {
		store.SaveScore(ScoreEntry{GameID: "snake", Score: sc})
	}

	recent, err := store.RecentScores("snake", 2)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 20 || recent[1].Score != 10 {
		t.Errorf("RecentScores = %v, expected newest first [20 10]", recent)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore(ScoreEntry{GameID: "snake", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "snake", Score: 300})
	store.SaveScore(ScoreEntry{GameID: "snake", Score: 200})

	high, err = store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{GameID: "snake", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "snake", Score: 200})
	store.SaveScore(ScoreEntry{GameID: "match_hard", Score: 1800})

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if s, _ := store.TopScores("snake", 10); len(s) != 0 {
		t.Errorf("Expected 0 snake scores after clear, got %d", len(s))
	}
	if s, _ := store.TopScores("match_hard", 10); len(s) != 1 {
		t.Errorf("match_hard scores should not be affected by clearing snake")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for unplayed game = %+v", empty)
	}

	store.SaveScore(ScoreEntry{GameID: "snake", Score: 40})
	store.SaveScore(ScoreEntry{GameID: "snake", Score: 80})
	store.SaveScore(ScoreEntry{GameID: "match_easy", Score: 1200})

	stats, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 80 || stats.TotalScore != 120 || stats.AvgScore != 60 {
		t.Errorf("stats = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["match_easy"].HighScore != 1200 {
		t.Errorf("GetAllGamesStats = %v", all)
	}
}

func TestStoreKV(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "snake-high-score"); err != nil || ok {
		t.Fatalf("Get on empty table = ok %v, err %v", ok, err)
	}

	if err := store.Set(ctx, "snake-high-score", "40"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set(ctx, "snake-high-score", "60"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	v, ok, err := store.Get(ctx, "snake-high-score")
	if err != nil || !ok || v != "60" {
		t.Errorf("Get = %q (ok=%v, err=%v), expected 60", v, ok, err)
	}

	if err := store.Remove(ctx, "snake-high-score"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "snake-high-score"); ok {
		t.Error("key still present after Remove")
	}
}

func TestStoreBacksScoreStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	key := scores.Key{Game: scores.GameMatch, Difficulty: "hard"}
	scores.NewStore(store).WriteBestIfHigher(key, 1875)
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if got := scores.NewStore(reopened).ReadBest(key); got != 1875 {
		t.Errorf("best after reopen = %d, expected 1875", got)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
