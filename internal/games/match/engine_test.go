package match

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/scores"
)

// noShuffle keeps cards in id order: Fisher-Yates swaps i with n-1 == i.
type noShuffle struct{}

func (noShuffle) Intn(n int) int { return n - 1 }

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	base := []Option{
		WithRand(noShuffle{}),
		WithClock(func() time.Time { return fixedNow }),
	}
	return NewEngine(config.DefaultMatchConfig(), append(base, opts...)...)
}

func mustNewGame(t *testing.T, e *Engine, d Difficulty) State {
	t.Helper()
	s, err := e.NewGame(d)
	if err != nil {
		t.Fatalf("NewGame(%s) failed: %v", d, err)
	}
	return s
}

func mustSelect(t *testing.T, e *Engine, s State, id int) State {
	t.Helper()
	next, err := e.Select(s, id)
	if err != nil {
		t.Fatalf("Select(%d) failed: %v", id, err)
	}
	return next
}

func TestNewGameBoardSizes(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		pairs      int
	}{
		{Easy, 6},
		{Medium, 8},
		{Hard, 12},
	}

	for _, tc := range tests {
		t.Run(string(tc.difficulty), func(t *testing.T) {
			e := NewEngine(config.DefaultMatchConfig(), WithRand(rand.New(rand.NewSource(7))))
			s := mustNewGame(t, e, tc.difficulty)

			if len(s.Cards) != tc.pairs*2 {
				t.Fatalf("len(Cards) = %d, expected %d", len(s.Cards), tc.pairs*2)
			}
			if s.Phase != PhasePlaying {
				t.Errorf("Phase = %v, expected playing", s.Phase)
			}
			if s.Stats != (Stats{}) {
				t.Errorf("Stats = %+v, expected zero", s.Stats)
			}

			seen := make(map[int]bool)
			symbols := make(map[int]int)
			for _, c := range s.Cards {
				if seen[c.ID] {
					t.Errorf("duplicate card id %d", c.ID)
				}
				seen[c.ID] = true
				if c.Symbol != c.ID/2 {
					t.Errorf("card %d has symbol %d, expected %d", c.ID, c.Symbol, c.ID/2)
				}
				if c.Exposed || c.Matched {
					t.Errorf("card %d starts face up", c.ID)
				}
				symbols[c.Symbol]++
			}
			for sym, n := range symbols {
				if n != 2 {
					t.Errorf("symbol %d appears %d times", sym, n)
				}
			}
		})
	}
}

func TestNewGameUnknownDifficulty(t *testing.T) {
	e := newTestEngine()
	_, err := e.NewGame("impossible")
	if !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("NewGame error = %v, expected ErrUnknownDifficulty", err)
	}
}

func TestNewGameUsesClockAndBest(t *testing.T) {
	store := scores.NewMemoryStore()
	store.WriteBestIfHigher(ScoreKey(Medium), 4200)
	e := newTestEngine(WithScorer(store))

	s := mustNewGame(t, e, Medium)
	if !s.StartedAt.Equal(fixedNow) {
		t.Errorf("StartedAt = %v, expected %v", s.StartedAt, fixedNow)
	}
	if s.Best != 4200 {
		t.Errorf("Best = %d, expected 4200", s.Best)
	}
}

func TestShuffleIsUniform(t *testing.T) {
	const runs = 12000
	e := NewEngine(config.DefaultMatchConfig(), WithRand(rand.New(rand.NewSource(99))))

	var counts [12]int
	for range runs {
		s := mustNewGame(t, e, Easy)
		for pos, c := range s.Cards {
			if c.ID == 0 {
				counts[pos]++
			}
		}
	}

	expected := runs / len(counts)
	for pos, n := range counts {
		if n < expected-200 || n > expected+200 {
			t.Errorf("card 0 landed at position %d %d times, expected about %d", pos, n, expected)
		}
	}
}

func TestSelectInvalidID(t *testing.T) {
	e := newTestEngine()
	s := mustNewGame(t, e, Easy)

	for _, id := range []int{-1, 12, 100} {
		if _, err := e.Select(s, id); !errors.Is(err, ErrInvalidCardID) {
			t.Errorf("Select(%d) error = %v, expected ErrInvalidCardID", id, err)
		}
	}
}

func TestSelectMatchingPair(t *testing.T) {
	e := newTestEngine()
	s := mustNewGame(t, e, Easy)

	s = mustSelect(t, e, s, 0)
	if s.Stats.Moves != 0 || len(s.Unresolved) != 1 || s.Pending != nil {
		t.Fatalf("after first flip: moves %d unresolved %v pending %v", s.Stats.Moves, s.Unresolved, s.Pending)
	}

	s = mustSelect(t, e, s, 1)
	if s.Stats.Moves != 1 {
		t.Errorf("Moves = %d, expected 1", s.Stats.Moves)
	}
	if s.Pending == nil || !s.Pending.Match || s.Pending.Delay != 500*time.Millisecond {
		t.Fatalf("Pending = %+v, expected match after 500ms", s.Pending)
	}
	if s.Stats.Matches != 0 {
		t.Errorf("Matches counted before resolution: %d", s.Stats.Matches)
	}

	s = e.Resolve(s)
	c0, _ := s.CardByID(0)
	c1, _ := s.CardByID(1)
	if !c0.Matched || !c1.Matched {
		t.Error("matched pair not marked matched")
	}
	if s.Stats.Matches != 1 || len(s.Unresolved) != 0 || s.Pending != nil {
		t.Errorf("after resolve: matches %d unresolved %v pending %v", s.Stats.Matches, s.Unresolved, s.Pending)
	}
}

func TestSelectMismatchedPair(t *testing.T) {
	e := newTestEngine()
	s := mustNewGame(t, e, Easy)

	s = mustSelect(t, e, s, 0)
	s = mustSelect(t, e, s, 2)
	if s.Pending == nil || s.Pending.Match || s.Pending.Delay != time.Second {
		t.Fatalf("Pending = %+v, expected mismatch after 1s", s.Pending)
	}

	// A third card cannot be flipped while the pair is pending
	blocked := mustSelect(t, e, s, 4)
	if c, _ := blocked.CardByID(4); c.Exposed {
		t.Error("third card exposed while a pair was pending")
	}
	if len(blocked.Unresolved) != 2 {
		t.Errorf("unresolved = %v, expected 2 entries", blocked.Unresolved)
	}

	s = e.Resolve(s)
	for _, id := range []int{0, 2} {
		c, _ := s.CardByID(id)
		if c.Exposed || c.Matched {
			t.Errorf("card %d still face up after mismatch", id)
		}
	}
	if s.Stats.Moves != 1 || s.Stats.Matches != 0 {
		t.Errorf("Stats = %+v, expected 1 move 0 matches", s.Stats)
	}
}

func TestSelectNoOps(t *testing.T) {
	e := newTestEngine()
	s := mustNewGame(t, e, Easy)

	s = mustSelect(t, e, s, 0)
	again := mustSelect(t, e, s, 0)
	if len(again.Unresolved) != 1 || again.Stats.Moves != 0 {
		t.Errorf("re-selecting an exposed card changed state: %+v", again)
	}

	s = e.Resolve(mustSelect(t, e, s, 1))
	matched := mustSelect(t, e, s, 1)
	if len(matched.Unresolved) != 0 {
		t.Errorf("selecting a matched card changed unresolved: %v", matched.Unresolved)
	}

	setup := State{Cards: s.Cards}
	if got := mustSelect(t, e, setup, 4); len(got.Unresolved) != 0 {
		t.Error("Select acted outside playing phase")
	}
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	e := newTestEngine()
	s := mustNewGame(t, e, Easy)

	_ = mustSelect(t, e, s, 3)
	if c, _ := s.CardByID(3); c.Exposed {
		t.Error("Select modified the input state")
	}
}

func TestUnresolvedNeverExceedsTwo(t *testing.T) {
	e := NewEngine(config.DefaultMatchConfig(), WithRand(rand.New(rand.NewSource(3))))
	s := mustNewGame(t, e, Hard)
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 500 && s.Phase == PhasePlaying; i++ {
		var err error
		s, err = e.Select(s, rng.Intn(len(s.Cards)))
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		if len(s.Unresolved) > 2 {
			t.Fatalf("unresolved grew to %d", len(s.Unresolved))
		}
		if s.Pending != nil && rng.Intn(3) == 0 {
			s = e.Resolve(s)
		}
	}
}

func TestResolveWithoutPending(t *testing.T) {
	e := newTestEngine()
	s := mustNewGame(t, e, Easy)
	s = mustSelect(t, e, s, 5)

	got := e.Resolve(s)
	if len(got.Unresolved) != 1 {
		t.Errorf("Resolve without pending changed unresolved: %v", got.Unresolved)
	}
}

func TestTick(t *testing.T) {
	e := newTestEngine()
	s := mustNewGame(t, e, Easy)

	s = e.Tick(e.Tick(s))
	if s.Stats.ElapsedSeconds != 2 {
		t.Errorf("ElapsedSeconds = %d, expected 2", s.Stats.ElapsedSeconds)
	}

	won := State{Phase: PhaseWon, Stats: Stats{ElapsedSeconds: 9}}
	if got := e.Tick(won); got.Stats.ElapsedSeconds != 9 {
		t.Error("Tick advanced a finished board")
	}
}

func TestHeadlessEasyRun(t *testing.T) {
	store := scores.NewMemoryStore()
	e := newTestEngine(WithHeadless(), WithScorer(store))
	s := mustNewGame(t, e, Easy)

	for pair := range 6 {
		s = mustSelect(t, e, s, 2*pair)
		s = mustSelect(t, e, s, 2*pair+1)
		if pair < 5 && s.Phase != PhasePlaying {
			t.Fatalf("phase %v after pair %d", s.Phase, pair)
		}
	}

	if s.Phase != PhaseWon {
		t.Fatalf("Phase = %v, expected won", s.Phase)
	}
	if s.Stats.Moves != 6 || s.Stats.Matches != 6 {
		t.Errorf("Stats = %+v, expected 6 moves 6 matches", s.Stats)
	}
	// 1000 + 10*(600-0) + 10*(12-6)
	if s.Stats.Score != 7060 {
		t.Errorf("Score = %d, expected 7060", s.Stats.Score)
	}
	if s.Best != 7060 || !s.NewBest {
		t.Errorf("Best = %d NewBest = %v", s.Best, s.NewBest)
	}
	if got := store.ReadBest(ScoreKey(Easy)); got != 7060 {
		t.Errorf("stored best = %d, expected 7060", got)
	}

	// Terminal: further selects and ticks do nothing
	if got := e.Tick(s); got.Stats.ElapsedSeconds != 0 {
		t.Error("Tick advanced a won board")
	}
}

func TestWonScoreNeverBelowBase(t *testing.T) {
	e := newTestEngine()
	tests := []struct {
		name  string
		stats Stats
		want  int
	}{
		{"perfect and instant", Stats{Moves: 6}, 7060},
		{"slow", Stats{Moves: 6, ElapsedSeconds: 600}, 1060},
		{"way over budget", Stats{Moves: 40, ElapsedSeconds: 5000}, 1000},
		{"many moves", Stats{Moves: 30, ElapsedSeconds: 590}, 1100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.Score(Easy, tc.stats); got != tc.want {
				t.Errorf("Score = %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestLowerScoreKeepsBest(t *testing.T) {
	store := scores.NewMemoryStore()
	store.WriteBestIfHigher(ScoreKey(Easy), 9000)
	e := newTestEngine(WithHeadless(), WithScorer(store))
	s := mustNewGame(t, e, Easy)

	for pair := range 6 {
		s = mustSelect(t, e, s, 2*pair)
		s = mustSelect(t, e, s, 2*pair+1)
	}

	if s.Best != 9000 || s.NewBest {
		t.Errorf("Best = %d NewBest = %v, expected 9000 false", s.Best, s.NewBest)
	}
}

func TestGlyph(t *testing.T) {
	e := newTestEngine()
	if got := e.Glyph(Easy, 0); got != "♠" {
		t.Errorf("Glyph(easy, 0) = %q", got)
	}
	if got := e.Glyph(Easy, 30); got != "E" {
		t.Errorf("Glyph fallback = %q, expected E", got)
	}
}
