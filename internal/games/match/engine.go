// Package match implements Memory Match: a board of face-down card pairs
// the player exposes two at a time until every pair is found.
//
// The engine is a set of pure transitions over State values. It never sleeps
// or reads the wall clock on its own; the presentation delay before a flipped
// pair resolves is described by State.Pending and carried out by the driver,
// which calls Resolve once the delay has elapsed.
package match

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/scores"
)

// Sentinel errors returned by the engine.
var (
	ErrUnknownDifficulty = errors.New("match: unknown difficulty")
	ErrInvalidCardID     = errors.New("match: invalid card id")
)

// Difficulty selects the board size.
type Difficulty = config.Difficulty

// Board sizes.
const (
	Easy   = config.DifficultyEasy
	Medium = config.DifficultyMedium
	Hard   = config.DifficultyHard
)

// Phase is the lifecycle of one board.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlaying
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Card is one tile. Cards 2i and 2i+1 share Symbol i.
type Card struct {
	ID      int
	Symbol  int
	Exposed bool
	Matched bool
}

// Stats are the run counters.
type Stats struct {
	Moves          int
	Matches        int
	ElapsedSeconds int
	Score          int
}

// Pending is a scheduled resolution of a full unresolved pair.
type Pending struct {
	First  int
	Second int
	Match  bool
	Delay  time.Duration
}

// State is an immutable snapshot of a board. Transitions return a new value
// and never modify the slices of their input.
type State struct {
	Difficulty Difficulty
	Cards      []Card
	Unresolved []int
	Stats      Stats
	Phase      Phase
	StartedAt  time.Time
	Pending    *Pending
	Best       int
	NewBest    bool
}

// Pairs returns the number of pairs on the board.
func (s State) Pairs() int {
	return len(s.Cards) / 2
}

// CardByID returns the card with the given id.
func (s State) CardByID(id int) (Card, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

func (s State) clone() State {
	s.Cards = slices.Clone(s.Cards)
	s.Unresolved = slices.Clone(s.Unresolved)
	return s
}

// Rand is the random source used for shuffling.
type Rand interface {
	Intn(n int) int
}

// Scorer keeps best scores. *scores.Store implements it.
type Scorer interface {
	ReadBest(key scores.Key) int
	WriteBestIfHigher(key scores.Key, candidate int) int
}

// Engine holds the configuration and injected capabilities of the game.
type Engine struct {
	cfg      config.MatchConfig
	rng      Rand
	now      func() time.Time
	scorer   Scorer
	headless bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the shuffle source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock sets the source of StartedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithScorer sets the best-score store.
func WithScorer(s Scorer) Option {
	return func(e *Engine) { e.scorer = s }
}

// WithHeadless makes the selection that completes a pair resolve it at once,
// for drivers that have no presentation delay.
func WithHeadless() Option {
	return func(e *Engine) { e.headless = true }
}

// NewEngine creates an engine for cfg.
func NewEngine(cfg config.MatchConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scorer == nil {
		e.scorer = scores.NewMemoryStore()
	}
	return e
}

// ScoreKey is the best-score key of a difficulty.
func ScoreKey(d Difficulty) scores.Key {
	return scores.Key{Game: scores.GameMatch, Difficulty: string(d)}
}

// NewGame deals a shuffled board.
func (e *Engine) NewGame(d Difficulty) (State, error) {
	md, ok := e.cfg.Difficulty(d)
	if !ok || md.Pairs <= 0 {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}

	cards := make([]Card, 0, md.Pairs*2)
	for i := range md.Pairs {
		cards = append(cards, Card{ID: 2 * i, Symbol: i}, Card{ID: 2*i + 1, Symbol: i})
	}
	// Fisher-Yates
	for i := len(cards) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return State{
		Difficulty: d,
		Cards:      cards,
		Phase:      PhasePlaying,
		StartedAt:  e.now(),
		Best:       e.scorer.ReadBest(ScoreKey(d)),
	}, nil
}

// Select exposes a card. Selecting is a no-op outside PhasePlaying, on a card
// that is already exposed or matched, and while two cards await resolution.
func (e *Engine) Select(s State, id int) (State, error) {
	idx := slices.IndexFunc(s.Cards, func(c Card) bool { return c.ID == id })
	if idx < 0 {
		return s, fmt.Errorf("%w: %d", ErrInvalidCardID, id)
	}
	if s.Phase != PhasePlaying || len(s.Unresolved) >= 2 || s.Pending != nil {
		return s, nil
	}
	if c := s.Cards[idx]; c.Exposed || c.Matched {
		return s, nil
	}

	next := s.clone()
	next.Cards[idx].Exposed = true
	next.Unresolved = append(next.Unresolved, id)
	if len(next.Unresolved) < 2 {
		return next, nil
	}

	next.Stats.Moves++
	first, _ := next.CardByID(next.Unresolved[0])
	second := next.Cards[idx]
	p := &Pending{First: first.ID, Second: second.ID, Match: first.Symbol == second.Symbol}
	if p.Match {
		p.Delay = time.Duration(e.cfg.Pacing.MatchDelayMs) * time.Millisecond
	} else {
		p.Delay = time.Duration(e.cfg.Pacing.MismatchDelayMs) * time.Millisecond
	}
	next.Pending = p

	if e.headless {
		return e.Resolve(next), nil
	}
	return next, nil
}

// Resolve applies the pending resolution, if any. Completing the last pair
// wins the board and proposes the score to the store.
func (e *Engine) Resolve(s State) State {
	if s.Pending == nil {
		return s
	}

	next := s.clone()
	p := *s.Pending
	for i := range next.Cards {
		c := &next.Cards[i]
		if c.ID != p.First && c.ID != p.Second {
			continue
		}
		if p.Match {
			c.Matched = true
		} else {
			c.Exposed = false
		}
	}
	if p.Match {
		next.Stats.Matches++
	}
	next.Unresolved = nil
	next.Pending = nil

	if next.Phase == PhasePlaying && next.Stats.Matches == next.Pairs() {
		next.Phase = PhaseWon
		next.Stats.Score = e.Score(next.Difficulty, next.Stats)
		best := e.scorer.WriteBestIfHigher(ScoreKey(next.Difficulty), next.Stats.Score)
		next.NewBest = best == next.Stats.Score && best > s.Best
		next.Best = best
	}
	return next
}

// Tick advances the run clock by one second while playing.
func (e *Engine) Tick(s State) State {
	if s.Phase != PhasePlaying {
		return s
	}
	s.Stats.ElapsedSeconds++
	return s
}

// Score computes the completion score for a board of difficulty d.
func (e *Engine) Score(d Difficulty, st Stats) int {
	md, _ := e.cfg.Difficulty(d)
	sc := e.cfg.Scoring
	timeBonus := max(0, md.TimeBudgetSeconds-st.ElapsedSeconds) * sc.TimeBonusPerSecond
	moveBonus := max(0, md.Pairs*2-st.Moves) * sc.MoveBonusPerMove
	return sc.Base + timeBonus + moveBonus
}

// Glyph returns the display symbol of a pair.
func (e *Engine) Glyph(d Difficulty, symbol int) string {
	md, _ := e.cfg.Difficulty(d)
	if symbol >= 0 && symbol < len(md.Symbols) {
		return md.Symbols[symbol]
	}
	return string(rune('A' + symbol%26))
}

// Columns returns the board width of difficulty d.
func (e *Engine) Columns(d Difficulty) int {
	md, _ := e.cfg.Difficulty(d)
	return max(md.Columns, 1)
}
