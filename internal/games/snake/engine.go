package snake

import (
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/scores"
)

// Point is a cell on the board, origin top-left.
type Point struct {
	X, Y int
}

// Add returns p moved by v.
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// NoFood is the food position when the body covers the whole board.
var NoFood = Point{X: -1, Y: -1}

// Vec is a heading.
type Vec struct {
	X, Y int
}

// Unit headings.
var (
	Up    = Vec{X: 0, Y: -1}
	Down  = Vec{X: 0, Y: 1}
	Left  = Vec{X: -1, Y: 0}
	Right = Vec{X: 1, Y: 0}
)

// Reverse returns the opposite heading.
func (v Vec) Reverse() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// IsUnit reports whether v is one of the four unit headings.
func (v Vec) IsUnit() bool {
	return v == Up || v == Down || v == Left || v == Right
}

// ParseHeading maps a config heading name to a Vec.
func ParseHeading(s string) (Vec, bool) {
	switch strings.ToLower(s) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Vec{}, false
}

// Phase is the lifecycle of a run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// FoodKinds is the number of distinct food glyphs a driver can draw.
const FoodKinds = 8

// State is an immutable snapshot of a run. Body[0] is the head. Transitions
// return a new value and never modify the slices of their input.
type State struct {
	Body         []Point
	Heading      Vec // applied on the last tick
	Next         Vec // requested for the next tick
	Food         Point
	FoodKind     int
	Score        int
	Level        int
	TickInterval time.Duration
	Phase        Phase
	Collision    *Point
	Best         int
	NewBest      bool // the run raised the stored best
}

// Head returns the head cell.
func (s State) Head() Point {
	return s.Body[0]
}

// Occupies reports whether any body cell is at p.
func (s State) Occupies(p Point) bool {
	return slices.Contains(s.Body, p)
}

// Rand is the random source used for food placement.
type Rand interface {
	Intn(n int) int
}

// Scorer keeps best scores. *scores.Store implements it.
type Scorer interface {
	ReadBest(key scores.Key) int
	WriteBestIfHigher(key scores.Key, candidate int) int
}

// ScoreKey is the best-score key of the game.
var ScoreKey = scores.Key{Game: scores.GameSnake}

// Engine holds the configuration and injected capabilities of the game.
type Engine struct {
	cfg    config.SnakeConfig
	rng    Rand
	scorer Scorer
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the food placement source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithScorer sets the best-score store.
func WithScorer(s Scorer) Option {
	return func(e *Engine) { e.scorer = s }
}

// NewEngine creates an engine for cfg.
func NewEngine(cfg config.SnakeConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scorer == nil {
		e.scorer = scores.NewMemoryStore()
	}
	return e
}

// GridSize returns the board edge length.
func (e *Engine) GridSize() int {
	return e.cfg.Grid.Size
}

// NewGame returns an idle run with a one-cell body at the start position.
func (e *Engine) NewGame() State {
	heading, ok := ParseHeading(e.cfg.Grid.Heading)
	if !ok {
		heading = Up
	}
	body := []Point{{X: e.cfg.Grid.StartX, Y: e.cfg.Grid.StartY}}

	return State{
		Body:         body,
		Heading:      heading,
		Next:         heading,
		Food:         e.PlaceFood(body),
		FoodKind:     e.rng.Intn(FoodKinds),
		Level:        1,
		TickInterval: e.ms(e.cfg.Speed.BaseIntervalMs),
		Phase:        PhaseIdle,
		Best:         e.scorer.ReadBest(ScoreKey),
	}
}

// Start begins an idle run.
func (e *Engine) Start(s State) State {
	if s.Phase == PhaseIdle {
		s.Phase = PhasePlaying
	}
	return s
}

// SetHeading buffers a heading for the next tick. Requests outside
// PhasePlaying, non-unit vectors and the reverse of the applied heading are
// ignored; among valid requests between two ticks the last one wins.
func (e *Engine) SetHeading(s State, v Vec) State {
	if s.Phase != PhasePlaying || !v.IsUnit() || v == s.Heading.Reverse() {
		return s
	}
	s.Next = v
	return s
}

// Tick moves the snake one cell.
func (e *Engine) Tick(s State) State {
	if s.Phase != PhasePlaying || len(s.Body) == 0 {
		return s
	}

	next := s
	next.Heading = s.Next
	head := s.Head().Add(next.Heading)

	size := e.cfg.Grid.Size
	if head.X < 0 || head.X >= size || head.Y < 0 || head.Y >= size || s.Occupies(head) {
		next.Phase = PhaseOver
		next.Collision = &head
		e.proposeBest(s, &next)
		return next
	}

	body := make([]Point, 0, len(s.Body)+1)
	body = append(body, head)
	body = append(body, s.Body...)

	if head != s.Food {
		next.Body = body[:len(body)-1]
		return next
	}

	next.Body = body
	next.Score += e.cfg.Scoring.FoodPoints
	next.Level = next.Score/max(e.cfg.Scoring.LevelThreshold, 1) + 1
	next.TickInterval = max(s.TickInterval-e.ms(e.cfg.Speed.StepMs), e.ms(e.cfg.Speed.MinIntervalMs))
	next.Food = e.PlaceFood(body)
	next.FoodKind = e.rng.Intn(FoodKinds)
	e.proposeBest(s, &next)
	return next
}

func (e *Engine) proposeBest(prev State, next *State) {
	next.Best = e.scorer.WriteBestIfHigher(ScoreKey, next.Score)
	next.NewBest = prev.NewBest || next.Best > prev.Best
}

// PlaceFood picks a free cell by rejection sampling. It returns NoFood when
// body covers the board.
func (e *Engine) PlaceFood(body []Point) Point {
	size := e.cfg.Grid.Size
	occupied := make(map[Point]bool, len(body))
	for _, p := range body {
		if p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size {
			occupied[p] = true
		}
	}
	if len(occupied) >= size*size {
		return NoFood
	}

	for {
		p := Point{X: e.rng.Intn(size), Y: e.rng.Intn(size)}
		if !occupied[p] {
			return p
		}
	}
}

// Pause suspends a playing run.
func (e *Engine) Pause(s State) State {
	if s.Phase == PhasePlaying {
		s.Phase = PhasePaused
	}
	return s
}

// Resume continues a paused run.
func (e *Engine) Resume(s State) State {
	if s.Phase == PhasePaused {
		s.Phase = PhasePlaying
	}
	return s
}

// TogglePause switches between playing and paused.
func (e *Engine) TogglePause(s State) State {
	if s.Phase == PhasePaused {
		return e.Resume(s)
	}
	return e.Pause(s)
}

func (e *Engine) ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
