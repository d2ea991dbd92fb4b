package snake

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/scores"
)

// seqRand replays a fixed sequence of values, cycling when exhausted.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func newSeqEngine(vals ...int) (*Engine, *scores.Store) {
	store := scores.NewMemoryStore()
	e := NewEngine(config.DefaultSnakeConfig(), WithRand(&seqRand{vals: vals}), WithScorer(store))
	return e, store
}

func playing(e *Engine) State {
	return e.Start(e.NewGame())
}

func TestNewGame(t *testing.T) {
	e, _ := newSeqEngine(0)
	s := e.NewGame()

	if len(s.Body) != 1 || s.Head() != (Point{X: 10, Y: 10}) {
		t.Errorf("Body = %v, expected [(10,10)]", s.Body)
	}
	if s.Heading != Up || s.Next != Up {
		t.Errorf("Heading = %v Next = %v, expected up", s.Heading, s.Next)
	}
	if s.Phase != PhaseIdle || s.Score != 0 || s.Level != 1 {
		t.Errorf("Phase %v Score %d Level %d", s.Phase, s.Score, s.Level)
	}
	if s.TickInterval != 150*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 150ms", s.TickInterval)
	}
	if s.Occupies(s.Food) {
		t.Error("food placed on the body")
	}
}

func TestIdleDoesNotMove(t *testing.T) {
	e, _ := newSeqEngine(0)
	s := e.NewGame()

	if got := e.Tick(s); got.Head() != s.Head() {
		t.Error("idle run moved")
	}
	if got := e.SetHeading(s, Left); got.Next != Up {
		t.Error("heading accepted while idle")
	}
}

func TestThreeTicksUp(t *testing.T) {
	e, _ := newSeqEngine(0)
	s := playing(e)

	for range 3 {
		s = e.Tick(s)
	}
	if s.Head() != (Point{X: 10, Y: 7}) {
		t.Errorf("head = %v, expected (10,7)", s.Head())
	}
	if len(s.Body) != 1 || s.Phase != PhasePlaying {
		t.Errorf("Body %v Phase %v", s.Body, s.Phase)
	}
}

func TestSetHeading(t *testing.T) {
	tests := []struct {
		name     string
		requests []Vec
		want     Vec
	}{
		{"reverse ignored", []Vec{Down}, Up},
		{"turn accepted", []Vec{Left}, Left},
		{"last valid wins", []Vec{Left, Right}, Right},
		{"reverse of applied heading ignored after a turn", []Vec{Left, Down}, Left},
		{"non-unit ignored", []Vec{{X: 1, Y: 1}}, Up},
		{"zero ignored", []Vec{{}}, Up},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newSeqEngine(0)
			s := playing(e)
			for _, v := range tc.requests {
				s = e.SetHeading(s, v)
			}
			if s.Next != tc.want {
				t.Errorf("Next = %v, expected %v", s.Next, tc.want)
			}
			if s.Heading != Up {
				t.Errorf("Heading changed before a tick: %v", s.Heading)
			}
		})
	}
}

func TestHeadingAppliedOnTick(t *testing.T) {
	e, _ := newSeqEngine(0)
	s := playing(e)

	s = e.Tick(e.SetHeading(s, Left))
	if s.Heading != Left || s.Head() != (Point{X: 9, Y: 10}) {
		t.Errorf("Heading %v head %v, expected left at (9,10)", s.Heading, s.Head())
	}
	// Right is now the reverse
	if got := e.SetHeading(s, Right); got.Next != Left {
		t.Errorf("reverse accepted after turn: %v", got.Next)
	}
}

func TestOutOfBoundsEndsRun(t *testing.T) {
	e, store := newSeqEngine(0)
	s := playing(e)

	for range 10 {
		s = e.Tick(s)
	}
	if s.Head() != (Point{X: 10, Y: 0}) || s.Phase != PhasePlaying {
		t.Fatalf("head %v phase %v before the wall", s.Head(), s.Phase)
	}

	s = e.Tick(s)
	if s.Phase != PhaseOver {
		t.Fatalf("Phase = %v, expected over", s.Phase)
	}
	if s.Collision == nil || *s.Collision != (Point{X: 10, Y: -1}) {
		t.Errorf("Collision = %v, expected (10,-1)", s.Collision)
	}
	if len(s.Body) != 1 || s.Head() != (Point{X: 10, Y: 0}) {
		t.Errorf("Body changed on collision: %v", s.Body)
	}

	// Terminal
	if got := e.Tick(s); got.Head() != s.Head() || got.Phase != PhaseOver {
		t.Error("Tick acted on a finished run")
	}
	if got := store.ReadBest(ScoreKey); got != 0 {
		t.Errorf("best = %d, expected 0", got)
	}
}

func TestSelfCollision(t *testing.T) {
	tests := []struct {
		name    string
		body    []Point
		heading Vec
		turn    Vec
		hit     Point
	}{
		{
			name:    "into the body",
			body:    []Point{{5, 5}, {4, 5}, {4, 6}, {5, 6}, {6, 6}, {6, 5}},
			heading: Right,
			turn:    Down,
			hit:     Point{5, 6},
		},
		{
			name:    "into the tail",
			body:    []Point{{5, 5}, {5, 6}, {4, 6}, {4, 5}},
			heading: Up,
			turn:    Left,
			hit:     Point{4, 5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newSeqEngine(0)
			s := State{
				Body:         tc.body,
				Heading:      tc.heading,
				Next:         tc.heading,
				Food:         Point{0, 0},
				Level:        1,
				TickInterval: 150 * time.Millisecond,
				Phase:        PhasePlaying,
			}
			s = e.Tick(e.SetHeading(s, tc.turn))

			if s.Phase != PhaseOver {
				t.Fatalf("Phase = %v, expected over", s.Phase)
			}
			if *s.Collision != tc.hit {
				t.Errorf("Collision = %v, expected %v", *s.Collision, tc.hit)
			}
			if len(s.Body) != len(tc.body) {
				t.Errorf("Body length changed: %d", len(s.Body))
			}
		})
	}
}

func TestEatingFood(t *testing.T) {
	// Food at (10,9) directly ahead, kind 0, then relocated to (3,3) kind 5
	e, store := newSeqEngine(10, 9, 0, 3, 3, 5)
	s := playing(e)
	if s.Food != (Point{X: 10, Y: 9}) {
		t.Fatalf("Food = %v, expected (10,9)", s.Food)
	}

	s = e.Tick(s)
	if len(s.Body) != 2 || s.Head() != (Point{X: 10, Y: 9}) || s.Body[1] != (Point{X: 10, Y: 10}) {
		t.Errorf("Body = %v, expected growth by one", s.Body)
	}
	if s.Score != 10 || s.Level != 1 {
		t.Errorf("Score %d Level %d, expected 10 and 1", s.Score, s.Level)
	}
	if s.TickInterval != 148*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 148ms", s.TickInterval)
	}
	if s.Food != (Point{X: 3, Y: 3}) || s.FoodKind != 5 {
		t.Errorf("Food %v kind %d, expected (3,3) kind 5", s.Food, s.FoodKind)
	}
	if s.Best != 10 || store.ReadBest(ScoreKey) != 10 {
		t.Errorf("best not proposed on food: state %d store %d", s.Best, store.ReadBest(ScoreKey))
	}
}

func TestLevelAndIntervalFloor(t *testing.T) {
	e, _ := newSeqEngine(0)
	s := State{
		Body:         []Point{{5, 5}},
		Heading:      Up,
		Next:         Up,
		Food:         Point{5, 4},
		Score:        90,
		Level:        1,
		TickInterval: 51 * time.Millisecond,
		Phase:        PhasePlaying,
	}

	s = e.Tick(s)
	if s.Score != 100 || s.Level != 2 {
		t.Errorf("Score %d Level %d, expected 100 and 2", s.Score, s.Level)
	}
	if s.TickInterval != 50*time.Millisecond {
		t.Errorf("TickInterval = %v, expected floor 50ms", s.TickInterval)
	}

	s.Food = s.Head().Add(Up)
	s = e.Tick(s)
	if s.TickInterval != 50*time.Millisecond {
		t.Errorf("TickInterval = %v, went below floor", s.TickInterval)
	}
}

func TestPlaceFoodAvoidsBody(t *testing.T) {
	e := NewEngine(config.DefaultSnakeConfig(), WithRand(rand.New(rand.NewSource(11))))

	var body []Point
	for y := range 20 {
		for x := range 19 {
			body = append(body, Point{x, y})
		}
	}
	for range 200 {
		p := e.PlaceFood(body)
		if p.X != 19 {
			t.Fatalf("food placed at %v inside the body", p)
		}
	}
}

func TestPlaceFoodFullBoard(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Size = 2
	e := NewEngine(cfg, WithRand(rand.New(rand.NewSource(1))))

	body := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if got := e.PlaceFood(body); got != NoFood {
		t.Errorf("PlaceFood on a full board = %v, expected NoFood", got)
	}
}

func TestRandomRunKeepsInvariants(t *testing.T) {
	e := NewEngine(config.DefaultSnakeConfig(), WithRand(rand.New(rand.NewSource(2024))))
	turns := rand.New(rand.NewSource(7))
	headings := []Vec{Up, Down, Left, Right}

	s := playing(e)
	for range 2000 {
		if s.Phase == PhaseOver {
			s = playing(e)
		}
		prevLen := len(s.Body)
		prevScore := s.Score
		s = e.Tick(e.SetHeading(s, headings[turns.Intn(4)]))

		if s.Phase == PhaseOver {
			continue
		}
		if s.Occupies(s.Food) {
			t.Fatalf("food %v inside body %v", s.Food, s.Body)
		}
		grew := len(s.Body) - prevLen
		if grew != 0 && grew != 1 {
			t.Fatalf("body length changed by %d", grew)
		}
		if (grew == 1) != (s.Score > prevScore) {
			t.Fatalf("growth %d without matching score change", grew)
		}
		seen := make(map[Point]bool, len(s.Body))
		for _, p := range s.Body {
			if seen[p] {
				t.Fatalf("body overlaps itself at %v", p)
			}
			seen[p] = true
		}
	}
}

func TestPauseResume(t *testing.T) {
	e, _ := newSeqEngine(0)

	idle := e.NewGame()
	if got := e.Pause(idle); got.Phase != PhaseIdle {
		t.Error("Pause acted on an idle run")
	}

	s := e.Pause(playing(e))
	if s.Phase != PhasePaused {
		t.Fatalf("Phase = %v, expected paused", s.Phase)
	}
	if got := e.Tick(s); got.Head() != s.Head() {
		t.Error("paused run moved")
	}
	if got := e.SetHeading(s, Left); got.Next != Up {
		t.Error("heading accepted while paused")
	}

	s = e.TogglePause(s)
	if s.Phase != PhasePlaying {
		t.Errorf("TogglePause from paused = %v", s.Phase)
	}
	s = e.TogglePause(s)
	if s.Phase != PhasePaused {
		t.Errorf("TogglePause from playing = %v", s.Phase)
	}
	if got := e.Resume(s); got.Phase != PhasePlaying {
		t.Errorf("Resume = %v", got.Phase)
	}
}

func TestScoreProposedOnCollision(t *testing.T) {
	e, store := newSeqEngine(0)
	s := State{
		Body:    []Point{{0, 0}},
		Heading: Left,
		Next:    Left,
		Food:    Point{5, 5},
		Score:   70,
		Level:   1,
		Phase:   PhasePlaying,
	}

	s = e.Tick(s)
	if s.Phase != PhaseOver || s.Best != 70 || store.ReadBest(ScoreKey) != 70 {
		t.Errorf("Phase %v Best %d store %d", s.Phase, s.Best, store.ReadBest(ScoreKey))
	}
	if !s.NewBest {
		t.Error("NewBest not set after raising the best")
	}
}

func TestTieDoesNotSetNewBest(t *testing.T) {
	e, store := newSeqEngine(0)
	store.WriteBestIfHigher(ScoreKey, 70)
	s := State{
		Body:    []Point{{0, 0}},
		Heading: Left,
		Next:    Left,
		Food:    Point{5, 5},
		Score:   70,
		Level:   1,
		Phase:   PhasePlaying,
		Best:    70,
	}

	s = e.Tick(s)
	if s.Phase != PhaseOver || s.Best != 70 {
		t.Fatalf("Phase %v Best %d", s.Phase, s.Best)
	}
	if s.NewBest {
		t.Error("NewBest set when the score only tied the best")
	}
}

func TestTickDoesNotMutateInput(t *testing.T) {
	e, _ := newSeqEngine(0)
	s := playing(e)
	before := s.Head()

	_ = e.Tick(s)
	if s.Head() != before || len(s.Body) != 1 {
		t.Error("Tick modified the input state")
	}
}
