package snake

// Snapshot captures the observable run state for determinism tests.
type Snapshot struct {
	Tick       uint64
	Phase      string
	Score      int
	Level      int
	Best       int
	SnakeLen   int
	HeadX      int
	HeadY      int
	Heading    Vec
	FoodX      int
	FoodY      int
	IntervalMs int
	Exploding  bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tick,
		Phase:      g.state.Phase.String(),
		Score:      g.state.Score,
		Level:      g.state.Level,
		Best:       g.state.Best,
		SnakeLen:   len(g.state.Body),
		Heading:    g.state.Heading,
		FoodX:      g.state.Food.X,
		FoodY:      g.state.Food.Y,
		IntervalMs: int(g.state.TickInterval.Milliseconds()),
		Exploding:  g.explosion.Pending(),
	}
	if len(g.state.Body) > 0 {
		snap.HeadX = g.state.Body[0].X
		snap.HeadY = g.state.Body[0].Y
	}
	return snap
}
