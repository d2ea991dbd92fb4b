package match

// Snapshot captures the observable board state for determinism tests.
type Snapshot struct {
	Tick       uint64
	Difficulty string
	Phase      string
	Pairs      int
	Moves      int
	Matches    int
	Elapsed    int
	Score      int
	Best       int
	Cursor     int
	Order      []int // card ids in board order
	Exposed    []int // ids of face-up unmatched cards
	Pending    bool
	Paused     bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tick,
		Difficulty: string(g.difficulty),
		Phase:      g.state.Phase.String(),
		Pairs:      g.state.Pairs(),
		Moves:      g.state.Stats.Moves,
		Matches:    g.state.Stats.Matches,
		Elapsed:    g.state.Stats.ElapsedSeconds,
		Score:      g.state.Stats.Score,
		Best:       g.state.Best,
		Cursor:     g.cursor,
		Pending:    g.state.Pending != nil,
		Paused:     g.paused,
	}
	for _, c := range g.state.Cards {
		snap.Order = append(snap.Order, c.ID)
		if c.Exposed && !c.Matched {
			snap.Exposed = append(snap.Exposed, c.ID)
		}
	}
	return snap
}
