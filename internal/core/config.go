package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Driver ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDuration returns the wall-clock time covered by one driver tick.
func (c RuntimeConfig) FrameDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Outcome describes how a finished run ended.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWon  Outcome = "won"
	OutcomeOver Outcome = "over"
)

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	Best     int     // Best score known to the score store for this run's key
	GameOver bool    // Whether the run reached a terminal phase
	Paused   bool    // Whether the game is paused
	Outcome  Outcome // Set once GameOver is true
}

// StepResult is returned by Game.Step() after each driver tick.
type StepResult struct {
	State GameState
	// Started is true on the tick where a fresh run left its setup phase.
	Started bool
}

// RunSummary carries the run details a driver records in the run history.
type RunSummary struct {
	Difficulty string
	Moves      int
	Seconds    int
}
