package config

import (
	_ "embed"
)

//go:embed defaults/match.yaml
var defaultMatchYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultMatchConfig returns the built-in Memory Match configuration.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Difficulties: map[string]MatchDifficulty{
			string(DifficultyEasy): {
				Pairs:             6,
				Columns:           4,
				TimeBudgetSeconds: 600,
				Symbols:           []string{"♠", "♥", "♦", "♣", "★", "☀"},
			},
			string(DifficultyMedium): {
				Pairs:             8,
				Columns:           4,
				TimeBudgetSeconds: 900,
				Symbols:           []string{"♠", "♥", "♦", "♣", "★", "☀", "☂", "♪"},
			},
			string(DifficultyHard): {
				Pairs:             12,
				Columns:           6,
				TimeBudgetSeconds: 1200,
				Symbols:           []string{"♠", "♥", "♦", "♣", "★", "☀", "☂", "♪", "☯", "☘", "✿", "⚓"},
			},
		},
		Scoring: MatchScoring{
			Base:               1000,
			TimeBonusPerSecond: 10,
			MoveBonusPerMove:   10,
		},
		Pacing: MatchPacing{
			MatchDelayMs:    500,
			MismatchDelayMs: 1000,
		},
	}
}

// DefaultSnakeConfig returns the built-in Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Size:    20,
			StartX:  10,
			StartY:  10,
			Heading: "up",
		},
		Speed: SnakeSpeed{
			BaseIntervalMs: 150,
			StepMs:         2,
			MinIntervalMs:  50,
		},
		Scoring: SnakeScoring{
			FoodPoints:     10,
			LevelThreshold: 100,
		},
		Explosion: SnakeExplosion{
			DurationMs: 1000,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match":
		return defaultMatchYAML
	case "snake":
		return defaultSnakeYAML
	default:
		return nil
	}
}
