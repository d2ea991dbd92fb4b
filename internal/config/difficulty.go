package config

import (
	"fmt"
	"strings"
)

// Difficulty names a Memory Match board size.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the difficulties in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty accepts a case-insensitive difficulty name.
// "normal" is accepted as an alias of medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium", "normal":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// Difficulty returns the settings for d.
func (c MatchConfig) Difficulty(d Difficulty) (MatchDifficulty, bool) {
	md, ok := c.Difficulties[string(d)]
	return md, ok
}
