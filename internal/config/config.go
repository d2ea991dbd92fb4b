// Package config provides YAML-based game configuration loading for the
// playroom games. Every tuning constant of the two engines lives here so
// scoring and pacing can be changed without touching engine code.
package config

// MatchConfig contains all configuration for the Memory Match game.
type MatchConfig struct {
	Difficulties map[string]MatchDifficulty `yaml:"difficulties"`
	Scoring      MatchScoring               `yaml:"scoring"`
	Pacing       MatchPacing                `yaml:"pacing"`
}

// MatchDifficulty defines one board size.
type MatchDifficulty struct {
	Pairs             int      `yaml:"pairs"`
	Columns           int      `yaml:"columns"`
	TimeBudgetSeconds int      `yaml:"time_budget_seconds"`
	Symbols           []string `yaml:"symbols"`
}

// MatchScoring defines the completion score formula:
// base + time_bonus * max(0, budget - elapsed) + move_bonus * max(0, 2N - moves).
type MatchScoring struct {
	Base               int `yaml:"base"`
	TimeBonusPerSecond int `yaml:"time_bonus_per_second"`
	MoveBonusPerMove   int `yaml:"move_bonus_per_move"`
}

// MatchPacing defines presentation delays before a flipped pair resolves.
type MatchPacing struct {
	MatchDelayMs    int `yaml:"match_delay_ms"`
	MismatchDelayMs int `yaml:"mismatch_delay_ms"`
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid      SnakeGrid      `yaml:"grid"`
	Speed     SnakeSpeed     `yaml:"speed"`
	Scoring   SnakeScoring   `yaml:"scoring"`
	Explosion SnakeExplosion `yaml:"explosion"`
}

// SnakeGrid defines the board and the spawn.
type SnakeGrid struct {
	Size    int    `yaml:"size"`
	StartX  int    `yaml:"start_x"`
	StartY  int    `yaml:"start_y"`
	Heading string `yaml:"heading"` // up, down, left, right
}

// SnakeSpeed defines the movement interval and how it shrinks per food.
type SnakeSpeed struct {
	BaseIntervalMs int `yaml:"base_interval_ms"`
	StepMs         int `yaml:"step_ms"`
	MinIntervalMs  int `yaml:"min_interval_ms"`
}

// SnakeScoring defines food value and level progression.
type SnakeScoring struct {
	FoodPoints     int `yaml:"food_points"`
	LevelThreshold int `yaml:"level_threshold"`
}

// SnakeExplosion defines how long the collision marker stays visible.
type SnakeExplosion struct {
	DurationMs int `yaml:"duration_ms"`
}
