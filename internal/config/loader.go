package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMatch loads Memory Match configuration.
// Search order: customPath -> ~/.playroom/configs/match.yaml -> ./configs/match.yaml -> embedded default
func LoadMatch(customPath string) (MatchConfig, error) {
	cfg, err := load(customPath, "match.yaml", defaultMatchYAML, DefaultMatchConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.playroom/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg, err := load(customPath, "snake.yaml", defaultSnakeYAML, DefaultSnakeConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// load reads the first parseable file in the search order on top of the
// hard-coded defaults, so a partial YAML file only overrides what it names.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed := fallback()
		if err := yaml.Unmarshal(data, &parsed); err == nil {
			return parsed, nil
		}
	}

	parsed := fallback()
	if err := yaml.Unmarshal(embedded, &parsed); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return parsed, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".playroom", "configs", filename)
}

// Validate rejects boards the engine cannot lay out.
func (c MatchConfig) Validate() error {
	var errs []error
	for _, d := range Difficulties() {
		md, ok := c.Difficulty(d)
		if !ok {
			errs = append(errs, fmt.Errorf("config: match difficulty %q missing", d))
			continue
		}
		if md.Pairs <= 0 {
			errs = append(errs, fmt.Errorf("config: match %s: pairs must be positive", d))
		}
		if len(md.Symbols) < md.Pairs {
			errs = append(errs, fmt.Errorf("config: match %s: %d symbols for %d pairs", d, len(md.Symbols), md.Pairs))
		}
		if md.Columns <= 0 {
			errs = append(errs, fmt.Errorf("config: match %s: columns must be positive", d))
		}
	}
	return errors.Join(errs...)
}

// Validate rejects grids the engine cannot play on.
func (c SnakeConfig) Validate() error {
	var errs []error
	g := c.Grid
	if g.Size < 2 {
		errs = append(errs, fmt.Errorf("config: snake grid size %d too small", g.Size))
	}
	if g.StartX < 0 || g.StartX >= g.Size || g.StartY < 0 || g.StartY >= g.Size {
		errs = append(errs, fmt.Errorf("config: snake start (%d,%d) outside grid", g.StartX, g.StartY))
	}
	switch g.Heading {
	case "up", "down", "left", "right":
	default:
		errs = append(errs, fmt.Errorf("config: snake heading %q invalid", g.Heading))
	}
	if c.Speed.BaseIntervalMs <= 0 || c.Speed.MinIntervalMs <= 0 {
		errs = append(errs, errors.New("config: snake intervals must be positive"))
	}
	if c.Scoring.LevelThreshold <= 0 {
		errs = append(errs, errors.New("config: snake level_threshold must be positive"))
	}
	return errors.Join(errs...)
}
