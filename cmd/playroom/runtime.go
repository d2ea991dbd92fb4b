package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/games/match"
	"github.com/vovakirdan/playroom/internal/games/snake"
	"github.com/vovakirdan/playroom/internal/platform/tui"
	"github.com/vovakirdan/playroom/internal/scores"
	"github.com/vovakirdan/playroom/internal/storage"
	"github.com/vovakirdan/playroom/internal/telemetry"
)

// appRuntime holds the stores shared by every command.
type appRuntime struct {
	logger  *log.Logger
	history *storage.Store   // nil when the database cannot be opened
	redis   *storage.RedisKV // nil unless --redis is set
	scores  *scores.Store
}

// newLogger builds the process logger from --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "playroom",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openRuntime opens the run history and picks the best-score backend:
// Redis when configured, else the SQLite kv table, else memory.
func openRuntime() (*appRuntime, error) {
	rt := &appRuntime{logger: newLogger()}

	history, err := storage.Open(flagDBPath)
	if err != nil {
		rt.logger.Warn("could not open run history, runs will not be recorded", "path", flagDBPath, "error", err)
	} else {
		rt.history = history
	}

	var kv scores.KV
	switch {
	case flagRedisAddr != "":
		rdb, err := storage.OpenRedis(flagRedisAddr, os.Getenv("PLAYROOM_REDIS_PASSWORD"), 0)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.redis = rdb
		kv = rdb
	case rt.history != nil:
		kv = rt.history
	default:
		kv = scores.NewMemoryKV()
	}

	rt.scores = scores.NewStore(kv,
		scores.WithLogger(rt.logger),
		scores.WithObserver(telemetry.ObserveBest),
	)
	return rt, nil
}

// configureGames loads both game configs and points new games at the score store.
// matchPath and snakePath override the config search order when set.
func (rt *appRuntime) configureGames(matchPath, snakePath string) error {
	matchCfg, err := config.LoadMatch(matchPath)
	if err != nil {
		return err
	}
	snakeCfg, err := config.LoadSnake(snakePath)
	if err != nil {
		return err
	}
	match.Configure(matchCfg, rt.scores)
	snake.Configure(snakeCfg, rt.scores)
	return nil
}

func (rt *appRuntime) services() tui.Services {
	return tui.Services{
		Scores:  rt.scores,
		History: rt.history,
		Logger:  rt.logger,
	}
}

// Close releases the stores.
func (rt *appRuntime) Close() {
	if rt.history != nil {
		if err := rt.history.Close(); err != nil {
			rt.logger.Warn("closing run history", "error", err)
		}
	}
	if rt.redis != nil {
		if err := rt.redis.Close(); err != nil {
			rt.logger.Warn("closing redis", "error", err)
		}
	}
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fail prints an error and exits like every command does.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
