// Package scores is the best-score store shared by every run. Engines only
// propose candidate scores through WriteBestIfHigher; the store owns the
// persisted layout and guarantees that a best never decreases.
package scores

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Key identifies one best score: a game and, for games that have one, a
// difficulty.
type Key struct {
	Game       string
	Difficulty string
}

// String renders the key for logs and metrics.
func (k Key) String() string {
	if k.Difficulty == "" {
		return k.Game
	}
	return k.Game + "/" + k.Difficulty
}

// Observer is notified whenever a best score is read or raised.
type Observer func(key Key, best int)

// Store implements best-score persistence on top of a KV.
type Store struct {
	kv       KV
	logger   *log.Logger
	timeout  time.Duration
	observer Observer

	// mu makes the read-compare-write of WriteBestIfHigher atomic for
	// every caller sharing this Store.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for fail-soft persistence errors.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithTimeout bounds each KV call.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// WithObserver registers a callback for best-score updates.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// NewStore creates a Store on top of kv.
func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		logger:  log.New(io.Discard),
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemoryStore returns a Store backed by a fresh MemoryKV.
func NewMemoryStore(opts ...Option) *Store {
	return NewStore(NewMemoryKV(), opts...)
}

// ReadBest returns the best score for key, or 0 when no record exists or the
// record cannot be read.
func (s *Store) ReadBest(key Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.load(key)
	best := rec[key.Difficulty]
	s.notify(key, best)
	return best
}

// WriteBestIfHigher raises the best for key to candidate when candidate is
// higher and returns the resulting best. Persistence failures are logged; the
// returned value still reflects the comparison. When the stored record cannot
// be read the candidate is returned unpersisted so the stored bests are never
// overwritten with a lower value.
func (s *Store) WriteBestIfHigher(key Key, candidate int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(key)
	if err != nil {
		s.logger.Warn("skipping best score write, record unreadable", "key", key, "score", candidate, "error", err)
		return candidate
	}
	best := rec[key.Difficulty]
	if candidate <= best {
		return best
	}

	rec[key.Difficulty] = candidate
	if err := s.save(key, rec); err != nil {
		s.logger.Warn("could not persist best score", "key", key, "score", candidate, "error", err)
	} else {
		s.logger.Debug("new best score", "key", key, "score", candidate)
	}
	s.notify(key, candidate)
	return candidate
}

// Bests returns every difficulty slot of a game's record.
func (s *Store) Bests(game string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.load(Key{Game: game})
	out := make(map[string]int, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

// Clear removes a game's record.
func (s *Store) Clear(game string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.kv.Remove(ctx, RecordKey(game)); err != nil {
		return fmt.Errorf("scores: cannot clear %s: %w", game, err)
	}
	return nil
}

// ClearBest resets one slot of a record to zero, leaving the other
// difficulties of the same game untouched. Keys without a difficulty remove
// the whole record.
func (s *Store) ClearBest(key Key) error {
	if key.Difficulty == "" {
		return s.Clear(key.Game)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(key)
	if err != nil {
		return err
	}
	rec[key.Difficulty] = 0
	if err := s.save(key, rec); err != nil {
		return fmt.Errorf("scores: cannot clear %s: %w", key, err)
	}
	s.notify(key, 0)
	return nil
}

// load reads and decodes a record. Missing or corrupt values yield the zeroed
// default with a nil error; a backend failure yields the zeroed default and
// the error. Callers hold mu.
func (s *Store) load(key Key) (record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	raw, ok, err := s.kv.Get(ctx, RecordKey(key.Game))
	if err != nil {
		s.logger.Warn("could not read score record", "key", key, "error", err)
		return zeroRecord(key.Game), fmt.Errorf("scores: cannot read %s: %w", key.Game, err)
	}
	if !ok {
		return zeroRecord(key.Game), nil
	}

	rec, err := decodeRecord(key, raw)
	if err != nil {
		s.logger.Warn("discarding unreadable score record", "key", key, "raw", raw)
	}
	return rec, nil
}

// save encodes and writes a record. Callers hold mu.
func (s *Store) save(key Key, rec record) error {
	value, err := encodeRecord(key, rec)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.kv.Set(ctx, RecordKey(key.Game), value)
}

func (s *Store) notify(key Key, best int) {
	if s.observer != nil {
		s.observer(key, best)
	}
}
