// Package web serves the read-only HTTP surface of playroom: health,
// best scores with recent runs, and Prometheus metrics.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/registry"
	"github.com/vovakirdan/playroom/internal/scores"
	"github.com/vovakirdan/playroom/internal/storage"
)

const recentLimit = 20

// History lists finished runs. *storage.Store implements it.
type History interface {
	RecentScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetAllGamesStats() (map[string]*storage.GameStats, error)
}

// Server bundles the router and its data sources.
type Server struct {
	r       *chi.Mux
	scores  *scores.Store
	history History
	logger  *log.Logger
}

// New constructs a Server and registers routes. history may be nil.
func New(store *scores.Store, history History, logger *log.Logger) *Server {
	s := &Server{r: chi.NewRouter(), scores: store, history: history, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.logRequests)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Handle("/metrics", promhttp.Handler())
	s.r.Route("/api", func(r chi.Router) {
		r.Get("/games", s.handleGames)
		r.Get("/scores/{game}", s.handleScores)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Path: r.URL.Path})
	})

	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Stopping HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

type gameJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Runs      int    `json:"runs"`
	HighScore int    `json:"high_score"`
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	var stats map[string]*storage.GameStats
	if s.history != nil {
		var err error
		if stats, err = s.history.GetAllGamesStats(); err != nil {
			s.logger.Warn("could not load game stats", "error", err)
		}
	}

	games := registry.List()
	out := make([]gameJSON, 0, len(games))
	for _, g := range games {
		gj := gameJSON{ID: g.ID, Title: g.Title}
		if st, ok := stats[g.ID]; ok {
			gj.Runs = st.GamesCount
			gj.HighScore = st.HighScore
		}
		out = append(out, gj)
	}
	writeJSON(w, http.StatusOK, out)
}

type runJSON struct {
	Game       string    `json:"game"`
	Difficulty string    `json:"difficulty,omitempty"`
	Score      int       `json:"score"`
	Outcome    string    `json:"outcome,omitempty"`
	Moves      int       `json:"moves,omitempty"`
	Seconds    int       `json:"seconds,omitempty"`
	PlayedAt   time.Time `json:"played_at"`
}

type scoresJSON struct {
	Game   string         `json:"game"`
	Best   map[string]int `json:"best"`
	Recent []runJSON      `json:"recent"`
}

type errorBody struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	game, runIDs, ok := resolveGame(chi.URLParam(r, "game"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown_game"})
		return
	}

	best := make(map[string]int)
	for k, v := range s.scores.Bests(game) {
		if k == "" {
			k = "default"
		}
		best[k] = v
	}

	resp := scoresJSON{Game: game, Best: best, Recent: []runJSON{}}
	if s.history != nil {
		for _, id := range runIDs {
			entries, err := s.history.RecentScores(id, recentLimit)
			if err != nil {
				s.logger.Warn("could not load run history", "game", id, "error", err)
				continue
			}
			for _, e := range entries {
				resp.Recent = append(resp.Recent, runJSON{
					Game:       e.GameID,
					Difficulty: e.Difficulty,
					Score:      e.Score,
					Outcome:    e.Outcome,
					Moves:      e.Moves,
					Seconds:    e.Seconds,
					PlayedAt:   e.CreatedAt,
				})
			}
		}
		sort.SliceStable(resp.Recent, func(i, j int) bool {
			return resp.Recent[i].PlayedAt.After(resp.Recent[j].PlayedAt)
		})
		if len(resp.Recent) > recentLimit {
			resp.Recent = resp.Recent[:recentLimit]
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// resolveGame maps a score-store game or a registry id to the store game and
// the registry ids whose runs belong to it.
func resolveGame(name string) (string, []string, bool) {
	name = strings.ToLower(name)
	switch name {
	case scores.GameSnake:
		return scores.GameSnake, []string{"snake"}, true
	case scores.GameMatch:
		var ids []string
		for _, d := range config.Difficulties() {
			ids = append(ids, scores.GameMatch+"_"+string(d))
		}
		return scores.GameMatch, ids, true
	}
	for _, d := range config.Difficulties() {
		if name == scores.GameMatch+"_"+string(d) {
			return scores.GameMatch, []string{name}, true
		}
	}
	return "", nil, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
