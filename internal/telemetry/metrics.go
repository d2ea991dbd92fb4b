// Package telemetry exposes Prometheus metrics about runs and best scores.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/scores"
)

var (
	RunsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playroom_runs_started_total",
			Help: "Total runs started per game",
		},
		[]string{"game"},
	)
	RunsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playroom_runs_finished_total",
			Help: "Total runs that reached a terminal phase per game and outcome",
		},
		[]string{"game", "outcome"},
	)
	BestScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "playroom_best_score",
			Help: "Best score known to the score store",
		},
		[]string{"game", "difficulty"},
	)
)

func init() {
	prometheus.MustRegister(RunsStarted)
	prometheus.MustRegister(RunsFinished)
	prometheus.MustRegister(BestScore)
}

// RunStarted counts a new run of game.
func RunStarted(game string) {
	RunsStarted.WithLabelValues(game).Inc()
}

// RunFinished counts a finished run of game.
func RunFinished(game string, outcome core.Outcome) {
	if outcome == core.OutcomeNone {
		outcome = "unknown"
	}
	RunsFinished.WithLabelValues(game, string(outcome)).Inc()
}

// ObserveBest records a best score. It satisfies scores.Observer.
func ObserveBest(key scores.Key, best int) {
	BestScore.WithLabelValues(key.Game, key.Difficulty).Set(float64(best))
}

var _ scores.Observer = ObserveBest
