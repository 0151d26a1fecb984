// Package metrics exports game events as prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is a tetris.Observer that keeps its own registry, so several
// instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	GamesStarted prometheus.Counter
	GamesOver    prometheus.Counter
	PiecesLocked *prometheus.CounterVec
	Clears       *prometheus.CounterVec
	LinesCleared prometheus.Counter
	Holds        prometheus.Counter
	HardDrops    prometheus.Counter
	Score        prometheus.Gauge
	Level        prometheus.Gauge
	FinalScore   prometheus.Histogram
	TickDuration prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Number of games started",
		}),
		GamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_over_total",
			Help:      "Number of games that ended with a blocked spawn",
		}),
		PiecesLocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pieces_locked_total",
			Help:      "Pieces merged into the grid",
		}, []string{"piece"}),
		Clears: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clears_total",
			Help:      "Line clears by number of rows removed at once",
		}, []string{"rows"}),
		LinesCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_cleared_total",
			Help:      "Total rows removed",
		}),
		Holds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "holds_total",
			Help:      "Successful hold actions",
		}),
		HardDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hard_drops_total",
			Help:      "Hard drops performed",
		}),
		Score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "score",
			Help:      "Score of the current game",
		}),
		Level: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "level",
			Help:      "Level of the current game, starting at 0",
		}),
		FinalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Score at game over",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 12),
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in Game.Tick",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 2, 14),
		}),
	}

	m.registry.MustRegister(
		m.GamesStarted,
		m.GamesOver,
		m.PiecesLocked,
		m.Clears,
		m.LinesCleared,
		m.Holds,
		m.HardDrops,
		m.Score,
		m.Level,
		m.FinalScore,
		m.TickDuration,
	)

	return m
}

// Registry returns the registry all metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveTick(d time.Duration) {
	m.TickDuration.Observe(d.Seconds())
}

func (m *Metrics) Observe(e tetris.Event) {
	switch e.Kind {
	case tetris.EventStarted:
		m.GamesStarted.Inc()
		m.Score.Set(0)
		m.Level.Set(0)
	case tetris.EventReset:
		m.Score.Set(0)
		m.Level.Set(0)
	case tetris.EventSoftDropped:
		m.Score.Set(float64(e.Score))
	case tetris.EventLocked:
		m.PiecesLocked.WithLabelValues(e.Piece.String()).Inc()
	case tetris.EventHeld:
		m.Holds.Inc()
	case tetris.EventHardDropped:
		m.HardDrops.Inc()
	case tetris.EventLinesDetected:
		m.Clears.WithLabelValues(strconv.Itoa(len(e.Rows))).Inc()
		m.LinesCleared.Add(float64(len(e.Rows)))
		m.Score.Set(float64(e.Score))
	case tetris.EventLevelUp:
		m.Level.Set(float64(e.Level))
	case tetris.EventGameOver:
		m.GamesOver.Inc()
		m.FinalScore.Observe(float64(e.Score))
	}
}
