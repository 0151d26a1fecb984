package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/metrics"
	"github.com/plus3/blockfall/tetris"
	"github.com/spf13/cobra"
)

var (
	duration    time.Duration
	step        time.Duration
	games       int
	maxPieces   int
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "blockfall-sim",
	Short: "Play games headlessly with a placement bot and report the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(cmd)
		if err != nil {
			return err
		}
		logger := config.NewLogger("blockfall-sim", settings.Log.Level, os.Stderr)

		seed := settings.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}

		m := metrics.NewMetrics("blockfall")
		if metricsAddr != "" {
			serveMetrics(metricsAddr, m, logger)
		}

		sim := &Simulation{
			Config:    settings.Game,
			Seed:      seed,
			Step:      step,
			Games:     games,
			MaxPieces: maxPieces,
			Bot:       NewBot(),
			Metrics:   m,
			Logger:    logger,
		}

		logger.Info("running simulation", "duration", duration, "seed", seed, "games", games)
		ctx, cancel := context.WithTimeout(cmd.Context(), duration)
		defer cancel()

		report, err := sim.Run(ctx)
		if err != nil {
			return err
		}
		report.Duration = duration
		logger.Info("simulation finished", "games", len(report.Games), "ticks", report.TotalTicks)

		fmt.Println("\n\n--- Simulation Report ---")
		if err := report.Generate(os.Stdout); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		fmt.Println("--- End of Report ---")
		return nil
	},
}

func init() {
	config.BindFlags(rootCmd)
	flags := rootCmd.Flags()
	flags.DurationVar(&duration, "duration", 10*time.Second, "wall time to run for")
	flags.DurationVar(&step, "step", 16*time.Millisecond, "simulated time per tick")
	flags.IntVar(&games, "games", 0, "stop after this many games, 0 to run for the whole duration")
	flags.IntVar(&maxPieces, "max-pieces", 1000, "cut a game off after this many pieces")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
}

func serveMetrics(addr string, m *metrics.Metrics, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	go func() {
		logger.Info("serving metrics", "url", "http://"+addr+"/metrics")
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
}

// Simulation drives one game instance with a bot on simulated time,
// restarting it whenever it ends.
type Simulation struct {
	Config    tetris.Config
	Seed      uint64
	Step      time.Duration
	Games     int
	MaxPieces int
	Bot       *Bot
	Metrics   *metrics.Metrics
	Logger    *log.Logger
}

// Run plays until ctx is done or Games games have finished.
func (s *Simulation) Run(ctx context.Context) (*Report, error) {
	opts := []tetris.Option{tetris.WithSeed(s.Seed)}
	if s.Logger != nil {
		opts = append(opts, tetris.WithLogger(s.Logger))
	}
	if s.Metrics != nil {
		opts = append(opts, tetris.WithObserver(s.Metrics))
	}

	game, err := tetris.NewGame(s.Config, opts...)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID: uuid.New(),
		Step:  s.Step,
		Seed:  s.Seed,
		Rows:  s.Config.Rows,
		Cols:  s.Config.Cols,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	startTime := time.Now()
	var played time.Duration
	game.Start()

Loop:
	for {
		select {
		case <-ctx.Done():
			if game.Stats().Locks > 0 {
				report.AddGame(game, played)
			}
			break Loop
		default:
		}

		switch game.Status() {
		case tetris.StatusGameOver:
			report.AddGame(game, played)
			if s.done(report) {
				break Loop
			}
			played = 0
			game.Start()
			continue
		case tetris.StatusRunning:
			if s.MaxPieces > 0 && game.Stats().TotalPieces() >= s.MaxPieces {
				report.AddGame(game, played)
				if s.done(report) {
					break Loop
				}
				played = 0
				game.Reset()
				game.Start()
				continue
			}
			s.Bot.Act(game)
		}

		tickStart := time.Now()
		game.Tick(s.Step)
		tickDuration := time.Since(tickStart)

		report.TickTime.Add(tickDuration)
		if s.Metrics != nil {
			s.Metrics.ObserveTick(tickDuration)
		}
		report.TotalTicks++
		played += s.Step
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report, nil
}

func (s *Simulation) done(r *Report) bool {
	return s.Games > 0 && len(r.Games) >= s.Games
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}
