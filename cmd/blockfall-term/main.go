package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/audio"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/render/term"
	"github.com/plus3/blockfall/tetris"
	"github.com/spf13/cobra"
)

const frameInterval = 16 * time.Millisecond

var logFile string

var rootCmd = &cobra.Command{
	Use:   "blockfall-term",
	Short: "Falling-block puzzle game for the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(cmd)
		if err != nil {
			return err
		}

		// The screen owns stdout, so logs only go to a file when asked.
		var w io.Writer = io.Discard
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		logger := config.NewLogger("blockfall-term", settings.Log.Level, w)

		return run(cmd.Context(), settings, logger)
	},
}

func init() {
	config.BindFlags(rootCmd)
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
}

func run(ctx context.Context, settings *config.Settings, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	width, height := term.Size(settings.Game.Rows, settings.Game.Cols, settings.Game.Preview)
	if w, h := screen.Size(); w < width || h < height {
		logger.Warn("terminal smaller than board", "have", fmt.Sprintf("%dx%d", w, h), "need", fmt.Sprintf("%dx%d", width, height))
	}

	opts := settings.GameOptions(logger)
	if settings.Audio.Enabled {
		sound := audio.NewManager(audio.DefaultSampleRate, settings.Audio.Volume, logger)
		if err := sound.PlayOnSpeaker(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sound.Close()
			opts = append(opts, tetris.WithObserver(sound))
		}
	}

	game, err := tetris.NewGame(settings.Game, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputs := make(chan tetris.Input, 32)
	go pollKeys(ctx, screen, inputs, cancel)

	renderer := term.NewRenderer(screen)
	runner := tetris.NewRunner(game)
	runner.OnFrame = func(g *tetris.Game) {
		renderer.Draw(render.Build(g.Snapshot(), g.Config().Shapes))
	}

	logger.Info("terminal client started", "rows", settings.Game.Rows, "cols", settings.Game.Cols)
	runner.Run(ctx, frameInterval, inputs)
	logger.Info("terminal client stopped", "frames", runner.Frames(), "score", game.Score())
	return nil
}

// pollKeys forwards key events until the screen is finalized, the player
// quits or ctx is cancelled.
func pollKeys(ctx context.Context, screen tcell.Screen, inputs chan<- tetris.Input, quit context.CancelFunc) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			in, stop := term.Translate(ev)
			if stop {
				quit()
				return
			}
			if in == nil {
				continue
			}
			select {
			case inputs <- in:
			case <-ctx.Done():
				return
			}
		}
	}
}

func execute() int {
	if err := rootCmd.Execute(); err != nil {
		log.Error("blockfall-term exited", "err", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute())
}
