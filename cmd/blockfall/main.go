package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/blockfall/audio"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/render/gfx"
	"github.com/plus3/blockfall/tetris"
	"github.com/spf13/cobra"
)

var debugOverlay bool

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Falling-block puzzle game",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(cmd)
		if err != nil {
			return err
		}
		logger := config.NewLogger("blockfall", settings.Log.Level, os.Stderr)
		logger.Debug("settings loaded", "rows", settings.Game.Rows, "cols", settings.Game.Cols, "seed", settings.Seed)

		return run(settings, logger)
	},
}

func init() {
	config.BindFlags(rootCmd)
	rootCmd.Flags().BoolVar(&debugOverlay, "debug", false, "show the developer overlay at startup (toggle with F1)")
}

func run(settings *config.Settings, logger *log.Logger) error {
	renderer := gfx.NewRenderer(settings.Window.Scale)
	width, height := renderer.Size(settings.Game.Rows, settings.Game.Cols)

	events := debugui.NewEventLog(200)
	opts := append(settings.GameOptions(logger), tetris.WithObserver(events))

	var sound *audio.Manager
	if settings.Audio.Enabled {
		sound = audio.NewManager(audio.DefaultSampleRate, settings.Audio.Volume, logger)
		opts = append(opts, tetris.WithObserver(sound))
	}

	game, err := tetris.NewGame(settings.Game, opts...)
	if err != nil {
		return err
	}

	perf := debugui.NewPerformanceStats(120)
	inspector := debugui.NewGameInspector()
	overlay := debugui.NewOverlay(
		debugui.ImguiItem{Name: "performance", Render: func() { perf.Render(game) }},
		debugui.ImguiItem{Name: "game", Render: func() { inspector.Render(game) }},
		debugui.ImguiItem{Name: "events", Render: events.Render},
	)
	overlay.Visible = debugOverlay

	backend := debugui_ebiten.NewImguiBackend("Blockfall", width, height, overlay)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if sound != nil {
		ctx := ebitenaudio.NewContext(int(audio.DefaultSampleRate))
		player, err := ctx.NewPlayer(audio.NewPCMReader(sound))
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			player.Play()
			defer player.Close()
		}
	}

	app := &App{
		game:      game,
		runner:    tetris.NewRunner(game),
		renderer:  renderer,
		imgui:     backend,
		overlay:   overlay,
		perf:      perf,
		inspector: inspector,
		timer:     debugui.NewFrameTimer(),
		width:     width,
		height:    height,
	}

	logger.Info("window opened", "width", width, "height", height)
	return ebiten.RunGame(app)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("blockfall exited", "err", err)
		os.Exit(1)
	}
}
