// Package config loads client settings from defaults, an optional config
// file, BLOCKFALL_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/blockfall/tetris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalidSettings is wrapped by every validation error from Load.
var ErrInvalidSettings = errors.New("invalid settings")

const envPrefix = "BLOCKFALL"

type Settings struct {
	Game   tetris.Config `mapstructure:"game"`
	Log    LogConf       `mapstructure:"log"`
	Audio  AudioConf     `mapstructure:"audio"`
	Window WindowConf    `mapstructure:"window"`

	// Seed fixes the piece sequence. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type AudioConf struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

type WindowConf struct {
	Scale int `mapstructure:"scale"`
}

// flagKeys maps flag names registered by BindFlags to settings keys.
var flagKeys = map[string]string{
	"rows":      "game.rows",
	"cols":      "game.cols",
	"preview":   "game.preview",
	"seed":      "seed",
	"log-level": "log.level",
	"audio":     "audio.enabled",
	"volume":    "audio.volume",
	"scale":     "window.scale",
}

// BindFlags registers the settings flags as persistent flags of cmd.
func BindFlags(cmd *cobra.Command) {
	def := tetris.DefaultConfig()
	flags := cmd.PersistentFlags()

	flags.String("config", "", "config file (yaml, toml or json)")
	flags.Int("rows", def.Rows, "board height in cells")
	flags.Int("cols", def.Cols, "board width in cells")
	flags.Int("preview", def.Preview, "number of upcoming pieces shown")
	flags.Uint64("seed", 0, "piece sequence seed, 0 for random")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.Bool("audio", true, "play music and sound effects")
	flags.Float64("volume", 0.8, "master volume between 0 and 1")
	flags.Int("scale", 32, "cell size in pixels for the desktop client")
}

func setDefaults(v *viper.Viper) {
	def := tetris.DefaultConfig()

	v.SetDefault("game.rows", def.Rows)
	v.SetDefault("game.cols", def.Cols)
	v.SetDefault("game.preview", def.Preview)
	v.SetDefault("game.base_interval", def.BaseInterval)
	v.SetDefault("game.min_interval", def.MinInterval)
	v.SetDefault("game.level_step", def.LevelStep)
	v.SetDefault("game.lines_per_level", def.LinesPerLevel)
	v.SetDefault("game.clear_duration", def.ClearDuration)
	v.SetDefault("game.flash_interval", def.FlashInterval)
	v.SetDefault("game.score_table", def.ScoreTable)
	v.SetDefault("log.level", "info")
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.8)
	v.SetDefault("window.scale", 32)
	v.SetDefault("seed", 0)
}

// Load reads settings for cmd. The --config flag, when set, names the
// file to read. cmd may be nil, in which case only defaults and the
// environment apply.
func Load(cmd *cobra.Command) (*Settings, error) {
	v := viper.New()

	var path string
	if cmd != nil {
		if f := lookupFlag(cmd, "config"); f != nil {
			path = f.Value.String()
		}
		for name, key := range flagKeys {
			if f := lookupFlag(cmd, name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	return load(v, path)
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.PersistentFlags().Lookup(name)
}

// LoadFile reads settings from path without any flags.
func LoadFile(path string) (*Settings, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Settings, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if s.Game.Shapes == nil {
		s.Game.Shapes = tetris.DefaultShapes()
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if err := s.Game.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return fmt.Errorf("%w: volume %.2f outside [0, 1]", ErrInvalidSettings, s.Audio.Volume)
	}
	if s.Window.Scale < 4 {
		return fmt.Errorf("%w: window scale %d below 4", ErrInvalidSettings, s.Window.Scale)
	}
	if _, err := log.ParseLevel(strings.ToLower(s.Log.Level)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// GameOptions returns the tetris options these settings imply.
func (s *Settings) GameOptions(logger *log.Logger) []tetris.Option {
	opts := []tetris.Option{tetris.WithLogger(logger)}
	if s.Seed != 0 {
		opts = append(opts, tetris.WithSeed(s.Seed))
	} else {
		opts = append(opts, tetris.WithSeed(uint64(time.Now().UnixNano())))
	}
	return opts
}

// NewLogger returns a timestamped logger writing to w. Unknown levels fall
// back to info.
func NewLogger(prefix, level string, w io.Writer) *log.Logger {
	logger := log.New(w)
	logger.SetPrefix(prefix)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
