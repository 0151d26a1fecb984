package tetris

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid game config")

// Config holds the constants the engine needs from its environment.
type Config struct {
	Rows    int `mapstructure:"rows"`
	Cols    int `mapstructure:"cols"`
	Preview int `mapstructure:"preview"`

	// Gravity interval is max(MinInterval, BaseInterval - level*LevelStep).
	BaseInterval  time.Duration `mapstructure:"base_interval"`
	MinInterval   time.Duration `mapstructure:"min_interval"`
	LevelStep     time.Duration `mapstructure:"level_step"`
	LinesPerLevel int           `mapstructure:"lines_per_level"`

	ClearDuration time.Duration `mapstructure:"clear_duration"`
	FlashInterval time.Duration `mapstructure:"flash_interval"`

	// ScoreTable[n-1] is the base award for clearing n rows at once. Larger
	// clears use the last entry.
	ScoreTable []int `mapstructure:"score_table"`

	Shapes map[PieceType]Shape `mapstructure:"-"`
}

// DefaultConfig returns the reference parameterization: a 10x20 board,
// three previews, 1s gravity shrinking 70ms per level down to 100ms.
func DefaultConfig() Config {
	return Config{
		Rows:          20,
		Cols:          10,
		Preview:       3,
		BaseInterval:  1000 * time.Millisecond,
		MinInterval:   100 * time.Millisecond,
		LevelStep:     70 * time.Millisecond,
		LinesPerLevel: 10,
		ClearDuration: 300 * time.Millisecond,
		FlashInterval: 60 * time.Millisecond,
		ScoreTable:    []int{100, 300, 500, 800},
		Shapes:        DefaultShapes(),
	}
}

// Validate checks the configuration once, before a game is created.
func (c *Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Cols, c.Rows)
	case c.Preview < 0:
		return fmt.Errorf("%w: negative preview count %d", ErrInvalidConfig, c.Preview)
	case c.BaseInterval <= 0 || c.MinInterval <= 0:
		return fmt.Errorf("%w: gravity intervals must be positive", ErrInvalidConfig)
	case c.MinInterval > c.BaseInterval:
		return fmt.Errorf("%w: min interval %s exceeds base interval %s", ErrInvalidConfig, c.MinInterval, c.BaseInterval)
	case c.LevelStep < 0:
		return fmt.Errorf("%w: negative level step %s", ErrInvalidConfig, c.LevelStep)
	case c.LinesPerLevel <= 0:
		return fmt.Errorf("%w: lines per level must be positive", ErrInvalidConfig)
	case c.ClearDuration <= 0 || c.FlashInterval <= 0:
		return fmt.Errorf("%w: clear animation timings must be positive", ErrInvalidConfig)
	case len(c.ScoreTable) == 0:
		return fmt.Errorf("%w: empty score table", ErrInvalidConfig)
	}

	for i, points := range c.ScoreTable {
		if points < 0 {
			return fmt.Errorf("%w: negative award %d for %d rows", ErrInvalidConfig, points, i+1)
		}
	}

	for _, t := range PieceTypes {
		shape, ok := c.Shapes[t]
		if !ok {
			return fmt.Errorf("%w: missing shape for %s", ErrInvalidConfig, t)
		}
		if err := c.validateShape(t, shape); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) validateShape(t PieceType, shape Shape) error {
	size := shape.Size()
	if size == 0 {
		return fmt.Errorf("%w: empty shape for %s", ErrInvalidConfig, t)
	}
	for _, row := range shape {
		if len(row) != size {
			return fmt.Errorf("%w: shape for %s is not square", ErrInvalidConfig, t)
		}
	}
	if size > c.Cols || size > c.Rows {
		return fmt.Errorf("%w: shape for %s (%d) does not fit a %dx%d grid", ErrInvalidConfig, t, size, c.Cols, c.Rows)
	}
	if _, _, _, _, ok := shape.Bounds(); !ok {
		return fmt.Errorf("%w: shape for %s has no cells", ErrInvalidConfig, t)
	}
	return nil
}
