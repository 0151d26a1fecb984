package tetris

import "time"

// ClearPoints returns the award for clearing n rows at once at the given
// level. Counts above the table size use the last entry.
func ClearPoints(table []int, n, level int) int {
	if n <= 0 || len(table) == 0 {
		return 0
	}
	n = min(n, len(table))
	return table[n-1] * (level + 1)
}

// GravityInterval derives the time between automatic drops for a level.
func GravityInterval(cfg *Config, level int) time.Duration {
	return max(cfg.MinInterval, cfg.BaseInterval-time.Duration(level)*cfg.LevelStep)
}

// Scoring tracks score, cleared lines and the derived level and gravity.
// Score and line count only ever grow.
type Scoring struct {
	cfg      *Config
	score    int
	lines    int
	level    int
	interval time.Duration
}

func newScoring(cfg *Config) Scoring {
	return Scoring{
		cfg:      cfg,
		interval: GravityInterval(cfg, 0),
	}
}

func (s *Scoring) Score() int { return s.score }
func (s *Scoring) Lines() int { return s.lines }
func (s *Scoring) Level() int { return s.level }
func (s *Scoring) Interval() time.Duration { return s.interval }

// SoftDrop credits one player-driven row of descent and returns the points.
func (s *Scoring) SoftDrop() int {
	points := s.level + 1
	s.score += points
	return points
}

// AwardClear credits n simultaneously cleared rows at the current level,
// then updates the line count and level. It reports the points gained and
// whether the level went up.
func (s *Scoring) AwardClear(n int) (points int, leveledUp bool) {
	if n <= 0 {
		return 0, false
	}

	points = ClearPoints(s.cfg.ScoreTable, n, s.level)
	s.score += points
	s.lines += n

	level := s.lines / s.cfg.LinesPerLevel
	if level != s.level {
		leveledUp = level > s.level
		s.level = level
		s.interval = GravityInterval(s.cfg, level)
	}

	return points, leveledUp
}
