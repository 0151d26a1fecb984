package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	RunID    uuid.UUID
	Duration time.Duration
	Step     time.Duration
	Seed     uint64
	Rows     int
	Cols     int

	// Results
	Games         []GameResult
	TotalTicks    int64
	TotalTime     time.Duration
	TickTime      Stats
	Clears        [5]int
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// GameResult summarizes one finished or abandoned game.
type GameResult struct {
	ID       uuid.UUID
	Score    int
	Lines    int
	Level    int
	Pieces   int
	Played   time.Duration
	GameOver bool
}

type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int64
	total time.Duration
}

// Add records one sample. Samples are folded in as they arrive so long runs
// use constant memory.
func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.total += d
	s.Count++
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.total / time.Duration(s.Count)
}

// AddGame records the state of g as one result.
func (r *Report) AddGame(g *tetris.Game, played time.Duration) {
	stats := g.Stats()
	r.Games = append(r.Games, GameResult{
		ID:       uuid.New(),
		Score:    g.Score(),
		Lines:    g.Lines(),
		Level:    g.Level(),
		Pieces:   stats.TotalPieces(),
		Played:   played,
		GameOver: g.Status() == tetris.StatusGameOver,
	})
	for n := 1; n < len(r.Clears); n++ {
		r.Clears[n] += stats.Clears(n)
	}
}

// Best returns the highest scoring game.
func (r *Report) Best() (GameResult, bool) {
	if len(r.Games) == 0 {
		return GameResult{}, false
	}
	best := r.Games[0]
	for _, g := range r.Games[1:] {
		if g.Score > best.Score {
			best = g
		}
	}
	return best, true
}

// MeanScore returns the average score over all games.
func (r *Report) MeanScore() float64 {
	if len(r.Games) == 0 {
		return 0
	}
	var total int
	for _, g := range r.Games {
		total += g.Score
	}
	return float64(total) / float64(len(r.Games))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Simulation Report

## Run Configuration
- **Run ID:** {{.RunID}}
- **Run Duration:** {{.Duration}}
- **Simulated Step:** {{.Step}}
- **Seed:** {{.Seed}}
- **Board:** {{.Cols}}x{{.Rows}}

## Games
- **Games Played:** {{len .Games}}
- **Mean Score:** {{printf "%.1f" .MeanScore}}
{{- with $best := best .}}
- **Best Score:** {{$best.Score}} ({{$best.Lines}} lines, level {{inc $best.Level}})
{{- end}}
- **Clears:** single {{index .Clears 1}}, double {{index .Clears 2}}, triple {{index .Clears 3}}, tetris {{index .Clears 4}}

| Game | Score | Lines | Level | Pieces | Played | Ended |
|------|-------|-------|-------|--------|--------|-------|
{{- range .Games}}
| {{short .ID}} | {{.Score}} | {{.Lines}} | {{inc .Level}} | {{.Pieces}} | {{.Played}} | {{if .GameOver}}game over{{else}}cut off{{end}} |
{{- end}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"inc": func(v int) int {
			return v + 1
		},
		"short": func(id uuid.UUID) string {
			return id.String()[:8]
		},
		"best": func(r *Report) *GameResult {
			if best, ok := r.Best(); ok {
				return &best
			}
			return nil
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
