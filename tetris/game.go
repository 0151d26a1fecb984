package tetris

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
)

// Status is the top-level lifecycle state. Exactly one is active at a time.
type Status uint8

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusPaused
	StatusClearing
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not-started"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusClearing:
		return "clearing"
	case StatusGameOver:
		return "game-over"
	}
	return "unknown"
}

// Action is a logical player input. Key handling lives in the clients; the
// game only ever sees these.
type Action uint8

const (
	MoveLeft Action = iota + 1
	MoveRight
	SoftDrop
	HardDrop
	RotateCW
	RotateCCW
	Hold
)

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "move-left"
	case MoveRight:
		return "move-right"
	case SoftDrop:
		return "soft-drop"
	case HardDrop:
		return "hard-drop"
	case RotateCW:
		return "rotate-cw"
	case RotateCCW:
		return "rotate-ccw"
	case Hold:
		return "hold"
	}
	return "unknown"
}

// Game owns the complete state of one play session. All mutation goes
// through its methods. A Game is not safe for concurrent use; drive it from
// a single goroutine, for example with a Runner.
type Game struct {
	cfg    Config
	logger *log.Logger
	rng    *rand.Rand

	grid      *Grid
	queue     *Queue
	active    Piece
	hasActive bool
	held      PieceType
	holdUsed  bool

	scoring     Scoring
	clear       ClearAnimation
	dropCounter time.Duration
	status      Status
	epoch       uint64
	timeline    uint64

	stats     *Stats
	scheduler *Scheduler
	commands  *Commands
	observers []Observer
}

// Option configures a Game at construction.
type Option func(*Game)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithRand sets the random source used to shuffle bags.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// WithSeed is shorthand for WithRand with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithObserver subscribes o to game events.
func WithObserver(o Observer) Option {
	return func(g *Game) {
		g.observers = append(g.observers, o)
	}
}

// NewGame validates cfg and returns a game in StatusNotStarted.
func NewGame(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		logger:   log.New(io.Discard),
		stats:    newStats(),
		commands: newCommands(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.scheduler = NewScheduler(g)
	g.scheduler.Register(&ClearSystem{})
	g.scheduler.Register(&GravitySystem{})

	g.queue = NewQueue(cfg.Preview, g.rng)
	g.init()
	return g, nil
}

// Subscribe adds an observer after construction.
func (g *Game) Subscribe(o Observer) {
	g.observers = append(g.observers, o)
}

func (g *Game) init() {
	if g.grid == nil {
		g.grid = NewGrid(g.cfg.Rows, g.cfg.Cols)
	} else {
		g.grid.Reset()
	}
	g.queue.Clear()
	g.active = Piece{}
	g.hasActive = false
	g.held = Empty
	g.holdUsed = false
	g.scoring = newScoring(&g.cfg)
	g.clear = ClearAnimation{}
	g.dropCounter = 0
	g.stats.reset()
}

func (g *Game) flush() {
	if g.commands.Pending() == 0 {
		return
	}
	g.commands.Flush(g.observers)
}

// Start begins a fresh game. It is allowed from StatusNotStarted and
// StatusGameOver and ignored otherwise.
func (g *Game) Start() {
	if g.status != StatusNotStarted && g.status != StatusGameOver {
		return
	}
	defer g.flush()

	g.init()
	g.queue.Refill()
	g.timeline++
	g.status = StatusRunning
	g.logger.Info("game started", "rows", g.cfg.Rows, "cols", g.cfg.Cols)
	g.commands.Emit(Event{Kind: EventStarted})
	g.spawnNext()
}

// Pause suspends a running game. Pausing during a line clear is refused.
func (g *Game) Pause() {
	if g.status != StatusRunning {
		return
	}
	defer g.flush()

	g.status = StatusPaused
	g.logger.Debug("game paused", "score", g.scoring.Score())
	g.commands.Emit(Event{Kind: EventPaused})
}

// Resume continues a paused game. The gravity counter restarts from zero.
func (g *Game) Resume() {
	if g.status != StatusPaused {
		return
	}
	defer g.flush()

	g.status = StatusRunning
	g.dropCounter = 0
	g.timeline++
	g.logger.Debug("game resumed")
	g.commands.Emit(Event{Kind: EventResumed})
}

// TogglePause pauses a running game or resumes a paused one.
func (g *Game) TogglePause() {
	switch g.status {
	case StatusRunning:
		g.Pause()
	case StatusPaused:
		g.Resume()
	}
}

// Reset returns to StatusNotStarted from any state and reinitializes every
// entity. Pending clear timers and undelivered events are discarded, and
// Epoch advances so stale ticks can be recognized.
func (g *Game) Reset() {
	defer g.flush()

	g.epoch++
	g.timeline++
	g.commands.Discard()
	g.init()
	g.status = StatusNotStarted
	g.logger.Debug("game reset", "epoch", g.epoch)
	g.commands.Emit(Event{Kind: EventReset})
}

// Tick advances the simulation by dt. It does nothing unless the game is
// running or clearing lines.
func (g *Game) Tick(dt time.Duration) {
	if g.status != StatusRunning && g.status != StatusClearing {
		return
	}
	defer g.flush()

	g.scheduler.Once(dt)
}

// HandleInput applies a player action immediately. Actions are silently
// dropped unless the game is running.
func (g *Game) HandleInput(a Action) {
	if g.status != StatusRunning || !g.hasActive {
		return
	}
	defer g.flush()

	switch a {
	case MoveLeft:
		g.move(-1)
	case MoveRight:
		g.move(1)
	case SoftDrop:
		g.softDrop()
	case HardDrop:
		g.hardDrop()
	case RotateCW:
		g.rotate(1)
	case RotateCCW:
		g.rotate(-1)
	case Hold:
		g.hold()
	}
}

func (g *Game) move(dCol int) {
	if Collides(g.active, g.grid, 0, dCol) {
		return
	}
	g.active.Col += dCol
	g.commands.Emit(Event{Kind: EventMoved, Piece: g.active.Type})
}

func (g *Game) softDrop() {
	if Collides(g.active, g.grid, 1, 0) {
		g.lock()
		return
	}
	g.active.Row++
	points := g.scoring.SoftDrop()
	g.commands.Emit(Event{Kind: EventSoftDropped, Piece: g.active.Type, Points: points, Score: g.scoring.Score()})
}

func (g *Game) hardDrop() {
	landing := LandingRow(g.active, g.grid)
	distance := landing - g.active.Row
	g.active.Row = landing
	g.stats.HardDrops++
	g.commands.Emit(Event{Kind: EventHardDropped, Piece: g.active.Type, Distance: distance})
	g.lock()
}

func (g *Game) rotate(dir int) {
	rotated, ok := RotateWithKicks(g.active, g.grid, dir)
	if !ok {
		return
	}
	g.active = rotated
	g.commands.Emit(Event{Kind: EventRotated, Piece: g.active.Type})
}

func (g *Game) hold() {
	if g.holdUsed {
		return
	}

	current := g.active.Type
	g.stats.Holds++
	g.hasActive = false

	if g.held == Empty {
		g.held = current
		g.commands.Emit(Event{Kind: EventHeld, Piece: current})
		if !g.spawnNext() {
			return
		}
	} else {
		swapped := g.held
		g.held = current
		g.commands.Emit(Event{Kind: EventHeld, Piece: current})
		if !g.spawn(swapped) {
			return
		}
	}

	g.holdUsed = true
}

// lock merges the active piece and either spawns the next one or enters
// the clearing phase.
func (g *Game) lock() {
	locked := g.active
	g.grid.Merge(locked)
	g.active = Piece{}
	g.hasActive = false
	g.stats.Locks++
	g.commands.Emit(Event{Kind: EventLocked, Piece: locked.Type})

	rows := g.grid.FullRows()
	if len(rows) == 0 {
		g.spawnNext()
		return
	}

	level := g.scoring.Level()
	points, leveledUp := g.scoring.AwardClear(len(rows))
	g.stats.recordClear(len(rows))
	g.commands.Emit(Event{
		Kind:   EventLinesDetected,
		Rows:   rows,
		Points: points,
		Score:  g.scoring.Score(),
		Level:  level,
		Lines:  g.scoring.Lines(),
	})
	if leveledUp {
		g.logger.Info("level up", "level", g.scoring.Level(), "interval", g.scoring.Interval())
		g.commands.Emit(Event{Kind: EventLevelUp, Level: g.scoring.Level()})
	}

	g.clear = newClearAnimation(rows, g.cfg.ClearDuration, g.cfg.FlashInterval)
	g.status = StatusClearing
}

// finishClear compacts the grid and returns the removed rows. The caller
// emits EventLinesCleared and spawns the next piece.
func (g *Game) finishClear() []int {
	rows := g.clear.Rows
	g.grid.RemoveRows(rows)
	g.clear = ClearAnimation{}
	g.status = StatusRunning
	return rows
}

// spawnNext draws from the queue. A successful spawn re-arms hold.
func (g *Game) spawnNext() bool {
	if !g.spawn(g.queue.Next()) {
		return false
	}
	g.holdUsed = false
	return true
}

// spawn places a fresh piece of type t at its canonical position. A
// collision there ends the game.
func (g *Game) spawn(t PieceType) bool {
	shape := g.cfg.Shapes[t]
	p := Piece{
		Shape: shape.Clone(),
		Row:   0,
		Col:   (g.cfg.Cols - shape.Size()) / 2,
		Type:  t,
	}

	if Collides(p, g.grid, 0, 0) {
		g.gameOver(t)
		return false
	}

	g.active = p
	g.hasActive = true
	g.stats.recordSpawn(t)
	g.commands.Emit(Event{Kind: EventSpawned, Piece: t})
	return true
}

func (g *Game) gameOver(blocked PieceType) {
	g.status = StatusGameOver
	g.active = Piece{}
	g.hasActive = false
	g.logger.Info("game over", "score", g.scoring.Score(), "lines", g.scoring.Lines(), "level", g.scoring.Level())
	g.commands.Emit(Event{
		Kind:  EventGameOver,
		Piece: blocked,
		Score: g.scoring.Score(),
		Level: g.scoring.Level(),
		Lines: g.scoring.Lines(),
	})
}

// Config returns the configuration the game was created with.
func (g *Game) Config() Config { return g.cfg }

// Status returns the current lifecycle state.
func (g *Game) Status() Status { return g.status }

// Epoch increases on every Reset.
func (g *Game) Epoch() uint64 { return g.epoch }

// Timeline increases whenever game time restarts: on Start, Resume and
// Reset. A clock driving the game must not carry elapsed time across a
// change.
func (g *Game) Timeline() uint64 { return g.timeline }

// Grid returns the live grid. Callers must treat it as read-only.
func (g *Game) Grid() *Grid { return g.grid }

// Active returns the falling piece, if any.
func (g *Game) Active() (Piece, bool) {
	if !g.hasActive {
		return Piece{}, false
	}
	p := g.active
	p.Shape = p.Shape.Clone()
	return p, true
}

// GhostRow returns the landing row of the active piece.
func (g *Game) GhostRow() (int, bool) {
	if !g.hasActive {
		return 0, false
	}
	return LandingRow(g.active, g.grid), true
}

// Preview returns the next Config.Preview piece types.
func (g *Game) Preview() []PieceType { return g.queue.Peek(g.cfg.Preview) }

// Held returns the held piece type, or Empty.
func (g *Game) Held() PieceType { return g.held }

// HoldUsed reports whether hold was already used since the last spawn.
func (g *Game) HoldUsed() bool { return g.holdUsed }

func (g *Game) Score() int { return g.scoring.Score() }
func (g *Game) Lines() int { return g.scoring.Lines() }
func (g *Game) Level() int { return g.scoring.Level() }

// GravityInterval returns the current time between automatic drops.
func (g *Game) GravityInterval() time.Duration { return g.scoring.Interval() }

// Clearing returns a copy of the line-clear animation state.
func (g *Game) Clearing() ClearAnimation { return g.clear.clone() }

// Stats returns the live counters of the current game.
func (g *Game) Stats() *Stats { return g.stats }

// SchedulerStats returns per-system execution statistics.
func (g *Game) SchedulerStats() *SchedulerStats { return g.scheduler.GetStats() }
