package tetris

// EventKind identifies what happened in the game.
type EventKind uint8

const (
	EventStarted EventKind = iota + 1
	EventPaused
	EventResumed
	EventReset
	EventSpawned
	EventMoved
	EventRotated
	EventSoftDropped
	EventHardDropped
	EventHeld
	EventLocked
	EventLinesDetected
	EventLinesCleared
	EventLevelUp
	EventGameOver
)

var eventNames = map[EventKind]string{
	EventStarted:       "started",
	EventPaused:        "paused",
	EventResumed:       "resumed",
	EventReset:         "reset",
	EventSpawned:       "spawned",
	EventMoved:         "moved",
	EventRotated:       "rotated",
	EventSoftDropped:   "soft_dropped",
	EventHardDropped:   "hard_dropped",
	EventHeld:          "held",
	EventLocked:        "locked",
	EventLinesDetected: "lines_detected",
	EventLinesCleared:  "lines_cleared",
	EventLevelUp:       "level_up",
	EventGameOver:      "game_over",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a notification emitted by the game. Fields not relevant to the
// kind are left zero. Lines is always the cumulative cleared line count.
type Event struct {
	Kind   EventKind
	Piece  PieceType
	Rows   []int
	Points int
	Score  int
	Level  int
	Lines  int

	// Distance is how many rows a hard drop moved the piece.
	Distance int
}

// Observer receives events after the game call that produced them returns.
// Observers must not call back into the game.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Commands buffers events produced during a game call so observers never
// see a half-updated state.
type Commands struct {
	events []Event
}

func newCommands() *Commands {
	return &Commands{}
}

// Emit queues an event for delivery.
func (c *Commands) Emit(e Event) {
	c.events = append(c.events, e)
}

// Pending returns the number of queued events.
func (c *Commands) Pending() int {
	return len(c.events)
}

// Flush delivers queued events to each observer in order and resets the
// buffer.
func (c *Commands) Flush(observers []Observer) {
	for _, e := range c.events {
		for _, o := range observers {
			o.Observe(e)
		}
	}
	c.Discard()
}

// Discard drops everything queued without delivering it.
func (c *Commands) Discard() {
	clear(c.events)
	c.events = c.events[:0]
}
