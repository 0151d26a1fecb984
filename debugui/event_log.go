package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// EventEntry is one logged game event.
type EventEntry struct {
	At    time.Time
	Event tetris.Event
}

// EventLog is a tetris.Observer that keeps the most recent events for
// display. Moves and rotations are dropped unless Verbose is set.
type EventLog struct {
	entries []EventEntry
	next    int
	full    bool
	now     func() time.Time

	Verbose bool
}

func NewEventLog(capacity int) *EventLog {
	return &EventLog{
		entries: make([]EventEntry, max(capacity, 1)),
		now:     time.Now,
	}
}

func (l *EventLog) Observe(e tetris.Event) {
	if !l.Verbose {
		switch e.Kind {
		case tetris.EventMoved, tetris.EventRotated, tetris.EventSoftDropped:
			return
		}
	}

	l.entries[l.next] = EventEntry{At: l.now(), Event: e}
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

// Entries returns the logged events, newest first.
func (l *EventLog) Entries() []EventEntry {
	n := l.next
	if l.full {
		n = len(l.entries)
	}

	out := make([]EventEntry, 0, n)
	for i := range n {
		idx := (l.next - 1 - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}

// Clear drops all entries.
func (l *EventLog) Clear() {
	clear(l.entries)
	l.next = 0
	l.full = false
}

func describe(e tetris.Event) string {
	switch e.Kind {
	case tetris.EventSpawned, tetris.EventHeld, tetris.EventLocked:
		return e.Piece.String()
	case tetris.EventLinesDetected:
		return fmt.Sprintf("rows %v +%d", e.Rows, e.Points)
	case tetris.EventLinesCleared:
		return fmt.Sprintf("total %d", e.Lines)
	case tetris.EventLevelUp:
		return fmt.Sprintf("level %d", e.Level+1)
	case tetris.EventHardDropped:
		return fmt.Sprintf("%s fell %d", e.Piece, e.Distance)
	case tetris.EventGameOver:
		return fmt.Sprintf("score %d", e.Score)
	}
	return ""
}

func (l *EventLog) Render() {
	if !imgui.BeginV("Event Log", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Checkbox("Verbose", &l.Verbose)
	imgui.SameLine()
	if imgui.Button("Clear") {
		l.Clear()
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EventTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Time")
		imgui.TableSetupColumn("Event")
		imgui.TableSetupColumn("Detail")
		imgui.TableHeadersRow()

		for _, entry := range l.Entries() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(entry.At.Format("15:04:05.000"))
			imgui.TableNextColumn()
			imgui.Text(entry.Event.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(describe(entry.Event))
		}

		imgui.EndTable()
	}

	imgui.End()
}
