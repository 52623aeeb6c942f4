package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.record(event)
}

func (l *MemoryLogger) record(event GameEvent) GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
	return event
}

func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]GameEvent(nil), l.events...)
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	events := l.Events()
	if len(events) == 0 {
		return GameEvent{}
	}
	return events[len(events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	event = l.MemoryLogger.record(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// MultiLogger fans events out to several loggers. Events() reports the
// first logger's view.
type MultiLogger []EventLogger

func (m MultiLogger) Log(event GameEvent) {
	for _, l := range m {
		l.Log(event)
	}
}

func (m MultiLogger) Events() []GameEvent {
	if len(m) == 0 {
		return nil
	}
	return m[0].Events()
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-2d %-12s| %s", e.Turn, e.Type, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewDealEvent(firstPlayer int, seed0, seed1 string) GameEvent {
	return GameEvent{
		Turn:    1,
		Player:  firstPlayer,
		Type:    EventDeal,
		Details: fmt.Sprintf("Cards dealt. Opening field P1 %s, P2 %s. %s moves first", seed0, seed1, playerName(firstPlayer)),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

// NewPlayEvent records a resolved card. typ is one of the card events
// (EventPlayNumber, EventRescue, EventBolt, EventMirror, EventBlast, EventForce).
func NewPlayEvent(turn int, player int, typ EventType, card string, narration string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    typ,
		Card:    card,
		Details: narration,
	}
}

func NewRedealEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventRedeal,
		Details: fmt.Sprintf("Totals tied: fields cleared and redrawn, %s to move", playerName(player)),
	}
}

func NewRejectedEvent(turn int, player int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventRejected,
		Details: fmt.Sprintf("%s's move was rejected: %s", playerName(player), reason),
	}
}

func NewWinEvent(turn int, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins (%s)", playerName(winner), reason),
	}
}

func NewForfeitEvent(turn int, player int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventForfeit,
		Details: fmt.Sprintf("%s forfeits (%s)", playerName(player), reason),
	}
}

func NewTurnLimitEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventTurnLimit,
		Details: fmt.Sprintf("Turn limit reached (%d turns)", turn),
	}
}

func NewRemoteUpdateEvent(turn int, player int, narration string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventRemoteUpdate,
		Details: narration,
	}
}
