package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
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
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- NopLogger: drops everything (batch experiments) ---

type NopLogger struct{}

func (NopLogger) Log(GameEvent) {}

func (NopLogger) Events() []GameEvent { return nil }

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 8 chars for alignment
	for len(phase) < 8 {
		phase += " "
	}

	return fmt.Sprintf("R%-3d %s| %s", e.Round, phase, e.Details)
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

func NewSetupEvent(handSize, limbo int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Type:    EventSetup,
		Details: fmt.Sprintf("Dealt %d cards, %d set aside to limbo", handSize, limbo),
	}
}

func NewRoundEvent(round int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Phase 1",
		Type:    EventNewRound,
		Details: fmt.Sprintf("=== Round %d ===", round),
	}
}

func NewPhaseChangeEvent(round int, phase string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewDrawEvent(round int, phase string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("draws %s", cardName),
	}
}

func NewPlayEvent(round int, cardName string, combo int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Phase 1",
		Type:    EventPlay,
		Card:    cardName,
		Details: fmt.Sprintf("explores %s (combo %d)", cardName, combo),
	}
}

func NewPlayRejectedEvent(round int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Phase 1",
		Type:    EventPlayRejected,
		Card:    cardName,
		Details: fmt.Sprintf("cannot explore %s on the same kind, returned to hand", cardName),
	}
}

func NewDiscardEvent(round int, phase string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("discards %s", cardName),
	}
}

func NewKeyReactionEvent(round int, discarded string, kept []string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Phase 1",
		Type:    EventKeyReaction,
		Card:    discarded,
		Details: fmt.Sprintf("prophecy: discards %s, returns %s", discarded, strings.Join(kept, ", ")),
	}
}

func NewDoorClaimedEvent(round int, cardName string, opened int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   "Phase 1",
		Type:    EventDoorClaimed,
		Card:    cardName,
		Details: fmt.Sprintf("combo claims %s (%d opened)", cardName, opened),
	}
}

func NewDoorOpenedEvent(round int, phase string, cardName string, opened int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventDoorOpened,
		Card:    cardName,
		Details: fmt.Sprintf("opens %s with a key (%d opened)", cardName, opened),
	}
}

func NewDoorToLimboEvent(round int, phase string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventDoorToLimbo,
		Card:    cardName,
		Details: fmt.Sprintf("%s goes to limbo", cardName),
	}
}

func NewNightmareEvent(round int, phase string, resolution string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventNightmare,
		Card:    "Nightmare",
		Details: fmt.Sprintf("Nightmare resolved %s", resolution),
	}
}

func NewLimboEvent(round int, phase string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventLimbo,
		Card:    cardName,
		Details: fmt.Sprintf("%s is set aside to limbo", cardName),
	}
}

func NewShuffleEvent(round int, phase string, cards int) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventShuffle,
		Details: fmt.Sprintf("limbo shuffled back, deck has %d cards", cards),
	}
}

func NewWinEvent(round int, phase string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventWin,
		Details: "all eight doors opened, the dreamer escapes",
	}
}

func NewLoseEvent(round int, phase string, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Phase:   phase,
		Type:    EventLose,
		Details: fmt.Sprintf("lose (%s)", reason),
	}
}
