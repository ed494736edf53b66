package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventSetup EventType = iota
	EventNewRound
	EventPhaseChange
	EventDraw
	EventPlay
	EventPlayRejected
	EventDiscard
	EventKeyReaction
	EventDoorClaimed
	EventDoorOpened
	EventDoorToLimbo
	EventNightmare
	EventLimbo
	EventShuffle
	EventWin
	EventLose
)

func (e EventType) String() string {
	switch e {
	case EventSetup:
		return "Setup"
	case EventNewRound:
		return "NewRound"
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraw:
		return "Draw"
	case EventPlay:
		return "Play"
	case EventPlayRejected:
		return "PlayRejected"
	case EventDiscard:
		return "Discard"
	case EventKeyReaction:
		return "KeyReaction"
	case EventDoorClaimed:
		return "DoorClaimed"
	case EventDoorOpened:
		return "DoorOpened"
	case EventDoorToLimbo:
		return "DoorToLimbo"
	case EventNightmare:
		return "Nightmare"
	case EventLimbo:
		return "Limbo"
	case EventShuffle:
		return "Shuffle"
	case EventWin:
		return "Win"
	case EventLose:
		return "Lose"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (0 during setup)
	Phase   string    // current phase name (e.g. "Phase 2")
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
