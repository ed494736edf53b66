package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Color int

const (
	Red Color = iota
	Blue
	Green
	Yellow
	Void // Nightmares have no color
)

// Colors returns the four real card colors in table order.
func Colors() []Color {
	return []Color{Red, Blue, Green, Yellow}
}

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Yellow:
		return "Yellow"
	case Void:
		return "Void"
	default:
		return "Unknown"
	}
}

// UnmarshalText parses a color name case-insensitively (used by deck YAML).
func (c *Color) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "red":
		*c = Red
	case "blue":
		*c = Blue
	case "green":
		*c = Green
	case "yellow":
		*c = Yellow
	case "void", "":
		*c = Void
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

type Kind int

const (
	KindSun Kind = iota
	KindMoon
	KindKey
	KindDoor
	KindNightmare
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "Sun"
	case KindMoon:
		return "Moon"
	case KindKey:
		return "Key"
	case KindDoor:
		return "Door"
	case KindNightmare:
		return "Nightmare"
	default:
		return "Unknown"
	}
}

// UnmarshalText parses a kind name case-insensitively (used by deck YAML).
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "sun":
		*k = KindSun
	case "moon":
		*k = KindMoon
	case "key":
		*k = KindKey
	case "door":
		*k = KindDoor
	case "nightmare":
		*k = KindNightmare
	default:
		return fmt.Errorf("unknown kind %q", text)
	}
	return nil
}

const (
	numColors = int(Void) + 1
	numKinds  = int(KindNightmare) + 1
)

// --- Card ---

// Card is an immutable card identity. Cards are plain values: copying one
// never shares state with the original.
type Card struct {
	Color Color
	Kind  Kind
}

func Sun(c Color) Card  { return Card{Color: c, Kind: KindSun} }
func Moon(c Color) Card { return Card{Color: c, Kind: KindMoon} }
func Key(c Color) Card  { return Card{Color: c, Kind: KindKey} }
func Door(c Color) Card { return Card{Color: c, Kind: KindDoor} }

// Nightmare returns the colorless Nightmare card.
func Nightmare() Card { return Card{Color: Void, Kind: KindNightmare} }

// IsLocation reports whether the card is a Sun, Moon or Key.
func (c Card) IsLocation() bool {
	return c.Kind == KindSun || c.Kind == KindMoon || c.Kind == KindKey
}

func (c Card) String() string {
	if c.Kind == KindNightmare {
		return "Nightmare"
	}
	return fmt.Sprintf("%s %s", c.Color, c.Kind)
}

// --- Placement ---

// Placement names the zone a card hook routes its card to.
type Placement int

const (
	PlaceHand Placement = iota
	PlaceExplored
	PlaceDiscarded
	PlaceLimbo
	PlaceOpened
)

func (p Placement) String() string {
	switch p {
	case PlaceHand:
		return "Hand"
	case PlaceExplored:
		return "Explored"
	case PlaceDiscarded:
		return "Discarded"
	case PlaceLimbo:
		return "Limbo"
	case PlaceOpened:
		return "Opened"
	default:
		return "Unknown"
	}
}

// --- Outcome ---

// Outcome is the terminal result of a game. OutcomeNone means still running.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "Win"
	case OutcomeLose:
		return "Lose"
	default:
		return "None"
	}
}

// Terminal reports whether the outcome ends the game.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}
