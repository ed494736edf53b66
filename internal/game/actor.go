package game

import (
	"cmp"
	"context"
	"fmt"
	"slices"
)

// --- Action descriptors ---

type Phase1Action int

const (
	ActionPlay Phase1Action = iota
	ActionDiscard
)

func (a Phase1Action) String() string {
	if a == ActionPlay {
		return "Play"
	}
	return "Discard"
}

type NightmareAction int

const (
	ByKey NightmareAction = iota
	ByDoor
	ByHand
	ByDeck
)

func (a NightmareAction) String() string {
	switch a {
	case ByKey:
		return "ByKey"
	case ByDoor:
		return "ByDoor"
	case ByHand:
		return "ByHand"
	case ByDeck:
		return "ByDeck"
	default:
		return "Unknown"
	}
}

// Phase1Choice plays or discards the hand card at Index.
type Phase1Choice struct {
	Action Phase1Action
	Index  int
}

func (c Phase1Choice) String() string {
	return fmt.Sprintf("%s #%d", c.Action, c.Index)
}

// Compare orders choices by action, then index.
func (c Phase1Choice) Compare(o Phase1Choice) int {
	if r := cmp.Compare(c.Action, o.Action); r != 0 {
		return r
	}
	return cmp.Compare(c.Index, o.Index)
}

// KeyReaction answers a Key discard: the drawn card at Discard goes to the
// discard pile and the rest return to the deck so that Keep[0] ends on top.
type KeyReaction struct {
	Discard int
	Keep    []int
}

func (r KeyReaction) String() string {
	return fmt.Sprintf("discard #%d keep %v", r.Discard, r.Keep)
}

// Compare orders reactions by discard index, then keep order lexicographically.
func (r KeyReaction) Compare(o KeyReaction) int {
	if c := cmp.Compare(r.Discard, o.Discard); c != 0 {
		return c
	}
	return slices.Compare(r.Keep, o.Keep)
}

// NightmareChoice resolves a drawn Nightmare. Index names a hand card for
// ByKey and an opened door for ByDoor; it is ignored otherwise.
type NightmareChoice struct {
	Action NightmareAction
	Index  int
}

func (c NightmareChoice) String() string {
	switch c.Action {
	case ByKey, ByDoor:
		return fmt.Sprintf("%s #%d", c.Action, c.Index)
	default:
		return c.Action.String()
	}
}

// Compare orders choices by action, then index.
func (c NightmareChoice) Compare(o NightmareChoice) int {
	if r := cmp.Compare(c.Action, o.Action); r != 0 {
		return r
	}
	return cmp.Compare(c.Index, o.Index)
}

// --- Roles ---

// Actor makes every decision of a game. Implementations may be scripted,
// evaluation based or remote.
type Actor interface {
	// Phase1Action picks a hand card to play or discard.
	Phase1Action(ctx context.Context, c *Content) (Phase1Choice, error)

	// KeyDiscardReact decides what to do with the five cards drawn after a
	// Key was discarded. The drawn cards are not in any zone of c.
	KeyDiscardReact(ctx context.Context, c *Content, drawn []Card) (KeyReaction, error)

	// OpenDoor decides whether to spend a matching Key on a drawn Door.
	// It is only asked when the hand holds such a Key.
	OpenDoor(ctx context.Context, c *Content, door Card) (bool, error)

	// NightmareAction picks how to resolve a drawn Nightmare.
	NightmareAction(ctx context.Context, c *Content) (NightmareChoice, error)
}

// Observer is told the final state and outcome of a game.
type Observer interface {
	OnEnd(c *Content, outcome Outcome)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(c *Content, outcome Outcome)

func (f ObserverFunc) OnEnd(c *Content, outcome Outcome) { f(c, outcome) }
