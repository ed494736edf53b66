package net

import (
	"fmt"

	"github.com/peterkuimelis/onirim/internal/game"
	"github.com/peterkuimelis/onirim/internal/log"
)

// Message types for the JSON-lines protocol over TCP.
const (
	MsgJoin            = "join"
	MsgNotify          = "notify"
	MsgPhase1Action    = "phase1_action"
	MsgKeyDiscardReact = "key_discard_react"
	MsgOpenDoor        = "open_door"
	MsgNightmareAction = "nightmare_action"
	MsgGameOver        = "game_over"
	MsgError           = "error"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages. Every
// decision request carries the full game state.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For decision requests
	State *ContentView `json:"state,omitempty"`

	// For "key_discard_react"
	Drawn []CardView `json:"drawn,omitempty"`

	// For "open_door"
	Door *CardView `json:"door,omitempty"`

	// For "game_over"
	Outcome string `json:"outcome,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Round   int    `json:"round"`
	Phase   string `json:"phase"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// NewEventView converts a logged game event.
func NewEventView(e log.GameEvent) *EventView {
	return &EventView{
		Round:   e.Round,
		Phase:   e.Phase,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// CardView is a card on the wire. Nightmares carry the color "Void".
type CardView struct {
	Color string `json:"color"`
	Kind  string `json:"kind"`
}

func NewCardView(c game.Card) CardView {
	return CardView{Color: c.Color.String(), Kind: c.Kind.String()}
}

// Card parses the view back into a card.
func (v CardView) Card() (game.Card, error) {
	var c game.Card
	if err := c.Kind.UnmarshalText([]byte(v.Kind)); err != nil {
		return game.Card{}, err
	}
	if c.Kind == game.KindNightmare {
		return game.Nightmare(), nil
	}
	if err := c.Color.UnmarshalText([]byte(v.Color)); err != nil {
		return game.Card{}, err
	}
	if c.Color == game.Void {
		return game.Card{}, fmt.Errorf("%s without a color", c.Kind)
	}
	return c, nil
}

func cardViews(cards []game.Card) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = NewCardView(c)
	}
	return views
}

func parseCards(views []CardView) ([]game.Card, error) {
	cards := make([]game.Card, len(views))
	for i, v := range views {
		c, err := v.Card()
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards[i] = c
	}
	return cards, nil
}

// ContentView is the complete game state: the game has a single player
// and nothing is hidden from the actor.
type ContentView struct {
	Undrawn   []CardView `json:"undrawn"` // top of the deck is the last element
	Hand      []CardView `json:"hand"`
	Explored  []CardView `json:"explored"`
	Opened    []CardView `json:"opened"`
	Limbo     []CardView `json:"limbo"`
	Discarded []CardView `json:"discarded"`
}

// BuildContentView snapshots every zone of c.
func BuildContentView(c *game.Content) *ContentView {
	return &ContentView{
		Undrawn:   cardViews(c.Undrawn),
		Hand:      cardViews(c.Hand),
		Explored:  cardViews(c.Explored),
		Opened:    cardViews(c.Opened),
		Limbo:     cardViews(c.Limbo),
		Discarded: cardViews(c.Discarded),
	}
}

// Content rebuilds a game state from the view.
func (v *ContentView) Content() (*game.Content, error) {
	c := &game.Content{}
	zones := []struct {
		name  string
		views []CardView
		dst   *[]game.Card
	}{
		{"undrawn", v.Undrawn, &c.Undrawn},
		{"hand", v.Hand, &c.Hand},
		{"explored", v.Explored, &c.Explored},
		{"opened", v.Opened, &c.Opened},
		{"limbo", v.Limbo, &c.Limbo},
		{"discarded", v.Discarded, &c.Discarded},
	}
	for _, z := range zones {
		cards, err := parseCards(z.views)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", z.name, err)
		}
		*z.dst = cards
	}
	return c, nil
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "phase1_action": "play" or "discard".
	// For "nightmare_action": "by_key", "by_door", "by_hand" or "by_deck".
	Action string `json:"action,omitempty"`
	Index  int    `json:"index,omitempty"`

	// For "key_discard_react"
	Discard int   `json:"discard,omitempty"`
	Keep    []int `json:"keep,omitempty"`

	// For "open_door"
	Answer bool `json:"answer,omitempty"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

var nightmareActions = map[string]game.NightmareAction{
	"by_key":  game.ByKey,
	"by_door": game.ByDoor,
	"by_hand": game.ByHand,
	"by_deck": game.ByDeck,
}

// ParseNightmareAction maps a wire name such as "by_key" to its action.
func ParseNightmareAction(s string) (game.NightmareAction, error) {
	a, ok := nightmareActions[s]
	if !ok {
		return 0, fmt.Errorf("unknown nightmare action %q", s)
	}
	return a, nil
}

// NightmareActionName is the inverse of ParseNightmareAction.
func NightmareActionName(a game.NightmareAction) string {
	for name, v := range nightmareActions {
		if v == a {
			return name
		}
	}
	return "unknown"
}

// ParsePhase1Action maps "play" or "discard" to its action.
func ParsePhase1Action(s string) (game.Phase1Action, error) {
	switch s {
	case "play":
		return game.ActionPlay, nil
	case "discard":
		return game.ActionDiscard, nil
	default:
		return 0, fmt.Errorf("unknown phase 1 action %q", s)
	}
}

func phase1ActionName(a game.Phase1Action) string {
	if a == game.ActionPlay {
		return "play"
	}
	return "discard"
}
