package game

import (
	"math/rand"
	"slices"
)

const (
	HandSize     = 5
	DoorsToWin   = 8
	ReactionDraw = 5 // cards drawn by a Key discard or a Nightmare resolved by deck
)

type Zone int

const (
	ZoneUndrawn Zone = iota
	ZoneHand
	ZoneExplored
	ZoneOpened
	ZoneLimbo
	ZoneDiscarded
)

func (z Zone) String() string {
	switch z {
	case ZoneUndrawn:
		return "Undrawn"
	case ZoneHand:
		return "Hand"
	case ZoneExplored:
		return "Explored"
	case ZoneOpened:
		return "Opened"
	case ZoneLimbo:
		return "Limbo"
	case ZoneDiscarded:
		return "Discarded"
	default:
		return "Unknown"
	}
}

// Zones returns all six zones.
func Zones() []Zone {
	return []Zone{ZoneUndrawn, ZoneHand, ZoneExplored, ZoneOpened, ZoneLimbo, ZoneDiscarded}
}

// Content holds the complete state of a game: six disjoint zones.
type Content struct {
	Undrawn   []Card // top of the deck is the last element (draw from end)
	Hand      []Card
	Explored  []Card // top of the exploration line is the last element
	Opened    []Card
	Limbo     []Card
	Discarded []Card
}

// NewContent creates a fresh game state with every card undrawn.
func NewContent(undrawn []Card) *Content {
	deck := make([]Card, len(undrawn))
	copy(deck, undrawn)
	return &Content{Undrawn: deck}
}

// Clone returns a deep copy whose mutations never affect c.
func (c *Content) Clone() *Content {
	return &Content{
		Undrawn:   cloneCards(c.Undrawn),
		Hand:      cloneCards(c.Hand),
		Explored:  cloneCards(c.Explored),
		Opened:    cloneCards(c.Opened),
		Limbo:     cloneCards(c.Limbo),
		Discarded: cloneCards(c.Discarded),
	}
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// Cards returns the slice backing the given zone.
func (c *Content) Cards(z Zone) []Card {
	switch z {
	case ZoneUndrawn:
		return c.Undrawn
	case ZoneHand:
		return c.Hand
	case ZoneExplored:
		return c.Explored
	case ZoneOpened:
		return c.Opened
	case ZoneLimbo:
		return c.Limbo
	default:
		return c.Discarded
	}
}

// Total returns the number of cards across all zones.
func (c *Content) Total() int {
	return len(c.Undrawn) + len(c.Hand) + len(c.Explored) + len(c.Opened) + len(c.Limbo) + len(c.Discarded)
}

// Top returns the top card of the exploration line.
func (c *Content) Top() (Card, bool) {
	if len(c.Explored) == 0 {
		return Card{}, false
	}
	return c.Explored[len(c.Explored)-1], true
}

// Draw removes the top n cards of the deck in draw order: the first returned
// card is the former top. When fewer than n cards remain nothing is removed
// and ok is false.
func (c *Content) Draw(n int) ([]Card, bool) {
	if n > len(c.Undrawn) {
		return nil, false
	}
	at := len(c.Undrawn) - n
	drawn := cloneCards(c.Undrawn[at:])
	slices.Reverse(drawn)
	c.Undrawn = c.Undrawn[:at]
	return drawn, true
}

// DrawOne removes the top card of the deck.
func (c *Content) DrawOne() (Card, bool) {
	if len(c.Undrawn) == 0 {
		return Card{}, false
	}
	card := c.Undrawn[len(c.Undrawn)-1]
	c.Undrawn = c.Undrawn[:len(c.Undrawn)-1]
	return card, true
}

// PullDoor removes the first Door of the given color from the deck. Doors in
// limbo or anywhere else are never pulled.
func (c *Content) PullDoor(color Color) (Card, bool) {
	for i, card := range c.Undrawn {
		if card.Kind == KindDoor && card.Color == color {
			c.Undrawn = append(c.Undrawn[:i], c.Undrawn[i+1:]...)
			return card, true
		}
	}
	return Card{}, false
}

// TakeHand removes and returns the hand card at index i, keeping the order
// of the remaining cards.
func (c *Content) TakeHand(i int) Card {
	card := c.Hand[i]
	c.Hand = append(c.Hand[:i], c.Hand[i+1:]...)
	return card
}

// TakeOpened removes and returns the opened door at index i.
func (c *Content) TakeOpened(i int) Card {
	card := c.Opened[i]
	c.Opened = append(c.Opened[:i], c.Opened[i+1:]...)
	return card
}

// Put files a card into the zone named by the placement.
func (c *Content) Put(card Card, p Placement) {
	switch p {
	case PlaceHand:
		c.Hand = append(c.Hand, card)
	case PlaceExplored:
		c.Explored = append(c.Explored, card)
	case PlaceDiscarded:
		c.Discarded = append(c.Discarded, card)
	case PlaceLimbo:
		c.Limbo = append(c.Limbo, card)
	case PlaceOpened:
		c.Opened = append(c.Opened, card)
	}
}

// PutUndrawn places a card on top of the deck.
func (c *Content) PutUndrawn(card Card) {
	c.Undrawn = append(c.Undrawn, card)
}

// Undraw puts cards returned by Draw back on the deck in their drawn order.
func (c *Content) Undraw(drawn []Card) {
	for i := len(drawn) - 1; i >= 0; i-- {
		c.PutUndrawn(drawn[i])
	}
}

// DiscardHand moves the hand card at index i to the discard pile.
func (c *Content) DiscardHand(i int) {
	c.Discarded = append(c.Discarded, c.TakeHand(i))
}

// DiscardAllHand moves the whole hand to the discard pile.
func (c *Content) DiscardAllHand() {
	c.Discarded = append(c.Discarded, c.Hand...)
	c.Hand = c.Hand[:0]
}

// ReplenishHand draws until the hand holds HandSize cards. Locations go to
// the hand, everything else to limbo. Returns false if the deck ran out.
func (c *Content) ReplenishHand() bool {
	for len(c.Hand) < HandSize {
		card, ok := c.DrawOne()
		if !ok {
			return false
		}
		if card.IsLocation() {
			c.Hand = append(c.Hand, card)
		} else {
			c.Limbo = append(c.Limbo, card)
		}
	}
	return true
}

// ShuffleUndrawn randomizes the deck order.
func (c *Content) ShuffleUndrawn(rng *rand.Rand) {
	rng.Shuffle(len(c.Undrawn), func(i, j int) {
		c.Undrawn[i], c.Undrawn[j] = c.Undrawn[j], c.Undrawn[i]
	})
}

// ShuffleLimboToUndrawn moves limbo into the deck and reshuffles. It does
// nothing when limbo is empty. Returns whether a shuffle happened.
func (c *Content) ShuffleLimboToUndrawn(rng *rand.Rand) bool {
	if len(c.Limbo) == 0 {
		return false
	}
	c.Undrawn = append(c.Undrawn, c.Limbo...)
	c.Limbo = c.Limbo[:0]
	c.ShuffleUndrawn(rng)
	return true
}

// IndexInHand returns the index of the first hand card matching pred, or -1.
func (c *Content) IndexInHand(pred func(Card) bool) int {
	for i, card := range c.Hand {
		if pred(card) {
			return i
		}
	}
	return -1
}
