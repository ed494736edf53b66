package game

import "slices"

// Zone-level resolution steps shared by the runner and by anything that
// needs to replay a decision on a cloned Content. None of them consult an
// actor or log; they only move cards.

// PlayResult describes what playing a card onto the exploration line did.
type PlayResult struct {
	Rejected bool    // same kind as the top card: the card goes back to hand
	Claimed  bool    // the play completed a combo and a Door was pulled
	Door     Card    // the claimed Door
	Outcome  Outcome // OutcomeWin when the claim opened the last door
}

// Play resolves a Location taken from the hand. The caller files the card
// with Settle using the returned placement. Playing a Door or Nightmare
// panics with a ContractViolation.
func Play(c *Content, card Card) (Placement, PlayResult) {
	if !card.IsLocation() {
		panic(ContractViolation{Hook: "played", Card: card})
	}
	if KindRepeats(c.Explored, card) {
		return PlaceHand, PlayResult{Rejected: true}
	}
	var res PlayResult
	if CanObtainDoor(c.Explored, card.Color, card.Kind) {
		claimed, won := ClaimDoor(c, card.Color)
		if claimed {
			res.Claimed = true
			res.Door = Door(card.Color)
			if won {
				res.Outcome = OutcomeWin
			}
		}
	}
	return PlaceExplored, res
}

// Discard resolves a Location discarded from the hand. A Key additionally
// triggers the key-discard reaction, which the caller runs before filing the
// Key. Discarding a Door or Nightmare panics with a ContractViolation.
func Discard(card Card) (place Placement, reaction bool) {
	if !card.IsLocation() {
		panic(ContractViolation{Hook: "discarded", Card: card})
	}
	return PlaceDiscarded, card.Kind == KindKey
}

// ValidateKeyReaction checks that r names one of the drawn cards to discard
// and a permutation of all the others to keep.
func ValidateKeyReaction(drawn []Card, r KeyReaction) error {
	if r.Discard < 0 || r.Discard >= len(drawn) {
		return badParam("key reaction: discard index %d out of range (%d drawn)", r.Discard, len(drawn))
	}
	if len(r.Keep) != len(drawn)-1 {
		return badParam("key reaction: keep order has %d entries, want %d", len(r.Keep), len(drawn)-1)
	}
	seen := make([]bool, len(drawn))
	seen[r.Discard] = true
	for _, i := range r.Keep {
		if i < 0 || i >= len(drawn) || seen[i] {
			return badParam("key reaction: keep order %v is not a permutation of the remaining cards", r.Keep)
		}
		seen[i] = true
	}
	return nil
}

// ApplyKeyReaction files the chosen drawn card to the discard pile and puts
// the others back on the deck so that r.Keep[0] becomes the top card.
func ApplyKeyReaction(c *Content, drawn []Card, r KeyReaction) error {
	if err := ValidateKeyReaction(drawn, r); err != nil {
		return err
	}
	c.Discarded = append(c.Discarded, drawn[r.Discard])
	for i := len(r.Keep) - 1; i >= 0; i-- {
		c.PutUndrawn(drawn[r.Keep[i]])
	}
	return nil
}

// OpenDrawnDoor spends a Key matching the drawn door's color. It returns
// false, changing nothing, when the hand holds no such Key.
func OpenDrawnDoor(c *Content, door Card) bool {
	i := c.IndexInHand(func(card Card) bool {
		return card.Kind == KindKey && card.Color == door.Color
	})
	if i < 0 {
		return false
	}
	c.DiscardHand(i)
	return true
}

// ResolveNightmare applies a nightmare resolution to c. The Nightmare card
// itself is not touched; the caller files it to the discard pile.
func ResolveNightmare(c *Content, choice NightmareChoice) (Outcome, error) {
	switch choice.Action {
	case ByKey:
		if choice.Index < 0 || choice.Index >= len(c.Hand) {
			return OutcomeNone, badParam("nightmare by key: hand index %d out of range (hand has %d)", choice.Index, len(c.Hand))
		}
		if c.Hand[choice.Index].Kind != KindKey {
			return OutcomeNone, badParam("nightmare by key: hand card %d is %s, not a key", choice.Index, c.Hand[choice.Index])
		}
		c.DiscardHand(choice.Index)
		return OutcomeNone, nil
	case ByDoor:
		if choice.Index < 0 || choice.Index >= len(c.Opened) {
			return OutcomeNone, badParam("nightmare by door: opened index %d out of range (%d opened)", choice.Index, len(c.Opened))
		}
		c.Limbo = append(c.Limbo, c.TakeOpened(choice.Index))
		return OutcomeNone, nil
	case ByHand:
		c.DiscardAllHand()
		if !c.ReplenishHand() {
			return OutcomeLose, nil
		}
		return OutcomeNone, nil
	case ByDeck:
		drawn, ok := c.Draw(ReactionDraw)
		if !ok {
			return OutcomeLose, nil
		}
		for _, card := range drawn {
			if card.IsLocation() {
				c.Discarded = append(c.Discarded, card)
			} else {
				c.Limbo = append(c.Limbo, card)
			}
		}
		return OutcomeNone, nil
	default:
		return OutcomeNone, badParam("nightmare: unknown action %d", int(choice.Action))
	}
}

// Settle files card according to place and reports the outcome the move
// leads to: the pending outcome if already terminal, a win when a door
// opening reached DoorsToWin, a loss when a Door sits in the discard pile.
func Settle(c *Content, card Card, place Placement, pending Outcome) Outcome {
	c.Put(card, place)
	if pending.Terminal() {
		return pending
	}
	if place == PlaceOpened && Won(c) {
		return OutcomeWin
	}
	if DoorDiscarded(c) {
		return OutcomeLose
	}
	return OutcomeNone
}

// comboAfter returns the combo count explored would report once card is on top.
func comboAfter(explored []Card, card Card) int {
	return ComboCount(append(slices.Clip(explored), card))
}
