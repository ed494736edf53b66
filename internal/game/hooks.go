package game

import (
	"fmt"

	"github.com/peterkuimelis/onirim/internal/log"
)

// Card hooks. Each one resolves the card it was handed and returns where the
// card must be filed plus any outcome the resolution produced. The runner
// files the card before acting on the outcome.

// onPlayed handles a hand card played onto the exploration line.
func (g *Game) onPlayed(card Card) (Placement, Outcome, error) {
	c := g.Content
	combo := comboAfter(c.Explored, card)
	place, res := Play(c, card)
	if res.Rejected {
		g.log(log.NewPlayRejectedEvent(g.round, card.String()))
		return place, OutcomeNone, nil
	}
	g.log(log.NewPlayEvent(g.round, card.String(), combo))
	if res.Claimed {
		g.log(log.NewDoorClaimedEvent(g.round, res.Door.String(), len(c.Opened)))
	}
	return place, res.Outcome, nil
}

// onDiscarded handles a hand card discarded in Phase 1.
func (g *Game) onDiscarded(card Card) (Placement, Outcome, error) {
	place, reaction := Discard(card)
	g.log(log.NewDiscardEvent(g.round, g.phase, card.String()))
	if !reaction {
		return place, OutcomeNone, nil
	}
	out, err := g.keyReaction()
	return place, out, err
}

// keyReaction draws five cards for a discarded Key and lets the actor pick
// one to discard and the order of the rest.
func (g *Game) keyReaction() (Outcome, error) {
	c := g.Content
	drawn, ok := c.Draw(ReactionDraw)
	if !ok {
		return g.lose("not enough cards for the key prophecy"), nil
	}
	r, err := g.Actor.KeyDiscardReact(g.ctx, c, drawn)
	if err != nil {
		c.Undraw(drawn)
		return OutcomeNone, fmt.Errorf("key discard reaction: %w", err)
	}
	if err := ApplyKeyReaction(c, drawn, r); err != nil {
		c.Undraw(drawn)
		return OutcomeNone, err
	}

	kept := make([]string, len(r.Keep))
	for i, k := range r.Keep {
		kept[i] = drawn[k].String()
	}
	g.log(log.NewKeyReactionEvent(g.round, drawn[r.Discard].String(), kept))
	return OutcomeNone, nil
}

// onDrawn handles a card drawn in Phase 2.
func (g *Game) onDrawn(card Card) (Placement, Outcome, error) {
	switch card.Kind {
	case KindDoor:
		return g.onDoorDrawn(card)
	case KindNightmare:
		return g.onNightmareDrawn()
	default:
		return PlaceHand, OutcomeNone, nil
	}
}

func (g *Game) onDoorDrawn(door Card) (Placement, Outcome, error) {
	c := g.Content
	if MayOpenDoor(c.Hand, door.Color) {
		open, err := g.Actor.OpenDoor(g.ctx, c, door)
		if err != nil {
			return PlaceLimbo, OutcomeNone, fmt.Errorf("open door: %w", err)
		}
		if open && OpenDrawnDoor(c, door) {
			g.log(log.NewDoorOpenedEvent(g.round, g.phase, door.String(), len(c.Opened)+1))
			return PlaceOpened, OutcomeNone, nil
		}
	}
	g.log(log.NewDoorToLimboEvent(g.round, g.phase, door.String()))
	return PlaceLimbo, OutcomeNone, nil
}

func (g *Game) onNightmareDrawn() (Placement, Outcome, error) {
	c := g.Content
	choice, err := g.Actor.NightmareAction(g.ctx, c)
	if err != nil {
		return PlaceDiscarded, OutcomeNone, fmt.Errorf("nightmare action: %w", err)
	}

	desc := choice.String()
	switch choice.Action {
	case ByKey:
		if choice.Index >= 0 && choice.Index < len(c.Hand) {
			desc = fmt.Sprintf("by discarding %s", c.Hand[choice.Index])
		}
	case ByDoor:
		if choice.Index >= 0 && choice.Index < len(c.Opened) {
			desc = fmt.Sprintf("by returning %s to limbo", c.Opened[choice.Index])
		}
	case ByHand:
		desc = "by discarding the hand"
	case ByDeck:
		desc = "by discarding the top of the deck"
	}

	limbo := len(c.Limbo)
	out, err := ResolveNightmare(c, choice)
	if err != nil {
		return PlaceDiscarded, OutcomeNone, err
	}
	g.log(log.NewNightmareEvent(g.round, g.phase, desc))
	g.logLimbo(limbo)
	if out == OutcomeLose {
		g.loseReason = "not enough cards to resolve the nightmare"
	}
	return PlaceDiscarded, out, nil
}

// logLimbo logs every card set aside to limbo since limbo held from cards.
func (g *Game) logLimbo(from int) {
	for _, card := range g.Content.Limbo[from:] {
		g.log(log.NewLimboEvent(g.round, g.phase, card.String()))
	}
}
