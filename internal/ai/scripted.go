package ai

import (
	"context"
	"slices"

	"github.com/peterkuimelis/onirim/internal/game"
)

// DiscardActor is the baseline policy: it always discards the first hand
// card, throws away the first card of a key prophecy, opens every door it
// can and resolves nightmares with the deck.
type DiscardActor struct{}

func (DiscardActor) Phase1Action(ctx context.Context, c *game.Content) (game.Phase1Choice, error) {
	return game.Phase1Choice{Action: game.ActionDiscard, Index: 0}, nil
}

func (DiscardActor) KeyDiscardReact(ctx context.Context, c *game.Content, drawn []game.Card) (game.KeyReaction, error) {
	return keepAllBut(0, len(drawn)), nil
}

func (DiscardActor) OpenDoor(ctx context.Context, c *game.Content, door game.Card) (bool, error) {
	return true, nil
}

func (DiscardActor) NightmareAction(ctx context.Context, c *game.Content) (game.NightmareChoice, error) {
	return game.NightmareChoice{Action: game.ByDeck}, nil
}

// keepAllBut discards drawn card i and keeps the others in drawn order.
func keepAllBut(i, n int) game.KeyReaction {
	r := game.KeyReaction{Discard: i, Keep: make([]int, 0, n-1)}
	for j := 0; j < n; j++ {
		if j != i {
			r.Keep = append(r.Keep, j)
		}
	}
	return r
}

// SimpleActor is a greedy hand-written policy. It extends the current combo
// when it can, starts a new one with its most common color otherwise, and
// discards suns before moons before anything else.
type SimpleActor struct{}

func (SimpleActor) Phase1Action(ctx context.Context, c *game.Content) (game.Phase1Choice, error) {
	hand := c.Count(game.ZoneHand)
	opened := c.Count(game.ZoneOpened)

	if i := playIndex(c, hand, opened); i >= 0 {
		return game.Phase1Choice{Action: game.ActionPlay, Index: i}, nil
	}
	return game.Phase1Choice{Action: game.ActionDiscard, Index: discardIndex(c, hand, opened)}, nil
}

// playIndex picks a hand card to explore, or -1 to discard instead.
func playIndex(c *game.Content, hand, opened game.Count) int {
	top, ok := c.Top()
	if !ok {
		color, found := mostFrequent(hand, func(color game.Color) bool { return hand.Color(color) > 0 })
		if !found {
			return -1
		}
		return c.IndexInHand(func(card game.Card) bool { return card.Color == color })
	}

	if game.ComboCount(c.Explored) == 0 {
		// Start a new combo in a color that still has doors to win.
		return c.IndexInHand(func(card game.Card) bool {
			return card.Kind != top.Kind && card.Kind != game.KindKey && opened.Color(card.Color) < doorsPerColor
		})
	}
	return c.IndexInHand(func(card game.Card) bool {
		return card.Kind != top.Kind && card.Color == top.Color
	})
}

func discardIndex(c *game.Content, hand, opened game.Count) int {
	for _, kind := range []game.Kind{game.KindSun, game.KindMoon} {
		if i := c.IndexInHand(func(card game.Card) bool { return card.Kind == kind }); i >= 0 {
			return i
		}
	}
	// Only keys left: give up the one whose color has the most doors already.
	color, found := mostFrequent(opened, func(color game.Color) bool {
		return opened.Color(color) > 0 && hand.Color(color) > 0
	})
	if found {
		return c.IndexInHand(func(card game.Card) bool { return card.Color == color })
	}
	return 0
}

// mostFrequent returns the eligible color with the highest count in n. Ties
// go to the later color.
func mostFrequent(n game.Count, eligible func(game.Color) bool) (game.Color, bool) {
	var (
		best  game.Color
		found bool
	)
	for _, color := range game.Colors() {
		if !eligible(color) {
			continue
		}
		if !found || n.Color(color) >= n.Color(best) {
			best, found = color, true
		}
	}
	return best, found
}

// KeyDiscardReact throws away the first nightmare of the prophecy, or the
// first card when there is none.
func (SimpleActor) KeyDiscardReact(ctx context.Context, c *game.Content, drawn []game.Card) (game.KeyReaction, error) {
	i := slices.IndexFunc(drawn, func(card game.Card) bool { return card.Kind == game.KindNightmare })
	return keepAllBut(max(i, 0), len(drawn)), nil
}

func (SimpleActor) OpenDoor(ctx context.Context, c *game.Content, door game.Card) (bool, error) {
	return true, nil
}

// NightmareAction spends a key of the color with the most opened doors,
// and otherwise gives up the hand.
func (SimpleActor) NightmareAction(ctx context.Context, c *game.Content) (game.NightmareChoice, error) {
	opened := c.Count(game.ZoneOpened)
	colors := slices.Clone(game.Colors())
	slices.Reverse(colors)
	slices.SortStableFunc(colors, func(a, b game.Color) int {
		return opened.Color(b) - opened.Color(a)
	})
	for _, color := range colors {
		if opened.Color(color) == 0 {
			continue
		}
		i := c.IndexInHand(func(card game.Card) bool {
			return card.Kind == game.KindKey && card.Color == color
		})
		if i >= 0 {
			return game.NightmareChoice{Action: game.ByKey, Index: i}, nil
		}
	}
	return game.NightmareChoice{Action: game.ByHand}, nil
}
