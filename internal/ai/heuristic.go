package ai

import (
	"github.com/peterkuimelis/onirim/internal/game"
)

// Score weights of SimpleEvaluator.
const (
	NightmareScore int64 = 10_000_000_000
	DoorScore      int64 = 10_000_000_000
	WinScore       int64 = 100_000_000_000
	LoseBaseScore  int64 = -1_000_000_000_000
)

const doorsPerColor = 2

// SimpleEvaluator is the reference heuristic. It strongly prefers opened
// doors and resolved nightmares, then keeps keys and sun/moon pairs
// available for colors that still need doors, then favours long combos.
type SimpleEvaluator struct{}

// zoneCounts tallies the zones the heuristic looks at.
type zoneCounts struct {
	undrawn, discarded, limbo, opened, hand game.Count
}

func countZones(c *game.Content) zoneCounts {
	return zoneCounts{
		undrawn:   c.Count(game.ZoneUndrawn),
		discarded: c.Count(game.ZoneDiscarded),
		limbo:     c.Count(game.ZoneLimbo),
		opened:    c.Count(game.ZoneOpened),
		hand:      c.Count(game.ZoneHand),
	}
}

// available counts cards of a color and kind that can still be played.
func (n zoneCounts) available(color game.Color, kind game.Kind) int {
	return n.undrawn.ColorKind(color, kind) + n.limbo.ColorKind(color, kind) + n.hand.ColorKind(color, kind)
}

// Evaluate implements Evaluator.
func (SimpleEvaluator) Evaluate(c *game.Content) int64 {
	n := countZones(c)
	return evaluateLose(c, n) + evaluateWin(c, n)
}

// evaluateLose penalizes a discarded door, and slightly less a color that
// can no longer collect the doors it is missing.
func evaluateLose(c *game.Content, n zoneCounts) int64 {
	if n.discarded.Kind(game.KindDoor) > 0 {
		return LoseBaseScore
	}
	top, hasTop := c.Top()
	for _, color := range game.Colors() {
		opened := n.opened.Color(color)
		if opened >= doorsPerColor {
			continue
		}
		sun := n.available(color, game.KindSun)
		moon := n.available(color, game.KindMoon)
		key := n.available(color, game.KindKey)
		combo := 0
		if hasTop && top.Color == color {
			combo = game.ComboCount(c.Explored)
		}
		if (sun+moon+combo)/3+key < doorsPerColor-opened {
			return LoseBaseScore + 1
		}
	}
	return 0
}

func evaluateWin(c *game.Content, n zoneCounts) int64 {
	return evaluateOpened(c) +
		int64(n.discarded.Kind(game.KindNightmare))*NightmareScore +
		evaluateAvailableKeys(n) +
		evaluateAvailableSunMoon(n) +
		evaluateCombo(c, n)
}

func evaluateOpened(c *game.Content) int64 {
	opened := int64(len(c.Opened))
	score := opened * DoorScore
	if opened == game.DoorsToWin {
		score += WinScore
	}
	return score
}

func evaluateAvailableKeys(n zoneCounts) int64 {
	var score int64
	for _, color := range game.Colors() {
		weight := int64(10 + doorsPerColor - n.opened.Color(color))
		score += int64(n.available(color, game.KindKey)) * 10000 * weight
	}
	return score
}

func evaluateAvailableSunMoon(n zoneCounts) int64 {
	var score int64
	for _, color := range game.Colors() {
		pairs := int64(min(n.available(color, game.KindSun), n.available(color, game.KindMoon)))
		weight := colorWeight(n.opened.Color(color), 6)
		score += (21 - pairs) * pairs / 2 * weight * 10
	}
	return score
}

// colorWeight is 1 for a finished color and base plus the missing doors otherwise.
func colorWeight(opened, base int) int64 {
	if opened >= doorsPerColor {
		return 1
	}
	return int64(base + doorsPerColor - opened)
}

func evaluateCombo(c *game.Content, n zoneCounts) int64 {
	combo := game.ComboCount(c.Explored)
	top, ok := c.Top()
	if !ok {
		// An empty line counts as a colorless top card.
		top = game.Nightmare()
	}
	weight := colorWeight(n.opened.Color(top.Color), 4)
	cont := continuation(top, c.Hand, combo)
	return int64(combo*6000+cont*4000) * weight
}

// continuation returns how many hand cards of the top card's color could be
// chained onto the line with alternating kinds, capped at what the current
// combo still needs. Keys are left out.
func continuation(top game.Card, hand []game.Card, combo int) int {
	if top.Color == game.Void {
		return 0
	}
	var suns, moons int
	for _, card := range hand {
		if card.Color != top.Color {
			continue
		}
		switch card.Kind {
		case game.KindSun:
			suns++
		case game.KindMoon:
			moons++
		}
	}

	var chain int
	switch top.Kind {
	case game.KindSun:
		// Moon, Sun, Moon, ...
		chain = alternating(moons, suns)
	case game.KindMoon:
		chain = alternating(suns, moons)
	default:
		chain = max(alternating(suns, moons), alternating(moons, suns))
	}
	return min(chain, 3-combo)
}

// alternating is the length of the longest chain that starts with a card
// from first and then alternates with second.
func alternating(first, second int) int {
	if first > second {
		return 2*second + 1
	}
	return 2 * first
}
