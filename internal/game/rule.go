package game

// MayOpenDoor reports whether the hand holds a Key of the given color.
func MayOpenDoor(hand []Card, color Color) bool {
	for _, c := range hand {
		if c.Kind == KindKey && c.Color == color {
			return true
		}
	}
	return false
}

// ComboCount returns the length of the same-color run at the top of the
// exploration line, modulo 3. A run that just reached 3, 6, 9... reports 0.
func ComboCount(explored []Card) int {
	if len(explored) == 0 {
		return 0
	}
	top := explored[len(explored)-1].Color
	count := 0
	for i := len(explored) - 1; i >= 0; i-- {
		if explored[i].Color != top {
			break
		}
		count++
	}
	return count % 3
}

// CanObtainDoor reports whether appending a card of the given color and kind
// to explored completes a three-card combo: the current run already holds two
// cards past the last claim point, the candidate matches the run's color and
// its kind differs from the top card's kind.
//
// Whether a Door is still available is not considered here; claiming with no
// Door left in the deck is a silent no-op.
func CanObtainDoor(explored []Card, color Color, kind Kind) bool {
	if len(explored) == 0 {
		return false
	}
	top := explored[len(explored)-1]
	return ComboCount(explored) == 2 && top.Color == color && top.Kind != kind
}

// ClaimDoor pulls a Door of the given color from the deck into the opened
// zone. won is true when this claim brings the opened doors to DoorsToWin.
func ClaimDoor(c *Content, color Color) (claimed, won bool) {
	door, ok := c.PullDoor(color)
	if !ok {
		return false, false
	}
	c.Opened = append(c.Opened, door)
	return true, len(c.Opened) == DoorsToWin
}

// DoorDiscarded reports whether a Door was ever filed into the discard pile.
func DoorDiscarded(c *Content) bool {
	for _, card := range c.Discarded {
		if card.Kind == KindDoor {
			return true
		}
	}
	return false
}

// Won reports whether all doors have been opened.
func Won(c *Content) bool {
	return len(c.Opened) >= DoorsToWin
}

// KindRepeats reports whether playing card onto explored would repeat the
// kind of the top card, which the rules forbid.
func KindRepeats(explored []Card, card Card) bool {
	if len(explored) == 0 {
		return false
	}
	return explored[len(explored)-1].Kind == card.Kind
}
