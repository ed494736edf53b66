package game

// Count tallies a set of cards by color, by kind and by (color, kind).
type Count struct {
	colors [numColors]int
	kinds  [numKinds]int
	pairs  [numColors][numKinds]int
}

// CountCards tallies the given cards.
func CountCards(cards []Card) Count {
	var n Count
	for _, c := range cards {
		n.colors[c.Color]++
		n.kinds[c.Kind]++
		n.pairs[c.Color][c.Kind]++
	}
	return n
}

func (n Count) Color(c Color) int { return n.colors[c] }

func (n Count) Kind(k Kind) int { return n.kinds[k] }

func (n Count) ColorKind(c Color, k Kind) int { return n.pairs[c][k] }

// Count tallies the cards of one zone.
func (c *Content) Count(z Zone) Count {
	return CountCards(c.Cards(z))
}
