package ai

import (
	"context"
	"slices"
	"testing"

	"github.com/peterkuimelis/onirim/internal/game"
)

var ctx = context.Background()

// constant scores every state the same, so only the tie-break decides.
var constant = EvaluatorFunc(func(*game.Content) int64 { return 0 })

func sameContent(a, b *game.Content) bool {
	for _, z := range game.Zones() {
		if !slices.Equal(a.Cards(z), b.Cards(z)) {
			return false
		}
	}
	return true
}

func TestTiesGoToSmallestDescriptor(t *testing.T) {
	c := &game.Content{
		Hand:    []game.Card{game.Sun(game.Red), game.Key(game.Blue), game.Moon(game.Green), game.Key(game.Red), game.Sun(game.Blue)},
		Opened:  []game.Card{game.Door(game.Green)},
		Undrawn: slices.Repeat([]game.Card{game.Sun(game.Yellow)}, 10),
	}
	a := NewEvaluateActor(constant)

	choice, err := a.Phase1Action(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if choice != (game.Phase1Choice{Action: game.ActionPlay, Index: 0}) {
		t.Errorf("phase 1 = %v, want Play #0", choice)
	}

	drawn := []game.Card{game.Sun(game.Red), game.Moon(game.Red), game.Key(game.Red), game.Sun(game.Blue), game.Moon(game.Blue)}
	r, err := a.KeyDiscardReact(ctx, c, drawn)
	if err != nil {
		t.Fatal(err)
	}
	if r.Discard != 0 || !slices.Equal(r.Keep, []int{1, 2, 3, 4}) {
		t.Errorf("reaction = %v, want discard #0 keep [1 2 3 4]", r)
	}

	open, err := a.OpenDoor(ctx, c, game.Door(game.Blue))
	if err != nil {
		t.Fatal(err)
	}
	if open {
		t.Error("a tie between closing and opening must keep the door closed")
	}

	nm, err := a.NightmareAction(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if nm != (game.NightmareChoice{Action: game.ByKey, Index: 1}) {
		t.Errorf("nightmare = %v, want ByKey #1", nm)
	}
}

func TestRejectedPlayNeverChosen(t *testing.T) {
	c := &game.Content{
		Explored: []game.Card{game.Sun(game.Red)},
		Hand:     slices.Repeat([]game.Card{game.Sun(game.Blue)}, 5),
	}
	choice, err := NewEvaluateActor(constant).Phase1Action(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if choice != (game.Phase1Choice{Action: game.ActionDiscard, Index: 0}) {
		t.Errorf("phase 1 = %v, want Discard #0", choice)
	}
}

func TestKeyDiscardNeedsFullProphecy(t *testing.T) {
	discards := EvaluatorFunc(func(c *game.Content) int64 { return int64(len(c.Discarded)) })
	hand := []game.Card{game.Key(game.Blue), game.Sun(game.Red), game.Moon(game.Red), game.Sun(game.Green), game.Moon(game.Green)}

	tests := []struct {
		name    string
		undrawn int
		want    game.Phase1Choice
	}{
		{"enough cards", game.ReactionDraw, game.Phase1Choice{Action: game.ActionDiscard, Index: 0}},
		{"short deck", game.ReactionDraw - 1, game.Phase1Choice{Action: game.ActionDiscard, Index: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &game.Content{
				Hand:    slices.Clone(hand),
				Undrawn: slices.Repeat([]game.Card{game.Sun(game.Yellow)}, tt.undrawn),
			}
			choice, err := NewEvaluateActor(discards).Phase1Action(ctx, c)
			if err != nil {
				t.Fatal(err)
			}
			if choice != tt.want {
				t.Errorf("phase 1 = %v, want %v", choice, tt.want)
			}
		})
	}
}

func TestDecisionsDoNotMutateContent(t *testing.T) {
	c := &game.Content{
		Explored: []game.Card{game.Sun(game.Red), game.Moon(game.Red)},
		Hand:     []game.Card{game.Sun(game.Red), game.Key(game.Blue), game.Moon(game.Green), game.Key(game.Red), game.Sun(game.Blue)},
		Opened:   []game.Card{game.Door(game.Green)},
		Limbo:    []game.Card{game.Nightmare()},
		Undrawn:  append(slices.Repeat([]game.Card{game.Sun(game.Yellow)}, 6), game.Door(game.Red)),
	}
	before := c.Clone()
	a := NewEvaluateActor(SimpleEvaluator{})

	if _, err := a.Phase1Action(ctx, c); err != nil {
		t.Fatal(err)
	}
	if _, err := a.KeyDiscardReact(ctx, c, []game.Card{game.Door(game.Blue), game.Sun(game.Red), game.Sun(game.Red), game.Sun(game.Red), game.Sun(game.Red)}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.OpenDoor(ctx, c, game.Door(game.Red)); err != nil {
		t.Fatal(err)
	}
	if _, err := a.NightmareAction(ctx, c); err != nil {
		t.Fatal(err)
	}
	if !sameContent(c, before) {
		t.Errorf("content changed:\n got  %+v\n want %+v", c, before)
	}
}

func TestPrefersPlayThatClaimsDoor(t *testing.T) {
	c := &game.Content{
		Explored: []game.Card{game.Sun(game.Red), game.Moon(game.Red)},
		Hand:     []game.Card{game.Sun(game.Blue), game.Moon(game.Blue), game.Sun(game.Red), game.Key(game.Yellow), game.Sun(game.Green)},
		Undrawn:  []game.Card{game.Door(game.Red), game.Sun(game.Yellow)},
	}
	opened := EvaluatorFunc(func(c *game.Content) int64 { return int64(len(c.Opened)) })

	choice, err := NewEvaluateActor(opened).Phase1Action(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if choice != (game.Phase1Choice{Action: game.ActionPlay, Index: 2}) {
		t.Errorf("phase 1 = %v, want Play #2", choice)
	}

	open, err := NewEvaluateActor(opened).OpenDoor(ctx, &game.Content{Hand: []game.Card{game.Key(game.Red)}}, game.Door(game.Red))
	if err != nil {
		t.Fatal(err)
	}
	if !open {
		t.Error("expected the door to be opened")
	}
}

func TestNightmareSkipsLosingResolutions(t *testing.T) {
	handSize := EvaluatorFunc(func(c *game.Content) int64 { return int64(len(c.Hand)) })

	// Short deck: by hand and by deck both lose, so the door goes back to limbo.
	c := &game.Content{
		Hand:    []game.Card{game.Sun(game.Red), game.Moon(game.Red), game.Key(game.Blue), game.Sun(game.Blue)},
		Opened:  []game.Card{game.Door(game.Green)},
		Undrawn: []game.Card{game.Sun(game.Yellow)},
	}
	nm, err := NewEvaluateActor(handSize).NightmareAction(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if nm != (game.NightmareChoice{Action: game.ByDoor, Index: 0}) {
		t.Errorf("nightmare = %v, want ByDoor #0", nm)
	}

	// Plenty of cards: refilling the hand gives five.
	c.Undrawn = slices.Repeat([]game.Card{game.Sun(game.Yellow)}, 10)
	nm, err = NewEvaluateActor(handSize).NightmareAction(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if nm.Action != game.ByHand {
		t.Errorf("nightmare = %v, want ByHand", nm)
	}
}

func TestCancelledContext(t *testing.T) {
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := NewEvaluateActor(constant).Phase1Action(cctx, &game.Content{Hand: []game.Card{game.Sun(game.Red)}}); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}
