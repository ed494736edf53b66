package ai

import (
	"testing"

	"github.com/peterkuimelis/onirim/internal/game"
	"github.com/peterkuimelis/onirim/internal/log"
)

func TestSimpleActorExtendsCombo(t *testing.T) {
	c := &game.Content{
		Explored: []game.Card{game.Sun(game.Red)},
		Hand:     []game.Card{game.Sun(game.Red), game.Moon(game.Blue), game.Moon(game.Red), game.Key(game.Green), game.Sun(game.Green)},
	}
	choice, err := SimpleActor{}.Phase1Action(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if choice != (game.Phase1Choice{Action: game.ActionPlay, Index: 2}) {
		t.Errorf("phase 1 = %v, want Play #2", choice)
	}
}

func TestSimpleActorDiscardsSunFirst(t *testing.T) {
	c := &game.Content{
		Explored: []game.Card{game.Sun(game.Red)},
		Hand:     []game.Card{game.Key(game.Blue), game.Sun(game.Blue), game.Sun(game.Green)},
	}
	choice, err := SimpleActor{}.Phase1Action(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if choice != (game.Phase1Choice{Action: game.ActionDiscard, Index: 1}) {
		t.Errorf("phase 1 = %v, want Discard #1", choice)
	}
}

func TestSimpleActorStartsWithMostCommonColor(t *testing.T) {
	c := &game.Content{
		Hand: []game.Card{game.Sun(game.Red), game.Moon(game.Blue), game.Key(game.Blue), game.Sun(game.Green), game.Sun(game.Blue)},
	}
	choice, err := SimpleActor{}.Phase1Action(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if choice != (game.Phase1Choice{Action: game.ActionPlay, Index: 1}) {
		t.Errorf("phase 1 = %v, want Play #1", choice)
	}
}

func TestSimpleActorNightmare(t *testing.T) {
	c := &game.Content{
		Hand:   []game.Card{game.Key(game.Blue), game.Key(game.Green), game.Sun(game.Red)},
		Opened: []game.Card{game.Door(game.Green), game.Door(game.Blue), game.Door(game.Green)},
	}
	nm, err := SimpleActor{}.NightmareAction(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if nm != (game.NightmareChoice{Action: game.ByKey, Index: 1}) {
		t.Errorf("nightmare = %v, want ByKey #1 (green has the most doors)", nm)
	}

	c.Hand = []game.Card{game.Key(game.Red)}
	if nm, _ = (SimpleActor{}).NightmareAction(ctx, c); nm.Action != game.ByHand {
		t.Errorf("nightmare = %v, want ByHand", nm)
	}
}

func TestSimpleActorProphecyDropsNightmare(t *testing.T) {
	drawn := []game.Card{game.Sun(game.Red), game.Nightmare(), game.Key(game.Red), game.Nightmare(), game.Moon(game.Blue)}
	r, err := SimpleActor{}.KeyDiscardReact(ctx, &game.Content{}, drawn)
	if err != nil {
		t.Fatal(err)
	}
	if r.Discard != 1 || len(r.Keep) != 4 || r.Keep[0] != 0 || r.Keep[1] != 2 {
		t.Errorf("reaction = %v, want discard #1 keep [0 2 3 4]", r)
	}
}

// TestActorsFinishGames runs complete games for every built-in policy.
func TestActorsFinishGames(t *testing.T) {
	actors := map[string]game.Actor{
		"discard":  DiscardActor{},
		"simple":   SimpleActor{},
		"evaluate": NewEvaluateActor(SimpleEvaluator{}),
	}
	for name, actor := range actors {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				ends := 0
				obs := game.ObserverFunc(func(c *game.Content, out game.Outcome) {
					ends++
					if c.Total() != 76 {
						t.Errorf("seed %d: %d cards at the end, want 76", seed, c.Total())
					}
				})
				g := game.NewGame(game.GameConfig{
					Deck:     game.StandardDeck(),
					Seed:     seed,
					Observer: obs,
					Logger:   log.NopLogger{},
				}, actor)
				out, err := g.Run(ctx)
				if err != nil {
					t.Fatalf("seed %d: %v", seed, err)
				}
				if !out.Terminal() || ends != 1 {
					t.Errorf("seed %d: outcome %v, observer called %d times", seed, out, ends)
				}
			}
		})
	}
}
