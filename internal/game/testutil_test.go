package game

import (
	"context"
	"errors"
	"testing"

	"github.com/peterkuimelis/onirim/internal/log"
)

// ScriptedActor is an Actor that follows a predefined script of decisions.
// Used in tests to deterministically drive the game. Once a script runs dry
// it falls back to: discard hand card 0, discard the first drawn card and
// keep the rest in order, leave doors closed, resolve nightmares by deck.
type ScriptedActor struct {
	t *testing.T

	phase1     []Phase1Choice
	reactions  []KeyReaction
	doors      []bool
	nightmares []NightmareChoice

	// Recorded inputs
	drawnSeen  [][]Card
	doorsSeen  []Card
	phase1Asks int
}

func NewScriptedActor(t *testing.T) *ScriptedActor {
	return &ScriptedActor{t: t}
}

func (a *ScriptedActor) AddPlay(i int) *ScriptedActor {
	a.phase1 = append(a.phase1, Phase1Choice{Action: ActionPlay, Index: i})
	return a
}

func (a *ScriptedActor) AddDiscard(i int) *ScriptedActor {
	a.phase1 = append(a.phase1, Phase1Choice{Action: ActionDiscard, Index: i})
	return a
}

func (a *ScriptedActor) AddReaction(discard int, keep ...int) *ScriptedActor {
	a.reactions = append(a.reactions, KeyReaction{Discard: discard, Keep: keep})
	return a
}

func (a *ScriptedActor) AddDoor(open bool) *ScriptedActor {
	a.doors = append(a.doors, open)
	return a
}

func (a *ScriptedActor) AddNightmare(action NightmareAction, i int) *ScriptedActor {
	a.nightmares = append(a.nightmares, NightmareChoice{Action: action, Index: i})
	return a
}

func (a *ScriptedActor) Phase1Action(ctx context.Context, c *Content) (Phase1Choice, error) {
	a.phase1Asks++
	if len(a.phase1) == 0 {
		return Phase1Choice{Action: ActionDiscard, Index: 0}, nil
	}
	next := a.phase1[0]
	a.phase1 = a.phase1[1:]
	return next, nil
}

func (a *ScriptedActor) KeyDiscardReact(ctx context.Context, c *Content, drawn []Card) (KeyReaction, error) {
	a.drawnSeen = append(a.drawnSeen, append([]Card(nil), drawn...))
	if len(a.reactions) == 0 {
		keep := make([]int, 0, len(drawn)-1)
		for i := 1; i < len(drawn); i++ {
			keep = append(keep, i)
		}
		return KeyReaction{Discard: 0, Keep: keep}, nil
	}
	next := a.reactions[0]
	a.reactions = a.reactions[1:]
	return next, nil
}

func (a *ScriptedActor) OpenDoor(ctx context.Context, c *Content, door Card) (bool, error) {
	a.doorsSeen = append(a.doorsSeen, door)
	if len(a.doors) == 0 {
		return false, nil
	}
	next := a.doors[0]
	a.doors = a.doors[1:]
	return next, nil
}

func (a *ScriptedActor) NightmareAction(ctx context.Context, c *Content) (NightmareChoice, error) {
	if len(a.nightmares) == 0 {
		return NightmareChoice{Action: ByDeck}, nil
	}
	next := a.nightmares[0]
	a.nightmares = a.nightmares[1:]
	return next, nil
}

// recordingObserver counts OnEnd calls and remembers what it was told.
type recordingObserver struct {
	calls   int
	outcome Outcome
	total   int
}

func (o *recordingObserver) OnEnd(c *Content, outcome Outcome) {
	o.calls++
	o.outcome = outcome
	o.total = c.Total()
}

// drawOrder returns an Undrawn slice whose first draw is cards[0].
func drawOrder(cards ...Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}

// repeat returns n copies of card.
func repeat(card Card, n int) []Card {
	out := make([]Card, n)
	for i := range out {
		out[i] = card
	}
	return out
}

// concat joins card lists in order.
func concat(lists ...[]Card) []Card {
	var out []Card
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// playRounds runs an already-dealt content for at most the given number of
// rounds. A game still going after that returns ErrStalled, which is
// reported as a nil error with OutcomeNone.
func playRounds(t *testing.T, c *Content, actor Actor, rounds int) (*Game, *log.MemoryLogger, *recordingObserver, Outcome, error) {
	t.Helper()
	logger := log.NewMemoryLogger()
	obs := &recordingObserver{}
	g := NewGame(GameConfig{
		Content:   c,
		SkipSetup: true,
		NoShuffle: true,
		Logger:    logger,
		Observer:  obs,
		MaxRounds: rounds,
	}, actor)
	out, err := g.Run(context.Background())
	if errors.Is(err, ErrStalled) {
		err = nil
	}
	return g, logger, obs, out, err
}

// assertConserved fails the test when the card total drifted.
func assertConserved(t *testing.T, c *Content, want int) {
	t.Helper()
	if got := c.Total(); got != want {
		t.Fatalf("card total = %d, want %d", got, want)
	}
}
