package ai

import (
	"testing"

	"github.com/peterkuimelis/onirim/internal/game"
)

func TestContinuation(t *testing.T) {
	r, b := game.Red, game.Blue
	tests := []struct {
		name  string
		top   game.Card
		hand  []game.Card
		combo int
		want  int
	}{
		{"moon sun moon after sun", game.Sun(r), []game.Card{game.Moon(r), game.Sun(r), game.Moon(r)}, 0, 3},
		{"capped by combo", game.Sun(r), []game.Card{game.Moon(r), game.Sun(r), game.Moon(r)}, 1, 2},
		{"same kind only", game.Moon(r), []game.Card{game.Moon(r), game.Moon(r)}, 1, 0},
		{"after key either kind", game.Key(r), []game.Card{game.Sun(r)}, 1, 1},
		{"other colors ignored", game.Sun(r), []game.Card{game.Moon(b), game.Sun(b)}, 1, 0},
		{"keys ignored", game.Sun(r), []game.Card{game.Key(r), game.Moon(r)}, 1, 1},
		{"empty line", game.Nightmare(), []game.Card{game.Sun(r)}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := continuation(tt.top, tt.hand, tt.combo); got != tt.want {
				t.Errorf("continuation = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDiscardedDoorScoresBelowEverything(t *testing.T) {
	base := &game.Content{
		Hand:    []game.Card{game.Sun(game.Red), game.Moon(game.Red)},
		Undrawn: game.StandardDeck(),
	}
	lost := base.Clone()
	lost.Discarded = append(lost.Discarded, game.Door(game.Red))

	var e SimpleEvaluator
	if e.Evaluate(lost) >= e.Evaluate(base) {
		t.Errorf("discarded door scored %d, base %d", e.Evaluate(lost), e.Evaluate(base))
	}
	if e.Evaluate(lost) > LoseBaseScore/2 {
		t.Errorf("discarded door scored %d, want near %d", e.Evaluate(lost), LoseBaseScore)
	}
}

func TestUnreachableColorIsPenalized(t *testing.T) {
	// No red cards left anywhere and no red door opened.
	c := &game.Content{Hand: []game.Card{game.Sun(game.Blue)}}
	if got := evaluateLose(c, countZones(c)); got != LoseBaseScore+1 {
		t.Errorf("evaluateLose = %d, want %d", got, LoseBaseScore+1)
	}
}

func TestOpenedDoorsDominate(t *testing.T) {
	var e SimpleEvaluator
	deck := game.StandardDeck()

	fewer := game.NewContent(deck)
	more := fewer.Clone()
	more.PullDoor(game.Green)
	more.Opened = append(more.Opened, game.Door(game.Green))

	if e.Evaluate(more) <= e.Evaluate(fewer) {
		t.Errorf("an opened door must raise the score: %d <= %d", e.Evaluate(more), e.Evaluate(fewer))
	}

	won := &game.Content{}
	for _, color := range game.Colors() {
		won.Opened = append(won.Opened, game.Door(color), game.Door(color))
	}
	if got := evaluateOpened(won); got != 8*DoorScore+WinScore {
		t.Errorf("evaluateOpened = %d, want %d", got, 8*DoorScore+WinScore)
	}
}

func TestSimpleEvaluatorIsPure(t *testing.T) {
	c := game.NewContent(game.StandardDeck())
	c.ReplenishHand()
	before := c.Clone()
	var e SimpleEvaluator
	if a, b := e.Evaluate(c), e.Evaluate(c); a != b {
		t.Errorf("two evaluations differ: %d != %d", a, b)
	}
	if !sameContent(c, before) {
		t.Error("Evaluate changed the content")
	}
}
