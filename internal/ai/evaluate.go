// Package ai holds decision procedures that play Onirim without a human:
// a one-ply evaluation actor driven by a pluggable Evaluator, and scripted
// reference policies.
package ai

import (
	"context"
	"math"

	"github.com/peterkuimelis/onirim/internal/game"
)

// RuleViolationScore marks a candidate the rules do not allow or that loses
// outright while resolving. It never beats a legal candidate.
const RuleViolationScore int64 = math.MinInt64

// Evaluator scores a game state. Higher is better. Implementations must be
// pure: the same content always gets the same score.
type Evaluator interface {
	Evaluate(c *game.Content) int64
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(c *game.Content) int64

func (f EvaluatorFunc) Evaluate(c *game.Content) int64 { return f(c) }

// EvaluateActor implements game.Actor by trying every candidate decision on
// a clone of the content, scoring the result and picking the best one.
// Candidates are scanned in ascending descriptor order and only a strictly
// better score replaces the current pick, so ties go to the smallest
// descriptor.
//
// The lookahead sees the deck order, which a human player would not.
type EvaluateActor struct {
	Evaluator Evaluator
}

// NewEvaluateActor creates an actor driven by the given evaluator.
func NewEvaluateActor(e Evaluator) *EvaluateActor {
	return &EvaluateActor{Evaluator: e}
}

// argMax returns the first candidate with the highest score.
func argMax[T any](cands []T, score func(T) int64) T {
	best := cands[0]
	bestScore := score(best)
	for _, cand := range cands[1:] {
		if s := score(cand); s > bestScore {
			best, bestScore = cand, s
		}
	}
	return best
}

// Phase1Action implements game.Actor.
func (a *EvaluateActor) Phase1Action(ctx context.Context, c *game.Content) (game.Phase1Choice, error) {
	if err := ctx.Err(); err != nil {
		return game.Phase1Choice{}, err
	}
	cands := make([]game.Phase1Choice, 0, 2*len(c.Hand))
	for _, action := range []game.Phase1Action{game.ActionPlay, game.ActionDiscard} {
		for i := range c.Hand {
			cands = append(cands, game.Phase1Choice{Action: action, Index: i})
		}
	}
	if len(cands) == 0 {
		return game.Phase1Choice{}, nil
	}
	return argMax(cands, func(choice game.Phase1Choice) int64 {
		return a.scorePhase1(c, choice)
	}), nil
}

func (a *EvaluateActor) scorePhase1(c *game.Content, choice game.Phase1Choice) int64 {
	clone := c.Clone()
	card := clone.TakeHand(choice.Index)
	if choice.Action == game.ActionDiscard {
		place, reaction := game.Discard(card)
		if reaction && len(clone.Undrawn) < game.ReactionDraw {
			return RuleViolationScore
		}
		game.Settle(clone, card, place, game.OutcomeNone)
		return a.Evaluator.Evaluate(clone)
	}

	place, res := game.Play(clone, card)
	if res.Rejected {
		return RuleViolationScore
	}
	game.Settle(clone, card, place, res.Outcome)
	return a.Evaluator.Evaluate(clone)
}

// KeyDiscardReact implements game.Actor. Each drawn card is tried as the
// discard with the rest kept in drawn order.
func (a *EvaluateActor) KeyDiscardReact(ctx context.Context, c *game.Content, drawn []game.Card) (game.KeyReaction, error) {
	if err := ctx.Err(); err != nil {
		return game.KeyReaction{}, err
	}
	cands := make([]game.KeyReaction, 0, len(drawn))
	for i := range drawn {
		r := game.KeyReaction{Discard: i}
		for j := range drawn {
			if j != i {
				r.Keep = append(r.Keep, j)
			}
		}
		cands = append(cands, r)
	}
	return argMax(cands, func(r game.KeyReaction) int64 {
		clone := c.Clone()
		if err := game.ApplyKeyReaction(clone, drawn, r); err != nil {
			return RuleViolationScore
		}
		return a.Evaluator.Evaluate(clone)
	}), nil
}

// OpenDoor implements game.Actor.
func (a *EvaluateActor) OpenDoor(ctx context.Context, c *game.Content, door game.Card) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return argMax([]bool{false, true}, func(open bool) int64 {
		clone := c.Clone()
		if !open {
			game.Settle(clone, door, game.PlaceLimbo, game.OutcomeNone)
			return a.Evaluator.Evaluate(clone)
		}
		if !game.OpenDrawnDoor(clone, door) {
			return RuleViolationScore
		}
		game.Settle(clone, door, game.PlaceOpened, game.OutcomeNone)
		return a.Evaluator.Evaluate(clone)
	}), nil
}

// NightmareAction implements game.Actor.
func (a *EvaluateActor) NightmareAction(ctx context.Context, c *game.Content) (game.NightmareChoice, error) {
	if err := ctx.Err(); err != nil {
		return game.NightmareChoice{}, err
	}
	var cands []game.NightmareChoice
	for i, card := range c.Hand {
		if card.Kind == game.KindKey {
			cands = append(cands, game.NightmareChoice{Action: game.ByKey, Index: i})
		}
	}
	for i := range c.Opened {
		cands = append(cands, game.NightmareChoice{Action: game.ByDoor, Index: i})
	}
	cands = append(cands,
		game.NightmareChoice{Action: game.ByHand},
		game.NightmareChoice{Action: game.ByDeck},
	)
	return argMax(cands, func(choice game.NightmareChoice) int64 {
		clone := c.Clone()
		out, err := game.ResolveNightmare(clone, choice)
		if err != nil || out == game.OutcomeLose {
			return RuleViolationScore
		}
		game.Settle(clone, game.Nightmare(), game.PlaceDiscarded, out)
		return a.Evaluator.Evaluate(clone)
	}), nil
}
