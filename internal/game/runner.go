package game

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/peterkuimelis/onirim/internal/log"
)

const defaultMaxRounds = 2000

// Phase names used in the event log.
const (
	PhaseSetup = "Setup"
	Phase1     = "Phase 1"
	Phase2     = "Phase 2"
	Phase3     = "Phase 3"
)

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Deck      []Card   // starting cards, all undrawn (ignored when Content is set)
	Content   *Content // explicit starting state; the game takes ownership
	SkipSetup bool     // start at Phase 1 without dealing (Content already dealt)
	Observer  Observer
	Logger    log.EventLogger
	Seed      int64      // RNG seed (0 for random), used when Rand is nil
	Rand      *rand.Rand // injected RNG; takes precedence over Seed
	NoShuffle bool       // skip shuffles (for deterministic tests)
	MaxRounds int        // stop with ErrStalled after this many rounds (0 = 2000)
}

// Game runs a single solitaire game for one actor.
type Game struct {
	Content  *Content
	Actor    Actor
	Observer Observer
	Logger   log.EventLogger

	ctx        context.Context
	rng        *rand.Rand
	round      int
	phase      string
	loseReason string
	skipSetup  bool
	noShuffle  bool
	maxRounds  int
}

// NewGame creates a game from the given config and actor.
func NewGame(cfg GameConfig, actor Actor) *Game {
	content := cfg.Content
	if content == nil {
		content = NewContent(cfg.Deck)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = defaultMaxRounds
	}

	return &Game{
		Content:   content,
		Actor:     actor,
		Observer:  cfg.Observer,
		Logger:    logger,
		ctx:       context.Background(),
		rng:       rng,
		phase:     PhaseSetup,
		skipSetup: cfg.SkipSetup,
		noShuffle: cfg.NoShuffle,
		maxRounds: maxRounds,
	}
}

// Round returns the number of rounds started so far.
func (g *Game) Round() int { return g.round }

// Run plays the game to completion. It returns OutcomeWin or OutcomeLose
// with a nil error, or OutcomeNone with the error that aborted the game.
// The Observer is notified only when the game reaches an outcome. An
// aborted game puts the cards of the failed decision back, so Content still
// holds every card.
func (g *Game) Run(ctx context.Context) (Outcome, error) {
	g.ctx = ctx

	if !g.skipSetup {
		if out := g.setup(); out.Terminal() {
			return g.end(out), nil
		}
	}

	for {
		if g.round >= g.maxRounds {
			return OutcomeNone, fmt.Errorf("%w after %d rounds", ErrStalled, g.round)
		}
		if err := ctx.Err(); err != nil {
			return OutcomeNone, err
		}

		out, err := g.runRound()
		if err != nil {
			return OutcomeNone, err
		}
		if out.Terminal() {
			return g.end(out), nil
		}
	}
}

func (g *Game) runRound() (Outcome, error) {
	g.round++
	g.phase = Phase1
	g.log(log.NewRoundEvent(g.round))

	out, err := g.phase1()
	if err != nil || out.Terminal() {
		return out, err
	}

	g.enterPhase(Phase2)
	out, err = g.phase2()
	if err != nil || out.Terminal() {
		return out, err
	}

	g.enterPhase(Phase3)
	g.shuffleLimbo()
	return OutcomeNone, nil
}

// setup shuffles the deck, deals the opening hand and shuffles back any
// non-location cards dealt along the way.
func (g *Game) setup() Outcome {
	c := g.Content
	if !g.noShuffle {
		c.ShuffleUndrawn(g.rng)
	}
	if !c.ReplenishHand() {
		return g.lose("not enough cards for the opening hand")
	}
	g.log(log.NewSetupEvent(len(c.Hand), len(c.Limbo)))
	g.logLimbo(0)
	g.shuffleLimbo()
	return OutcomeNone
}

// phase1 asks the actor to play or discard one hand card.
func (g *Game) phase1() (Outcome, error) {
	c := g.Content
	choice, err := g.Actor.Phase1Action(g.ctx, c)
	if err != nil {
		return OutcomeNone, fmt.Errorf("phase 1 action: %w", err)
	}
	if choice.Index < 0 || choice.Index >= len(c.Hand) {
		return OutcomeNone, badParam("phase 1 %s: hand index %d out of range (hand has %d)", choice.Action, choice.Index, len(c.Hand))
	}

	var (
		place   Placement
		pending Outcome
	)
	card := c.TakeHand(choice.Index)
	switch choice.Action {
	case ActionPlay:
		place, pending, err = g.onPlayed(card)
	case ActionDiscard:
		place, pending, err = g.onDiscarded(card)
	default:
		err = badParam("phase 1: unknown action %d", int(choice.Action))
	}
	if err != nil {
		c.Hand = slices.Insert(c.Hand, choice.Index, card)
		return OutcomeNone, err
	}
	return g.settle(card, place, pending), nil
}

// phase2 refills the hand one draw at a time.
func (g *Game) phase2() (Outcome, error) {
	c := g.Content
	for len(c.Hand) < HandSize {
		card, ok := c.DrawOne()
		if !ok {
			return g.lose("the deck ran out"), nil
		}
		g.log(log.NewDrawEvent(g.round, g.phase, card.String()))

		place, pending, err := g.onDrawn(card)
		if err != nil {
			c.PutUndrawn(card)
			return OutcomeNone, err
		}
		if out := g.settle(card, place, pending); out.Terminal() {
			return out, nil
		}
	}
	return OutcomeNone, nil
}

// shuffleLimbo moves limbo back into the deck. With shuffling disabled the
// cards go underneath the deck in limbo order.
func (g *Game) shuffleLimbo() {
	c := g.Content
	if len(c.Limbo) == 0 {
		return
	}
	if g.noShuffle {
		c.Undrawn = append(slices.Clone(c.Limbo), c.Undrawn...)
		c.Limbo = c.Limbo[:0]
	} else {
		c.ShuffleLimboToUndrawn(g.rng)
	}
	g.log(log.NewShuffleEvent(g.round, g.phase, len(c.Undrawn)))
}

// settle files card and turns a discarded door into a loss.
func (g *Game) settle(card Card, place Placement, pending Outcome) Outcome {
	out := Settle(g.Content, card, place, pending)
	if out == OutcomeLose && !pending.Terminal() {
		g.loseReason = "a door was discarded"
	}
	return out
}

func (g *Game) lose(reason string) Outcome {
	g.loseReason = reason
	return OutcomeLose
}

// end logs the outcome and notifies the observer exactly once.
func (g *Game) end(out Outcome) Outcome {
	switch out {
	case OutcomeWin:
		g.log(log.NewWinEvent(g.round, g.phase))
	case OutcomeLose:
		g.log(log.NewLoseEvent(g.round, g.phase, g.loseReason))
	}
	if g.Observer != nil {
		g.Observer.OnEnd(g.Content, out)
	}
	return out
}

func (g *Game) enterPhase(phase string) {
	g.phase = phase
	g.log(log.NewPhaseChangeEvent(g.round, phase))
}

func (g *Game) log(event log.GameEvent) {
	g.Logger.Log(event)
}
