package mcp

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/onirim/internal/game"
	"github.com/peterkuimelis/onirim/internal/net"
)

// MCPActor implements game.Actor by sending decisions to the MCP session's
// pending channel and blocking on a response channel.
type MCPActor struct {
	session    *GameSession
	responseCh chan any
}

// NewMCPActor creates an actor bound to the session.
func NewMCPActor(session *GameSession) *MCPActor {
	return &MCPActor{
		session:    session,
		responseCh: make(chan any),
	}
}

func (a *MCPActor) ask(ctx context.Context, p *PendingDecision) (any, error) {
	select {
	case a.session.pendingCh <- p:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-a.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func pending(t DecisionType, c *game.Content) *PendingDecision {
	return &PendingDecision{
		Type:    t,
		State:   net.BuildContentView(c),
		content: c.Clone(),
	}
}

// Phase1Action implements game.Actor.
func (a *MCPActor) Phase1Action(ctx context.Context, c *game.Content) (game.Phase1Choice, error) {
	resp, err := a.ask(ctx, pending(DecisionPhase1Action, c))
	if err != nil {
		return game.Phase1Choice{}, err
	}
	choice, ok := resp.(game.Phase1Choice)
	if !ok {
		return game.Phase1Choice{}, fmt.Errorf("unexpected response %T to %s", resp, DecisionPhase1Action)
	}
	return choice, nil
}

// KeyDiscardReact implements game.Actor.
func (a *MCPActor) KeyDiscardReact(ctx context.Context, c *game.Content, drawn []game.Card) (game.KeyReaction, error) {
	p := pending(DecisionKeyDiscardReact, c)
	p.drawn = append([]game.Card(nil), drawn...)
	for _, card := range drawn {
		p.Drawn = append(p.Drawn, net.NewCardView(card))
	}
	resp, err := a.ask(ctx, p)
	if err != nil {
		return game.KeyReaction{}, err
	}
	r, ok := resp.(game.KeyReaction)
	if !ok {
		return game.KeyReaction{}, fmt.Errorf("unexpected response %T to %s", resp, DecisionKeyDiscardReact)
	}
	return r, nil
}

// OpenDoor implements game.Actor.
func (a *MCPActor) OpenDoor(ctx context.Context, c *game.Content, door game.Card) (bool, error) {
	p := pending(DecisionOpenDoor, c)
	dv := net.NewCardView(door)
	p.Door = &dv
	resp, err := a.ask(ctx, p)
	if err != nil {
		return false, err
	}
	open, ok := resp.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected response %T to %s", resp, DecisionOpenDoor)
	}
	return open, nil
}

// NightmareAction implements game.Actor.
func (a *MCPActor) NightmareAction(ctx context.Context, c *game.Content) (game.NightmareChoice, error) {
	resp, err := a.ask(ctx, pending(DecisionNightmareAction, c))
	if err != nil {
		return game.NightmareChoice{}, err
	}
	choice, ok := resp.(game.NightmareChoice)
	if !ok {
		return game.NightmareChoice{}, fmt.Errorf("unexpected response %T to %s", resp, DecisionNightmareAction)
	}
	return choice, nil
}
