package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/peterkuimelis/onirim/internal/game"
	"github.com/peterkuimelis/onirim/internal/log"
)

// RemoteActor implements game.Actor over a TCP connection. Each decision is
// one request line carrying the full state and one response line.
type RemoteActor struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex
	gone bool // the client reported an error and stopped reading
}

// NewRemoteActor creates a new actor for the given connection.
func NewRemoteActor(conn net.Conn) *RemoteActor {
	return &RemoteActor{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// send sends a server message to the client. Must be called with mu held.
func (ra *RemoteActor) send(msg ServerMessage) error {
	return ra.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (ra *RemoteActor) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := ra.dec.Decode(&msg)
	return msg, err
}

// roundTrip sends a request and waits for the matching response. A cancelled
// context unblocks the connection by expiring its deadline.
func (ra *RemoteActor) roundTrip(ctx context.Context, req ServerMessage) (ClientMessage, error) {
	ra.mu.Lock()
	defer ra.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ClientMessage{}, err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = ra.conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if err := ra.send(req); err != nil {
		return ClientMessage{}, ctxOr(ctx, fmt.Errorf("send %s: %w", req.Type, err))
	}
	resp, err := ra.recv()
	if err != nil {
		return ClientMessage{}, ctxOr(ctx, fmt.Errorf("recv %s: %w", req.Type, err))
	}
	switch resp.Type {
	case req.Type:
		return resp, nil
	case MsgError:
		ra.gone = true
		return ClientMessage{}, fmt.Errorf("remote actor: %s", resp.Error)
	default:
		return ClientMessage{}, fmt.Errorf("expected %s response, got %q", req.Type, resp.Type)
	}
}

// ctxOr prefers the context's error once it is done, since I/O errors
// caused by the expired deadline say nothing useful.
func ctxOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// Phase1Action implements game.Actor.
func (ra *RemoteActor) Phase1Action(ctx context.Context, c *game.Content) (game.Phase1Choice, error) {
	resp, err := ra.roundTrip(ctx, ServerMessage{
		Type:  MsgPhase1Action,
		State: BuildContentView(c),
	})
	if err != nil {
		return game.Phase1Choice{}, err
	}
	action, err := ParsePhase1Action(resp.Action)
	if err != nil {
		return game.Phase1Choice{}, fmt.Errorf("%w: %w", game.ErrBadParameter, err)
	}
	return game.Phase1Choice{Action: action, Index: resp.Index}, nil
}

// KeyDiscardReact implements game.Actor.
func (ra *RemoteActor) KeyDiscardReact(ctx context.Context, c *game.Content, drawn []game.Card) (game.KeyReaction, error) {
	resp, err := ra.roundTrip(ctx, ServerMessage{
		Type:  MsgKeyDiscardReact,
		State: BuildContentView(c),
		Drawn: cardViews(drawn),
	})
	if err != nil {
		return game.KeyReaction{}, err
	}
	return game.KeyReaction{Discard: resp.Discard, Keep: resp.Keep}, nil
}

// OpenDoor implements game.Actor.
func (ra *RemoteActor) OpenDoor(ctx context.Context, c *game.Content, door game.Card) (bool, error) {
	dv := NewCardView(door)
	resp, err := ra.roundTrip(ctx, ServerMessage{
		Type:  MsgOpenDoor,
		State: BuildContentView(c),
		Door:  &dv,
	})
	if err != nil {
		return false, err
	}
	return resp.Answer, nil
}

// NightmareAction implements game.Actor.
func (ra *RemoteActor) NightmareAction(ctx context.Context, c *game.Content) (game.NightmareChoice, error) {
	resp, err := ra.roundTrip(ctx, ServerMessage{
		Type:  MsgNightmareAction,
		State: BuildContentView(c),
	})
	if err != nil {
		return game.NightmareChoice{}, err
	}
	action, err := ParseNightmareAction(resp.Action)
	if err != nil {
		return game.NightmareChoice{}, fmt.Errorf("%w: %w", game.ErrBadParameter, err)
	}
	return game.NightmareChoice{Action: action, Index: resp.Index}, nil
}

// Notify forwards a game event to the client.
func (ra *RemoteActor) Notify(event log.GameEvent) error {
	ra.mu.Lock()
	defer ra.mu.Unlock()
	return ra.send(ServerMessage{Type: MsgNotify, Event: NewEventView(event)})
}

// SendGameOver sends a game_over message to the client.
func (ra *RemoteActor) SendGameOver(outcome game.Outcome, reason string) error {
	ra.mu.Lock()
	defer ra.mu.Unlock()
	if ra.gone {
		return nil
	}
	return ra.send(ServerMessage{Type: MsgGameOver, Outcome: outcome.String(), Reason: reason})
}

// notifyLogger records events locally and forwards each one to the client.
type notifyLogger struct {
	log.EventLogger
	remote *RemoteActor
	failed bool
}

func (l *notifyLogger) Log(event log.GameEvent) {
	l.EventLogger.Log(event)
	if l.failed {
		return
	}
	// A broken connection surfaces on the next decision request.
	if err := l.remote.Notify(event); err != nil {
		l.failed = true
	}
}
