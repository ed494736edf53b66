package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/peterkuimelis/onirim/internal/game"
)

// Client answers a host's decision requests with a local actor.
type Client struct {
	Actor   game.Actor
	Name    string          // sent in the join handshake
	OnEvent func(EventView) // optional; called for every notify message
}

// Join connects to a host, sends the join handshake and plays the game.
func Join(ctx context.Context, addr string, client *Client) (game.Outcome, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return game.OutcomeNone, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := client.Handshake(conn); err != nil {
		return game.OutcomeNone, err
	}
	return client.Run(ctx, conn)
}

// Handshake sends the join message a host waits for before the game starts.
func (cl *Client) Handshake(conn net.Conn) error {
	if err := json.NewEncoder(conn).Encode(ClientMessage{Type: MsgJoin, Name: cl.Name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return nil
}

// Serve answers requests on conn with actor until the game is over.
func Serve(ctx context.Context, conn net.Conn, actor game.Actor) (game.Outcome, error) {
	return (&Client{Actor: actor}).Run(ctx, conn)
}

// Run reads server messages and handles them until game_over.
func (cl *Client) Run(ctx context.Context, conn net.Conn) (game.Outcome, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return game.OutcomeNone, ctxOr(ctx, fmt.Errorf("read message: %w", err))
		}

		if msg.Type == MsgGameOver {
			return parseOutcome(msg.Outcome, msg.Reason)
		}
		if msg.Type == MsgNotify {
			if cl.OnEvent != nil && msg.Event != nil {
				cl.OnEvent(*msg.Event)
			}
			continue
		}

		resp, err := cl.answer(ctx, msg)
		if err != nil {
			_ = enc.Encode(ClientMessage{Type: MsgError, Error: err.Error()})
			return game.OutcomeNone, err
		}
		if err := enc.Encode(resp); err != nil {
			return game.OutcomeNone, ctxOr(ctx, fmt.Errorf("send %s: %w", msg.Type, err))
		}
	}
}

// answer asks the local actor for a decision request's response.
func (cl *Client) answer(ctx context.Context, msg ServerMessage) (ClientMessage, error) {
	if msg.State == nil {
		return ClientMessage{}, fmt.Errorf("%s request without state", msg.Type)
	}
	c, err := msg.State.Content()
	if err != nil {
		return ClientMessage{}, fmt.Errorf("decode state: %w", err)
	}

	resp := ClientMessage{Type: msg.Type}
	switch msg.Type {
	case MsgPhase1Action:
		choice, err := cl.Actor.Phase1Action(ctx, c)
		if err != nil {
			return ClientMessage{}, err
		}
		resp.Action = phase1ActionName(choice.Action)
		resp.Index = choice.Index

	case MsgKeyDiscardReact:
		drawn, err := parseCards(msg.Drawn)
		if err != nil {
			return ClientMessage{}, fmt.Errorf("decode drawn cards: %w", err)
		}
		r, err := cl.Actor.KeyDiscardReact(ctx, c, drawn)
		if err != nil {
			return ClientMessage{}, err
		}
		resp.Discard = r.Discard
		resp.Keep = r.Keep

	case MsgOpenDoor:
		if msg.Door == nil {
			return ClientMessage{}, errors.New("open_door request without a door")
		}
		door, err := msg.Door.Card()
		if err != nil {
			return ClientMessage{}, fmt.Errorf("decode door: %w", err)
		}
		open, err := cl.Actor.OpenDoor(ctx, c, door)
		if err != nil {
			return ClientMessage{}, err
		}
		resp.Answer = open

	case MsgNightmareAction:
		choice, err := cl.Actor.NightmareAction(ctx, c)
		if err != nil {
			return ClientMessage{}, err
		}
		resp.Action = NightmareActionName(choice.Action)
		resp.Index = choice.Index

	default:
		return ClientMessage{}, fmt.Errorf("unknown message type %q", msg.Type)
	}
	return resp, nil
}

func parseOutcome(s, reason string) (game.Outcome, error) {
	switch s {
	case game.OutcomeWin.String():
		return game.OutcomeWin, nil
	case game.OutcomeLose.String():
		return game.OutcomeLose, nil
	default:
		return game.OutcomeNone, fmt.Errorf("game aborted: %s", reason)
	}
}
