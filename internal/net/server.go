package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	charmlog "github.com/charmbracelet/log"

	"github.com/peterkuimelis/onirim/internal/game"
	"github.com/peterkuimelis/onirim/internal/log"
)

// Host runs one game whose decisions are made by a remote actor.
type Host struct {
	Addr      string
	Deck      []game.Card // nil = standard deck
	Seed      int64
	MaxRounds int
	Events    log.EventLogger  // game event log; nil = in memory
	Logger    *charmlog.Logger // process log; nil = discard
}

// Run listens on h.Addr, waits for one actor to join, then plays the game.
func (h *Host) Run(ctx context.Context) (game.Outcome, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", h.Addr)
	if err != nil {
		return game.OutcomeNone, fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()
	return h.Serve(ctx, ln)
}

// Serve accepts exactly one connection from ln and plays the game over it.
func (h *Host) Serve(ctx context.Context, ln net.Listener) (game.Outcome, error) {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	h.logger().Info("waiting for actor", "addr", ln.Addr().String())
	conn, err := ln.Accept()
	if err != nil {
		return game.OutcomeNone, ctxOr(ctx, fmt.Errorf("accept: %w", err))
	}
	defer conn.Close()

	h.logger().Info("actor connected", "remote", conn.RemoteAddr().String())
	return h.Play(ctx, conn)
}

// Play reads the join handshake from conn and runs the game.
func (h *Host) Play(ctx context.Context, conn net.Conn) (game.Outcome, error) {
	logger := h.logger()
	ra := NewRemoteActor(conn)

	ra.mu.Lock()
	join, err := ra.recv()
	ra.mu.Unlock()
	if err != nil {
		return game.OutcomeNone, fmt.Errorf("read join message: %w", err)
	}
	if join.Type != MsgJoin {
		return game.OutcomeNone, fmt.Errorf("expected join message, got %q", join.Type)
	}
	logger.Info("actor joined", "name", join.Name)

	deck := h.Deck
	if deck == nil {
		deck = game.StandardDeck()
	}
	events := h.Events
	if events == nil {
		events = log.NewMemoryLogger()
	}

	g := game.NewGame(game.GameConfig{
		Deck:      deck,
		Seed:      h.Seed,
		Logger:    &notifyLogger{EventLogger: events, remote: ra},
		MaxRounds: h.MaxRounds,
	}, ra)

	out, err := g.Run(ctx)
	if err != nil {
		logger.Error("game aborted", "round", g.Round(), "err", err)
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			_ = ra.SendGameOver(game.OutcomeNone, err.Error())
		}
		return game.OutcomeNone, fmt.Errorf("game: %w", err)
	}

	reason := ""
	if evs := events.Events(); len(evs) > 0 {
		reason = evs[len(evs)-1].Details
	}
	if err := ra.SendGameOver(out, reason); err != nil {
		logger.Warn("cannot send game over", "err", err)
	}
	logger.Info("game over", "outcome", out, "rounds", g.Round(), "opened", len(g.Content.Opened))
	return out, nil
}

var discardLogger = charmlog.New(io.Discard)

func (h *Host) logger() *charmlog.Logger {
	if h.Logger == nil {
		return discardLogger
	}
	return h.Logger
}
