package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/onirim/internal/game"
	"github.com/peterkuimelis/onirim/internal/log"
	"github.com/peterkuimelis/onirim/internal/net"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionPhase1Action    DecisionType = "phase1_action"
	DecisionKeyDiscardReact DecisionType = "key_discard_react"
	DecisionOpenDoor        DecisionType = "open_door"
	DecisionNightmareAction DecisionType = "nightmare_action"
	DecisionGameOver        DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type  DecisionType     `json:"type"`
	State *net.ContentView `json:"state"`
	Drawn []net.CardView   `json:"drawn,omitempty"`
	Door  *net.CardView    `json:"door,omitempty"`

	content *game.Content // snapshot used to validate answers
	drawn   []game.Card
}

// ToolResponse is the JSON envelope returned by the game tools.
type ToolResponse struct {
	Events   []net.EventView  `json:"events"`
	State    *net.ContentView `json:"state,omitempty"`
	Pending  *PendingView     `json:"pending,omitempty"`
	GameOver bool             `json:"game_over"`
	Outcome  string           `json:"outcome,omitempty"`
	Result   string           `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type  DecisionType   `json:"type"`
	Tool  string         `json:"tool"`
	Drawn []net.CardView `json:"drawn,omitempty"`
	Door  *net.CardView  `json:"door,omitempty"`
}

// GameSession holds the state of a single MCP game session. The game runs
// in its own goroutine and blocks on the MCPActor between tool calls.
type GameSession struct {
	game   *game.Game
	actor  *MCPActor
	cancel context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision
	decide         sync.Mutex // serializes tool calls that answer decisions

	mu       sync.Mutex
	events   []net.EventView
	gameOver bool
	outcome  game.Outcome
	result   string
}

// NewGameSession deals a game from deck and starts it in a goroutine.
func NewGameSession(deck []game.Card, seed int64, maxRounds int) *GameSession {
	ctx, cancel := context.WithCancel(context.Background())
	sess := &GameSession{
		cancel:    cancel,
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.actor = NewMCPActor(sess)
	sess.game = game.NewGame(game.GameConfig{
		Deck:      deck,
		Seed:      seed,
		Logger:    &sessionLogger{MemoryLogger: log.NewMemoryLogger(), session: sess},
		MaxRounds: maxRounds,
	}, sess.actor)

	go func() {
		out, err := sess.game.Run(ctx)

		result := ""
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
		} else if evs := sess.game.Logger.Events(); len(evs) > 0 {
			result = evs[len(evs)-1].Details
		}

		sess.mu.Lock()
		sess.gameOver = true
		sess.outcome = out
		sess.result = result
		sess.mu.Unlock()

		over := &PendingDecision{
			Type:  DecisionGameOver,
			State: net.BuildContentView(sess.game.Content),
		}
		select {
		case sess.pendingCh <- over:
		case <-ctx.Done():
		}
	}()

	return sess
}

// Close abandons the game.
func (s *GameSession) Close() {
	s.cancel()
}

// sessionLogger keeps the full event log and queues each event for the
// next tool response.
type sessionLogger struct {
	*log.MemoryLogger
	session *GameSession
}

func (l *sessionLogger) Log(event log.GameEvent) {
	l.MemoryLogger.Log(event)
	l.session.appendEvent(*net.NewEventView(event))
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev net.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []net.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []net.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending
	return s.response(), nil
}

// response describes the current pending decision without consuming it.
func (s *GameSession) response() *ToolResponse {
	resp := &ToolResponse{Events: s.drainEvents()}
	pending := s.currentPending
	if pending == nil {
		return resp
	}
	resp.State = pending.State

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Outcome = s.outcome.String()
		resp.Result = s.result
		s.mu.Unlock()
		return resp
	}

	resp.Pending = &PendingView{
		Type:  pending.Type,
		Tool:  string(pending.Type),
		Drawn: pending.Drawn,
		Door:  pending.Door,
	}
	return resp
}

// answer hands resp to the waiting actor and returns the next decision.
func (s *GameSession) answer(ctx context.Context, resp any) (*ToolResponse, error) {
	select {
	case s.actor.responseCh <- resp:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.waitForPending(ctx)
}

// over reports whether the game has ended.
func (s *GameSession) over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

// respondJSON marshals a value to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
