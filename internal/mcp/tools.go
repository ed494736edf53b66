// Package mcp exposes Onirim as MCP tools: an MCP client can play a game as
// the actor, or run experiments with the built-in actors.
package mcp

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/onirim/internal/ai"
	"github.com/peterkuimelis/onirim/internal/experiment"
	"github.com/peterkuimelis/onirim/internal/game"
	"github.com/peterkuimelis/onirim/internal/net"
	"github.com/peterkuimelis/onirim/internal/storage"
)

// maxExperimentGames bounds run_experiment so a tool call cannot hang the server.
const maxExperimentGames = 100000

// Service holds the tool configuration and the single active game.
type Service struct {
	DeckPath  string // deck YAML file; empty uses the built-in decks
	DeckName  string
	MaxRounds int
	Store     *storage.Store   // optional; experiment results are saved when set
	Logger    *charmlog.Logger // nil = discard

	mu     sync.Mutex
	active *GameSession
}

// RegisterTools adds all game tools to the MCP server.
func (s *Service) RegisterTools(srv *server.MCPServer) {
	srv.AddTool(startGameTool(), s.handleStartGame)
	srv.AddTool(phase1ActionTool(), s.handlePhase1Action)
	srv.AddTool(keyDiscardReactTool(), s.handleKeyDiscardReact)
	srv.AddTool(openDoorTool(), s.handleOpenDoor)
	srv.AddTool(nightmareActionTool(), s.handleNightmareAction)
	srv.AddTool(getGameStateTool(), s.handleGetGameState)
	srv.AddTool(runExperimentTool(), s.handleRunExperiment)
	srv.AddTool(listRunsTool(), s.handleListRuns)
}

var discardLogger = charmlog.New(io.Discard)

// logger never writes to s, so concurrent tool handlers may call it.
func (s *Service) logger() *charmlog.Logger {
	if s.Logger == nil {
		return discardLogger
	}
	return s.Logger
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Onirim solitaire game. You make every decision: the response "+
			"lists the events so far, the full state of all six zones and the pending decision, which names "+
			"the tool to answer it with. Top of the deck (undrawn) and of the exploration line is the last element."),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed; 0 or absent for a random game")),
	)
}

func phase1ActionTool() mcp.Tool {
	return mcp.NewTool("phase1_action",
		mcp.WithDescription("Play a hand card onto the exploration line or discard it. "+
			"Use this when the pending decision type is 'phase1_action'."),
		mcp.WithString("action", mcp.Required(), mcp.Description("'play' or 'discard'")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the hand card")),
	)
}

func keyDiscardReactTool() mcp.Tool {
	return mcp.NewTool("key_discard_react",
		mcp.WithDescription("Answer the prophecy after discarding a Key: discard one of the five drawn cards "+
			"and put the others back on the deck. Use this when the pending decision type is 'key_discard_react'."),
		mcp.WithNumber("discard", mcp.Required(), mcp.Description("0-based index of the drawn card to discard")),
		mcp.WithString("keep", mcp.Description("Space-separated 0-based indices of the other four drawn cards; "+
			"the first ends on top of the deck. Defaults to drawn order.")),
	)
}

func openDoorTool() mcp.Tool {
	return mcp.NewTool("open_door",
		mcp.WithDescription("Decide whether to spend a matching Key from your hand to open the drawn Door. "+
			"Use this when the pending decision type is 'open_door'."),
		mcp.WithBoolean("answer", mcp.Required(), mcp.Description("true to open the door, false to send it to limbo")),
	)
}

func nightmareActionTool() mcp.Tool {
	return mcp.NewTool("nightmare_action",
		mcp.WithDescription("Resolve a drawn Nightmare. Use this when the pending decision type is 'nightmare_action'."),
		mcp.WithString("action", mcp.Required(), mcp.Description("'by_key' (discard a Key from hand), 'by_door' "+
			"(return an opened door to limbo), 'by_hand' (discard the whole hand) or 'by_deck' (discard the top five cards)")),
		mcp.WithNumber("index", mcp.Description("Hand index for by_key, opened-door index for by_door")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

func runExperimentTool() mcp.Tool {
	return mcp.NewTool("run_experiment",
		mcp.WithDescription("Play many games with a built-in actor and report win statistics."),
		mcp.WithString("actor", mcp.Required(), mcp.Description("Actor name: "+strings.Join(ai.ActorNames(), ", "))),
		mcp.WithNumber("games", mcp.Required(), mcp.Description("Number of games to play")),
		mcp.WithNumber("workers", mcp.Description("Parallel workers (default 1)")),
		mcp.WithNumber("seed", mcp.Description("Master seed; 0 or absent for random")),
	)
}

func listRunsTool() mcp.Tool {
	return mcp.NewTool("list_runs",
		mcp.WithDescription("List recently stored experiment runs, newest first."),
		mcp.WithString("actor", mcp.Description("Only runs of this actor")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs (default 20)")),
	)
}

// --- Tool handlers ---

func (s *Service) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && !s.active.over() {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	deck, err := game.DeckByName(s.DeckPath, s.deckName())
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load deck: %v", err), nil
	}

	seed := int64(request.GetInt("seed", 0))
	sess := NewGameSession(deck, seed, s.MaxRounds)
	s.active = sess
	s.logger().Info("game started", "deck", s.deckName(), "seed", seed)

	sess.decide.Lock()
	defer sess.decide.Unlock()
	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (s *Service) deckName() string {
	if s.DeckName == "" {
		return game.StandardDeckName
	}
	return s.DeckName
}

// session returns the active game, or a tool error when there is none.
func (s *Service) session() (*GameSession, *mcp.CallToolResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	return s.active, nil
}

// respond checks that the pending decision is of type want, lets build turn
// the request into the actor's answer, and returns the next decision.
func (s *Service) respond(ctx context.Context, want DecisionType, build func(p *PendingDecision) (any, error)) (*mcp.CallToolResult, error) {
	sess, errResult := s.session()
	if errResult != nil {
		return errResult, nil
	}

	sess.decide.Lock()
	defer sess.decide.Unlock()

	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Type == DecisionGameOver {
		return mcp.NewToolResultError("The game is over. Use start_game to play again."), nil
	}
	if pending.Type != want {
		return mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want), nil
	}

	answer, err := build(pending)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := sess.answer(ctx, answer)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if resp.GameOver {
		s.logger().Info("game over", "outcome", resp.Outcome, "result", resp.Result)
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (s *Service) handlePhase1Action(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond(ctx, DecisionPhase1Action, func(p *PendingDecision) (any, error) {
		action, err := net.ParsePhase1Action(request.GetString("action", ""))
		if err != nil {
			return nil, err
		}
		index := request.GetInt("index", -1)
		if index < 0 || index >= len(p.content.Hand) {
			return nil, fmt.Errorf("invalid index %d, must be 0-%d", index, len(p.content.Hand)-1)
		}
		return game.Phase1Choice{Action: action, Index: index}, nil
	})
}

func (s *Service) handleKeyDiscardReact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond(ctx, DecisionKeyDiscardReact, func(p *PendingDecision) (any, error) {
		r := game.KeyReaction{Discard: request.GetInt("discard", -1)}
		keep, err := parseIndices(request.GetString("keep", ""))
		if err != nil {
			return nil, err
		}
		if keep == nil {
			for i := range p.drawn {
				if i != r.Discard {
					keep = append(keep, i)
				}
			}
		}
		r.Keep = keep
		if err := game.ValidateKeyReaction(p.drawn, r); err != nil {
			return nil, err
		}
		return r, nil
	})
}

func (s *Service) handleOpenDoor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond(ctx, DecisionOpenDoor, func(p *PendingDecision) (any, error) {
		return request.GetBool("answer", false), nil
	})
}

func (s *Service) handleNightmareAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond(ctx, DecisionNightmareAction, func(p *PendingDecision) (any, error) {
		action, err := net.ParseNightmareAction(request.GetString("action", ""))
		if err != nil {
			return nil, err
		}
		choice := game.NightmareChoice{Action: action, Index: request.GetInt("index", 0)}
		// Resolve on a copy so an invalid choice stays a tool error instead
		// of aborting the game. Losing choices are legal.
		if _, err := game.ResolveNightmare(p.content.Clone(), choice); err != nil {
			return nil, err
		}
		return choice, nil
	})
}

func (s *Service) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := s.session()
	if errResult != nil {
		return errResult, nil
	}
	sess.decide.Lock()
	defer sess.decide.Unlock()
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

// ExperimentResponse is the JSON returned by run_experiment.
type ExperimentResponse struct {
	ID        string               `json:"id,omitempty"`
	Actor     string               `json:"actor"`
	Seed      int64                `json:"seed"`
	Statistic experiment.Statistic `json:"statistic"`
	WinRatio  float64              `json:"win_ratio"`
	AvgOpened float64              `json:"avg_opened"`
	StdErr    float64              `json:"std_err"`
	ElapsedMS int64                `json:"elapsed_ms"`
}

func (s *Service) handleRunExperiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("actor", "")
	factory, err := ai.ActorFactory(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	games := request.GetInt("games", 0)
	if games < 1 || games > maxExperimentGames {
		return mcp.NewToolResultErrorf("games must be between 1 and %d", maxExperimentGames), nil
	}
	deck, err := game.DeckByName(s.DeckPath, s.deckName())
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load deck: %v", err), nil
	}
	workers := max(request.GetInt("workers", 1), 1)

	res, err := experiment.Run(ctx, experiment.Config{
		Games:     games,
		Workers:   workers,
		Seed:      int64(request.GetInt("seed", 0)),
		Deck:      deck,
		NewActor:  factory,
		MaxRounds: s.MaxRounds,
		Logger:    s.logger(),
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Experiment failed: %v", err), nil
	}

	resp := ExperimentResponse{
		Actor:     name,
		Seed:      res.Seed,
		Statistic: res.Statistic,
		WinRatio:  res.Statistic.WinRatio(),
		AvgOpened: res.Statistic.AvgOpened(),
		StdErr:    res.Statistic.Report().StdErrMean,
		ElapsedMS: res.Elapsed.Milliseconds(),
	}
	if s.Store != nil {
		id, err := s.Store.SaveRun(ctx, storage.Run{
			Actor:     name,
			Deck:      s.deckName(),
			Seed:      res.Seed,
			Workers:   workers,
			Statistic: res.Statistic,
			Elapsed:   res.Elapsed,
		})
		if err != nil {
			s.logger().Warn("cannot save run", "err", err)
		}
		resp.ID = id
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// RunView is one stored run as listed by list_runs.
type RunView struct {
	ID        string               `json:"id"`
	Actor     string               `json:"actor"`
	Deck      string               `json:"deck"`
	Seed      int64                `json:"seed"`
	Statistic experiment.Statistic `json:"statistic"`
	WinRatio  float64              `json:"win_ratio"`
	CreatedAt time.Time            `json:"created_at"`
}

func (s *Service) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.Store == nil {
		return mcp.NewToolResultError("No results database is configured."), nil
	}
	runs, err := s.Store.RecentRuns(ctx, request.GetString("actor", ""), request.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to list runs: %v", err), nil
	}
	views := make([]RunView, 0, len(runs))
	for _, r := range runs {
		views = append(views, RunView{
			ID:        r.ID,
			Actor:     r.Actor,
			Deck:      r.Deck,
			Seed:      r.Seed,
			Statistic: r.Statistic,
			WinRatio:  r.Statistic.WinRatio(),
			CreatedAt: r.CreatedAt,
		})
	}
	return mcp.NewToolResultText(respondJSON(views)), nil
}

// parseIndices parses space-separated integers. An empty string yields nil.
func parseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var indices []int
	for _, p := range strings.Fields(s) {
		idx, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: must be an integer", p)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}
