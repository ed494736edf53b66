package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/onirim/internal/game"
	gamelog "github.com/peterkuimelis/onirim/internal/log"
)

// ActorFactory builds a fresh actor. Each worker owns the actor it gets.
type ActorFactory func() game.Actor

// Config describes one experiment.
type Config struct {
	Games     int
	Workers   int   // 0 = 1
	Seed      int64 // master seed (0 for random); every game gets its own derived seed
	Deck      []game.Card
	NewActor  ActorFactory
	MaxRounds int
	Logger    *log.Logger // nil = discard
}

// Result is a finished experiment.
type Result struct {
	Statistic Statistic
	Seed      int64 // the master seed actually used
	Elapsed   time.Duration
}

// Run plays cfg.Games games spread across cfg.Workers goroutines. Each
// worker keeps a private Statistic and merges it into the total once its
// batch is done. Games aborted by an actor error count as tried but not
// successful; a cancelled context stops the whole experiment.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Games < 0 {
		return Result{}, fmt.Errorf("experiment: negative game count %d", cfg.Games)
	}
	if cfg.NewActor == nil {
		return Result{}, errors.New("experiment: no actor factory")
	}
	deck := cfg.Deck
	if deck == nil {
		deck = game.StandardDeck()
	}
	workers := max(cfg.Workers, 1)
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Derive per-game seeds up front so the outcome does not depend on
	// how games are scheduled across workers.
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, cfg.Games)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	start := time.Now()
	var (
		mu    sync.Mutex
		total Statistic
	)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		batch := batchOf(seeds, w, workers)
		if len(batch) == 0 {
			continue
		}
		g.Go(func() error {
			var local Statistic
			actor := cfg.NewActor()
			for _, gameSeed := range batch {
				if err := gctx.Err(); err != nil {
					return err
				}
				err := playOne(gctx, deck, actor, gameSeed, cfg.MaxRounds, &local)
				if err != nil {
					if ctxErr := gctx.Err(); ctxErr != nil {
						return ctxErr
					}
					logger.Warn("game aborted", "worker", w, "seed", gameSeed, "err", err)
				}
			}

			mu.Lock()
			total.Add(local)
			mu.Unlock()
			logger.Debug("worker done", "worker", w, "games", len(batch), "won", local.Win)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("experiment: %w", err)
	}

	res := Result{Statistic: total, Seed: seed, Elapsed: time.Since(start)}
	logger.Info("experiment finished",
		"games", total.Total,
		"won", total.Win,
		"ratio", fmt.Sprintf("%.3f", total.WinRatio()),
		"elapsed", res.Elapsed.Round(time.Millisecond),
	)
	return res, nil
}

// playOne runs a single game and records it in stat.
func playOne(ctx context.Context, deck []game.Card, actor game.Actor, seed int64, maxRounds int, stat *Statistic) error {
	g := game.NewGame(game.GameConfig{
		Deck:      deck,
		Seed:      seed,
		Observer:  observer{stat: stat},
		Logger:    gamelog.NopLogger{},
		MaxRounds: maxRounds,
	}, actor)
	if _, err := g.Run(ctx); err != nil {
		stat.RecordFailure()
		return err
	}
	return nil
}

// batchOf returns worker w's share of the seeds.
func batchOf(seeds []int64, w, workers int) []int64 {
	per := len(seeds) / workers
	extra := len(seeds) % workers
	lo := w*per + min(w, extra)
	hi := lo + per
	if w < extra {
		hi++
	}
	return seeds[lo:hi]
}
