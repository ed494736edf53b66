// onirim simulates the Onirim solitaire card game with scripted and
// evaluation-based actors.
//
// Usage:
//
//	onirim simulate          - Play many games with one actor and report statistics
//	onirim play              - Play one game and print its event log
//	onirim host              - Host one game whose decisions come from a remote actor
//	onirim join              - Connect to a host and play with a local actor
//	onirim results           - Show stored experiment results
//
// Every flag defaults to the matching ONIRIM_* environment variable.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/peterkuimelis/onirim/internal/ai"
	"github.com/peterkuimelis/onirim/internal/config"
	"github.com/peterkuimelis/onirim/internal/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(&cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "onirim",
		Short: "Onirim solitaire simulator",
		Long: `Onirim is a solitaire card game: open all eight dream doors before the
deck runs out. This tool plays it with built-in actors (` + strings.Join(ai.ActorNames(), ", ") + `)
or with a remote actor over TCP, and keeps experiment summaries in SQLite.

Examples:
  onirim simulate --actor evaluate --games 10000 --workers 8 --save
  onirim play --actor simple --seed 42
  onirim host --addr :7777
  onirim join --addr localhost:7777 --actor evaluate
  onirim results --actor evaluate`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
	}

	flags := root.PersistentFlags()
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 = random based on time)")
	flags.StringVar(&cfg.Decks, "decks", cfg.Decks, "Deck YAML file (empty = built-in decks)")
	flags.StringVar(&cfg.Deck, "deck", cfg.Deck, "Deck name")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to results database")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	root.AddCommand(newSimulateCmd(cfg))
	root.AddCommand(newPlayCmd(cfg))
	root.AddCommand(newHostCmd(cfg))
	root.AddCommand(newJoinCmd(cfg))
	root.AddCommand(newResultsCmd(cfg))
	return root
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "onirim",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func loadDeck(cfg *config.Config) ([]game.Card, error) {
	deck, err := game.DeckByName(cfg.Decks, cfg.Deck)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	return deck, nil
}
