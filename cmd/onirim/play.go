package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/onirim/internal/ai"
	"github.com/peterkuimelis/onirim/internal/config"
	"github.com/peterkuimelis/onirim/internal/game"
	"github.com/peterkuimelis/onirim/internal/log"
)

func newPlayCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game and print its event log",
		Long: `Play a single game with the chosen actor and print every event.

Examples:
  onirim play --actor evaluate --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmdContext(cmd), cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.Actor, "actor", cfg.Actor, "Actor to play with")
	return cmd
}

func runPlay(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	factory, err := ai.ActorFactory(cfg.Actor)
	if err != nil {
		return err
	}
	deck, err := loadDeck(cfg)
	if err != nil {
		return err
	}

	g := game.NewGame(game.GameConfig{
		Deck:   deck,
		Seed:   cfg.Seed,
		Logger: log.NewTextLogger(os.Stdout),
	}, factory())

	out, err := g.Run(ctx)
	if err != nil {
		return fmt.Errorf("game aborted in round %d: %w", g.Round(), err)
	}
	fmt.Println()
	fmt.Printf("%s after %d rounds with %d doors opened\n", out, g.Round(), len(g.Content.Opened))
	return nil
}
