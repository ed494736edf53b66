package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/onirim/internal/ai"
	"github.com/peterkuimelis/onirim/internal/config"
	"github.com/peterkuimelis/onirim/internal/log"
	"github.com/peterkuimelis/onirim/internal/net"
)

func newHostCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Host one game whose decisions come from a remote actor",
		Long: `Listen for one actor connection, then run a game whose decisions are
requested from it over a JSON-lines protocol. Every request carries the full
state of all six zones.

Examples:
  onirim host --addr :7777 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
			defer stop()

			deck, err := loadDeck(cfg)
			if err != nil {
				return err
			}
			h := &net.Host{
				Addr:   cfg.Addr,
				Deck:   deck,
				Seed:   cfg.Seed,
				Events: log.NewTextLogger(os.Stdout),
				Logger: newLogger(cfg.LogLevel),
			}
			out, err := h.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("\nGame over: %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Address to listen on")
	return cmd
}

func newJoinCmd(cfg *config.Config) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Connect to a host and play with a local actor",
		Long: `Connect to an onirim host and answer its decision requests with one of
the built-in actors.

Examples:
  onirim join --addr localhost:7777 --actor evaluate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
			defer stop()

			factory, err := ai.ActorFactory(cfg.Actor)
			if err != nil {
				return err
			}
			client := &net.Client{Actor: factory(), Name: cfg.Actor}
			if !quiet {
				client.OnEvent = func(ev net.EventView) {
					fmt.Println(log.FormatEvent(log.GameEvent{Round: ev.Round, Phase: ev.Phase, Details: ev.Details}))
				}
			}

			newLogger(cfg.LogLevel).Info("joining", "addr", cfg.Addr, "actor", cfg.Actor)
			out, err := net.Join(ctx, cfg.Addr, client)
			if err != nil {
				return err
			}
			fmt.Printf("\nGame over: %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Host address")
	cmd.Flags().StringVar(&cfg.Actor, "actor", cfg.Actor, "Actor answering the host")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print game events")
	return cmd
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
