// onirim-mcp serves Onirim over MCP on stdio: the client plays a game by
// answering each decision through tools, or runs experiments with the
// built-in actors.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/peterkuimelis/onirim/internal/config"
	onirimmcp "github.com/peterkuimelis/onirim/internal/mcp"
	"github.com/peterkuimelis/onirim/internal/storage"
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
	var (
		noDB      bool
		maxRounds int
	)
	cmd := &cobra.Command{
		Use:          "onirim-mcp",
		Short:        "Serve Onirim tools over MCP on stdio",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			// stdout carries the protocol; logs go to stderr.
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				Prefix:          "onirim-mcp",
			})
			if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
				logger.SetLevel(lvl)
			}

			svc := &onirimmcp.Service{
				DeckPath:  cfg.Decks,
				DeckName:  cfg.Deck,
				MaxRounds: maxRounds,
				Logger:    logger,
			}
			if !noDB {
				store, err := storage.Open(cfg.DBPath)
				if err != nil {
					logger.Warn("could not open results database", "error", err)
				} else {
					defer store.Close()
					svc.Store = store
				}
			}

			s := server.NewMCPServer("onirim", "1.0.0")
			svc.RegisterTools(s)
			return server.ServeStdio(s)
		},
	}
	cmd.Flags().StringVar(&cfg.Decks, "decks", cfg.Decks, "Deck YAML file (empty = built-in decks)")
	cmd.Flags().StringVar(&cfg.Deck, "deck", cfg.Deck, "Deck name")
	cmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to results database")
	cmd.Flags().BoolVar(&noDB, "no-db", false, "Do not store experiment results")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "Abort a game after this many rounds (0 = default)")
	return cmd
}
