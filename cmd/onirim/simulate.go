package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/peterkuimelis/onirim/internal/ai"
	"github.com/peterkuimelis/onirim/internal/config"
	"github.com/peterkuimelis/onirim/internal/experiment"
	"github.com/peterkuimelis/onirim/internal/storage"
)

func newSimulateCmd(cfg *config.Config) *cobra.Command {
	var (
		save      bool
		maxRounds int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play many games with one actor and report statistics",
		Long: `Play independent games in parallel with the chosen actor and print the
win ratio with its standard error. Per-game seeds derive from --seed, so a
run with a fixed seed is reproducible regardless of --workers.

Examples:
  onirim simulate --actor simple --games 100000
  onirim simulate --actor evaluate --games 5000 --workers 8 --seed 7 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmdContext(cmd), cfg, save, maxRounds)
		},
	}
	cmd.Flags().StringVar(&cfg.Actor, "actor", cfg.Actor, "Actor to play with")
	cmd.Flags().IntVar(&cfg.Games, "games", cfg.Games, "Number of games")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel workers")
	cmd.Flags().BoolVar(&save, "save", false, "Store the summary in the results database")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "Abort a game after this many rounds (0 = default)")
	return cmd
}

func runSimulate(ctx context.Context, cfg *config.Config, save bool, maxRounds int) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger := newLogger(cfg.LogLevel)
	factory, err := ai.ActorFactory(cfg.Actor)
	if err != nil {
		return err
	}
	deck, err := loadDeck(cfg)
	if err != nil {
		return err
	}

	logger.Info("simulating", "actor", cfg.Actor, "games", cfg.Games, "workers", cfg.Workers)
	res, err := experiment.Run(ctx, experiment.Config{
		Games:     cfg.Games,
		Workers:   cfg.Workers,
		Seed:      cfg.Seed,
		Deck:      deck,
		NewActor:  factory,
		MaxRounds: maxRounds,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	renderStatistic(cfg.Actor, res)

	if save {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.SaveRun(ctx, storage.Run{
			Actor:     cfg.Actor,
			Deck:      cfg.Deck,
			Seed:      res.Seed,
			Workers:   cfg.Workers,
			Statistic: res.Statistic,
			Elapsed:   res.Elapsed,
		})
		if err != nil {
			return err
		}
		fmt.Printf("\nSaved run %s\n", id)
	}
	return nil
}

func renderStatistic(actor string, res experiment.Result) {
	st := res.Statistic
	r := st.Report()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("%s actor, seed %d", actor, res.Seed))
	t.AppendRows([]table.Row{
		{"Won", st.Win},
		{"Lost", st.Lose},
		{"Finished", st.Success},
		{"Tried", st.Total},
		{"Avg opened", fmt.Sprintf("%.3f", st.AvgOpened())},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Win ratio", fmt.Sprintf("%.3f%%", r.Mean*100)},
		{"Std dev", fmt.Sprintf("%.3e (%.3f%%)", r.StdDev, r.StdDevPct)},
		{"Std err", fmt.Sprintf("%.3e (%.3f%%)", r.StdErrMean, r.StdErrMeanPct)},
		{"Elapsed", res.Elapsed.Round(time.Millisecond)},
	})
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}
