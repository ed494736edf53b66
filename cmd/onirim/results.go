package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/peterkuimelis/onirim/internal/config"
	"github.com/peterkuimelis/onirim/internal/storage"
)

func newResultsCmd(cfg *config.Config) *cobra.Command {
	var (
		limit  int
		actor  string
		remove string
	)
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show stored experiment results",
		Long: `List the most recent experiment summaries saved with 'simulate --save'.
With --actor, only that actor's runs are listed, followed by its totals.

Examples:
  onirim results
  onirim results --actor evaluate --limit 5
  onirim results --delete 6f1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			store, err := storage.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if remove != "" {
				if err := store.DeleteRun(ctx, remove); err != nil {
					return err
				}
				fmt.Printf("Deleted run %s\n", remove)
				return nil
			}

			runs, err := store.RecentRuns(ctx, actor, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No results recorded yet.")
				fmt.Println()
				fmt.Println("Run 'onirim simulate --save' to record one.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Date", "Actor", "Deck", "Seed", "Won", "Finished", "Tried", "Win ratio", "Avg opened"})
			for _, r := range runs {
				st := r.Statistic
				t.AppendRow(table.Row{
					shortID(r.ID),
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					r.Actor,
					r.Deck,
					r.Seed,
					st.Win,
					st.Success,
					st.Total,
					fmt.Sprintf("%.3f%%", st.WinRatio()*100),
					fmt.Sprintf("%.3f", st.AvgOpened()),
				})
			}
			if actor != "" {
				totals, err := store.ActorTotals(ctx, actor)
				if err != nil {
					return err
				}
				t.AppendFooter(table.Row{"", "", actor, "", "total", totals.Win, totals.Success, totals.Total,
					fmt.Sprintf("%.3f%%", totals.WinRatio()*100), fmt.Sprintf("%.3f", totals.AvgOpened())})
			}
			t.SetStyle(table.StyleLight)
			t.SetColumnConfigs([]table.ColumnConfig{
				{Number: 5, Align: text.AlignRight},
				{Number: 9, Align: text.AlignRight},
			})
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")
	cmd.Flags().StringVar(&actor, "actor", "", "Only runs of this actor")
	cmd.Flags().StringVar(&remove, "delete", "", "Delete the run with this ID")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
