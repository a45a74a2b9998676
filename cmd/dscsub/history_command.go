package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dscsub/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded batch conversion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled in configuration")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				entries, err := store.RunEntries(cmd.Context(), runID)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.SongID, e.Difficulty, e.Status, e.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Song", "Difficulty", "Status", "Detail"}, rows))
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format(time.DateTime),
					run.Format,
					fmt.Sprint(run.Total),
					fmt.Sprint(run.Succeeded),
					fmt.Sprint(run.Failed),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Format", "Total", "OK", "Failed"}, rows, 3, 4, 5))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show per-entry results for one run id")
	return cmd
}
