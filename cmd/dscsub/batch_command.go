package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dscsub/internal/batch"
	"dscsub/internal/history"
	"dscsub/internal/logging"
	"dscsub/internal/songdb"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var (
		dbPath      string
		destination string
		format      string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "batch <source-root>",
		Short: "Convert every script referenced by the song database",
		Long: `Walk the song database and convert each referenced script found under
<source-root>. Entries that fail are reported and skipped; the command exits
non-zero when any entry failed, after writing all successful outputs.

Example:
  dscsub batch rom --db pv_db.txt --destination subtitles`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if strings.TrimSpace(format) != "" {
				cfg.Output.Format = strings.TrimSpace(format)
			}
			if strings.TrimSpace(destination) != "" {
				cfg.Paths.Destination = destination
			}
			if cmd.Flags().Changed("workers") {
				cfg.Batch.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			db, err := songdb.Load(dbPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d script references in %s\n", db.Len(), dbPath)

			conv, err := batch.NewConverter(cfg, logger)
			if err != nil {
				return err
			}

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cfg.History.Path)
				if err != nil {
					logger.Warn("history store unavailable", "error", err)
				} else {
					defer store.Close()
					logger.Debug("recording run history", "path", store.Path())
				}
			}

			driver, err := batch.New(cfg, conv, store, logger)
			if err != nil {
				return err
			}

			summary, err := driver.Run(cmd.Context(), db, dbPath, args[0], cfg.Paths.Destination)
			if err != nil {
				return err
			}

			colorize := writerIsTerminal(cmd.OutOrStdout())
			for _, r := range summary.Results {
				if r.Err == nil {
					fmt.Fprintln(out, statusLine(true, colorize, "pv_%s %s -> %s (%d cues)",
						r.Record.SongID, r.Record.Difficulty, filepath.Base(r.OutputPath), r.CueCount))
				} else {
					fmt.Fprintln(out, statusLine(false, colorize, "pv_%s %s: %v",
						r.Record.SongID, r.Record.Difficulty, r.Err))
				}
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Entries", "Succeeded", "Failed"},
				[][]string{{
					summary.RunID,
					fmt.Sprint(len(summary.Results)),
					fmt.Sprint(summary.Succeeded()),
					fmt.Sprint(summary.Failed()),
				}},
				1, 2, 3,
			))

			if failed := summary.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d entries failed", failed, len(summary.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the song database file")
	cmd.Flags().StringVar(&destination, "destination", "", "Output directory (overrides config)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: vtt or toml (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent conversions (overrides config)")
	cmd.MarkFlagRequired("db")

	return cmd
}
