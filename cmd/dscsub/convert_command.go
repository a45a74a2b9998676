package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dscsub/internal/batch"
	"dscsub/internal/logging"
	"dscsub/internal/songdb"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		dscPath     string
		dbPath      string
		destination string
		format      string
		offset      float64
	)

	cmd := &cobra.Command{
		Use:   "convert <song-id>",
		Short: "Convert a single script file to a subtitle document",
		Long: `Convert one DSC script to a subtitle document. The database file supplies
the song's display name for the document header.

Example:
  dscsub convert 4939 --dsc rom/script/pv_4939_hard.dsc --db pv_db.txt --destination subtitles`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if strings.TrimSpace(format) != "" {
				cfg.Output.Format = strings.TrimSpace(format)
			}
			if cmd.Flags().Changed("offset") {
				cfg.Output.OffsetSeconds = offset
			}
			if strings.TrimSpace(destination) != "" {
				cfg.Paths.Destination = destination
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			songID := strings.TrimPrefix(strings.TrimSpace(args[0]), "pv_")
			db, err := songdb.Load(dbPath)
			if err != nil {
				return err
			}

			conv, err := batch.NewConverter(cfg, logger)
			if err != nil {
				return err
			}
			doc, cueCount, err := conv.ConvertFile(dscPath, db.SongName(songID))
			if err != nil {
				return fmt.Errorf("convert %s: %w", dscPath, err)
			}

			if err := os.MkdirAll(cfg.Paths.Destination, 0o755); err != nil {
				return fmt.Errorf("create destination: %w", err)
			}
			difficulty := difficultyFromScriptName(dscPath)
			name := fmt.Sprintf("pv_%s_%s.%s", songID, difficulty, conv.Format().Extension())
			outputPath := filepath.Join(cfg.Paths.Destination, name)
			if err := os.WriteFile(outputPath, doc, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d cues)\n", outputPath, cueCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&dscPath, "dsc", "", "Path to the script file")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the song database file")
	cmd.Flags().StringVar(&destination, "destination", "", "Output directory (overrides config)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: vtt or toml (overrides config)")
	cmd.Flags().Float64Var(&offset, "offset", 0, "Shift cues by this many seconds")
	cmd.MarkFlagRequired("dsc")
	cmd.MarkFlagRequired("db")

	return cmd
}

// difficultyFromScriptName recovers the difficulty label from names like
// pv_4939_hard.dsc; single-file conversions have no database key to consult.
func difficultyFromScriptName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.LastIndex(base, "_"); i >= 0 && i+1 < len(base) {
		tail := base[i+1:]
		if tail != "" && !strings.ContainsAny(tail, "0123456789") {
			return tail
		}
	}
	return "common"
}
