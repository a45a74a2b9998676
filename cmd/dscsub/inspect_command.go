package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dscsub/internal/dsc"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var (
		dscPath string
		limit   int
		lyrics  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump the decoded instructions of a script file",
		Long: `Decode a script file and print its instruction stream, one per line.
Useful for diagnosing scripts that fail to convert; decoding stops at the
first malformed instruction and reports its byte offset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			raw, err := os.ReadFile(dscPath)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			text, err := dsc.NewTextDecoder(cfg.Encoding.Fallbacks...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			dec := dsc.NewDecoder(raw, text)
			printed := 0
			for limit <= 0 || printed < limit {
				ins, err := dec.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("decode %s: %w", dscPath, err)
				}
				if lyrics && !ins.IsLyric() && !ins.IsTime() {
					continue
				}
				line := fmt.Sprintf("%08x  %-20s %v", ins.Offset, ins.Name, ins.Args)
				if ins.Text != "" {
					line += fmt.Sprintf("  %q", ins.Text)
				}
				fmt.Fprintln(out, strings.TrimRight(line, " "))
				printed++
			}
			fmt.Fprintf(out, "%d instructions, %d string table entries\n", printed, dec.StringCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&dscPath, "dsc", "", "Path to the script file")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many instructions (0 = all)")
	cmd.Flags().BoolVar(&lyrics, "lyrics", false, "Show only TIME and LYRIC instructions")
	cmd.MarkFlagRequired("dsc")

	return cmd
}
