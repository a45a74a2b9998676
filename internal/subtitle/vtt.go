package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"dscsub/internal/timeline"
)

const cueSeparator = "-->"

func writeVTT(w io.Writer, cues []timeline.Cue, opts Options) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("WEBVTT\n")
	for _, note := range opts.Notes {
		if strings.TrimSpace(note) == "" {
			continue
		}
		fmt.Fprintf(bw, "NOTE %s\n", note)
	}
	bw.WriteString("\n")

	for i, cue := range cues {
		if err := validateCueText(cue.Text); err != nil {
			return fmt.Errorf("cue %d: %w", i+1, err)
		}
		start := shiftMS(cue.StartMS, opts.OffsetMS)
		end := shiftMS(cue.EndMS, opts.OffsetMS)
		fmt.Fprintf(bw, "%s %s %s\n", FormatTimestamp(start), cueSeparator, FormatTimestamp(end))
		bw.WriteString(cue.Text)
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}

// validateCueText rejects text that would corrupt the cue block structure.
// WebVTT offers no escape for the arrow sequence or for blank lines inside a
// cue payload.
func validateCueText(text string) error {
	if strings.Contains(text, cueSeparator) {
		return fmt.Errorf("text contains cue separator %q", cueSeparator)
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			return fmt.Errorf("text contains a blank line")
		}
	}
	return nil
}
