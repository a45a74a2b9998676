package subtitle

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"dscsub/internal/timeline"
)

type tomlCue struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
	Text  string `toml:"text"`
}

// writeTOML emits a top-level table per cue, keyed by a zero-padded index so
// lexical key order equals cue order. go-toml sorts map keys, which keeps the
// output byte-identical across runs.
func writeTOML(w io.Writer, cues []timeline.Cue, opts Options) error {
	width := 4
	for n := len(cues); n > 9999; n /= 10 {
		width++
	}

	doc := make(map[string]tomlCue, len(cues))
	for i, cue := range cues {
		key := fmt.Sprintf("cue_%0*d", width, i+1)
		doc[key] = tomlCue{
			Start: FormatTimestamp(shiftMS(cue.StartMS, opts.OffsetMS)),
			End:   FormatTimestamp(shiftMS(cue.EndMS, opts.OffsetMS)),
			Text:  cue.Text,
		}
	}

	enc := toml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}
