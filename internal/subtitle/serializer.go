package subtitle

import (
	"fmt"
	"io"
	"strings"

	"dscsub/internal/timeline"
)

// Format selects the output document type.
type Format string

const (
	FormatVTT  Format = "vtt"
	FormatTOML Format = "toml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format %q (expected vtt or toml)", value)
	}
}

// Extension returns the file extension for a format, without the dot.
func (f Format) Extension() string { return string(f) }

// Options applies to a single serialized document.
type Options struct {
	// Notes are emitted as WebVTT NOTE lines (song name, offset remark).
	// TOML output ignores them.
	Notes []string
	// OffsetMS shifts every cue; negative shifts clamp at zero.
	OffsetMS int64
}

// Write serializes cues in the selected format. An empty cue sequence is a
// valid, empty document.
func Write(w io.Writer, format Format, cues []timeline.Cue, opts Options) error {
	switch format {
	case FormatVTT:
		return writeVTT(w, cues, opts)
	case FormatTOML:
		return writeTOML(w, cues, opts)
	default:
		return fmt.Errorf("unsupported subtitle format %q", string(format))
	}
}

func shiftMS(ms uint64, offset int64) uint64 {
	if offset >= 0 {
		return ms + uint64(offset)
	}
	neg := uint64(-offset)
	if neg >= ms {
		return 0
	}
	return ms - neg
}
