package timeline

import (
	"errors"
	"io"
	"log/slog"

	"dscsub/internal/dsc"
)

// Cue is one subtitle entry. Start and End are milliseconds from the top of
// the song; Start <= End always holds for emitted cues.
type Cue struct {
	StartMS uint64
	EndMS   uint64
	Text    string
}

// Options tunes a Build run.
type Options struct {
	// DefaultDisplayMS closes a lyric still open when the stream ends.
	DefaultDisplayMS uint64
	// TicksPerMS converts TIME arguments to milliseconds. The production
	// format counts 100 ticks per millisecond.
	TicksPerMS uint64
	Logger     *slog.Logger
}

const (
	// DefaultDisplayMS is the fallback duration for a trailing lyric.
	DefaultDisplayMS = 3000
	// DefaultTicksPerMS matches the production script time base.
	DefaultTicksPerMS = 100
)

func (o Options) withDefaults() Options {
	if o.DefaultDisplayMS == 0 {
		o.DefaultDisplayMS = DefaultDisplayMS
	}
	if o.TicksPerMS == 0 {
		o.TicksPerMS = DefaultTicksPerMS
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Source yields instructions until io.EOF. *dsc.Decoder satisfies it.
type Source interface {
	Next() (dsc.Instruction, error)
}

// Build consumes the instruction stream and returns the cue sequence.
// Consecutive lyrics at the identical clock value merge into one multi-line
// cue; a lyric at a later clock value first closes the open one at the
// current clock, so back-to-back lines become adjacent cues. Zero-duration
// cues are dropped. Decode errors and clock regressions abort the file.
func Build(src Source, opts Options) ([]Cue, error) {
	opts = opts.withDefaults()

	var (
		cues    []Cue
		clock   uint64
		pending *Cue
	)

	emit := func(end uint64) {
		pending.EndMS = end
		if pending.EndMS > pending.StartMS {
			cues = append(cues, *pending)
		}
		pending = nil
	}

	for {
		ins, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return cues, err
		}

		switch {
		case ins.IsTime():
			t := uint64(ins.TimeTicks()) / opts.TicksPerMS
			if t < clock {
				return cues, &ClockRegressionError{Offset: ins.Offset, ClockMS: clock, ToMS: t}
			}
			clock = t
			if pending != nil {
				emit(clock)
			}
		case ins.IsLyric():
			if ins.Text == "" {
				opts.Logger.Debug("skipping empty lyric", "offset", ins.Offset, "time_ms", clock)
				continue
			}
			switch {
			case pending != nil && pending.StartMS == clock:
				pending.Text += "\n" + ins.Text
			case pending != nil:
				emit(clock)
				pending = &Cue{StartMS: clock, Text: ins.Text}
			default:
				pending = &Cue{StartMS: clock, Text: ins.Text}
			}
		case ins.IsEnd():
			if pending != nil {
				emit(pending.StartMS + opts.DefaultDisplayMS)
			}
			return cues, nil
		}
	}

	// Stream exhausted without an END instruction.
	if pending != nil {
		emit(pending.StartMS + opts.DefaultDisplayMS)
	}
	return cues, nil
}
