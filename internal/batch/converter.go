package batch

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"dscsub/internal/config"
	"dscsub/internal/dsc"
	"dscsub/internal/subtitle"
	"dscsub/internal/timeline"
)

// Converter holds the per-run conversion settings. It is safe for concurrent
// use; every ConvertFile call owns its buffer and clock.
type Converter struct {
	format   subtitle.Format
	text     *dsc.TextDecoder
	timeline timeline.Options
	offsetMS int64
	logger   *slog.Logger
}

// NewConverter builds a converter from configuration.
func NewConverter(cfg *config.Config, logger *slog.Logger) (*Converter, error) {
	format, err := subtitle.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	text, err := dsc.NewTextDecoder(cfg.Encoding.Fallbacks...)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{
		format: format,
		text:   text,
		timeline: timeline.Options{
			DefaultDisplayMS: uint64(cfg.Output.DefaultDisplayMS),
			TicksPerMS:       uint64(cfg.Output.TicksPerMS),
			Logger:           logger,
		},
		offsetMS: int64(cfg.Output.OffsetSeconds * 1000),
		logger:   logger,
	}, nil
}

// Format returns the configured output format.
func (c *Converter) Format() subtitle.Format { return c.format }

// ConvertFile reads one script file and returns the serialized subtitle
// document plus the number of cues it holds. songName, when non-empty, is
// carried into the document as a NOTE header.
func (c *Converter) ConvertFile(scriptPath, songName string) ([]byte, int, error) {
	raw, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, 0, fmt.Errorf("read script: %w", err)
	}
	return c.Convert(raw, songName)
}

// Convert runs the decode → timeline → serialize pipeline over an in-memory
// script buffer.
func (c *Converter) Convert(raw []byte, songName string) ([]byte, int, error) {
	cues, err := timeline.Build(dsc.NewDecoder(raw, c.text), c.timeline)
	if err != nil {
		return nil, 0, err
	}

	opts := subtitle.Options{OffsetMS: c.offsetMS}
	if songName != "" {
		opts.Notes = append(opts.Notes, songName)
	}
	if c.offsetMS != 0 {
		opts.Notes = append(opts.Notes, fmt.Sprintf("Offset: %.3f seconds", float64(c.offsetMS)/1000))
	}

	var buf bytes.Buffer
	if err := subtitle.Write(&buf, c.format, cues, opts); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(cues), nil
}
