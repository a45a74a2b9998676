package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "vtt", "toml":
	default:
		return fmt.Errorf("output.format: unsupported value %q (expected vtt or toml)", c.Output.Format)
	}

	if c.Output.DefaultDisplayMS <= 0 {
		return errors.New("output.default_display_ms must be positive")
	}
	if c.Output.TicksPerMS <= 0 {
		return errors.New("output.ticks_per_ms must be positive")
	}

	for _, name := range c.Encoding.Fallbacks {
		switch name {
		case "utf-8", "utf8", "shift-jis", "shift_jis", "sjis", "euc-jp", "eucjp":
		default:
			return fmt.Errorf("encoding.fallbacks: unsupported encoding %q", name)
		}
	}

	if c.Batch.Workers <= 0 {
		return errors.New("batch.workers must be positive")
	}
	if c.Batch.MinFreeMiB < 0 {
		return errors.New("batch.min_free_mib must not be negative")
	}

	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path is required when history is enabled")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}

	return nil
}
