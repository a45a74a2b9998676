package config

import "strings"

// normalize expands paths and canonicalizes string fields so validation and
// downstream code see one spelling of every value.
func (c *Config) normalize() error {
	for _, field := range []*string{
		&c.Paths.ScriptRoot,
		&c.Paths.Destination,
		&c.Paths.LogDir,
		&c.History.Path,
	} {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	fallbacks := c.Encoding.Fallbacks[:0]
	for _, name := range c.Encoding.Fallbacks {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			fallbacks = append(fallbacks, name)
		}
	}
	c.Encoding.Fallbacks = fallbacks

	return nil
}
