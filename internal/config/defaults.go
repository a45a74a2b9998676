package config

const (
	defaultDestination      = "subtitles"
	defaultLogDir           = "~/.local/share/dscsub/logs"
	defaultHistoryPath      = "~/.local/share/dscsub/history.db"
	defaultOutputFormat     = "vtt"
	defaultDisplayMS        = 3000
	defaultTicksPerMS       = 100
	defaultBatchWorkers     = 4
	defaultBatchMinFreeMiB  = 64
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultFallbackEncoding = "shift-jis"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Destination: defaultDestination,
			LogDir:      defaultLogDir,
		},
		Output: Output{
			Format:           defaultOutputFormat,
			DefaultDisplayMS: defaultDisplayMS,
			TicksPerMS:       defaultTicksPerMS,
		},
		Encoding: Encoding{
			Fallbacks: []string{defaultFallbackEncoding},
		},
		Batch: Batch{
			Workers:    defaultBatchWorkers,
			MinFreeMiB: defaultBatchMinFreeMiB,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
