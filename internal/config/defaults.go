package config

const (
	defaultLightMaxMB  = 10
	defaultMediumMaxMB = 100
	defaultCalendar    = "gregorian"
	defaultHash        = "sha256"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultLogDir      = "~/.local/share/sortd/logs"
	defaultHistoryPath = "~/.local/share/sortd/history.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Sizes: Sizes{
			LightMaxMB:  defaultLightMaxMB,
			MediumMaxMB: defaultMediumMaxMB,
		},
		Date: Date{
			Calendar: defaultCalendar,
		},
		Duplicates: Duplicates{
			Hash: defaultHash,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
		History: History{
			Path: defaultHistoryPath,
		},
	}
}
