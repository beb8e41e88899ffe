package config

const (
	defaultDurationToleranceMS       = 700
	defaultTimestampToleranceSeconds = 5
	defaultSyncToleranceSeconds      = 5
	defaultSyncPolicy                = "split"
	defaultOutputBaseName            = "source"
	defaultLogFormat                 = "console"
	defaultLogLevel                  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Correlation: Correlation{
			DurationToleranceMS:       defaultDurationToleranceMS,
			TimestampToleranceSeconds: defaultTimestampToleranceSeconds,
		},
		Assembly: Assembly{
			SyncToleranceSeconds: defaultSyncToleranceSeconds,
			SyncPolicy:           defaultSyncPolicy,
			OutputBaseName:       defaultOutputBaseName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
