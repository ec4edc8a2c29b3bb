package config

const (
	defaultDataDir = "~/.local/share/binder"
	defaultLogDir  = "~/.local/share/binder/logs"

	defaultCatalogSource         = "file"
	defaultCatalogFile           = "~/.local/share/binder/catalog.json"
	defaultCatalogRequestTimeout = 10

	defaultStabilityWindowMS  = 400
	defaultDedupWindowSeconds = 10

	defaultAutoConfirmThreshold = 80
	defaultDisambiguationMargin = 20
	defaultCandidateFloor       = 20
	defaultCandidateLimit       = 3

	defaultNotifyRequestTimeout = 10

	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Catalog: Catalog{
			Source:         defaultCatalogSource,
			File:           defaultCatalogFile,
			RequestTimeout: defaultCatalogRequestTimeout,
		},
		Scan: Scan{
			StabilityWindowMS:  defaultStabilityWindowMS,
			DedupWindowSeconds: defaultDedupWindowSeconds,
		},
		Identify: Identify{
			AutoConfirmThreshold: defaultAutoConfirmThreshold,
			DisambiguationMargin: defaultDisambiguationMargin,
			CandidateFloor:       defaultCandidateFloor,
			CandidateLimit:       defaultCandidateLimit,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Adds:           true,
			Reviews:        true,
			Errors:         true,
		},
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}
