package config

const (
	defaultDataDir              = "~/.local/share/cadenza"
	defaultLogDir               = "~/.local/share/cadenza/logs"
	defaultAPIBind              = "127.0.0.1:7643"
	defaultLastFMBaseURL        = "https://ws.audioscrobbler.com/2.0/"
	defaultLastFMTimeoutSeconds = 15
	defaultMusicBrainzBaseURL   = "https://musicbrainz.org/ws/2"
	defaultMusicBrainzUserAgent = "cadenza/dev (scrobble enrichment)"
	defaultMusicBrainzTimeout   = 15
	defaultClaudeBaseURL        = "https://api.anthropic.com"
	defaultClaudeModel          = "claude-3-5-haiku-latest"
	defaultClaudeMaxTokens      = 1024
	defaultClaudeTimeoutSeconds = 60
	defaultQualityThreshold     = 0.8
	defaultAICallLimit          = 10
	defaultSyncPageSize         = 50
	defaultTrackLimit           = 200
	defaultNtfyTimeoutSeconds   = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		LastFM: LastFM{
			BaseURL:        defaultLastFMBaseURL,
			TimeoutSeconds: defaultLastFMTimeoutSeconds,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:        defaultMusicBrainzBaseURL,
			UserAgent:      defaultMusicBrainzUserAgent,
			TimeoutSeconds: defaultMusicBrainzTimeout,
		},
		Claude: Claude{
			BaseURL:        defaultClaudeBaseURL,
			Model:          defaultClaudeModel,
			MaxTokens:      defaultClaudeMaxTokens,
			TimeoutSeconds: defaultClaudeTimeoutSeconds,
		},
		Enrichment: Enrichment{
			QualityThreshold: defaultQualityThreshold,
			AICallLimit:      defaultAICallLimit,
			SyncPageSize:     defaultSyncPageSize,
			TrackLimit:       defaultTrackLimit,
		},
		Notifications: Notifications{
			TimeoutSeconds: defaultNtfyTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
