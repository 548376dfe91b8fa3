package config

const (
	defaultBaseURL = "http://127.0.0.1:5000"
	// defaultTimeoutSeconds stays under typical reverse-proxy idle limits.
	defaultTimeoutSeconds     = 110
	defaultRetries            = 2
	defaultRetryBaseDelayMS   = 800
	defaultPollIntervalMS     = 1500
	defaultPollCeilingMinutes = 20

	defaultProvider      = "claude"
	defaultStoryType     = "curiosidade"
	defaultFormat        = "tiktok"
	defaultDurationSec   = 60
	defaultVoiceProvider = "elevenlabs"
	defaultVoiceProfile  = "Rachel"
	defaultVisualStyle   = "cinematic"
	defaultImageProvider = "openai"

	defaultDataDir = "~/.local/share/clipstudio"
	defaultLogDir  = "~/.local/share/clipstudio/logs"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Backend: Backend{
			BaseURL:          defaultBaseURL,
			TimeoutSeconds:   defaultTimeoutSeconds,
			Retries:          defaultRetries,
			RetryBaseDelayMS: defaultRetryBaseDelayMS,
		},
		Render: Render{
			PollIntervalMS:     defaultPollIntervalMS,
			PollCeilingMinutes: defaultPollCeilingMinutes,
		},
		Defaults: Defaults{
			Provider:      defaultProvider,
			StoryType:     defaultStoryType,
			Format:        defaultFormat,
			DurationSec:   defaultDurationSec,
			VoiceProvider: defaultVoiceProvider,
			VoiceProfile:  defaultVoiceProfile,
			VisualStyle:   defaultVisualStyle,
			ImageProvider: defaultImageProvider,
			Platforms:     []string{"tiktok"},
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
