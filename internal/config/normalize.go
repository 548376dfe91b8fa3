package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBackend()
	c.normalizeDefaults()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBackend() {
	c.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backend.BaseURL), "/")
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Backend.Retries < 0 {
		c.Backend.Retries = defaultRetries
	}
	if c.Backend.RetryBaseDelayMS <= 0 {
		c.Backend.RetryBaseDelayMS = defaultRetryBaseDelayMS
	}
	if c.Render.PollIntervalMS <= 0 {
		c.Render.PollIntervalMS = defaultPollIntervalMS
	}
	if c.Render.PollCeilingMinutes <= 0 {
		c.Render.PollCeilingMinutes = defaultPollCeilingMinutes
	}
}

func (c *Config) normalizeDefaults() {
	c.Defaults.Provider = strings.ToLower(strings.TrimSpace(c.Defaults.Provider))
	c.Defaults.VoiceProvider = strings.ToLower(strings.TrimSpace(c.Defaults.VoiceProvider))
	c.Defaults.ImageProvider = strings.ToLower(strings.TrimSpace(c.Defaults.ImageProvider))
	c.Defaults.Format = strings.ToLower(strings.TrimSpace(c.Defaults.Format))
	if c.Defaults.DurationSec <= 0 {
		c.Defaults.DurationSec = defaultDurationSec
	}
	platforms := make([]string, 0, len(c.Defaults.Platforms))
	for _, platform := range c.Defaults.Platforms {
		trimmed := strings.ToLower(strings.TrimSpace(platform))
		if trimmed != "" {
			platforms = append(platforms, trimmed)
		}
	}
	c.Defaults.Platforms = platforms
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
