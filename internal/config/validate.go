package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var validVoiceProviders = map[string]struct{}{
	"elevenlabs": {},
	"google":     {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBackend(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateBackend() error {
	base := strings.TrimSpace(c.Backend.BaseURL)
	if base == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/clipstudio/config.toml"
		}
		return fmt.Errorf("backend.base_url is required; edit %s (create with 'clipstudio config init')", defaultPath)
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend.base_url %q must be an absolute http(s) URL", base)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend.base_url scheme %q must be http or https", parsed.Scheme)
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if c.Defaults.VoiceProvider != "" {
		if _, ok := validVoiceProviders[c.Defaults.VoiceProvider]; !ok {
			return fmt.Errorf("defaults.voice_provider %q must be one of: elevenlabs, google", c.Defaults.VoiceProvider)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return errors.New("logging.level must be one of: debug, info, warn, error")
	}
}
