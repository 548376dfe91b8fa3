package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"clipstudio/internal/backend"
	"clipstudio/internal/config"
	"clipstudio/internal/logging"
	"clipstudio/internal/session"
	"clipstudio/internal/studio"
	"clipstudio/internal/wizard"
)

type commandContext struct {
	configFlag  *string
	jsonFlag    *bool
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	loggerVal  *slog.Logger
}

func newCommandContext(configFlag *string, jsonFlag, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		jsonFlag:    jsonFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// logger builds the command logger from the [logging] config section:
// configured level and format, stderr plus clipstudio.log under the log dir.
// --verbose forces debug level; a broken config degrades to a silent logger.
func (c *commandContext) logger() *slog.Logger {
	c.loggerOnce.Do(func() {
		c.loggerVal = logging.Discard()
		cfg, err := c.ensureConfig()
		if err != nil {
			return
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			override := *cfg
			override.Logging.Level = "debug"
			cfg = &override
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			return
		}
		c.loggerVal = logger
	})
	return c.loggerVal
}

func (c *commandContext) newClient() (*backend.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return backend.NewClient(backend.Config{
		BaseURL:        cfg.Backend.BaseURL,
		TimeoutSeconds: cfg.Backend.TimeoutSeconds,
		Retries:        cfg.Backend.Retries,
		RetryBaseMS:    cfg.Backend.RetryBaseDelayMS,
		PollIntervalMS: cfg.Render.PollIntervalMS,
		PollCeilingMin: cfg.Render.PollCeilingMinutes,
	}, backend.WithLogger(c.logger())), nil
}

// withClient runs fn with a configured backend client for commands that do
// not touch session state.
func (c *commandContext) withClient(cmd *cobra.Command, fn func(context.Context, *backend.Client) error) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}
	return fn(cmd.Context(), client)
}

// withStore runs fn with an open session store.
func (c *commandContext) withStore(cmd *cobra.Command, fn func(context.Context, *session.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := session.Open(cfg)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()
	return fn(cmd.Context(), store)
}

// withStudio runs fn with a studio bound to the most recent session. A
// broken session store degrades to an in-memory session with a warning;
// losing snapshots must not block production work.
func (c *commandContext) withStudio(cmd *cobra.Command, fn func(context.Context, *studio.Studio) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	client, err := c.newClient()
	if err != nil {
		return err
	}

	logger := c.logger()
	ctx := cmd.Context()

	var snapStore wizard.SnapshotStore
	store, err := session.Open(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: session persistence unavailable: %v\n", err)
	} else {
		defer store.Close()
		snapStore = store
	}

	var wiz *wizard.Wizard
	wizOpts := []wizard.Option{wizard.WithLogger(logger)}
	if snapStore != nil {
		wizOpts = append(wizOpts, wizard.WithStore(snapStore))
	}
	if store != nil {
		snap, err := store.Latest(ctx)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not load previous session: %v\n", err)
		} else if snap != nil {
			wiz = wizard.Resume(*snap, wizOpts...)
		}
	}
	if wiz == nil {
		wiz = wizard.New(session.ContentSettings{}, wizOpts...)
	}

	s := studio.New(client, wiz,
		studio.WithDefaults(cfg.Defaults),
		studio.WithLogger(logger))
	return fn(ctx, s)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
