package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipstudio/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSampleConfig(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to point base_url at your pipeline backend.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, cfg)
			}

			rows := [][]string{
				{"backend.base_url", cfg.Backend.BaseURL},
				{"backend.timeout_seconds", fmt.Sprintf("%d", cfg.Backend.TimeoutSeconds)},
				{"backend.retries", fmt.Sprintf("%d", cfg.Backend.Retries)},
				{"backend.retry_base_delay_ms", fmt.Sprintf("%d", cfg.Backend.RetryBaseDelayMS)},
				{"render.poll_interval_ms", fmt.Sprintf("%d", cfg.Render.PollIntervalMS)},
				{"render.poll_ceiling_minutes", fmt.Sprintf("%d", cfg.Render.PollCeilingMinutes)},
				{"defaults.provider", dash(cfg.Defaults.Provider)},
				{"defaults.story_type", dash(cfg.Defaults.StoryType)},
				{"defaults.format", dash(cfg.Defaults.Format)},
				{"defaults.duration_seconds", fmt.Sprintf("%d", cfg.Defaults.DurationSec)},
				{"defaults.voice_provider", dash(cfg.Defaults.VoiceProvider)},
				{"defaults.voice_profile", dash(cfg.Defaults.VoiceProfile)},
				{"defaults.visual_style", dash(cfg.Defaults.VisualStyle)},
				{"defaults.image_provider", dash(cfg.Defaults.ImageProvider)},
				{"defaults.platforms", dash(strings.Join(cfg.Defaults.Platforms, ", "))},
				{"paths.data_dir", cfg.Paths.DataDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows))
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the resolved configuration file path",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, exists, err := config.Load("")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, path)
			if !exists {
				fmt.Fprintln(out, "(file does not exist yet; defaults are in effect)")
			}
			return nil
		},
	}
}
