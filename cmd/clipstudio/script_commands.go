package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"clipstudio/internal/backend"
	"clipstudio/internal/studio"
)

func newScriptCommand(ctx *commandContext) *cobra.Command {
	scriptCmd := &cobra.Command{
		Use:   "script",
		Short: "Generate and compare scripts (stage 1)",
	}

	scriptCmd.AddCommand(newScriptGenerateCommand(ctx))
	scriptCmd.AddCommand(newScriptBattleCommand(ctx))
	scriptCmd.AddCommand(newScriptShowCommand(ctx))
	scriptCmd.AddCommand(newStoryTypesCommand(ctx))

	return scriptCmd
}

func newScriptGenerateCommand(ctx *commandContext) *cobra.Command {
	var topic string
	var provider string
	var storyType string
	var duration int
	var advance bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a script for a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				settings := s.Settings()
				if provider != "" {
					settings.ScriptProvider = provider
				}
				if storyType != "" {
					settings.StoryType = storyType
				}
				if duration > 0 {
					settings.DurationSec = duration
				}
				s.Wizard().SetSettings(cctx, settings)

				data, err := s.GenerateScript(cctx, topic)
				if err != nil {
					return err
				}
				if advance {
					if _, err := s.Advance(cctx); err != nil {
						return err
					}
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, s.Settings())
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Generated a %d-scene script with %s:\n\n", len(data.Scenes), s.Settings().ScriptProvider)
				fmt.Fprintln(out, s.Settings().Script)
				if advance {
					fmt.Fprintf(out, "\nScript stage complete; now on %s.\n", s.Wizard().Current())
				} else {
					fmt.Fprintln(out, "\nRun `clipstudio wizard next` to accept it and move to audio.")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic or theme to write about")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider to use")
	cmd.Flags().StringVar(&storyType, "story-type", "", "Narrative template")
	cmd.Flags().IntVar(&duration, "duration", 0, "Target video length in seconds")
	cmd.Flags().BoolVar(&advance, "advance", false, "Complete the script stage on success")
	return cmd
}

func newScriptBattleCommand(ctx *commandContext) *cobra.Command {
	var topic string
	var providers []string
	var adopt string

	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Generate the same topic with several providers and compare",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				results, err := s.RunBattle(cctx, topic, providers)
				if err != nil {
					return err
				}

				if adopt != "" {
					if err := s.AdoptScript(cctx, adopt, results); err != nil {
						return err
					}
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, results)
				}

				out := cmd.OutOrStdout()
				names := make([]string, 0, len(results))
				for name := range results {
					names = append(names, name)
				}
				sort.Strings(names)

				rows := make([][]string, 0, len(names))
				for _, name := range names {
					entry := results[name]
					outcome := truncate(entry.Text(), 70)
					if entry.Error != "" {
						outcome = "error: " + entry.Error
					}
					rows = append(rows, []string{
						name,
						fmt.Sprintf("%.1fs", entry.GenerationTime),
						outcome,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Provider", "Time", "Result"},
					rows, 1))
				if adopt != "" {
					fmt.Fprintf(out, "Adopted the %s script into the session.\n", adopt)
				} else {
					fmt.Fprintln(out, "Re-run with --adopt <provider> to use one of these scripts.")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic or theme to write about")
	cmd.Flags().StringSliceVar(&providers, "providers", nil, "Providers to pit against each other")
	cmd.Flags().StringVar(&adopt, "adopt", "", "Adopt this provider's result into the session")
	return cmd
}

func newScriptShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the session's current script",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				settings := s.Settings()
				if ctx.jsonOutput() {
					return writeJSON(cmd, settings)
				}
				out := cmd.OutOrStdout()
				if strings.TrimSpace(settings.Script) == "" {
					fmt.Fprintln(out, "No script yet. Run `clipstudio script generate --topic ...` first.")
					return nil
				}
				fmt.Fprintln(out, settings.Script)
				if len(settings.Scenes) > 0 {
					fmt.Fprintf(out, "\n%d storyboard scenes attached.\n", len(settings.Scenes))
				}
				return nil
			})
		},
	}
}

func newStoryTypesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "story-types",
		Short: "List narrative templates the backend accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd, func(cctx context.Context, client *backend.Client) error {
				types, err := client.StoryTypes(cctx)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, types)
				}
				out := cmd.OutOrStdout()
				for _, name := range types {
					fmt.Fprintln(out, name)
				}
				return nil
			})
		},
	}
}
