package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clipstudio/internal/session"
	"clipstudio/internal/studio"
	"clipstudio/internal/wizard"
)

func newWizardCommand(ctx *commandContext) *cobra.Command {
	wizardCmd := &cobra.Command{
		Use:   "wizard",
		Short: "Inspect and navigate the production workflow",
	}

	wizardCmd.AddCommand(newWizardStatusCommand(ctx))
	wizardCmd.AddCommand(newWizardNextCommand(ctx))
	wizardCmd.AddCommand(newWizardGotoCommand(ctx))
	wizardCmd.AddCommand(newWizardResetCommand(ctx))

	return wizardCmd
}

func newWizardStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session's stage progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				wiz := s.Wizard()
				if ctx.jsonOutput() {
					return writeJSON(cmd, wiz.Snapshot())
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				settings := s.Settings()
				if settings.Topic != "" {
					fmt.Fprintf(out, "Topic: %s\n", settings.Topic)
				}
				if id := wiz.SessionID(); id != "" {
					fmt.Fprintf(out, "Session: %s\n", id)
				}
				for _, stage := range wizard.Stages() {
					tone := toneNeutral
					message := "pending"
					switch {
					case wiz.Completed(stage):
						tone = toneGood
						message = "complete"
					case stage == wiz.Current():
						tone = toneAttention
						if wiz.Ready() {
							message = "current, ready to complete"
						} else {
							message = "current: " + wizard.MissingRequirement(stage, settings)
						}
					}
					label := fmt.Sprintf("%d. %s", int(stage), titleCase(stage.String()))
					fmt.Fprintln(out, renderStatusLine(label, tone, message, colorize))
				}
				return nil
			})
		},
	}
}

func newWizardNextCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Complete the current stage and advance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				next, err := s.Advance(cctx)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, s.Wizard().Snapshot())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now on stage %d (%s).\n", int(next), next)
				return nil
			})
		},
	}
}

func newWizardGotoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "goto <stage>",
		Short: "Jump to a stage by name or number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				target, err := wizard.ParseStage(args[0])
				if err != nil {
					return err
				}
				if !s.Wizard().NavigateTo(cctx, target) {
					return fmt.Errorf("stage %s is locked; complete stage %d first", target, int(target)-1)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, s.Wizard().Snapshot())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now on stage %d (%s).\n", int(target), target)
				return nil
			})
		},
	}
}

func newWizardResetCommand(ctx *commandContext) *cobra.Command {
	var topic string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a fresh session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				s.Wizard().Reset(cctx, session.ContentSettings{Topic: topic})
				if ctx.jsonOutput() {
					return writeJSON(cmd, s.Wizard().Snapshot())
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Started a fresh session at the script stage.")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Seed the new session with a topic")
	return cmd
}
