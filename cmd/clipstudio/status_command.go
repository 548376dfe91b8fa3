package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clipstudio/internal/api"
	"clipstudio/internal/backend"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend health and pipeline metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd, func(cctx context.Context, client *backend.Client) error {
				health, healthErr := client.Health(cctx)
				var system *api.SystemStatus
				if healthErr == nil {
					system, _ = client.Status(cctx)
				}

				if ctx.jsonOutput() {
					payload := map[string]any{
						"backend": client.BaseURL(),
					}
					if healthErr != nil {
						payload["reachable"] = false
						payload["error"] = healthErr.Error()
					} else {
						payload["reachable"] = true
						payload["health"] = health
						if system != nil {
							payload["system"] = system
						}
					}
					return writeJSON(cmd, payload)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, renderHeading("Backend", colorize))
				if healthErr != nil {
					fmt.Fprintln(out, renderStatusLine("Reachable", toneBad, healthErr.Error(), colorize))
					return nil
				}
				fmt.Fprintln(out, renderStatusLine("Reachable", toneGood, client.BaseURL(), colorize))
				if health.Version != "" {
					fmt.Fprintln(out, renderStatusLine("Version", toneNeutral, health.Version, colorize))
				}

				if system != nil {
					fmt.Fprintln(out, renderHeading("Pipeline", colorize))
					automation := toneAttention
					if system.AutomationRunning {
						automation = toneGood
					}
					fmt.Fprintln(out, renderStatusLine("Automation", automation, yesNo(system.AutomationRunning), colorize))
					rendering := toneNeutral
					if system.PipelineRunning {
						rendering = toneGood
					}
					fmt.Fprintln(out, renderStatusLine("Pipeline", rendering, yesNo(system.PipelineRunning), colorize))
					fmt.Fprintln(out, renderStatusLine("AI accuracy", toneNeutral, formatPercent(system.AIAccuracy), colorize))
					fmt.Fprintln(out, renderStatusLine("Viral rate", toneNeutral, formatPercent(system.ViralRate), colorize))
					fmt.Fprintln(out, renderStatusLine("Content quality", toneNeutral, formatPercent(system.ContentQuality), colorize))
					if system.SystemHealth != "" {
						fmt.Fprintln(out, renderStatusLine("Health", toneNeutral, system.SystemHealth, colorize))
					}
				}
				return nil
			})
		},
	}
}
