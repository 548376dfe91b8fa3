package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clipstudio/internal/backend"
)

func newTrendingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "List trending topics to seed a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd, func(cctx context.Context, client *backend.Client) error {
				topics, err := client.TrendingTopics(cctx)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, topics)
				}

				out := cmd.OutOrStdout()
				if len(topics) == 0 {
					fmt.Fprintln(out, "No trending topics right now.")
					return nil
				}
				rows := make([][]string, 0, len(topics))
				for _, topic := range topics {
					rows = append(rows, []string{
						truncate(topic.Topic, 60),
						titleCase(topic.Platform),
						dash(titleCase(topic.Category)),
						fmt.Sprintf("%d", topic.ViralPotential),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Topic", "Platform", "Category", "Viral"},
					rows, 3))
				return nil
			})
		},
	}
}
