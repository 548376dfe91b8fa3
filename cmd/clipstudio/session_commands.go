package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clipstudio/internal/session"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage persisted wizard sessions",
	}

	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsShowCommand(ctx))
	sessionsCmd.AddCommand(newSessionsRemoveCommand(ctx))
	sessionsCmd.AddCommand(newSessionsClearCommand(ctx))

	return sessionsCmd
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved sessions, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(cctx context.Context, store *session.Store) error {
				snapshots, err := store.List(cctx)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, snapshots)
				}

				out := cmd.OutOrStdout()
				if len(snapshots) == 0 {
					fmt.Fprintln(out, "No saved sessions.")
					return nil
				}
				rows := make([][]string, 0, len(snapshots))
				for _, snap := range snapshots {
					rows = append(rows, []string{
						snap.ID,
						dash(truncate(snap.Settings.Topic, 40)),
						fmt.Sprintf("%d/%d", snap.CompletedCount(), session.StageCount),
						fmt.Sprintf("%d", snap.Stage),
						snap.UpdatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Topic", "Done", "Stage", "Updated"},
					rows, 2, 3))
				return nil
			})
		},
	}
}

func newSessionsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved session in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(cctx context.Context, store *session.Store) error {
				snap, err := store.Get(cctx, args[0])
				if err != nil {
					return err
				}
				if snap == nil {
					return fmt.Errorf("no session with id %s", args[0])
				}
				return writeJSON(cmd, snap)
			})
		},
	}
}

func newSessionsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete one saved session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(cctx context.Context, store *session.Store) error {
				if err := store.Delete(cctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s.\n", args[0])
				return nil
			})
		},
	}
}

func newSessionsClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all sessions without --yes")
			}
			return ctx.withStore(cmd, func(cctx context.Context, store *session.Store) error {
				if err := store.Clear(cctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All sessions deleted.")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion of all sessions")
	return cmd
}
