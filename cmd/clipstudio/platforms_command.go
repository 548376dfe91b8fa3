package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipstudio/internal/studio"
)

func newPlatformsCommand(ctx *commandContext) *cobra.Command {
	var music string
	var advance bool

	cmd := &cobra.Command{
		Use:   "platforms [platform...]",
		Short: "Choose target platforms (stage 5)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				if len(args) == 0 {
					settings := s.Settings()
					if ctx.jsonOutput() {
						return writeJSON(cmd, map[string]any{
							"platforms":        settings.Platforms,
							"background_music": settings.BackgroundMusic,
						})
					}
					out := cmd.OutOrStdout()
					if len(settings.Platforms) == 0 {
						fmt.Fprintln(out, "No platforms selected. Run `clipstudio platforms tiktok youtube` to choose.")
						return nil
					}
					fmt.Fprintf(out, "Platforms: %s\n", strings.Join(settings.Platforms, ", "))
					if settings.BackgroundMusic != "" {
						fmt.Fprintf(out, "Background music: %s\n", settings.BackgroundMusic)
					}
					return nil
				}

				if err := s.SelectPlatforms(cctx, args, music); err != nil {
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
				fmt.Fprintf(out, "Targeting %s.\n", strings.Join(s.Settings().Platforms, ", "))
				if advance {
					fmt.Fprintf(out, "Platforms stage complete; now on %s.\n", s.Wizard().Current())
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&music, "music", "", "Background music track")
	cmd.Flags().BoolVar(&advance, "advance", false, "Complete the platforms stage on success")
	return cmd
}
