package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clipstudio/internal/studio"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var advance bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Assemble the final video (stage 6)",
		Long: "Render submits the session's storyboard for final assembly. Fast\n" +
			"renders return immediately; longer ones are queued as a job that is\n" +
			"polled until the video is ready.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				out := cmd.OutOrStdout()
				progress := func(percent int) {
					if !ctx.jsonOutput() {
						fmt.Fprintf(out, "\rRendering... %3d%%", percent)
						if percent >= 100 {
							fmt.Fprintln(out)
						}
					}
				}

				ref, err := s.RenderPreview(cctx, progress)
				if err != nil {
					return err
				}
				if advance {
					if _, err := s.Advance(cctx); err != nil {
						return err
					}
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"video":    s.Client().MediaURL(ref),
						"settings": s.Settings(),
					})
				}
				fmt.Fprintf(out, "Video ready: %s\n", s.Client().MediaURL(ref))
				if advance {
					fmt.Fprintln(out, "Preview stage complete. The session is finished.")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&advance, "advance", false, "Complete the preview stage on success")
	return cmd
}
