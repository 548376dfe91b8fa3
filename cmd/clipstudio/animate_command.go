package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipstudio/internal/studio"
)

func newAnimateCommand(ctx *commandContext) *cobra.Command {
	var strength float64
	var advance bool

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Add motion to the generated images (stage 4)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				resp, err := s.AnimateImages(cctx, strength)
				if err != nil {
					return err
				}
				if advance {
					if _, err := s.Advance(cctx); err != nil {
						return err
					}
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				animated := 0
				for _, clip := range resp.AnimatedVideos {
					if strings.TrimSpace(clip) != "" {
						animated++
					}
				}
				fmt.Fprintf(out, "Animated %d of %d images:\n", animated, len(resp.AnimatedVideos))
				for i, clip := range resp.AnimatedVideos {
					if strings.TrimSpace(clip) == "" {
						fmt.Fprintf(out, "  scene %d: animation failed, the still image will be used\n", i+1)
						continue
					}
					fmt.Fprintf(out, "  scene %d: %s\n", i+1, s.Client().MediaURL(clip))
				}
				if advance {
					fmt.Fprintf(out, "Effects stage complete; now on %s.\n", s.Wizard().Current())
				}
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&strength, "strength", 0.5, "Motion strength between 0 and 1")
	cmd.Flags().BoolVar(&advance, "advance", false, "Complete the effects stage on success")
	return cmd
}
