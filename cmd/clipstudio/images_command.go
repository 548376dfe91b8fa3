package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clipstudio/internal/studio"
)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	var style string
	var provider string
	var advance bool

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Generate scene images (stage 3)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				settings := s.Settings()
				if style != "" {
					settings.VisualStyle = style
				}
				if provider != "" {
					settings.ImageProvider = provider
				}
				s.Wizard().SetSettings(cctx, settings)

				resp, err := s.GenerateImages(cctx)
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
				if resp.FromCache {
					fmt.Fprintf(out, "Reused %d cached images (hash %s):\n", len(resp.Images), resp.CacheHash)
				} else {
					fmt.Fprintf(out, "Generated %d images:\n", len(resp.Images))
				}
				for _, image := range resp.Images {
					fmt.Fprintf(out, "  %s\n", s.Client().MediaURL(image))
				}
				if advance {
					fmt.Fprintf(out, "Visual stage complete; now on %s.\n", s.Wizard().Current())
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Visual style for generated images")
	cmd.Flags().StringVar(&provider, "provider", "", "Image generation provider")
	cmd.Flags().BoolVar(&advance, "advance", false, "Complete the visual stage on success")
	return cmd
}
