package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clipstudio/internal/backend"
	"clipstudio/internal/studio"
)

func newAudioCommand(ctx *commandContext) *cobra.Command {
	audioCmd := &cobra.Command{
		Use:   "audio",
		Short: "Narrate the script (stage 2)",
	}

	audioCmd.AddCommand(newAudioGenerateCommand(ctx))
	audioCmd.AddCommand(newAudioVoicesCommand(ctx))

	return audioCmd
}

func newAudioGenerateCommand(ctx *commandContext) *cobra.Command {
	var provider string
	var profile string
	var speed float64
	var advance bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize narration for the session's script",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(cctx context.Context, s *studio.Studio) error {
				settings := s.Settings()
				if provider != "" {
					settings.VoiceProvider = provider
				}
				if profile != "" {
					settings.VoiceProfile = profile
				}
				if cmd.Flags().Changed("speed") {
					settings.SpeechSpeed = &speed
				}
				s.Wizard().SetSettings(cctx, settings)

				resp, err := s.GenerateAudio(cctx)
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
				fmt.Fprintf(out, "Narration ready (%.1fs): %s\n", resp.Duration, s.Client().MediaURL(resp.Ref()))
				if advance {
					fmt.Fprintf(out, "Audio stage complete; now on %s.\n", s.Wizard().Current())
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Voice provider (elevenlabs or google)")
	cmd.Flags().StringVar(&profile, "profile", "", "Voice profile name")
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "Speech speed multiplier")
	cmd.Flags().BoolVar(&advance, "advance", false, "Complete the audio stage on success")
	return cmd
}

func newAudioVoicesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List available ElevenLabs voices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(cmd, func(cctx context.Context, client *backend.Client) error {
				resp, err := client.Voices(cctx)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}

				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(resp.AvailableVoices))
				for _, voice := range resp.AvailableVoices {
					rows = append(rows, []string{voice.Name, dash(titleCase(voice.Category)), voice.VoiceID})
				}
				fmt.Fprintln(out, renderTable([]string{"Name", "Category", "Voice ID"}, rows))
				return nil
			})
		},
	}
}
