package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"clipstudio/internal/api"
	"clipstudio/internal/backend"
	"clipstudio/internal/config"
	"clipstudio/internal/session"
	"clipstudio/internal/wizard"
)

// Studio drives one editing session through the production pipeline. Every
// operation reads the session's settings, performs the backend call for its
// stage, and writes the result back as a whole settings replacement.
type Studio struct {
	client   *backend.Client
	wizard   *wizard.Wizard
	defaults config.Defaults
	logger   *slog.Logger
}

// Option customizes a studio.
type Option func(*Studio)

// WithDefaults seeds unset per-stage choices from configuration.
func WithDefaults(defaults config.Defaults) Option {
	return func(s *Studio) { s.defaults = defaults }
}

// WithLogger attaches a logger for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Studio) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New binds a backend client to a wizard session.
func New(client *backend.Client, wiz *wizard.Wizard, opts ...Option) *Studio {
	s := &Studio{
		client: client,
		wizard: wiz,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wizard exposes the underlying session for navigation and inspection.
func (s *Studio) Wizard() *wizard.Wizard {
	return s.wizard
}

// Client exposes the backend client for session-independent queries.
func (s *Studio) Client() *backend.Client {
	return s.client
}

// Settings returns a copy of the session's configuration aggregate.
func (s *Studio) Settings() session.ContentSettings {
	return s.wizard.Settings()
}

// Advance completes the current stage and moves to the next one.
func (s *Studio) Advance(ctx context.Context) (wizard.Stage, error) {
	return s.wizard.CompleteStage(ctx)
}

// GenerateScript produces a script for the given topic and applies it to the
// session. An empty topic reuses the session's stored topic.
func (s *Studio) GenerateScript(ctx context.Context, topic string) (*api.ScriptData, error) {
	settings := s.wizard.Settings()
	if trimmed := strings.TrimSpace(topic); trimmed != "" {
		settings.Topic = trimmed
	}
	if strings.TrimSpace(settings.Topic) == "" {
		return nil, errors.New("generate script: no topic set")
	}

	provider := pick(settings.ScriptProvider, s.defaults.Provider)
	req := api.ScriptRequest{
		Theme:     settings.Topic,
		Provider:  provider,
		Format:    pick(settings.Format, s.defaults.Format),
		Duration:  pickInt(settings.DurationSec, s.defaults.DurationSec),
		StoryType: pick(settings.StoryType, s.defaults.StoryType),
	}

	data, err := s.client.GenerateScript(ctx, req)
	if err != nil {
		return nil, err
	}
	text := data.Text()
	if text == "" {
		return nil, errors.New("generate script: backend returned an empty script")
	}

	settings.Script = text
	settings.Scenes = data.Scenes
	settings.VisualPrompts = data.VisualPrompts
	settings.ScriptProvider = pick(data.Provider, provider)
	settings.Format = req.Format
	settings.StoryType = req.StoryType
	settings.DurationSec = req.Duration
	s.wizard.SetSettings(ctx, settings)
	s.logger.Debug("script generated",
		"provider", settings.ScriptProvider,
		"scenes", len(data.Scenes),
		"chars", len(text))
	return data, nil
}

// RunBattle generates the session's topic through several providers at once.
// Results are returned for comparison; none is applied until AdoptScript.
func (s *Studio) RunBattle(ctx context.Context, topic string, providers []string) (map[string]api.BattleEntry, error) {
	settings := s.wizard.Settings()
	if trimmed := strings.TrimSpace(topic); trimmed != "" {
		settings.Topic = trimmed
		s.wizard.SetSettings(ctx, settings)
	}
	req := api.BattleRequest{
		Theme:     settings.Topic,
		Providers: providers,
		Format:    pick(settings.Format, s.defaults.Format),
		Duration:  pickInt(settings.DurationSec, s.defaults.DurationSec),
	}
	return s.client.Battle(ctx, req)
}

// AdoptScript applies one provider's battle result to the session.
func (s *Studio) AdoptScript(ctx context.Context, provider string, results map[string]api.BattleEntry) error {
	entry, ok := results[provider]
	if !ok {
		return fmt.Errorf("adopt script: no battle result for provider %q", provider)
	}
	if entry.Error != "" {
		return fmt.Errorf("adopt script: provider %q failed: %s", provider, entry.Error)
	}
	text := entry.Text()
	if text == "" {
		return fmt.Errorf("adopt script: provider %q produced no script", provider)
	}

	settings := s.wizard.Settings()
	settings.Script = text
	settings.ScriptProvider = provider
	if entry.ScriptData != nil {
		settings.Scenes = entry.ScriptData.Scenes
		settings.VisualPrompts = entry.ScriptData.VisualPrompts
	}
	s.wizard.SetSettings(ctx, settings)
	return nil
}

// GenerateAudio narrates the session's script with the configured voice
// provider and stores the resulting audio reference.
func (s *Studio) GenerateAudio(ctx context.Context) (*api.AudioResponse, error) {
	settings := s.wizard.Settings()
	if strings.TrimSpace(settings.Script) == "" {
		return nil, errors.New("generate audio: generate a script first")
	}

	provider := strings.ToLower(pick(settings.VoiceProvider, pick(s.defaults.VoiceProvider, "elevenlabs")))
	req := api.AudioRequest{
		Text:         settings.Script,
		VoiceProfile: pick(settings.VoiceProfile, s.defaults.VoiceProfile),
		Speed:        settings.SpeechSpeed,
	}

	var (
		resp *api.AudioResponse
		err  error
	)
	switch provider {
	case "google":
		resp, err = s.client.GenerateGoogleAudio(ctx, req)
	case "elevenlabs":
		resp, err = s.client.GenerateElevenLabsAudio(ctx, req)
	default:
		return nil, fmt.Errorf("generate audio: unknown voice provider %q", provider)
	}
	if err != nil {
		return nil, err
	}

	settings.VoiceProvider = provider
	settings.VoiceProfile = req.VoiceProfile
	settings.AudioRef = resp.Ref()
	settings.AudioDuration = resp.Duration
	s.wizard.SetSettings(ctx, settings)
	s.logger.Debug("narration generated", "provider", provider, "duration", resp.Duration)
	return resp, nil
}

// GenerateImages produces the session's scene images and stores their paths
// along with the backend's cache metadata.
func (s *Studio) GenerateImages(ctx context.Context) (*api.ImagesResponse, error) {
	settings := s.wizard.Settings()
	if strings.TrimSpace(settings.Script) == "" {
		return nil, errors.New("generate images: generate a script first")
	}

	req := api.ImagesRequest{
		ScriptData: api.ScriptData{
			Script:        settings.Script,
			Scenes:        settings.Scenes,
			VisualPrompts: settings.VisualPrompts,
		},
		VisualStyle:   pick(settings.VisualStyle, s.defaults.VisualStyle),
		ImageProvider: pick(settings.ImageProvider, s.defaults.ImageProvider),
	}
	resp, err := s.client.GenerateImages(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Images) == 0 {
		return nil, errors.New("generate images: backend returned no images")
	}

	settings.VisualStyle = req.VisualStyle
	settings.ImageProvider = req.ImageProvider
	settings.Images = resp.Images
	settings.UsedPrompts = resp.UsedPrompts
	settings.ImagesFromCache = resp.FromCache
	settings.ImageCacheHash = resp.CacheHash
	s.wizard.SetSettings(ctx, settings)
	s.logger.Debug("images generated", "count", len(resp.Images), "from_cache", resp.FromCache)
	return resp, nil
}

// AnimateImages runs motion animation over the session's images. Motion
// prompts come from the storyboard scenes, index-aligned with the images.
func (s *Studio) AnimateImages(ctx context.Context, strength float64) (*api.AnimateResponse, error) {
	settings := s.wizard.Settings()
	if len(settings.Images) == 0 {
		return nil, errors.New("animate images: generate images first")
	}

	req := api.AnimateRequest{
		Images:         settings.Images,
		MotionPrompts:  motionPrompts(settings),
		MotionStrength: strength,
	}
	resp, err := s.client.AnimateImages(ctx, req)
	if err != nil {
		return nil, err
	}

	settings.MotionStrength = strength
	settings.AnimatedClips = resp.AnimatedVideos
	s.wizard.SetSettings(ctx, settings)
	s.logger.Debug("images animated", "count", len(resp.AnimatedVideos), "strength", strength)
	return resp, nil
}

// SelectPlatforms records the target platforms and optional background music.
func (s *Studio) SelectPlatforms(ctx context.Context, platforms []string, music string) error {
	cleaned := make([]string, 0, len(platforms))
	for _, platform := range platforms {
		if trimmed := strings.ToLower(strings.TrimSpace(platform)); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return errors.New("select platforms: at least one platform required")
	}

	settings := s.wizard.Settings()
	settings.Platforms = cleaned
	settings.BackgroundMusic = strings.TrimSpace(music)
	s.wizard.SetSettings(ctx, settings)
	return nil
}

// RenderPreview submits the session's storyboard for final assembly and
// returns the rendered video reference. When the backend answers with a job
// id instead of a finished video, the job is polled to completion and
// progress is surfaced through onProgress.
func (s *Studio) RenderPreview(ctx context.Context, onProgress func(percent int)) (string, error) {
	settings := s.wizard.Settings()
	scenes := settings.Scenes
	if len(scenes) == 0 {
		if strings.TrimSpace(settings.Script) == "" {
			return "", errors.New("render preview: session has no storyboard")
		}
		scenes = []api.Scene{{Narration: settings.Script}}
	}

	req := api.RenderRequest{
		Storyboard: api.Storyboard{Scenes: scenes},
		Images:     renderSources(settings),
		Settings: api.RenderSettings{
			ElevenLabsVoice: settings.VoiceProfile,
			ImageProvider:   settings.ImageProvider,
			BackgroundMusic: settings.BackgroundMusic,
			Platforms:       settings.Platforms,
		},
	}
	resp, err := s.client.RenderVideo(ctx, req)
	if err != nil {
		return "", err
	}

	ref := resp.VideoRef()
	if ref == "" {
		jobID := pick(resp.JobID, resp.JobKey)
		settings.RenderJobID = jobID
		s.wizard.SetSettings(ctx, settings)
		s.logger.Info("render job accepted, polling", "job_id", jobID)

		status, err := s.client.WaitForVideo(ctx, jobID, backend.PollOptions{OnProgress: onProgress})
		if err != nil {
			return "", err
		}
		ref = strings.TrimSpace(status.VideoURL)
		if ref == "" {
			return "", fmt.Errorf("render preview: job %s completed without a video reference", jobID)
		}
		settings = s.wizard.Settings()
	}

	settings.PreviewRef = ref
	s.wizard.SetSettings(ctx, settings)
	return ref, nil
}

// motionPrompts extracts per-scene motion prompts, index-aligned with the
// session's images. Scene prompts win over the standalone prompt pairs.
func motionPrompts(settings session.ContentSettings) []string {
	prompts := make([]string, len(settings.Images))
	populated := false
	for i := range settings.Images {
		switch {
		case i < len(settings.Scenes) && strings.TrimSpace(settings.Scenes[i].MotionPrompt) != "":
			prompts[i] = strings.TrimSpace(settings.Scenes[i].MotionPrompt)
			populated = true
		case i < len(settings.VisualPrompts) && strings.TrimSpace(settings.VisualPrompts[i].MotionPrompt) != "":
			prompts[i] = strings.TrimSpace(settings.VisualPrompts[i].MotionPrompt)
			populated = true
		}
	}
	if !populated {
		return nil
	}
	return prompts
}

// renderSources prefers animated clips over still images where animation
// succeeded; empty clip entries fall back to the still.
func renderSources(settings session.ContentSettings) []string {
	if len(settings.AnimatedClips) == 0 {
		return settings.Images
	}
	sources := make([]string, len(settings.Images))
	for i, image := range settings.Images {
		if i < len(settings.AnimatedClips) && strings.TrimSpace(settings.AnimatedClips[i]) != "" {
			sources[i] = settings.AnimatedClips[i]
			continue
		}
		sources[i] = image
	}
	return sources
}

func pick(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(fallback)
}

func pickInt(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
