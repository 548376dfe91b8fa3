package studio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clipstudio/internal/api"
	"clipstudio/internal/backend"
	"clipstudio/internal/config"
	"clipstudio/internal/logging"
	"clipstudio/internal/session"
	"clipstudio/internal/wizard"
)

func longScript() string {
	return strings.Repeat("Sharks existed before trees appeared on Earth. ", 3)
}

func newTestStudio(t *testing.T, handler http.Handler, settings session.ContentSettings) *Studio {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := backend.NewClient(backend.Config{BaseURL: srv.URL},
		backend.WithRetries(0),
		backend.WithSleeper(func(time.Duration) {}),
		backend.WithPolling(time.Millisecond, time.Second),
		backend.WithLogger(logging.Discard()))
	wiz := wizard.New(settings, wizard.WithLogger(logging.Discard()))
	return New(client, wiz,
		WithDefaults(config.Defaults{
			Provider:      "gemini",
			Format:        "short",
			DurationSec:   45,
			VoiceProvider: "elevenlabs",
			VoiceProfile:  "storyteller",
			VisualStyle:   "cinematic",
			ImageProvider: "pollinations",
		}),
		WithLogger(logging.Discard()))
}

func TestGenerateScriptAppliesResult(t *testing.T) {
	var gotReq api.ScriptRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/production/generate-script", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(api.ScriptResponse{
			Success: true,
			Data: api.ScriptData{
				RoteiroCompleto: longScript(),
				Scenes: []api.Scene{
					{Narration: "Sharks are ancient.", ImagePrompt: "a shark", MotionPrompt: "slow dolly in"},
				},
				Provider: "gemini",
			},
		})
	})

	s := newTestStudio(t, mux, session.ContentSettings{})
	data, err := s.GenerateScript(context.Background(), "shark facts")
	if err != nil {
		t.Fatalf("GenerateScript failed: %v", err)
	}
	if data.Text() == "" {
		t.Fatal("empty script data returned")
	}

	if gotReq.Theme != "shark facts" {
		t.Errorf("theme = %q", gotReq.Theme)
	}
	if gotReq.Provider != "gemini" {
		t.Errorf("provider = %q, want configured default", gotReq.Provider)
	}
	if gotReq.Duration != 45 {
		t.Errorf("duration = %d, want configured default", gotReq.Duration)
	}

	settings := s.Settings()
	if settings.Script != strings.TrimSpace(longScript()) {
		t.Errorf("script not applied: %q", settings.Script)
	}
	if len(settings.Scenes) != 1 {
		t.Errorf("scenes = %d, want 1", len(settings.Scenes))
	}
	if !s.Wizard().Ready() {
		t.Error("script stage not ready after applying a full script")
	}
}

func TestGenerateScriptRequiresTopic(t *testing.T) {
	s := newTestStudio(t, http.NewServeMux(), session.ContentSettings{})
	if _, err := s.GenerateScript(context.Background(), "   "); err == nil {
		t.Fatal("expected error without a topic")
	}
}

func TestAdoptScriptFromBattle(t *testing.T) {
	s := newTestStudio(t, http.NewServeMux(), session.ContentSettings{})
	results := map[string]api.BattleEntry{
		"gemini": {ScriptData: &api.ScriptData{Script: longScript()}},
		"gpt":    {Error: "quota exceeded"},
	}

	if err := s.AdoptScript(context.Background(), "gpt", results); err == nil {
		t.Error("adopting a failed entry must error")
	}
	if err := s.AdoptScript(context.Background(), "claude", results); err == nil {
		t.Error("adopting a missing provider must error")
	}
	if err := s.AdoptScript(context.Background(), "gemini", results); err != nil {
		t.Fatalf("AdoptScript failed: %v", err)
	}
	settings := s.Settings()
	if settings.ScriptProvider != "gemini" {
		t.Errorf("provider = %q", settings.ScriptProvider)
	}
	if settings.Script == "" {
		t.Error("script not applied")
	}
}

func TestGenerateAudioRoutesProvider(t *testing.T) {
	var calledPath string
	mux := http.NewServeMux()
	audioHandler := func(w http.ResponseWriter, r *http.Request) {
		calledPath = r.URL.Path
		json.NewEncoder(w).Encode(api.AudioResponse{
			Success:  true,
			AudioURL: "/media/audio/narration.mp3",
			Duration: 42.5,
		})
	}
	mux.HandleFunc("/api/production/generate-google-tts", audioHandler)
	mux.HandleFunc("/api/production/generate-elevenlabs-audio", audioHandler)

	s := newTestStudio(t, mux, session.ContentSettings{
		Script:        longScript(),
		VoiceProvider: "google",
	})
	if _, err := s.GenerateAudio(context.Background()); err != nil {
		t.Fatalf("GenerateAudio failed: %v", err)
	}
	if calledPath != "/api/production/generate-google-tts" {
		t.Errorf("path = %q, want the google endpoint", calledPath)
	}

	settings := s.Settings()
	if settings.AudioRef != "/media/audio/narration.mp3" {
		t.Errorf("audio ref = %q", settings.AudioRef)
	}
	if settings.AudioDuration != 42.5 {
		t.Errorf("duration = %v", settings.AudioDuration)
	}

	// Unset provider falls back to the configured default.
	s2 := newTestStudio(t, mux, session.ContentSettings{Script: longScript()})
	if _, err := s2.GenerateAudio(context.Background()); err != nil {
		t.Fatalf("GenerateAudio failed: %v", err)
	}
	if calledPath != "/api/production/generate-elevenlabs-audio" {
		t.Errorf("path = %q, want the elevenlabs endpoint", calledPath)
	}
}

func TestGenerateAudioRequiresScript(t *testing.T) {
	s := newTestStudio(t, http.NewServeMux(), session.ContentSettings{})
	if _, err := s.GenerateAudio(context.Background()); err == nil {
		t.Fatal("expected error without a script")
	}
}

func TestGenerateImagesStoresCacheMetadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/production/generate-images", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.ImagesResponse{
			Success:     true,
			Images:      []string{"images/1.png", "images/2.png"},
			UsedPrompts: []string{"a shark", "the deep sea"},
			FromCache:   true,
			CacheHash:   "abc123",
		})
	})

	s := newTestStudio(t, mux, session.ContentSettings{Script: longScript()})
	if _, err := s.GenerateImages(context.Background()); err != nil {
		t.Fatalf("GenerateImages failed: %v", err)
	}
	settings := s.Settings()
	if len(settings.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(settings.Images))
	}
	if !settings.ImagesFromCache || settings.ImageCacheHash != "abc123" {
		t.Errorf("cache metadata not applied: %+v", settings)
	}
	if settings.VisualStyle != "cinematic" {
		t.Errorf("visual style = %q, want configured default", settings.VisualStyle)
	}
}

func TestAnimateImagesAlignsMotionPrompts(t *testing.T) {
	var gotReq api.AnimateRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/production/animate-images", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(api.AnimateResponse{
			Success:        true,
			AnimatedVideos: []string{"videos/1.mp4", ""},
			Count:          2,
		})
	})

	s := newTestStudio(t, mux, session.ContentSettings{
		Script: longScript(),
		Scenes: []api.Scene{
			{MotionPrompt: "slow dolly in"},
			{MotionPrompt: ""},
		},
		Images: []string{"images/1.png", "images/2.png"},
	})
	if _, err := s.AnimateImages(context.Background(), 0.5); err != nil {
		t.Fatalf("AnimateImages failed: %v", err)
	}

	if len(gotReq.MotionPrompts) != 2 || gotReq.MotionPrompts[0] != "slow dolly in" || gotReq.MotionPrompts[1] != "" {
		t.Errorf("motion prompts = %v", gotReq.MotionPrompts)
	}
	if gotReq.MotionStrength != 0.5 {
		t.Errorf("strength = %v", gotReq.MotionStrength)
	}
	if clips := s.Settings().AnimatedClips; len(clips) != 2 {
		t.Errorf("animated clips = %v", clips)
	}
}

func TestSelectPlatformsValidation(t *testing.T) {
	s := newTestStudio(t, http.NewServeMux(), session.ContentSettings{})
	if err := s.SelectPlatforms(context.Background(), []string{"  ", ""}, ""); err == nil {
		t.Fatal("expected error with no usable platforms")
	}
	if err := s.SelectPlatforms(context.Background(), []string{" TikTok ", "youtube"}, "lofi"); err != nil {
		t.Fatalf("SelectPlatforms failed: %v", err)
	}
	settings := s.Settings()
	if len(settings.Platforms) != 2 || settings.Platforms[0] != "tiktok" {
		t.Errorf("platforms = %v", settings.Platforms)
	}
	if settings.BackgroundMusic != "lofi" {
		t.Errorf("music = %q", settings.BackgroundMusic)
	}
}

func TestRenderPreviewImmediateResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/production/render-complete-video", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.RenderResponse{
			Success:   true,
			VideoPath: "videos/final.mp4",
		})
	})

	s := newTestStudio(t, mux, session.ContentSettings{
		Script: longScript(),
		Scenes: []api.Scene{{Narration: "Sharks are ancient."}},
	})
	ref, err := s.RenderPreview(context.Background(), nil)
	if err != nil {
		t.Fatalf("RenderPreview failed: %v", err)
	}
	if ref != "videos/final.mp4" {
		t.Errorf("ref = %q", ref)
	}
	if s.Settings().PreviewRef != ref {
		t.Error("preview ref not applied to session")
	}
}

func TestRenderPreviewPollsAsyncJob(t *testing.T) {
	polls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/production/render-complete-video", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(api.RenderResponse{
			Success: true,
			JobID:   "job-7",
			Status:  "in_progress",
		})
	})
	mux.HandleFunc("/api/production/job-status", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("job_id"); got != "job-7" {
			t.Errorf("job_id = %q", got)
		}
		polls++
		if polls < 3 {
			progress := float64(40 * polls)
			json.NewEncoder(w).Encode(api.JobStatusResponse{Status: api.JobPending, Progress: &progress})
			return
		}
		json.NewEncoder(w).Encode(api.JobStatusResponse{
			Status:   api.JobCompleted,
			VideoURL: "/media/videos/final.mp4",
		})
	})

	s := newTestStudio(t, mux, session.ContentSettings{
		Script: longScript(),
		Scenes: []api.Scene{{Narration: "Sharks are ancient."}},
	})

	var reported []int
	ref, err := s.RenderPreview(context.Background(), func(percent int) {
		reported = append(reported, percent)
	})
	if err != nil {
		t.Fatalf("RenderPreview failed: %v", err)
	}
	if ref != "/media/videos/final.mp4" {
		t.Errorf("ref = %q", ref)
	}

	settings := s.Settings()
	if settings.RenderJobID != "job-7" {
		t.Errorf("job id = %q, want persisted before polling", settings.RenderJobID)
	}
	if settings.PreviewRef != ref {
		t.Errorf("preview ref = %q", settings.PreviewRef)
	}
	// Interim progress stays clamped; 100 only arrives with completion.
	want := []int{40, 80, 100}
	if len(reported) != len(want) {
		t.Fatalf("progress reports = %v", reported)
	}
	for i, percent := range want {
		if reported[i] != percent {
			t.Errorf("reported[%d] = %d, want %d", i, reported[i], percent)
		}
	}
}

func TestRenderSourcesPreferAnimatedClips(t *testing.T) {
	settings := session.ContentSettings{
		Images:        []string{"images/1.png", "images/2.png", "images/3.png"},
		AnimatedClips: []string{"videos/1.mp4", "", "videos/3.mp4"},
	}
	got := renderSources(settings)
	want := []string{"videos/1.mp4", "images/2.png", "videos/3.mp4"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sources[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
