package api

import "strings"

// Job status values reported by the render job endpoint.
const (
	JobPending   = "pending"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// Scene is one storyboard beat: narration plus the prompts used to generate
// and animate its visual.
type Scene struct {
	Narration    string  `json:"narration,omitempty"`
	OnScreenText string  `json:"on_screen_text,omitempty"`
	ImagePrompt  string  `json:"image_prompt,omitempty"`
	MotionPrompt string  `json:"motion_prompt,omitempty"`
	TStart       float64 `json:"t_start,omitempty"`
	TEnd         float64 `json:"t_end,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
}

// VisualPrompt pairs an image prompt with its optional motion prompt.
type VisualPrompt struct {
	ImagePrompt  string `json:"image_prompt"`
	MotionPrompt string `json:"motion_prompt,omitempty"`
}

// ScriptRequest is the body for POST /production/generate-script.
type ScriptRequest struct {
	Theme     string `json:"theme"`
	Provider  string `json:"provider"`
	Format    string `json:"format,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	StoryType string `json:"story_type,omitempty"`
}

// ScriptData is the generated-script payload. The backend has shipped the
// script text under several names over time; Text applies its precedence.
type ScriptData struct {
	RoteiroCompleto     string         `json:"roteiro_completo,omitempty"`
	FinalScriptForTTS   string         `json:"final_script_for_tts,omitempty"`
	Script              string         `json:"script,omitempty"`
	Content             string         `json:"content,omitempty"`
	Scenes              []Scene        `json:"scenes,omitempty"`
	VisualPrompts       []VisualPrompt `json:"visual_prompts,omitempty"`
	VisualPromptsText   string         `json:"visual_prompts_text,omitempty"`
	LeonardoPromptsText string         `json:"leonardo_prompts_text,omitempty"`
	Provider            string         `json:"ai_provider,omitempty"`
	DurationTargetSec   int            `json:"duration_target_sec,omitempty"`
}

// Text returns the continuous script text, falling back through the aliases
// the backend may populate and finally joining scene narration.
func (d ScriptData) Text() string {
	for _, candidate := range []string{d.RoteiroCompleto, d.FinalScriptForTTS, d.Script, d.Content} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	parts := make([]string, 0, len(d.Scenes))
	for _, scene := range d.Scenes {
		switch {
		case strings.TrimSpace(scene.Narration) != "":
			parts = append(parts, strings.TrimSpace(scene.Narration))
		case strings.TrimSpace(scene.OnScreenText) != "":
			parts = append(parts, strings.TrimSpace(scene.OnScreenText))
		}
	}
	return strings.Join(parts, "\n")
}

// ScriptResponse wraps ScriptData in the standard success envelope.
type ScriptResponse struct {
	Success bool       `json:"success"`
	Data    ScriptData `json:"data"`
	Error   string     `json:"error,omitempty"`
}

// BattleRequest is the body for POST /production/ai-battle.
type BattleRequest struct {
	Theme     string   `json:"theme"`
	Providers []string `json:"providers"`
	Format    string   `json:"format,omitempty"`
	Duration  int      `json:"duration,omitempty"`
}

// BattleEntry is one provider's result in an AI battle.
type BattleEntry struct {
	ScriptData     *ScriptData `json:"script_data,omitempty"`
	Script         string      `json:"script,omitempty"`
	GenerationTime float64     `json:"generation_time,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// Text returns the entry's script text regardless of which field carried it.
func (e BattleEntry) Text() string {
	if e.ScriptData != nil {
		if text := e.ScriptData.Text(); text != "" {
			return text
		}
	}
	return strings.TrimSpace(e.Script)
}

// BattleResponse wraps per-provider battle results.
type BattleResponse struct {
	Success bool `json:"success"`
	Data    struct {
		BattleResults map[string]BattleEntry `json:"battle_results"`
	} `json:"data"`
	Error string `json:"error,omitempty"`
}

// AudioRequest is the body for the TTS endpoints.
type AudioRequest struct {
	Text         string   `json:"text"`
	VoiceProfile string   `json:"voice_profile,omitempty"`
	Speed        *float64 `json:"speed,omitempty"`
}

// AudioResponse is returned by both TTS endpoints; the artifact reference may
// arrive as a URL or a media path.
type AudioResponse struct {
	Success      bool    `json:"success"`
	AudioURL     string  `json:"audio_url,omitempty"`
	AudioPath    string  `json:"audio_path,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	ProviderUsed string  `json:"provider_used,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// Ref returns the audio artifact reference, preferring the URL form.
func (a AudioResponse) Ref() string {
	if trimmed := strings.TrimSpace(a.AudioURL); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(a.AudioPath)
}

// ImagesRequest is the body for POST /production/generate-images.
type ImagesRequest struct {
	ScriptData    ScriptData `json:"script_data"`
	VisualStyle   string     `json:"visual_style,omitempty"`
	ImageProvider string     `json:"image_provider,omitempty"`
}

// ImagesResponse carries generated image paths plus cache metadata.
type ImagesResponse struct {
	Success     bool     `json:"success"`
	Images      []string `json:"images"`
	UsedPrompts []string `json:"used_prompts,omitempty"`
	FromCache   bool     `json:"from_cache,omitempty"`
	CacheHash   string   `json:"cache_hash,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// AnimateRequest is the body for POST /production/animate-images. Motion
// prompts are index-aligned with images; missing entries fall back to the
// backend's default subtle-motion prompt.
type AnimateRequest struct {
	Images         []string `json:"images"`
	MotionPrompts  []string `json:"motion_prompts,omitempty"`
	MotionStrength float64  `json:"motion_strength,omitempty"`
}

// AnimateResponse lists per-image animated clips; entries are empty when a
// single image failed to animate.
type AnimateResponse struct {
	Success        bool     `json:"success"`
	AnimatedVideos []string `json:"animated_videos"`
	Count          int      `json:"count,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Storyboard is the scene sequence submitted for final rendering.
type Storyboard struct {
	Scenes []Scene `json:"scenes"`
}

// RenderSettings tunes the final assembly pipeline.
type RenderSettings struct {
	ElevenLabsVoice string   `json:"elevenlabs_voice,omitempty"`
	ImageProvider   string   `json:"image_provider,omitempty"`
	BackgroundMusic string   `json:"background_music,omitempty"`
	Platforms       []string `json:"platforms,omitempty"`
}

// RenderRequest is the body for POST /production/render-complete-video.
type RenderRequest struct {
	Storyboard Storyboard     `json:"storyboard"`
	Images     []string       `json:"images,omitempty"`
	Settings   RenderSettings `json:"settings"`
}

// RenderResponse covers both render outcomes: an immediate video reference or
// a job id that must be polled to completion.
type RenderResponse struct {
	Success     bool     `json:"success"`
	VideoPath   string   `json:"video_path,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
	JobID       string   `json:"job_id,omitempty"`
	JobKey      string   `json:"job_key,omitempty"`
	Status      string   `json:"status,omitempty"`
	Message     string   `json:"message,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
	ScenesCount int      `json:"scenes_count,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// VideoRef returns the rendered video reference, preferring the path form the
// backend writes for locally assembled videos.
func (r RenderResponse) VideoRef() string {
	if trimmed := strings.TrimSpace(r.VideoPath); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(r.VideoURL)
}

// JobStatusResponse is returned by GET /production/job-status.
type JobStatusResponse struct {
	Status   string   `json:"status"`
	Progress *float64 `json:"progress,omitempty"`
	VideoURL string   `json:"video_url,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// SystemStatus mirrors GET /status.
type SystemStatus struct {
	AutomationRunning bool    `json:"automation_running"`
	PipelineRunning   bool    `json:"pipeline_running"`
	AIAccuracy        float64 `json:"ai_accuracy"`
	ViralRate         float64 `json:"viral_rate"`
	ContentQuality    float64 `json:"content_quality"`
	SystemHealth      string  `json:"system_health"`
}

// TrendingTopic is one entry from GET /trending/topics.
type TrendingTopic struct {
	ID             string `json:"id"`
	Topic          string `json:"topic"`
	Platform       string `json:"platform"`
	Category       string `json:"category,omitempty"`
	ViralPotential int    `json:"viralPotential"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// TrendingResponse wraps the trending topic list.
type TrendingResponse struct {
	Topics []TrendingTopic `json:"topics"`
	Count  int             `json:"count"`
	Error  string          `json:"error,omitempty"`
}

// StoryTypesResponse lists the narrative templates script generation accepts.
type StoryTypesResponse struct {
	Success    bool     `json:"success"`
	StoryTypes []string `json:"story_types"`
	Count      int      `json:"count,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Voice describes one ElevenLabs voice.
type Voice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// VoicesResponse is returned by GET /production/elevenlabs-voices.
type VoicesResponse struct {
	Success             bool    `json:"success"`
	AvailableVoices     []Voice `json:"available_voices"`
	PreconfiguredVoices []Voice `json:"preconfigured_voices,omitempty"`
	Error               string  `json:"error,omitempty"`
}
