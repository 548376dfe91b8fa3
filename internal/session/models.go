package session

import (
	"time"

	"clipstudio/internal/api"
)

// StageCount is the number of wizard stages a session tracks.
const StageCount = 6

// ContentSettings is the configuration aggregate for one editing session:
// every user choice across all wizard stages. Every field is optional; stage
// gating reads only the fields relevant to its own stage and tolerates zero
// values throughout. The aggregate is replaced whole on every update, never
// mutated field-by-field in place.
type ContentSettings struct {
	// Script stage.
	Topic          string             `json:"topic,omitempty"`
	StoryType      string             `json:"story_type,omitempty"`
	Format         string             `json:"format,omitempty"`
	DurationSec    int                `json:"duration_seconds,omitempty"`
	ScriptProvider string             `json:"script_provider,omitempty"`
	Script         string             `json:"script,omitempty"`
	Scenes         []api.Scene        `json:"scenes,omitempty"`
	VisualPrompts  []api.VisualPrompt `json:"visual_prompts,omitempty"`

	// Audio stage.
	VoiceProvider string   `json:"voice_provider,omitempty"`
	VoiceProfile  string   `json:"voice_profile,omitempty"`
	SpeechSpeed   *float64 `json:"speech_speed,omitempty"`
	AudioRef      string   `json:"audio_ref,omitempty"`
	AudioDuration float64  `json:"audio_duration,omitempty"`

	// Visual stage.
	VisualStyle     string   `json:"visual_style,omitempty"`
	ImageProvider   string   `json:"image_provider,omitempty"`
	Images          []string `json:"images,omitempty"`
	UsedPrompts     []string `json:"used_prompts,omitempty"`
	ImagesFromCache bool     `json:"images_from_cache,omitempty"`
	ImageCacheHash  string   `json:"image_cache_hash,omitempty"`

	// Effects stage.
	MotionStrength float64  `json:"motion_strength,omitempty"`
	AnimatedClips  []string `json:"animated_clips,omitempty"`

	// Platforms stage.
	Platforms       []string `json:"platforms,omitempty"`
	BackgroundMusic string   `json:"background_music,omitempty"`

	// Preview stage.
	PreviewRef  string `json:"preview_ref,omitempty"`
	RenderJobID string `json:"render_job_id,omitempty"`
}

// Snapshot is the persisted state of one wizard session.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Stage     int
	Completed [StageCount]bool
	Settings  ContentSettings
}

// CompletedCount returns how many stages the session has finished.
func (s Snapshot) CompletedCount() int {
	count := 0
	for _, done := range s.Completed {
		if done {
			count++
		}
	}
	return count
}
