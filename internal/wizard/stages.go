package wizard

import (
	"fmt"
	"strings"

	"clipstudio/internal/session"
)

// Stage identifies one step of the production workflow. Stages are 1-based.
type Stage int

const (
	StageScript Stage = iota + 1
	StageAudio
	StageVisual
	StageEffects
	StagePlatforms
	StagePreview
)

// minScriptLength is the smallest script the audio stage can usefully narrate.
const minScriptLength = 50

// Stages lists every stage in workflow order.
func Stages() []Stage {
	return []Stage{StageScript, StageAudio, StageVisual, StageEffects, StagePlatforms, StagePreview}
}

// Valid reports whether s names a real stage.
func (s Stage) Valid() bool {
	return s >= StageScript && s <= StagePreview
}

func (s Stage) String() string {
	switch s {
	case StageScript:
		return "script"
	case StageAudio:
		return "audio"
	case StageVisual:
		return "visual"
	case StageEffects:
		return "effects"
	case StagePlatforms:
		return "platforms"
	case StagePreview:
		return "preview"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ParseStage resolves a stage from its name or 1-based number.
func ParseStage(value string) (Stage, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	for _, stage := range Stages() {
		if trimmed == stage.String() || trimmed == fmt.Sprintf("%d", int(stage)) {
			return stage, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q (use 1-6 or script, audio, visual, effects, platforms, preview)", value)
}

// Ready reports whether the stage's readiness predicate holds against the
// settings aggregate. Every predicate reads only its own stage's fields and
// tolerates zero values everywhere else.
func Ready(stage Stage, settings session.ContentSettings) bool {
	return MissingRequirement(stage, settings) == ""
}

// MissingRequirement names what still blocks completing the stage; empty when
// the stage is ready to advance.
func MissingRequirement(stage Stage, settings session.ContentSettings) string {
	switch stage {
	case StageScript:
		script := strings.TrimSpace(settings.Script)
		if script == "" {
			return "no script generated yet"
		}
		if len(script) < minScriptLength {
			return fmt.Sprintf("script is too short (%d chars, need at least %d)", len(script), minScriptLength)
		}
		return ""
	case StageAudio:
		if strings.TrimSpace(settings.AudioRef) == "" {
			return "no narration audio generated yet"
		}
		return ""
	case StageVisual:
		if len(settings.Images) == 0 {
			return "no images generated yet"
		}
		return ""
	case StageEffects:
		// Motion animation is optional; the stage is always ready once reached.
		return ""
	case StagePlatforms:
		if len(settings.Platforms) == 0 {
			return "no target platform selected"
		}
		return ""
	case StagePreview:
		if strings.TrimSpace(settings.PreviewRef) == "" {
			return "no rendered preview yet"
		}
		return ""
	default:
		return fmt.Sprintf("unknown stage %d", int(stage))
	}
}
